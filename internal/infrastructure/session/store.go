// Package session keeps short-lived, per-user editing state in memory.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired sessions
var ErrNotFound = errors.New("session not found")

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// Store is a concurrency-safe map of sessions that expire after a period of
// inactivity. Values are cloned on the way in and out so callers never share
// state with the store.
type Store[T any] struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry[T]
	ttl     time.Duration
	clone   func(T) T
	now     func() time.Time
}

// NewStore creates a store whose entries expire ttl after their last use.
// clone may be nil for value types with no shared references.
func NewStore[T any](ttl time.Duration, clone func(T) T) *Store[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Store[T]{
		entries: make(map[uuid.UUID]*entry[T]),
		ttl:     ttl,
		clone:   clone,
		now:     time.Now,
	}
}

// SetClock overrides the time source
func (s *Store[T]) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Put stores value under id, replacing any previous value
func (s *Store[T]) Put(id uuid.UUID, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &entry[T]{value: s.clone(value), lastSeen: s.now()}
}

// Get returns a copy of the session and refreshes its expiry
func (s *Store[T]) Get(id uuid.UUID) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.clone(e.value), nil
}

// Update applies fn to a copy of the session and stores the result only when
// fn succeeds, so a failed edit leaves the session untouched.
func (s *Store[T]) Update(id uuid.UUID, fn func(*T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	e, err := s.lookup(id)
	if err != nil {
		return zero, err
	}
	working := s.clone(e.value)
	if err := fn(&working); err != nil {
		return zero, err
	}
	e.value = working
	return s.clone(working), nil
}

// Delete removes a session; deleting an unknown id is a no-op
func (s *Store[T]) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len returns the number of live sessions
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartCleanup evicts expired sessions every interval until ctx is done
func (s *Store[T]) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Sweep evicts every expired session and returns how many were removed
func (s *Store[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// lookup must be called with mu held
func (s *Store[T]) lookup(id uuid.UUID) (*entry[T], error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.entries, id)
		return nil, ErrNotFound
	}
	e.lastSeen = now
	return e, nil
}
