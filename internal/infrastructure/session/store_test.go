package session

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draft struct {
	Name  string
	Items []string
}

func cloneDraft(d draft) draft {
	d.Items = slices.Clone(d.Items)
	return d
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(ttl time.Duration) (*Store[draft], *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)}
	s := NewStore(ttl, cloneDraft)
	s.SetClock(clock.Now)
	return s, clock
}

func TestStore_PutGet(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	id := uuid.New()

	s.Put(id, draft{Name: "a", Items: []string{"x"}})

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	got.Items[0] = "mutated"
	again, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, again.Items)
}

func TestStore_GetUnknown(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	_, err := s.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Expiry(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	id := uuid.New()
	s.Put(id, draft{Name: "a"})

	clock.Advance(50 * time.Second)
	_, err := s.Get(id)
	require.NoError(t, err)

	// access refreshed the entry
	clock.Advance(50 * time.Second)
	_, err = s.Get(id)
	require.NoError(t, err)

	clock.Advance(61 * time.Second)
	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestStore_Update(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	id := uuid.New()
	s.Put(id, draft{Name: "a"})

	got, err := s.Update(id, func(d *draft) error {
		d.Items = append(d.Items, "y")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, got.Items)

	boom := errors.New("boom")
	_, err = s.Update(id, func(d *draft) error {
		d.Name = "changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "a", stored.Name)
	assert.Equal(t, []string{"y"}, stored.Items)
}

func TestStore_Sweep(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	old := uuid.New()
	s.Put(old, draft{})
	clock.Advance(45 * time.Second)
	fresh := uuid.New()
	s.Put(fresh, draft{})
	clock.Advance(30 * time.Second)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
	_, err := s.Get(fresh)
	assert.NoError(t, err)
}

func TestStore_Delete(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	id := uuid.New()
	s.Put(id, draft{})
	s.Delete(id)
	s.Delete(uuid.New())
	assert.Equal(t, 0, s.Len())
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	id := uuid.New()
	s.Put(id, draft{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Update(id, func(d *draft) error {
				d.Items = append(d.Items, "i")
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Len(t, got.Items, 50)
}
