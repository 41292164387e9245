package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses of payment submissions
type IdempotencyRepository interface {
	// Find returns the key a user stored that is still live at now, or nil
	Find(ctx context.Context, userID uuid.UUID, key string, now time.Time) (*entity.IdempotencyKey, error)
	// Save keeps the first response when two requests race on the same key
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Purge deletes keys that expired before the cutoff
	Purge(ctx context.Context, before time.Time) (int64, error)
}
