package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey caches the response of a processed write so a retried
// request with the same Idempotency-Key header replays it instead of
// recording a second payment.
type IdempotencyKey struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string     `gorm:"size:255;not null;uniqueIndex:idx_idem_user_key"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_idem_user_key"`
	TenantID     *uuid.UUID `gorm:"type:uuid;index"`
	Endpoint     string     `gorm:"size:255;not null"`
	RequestHash  string     `gorm:"size:64"`
	ResponseCode int        `gorm:"not null"`
	ResponseBody string     `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	ExpiresAt    time.Time  `gorm:"not null;index"`
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// Live reports whether the key can still be replayed at now
func (i *IdempotencyKey) Live(now time.Time) bool {
	return now.Before(i.ExpiresAt)
}

// Matches reports whether a request body hash is the one the key was stored
// with. Keys stored without a hash match any body.
func (i *IdempotencyKey) Matches(requestHash string) bool {
	return i.RequestHash == "" || i.RequestHash == requestHash
}
