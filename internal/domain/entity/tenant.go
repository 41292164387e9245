package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Tenant represents a school in the multitenant system
type Tenant struct {
	ID                 uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	Name               string                  `gorm:"size:255;not null" json:"name"`
	Slug               string                  `gorm:"size:255;unique;not null" json:"slug"`
	OwnerID            uuid.UUID               `gorm:"type:uuid;not null;index" json:"owner_id"`
	Settings           TenantSettings          `gorm:"type:jsonb;serializer:json" json:"settings"`
	Plan               string                  `gorm:"size:50;default:'basic'" json:"plan"`
	SubscriptionStatus enum.SubscriptionStatus `gorm:"size:20;default:'trial';index" json:"subscription_status"`
	TrialEndsAt        *time.Time              `json:"trial_ends_at,omitempty"`
	SubscriptionEndsAt *time.Time              `json:"subscription_ends_at,omitempty"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
	DeletedAt          gorm.DeletedAt          `gorm:"index" json:"-"`

	// Relationships
	Owner   User               `gorm:"foreignKey:OwnerID" json:"-"`
	Members []TenantMembership `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tenant
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// CanWrite reports whether the school may create or change records at now.
// A trial is writable until TrialEndsAt, an active subscription until
// SubscriptionEndsAt; a missing end date means open-ended.
func (t *Tenant) CanWrite(now time.Time) bool {
	switch t.SubscriptionStatus {
	case enum.SubscriptionStatusActive:
		return t.SubscriptionEndsAt == nil || now.Before(*t.SubscriptionEndsAt)
	case enum.SubscriptionStatusTrial, "":
		return t.TrialEndsAt == nil || now.Before(*t.TrialEndsAt)
	default:
		return false
	}
}

// Currency returns the money prefix used on receipts and reports
func (t *Tenant) Currency(fallback string) string {
	if t != nil && t.Settings.Currency != "" {
		return t.Settings.Currency
	}
	return fallback
}

// MemberUser represents a subset of user fields for membership responses
type MemberUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// TenantMembership represents a user's membership in a school
type TenantMembership struct {
	TenantID  uuid.UUID       `gorm:"type:uuid;primaryKey" json:"tenant_id"`
	UserID    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role      enum.MemberRole `gorm:"size:50;default:'member'" json:"role"`
	CreatedAt time.Time       `json:"created_at"`

	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	MemberUser *MemberUser `gorm:"-" json:"user,omitempty"`
}

// PopulateUserDetails populates the MemberUser field from the User relationship
func (tm *TenantMembership) PopulateUserDetails() {
	if tm.User.ID != uuid.Nil {
		tm.MemberUser = &MemberUser{
			ID:        tm.User.ID,
			FirstName: tm.User.FirstName,
			LastName:  tm.User.LastName,
			Email:     tm.User.Email,
		}
	}
}

// TableName returns the table name for the TenantMembership model
func (TenantMembership) TableName() string {
	return "tenant_memberships"
}

// TenantSettings holds per-school preferences
type TenantSettings struct {
	Currency   string `json:"currency,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	Locale     string `json:"locale,omitempty"`
	DateFormat string `json:"date_format,omitempty"`

	// Receipt defaults
	ReceiptSize    string `json:"receipt_size,omitempty"`
	SignatureLabel string `json:"signature_label,omitempty"`
}

// Scan implements the sql.Scanner interface for TenantSettings
func (ts *TenantSettings) Scan(value interface{}) error {
	if value == nil {
		*ts = TenantSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan TenantSettings: unsupported type")
	}

	return json.Unmarshal(bytes, ts)
}

// Value implements the driver.Valuer interface for TenantSettings
func (ts TenantSettings) Value() (driver.Value, error) {
	return json.Marshal(ts)
}

// DefaultTenantSettings returns default settings for new schools
func DefaultTenantSettings() TenantSettings {
	return TenantSettings{
		Currency:       "KES",
		Timezone:       "Africa/Nairobi",
		Locale:         "en-KE",
		DateFormat:     "DD/MM/YYYY",
		ReceiptSize:    string(ReceiptSizeA5),
		SignatureLabel: "Authorized Signature",
	}
}
