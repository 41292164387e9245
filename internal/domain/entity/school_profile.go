package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolProfile holds the letterhead details printed on receipts and reports
type SchoolProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"tenant_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Email     string    `gorm:"size:255" json:"email"`
	Motto     string    `gorm:"size:255" json:"motto"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *SchoolProfile) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (SchoolProfile) TableName() string {
	return "school_profiles"
}
