package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is one fee payment made for a student
type Payment struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	StudentID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"student_id"`
	Amount      decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentDate time.Time          `gorm:"type:date;not null;index" json:"payment_date"`
	Method      enum.PaymentMethod `gorm:"size:30;not null;default:'cash'" json:"payment_method"`
	Reference   string             `gorm:"size:100" json:"reference,omitempty"`
	Notes       string             `gorm:"type:text" json:"notes,omitempty"`
	RecordedBy  *uuid.UUID         `gorm:"type:uuid" json:"recorded_by,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Payment) TableName() string {
	return "payments"
}
