package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Class is a grade or stream together with its fee structure
type Class struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_classes_tenant_name" json:"tenant_id"`
	Name        string          `gorm:"size:100;not null;uniqueIndex:idx_classes_tenant_name" json:"name"`
	Level       int             `gorm:"default:0" json:"level"`
	MonthlyFee  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"monthly_fee"`
	AnnualFee   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"annual_fee"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (c *Class) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Class) TableName() string {
	return "classes"
}

// TotalFee is the amount a student in this class owes for the year:
// the annual fee when set, otherwise twelve monthly fees.
func (c *Class) TotalFee() decimal.Decimal {
	if c.AnnualFee.IsPositive() {
		return c.AnnualFee
	}
	return c.MonthlyFee.Mul(decimal.NewFromInt(12))
}
