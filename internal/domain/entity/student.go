package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/pkg/utils"
	"gorm.io/gorm"
)

// Student is an enrolled learner. Students that share a guardian phone are
// treated as siblings for family receipts.
type Student struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID        uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_students_tenant_adm" json:"tenant_id"`
	FirstName       string             `gorm:"size:100;not null" json:"first_name"`
	LastName        string             `gorm:"size:100;not null" json:"last_name"`
	AdmissionNumber *string            `gorm:"size:50;uniqueIndex:idx_students_tenant_adm" json:"admission_number"`
	ClassID         *uuid.UUID         `gorm:"type:uuid;index" json:"class_id"`
	GuardianName    string             `gorm:"size:255" json:"guardian_name"`
	GuardianPhone   string             `gorm:"size:50" json:"guardian_phone"`
	GuardianKey     string             `gorm:"size:50;index" json:"-"`
	Status          enum.StudentStatus `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	Class *Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = enum.StudentStatusActive
	}
	return nil
}

// BeforeSave keeps the normalized guardian phone in sync
func (s *Student) BeforeSave(tx *gorm.DB) error {
	s.GuardianKey = utils.NormalizePhone(s.GuardianPhone)
	return nil
}

func (Student) TableName() string {
	return "students"
}

func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// ClassName returns the loaded class name or "" when unassigned
func (s *Student) ClassName() string {
	if s.Class == nil {
		return ""
	}
	return s.Class.Name
}
