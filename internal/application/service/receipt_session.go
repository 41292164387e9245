package service

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/pkg/apperror"
)

// ReceiptSession is the editable state behind one receipt being prepared.
// The receipt number and school header are fixed when the session opens.
type ReceiptSession struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	UserID        uuid.UUID
	ReceiptNumber string
	Payment       ReceiptPayment
	School        entity.SchoolInfo
	Currency      string
	Mode          enum.ReceiptMode
	Size          entity.ReceiptSize
	Fields        entity.ReceiptFields
	// Candidates lists the payer first, then siblings by name
	Candidates []ReceiptStudent
	Selection  []uuid.UUID
	CreatedAt  time.Time
}

// Clone returns a deep copy safe to hand outside the session store
func (s ReceiptSession) Clone() ReceiptSession {
	s.Candidates = slices.Clone(s.Candidates)
	s.Selection = slices.Clone(s.Selection)
	return s
}

// SetMode switches between individual and family receipts
func (s *ReceiptSession) SetMode(mode enum.ReceiptMode) error {
	if !mode.IsValid() {
		return apperror.NewBadRequestError("mode must be individual or family")
	}
	s.Mode = mode
	return nil
}

// SetSize changes the paper size
func (s *ReceiptSession) SetSize(size entity.ReceiptSize) error {
	if !size.IsValid() {
		return apperror.NewBadRequestError("size must be one of A7, A6, A5, A4")
	}
	s.Size = size
	return nil
}

// ToggleStudent adds a sibling to the family selection or removes it. The
// payer can never be removed.
func (s *ReceiptSession) ToggleStudent(studentID uuid.UUID) error {
	if studentID == s.Payment.StudentID {
		return apperror.ErrPayerNotRemovable
	}
	if !s.isCandidate(studentID) {
		return apperror.NewNotFoundError("Sibling")
	}
	if i := slices.Index(s.Selection, studentID); i >= 0 {
		s.Selection = slices.Delete(s.Selection, i, i+1)
		return nil
	}
	s.Selection = append(s.Selection, studentID)
	return nil
}

// IsSelected reports whether studentID is in the family selection
func (s *ReceiptSession) IsSelected(studentID uuid.UUID) bool {
	return slices.Contains(s.Selection, studentID)
}

func (s *ReceiptSession) isCandidate(studentID uuid.UUID) bool {
	for _, c := range s.Candidates {
		if c.ID == studentID {
			return true
		}
	}
	return false
}

// Build derives the receipt document from the current state
func (s *ReceiptSession) Build() entity.ReceiptData {
	candidates := make(map[uuid.UUID]ReceiptStudent, len(s.Candidates))
	for _, c := range s.Candidates {
		candidates[c.ID] = c
	}
	return BuildReceiptData(ReceiptBuildInput{
		Mode:          s.Mode,
		ReceiptNumber: s.ReceiptNumber,
		Payment:       s.Payment,
		Candidates:    candidates,
		Selection:     s.Selection,
		School:        s.School,
		Fields:        s.Fields,
		Currency:      s.Currency,
	})
}
