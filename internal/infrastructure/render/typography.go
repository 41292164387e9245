package render

import "github.com/sangkips/shulefees-api/internal/domain/entity"

// Base font sizes in points at scale 1.0 (A4).
const (
	baseSchoolName = 18.0
	baseTitle      = 14.0
	baseBody       = 10.0
	baseSmall      = 8.0
	baseTable      = 9.0
	baseSummary    = 11.0
	baseFooter     = 9.0
)

// Typography holds the font sizes, in points, every renderer uses for one
// receipt size. All values are base × the size's font scale.
type Typography struct {
	Scale      float64 `json:"scale"`
	SchoolName float64 `json:"school_name"`
	Title      float64 `json:"title"`
	Body       float64 `json:"body"`
	Small      float64 `json:"small"`
	Table      float64 `json:"table"`
	Summary    float64 `json:"summary"`
	Footer     float64 `json:"footer"`
}

// TypographyFor returns the scaled font sizes for size.
func TypographyFor(size entity.ReceiptSize) Typography {
	s := size.FontScale()
	return Typography{
		Scale:      s,
		SchoolName: baseSchoolName * s,
		Title:      baseTitle * s,
		Body:       baseBody * s,
		Small:      baseSmall * s,
		Table:      baseTable * s,
		Summary:    baseSummary * s,
		Footer:     baseFooter * s,
	}
}

// ForRole returns the size for a Role.
func (t Typography) ForRole(r Role) float64 {
	switch r {
	case RoleSchoolName:
		return t.SchoolName
	case RoleTitle:
		return t.Title
	case RoleSmall:
		return t.Small
	case RoleTable:
		return t.Table
	case RoleSummary:
		return t.Summary
	case RoleFooter:
		return t.Footer
	default:
		return t.Body
	}
}
