package render

import (
	"math"

	"github.com/sangkips/shulefees-api/internal/domain/entity"
)

// mmPerPt converts typographic points to millimetres
const mmPerPt = 25.4 / 72

// Default preview box in CSS pixels
const (
	DefaultPreviewWidthPx  = 320.0
	DefaultPreviewHeightPx = 450.0
)

// PreviewBox is the on-screen area a preview must fit inside
type PreviewBox struct {
	WidthPx  float64
	HeightPx float64
}

// Element kinds in a preview
const (
	KindText      = "text"
	KindPair      = "pair"
	KindInfoRow   = "info_row"
	KindRule      = "rule"
	KindTable     = "table"
	KindSignature = "signature"
)

// PreviewElement is one block of the on-screen layout
type PreviewElement struct {
	Kind   string  `json:"kind"`
	Role   Role    `json:"role,omitempty"`
	Text   string  `json:"text,omitempty"`
	Left   *Pair   `json:"left,omitempty"`
	Right  *Pair   `json:"right,omitempty"`
	Table  *Table  `json:"table,omitempty"`
	Align  string  `json:"align,omitempty"`
	Bold   bool    `json:"bold,omitempty"`
	FontPt float64 `json:"font_pt,omitempty"`
	FontPx float64 `json:"font_px,omitempty"`
	// WidthRatio is the share of the content width a rule or signature line spans
	WidthRatio float64 `json:"width_ratio,omitempty"`
}

// Preview is a scaled page model the client draws as-is
type Preview struct {
	Page       entity.PageSpec    `json:"page"`
	Fit        float64            `json:"fit"`
	WidthPx    float64            `json:"width_px"`
	HeightPx   float64            `json:"height_px"`
	PaddingPx  float64            `json:"padding_px"`
	Typography Typography         `json:"typography"`
	Elements   []PreviewElement   `json:"elements"`
	Receipt    entity.ReceiptData `json:"receipt"`
}

// FitRatio is the pixels-per-millimetre factor that fits the page in box
func FitRatio(spec entity.PageSpec, box PreviewBox) float64 {
	return math.Min(box.WidthPx/spec.WidthMm, box.HeightPx/spec.HeightMm)
}

// RenderPreview builds the preview layout for data on size. Text sizes are
// base × scale in points and additionally × fit in pixels.
func RenderPreview(data entity.ReceiptData, size entity.ReceiptSize, box PreviewBox) Preview {
	if box.WidthPx <= 0 || box.HeightPx <= 0 {
		box = PreviewBox{WidthPx: DefaultPreviewWidthPx, HeightPx: DefaultPreviewHeightPx}
	}
	spec := size.Spec()
	fit := FitRatio(spec, box)
	typo := TypographyFor(size)
	c := Compose(data)

	p := Preview{
		Page:       spec,
		Fit:        fit,
		WidthPx:    round2(spec.WidthMm * fit),
		HeightPx:   round2(spec.HeightMm * fit),
		PaddingPx:  round2(8 * typo.Scale * fit),
		Typography: typo,
		Receipt:    data,
	}

	text := func(role Role, s, align string, bold bool) {
		pt := typo.ForRole(role)
		p.Elements = append(p.Elements, PreviewElement{
			Kind: KindText, Role: role, Text: s, Align: align, Bold: bold,
			FontPt: round2(pt), FontPx: round2(pt * mmPerPt * fit),
		})
	}
	pair := func(role Role, kv Pair, bold bool) {
		pt := typo.ForRole(role)
		kvCopy := kv
		p.Elements = append(p.Elements, PreviewElement{
			Kind: KindPair, Role: role, Left: &kvCopy, Bold: bold,
			FontPt: round2(pt), FontPx: round2(pt * mmPerPt * fit),
		})
	}
	rule := func() {
		p.Elements = append(p.Elements, PreviewElement{Kind: KindRule, WidthRatio: 1})
	}

	text(RoleSchoolName, c.SchoolName, "center", true)
	if c.SchoolAddress != "" {
		text(RoleSmall, c.SchoolAddress, "center", false)
	}
	if c.SchoolPhone != "" {
		text(RoleSmall, c.SchoolPhone, "center", false)
	}
	text(RoleTitle, c.Title, "center", true)

	left, right := c.ReceiptNo, c.Date
	pt := typo.Body
	p.Elements = append(p.Elements, PreviewElement{
		Kind: KindInfoRow, Role: RoleBody, Left: &left, Right: &right,
		FontPt: round2(pt), FontPx: round2(pt * mmPerPt * fit),
	})
	rule()
	pair(RoleBody, c.Method, false)

	if c.Table != nil {
		text(RoleBody, c.Banner, "center", true)
		pt := typo.Table
		p.Elements = append(p.Elements, PreviewElement{
			Kind: KindTable, Role: RoleTable, Table: c.Table,
			FontPt: round2(pt), FontPx: round2(pt * mmPerPt * fit),
		})
	} else {
		for _, d := range c.Details {
			pair(RoleBody, d, false)
		}
	}

	rule()
	pair(RoleSummary, c.AmountPaid, true)
	pair(RoleBody, c.InWords, false)
	pair(RoleBody, c.Balance, false)
	if c.Notes != nil {
		pair(RoleSmall, *c.Notes, false)
	}

	sigPt := typo.Footer
	p.Elements = append(p.Elements, PreviewElement{
		Kind: KindSignature, Role: RoleFooter, Text: c.Signature, Align: "center",
		FontPt: round2(sigPt), FontPx: round2(sigPt * mmPerPt * fit), WidthRatio: 0.4,
	})
	text(RoleFooter, c.ThankYou, "center", false)
	return p
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
