package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
)

const pdfFont = "Helvetica"

// PDFOptions tunes the PDF writer
type PDFOptions struct {
	// Uncompressed leaves content streams readable; used by tests
	Uncompressed bool
}

// PDFFileName is the download name for a receipt PDF
func PDFFileName(receiptNumber string) string {
	return "Receipt-" + receiptNumber + ".pdf"
}

// RenderPDF draws the receipt on a single page exactly the size of size.
// Margins are 8mm × the size's font scale. Student names in the family
// table are cut to 20 characters.
func RenderPDF(data entity.ReceiptData, size entity.ReceiptSize, opts PDFOptions) ([]byte, error) {
	spec := size.Spec()
	typo := TypographyFor(size)
	c := Compose(data)

	orientation := "P"
	pageSize := fpdf.SizeType{Wd: spec.WidthMm, Ht: spec.HeightMm}
	if spec.WidthMm > spec.HeightMm {
		orientation = "L"
		pageSize = fpdf.SizeType{Wd: spec.HeightMm, Ht: spec.WidthMm}
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           pageSize,
	})
	pdf.SetCompression(!opts.Uncompressed)
	pdf.SetTitle("Receipt "+data.ReceiptNumber, true)
	margin := 8 * typo.Scale
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*margin
	lineH := func(pt float64) float64 { return pt * mmPerPt * 1.45 }

	centered := func(text string, pt float64, style string) {
		pdf.SetFont(pdfFont, style, pt)
		pdf.MultiCell(contentW, lineH(pt), tr(text), "", "C", false)
	}
	labelled := func(p Pair, pt float64, style string) {
		pdf.SetFont(pdfFont, style, pt)
		pdf.MultiCell(contentW, lineH(pt), tr(p.Label+" "+p.Value), "", "L", false)
	}
	rule := func() {
		y := pdf.GetY() + 0.5
		pdf.Line(margin, y, pageW-margin, y)
		pdf.SetY(y + 1.5*typo.Scale)
	}

	// header
	centered(c.SchoolName, typo.SchoolName, "B")
	if c.SchoolAddress != "" {
		centered(c.SchoolAddress, typo.Small, "")
	}
	if c.SchoolPhone != "" {
		centered(c.SchoolPhone, typo.Small, "")
	}
	pdf.Ln(1.5 * typo.Scale)
	centered(c.Title, typo.Title, "B")
	pdf.Ln(1.5 * typo.Scale)

	// receipt number left, date right
	pdf.SetFont(pdfFont, "", typo.Body)
	h := lineH(typo.Body)
	pdf.CellFormat(contentW/2, h, tr(c.ReceiptNo.Label+" "+c.ReceiptNo.Value), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, h, tr(c.Date.Label+" "+c.Date.Value), "", 1, "R", false, 0, "")
	rule()
	labelled(c.Method, typo.Body, "")

	if c.Table != nil {
		pdf.Ln(1.5 * typo.Scale)
		centered(c.Banner, typo.Body, "B")
		drawTable(pdf, tr, c.Table, contentW, typo.Table, lineH(typo.Table))
	} else {
		for _, d := range c.Details {
			labelled(d, typo.Body, "")
		}
	}

	pdf.Ln(1 * typo.Scale)
	rule()
	labelled(c.AmountPaid, typo.Summary, "B")
	labelled(c.InWords, typo.Body, "")
	labelled(c.Balance, typo.Body, "")
	if c.Notes != nil {
		labelled(*c.Notes, typo.Small, "I")
	}

	// signature line at 40% of the content width
	pdf.Ln(10 * typo.Scale)
	sigW := contentW * 0.4
	sigX := margin + (contentW-sigW)/2
	y := pdf.GetY()
	pdf.Line(sigX, y, sigX+sigW, y)
	pdf.SetY(y + 1)
	centered(c.Signature, typo.Footer, "")
	pdf.Ln(2 * typo.Scale)
	centered(c.ThankYou, typo.Footer, "I")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// column shares of the content width: Student, Adm. No., Class, Amount, Balance
var tableShares = []float64{0.30, 0.17, 0.17, 0.18, 0.18}

func drawTable(pdf *fpdf.Fpdf, tr func(string) string, t *Table, contentW, pt, h float64) {
	align := func(i int) string {
		if i < len(t.RightAligned) && t.RightAligned[i] {
			return "R"
		}
		return "L"
	}

	pdf.SetFont(pdfFont, "B", pt)
	for i, head := range t.Headers {
		ln := 0
		if i == len(t.Headers)-1 {
			ln = 1
		}
		pdf.CellFormat(contentW*tableShares[i], h, tr(head), "B", ln, align(i), false, 0, "")
	}

	pdf.SetFont(pdfFont, "", pt)
	for _, row := range t.Rows {
		for i, cell := range row {
			if i == 0 {
				cell = truncateRunes(cell, pdfNameLimit)
			}
			ln := 0
			if i == len(row)-1 {
				ln = 1
			}
			pdf.CellFormat(contentW*tableShares[i], h, tr(cell), "", ln, align(i), false, 0, "")
		}
	}
}
