package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ReportMeta describes the header of an exported report
type ReportMeta struct {
	SchoolName  string
	Title       string
	Period      string
	Currency    string
	GeneratedAt time.Time
}

// PaymentRow is one line of the payments report
type PaymentRow struct {
	Date            time.Time
	StudentName     string
	AdmissionNumber string
	ClassName       string
	Method          string
	Reference       string
	Amount          decimal.Decimal
}

// BalanceRow is one line of the balances report
type BalanceRow struct {
	StudentName     string
	AdmissionNumber string
	ClassName       string
	Fee             decimal.Decimal
	Paid            decimal.Decimal
	Balance         decimal.Decimal
}

const (
	reportSheet  = "Report"
	reportLayout = "02/01/2006"
)

// PaymentsWorkbook lays payments out as an xlsx sheet with a totals row
func PaymentsWorkbook(meta ReportMeta, rows []PaymentRow) ([]byte, error) {
	headers := []string{"Date", "Student", "Adm. No.", "Class", "Method", "Reference", "Amount (" + meta.Currency + ")"}
	cells := make([][]interface{}, 0, len(rows))
	total := decimal.Zero
	for _, r := range rows {
		cells = append(cells, []interface{}{
			r.Date.Format(reportLayout), r.StudentName, r.AdmissionNumber, r.ClassName,
			r.Method, r.Reference, r.Amount.InexactFloat64(),
		})
		total = total.Add(r.Amount)
	}
	totals := []interface{}{"Total", "", "", "", "", "", total.InexactFloat64()}
	return buildWorkbook(meta, headers, cells, totals, []int{6})
}

// BalancesWorkbook lays student balances out as an xlsx sheet with a totals row
func BalancesWorkbook(meta ReportMeta, rows []BalanceRow) ([]byte, error) {
	cur := " (" + meta.Currency + ")"
	headers := []string{"Student", "Adm. No.", "Class", "Fee" + cur, "Paid" + cur, "Balance" + cur}
	cells := make([][]interface{}, 0, len(rows))
	fee, paid, balance := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range rows {
		cells = append(cells, []interface{}{
			r.StudentName, r.AdmissionNumber, r.ClassName,
			r.Fee.InexactFloat64(), r.Paid.InexactFloat64(), r.Balance.InexactFloat64(),
		})
		fee = fee.Add(r.Fee)
		paid = paid.Add(r.Paid)
		balance = balance.Add(r.Balance)
	}
	totals := []interface{}{"Total", "", "", fee.InexactFloat64(), paid.InexactFloat64(), balance.InexactFloat64()}
	return buildWorkbook(meta, headers, cells, totals, []int{3, 4, 5})
}

// buildWorkbook writes a title block, a bold header row, data rows and a
// bold totals row. moneyCols are zero-based column indexes formatted #,##0.00.
func buildWorkbook(meta ReportMeta, headers []string, rows [][]interface{}, totals []interface{}, moneyCols []int) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}
	boldMoney, err := f.NewStyle(&excelize.Style{NumFmt: 4, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	info := [][]interface{}{
		{meta.SchoolName},
		{meta.Title},
		{"Period: " + meta.Period},
		{"Generated: " + meta.GeneratedAt.Format("02/01/2006 15:04")},
	}
	for i, line := range info {
		if err := setRow(f, 1, i+1, line); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(reportSheet, "A1", "A1", title); err != nil {
		return nil, err
	}

	headerRow := len(info) + 2
	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := setRow(f, 1, headerRow, headerCells); err != nil {
		return nil, err
	}
	if err := styleRow(f, headerRow, len(headers), bold); err != nil {
		return nil, err
	}

	for i, r := range rows {
		if err := setRow(f, 1, headerRow+1+i, r); err != nil {
			return nil, err
		}
	}

	totalRow := headerRow + len(rows) + 1
	if err := setRow(f, 1, totalRow, totals); err != nil {
		return nil, err
	}
	if err := styleRow(f, totalRow, len(headers), bold); err != nil {
		return nil, err
	}

	for _, col := range moneyCols {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			if err := f.SetCellStyle(reportSheet, fmt.Sprintf("%s%d", name, headerRow+1), fmt.Sprintf("%s%d", name, totalRow-1), money); err != nil {
				return nil, err
			}
		}
		cell := fmt.Sprintf("%s%d", name, totalRow)
		if err := f.SetCellStyle(reportSheet, cell, cell, boldMoney); err != nil {
			return nil, err
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(reportSheet, "A", last, 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, col, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(reportSheet, cell, &values)
}

func styleRow(f *excelize.File, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(reportSheet, first, last, style)
}

// PaymentsPDF renders the payments report on landscape A4 pages
func PaymentsPDF(meta ReportMeta, rows []PaymentRow) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.SetTitle(meta.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20
	shares := []float64{0.11, 0.24, 0.11, 0.13, 0.13, 0.14, 0.14}
	widths := make([]float64, len(shares))
	for i, s := range shares {
		widths[i] = contentW * s
	}
	headers := []string{"Date", "Student", "Adm. No.", "Class", "Method", "Reference", "Amount"}

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(235, 235, 235)
		for i, h := range headers {
			align := "L"
			if i == len(headers)-1 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr(meta.SchoolName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, tr(meta.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr("Period: "+meta.Period), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, "Generated: "+meta.GeneratedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	header()
	_, pageH := pdf.GetPageSize()
	total := decimal.Zero
	for _, r := range rows {
		if pdf.GetY()+6 > pageH-12 {
			pdf.AddPage()
			header()
		}
		values := []string{
			r.Date.Format(reportLayout), r.StudentName, r.AdmissionNumber, r.ClassName,
			r.Method, r.Reference, Money("", r.Amount),
		}
		for i, v := range values {
			align := "L"
			if i == len(values)-1 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, tr(fitText(pdf, v, widths[i]-2)), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
		total = total.Add(r.Amount)
	}

	pdf.SetFont("Helvetica", "B", 10)
	labelW := contentW - widths[len(widths)-1]
	pdf.CellFormat(labelW, 7, fmt.Sprintf("Total (%d payments)", len(rows)), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[len(widths)-1], 7, tr(Money(meta.Currency, total)), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payments pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// fitText shortens s until it fits in width mm at the current font
func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 1 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
