package render

import (
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/pkg/printer"
)

// RenderThermal writes the receipt as an ESC/POS job for a roll printer
// that fits charWidth characters per line.
func RenderThermal(data entity.ReceiptData, charWidth int) []byte {
	c := Compose(data)
	doc := printer.NewDocument(charWidth)
	w := doc.Width()

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).SetFontSize(printer.FontTall).
		Wrapped(c.SchoolName).
		SetFontSize(printer.FontNormal).SetBold(false)
	if c.SchoolAddress != "" {
		doc.Wrapped(c.SchoolAddress)
	}
	if c.SchoolPhone != "" {
		doc.Text(c.SchoolPhone)
	}
	doc.LineFeed().SetBold(true).Text(c.Title).SetBold(false)

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue(c.ReceiptNo.Label, c.ReceiptNo.Value).
		KeyValue(c.Date.Label, c.Date.Value).
		KeyValue(c.Method.Label, c.Method.Value).
		Separator('-')

	if c.Table != nil {
		doc.SetAlign(printer.AlignCenter).SetBold(true).Wrapped(c.Banner).SetBold(false).SetAlign(printer.AlignLeft)
		amountW := (w - 2) / 4
		cols := []printer.Column{
			{Width: w - 2 - 2*amountW, Align: printer.AlignLeft},
			{Width: amountW, Align: printer.AlignRight},
			{Width: amountW, Align: printer.AlignRight},
		}
		doc.SetBold(true).Row(cols, "Student", "Amount", "Balance").SetBold(false)
		for _, row := range c.Table.Rows {
			doc.Row(cols, row[0], stripCurrency(data.Currency, row[3]), stripCurrency(data.Currency, row[4]))
			doc.Text("  " + row[1] + " / " + row[2])
		}
		doc.Separator('-')
	} else {
		for _, d := range c.Details {
			doc.KeyValue(d.Label, d.Value)
		}
		doc.Separator('-')
	}

	doc.SetBold(true).KeyValue(c.AmountPaid.Label, c.AmountPaid.Value).SetBold(false).
		Wrapped(c.InWords.Label + " " + c.InWords.Value).
		KeyValue(c.Balance.Label, c.Balance.Value)
	if c.Notes != nil {
		doc.Wrapped(c.Notes.Label + " " + c.Notes.Value)
	}

	doc.FeedLines(3).
		SetAlign(printer.AlignCenter).
		Text("________________________").
		Text(c.Signature).
		LineFeed().
		Text(c.ThankYou).
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// stripCurrency drops the "KES " prefix to save width in narrow columns
func stripCurrency(currency, s string) string {
	prefix := currency + " "
	if currency != "" && len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}
