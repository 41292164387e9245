package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/sangkips/shulefees-api/internal/domain/entity"
)

// printMarginMm is the fixed @page margin of the print document
const printMarginMm = 8

var printTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"pt": func(v float64) string { return fmt.Sprintf("%.2fpt", v) },
	"mm": func(v float64) string { return fmt.Sprintf("%gmm", v) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Receipt {{.C.ReceiptNo.Value}}</title>
<style>
@page { size: {{mm .Page.WidthMm}} {{mm .Page.HeightMm}}; margin: {{mm .Margin}}; }
* { box-sizing: border-box; }
body { margin: 0; font-family: Helvetica, Arial, sans-serif; font-size: {{pt .T.Body}}; color: #000; }
.center { text-align: center; }
.school { font-size: {{pt .T.SchoolName}}; font-weight: bold; }
.small { font-size: {{pt .T.Small}}; }
.title { font-size: {{pt .T.Title}}; font-weight: bold; margin: 4pt 0; }
.info { display: flex; justify-content: space-between; border-bottom: 1px solid #000; padding-bottom: 2pt; }
.banner { font-weight: bold; margin: 4pt 0; }
table { width: 100%; border-collapse: collapse; font-size: {{pt .T.Table}}; }
th { text-align: left; border-bottom: 1px solid #000; }
.num { text-align: right; }
.summary { border-top: 1px solid #000; margin-top: 4pt; padding-top: 2pt; }
.paid { font-size: {{pt .T.Summary}}; font-weight: bold; }
.footer { font-size: {{pt .T.Footer}}; margin-top: 16pt; }
.sig { width: 40%; margin: 0 auto; border-top: 1px solid #000; padding-top: 2pt; }
</style>
</head>
<body onload="window.print()" onafterprint="window.close()">
<div class="center school">{{.C.SchoolName}}</div>
{{- if .C.SchoolAddress}}
<div class="center small">{{.C.SchoolAddress}}</div>
{{- end}}
{{- if .C.SchoolPhone}}
<div class="center small">{{.C.SchoolPhone}}</div>
{{- end}}
<div class="center title">{{.C.Title}}</div>
<div class="info"><span>{{.C.ReceiptNo.Label}} {{.C.ReceiptNo.Value}}</span><span>{{.C.Date.Label}} {{.C.Date.Value}}</span></div>
<div>{{.C.Method.Label}} {{.C.Method.Value}}</div>
{{- if .C.Table}}
<div class="center banner">{{.C.Banner}}</div>
<table>
<thead><tr>{{range $i, $h := .C.Table.Headers}}<th{{if index $.C.Table.RightAligned $i}} class="num"{{end}}>{{$h}}</th>{{end}}</tr></thead>
<tbody>
{{- range .C.Table.Rows}}
<tr>{{range $i, $cell := .}}<td{{if index $.C.Table.RightAligned $i}} class="num"{{end}}>{{$cell}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
{{- else}}
{{- range .C.Details}}
<div>{{.Label}} {{.Value}}</div>
{{- end}}
{{- end}}
<div class="summary">
<div class="paid">{{.C.AmountPaid.Label}} {{.C.AmountPaid.Value}}</div>
<div>{{.C.InWords.Label}} {{.C.InWords.Value}}</div>
<div>{{.C.Balance.Label}} {{.C.Balance.Value}}</div>
{{- if .C.Notes}}
<div class="small">{{.C.Notes.Label}} {{.C.Notes.Value}}</div>
{{- end}}
</div>
<div class="footer center">
<div class="sig">{{.C.Signature}}</div>
<p>{{.C.ThankYou}}</p>
</div>
</body>
</html>
`))

type printView struct {
	C      Composition
	Page   entity.PageSpec
	T      Typography
	Margin float64
}

// RenderPrintHTML returns a standalone HTML document sized for size that
// opens the print dialog on load and closes itself afterwards.
func RenderPrintHTML(data entity.ReceiptData, size entity.ReceiptSize) ([]byte, error) {
	var buf bytes.Buffer
	err := printTemplate.Execute(&buf, printView{
		C:      Compose(data),
		Page:   size.Spec(),
		T:      TypographyFor(size),
		Margin: printMarginMm,
	})
	if err != nil {
		return nil, fmt.Errorf("render print html: %w", err)
	}
	return buf.Bytes(), nil
}
