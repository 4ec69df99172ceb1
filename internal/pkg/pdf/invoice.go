// internal/pkg/pdf/invoice.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// InvoiceLine is one purchased line on the invoice
type InvoiceLine struct {
	Name     string
	Quantity int
	Price    int64
	Total    int64
}

// Invoice is the render model for an order invoice
type Invoice struct {
	OrderNumber string
	Email       string
	CreatedAt   time.Time
	Lines       []InvoiceLine
	TotalAmount int64
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; color: #333; margin: 40px; }
  h1 { font-size: 24px; }
  .meta { margin-bottom: 24px; color: #666; }
  table { width: 100%; border-collapse: collapse; }
  th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid #ddd; }
  th { background: #f5f5f5; }
  td.amount, th.amount { text-align: right; }
  .total { font-weight: bold; font-size: 16px; }
</style>
</head>
<body>
  <h1>Invoice</h1>
  <div class="meta">
    <div>Order: {{.OrderNumber}}</div>
    {{if .Email}}<div>Billed to: {{.Email}}</div>{{end}}
    <div>Date: {{.CreatedAt.Format "January 2, 2006"}}</div>
  </div>
  <table>
    <tr><th>Item</th><th class="amount">Qty</th><th class="amount">Unit Price</th><th class="amount">Total</th></tr>
    {{range .Lines}}
    <tr>
      <td>{{.Name}}</td>
      <td class="amount">{{.Quantity}}</td>
      <td class="amount">{{dollars .Price}}</td>
      <td class="amount">{{dollars .Total}}</td>
    </tr>
    {{end}}
    <tr class="total"><td colspan="3">Total Paid</td><td class="amount">{{dollars .TotalAmount}}</td></tr>
  </table>
</body>
</html>`

var invoiceTmpl = template.Must(
	template.New("invoice").Funcs(template.FuncMap{
		"dollars": func(cents int64) string {
			return fmt.Sprintf("$%.2f", float64(cents)/100)
		},
	}).Parse(invoiceTemplate),
)

// Generator renders order invoices as PDF
type Generator struct{}

// NewGenerator creates a new invoice generator
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateInvoice renders the invoice to PDF bytes
func (g *Generator) GenerateInvoice(invoice *Invoice) ([]byte, error) {
	var html bytes.Buffer
	if err := invoiceTmpl.Execute(&html, invoice); err != nil {
		return nil, fmt.Errorf("failed to render invoice template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html.Bytes()))
	page.DisableExternalLinks.Set(true)
	pdfg.AddPage(page)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}

	return pdfg.Bytes(), nil
}
