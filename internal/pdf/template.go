// Package pdf renders invoices to PDF through headless Chrome.
package pdf

import (
	"bytes"
	"html/template"

	"github.com/shopspring/decimal"

	"agrodesk/internal/domain"
)

// Company holds the letterhead details printed on every invoice.
type Company struct {
	Name string
	Line string
}

type invoiceRow struct {
	Position    int
	Description string
	Quantity    string
	UnitPrice   string
	TaxRate     string
	Total       string
}

type invoiceData struct {
	Company   Company
	Reference string
	IssueDate string
	DueDate   string
	Status    string
	Customer  *domain.Customer
	Rows      []invoiceRow
	Subtotal  string
	Tax       string
	Total     string
	Notes     string
	Terms     string
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; margin: 40px; }
  .header { display: flex; justify-content: space-between; border-bottom: 2px solid #444; padding-bottom: 12px; }
  .company h1 { margin: 0; font-size: 20px; }
  .company p { margin: 2px 0; color: #666; }
  .meta { text-align: right; }
  .meta .ref { font-size: 16px; font-weight: bold; }
  .parties { margin: 24px 0; }
  table.items { width: 100%; border-collapse: collapse; margin-top: 16px; }
  table.items th, table.items td { border: 1px solid #ccc; padding: 6px 8px; text-align: right; }
  table.items th { background: #f2f2f2; }
  table.items td.desc, table.items th.desc { text-align: left; }
  .totals { margin-top: 16px; width: 40%; margin-left: auto; }
  .totals td { padding: 4px 8px; text-align: right; }
  .totals .grand { font-weight: bold; border-top: 2px solid #444; }
  .notes { margin-top: 32px; color: #555; }
</style>
</head>
<body>
  <div class="header">
    <div class="company">
      <h1>{{.Company.Name}}</h1>
      <p>{{.Company.Line}}</p>
    </div>
    <div class="meta">
      <div class="ref">{{.Reference}}</div>
      <div>Issued: {{.IssueDate}}</div>
      <div>Due: {{.DueDate}}</div>
      <div>Status: {{.Status}}</div>
    </div>
  </div>

  <div class="parties">
    <strong>Billed to</strong><br>
    {{.Customer.Name}}<br>
    {{if .Customer.Address}}{{.Customer.Address}}<br>{{end}}
    {{if .Customer.City}}{{.Customer.City}}, {{.Customer.State}} {{.Customer.Pincode}}<br>{{end}}
    {{if .Customer.GSTNumber}}GSTIN: {{.Customer.GSTNumber}}<br>{{end}}
    Mobile: {{.Customer.Mobile}}
  </div>

  <table class="items">
    <tr>
      <th>#</th><th class="desc">Description</th><th>Qty</th>
      <th>Unit Price</th><th>Tax %</th><th>Amount</th>
    </tr>
    {{range .Rows}}
    <tr>
      <td>{{.Position}}</td>
      <td class="desc">{{.Description}}</td>
      <td>{{.Quantity}}</td>
      <td>{{.UnitPrice}}</td>
      <td>{{.TaxRate}}</td>
      <td>{{.Total}}</td>
    </tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td>{{.Subtotal}}</td></tr>
    <tr><td>Tax</td><td>{{.Tax}}</td></tr>
    <tr class="grand"><td>Total</td><td>{{.Total}}</td></tr>
  </table>

  {{if .Notes}}<div class="notes"><strong>Notes</strong><br>{{.Notes}}</div>{{end}}
  {{if .Terms}}<div class="notes"><strong>Terms</strong><br>{{.Terms}}</div>{{end}}
</body>
</html>`))

// money formats an amount for display with two decimal places. Display-only;
// stored values keep full precision.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// InvoiceHTML renders the invoice into the HTML document the PDF renderer
// prints.
func InvoiceHTML(inv *domain.Invoice, customer *domain.Customer, company Company) (string, error) {
	rows := make([]invoiceRow, len(inv.Items))
	for i, li := range inv.Items {
		a := li.Amounts()
		rows[i] = invoiceRow{
			Position:    i + 1,
			Description: li.Description,
			Quantity:    li.Quantity.String(),
			UnitPrice:   money(li.UnitPrice),
			TaxRate:     li.TaxRatePercent.String(),
			Total:       money(a.Total),
		}
	}

	totals := domain.TotalsOf(inv.Items)
	data := invoiceData{
		Company:   company,
		Reference: inv.ReferenceNumber,
		IssueDate: inv.IssueDate.Format("02-Jan-2006"),
		DueDate:   inv.DueDate.Format("02-Jan-2006"),
		Status:    string(inv.Status),
		Customer:  customer,
		Rows:      rows,
		Subtotal:  money(totals.Subtotal),
		Tax:       money(totals.Tax),
		Total:     money(totals.Total),
		Notes:     inv.Notes,
		Terms:     inv.Terms,
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
