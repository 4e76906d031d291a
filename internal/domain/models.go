package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a back-office user who can sign in to the admin application.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Customer represents a trading counterparty (buyer or supplier).
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Mobile    string    `db:"mobile" json:"mobile"`
	Email     string    `db:"email" json:"email"`
	Address   string    `db:"address" json:"address"`
	GSTNumber string    `db:"gst_number" json:"gst_number"`
	City      string    `db:"city" json:"city"`
	State     string    `db:"state" json:"state"`
	Pincode   string    `db:"pincode" json:"pincode"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// LineItem is one priced row of a purchase order or invoice. Purchase order
// rows additionally record the lot weights and oil content measured at the
// mill; invoice rows leave those fields null.
type LineItem struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	DocumentID     uuid.UUID       `db:"document_id" json:"document_id"`
	Position       int             `db:"position" json:"position"`
	Description    string          `db:"description" json:"description"`
	Quantity       decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice      decimal.Decimal `db:"unit_price" json:"unit_price"`
	TaxRatePercent decimal.Decimal `db:"tax_rate_percent" json:"tax_rate_percent"`

	GrossWeight       decimal.NullDecimal `db:"gross_weight" json:"gross_weight"`
	TareWeight        decimal.NullDecimal `db:"tare_weight" json:"tare_weight"`
	CleanWeight       decimal.NullDecimal `db:"clean_weight" json:"clean_weight"`
	OilContentPercent decimal.NullDecimal `db:"oil_content_percent" json:"oil_content_percent"`
}

// PurchaseOrder represents a purchase of raw produce from a counterparty.
type PurchaseOrder struct {
	ID              uuid.UUID           `db:"id" json:"id"`
	ReferenceNumber string              `db:"reference_number" json:"reference_number"`
	CustomerID      uuid.UUID           `db:"customer_id" json:"customer_id"`
	IssueDate       time.Time           `db:"issue_date" json:"issue_date"`
	DeliveryDate    time.Time           `db:"delivery_date" json:"delivery_date"`
	Status          PurchaseOrderStatus `db:"status" json:"status"`
	Notes           string              `db:"notes" json:"notes"`
	Terms           string              `db:"terms" json:"terms"`
	CreatedAt       time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `db:"updated_at" json:"updated_at"`

	Items  []LineItem     `db:"-" json:"items"`
	Totals DocumentTotals `db:"-" json:"totals"`
}

// RecomputeTotals refreshes the aggregate totals from the line items.
func (p *PurchaseOrder) RecomputeTotals() {
	p.Totals = TotalsOf(p.Items)
}

// Invoice represents a sales invoice issued to a counterparty.
type Invoice struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	ReferenceNumber string        `db:"reference_number" json:"reference_number"`
	CustomerID      uuid.UUID     `db:"customer_id" json:"customer_id"`
	IssueDate       time.Time     `db:"issue_date" json:"issue_date"`
	DueDate         time.Time     `db:"due_date" json:"due_date"`
	Status          InvoiceStatus `db:"status" json:"status"`
	Notes           string        `db:"notes" json:"notes"`
	Terms           string        `db:"terms" json:"terms"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`

	Items  []LineItem     `db:"-" json:"items"`
	Totals DocumentTotals `db:"-" json:"totals"`
}

// RecomputeTotals refreshes the aggregate totals from the line items.
func (i *Invoice) RecomputeTotals() {
	i.Totals = TotalsOf(i.Items)
}

// Stats holds the dashboard counters.
type Stats struct {
	Customers          int                         `json:"customers"`
	PurchaseOrders     int                         `json:"purchase_orders"`
	Invoices           int                         `json:"invoices"`
	PurchaseOrdersBy   map[PurchaseOrderStatus]int `json:"purchase_orders_by_status"`
	InvoicesBy         map[InvoiceStatus]int       `json:"invoices_by_status"`
	OutstandingAmount  decimal.Decimal             `json:"outstanding_invoice_total"`
}
