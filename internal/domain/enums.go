package domain

// UserRole defines the role hierarchy for back-office users.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

// PurchaseOrderStatus represents the lifecycle of a purchase order.
type PurchaseOrderStatus string

const (
	POStatusDraft     PurchaseOrderStatus = "draft"
	POStatusPending   PurchaseOrderStatus = "pending"
	POStatusApproved  PurchaseOrderStatus = "approved"
	POStatusCompleted PurchaseOrderStatus = "completed"
	POStatusCancelled PurchaseOrderStatus = "cancelled"
)

// PurchaseOrderStatuses lists the accepted purchase order statuses in display order.
var PurchaseOrderStatuses = []PurchaseOrderStatus{
	POStatusDraft, POStatusPending, POStatusApproved, POStatusCompleted, POStatusCancelled,
}

// IsValid reports whether the status belongs to the purchase order vocabulary.
func (s PurchaseOrderStatus) IsValid() bool {
	for _, v := range PurchaseOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// InvoiceStatus represents the lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// InvoiceStatuses lists the accepted invoice statuses in display order.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled,
}

// IsValid reports whether the status belongs to the invoice vocabulary.
func (s InvoiceStatus) IsValid() bool {
	for _, v := range InvoiceStatuses {
		if s == v {
			return true
		}
	}
	return false
}
