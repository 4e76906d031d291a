package port

import (
	"context"

	"github.com/google/uuid"

	"agrodesk/internal/domain"
)

// InvoiceRepository is the persistence contract for invoices and their line
// items. Semantics mirror PurchaseOrderRepository.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	ListAll(ctx context.Context) ([]domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}
