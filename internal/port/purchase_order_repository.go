package port

import (
	"context"

	"github.com/google/uuid"

	"agrodesk/internal/domain"
)

// PurchaseOrderRepository is the persistence contract for purchase orders and
// their line items. Create assigns the server-generated reference number;
// Update replaces the document in full, line items included, inside one
// transaction.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	ListAll(ctx context.Context) ([]domain.PurchaseOrder, error)
	Update(ctx context.Context, po *domain.PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}
