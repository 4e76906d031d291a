package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"agrodesk/internal/cache"
	"agrodesk/internal/domain"
	"agrodesk/internal/export"
	"agrodesk/internal/listing"
	"agrodesk/internal/port"
)

const dateLayout = "2006-01-02"

// PurchaseOrderInput is the DTO for creating or replacing a purchase order.
type PurchaseOrderInput struct {
	CustomerID   uuid.UUID                  `json:"customer_id" binding:"required"`
	IssueDate    string                     `json:"issue_date" binding:"required,datetime=2006-01-02"`
	DeliveryDate string                     `json:"delivery_date" binding:"required,datetime=2006-01-02"`
	Status       domain.PurchaseOrderStatus `json:"status"`
	Notes        string                     `json:"notes"`
	Terms        string                     `json:"terms"`
	Items        []LineItemInput            `json:"items" binding:"required,min=1,dive"`
}

// PurchaseOrderService defines the purchase order management contract.
type PurchaseOrderService interface {
	Create(ctx context.Context, input PurchaseOrderInput) (*domain.PurchaseOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	List(ctx context.Context, opts ListOptions) (listing.Page[domain.PurchaseOrder], error)
	Update(ctx context.Context, id uuid.UUID, input PurchaseOrderInput) (*domain.PurchaseOrder, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExportRegister(ctx context.Context, filter listing.FilterState) ([]byte, error)
}

type purchaseOrderService struct {
	repo      port.PurchaseOrderRepository
	customers port.CustomerRepository
	list      *cache.Collection[domain.PurchaseOrder]
}

// NewPurchaseOrderService creates a new PurchaseOrderService implementation.
func NewPurchaseOrderService(
	repo port.PurchaseOrderRepository,
	customers port.CustomerRepository,
	listCache *cache.Collection[domain.PurchaseOrder],
) PurchaseOrderService {
	return &purchaseOrderService{repo: repo, customers: customers, list: listCache}
}

func (s *purchaseOrderService) Create(ctx context.Context, input PurchaseOrderInput) (*domain.PurchaseOrder, error) {
	po, err := s.buildOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, po); err != nil {
		return nil, err
	}
	s.list.Invalidate()
	return po, nil
}

func (s *purchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *purchaseOrderService) List(ctx context.Context, opts ListOptions) (listing.Page[domain.PurchaseOrder], error) {
	orders, err := s.fetch(ctx, opts.Refresh)
	if err != nil {
		return listing.Page[domain.PurchaseOrder]{}, err
	}

	acc, err := s.orderAccessors(ctx)
	if err != nil {
		return listing.Page[domain.PurchaseOrder]{}, err
	}

	filtered := listing.Filter(orders, opts.Filter, acc)
	return listing.Paginate(filtered, opts.Page, opts.PageSize), nil
}

func (s *purchaseOrderService) Update(ctx context.Context, id uuid.UUID, input PurchaseOrderInput) (*domain.PurchaseOrder, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	po, err := s.buildOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	po.ID = existing.ID
	po.ReferenceNumber = existing.ReferenceNumber
	po.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, po); err != nil {
		return nil, err
	}
	s.list.ReplaceOrAppend(*po)
	return po, nil
}

func (s *purchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.list.Remove(id)
	return nil
}

func (s *purchaseOrderService) ExportRegister(ctx context.Context, filter listing.FilterState) ([]byte, error) {
	orders, err := s.fetch(ctx, false)
	if err != nil {
		return nil, err
	}

	names, err := s.customerNames(ctx)
	if err != nil {
		return nil, err
	}

	acc, err := s.orderAccessors(ctx)
	if err != nil {
		return nil, err
	}
	filtered := listing.Filter(orders, filter, acc)

	return export.PurchaseOrderRegister(filtered, names)
}

// buildOrder converts and validates the input, resolving the counterparty
// reference before anything is persisted.
func (s *purchaseOrderService) buildOrder(ctx context.Context, input PurchaseOrderInput) (*domain.PurchaseOrder, error) {
	status := input.Status
	if status == "" {
		status = domain.POStatusDraft
	}
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	issue, err := time.Parse(dateLayout, input.IssueDate)
	if err != nil {
		return nil, err
	}
	delivery, err := time.Parse(dateLayout, input.DeliveryDate)
	if err != nil {
		return nil, err
	}

	items := lineItemsToDomain(input.Items)
	if err := domain.ValidateLineItems(items); err != nil {
		return nil, err
	}

	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	po := &domain.PurchaseOrder{
		CustomerID:   input.CustomerID,
		IssueDate:    issue,
		DeliveryDate: delivery,
		Status:       status,
		Notes:        input.Notes,
		Terms:        input.Terms,
		Items:        items,
	}
	po.RecomputeTotals()
	return po, nil
}

// orderAccessors builds filter accessors whose search fields include the
// counterparty name, matching what the list screen shows.
func (s *purchaseOrderService) orderAccessors(ctx context.Context) (listing.Accessors[domain.PurchaseOrder], error) {
	names, err := s.customerNames(ctx)
	if err != nil {
		return listing.Accessors[domain.PurchaseOrder]{}, err
	}
	return listing.Accessors[domain.PurchaseOrder]{
		SearchFields: func(po domain.PurchaseOrder) []string {
			return []string{po.ReferenceNumber, names[po.CustomerID], po.Notes, po.Totals.Total.String()}
		},
		Status: func(po domain.PurchaseOrder) string { return string(po.Status) },
		Date:   func(po domain.PurchaseOrder) time.Time { return po.IssueDate },
	}, nil
}

func (s *purchaseOrderService) customerNames(ctx context.Context) (map[uuid.UUID]string, error) {
	customers, err := s.customers.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (s *purchaseOrderService) fetch(ctx context.Context, refresh bool) ([]domain.PurchaseOrder, error) {
	if !refresh {
		if cached, ok := s.list.Get(); ok {
			return cached, nil
		}
	}
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.list.Set(orders)
	return orders, nil
}
