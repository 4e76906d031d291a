package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"agrodesk/internal/cache"
	"agrodesk/internal/domain"
	"agrodesk/internal/listing"
	"agrodesk/internal/pdf"
	"agrodesk/internal/port"
)

// InvoiceInput is the DTO for creating or replacing an invoice.
type InvoiceInput struct {
	CustomerID uuid.UUID            `json:"customer_id" binding:"required"`
	IssueDate  string               `json:"issue_date" binding:"required,datetime=2006-01-02"`
	DueDate    string               `json:"due_date" binding:"required,datetime=2006-01-02"`
	Status     domain.InvoiceStatus `json:"status"`
	Notes      string               `json:"notes"`
	Terms      string               `json:"terms"`
	Items      []LineItemInput      `json:"items" binding:"required,min=1,dive"`
}

// InvoiceService defines the invoice management contract.
type InvoiceService interface {
	Create(ctx context.Context, input InvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, opts ListOptions) (listing.Page[domain.Invoice], error)
	Update(ctx context.Context, id uuid.UUID, input InvoiceInput) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RenderPDF(ctx context.Context, id uuid.UUID) (filename string, content []byte, err error)
}

type invoiceService struct {
	repo      port.InvoiceRepository
	customers port.CustomerRepository
	renderer  port.PDFRenderer
	company   pdf.Company
	list      *cache.Collection[domain.Invoice]
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	repo port.InvoiceRepository,
	customers port.CustomerRepository,
	renderer port.PDFRenderer,
	company pdf.Company,
	listCache *cache.Collection[domain.Invoice],
) InvoiceService {
	return &invoiceService{
		repo:      repo,
		customers: customers,
		renderer:  renderer,
		company:   company,
		list:      listCache,
	}
}

func (s *invoiceService) Create(ctx context.Context, input InvoiceInput) (*domain.Invoice, error) {
	inv, err := s.buildInvoice(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	s.list.Invalidate()
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, opts ListOptions) (listing.Page[domain.Invoice], error) {
	invoices, err := s.fetch(ctx, opts.Refresh)
	if err != nil {
		return listing.Page[domain.Invoice]{}, err
	}

	acc, err := s.invoiceAccessors(ctx)
	if err != nil {
		return listing.Page[domain.Invoice]{}, err
	}

	filtered := listing.Filter(invoices, opts.Filter, acc)
	return listing.Paginate(filtered, opts.Page, opts.PageSize), nil
}

func (s *invoiceService) Update(ctx context.Context, id uuid.UUID, input InvoiceInput) (*domain.Invoice, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inv, err := s.buildInvoice(ctx, input)
	if err != nil {
		return nil, err
	}
	inv.ID = existing.ID
	inv.ReferenceNumber = existing.ReferenceNumber
	inv.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	s.list.ReplaceOrAppend(*inv)
	return inv, nil
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.list.Remove(id)
	return nil
}

func (s *invoiceService) RenderPDF(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", nil, err
	}
	customer, err := s.customers.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return "", nil, err
	}

	html, err := pdf.InvoiceHTML(inv, customer, s.company)
	if err != nil {
		return "", nil, fmt.Errorf("invoiceService.RenderPDF template: %w", err)
	}

	content, err := s.renderer.RenderHTML(ctx, html)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	return fmt.Sprintf("Invoice_%s.pdf", inv.ReferenceNumber), content, nil
}

func (s *invoiceService) buildInvoice(ctx context.Context, input InvoiceInput) (*domain.Invoice, error) {
	status := input.Status
	if status == "" {
		status = domain.InvoiceStatusDraft
	}
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	issue, err := time.Parse(dateLayout, input.IssueDate)
	if err != nil {
		return nil, err
	}
	due, err := time.Parse(dateLayout, input.DueDate)
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

	inv := &domain.Invoice{
		CustomerID: input.CustomerID,
		IssueDate:  issue,
		DueDate:    due,
		Status:     status,
		Notes:      input.Notes,
		Terms:      input.Terms,
		Items:      items,
	}
	inv.RecomputeTotals()
	return inv, nil
}

func (s *invoiceService) invoiceAccessors(ctx context.Context) (listing.Accessors[domain.Invoice], error) {
	customers, err := s.customers.ListAll(ctx)
	if err != nil {
		return listing.Accessors[domain.Invoice]{}, err
	}
	names := make(map[uuid.UUID]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	return listing.Accessors[domain.Invoice]{
		SearchFields: func(inv domain.Invoice) []string {
			return []string{inv.ReferenceNumber, names[inv.CustomerID], inv.Notes, inv.Totals.Total.String()}
		},
		Status: func(inv domain.Invoice) string { return string(inv.Status) },
		Date:   func(inv domain.Invoice) time.Time { return inv.IssueDate },
	}, nil
}

func (s *invoiceService) fetch(ctx context.Context, refresh bool) ([]domain.Invoice, error) {
	if !refresh {
		if cached, ok := s.list.Get(); ok {
			return cached, nil
		}
	}
	invoices, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.list.Set(invoices)
	return invoices, nil
}
