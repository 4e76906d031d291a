package service

import (
	"context"

	"github.com/google/uuid"

	"agrodesk/internal/cache"
	"agrodesk/internal/domain"
	"agrodesk/internal/listing"
	"agrodesk/internal/port"
)

// CustomerInput is the DTO for creating or replacing a customer. Updates use
// the same shape because the edit form submits the full record.
type CustomerInput struct {
	Name      string `json:"name" binding:"required"`
	Mobile    string `json:"mobile" binding:"required,inmobile"`
	Email     string `json:"email" binding:"omitempty,email"`
	Address   string `json:"address"`
	GSTNumber string `json:"gst_number"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode" binding:"omitempty,pincode"`
}

// CustomerService defines the customer management contract.
type CustomerService interface {
	Create(ctx context.Context, input CustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, opts ListOptions) (listing.Page[domain.Customer], error)
	Update(ctx context.Context, id uuid.UUID, input CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo port.CustomerRepository
	list *cache.Collection[domain.Customer]
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(repo port.CustomerRepository, listCache *cache.Collection[domain.Customer]) CustomerService {
	return &customerService{repo: repo, list: listCache}
}

var customerAccessors = listing.Accessors[domain.Customer]{
	SearchFields: func(c domain.Customer) []string {
		return []string{c.Name, c.Mobile, c.Email, c.City, c.GSTNumber}
	},
}

func (s *customerService) Create(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	customer := input.toDomain()
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	// Refetch strategy: the server stamps identifiers and timestamps, so the
	// next list load rebuilds the collection from source.
	s.list.Invalidate()
	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, opts ListOptions) (listing.Page[domain.Customer], error) {
	customers, err := s.fetch(ctx, opts.Refresh)
	if err != nil {
		return listing.Page[domain.Customer]{}, err
	}
	filtered := listing.Filter(customers, opts.Filter, customerAccessors)
	return listing.Paginate(filtered, opts.Page, opts.PageSize), nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, input CustomerInput) (*domain.Customer, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	customer := input.toDomain()
	customer.ID = existing.ID
	customer.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	s.list.ReplaceOrAppend(*customer)
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.list.Remove(id)
	return nil
}

// fetch serves the cached collection while it is fresh; refresh or a stale
// cache goes back to the repository.
func (s *customerService) fetch(ctx context.Context, refresh bool) ([]domain.Customer, error) {
	if !refresh {
		if cached, ok := s.list.Get(); ok {
			return cached, nil
		}
	}
	customers, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.list.Set(customers)
	return customers, nil
}

func (in CustomerInput) toDomain() *domain.Customer {
	return &domain.Customer{
		Name:      in.Name,
		Mobile:    in.Mobile,
		Email:     in.Email,
		Address:   in.Address,
		GSTNumber: in.GSTNumber,
		City:      in.City,
		State:     in.State,
		Pincode:   in.Pincode,
	}
}
