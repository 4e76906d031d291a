package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"agrodesk/internal/cache"
	"agrodesk/internal/domain"
	"agrodesk/internal/listing"
	"agrodesk/internal/service"
	"agrodesk/mocks"
)

func listingFilter(search, status string) listing.FilterState {
	return listing.FilterState{Search: search, Status: status}
}

func newCustomerCache() *cache.Collection[domain.Customer] {
	return cache.NewCollection(30*time.Second, func(c domain.Customer) uuid.UUID { return c.ID })
}

func testCustomers(names ...string) []domain.Customer {
	customers := make([]domain.Customer, len(names))
	for i, name := range names {
		customers[i] = domain.Customer{ID: uuid.New(), Name: name, Mobile: "9800000000"}
	}
	return customers
}

func TestCustomerService_Create_Success(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	svc := service.NewCustomerService(repo, newCustomerCache())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Customer")).Return(nil)

	customer, err := svc.Create(context.Background(), service.CustomerInput{
		Name:   "Ramesh Traders",
		Mobile: "9876543210",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Ramesh Traders", customer.Name)
	repo.AssertExpectations(t)
}

func TestCustomerService_Create_InvalidatesListCache(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	listCache := newCustomerCache()
	svc := service.NewCustomerService(repo, listCache)

	seed := testCustomers("Old A", "Old B")
	repo.On("ListAll", mock.Anything).Return(seed, nil).Once()

	page, err := svc.List(context.Background(), service.ListOptions{Page: 1, PageSize: 10})
	assert.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Customer")).Return(nil)
	_, err = svc.Create(context.Background(), service.CustomerInput{Name: "New C", Mobile: "9876543210"})
	assert.NoError(t, err)

	// A fresh list load must hit the repository again.
	refetched := append(seed, testCustomers("New C")...)
	repo.On("ListAll", mock.Anything).Return(refetched, nil).Once()

	page, err = svc.List(context.Background(), service.ListOptions{Page: 1, PageSize: 10})
	assert.NoError(t, err)
	assert.Equal(t, 3, page.TotalItems)
	repo.AssertExpectations(t)
}

func TestCustomerService_List_ServesCacheWhileFresh(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	svc := service.NewCustomerService(repo, newCustomerCache())

	repo.On("ListAll", mock.Anything).Return(testCustomers("A", "B"), nil).Once()

	_, err := svc.List(context.Background(), service.ListOptions{Page: 1, PageSize: 10})
	assert.NoError(t, err)

	// Second call inside the TTL must not touch the repository.
	_, err = svc.List(context.Background(), service.ListOptions{Page: 1, PageSize: 10})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCustomerService_List_RefreshBypassesCache(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	svc := service.NewCustomerService(repo, newCustomerCache())

	repo.On("ListAll", mock.Anything).Return(testCustomers("A"), nil).Twice()

	_, err := svc.List(context.Background(), service.ListOptions{Page: 1, PageSize: 10})
	assert.NoError(t, err)

	_, err = svc.List(context.Background(), service.ListOptions{Page: 1, PageSize: 10, Refresh: true})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCustomerService_Update_ReplacesCachedElementInPlace(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	listCache := newCustomerCache()
	svc := service.NewCustomerService(repo, listCache)

	seed := testCustomers("First", "Second", "Third")
	target := seed[1]
	repo.On("ListAll", mock.Anything).Return(seed, nil).Once()

	_, err := svc.List(context.Background(), service.ListOptions{Page: 1, PageSize: 10})
	assert.NoError(t, err)

	repo.On("GetByID", mock.Anything, target.ID).Return(&target, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Customer")).Return(nil)

	updated, err := svc.Update(context.Background(), target.ID, service.CustomerInput{
		Name:   "Second Renamed",
		Mobile: "9876543210",
	})
	assert.NoError(t, err)
	assert.Equal(t, target.ID, updated.ID)

	// The cached collection keeps its order with the element swapped in place.
	page, err := svc.List(context.Background(), service.ListOptions{Page: 1, PageSize: 10})
	assert.NoError(t, err)
	assert.Equal(t, []string{"First", "Second Renamed", "Third"},
		[]string{page.Items[0].Name, page.Items[1].Name, page.Items[2].Name})
	repo.AssertExpectations(t)
}

func TestCustomerService_Update_NotFound(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	svc := service.NewCustomerService(repo, newCustomerCache())

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrCustomerNotFound)

	updated, err := svc.Update(context.Background(), id, service.CustomerInput{
		Name:   "Ghost",
		Mobile: "9876543210",
	})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomerService_Delete_RemovesFromCache(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	svc := service.NewCustomerService(repo, newCustomerCache())

	seed := testCustomers("Keep", "Drop")
	repo.On("ListAll", mock.Anything).Return(seed, nil).Once()

	_, err := svc.List(context.Background(), service.ListOptions{Page: 1, PageSize: 10})
	assert.NoError(t, err)

	repo.On("Delete", mock.Anything, seed[1].ID).Return(nil)
	assert.NoError(t, svc.Delete(context.Background(), seed[1].ID))

	page, err := svc.List(context.Background(), service.ListOptions{Page: 1, PageSize: 10})
	assert.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)
	assert.Equal(t, "Keep", page.Items[0].Name)
	repo.AssertExpectations(t)
}

func TestCustomerService_Delete_FailureLeavesCacheUntouched(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	svc := service.NewCustomerService(repo, newCustomerCache())

	seed := testCustomers("A", "B")
	repo.On("ListAll", mock.Anything).Return(seed, nil).Once()

	_, err := svc.List(context.Background(), service.ListOptions{Page: 1, PageSize: 10})
	assert.NoError(t, err)

	repo.On("Delete", mock.Anything, seed[0].ID).Return(domain.ErrCustomerInUse)
	assert.ErrorIs(t, svc.Delete(context.Background(), seed[0].ID), domain.ErrCustomerInUse)

	page, err := svc.List(context.Background(), service.ListOptions{Page: 1, PageSize: 10})
	assert.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)
	repo.AssertExpectations(t)
}

func TestCustomerService_List_SearchFilter(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	svc := service.NewCustomerService(repo, newCustomerCache())

	customers := []domain.Customer{
		{ID: uuid.New(), Name: "Gujarat Groundnuts", Mobile: "9000000001", City: "Rajkot"},
		{ID: uuid.New(), Name: "Chennai Oils", Mobile: "9000000002", City: "Chennai"},
	}
	repo.On("ListAll", mock.Anything).Return(customers, nil).Once()

	page, err := svc.List(context.Background(), service.ListOptions{
		Filter: listingFilter("rajkot", ""),
		Page:   1, PageSize: 10,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)
	assert.Equal(t, "Gujarat Groundnuts", page.Items[0].Name)
}

func TestCustomerService_List_RepoError(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	svc := service.NewCustomerService(repo, newCustomerCache())

	repo.On("ListAll", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := svc.List(context.Background(), service.ListOptions{Page: 1, PageSize: 10})
	assert.Error(t, err)
}
