package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"agrodesk/internal/domain"
	"agrodesk/internal/handler"
	"agrodesk/internal/listing"
	"agrodesk/internal/service"
	"agrodesk/mocks"
)

func newOrderHandler() (*handler.PurchaseOrderHandler, *mocks.MockPurchaseOrderService) {
	mockSvc := new(mocks.MockPurchaseOrderService)
	h := handler.NewPurchaseOrderHandler(mockSvc)
	return h, mockSvc
}

func orderPayload(customerID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"customer_id":   customerID,
		"issue_date":    "2026-08-01",
		"delivery_date": "2026-08-15",
		"items": []map[string]interface{}{
			{
				"description":      "Bold groundnuts, 40/50 count",
				"quantity":         "100",
				"unit_price":       "85",
				"tax_rate_percent": "5",
				"gross_weight":     "5200",
				"tare_weight":      "200",
			},
		},
	}
}

func TestPurchaseOrderHandler_Create_Success(t *testing.T) {
	h, mockSvc := newOrderHandler()

	customerID := uuid.New()
	expected := &domain.PurchaseOrder{
		ID:              uuid.New(),
		ReferenceNumber: "PO-2026-0001",
		CustomerID:      customerID,
		Status:          domain.POStatusDraft,
	}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(input service.PurchaseOrderInput) bool {
		return input.CustomerID == customerID &&
			input.Items[0].GrossWeight != nil && input.Items[0].TareWeight != nil
	})).Return(expected, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/purchase-orders", orderPayload(customerID))

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestPurchaseOrderHandler_Create_UnknownCustomer(t *testing.T) {
	h, mockSvc := newOrderHandler()

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("service.PurchaseOrderInput")).
		Return(nil, domain.ErrCustomerNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/purchase-orders", orderPayload(uuid.New()))

	h.Create(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPurchaseOrderHandler_List_StatusFilter(t *testing.T) {
	h, mockSvc := newOrderHandler()

	page := listing.Page[domain.PurchaseOrder]{
		Items:      []domain.PurchaseOrder{},
		TotalItems: 0,
		TotalPages: 1,
		Page:       1,
		PageSize:   10,
	}
	mockSvc.On("List", mock.Anything, mock.MatchedBy(func(opts service.ListOptions) bool {
		return opts.Filter.Status == "pending"
	})).Return(page, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/purchase-orders?status=pending", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestPurchaseOrderHandler_Export_Success(t *testing.T) {
	h, mockSvc := newOrderHandler()

	mockSvc.On("ExportRegister", mock.Anything, mock.MatchedBy(func(f listing.FilterState) bool {
		return f.Status == "completed"
	})).Return([]byte("PK fake xlsx"), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/purchase-orders/export?status=completed", nil)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	mockSvc.AssertExpectations(t)
}

func TestPurchaseOrderHandler_Delete_Success(t *testing.T) {
	h, mockSvc := newOrderHandler()

	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, id).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/purchase-orders/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
