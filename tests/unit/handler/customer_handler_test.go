package handler_test

import (
	"bytes"
	"encoding/json"
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
	"agrodesk/internal/validation"
	"agrodesk/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = validation.Register()
}

func newCustomerHandler() (*handler.CustomerHandler, *mocks.MockCustomerService) {
	mockSvc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(mockSvc)
	return h, mockSvc
}

func jsonRequest(method, target string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Create ---

func TestCustomerHandler_Create_Success(t *testing.T) {
	h, mockSvc := newCustomerHandler()

	expected := &domain.Customer{
		ID:     uuid.New(),
		Name:   "Rajkot Agro",
		Mobile: "9876543210",
	}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(input service.CustomerInput) bool {
		return input.Name == "Rajkot Agro" && input.Mobile == "9876543210"
	})).Return(expected, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/customers", map[string]string{
		"name":   "Rajkot Agro",
		"mobile": "9876543210",
	})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestCustomerHandler_Create_InvalidMobile(t *testing.T) {
	h, _ := newCustomerHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/customers", map[string]string{
		"name":   "Rajkot Agro",
		"mobile": "12345",
	})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandler_Create_InvalidPincode(t *testing.T) {
	h, _ := newCustomerHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/customers", map[string]string{
		"name":    "Rajkot Agro",
		"mobile":  "9876543210",
		"pincode": "99",
	})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandler_Create_DuplicateMobile(t *testing.T) {
	h, mockSvc := newCustomerHandler()

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CustomerInput")).
		Return(nil, domain.ErrDuplicateMobile)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/customers", map[string]string{
		"name":   "Rajkot Agro",
		"mobile": "9876543210",
	})

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// --- List ---

func TestCustomerHandler_List_PassesQueryParams(t *testing.T) {
	h, mockSvc := newCustomerHandler()

	page := listing.Page[domain.Customer]{
		Items:      []domain.Customer{{ID: uuid.New(), Name: "Rajkot Agro"}},
		TotalItems: 1,
		TotalPages: 1,
		Page:       1,
		PageSize:   20,
	}
	mockSvc.On("List", mock.Anything, mock.MatchedBy(func(opts service.ListOptions) bool {
		return opts.Filter.Search == "rajkot" &&
			opts.Page == 2 && opts.PageSize == 20 && opts.Refresh
	})).Return(page, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet,
		"/api/v1/customers?search=rajkot&page=2&page_size=20&refresh=true", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Meta.TotalItems)
	assert.Equal(t, []int{1}, resp.Meta.PageWindow)
	mockSvc.AssertExpectations(t)
}

func TestCustomerHandler_List_ClampsInvalidPageSize(t *testing.T) {
	h, mockSvc := newCustomerHandler()

	mockSvc.On("List", mock.Anything, mock.MatchedBy(func(opts service.ListOptions) bool {
		return opts.PageSize == 10
	})).Return(listing.Page[domain.Customer]{Page: 1, PageSize: 10, TotalPages: 1}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/customers?page_size=37", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

// --- GetByID ---

func TestCustomerHandler_GetByID_InvalidID(t *testing.T) {
	h, _ := newCustomerHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/customers/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newCustomerHandler()

	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrCustomerNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/customers/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Delete ---

func TestCustomerHandler_Delete_InUse(t *testing.T) {
	h, mockSvc := newCustomerHandler()

	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, id).Return(domain.ErrCustomerInUse)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/customers/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CUSTOMER_IN_USE", resp.Error.Code)
}
