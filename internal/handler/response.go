package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"agrodesk/internal/domain"
	"agrodesk/internal/listing"
	"agrodesk/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *ListMeta   `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListMeta holds pagination metadata, including the page-button window the
// list screens render.
type ListMeta struct {
	TotalItems int   `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	PageWindow []int `json:"page_window"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPage sends a 200 success response for one page of a collection.
func RespondPage[T any](c *gin.Context, page listing.Page[T]) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    page.Items,
		Meta: &ListMeta{
			TotalItems: page.TotalItems,
			TotalPages: page.TotalPages,
			Page:       page.Page,
			PageSize:   page.PageSize,
			PageWindow: listing.PageWindow(page.Page, page.TotalPages),
		},
	})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "CUSTOMER_NOT_FOUND", "customer not found"
	case errors.Is(err, domain.ErrPurchaseOrderNotFound):
		return http.StatusNotFound, "PURCHASE_ORDER_NOT_FOUND", "purchase order not found"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrCustomerInUse):
		return http.StatusConflict, "CUSTOMER_IN_USE", "customer is referenced by existing documents"
	case errors.Is(err, domain.ErrDuplicateMobile):
		return http.StatusConflict, "DUPLICATE_MOBILE", "mobile number already registered"
	case errors.Is(err, domain.ErrDuplicateReference):
		return http.StatusConflict, "DUPLICATE_REFERENCE", "reference number already exists"
	case errors.Is(err, domain.ErrNoLineItems):
		return http.StatusBadRequest, "NO_LINE_ITEMS", "document requires at least one line item"
	case errors.Is(err, domain.ErrInvalidLineItem):
		return http.StatusBadRequest, "INVALID_LINE_ITEM", "line item has an invalid quantity, price, or tax rate"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "INVALID_STATUS", "status is not in the allowed vocabulary"
	case errors.Is(err, domain.ErrRenderFailed):
		return http.StatusInternalServerError, "RENDER_FAILED", "invoice pdf could not be generated"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.Error().
			Str("request_id", c.GetString(middleware.ContextKeyRequestID)).
			Err(err).
			Msg("internal error")
	}
	RespondError(c, status, code, msg)
}
