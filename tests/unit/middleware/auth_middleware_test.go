package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"agrodesk/internal/domain"
	"agrodesk/internal/middleware"
	"agrodesk/internal/service"
	"agrodesk/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter(authService service.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{middleware.Auth(authService)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuth_MissingHeader(t *testing.T) {
	mockSvc := new(mocks.MockAuthService)
	r := authRouter(mockSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertNotCalled(t, "ValidateToken")
}

func TestAuth_MalformedHeader(t *testing.T) {
	mockSvc := new(mocks.MockAuthService)
	r := authRouter(mockSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	mockSvc := new(mocks.MockAuthService)
	mockSvc.On("ValidateToken", "bad-token").Return(nil, errors.New("token expired"))
	r := authRouter(mockSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	mockSvc := new(mocks.MockAuthService)
	claims := &service.Claims{
		UserID: uuid.New(),
		Email:  "staff@agrodesk.test",
		Role:   domain.RoleStaff,
	}
	mockSvc.On("ValidateToken", "good-token").Return(claims, nil)
	r := authRouter(mockSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRequireRole_StaffBlockedFromAdminRoute(t *testing.T) {
	mockSvc := new(mocks.MockAuthService)
	claims := &service.Claims{
		UserID: uuid.New(),
		Email:  "staff@agrodesk.test",
		Role:   domain.RoleStaff,
	}
	mockSvc.On("ValidateToken", "staff-token").Return(claims, nil)
	r := authRouter(mockSvc, middleware.RequireRole(domain.RoleAdmin))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer staff-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	mockSvc := new(mocks.MockAuthService)
	claims := &service.Claims{
		UserID: uuid.New(),
		Email:  "admin@agrodesk.test",
		Role:   domain.RoleAdmin,
	}
	mockSvc.On("ValidateToken", "admin-token").Return(claims, nil)
	r := authRouter(mockSvc, middleware.RequireRole(domain.RoleAdmin))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
