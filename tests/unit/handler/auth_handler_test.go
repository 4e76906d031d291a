package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"agrodesk/internal/domain"
	"agrodesk/internal/handler"
	"agrodesk/internal/service"
	"agrodesk/mocks"
)

func newAuthHandler() (*handler.AuthHandler, *mocks.MockAuthService) {
	mockSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockSvc)
	return h, mockSvc
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h, mockSvc := newAuthHandler()

	pair := &service.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}
	mockSvc.On("Login", mock.Anything, mock.MatchedBy(func(input service.LoginInput) bool {
		return input.Email == "admin@agrodesk.test"
	})).Return(pair, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "admin@agrodesk.test",
		"password": "password123",
	})

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestAuthHandler_Login_ShortPassword(t *testing.T) {
	h, _ := newAuthHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "admin@agrodesk.test",
		"password": "short",
	})

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h, mockSvc := newAuthHandler()

	mockSvc.On("Login", mock.Anything, mock.AnythingOfType("service.LoginInput")).
		Return(nil, domain.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "admin@agrodesk.test",
		"password": "wrong-password",
	})

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	h, mockSvc := newAuthHandler()

	pair := &service.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}
	mockSvc.On("RefreshToken", mock.Anything, "old-refresh").Return(pair, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": "old-refresh",
	})

	h.RefreshToken(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	h, mockSvc := newAuthHandler()

	mockSvc.On("RefreshToken", mock.Anything, "expired").Return(nil, domain.ErrUnauthorized)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": "expired",
	})

	h.RefreshToken(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
