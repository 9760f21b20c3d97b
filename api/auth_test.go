package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/ticketing/internal/domain"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUseCase) VerifyToken(token string) (int64, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Error(1)
}

func TestLogin_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &MockAuthUseCase{}
	router := gin.New()
	NewAuthHandler(service).Register(router.Group("/auth"))

	service.On("Login", mock.Anything, "agent", "s3cret").Return("signed-token", nil)

	body, _ := json.Marshal(gin.H{"username": "agent", "password": "s3cret"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp loginResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &MockAuthUseCase{}
	router := gin.New()
	NewAuthHandler(service).Register(router.Group("/auth"))

	service.On("Login", mock.Anything, "agent", "wrong").Return("", domain.ErrInvalidCredentials)

	body, _ := json.Marshal(gin.H{"username": "agent", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(service *MockAuthUseCase) *gin.Engine {
		router := gin.New()
		router.GET("/protected", AuthMiddleware(service), func(c *gin.Context) {
			id, ok := employeeID(c)
			assert.True(t, ok)
			c.JSON(http.StatusOK, gin.H{"employee_id": id})
		})
		return router
	}

	t.Run("missing header", func(t *testing.T) {
		router := newRouter(&MockAuthUseCase{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		service := &MockAuthUseCase{}
		service.On("VerifyToken", "bad").Return(int64(0), domain.ErrInvalidCredentials)
		router := newRouter(service)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		service := &MockAuthUseCase{}
		service.On("VerifyToken", "good").Return(int64(42), nil)
		router := newRouter(service)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"employee_id":42`)
	})
}
