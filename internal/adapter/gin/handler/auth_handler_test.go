package handler

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
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"recharge-service/internal/usecase/account"
	errs "recharge-service/pkg/errors"
)

// MockAccountUsecase is a mock implementation of the account.Usecase interface.
type MockAccountUsecase struct {
	mock.Mock
}

func (m *MockAccountUsecase) Register(ctx context.Context, in account.RegisterRequest) (*account.RegisterResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.RegisterResponse), args.Error(1)
}

func (m *MockAccountUsecase) Login(ctx context.Context, in account.LoginRequest) (*account.LoginResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.LoginResponse), args.Error(1)
}

func (m *MockAccountUsecase) AdminLogin(ctx context.Context, in account.AdminLoginRequest) (*account.AdminLoginResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.AdminLoginResponse), args.Error(1)
}

func (m *MockAccountUsecase) SeedAdmin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func setupAuthRouter(t *testing.T) (*gin.Engine, *MockAccountUsecase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockUC := new(MockAccountUsecase)
	h := NewAuthHandler(mockUC, zaptest.NewLogger(t))

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/admin/login", h.AdminLogin)
	return r, mockUC
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler_Created(t *testing.T) {
	r, mockUC := setupAuthRouter(t)

	mockUC.On("Register", mock.Anything, account.RegisterRequest{
		Name:        "John Doe",
		Email:       "john@example.com",
		PhoneNumber: "9876543210",
		Password:    "secret123",
	}).Return(&account.RegisterResponse{
		ID:          "u1",
		Name:        "John Doe",
		Email:       "john@example.com",
		PhoneNumber: "9876543210",
	}, nil)

	w := postJSON(r, "/api/auth/register", gin.H{
		"name":        "John Doe",
		"email":       "john@example.com",
		"phoneNumber": "9876543210",
		"password":    "secret123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp["id"])
	assert.Equal(t, "9876543210", resp["phoneNumber"])
	// No password or token in the response.
	assert.NotContains(t, resp, "password")
	assert.NotContains(t, resp, "token")
}

func TestRegisterHandler_MissingFields(t *testing.T) {
	r, mockUC := setupAuthRouter(t)

	w := postJSON(r, "/api/auth/register", gin.H{"email": "john@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
	mockUC.AssertNotCalled(t, "Register")
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	r, mockUC := setupAuthRouter(t)

	mockUC.On("Register", mock.Anything, mock.Anything).Return(nil, errs.ErrDuplicateEmail)

	w := postJSON(r, "/api/auth/register", gin.H{
		"name":        "John Doe",
		"email":       "john@example.com",
		"phoneNumber": "9876543210",
		"password":    "secret123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already_exists")
}

func TestLoginHandler_OK(t *testing.T) {
	r, mockUC := setupAuthRouter(t)

	mockUC.On("Login", mock.Anything, account.LoginRequest{
		Email:    "john@example.com",
		Password: "secret123",
	}).Return(&account.LoginResponse{
		Token: "signed.jwt.token",
		User:  account.UserInfo{ID: "u1", Name: "John Doe", Email: "john@example.com", Role: "user"},
	}, nil)

	w := postJSON(r, "/api/auth/login", gin.H{
		"email":    "john@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "user", resp.User.Role)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	r, mockUC := setupAuthRouter(t)

	mockUC.On("Login", mock.Anything, mock.Anything).Return(nil, errs.ErrInvalidCredentials)

	w := postJSON(r, "/api/auth/login", gin.H{
		"email":    "john@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
}

func TestLoginHandler_StorageDown(t *testing.T) {
	r, mockUC := setupAuthRouter(t)

	mockUC.On("Login", mock.Anything, mock.Anything).Return(nil, errs.ErrUnavailable)

	w := postJSON(r, "/api/auth/login", gin.H{
		"email":    "john@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminLoginHandler_OK(t *testing.T) {
	r, mockUC := setupAuthRouter(t)

	mockUC.On("AdminLogin", mock.Anything, account.AdminLoginRequest{Password: "admin-secret"}).
		Return(&account.AdminLoginResponse{Token: "admin.jwt.token"}, nil)

	w := postJSON(r, "/api/admin/login", gin.H{"password": "admin-secret"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "admin.jwt.token", resp["token"])
	assert.Len(t, resp, 1)
}

func TestAdminLoginHandler_EmptyBody(t *testing.T) {
	r, mockUC := setupAuthRouter(t)

	w := postJSON(r, "/api/admin/login", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUC.AssertNotCalled(t, "AdminLogin")
}

func TestAdminLoginHandler_WrongPassword(t *testing.T) {
	r, mockUC := setupAuthRouter(t)

	mockUC.On("AdminLogin", mock.Anything, mock.Anything).Return(nil, errs.ErrInvalidCredentials)

	w := postJSON(r, "/api/admin/login", gin.H{"password": "guess"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
