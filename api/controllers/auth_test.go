package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authsvc "github.com/marketloop/storefront-backend/internal/auth"
	"github.com/marketloop/storefront-backend/internal/users"
	pkgerrors "github.com/marketloop/storefront-backend/pkg/errors"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, req authsvc.RegisterRequest) (*authsvc.AuthResponse, error)
	loginFn    func(ctx context.Context, req authsvc.LoginRequest) (*authsvc.AuthResponse, error)
}

func (s *stubAuthService) Register(ctx context.Context, req authsvc.RegisterRequest) (*authsvc.AuthResponse, error) {
	return s.registerFn(ctx, req)
}

func (s *stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.AuthResponse, error) {
	return s.loginFn(ctx, req)
}

func (s *stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*users.UserSummary, error) {
	return &users.UserSummary{ID: userID}, nil
}

func TestAuthRegisterReturns201(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, req authsvc.RegisterRequest) (*authsvc.AuthResponse, error) {
			assert.Equal(t, "shopper@example.com", req.Email)
			return &authsvc.AuthResponse{AccessToken: "token"}, nil
		},
	}

	body := `{"name":"Shopper","email":"shopper@example.com","password":"supersecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	AuthRegister(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var envelope struct {
		Data authsvc.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "token", envelope.Data.AccessToken)
}

func TestAuthRegisterValidatesPayload(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(context.Context, authsvc.RegisterRequest) (*authsvc.AuthResponse, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	body := `{"name":"Shopper","email":"not-an-email","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	AuthRegister(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, string(pkgerrors.CodeValidation), envelope.Error.Code)
	assert.Contains(t, envelope.Error.Details, "email")
	assert.Contains(t, envelope.Error.Details, "password")
}

func TestAuthLoginMapsUnauthorized(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, authsvc.LoginRequest) (*authsvc.AuthResponse, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		},
	}

	body := `{"email":"shopper@example.com","password":"wrongpass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	AuthLogin(svc, nil).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
