package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wardro8e/api/internal/application/auth"
	"github.com/wardro8e/api/internal/domain"
	"github.com/wardro8e/api/internal/transport/http/middleware"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) RequestSignup(ctx context.Context, req domain.SignupRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthSvc) VerifySignup(ctx context.Context, req domain.VerifySignupRequest) (*domain.Brand, error) {
	args := m.Called(ctx, req)
	if b, _ := args.Get(0).(*domain.Brand); b != nil {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Login(ctx context.Context, req domain.LoginRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*auth.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Refresh(ctx context.Context, refreshToken string) (*auth.LoginResult, error) {
	args := m.Called(ctx, refreshToken)
	if r, _ := args.Get(0).(*auth.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Logout(ctx context.Context, accountID string) error {
	return m.Called(ctx, accountID).Error(0)
}

func (m *mockAuthSvc) WhoAmI(ctx context.Context, accountID, email string) (*auth.Identity, error) {
	args := m.Called(ctx, accountID, email)
	if id, _ := args.Get(0).(*auth.Identity); id != nil {
		return id, args.Error(1)
	}
	return nil, args.Error(1)
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

// --- tests ---

func TestSignup_OK(t *testing.T) {
	svc := new(mockAuthSvc)
	h := NewAuthHandler(svc, false)

	svc.On("RequestSignup", mock.Anything, mock.AnythingOfType("domain.SignupRequest")).Return(nil)

	rr := postJSON(t, h.Signup, "/api/auth/brand/signup", domain.SignupRequest{
		BrandName: "Aster", BrandLegalName: "Aster Pvt Ltd",
		Email: "hello@aster.in", Password: "Str0ng!pass",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	var env MessageEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "OTP sent to your email", env.Message)
}

func TestSignup_WeakPasswordListsRules(t *testing.T) {
	svc := new(mockAuthSvc)
	h := NewAuthHandler(svc, false)

	svc.On("RequestSignup", mock.Anything, mock.Anything).Return(&auth.WeakPasswordError{
		Errors: []string{"Password must be at least 8 characters long", "Include at least one number"},
	})

	rr := postJSON(t, h.Signup, "/api/auth/brand/signup", domain.SignupRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body struct {
		Error  string   `json:"error"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Len(t, body.Errors, 2)
}

func TestSignup_InvalidBody(t *testing.T) {
	h := NewAuthHandler(new(mockAuthSvc), false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/brand/signup", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	h.Signup(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVerify_Created(t *testing.T) {
	svc := new(mockAuthSvc)
	h := NewAuthHandler(svc, false)

	svc.On("VerifySignup", mock.Anything, domain.VerifySignupRequest{Email: "hello@aster.in", OTP: "123456"}).
		Return(&domain.Brand{BrandID: "b1", BrandName: "Aster"}, nil)

	rr := postJSON(t, h.Verify, "/api/auth/brand/verify", domain.VerifySignupRequest{Email: "hello@aster.in", OTP: "123456"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	var env VerifyEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.NotNil(t, env.Brand)
	assert.Equal(t, "Aster", env.Brand.BrandName)
}

func TestVerify_ConflictMapsTo409(t *testing.T) {
	svc := new(mockAuthSvc)
	h := NewAuthHandler(svc, false)

	svc.On("VerifySignup", mock.Anything, mock.Anything).Return(nil, domain.ErrConflict)

	rr := postJSON(t, h.Verify, "/api/auth/brand/verify", domain.VerifySignupRequest{Email: "x@y.com", OTP: "123456"})
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestLogin_SetsAuthCookie(t *testing.T) {
	svc := new(mockAuthSvc)
	h := NewAuthHandler(svc, false)

	account := &domain.Account{AccountID: "acc-1", Email: "hello@aster.in", Role: domain.RoleBrand}
	svc.On("Login", mock.Anything, mock.Anything).Return(&auth.LoginResult{
		Bearer: "bearer-token", RefreshToken: "refresh-token", Account: account,
	}, nil)
	svc.On("WhoAmI", mock.Anything, "acc-1", "hello@aster.in").Return(&auth.Identity{
		UserID: "acc-1", Email: "hello@aster.in", Role: domain.RoleBrand, BrandName: "Aster", Verified: true,
	}, nil)

	rr := postJSON(t, h.Login, "/api/auth/brand/login", domain.LoginRequest{Email: "hello@aster.in", Password: "Str0ng!pass"})
	assert.Equal(t, http.StatusOK, rr.Code)

	var env AuthEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "Login successful", env.Message)
	assert.Equal(t, "bearer-token", env.AccessToken)
	require.NotNil(t, env.User)
	assert.Equal(t, "Aster", env.User.BrandName)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.AuthCookieName, cookies[0].Name)
	assert.Equal(t, "bearer-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 86400, cookies[0].MaxAge)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := new(mockAuthSvc)
	h := NewAuthHandler(svc, false)

	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrUnauthorized)

	rr := postJSON(t, h.Login, "/api/auth/brand/login", domain.LoginRequest{Email: "x@y.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, rr.Result().Cookies())
}

func TestLogout_ClearsCookie(t *testing.T) {
	svc := new(mockAuthSvc)
	h := NewAuthHandler(svc, false)

	req := httptest.NewRequest(http.MethodDelete, "/api/auth/brand/login", nil)
	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestRefresh_RequiresToken(t *testing.T) {
	h := NewAuthHandler(new(mockAuthSvc), false)

	rr := postJSON(t, h.Refresh, "/api/auth/brand/refresh", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMe_RequiresClaims(t *testing.T) {
	h := NewAuthHandler(new(mockAuthSvc), false)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rr := httptest.NewRecorder()
	h.Me(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
