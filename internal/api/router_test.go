package api

import (
	"context"
	"io"
	"isp-billing/internal/config"
	"isp-billing/internal/domain/auth"
	"isp-billing/internal/domain/customer"
	"isp-billing/internal/domain/dashboard"
	"isp-billing/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubDataSource struct {
	mock.Mock
}

func (_m *stubDataSource) FetchAll(ctx context.Context) ([]customer.Customer, error) {
	ret := _m.Called(ctx)

	var r0 []customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *stubDataSource) Create(ctx context.Context, fields customer.Fields) (string, error) {
	ret := _m.Called(ctx, fields)
	return ret.String(0), ret.Error(1)
}

func (_m *stubDataSource) Update(ctx context.Context, customerID string, fields customer.Fields) error {
	return _m.Called(ctx, customerID, fields).Error(0)
}

func (_m *stubDataSource) Delete(ctx context.Context, customerID string) error {
	return _m.Called(ctx, customerID).Error(0)
}

type stubAuthService struct {
	mock.Mock
}

func (_m *stubAuthService) SignIn(ctx context.Context, email, password string, rememberMe bool) (*auth.Session, error) {
	ret := _m.Called(ctx, email, password, rememberMe)

	var r0 *auth.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*auth.Session)
	}
	return r0, ret.Error(1)
}

func (_m *stubAuthService) SignOut(ctx context.Context, token string) error {
	return _m.Called(ctx, token).Error(0)
}

func (_m *stubAuthService) CurrentUser(ctx context.Context, token string) (*auth.User, error) {
	ret := _m.Called(ctx, token)

	var r0 *auth.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*auth.User)
	}
	return r0, ret.Error(1)
}

func setupTestRouter(t *testing.T, authEnabled bool) (http.Handler, *stubDataSource, *stubAuthService) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Auth: config.AuthConfig{Enabled: authEnabled, JWTSecret: "secret", CookieName: "isp_session"},
		},
		Customers: config.CustomersConfig{PageSize: 10},
	}
	source := new(stubDataSource)
	authSvc := new(stubAuthService)
	svc := Services{
		Auth:      authSvc,
		Sessions:  customer.NewSessions(source, customer.ListOptions{PageSize: 10}, logger),
		Dashboard: dashboard.NewService(source, logger),
	}
	return SetupRouter(ctx, svc, cfg, logger), source, authSvc
}

func TestSetupRouter_PublicEndpoints(t *testing.T) {
	router, _, _ := setupTestRouter(t, true)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/swagger/index.html", rec.Header().Get("Location"))
}

func TestSetupRouter_ProtectedRoutes(t *testing.T) {
	router, source, authSvc := setupTestRouter(t, true)

	for _, path := range []string{"/customers/view", "/customers/export", "/dashboard/stats", "/auth/me"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	authSvc.On("CurrentUser", mock.Anything, "good").Return(&auth.User{ID: "u-1"}, nil)
	authSvc.On("CurrentUser", mock.Anything, "bad").Return(nil, apperrors.ErrUnauthorized)
	source.On("FetchAll", mock.Anything).Return([]customer.Customer{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/customers/view", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"empty"`)

	req = httptest.NewRequest(http.MethodGet, "/customers/view", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	source.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSetupRouter_AuthDisabled(t *testing.T) {
	router, source, _ := setupTestRouter(t, false)
	source.On("FetchAll", mock.Anything).Return([]customer.Customer{{ID: "c1", Name: "A", Status: customer.StatusActive}}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/c1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers/view/next", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"anonymous"`)
}
