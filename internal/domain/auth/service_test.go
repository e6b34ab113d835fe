package auth

import (
	"context"
	"errors"
	"io"
	"isp-billing/internal/config"
	"isp-billing/internal/pkg/apperrors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockAccountStore struct {
	mock.Mock
}

func (_m *MockAccountStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	ret := _m.Called(ctx, email)

	var r0 *Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Account)
	}
	return r0, ret.Error(1)
}

type MockRevocationStore struct {
	mock.Mock
}

func (_m *MockRevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	return _m.Called(ctx, tokenID, until).Error(0)
}

func (_m *MockRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ret := _m.Called(ctx, tokenID)
	return ret.Bool(0), ret.Error(1)
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func setupAuthTest(t *testing.T) (*MockAccountStore, *MockRevocationStore, *authService) {
	t.Helper()
	accounts := new(MockAccountStore)
	revoked := new(MockRevocationStore)
	cfg := config.AuthConfig{
		Enabled:     true,
		JWTSecret:   "test-secret",
		SessionTTL:  12 * time.Hour,
		RememberTTL: 30 * 24 * time.Hour,
	}
	svc := NewAuthService(accounts, revoked, cfg, slog.New(slog.NewTextHandler(io.Discard, nil))).(*authService)
	svc.now = func() time.Time { return testNow }
	return accounts, revoked, svc
}

func testAccount(t *testing.T, password string) *Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &Account{ID: "admin-1", Email: "admin@isp.net", Name: "Admin", PasswordHash: string(hash)}
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("Session persistence without remember me", func(t *testing.T) {
		accounts, _, svc := setupAuthTest(t)
		accounts.On("FindByEmail", ctx, "admin@isp.net").Return(testAccount(t, "s3cret"), nil).Once()

		session, err := svc.SignIn(ctx, "  Admin@ISP.net ", "s3cret", false)

		require.NoError(t, err)
		assert.Equal(t, PersistenceSession, session.Persistence)
		assert.Equal(t, testNow.Add(12*time.Hour), session.ExpiresAt)
		assert.Equal(t, "admin-1", session.User.ID)
		assert.NotEmpty(t, session.Token)
		accounts.AssertExpectations(t)
	})

	t.Run("Local persistence with remember me", func(t *testing.T) {
		accounts, _, svc := setupAuthTest(t)
		accounts.On("FindByEmail", ctx, "admin@isp.net").Return(testAccount(t, "s3cret"), nil).Once()

		session, err := svc.SignIn(ctx, "admin@isp.net", "s3cret", true)

		require.NoError(t, err)
		assert.Equal(t, PersistenceLocal, session.Persistence)
		assert.Equal(t, testNow.Add(30*24*time.Hour), session.ExpiresAt)
	})

	t.Run("Invalid email never reaches the store", func(t *testing.T) {
		accounts, _, svc := setupAuthTest(t)

		_, err := svc.SignIn(ctx, "not an email", "x", false)

		assert.ErrorIs(t, err, ErrInvalidEmail)
		accounts.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Unknown user", func(t *testing.T) {
		accounts, _, svc := setupAuthTest(t)
		accounts.On("FindByEmail", ctx, "ghost@isp.net").Return(nil, ErrUserNotFound).Once()

		_, err := svc.SignIn(ctx, "ghost@isp.net", "x", false)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Wrong password", func(t *testing.T) {
		accounts, _, svc := setupAuthTest(t)
		accounts.On("FindByEmail", ctx, "admin@isp.net").Return(testAccount(t, "s3cret"), nil).Once()

		_, err := svc.SignIn(ctx, "admin@isp.net", "guess", false)

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("Disabled account", func(t *testing.T) {
		accounts, _, svc := setupAuthTest(t)
		account := testAccount(t, "s3cret")
		account.Disabled = true
		accounts.On("FindByEmail", ctx, "admin@isp.net").Return(account, nil).Once()

		_, err := svc.SignIn(ctx, "admin@isp.net", "s3cret", false)

		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("Store failure", func(t *testing.T) {
		accounts, _, svc := setupAuthTest(t)
		accounts.On("FindByEmail", ctx, "admin@isp.net").Return(nil, apperrors.ErrConnectivity).Once()

		_, err := svc.SignIn(ctx, "admin@isp.net", "s3cret", false)

		assert.ErrorIs(t, err, apperrors.ErrConnectivity)
		assert.Equal(t, genericLoginMessage, LoginMessage(err))
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()

	signIn := func(t *testing.T) (*MockRevocationStore, *authService, *Session) {
		accounts, revoked, svc := setupAuthTest(t)
		accounts.On("FindByEmail", ctx, "admin@isp.net").Return(testAccount(t, "s3cret"), nil).Once()
		session, err := svc.SignIn(ctx, "admin@isp.net", "s3cret", false)
		require.NoError(t, err)
		return revoked, svc, session
	}

	t.Run("Valid token", func(t *testing.T) {
		revoked, svc, session := signIn(t)
		revoked.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

		user, err := svc.CurrentUser(ctx, session.Token)

		require.NoError(t, err)
		assert.Equal(t, session.User, *user)
	})

	t.Run("Expired token", func(t *testing.T) {
		_, svc, session := signIn(t)
		svc.now = func() time.Time { return testNow.Add(13 * time.Hour) }

		_, err := svc.CurrentUser(ctx, session.Token)

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Revoked token", func(t *testing.T) {
		revoked, svc, session := signIn(t)
		revoked.On("IsRevoked", ctx, mock.Anything).Return(true, nil).Once()

		_, err := svc.CurrentUser(ctx, session.Token)

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Revocation store unavailable", func(t *testing.T) {
		revoked, svc, session := signIn(t)
		revoked.On("IsRevoked", ctx, mock.Anything).Return(false, apperrors.ErrConnectivity).Once()

		_, err := svc.CurrentUser(ctx, session.Token)

		assert.ErrorIs(t, err, apperrors.ErrConnectivity)
	})

	t.Run("Foreign signature", func(t *testing.T) {
		_, svc, _ := setupAuthTest(t)
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "admin-1",
			ID:        "x",
			ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
		}).SignedString([]byte("other-secret"))
		require.NoError(t, err)

		_, err = svc.CurrentUser(ctx, forged)

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, svc, _ := setupAuthTest(t)
		_, err := svc.CurrentUser(ctx, "abc.def")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestAuthService_SignOut(t *testing.T) {
	ctx := context.Background()
	accounts, revoked, svc := setupAuthTest(t)
	accounts.On("FindByEmail", ctx, "admin@isp.net").Return(testAccount(t, "s3cret"), nil).Once()
	session, err := svc.SignIn(ctx, "admin@isp.net", "s3cret", false)
	require.NoError(t, err)

	revoked.On("Revoke", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(until time.Time) bool {
		return until.Equal(session.ExpiresAt)
	})).Return(nil).Once()
	require.NoError(t, svc.SignOut(ctx, session.Token))
	revoked.AssertExpectations(t)

	revoked.On("Revoke", ctx, mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
	assert.Error(t, svc.SignOut(ctx, session.Token))

	assert.ErrorIs(t, svc.SignOut(ctx, "nonsense"), apperrors.ErrUnauthorized)
}

func TestLoginMessage(t *testing.T) {
	assert.Equal(t, "Invalid email address.", LoginMessage(ErrInvalidEmail))
	assert.Equal(t, "This account has been disabled.", LoginMessage(ErrUserDisabled))
	assert.Equal(t, "No account found with this email.", LoginMessage(ErrUserNotFound))
	assert.Equal(t, "Incorrect password.", LoginMessage(ErrWrongPassword))
	assert.Equal(t, "Login failed. Please check your credentials.", LoginMessage(errors.New("too many requests")))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}
