package auth

import (
	"context"
	"errors"
	"fmt"
	"isp-billing/internal/config"
	"isp-billing/internal/infrastructure/monitoring"
	"isp-billing/internal/pkg/apperrors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	SignIn(ctx context.Context, email, password string, rememberMe bool) (*Session, error)

	SignOut(ctx context.Context, token string) error

	// CurrentUser resolves a token to its user, failing with ErrUnauthorized
	// for tokens that are malformed, expired or signed out.
	CurrentUser(ctx context.Context, token string) (*User, error)
}

type tokenClaims struct {
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Persistence Persistence `json:"persistence"`
	jwt.RegisteredClaims
}

type authService struct {
	accounts AccountStore
	revoked  RevocationStore
	secret   []byte
	ttl      map[Persistence]time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

var _ Service = (*authService)(nil)

func NewAuthService(accounts AccountStore, revoked RevocationStore, cfg config.AuthConfig, logger *slog.Logger) Service {
	if accounts == nil {
		panic("account store cannot be nil")
	}
	if revoked == nil {
		panic("revocation store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		accounts: accounts,
		revoked:  revoked,
		secret:   []byte(cfg.JWTSecret),
		ttl: map[Persistence]time.Duration{
			PersistenceLocal:   cfg.RememberTTL,
			PersistenceSession: cfg.SessionTTL,
		},
		now:    time.Now,
		logger: logger.With(slog.String("component", "authService")),
	}
}

func (s *authService) SignIn(ctx context.Context, email, password string, rememberMe bool) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	log := s.logger.With(slog.String("email", email))

	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		monitoring.RecordLoginAttempt("invalid_email")
		return nil, ErrInvalidEmail
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.WarnContext(ctx, "Sign-in for unknown account")
			monitoring.RecordLoginAttempt("user_not_found")
			return nil, ErrUserNotFound
		}
		log.ErrorContext(ctx, "Failed to look up account", slog.Any("error", err))
		monitoring.RecordLoginAttempt("error")
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		log.WarnContext(ctx, "Sign-in with wrong password")
		monitoring.RecordLoginAttempt("wrong_password")
		return nil, ErrWrongPassword
	}

	if account.Disabled {
		log.WarnContext(ctx, "Sign-in for disabled account")
		monitoring.RecordLoginAttempt("user_disabled")
		return nil, ErrUserDisabled
	}

	persistence := PersistenceSession
	if rememberMe {
		persistence = PersistenceLocal
	}

	now := s.now()
	expiresAt := now.Add(s.ttl[persistence])
	claims := tokenClaims{
		Email:       account.Email,
		Name:        account.Name,
		Persistence: persistence,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		log.ErrorContext(ctx, "Failed to sign token", slog.Any("error", err))
		monitoring.RecordLoginAttempt("error")
		return nil, fmt.Errorf("%w: failed to sign token: %w", apperrors.ErrInternalServer, err)
	}

	monitoring.RecordLoginAttempt("success")
	log.InfoContext(ctx, "Administrator signed in", slog.String("persistence", string(persistence)))

	return &Session{
		User: User{
			ID:          account.ID,
			Email:       account.Email,
			Name:        account.Name,
			Persistence: persistence,
		},
		Token:       token,
		ExpiresAt:   expiresAt,
		Persistence: persistence,
	}, nil
}

func (s *authService) parse(token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, fmt.Errorf("%w: token is missing subject or id", apperrors.ErrUnauthorized)
	}
	return claims, nil
}

func (s *authService) CurrentUser(ctx context.Context, token string) (*User, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to check token revocation", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token has been signed out", apperrors.ErrUnauthorized)
	}

	return &User{
		ID:          claims.Subject,
		Email:       claims.Email,
		Name:        claims.Name,
		Persistence: claims.Persistence,
	}, nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}

	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.logger.ErrorContext(ctx, "Failed to revoke token", slog.Any("error", err))
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.InfoContext(ctx, "Administrator signed out", slog.String("userID", claims.Subject))
	return nil
}

// HashPassword returns the bcrypt hash stored for an administrator account.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
