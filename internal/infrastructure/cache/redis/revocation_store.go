package redis

import (
	"context"
	"fmt"
	"isp-billing/internal/domain/auth"
	"isp-billing/internal/pkg/apperrors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "revoked:"

// Commands is the part of the go-redis client the store uses.
type Commands interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Exists(ctx context.Context, keys ...string) *goredis.IntCmd
}

var _ Commands = (*goredis.Client)(nil)

type RevocationStore struct {
	client    Commands
	keyPrefix string
	now       func() time.Time
	logger    *slog.Logger
}

var _ auth.RevocationStore = (*RevocationStore)(nil)

func NewRevocationStore(client Commands, keyPrefix string, logger *slog.Logger) *RevocationStore {
	if client == nil {
		panic("redis client cannot be nil for RevocationStore")
	}
	return &RevocationStore{
		client:    client,
		keyPrefix: keyPrefix,
		now:       time.Now,
		logger:    logger.With("component", "RevocationStore"),
	}
}

func (s *RevocationStore) key(tokenID string) string {
	return s.keyPrefix + revokedTokenKeyPrefix + tokenID
}

// Revoke marks tokenID as signed out. The key expires with the token, so a
// token already past until needs no entry.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		s.logger.DebugContext(ctx, "Token already expired, nothing to revoke", slog.String("tokenID", tokenID))
		return nil
	}

	if err := s.client.Set(ctx, s.key(tokenID), 1, ttl).Err(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store revoked token", slog.Any("error", err), slog.String("tokenID", tokenID))
		return fmt.Errorf("%w: failed to store revoked token: %w", apperrors.ErrConnectivity, err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to check revoked token", slog.Any("error", err), slog.String("tokenID", tokenID))
		return false, fmt.Errorf("%w: failed to check revoked token: %w", apperrors.ErrConnectivity, err)
	}
	return n > 0, nil
}
