package repository

import (
	"context"
	"fmt"
	"time"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ interfaces.TokenDenylist = (*redisTokenDenylist)(nil)

const revokedTokenKeyPrefix = "revoked_token:"

type redisTokenDenylist struct {
	client  redis.UniversalClient
	logger  *zap.Logger
	timeout time.Duration
}

// NewRedisTokenDenylist creates a Redis-backed TokenDenylist. Keys expire with
// the token they revoke.
func NewRedisTokenDenylist(client redis.UniversalClient, logger *zap.Logger, timeout time.Duration) interfaces.TokenDenylist {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &redisTokenDenylist{
		client:  client,
		logger:  logger.Named("RedisTokenDenylist"),
		timeout: timeout,
	}
}

func (r *redisTokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired, nothing to deny
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, revokedTokenKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		r.logger.Error("Failed to revoke token", zap.String("tokenID", tokenID), zap.Error(err))
		return fmt.Errorf("revoke token: %w", models.ErrUpstream)
	}
	r.logger.Debug("Token revoked", zap.String("tokenID", tokenID), zap.Duration("ttl", ttl))
	return nil
}

func (r *redisTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.client.Exists(ctx, revokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		r.logger.Error("Failed to check token revocation", zap.String("tokenID", tokenID), zap.Error(err))
		return false, fmt.Errorf("check token revocation: %w", models.ErrUpstream)
	}
	return n > 0, nil
}
