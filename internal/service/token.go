package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenConfig configures the session token issuer.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// TokenIssuer issues and verifies HS256 session tokens carrying the user id.
type TokenIssuer struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	denylist interfaces.TokenDenylist
	now      func() time.Time
	logger   *zap.Logger
}

// NewTokenIssuer creates a TokenIssuer. denylist may be nil, in which case
// logout cannot revoke tokens before they expire.
func NewTokenIssuer(cfg TokenConfig, denylist interfaces.TokenDenylist, logger *zap.Logger) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(cfg.Secret),
		ttl:      cfg.TTL,
		issuer:   cfg.Issuer,
		denylist: denylist,
		now:      time.Now,
		logger:   logger.Named("TokenIssuer"),
	}
}

// Issue signs a token for userID that expires after the configured TTL.
func (t *TokenIssuer) Issue(userID int64) (*models.IssuedToken, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)
	claims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		t.logger.Error("Failed to sign token", zap.Int64("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &models.IssuedToken{UserID: userID, Token: signed, ExpiresAt: expiresAt.Unix()}, nil
}

// Verify parses and validates a token. Failures are ErrTokenExpired,
// ErrTokenMalformed, ErrTokenRevoked or ErrTokenInvalid.
func (t *TokenIssuer) Verify(ctx context.Context, tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			t.logger.Debug("Token verification failed: expired")
			return nil, models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			t.logger.Debug("Token verification failed: malformed")
			return nil, models.ErrTokenMalformed
		}
		t.logger.Debug("Token verification failed", zap.Error(err))
		return nil, models.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return nil, models.ErrTokenInvalid
	}

	if t.denylist != nil && claims.ID != "" {
		revoked, err := t.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, models.ErrTokenRevoked
		}
	}
	return claims, nil
}

// Revoke denies the token until its natural expiry.
func (t *TokenIssuer) Revoke(ctx context.Context, claims *models.Claims) error {
	if t.denylist == nil {
		t.logger.Debug("Token revocation skipped: no denylist configured")
		return nil
	}
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return models.ErrTokenInvalid
	}
	return t.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Sub(t.now()))
}
