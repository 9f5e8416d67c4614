package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memDenylist struct {
	revoked map[string]time.Duration
	err     error
}

func (d *memDenylist) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if d.err != nil {
		return d.err
	}
	d.revoked[id] = ttl
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[id]
	return ok, nil
}

func newTestIssuer(denylist *memDenylist, now time.Time) *TokenIssuer {
	var dl interfaces.TokenDenylist
	if denylist != nil {
		dl = denylist
	}
	issuer := NewTokenIssuer(TokenConfig{Secret: "test-secret", TTL: 4 * time.Hour, Issuer: "marketplace"}, dl, zap.NewNop())
	issuer.now = func() time.Time { return now }
	return issuer
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(&memDenylist{revoked: map[string]time.Duration{}}, now)

	issued, err := issuer.Issue(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), issued.UserID)
	assert.Equal(t, now.Add(4*time.Hour).Unix(), issued.ExpiresAt)

	claims, err := issuer.Verify(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "marketplace", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenIssuer_Expired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(nil, now)
	issued, err := issuer.Issue(7)
	require.NoError(t, err)

	issuer.now = func() time.Time { return now.Add(4*time.Hour + time.Minute) }
	_, err = issuer.Verify(context.Background(), issued.Token)
	assert.ErrorIs(t, err, models.ErrTokenExpired)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestTokenIssuer_RejectsForeignTokens(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer(nil, now)

	_, err := issuer.Verify(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, models.ErrTokenMalformed)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	}).SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = issuer.Verify(context.Background(), foreign)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &models.Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Verify(context.Background(), unsigned)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestTokenIssuer_Revoke(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	denylist := &memDenylist{revoked: map[string]time.Duration{}}
	issuer := newTestIssuer(denylist, now)

	issued, err := issuer.Issue(3)
	require.NoError(t, err)
	claims, err := issuer.Verify(context.Background(), issued.Token)
	require.NoError(t, err)

	issuer.now = func() time.Time { return now.Add(time.Hour) }
	require.NoError(t, issuer.Revoke(context.Background(), claims))
	assert.Equal(t, 3*time.Hour, denylist.revoked[claims.ID])

	_, err = issuer.Verify(context.Background(), issued.Token)
	assert.ErrorIs(t, err, models.ErrTokenRevoked)
}

func TestTokenIssuer_DenylistFailure(t *testing.T) {
	denylist := &memDenylist{revoked: map[string]time.Duration{}}
	issuer := newTestIssuer(denylist, time.Now())
	issued, err := issuer.Issue(3)
	require.NoError(t, err)

	denylist.err = models.ErrUpstream
	_, err = issuer.Verify(context.Background(), issued.Token)
	assert.True(t, errors.Is(err, models.ErrUpstream))
}

func TestTokenIssuer_RevokeWithoutDenylist(t *testing.T) {
	issuer := newTestIssuer(nil, time.Now())
	assert.NoError(t, issuer.Revoke(context.Background(), &models.Claims{}))
}
