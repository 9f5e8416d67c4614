package handler

import (
	"strings"

	"marketplace-server/internal/middleware"
	"marketplace-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const authContextKey = "marketplace.auth"

// authContext is the verified identity attached to a request.
type authContext struct {
	caller *models.Caller
	claims *models.Claims
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func (h *Handler) authenticate(c *gin.Context) error {
	token, ok := bearerToken(c)
	if !ok {
		if c.GetHeader("Authorization") != "" {
			return models.ErrTokenMalformed
		}
		return models.ErrUnauthenticated
	}
	caller, claims, err := h.svc.Auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		tokenVerificationsTotal.WithLabelValues("failure").Inc()
		return err
	}
	tokenVerificationsTotal.WithLabelValues("success").Inc()
	c.Set(authContextKey, authContext{caller: caller, claims: claims})
	c.Set(middleware.UserIDKey, caller.UserID)
	return nil
}

// RequireAuth rejects requests without a valid bearer token.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.authenticate(c); err != nil {
			h.logger.Debug("Authentication failed", zap.String("path", c.FullPath()),
				zap.String("request_id", middleware.RequestID(c)), zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present and lets
// anonymous requests through otherwise.
func (h *Handler) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := bearerToken(c); ok {
			if err := h.authenticate(c); err != nil {
				h.logger.Debug("Ignoring invalid token on public route", zap.Error(err))
			}
		}
		c.Next()
	}
}

// callerFrom returns the authenticated caller, or nil for anonymous requests.
func callerFrom(c *gin.Context) *models.Caller {
	v, ok := c.Get(authContextKey)
	if !ok {
		return nil
	}
	return v.(authContext).caller
}

func claimsFrom(c *gin.Context) *models.Claims {
	v, ok := c.Get(authContextKey)
	if !ok {
		return nil
	}
	return v.(authContext).claims
}
