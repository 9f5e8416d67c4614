package models

import "github.com/golang-jwt/jwt/v5"

// Caller is the authenticated identity attached to a request after token
// verification. Roles are loaded from the store, never from the token.
type Caller struct {
	UserID int64
	Seller bool
	Admin  bool
}

// Claims is the session token payload: the subject user id plus the standard
// registered claims (jti, exp, iat, iss, sub).
type Claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// IssuedToken is returned by a successful login.
type IssuedToken struct {
	UserID    int64  `json:"id"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
