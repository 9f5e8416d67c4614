package service

import (
	"context"

	"marketplace-server/internal/models"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name     string `validate:"required,max=100"`
	Surname  string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,max=128"`
}

// AuthService defines registration, login and token authentication.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.IssuedToken, error)
	Logout(ctx context.Context, claims *models.Claims) error
	// Authenticate verifies a bearer token and loads the caller's current roles.
	Authenticate(ctx context.Context, token string) (*models.Caller, *models.Claims, error)
}
