package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	"go.uber.org/zap"
)

var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	users  interfaces.UserRepository
	tokens *TokenIssuer
	pepper string
	logger *zap.Logger
}

// NewAuthService creates an AuthService. pepper is mixed into every password
// digest and must stay stable across restarts.
func NewAuthService(users interfaces.UserRepository, tokens *TokenIssuer, pepper string, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		users:  users,
		tokens: tokens,
		pepper: pepper,
		logger: logger.Named("AuthService"),
	}
}

func normalizeRegistration(in RegisterInput) RegisterInput {
	return RegisterInput{
		Name:     strings.TrimSpace(in.Name),
		Surname:  strings.TrimSpace(in.Surname),
		Email:    normalizeEmail(in.Email),
		Password: in.Password,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// createAccount validates, hashes and stores a new user with default roles.
func createAccount(ctx context.Context, users interfaces.UserRepository, pepper string, logger *zap.Logger, in RegisterInput) (*models.User, error) {
	in = normalizeRegistration(in)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	existing, err := users.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		logger.Warn("Registration attempt for existing email", zap.String("email", in.Email))
		return nil, models.ErrEmailAlreadyInUse
	}

	hashed, err := hashPassword(in.Password, pepper)
	if err != nil {
		logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        in.Email,
		PasswordHash: hashed,
	}
	// the unique constraint still decides when two registrations race
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authServiceImpl) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	user, err := createAccount(ctx, s.users, s.pepper, s.logger, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User registered", zap.Int64("userID", user.ID), zap.String("email", user.Email))
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.IssuedToken, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, models.NewValidationError("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Login failed: user not found", zap.String("email", email))
		}
		return nil, err
	}

	if !checkPasswordHash(password, user.PasswordHash, s.pepper) {
		s.logger.Warn("Login failed: invalid password", zap.Int64("userID", user.ID))
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User logged in", zap.Int64("userID", user.ID))
	return token, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, claims *models.Claims) error {
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return err
	}
	if claims != nil {
		s.logger.Info("User logged out", zap.Int64("userID", claims.UserID))
	}
	return nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (*models.Caller, *models.Claims, error) {
	claims, err := s.tokens.Verify(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Info("Token presented for a deleted user", zap.Int64("userID", claims.UserID))
			return nil, nil, models.ErrTokenInvalid
		}
		return nil, nil, err
	}
	return user.Caller(), claims, nil
}
