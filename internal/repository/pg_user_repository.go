package repository

import (
	"context"
	"fmt"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"
	"marketplace-server/internal/patch"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"
)

var _ interfaces.UserRepository = (*pgUserRepository)(nil)

const userColumns = `id_user, name, surname, email, password, description, seller, admin, picture, created_at`

const (
	getUserByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE id_user = $1`
	getUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	listUsersQuery      = `SELECT ` + userColumns + ` FROM users ORDER BY id_user`
	createUserQuery     = `
		INSERT INTO users (name, surname, email, password, description, seller, admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_user, created_at`
	deleteUserQuery = `DELETE FROM users WHERE id_user = $1`
)

type pgUserRepository struct {
	store
}

// NewPgUserRepository creates a PostgreSQL-backed UserRepository.
func NewPgUserRepository(db interfaces.DBTX, logger *zap.Logger, opts Options) interfaces.UserRepository {
	return &pgUserRepository{store: newStore(db, logger.Named("PgUserRepo"), opts)}
}

func (r *pgUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.read(ctx, "get user by id", models.ErrUserNotFound, func(ctx context.Context) error {
		return pgxscan.Get(ctx, r.db, &user, getUserByIDQuery, id)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *pgUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.read(ctx, "get user by email", models.ErrUserNotFound, func(ctx context.Context) error {
		return pgxscan.Get(ctx, r.db, &user, getUserByEmailQuery, email)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *pgUserRepository) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	err := r.read(ctx, "list users", models.ErrUserNotFound, func(ctx context.Context) error {
		users = users[:0]
		return pgxscan.Select(ctx, r.db, &users, listUsersQuery)
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Create inserts user and fills in its id and creation time.
func (r *pgUserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.write(ctx, "create user", models.ErrUserNotFound, func(ctx context.Context) error {
		return r.db.QueryRow(ctx, createUserQuery,
			user.Name, user.Surname, user.Email, user.PasswordHash, user.Description, user.Seller, user.Admin,
		).Scan(&user.ID, &user.CreatedAt)
	})
	if err != nil {
		return err
	}
	r.logger.Info("User created", zap.Int64("userID", user.ID))
	return nil
}

func (r *pgUserRepository) Update(ctx context.Context, id int64, set *patch.Set) (*models.User, error) {
	query, args, err := set.Build("users", userColumns, patch.Eq("id_user", id))
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.write(ctx, "update user", models.ErrUserNotFound, func(ctx context.Context) error {
		return pgxscan.Get(ctx, r.db, &user, query, args...)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info("User updated", zap.Int64("userID", id), zap.Strings("columns", set.Columns()))
	return &user, nil
}

// SetRole raises one role flag and leaves the other untouched.
func (r *pgUserRepository) SetRole(ctx context.Context, id int64, role models.Role) (*models.User, error) {
	column := role.Column()
	if column == "" {
		return nil, models.NewValidationError("unknown role %q", role)
	}
	user, err := r.Update(ctx, id, patch.New().Value(column, true))
	if err != nil {
		return nil, fmt.Errorf("set role %s: %w", role, err)
	}
	return user, nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id int64) error {
	if err := r.execAffecting(ctx, "delete user", models.ErrUserNotFound, deleteUserQuery, id); err != nil {
		return err
	}
	r.logger.Info("User deleted", zap.Int64("userID", id))
	return nil
}
