package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// PostgreSQL error codes.
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	checkViolation      = "23514"
)

const usersEmailConstraint = "users_email_key"

// Options bound every store call.
type Options struct {
	QueryTimeout time.Duration
	ReadRetries  int
}

func (o Options) withDefaults() Options {
	if o.QueryTimeout <= 0 {
		o.QueryTimeout = 5 * time.Second
	}
	if o.ReadRetries < 0 {
		o.ReadRetries = 0
	}
	return o
}

// store wraps a DBTX with per-call timeouts, read retries and error translation.
type store struct {
	db     interfaces.DBTX
	logger *zap.Logger
	opts   Options
}

func newStore(db interfaces.DBTX, logger *zap.Logger, opts Options) store {
	return store{db: db, logger: logger, opts: opts.withDefaults()}
}

// read runs an idempotent query, retrying timeouts and connection failures.
func (s store) read(ctx context.Context, op string, notFound error, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= s.opts.ReadRetries; attempt++ {
		if attempt > 0 {
			s.logger.Warn("Retrying read", zap.String("op", op), zap.Int("attempt", attempt), zap.Error(err))
			select {
			case <-ctx.Done():
				return s.translate(op, ctx.Err(), notFound)
			case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
			}
		}
		err = s.once(ctx, fn)
		if err == nil || !retryable(ctx, err) {
			break
		}
	}
	return s.translate(op, err, notFound)
}

// write runs a mutation exactly once.
func (s store) write(ctx context.Context, op string, notFound error, fn func(ctx context.Context) error) error {
	return s.translate(op, s.once(ctx, fn), notFound)
}

func (s store) once(ctx context.Context, fn func(ctx context.Context) error) error {
	qctx, cancel := context.WithTimeout(ctx, s.opts.QueryTimeout)
	defer cancel()
	return fn(qctx)
}

func retryable(parent context.Context, err error) bool {
	if parent.Err() != nil || errors.Is(err, pgx.ErrNoRows) {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}
	return errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}

// translate maps driver errors onto the domain taxonomy. Driver text is only logged.
func (s store) translate(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		s.logger.Warn("Store call timed out", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, models.ErrTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			if pgErr.ConstraintName == usersEmailConstraint {
				return models.ErrEmailAlreadyInUse
			}
			return fmt.Errorf("%s: %w", op, models.ErrConflict)
		case foreignKeyViolation:
			return notFound
		case checkViolation:
			return models.NewValidationError("value violates constraint %s", pgErr.ConstraintName)
		}
	}

	s.logger.Error("Store call failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, models.ErrUpstream)
}

// execAffecting runs a single-row mutation and reports notFound when nothing matched.
func (s store) execAffecting(ctx context.Context, op string, notFound error, query string, args ...any) error {
	var affected int64
	err := s.write(ctx, op, notFound, func(ctx context.Context) error {
		tag, err := s.db.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
