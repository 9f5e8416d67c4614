package repository

import (
	"context"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"
)

var _ interfaces.TagRepository = (*pgTagRepository)(nil)

const (
	listTagsQuery          = `SELECT id_tag, name, id_product FROM tags ORDER BY id_tag`
	getTagByIDQuery        = `SELECT id_tag, name, id_product FROM tags WHERE id_tag = $1`
	listTagsByProductQuery = `SELECT id_tag, name, id_product FROM tags WHERE id_product = $1 ORDER BY id_tag`
	createTagQuery         = `INSERT INTO tags (name, id_product) VALUES ($1, $2) RETURNING id_tag, name, id_product`
	deleteTagQuery         = `DELETE FROM tags WHERE id_tag = $1`
)

type pgTagRepository struct {
	store
}

// NewPgTagRepository creates a PostgreSQL-backed TagRepository.
func NewPgTagRepository(db interfaces.DBTX, logger *zap.Logger, opts Options) interfaces.TagRepository {
	return &pgTagRepository{store: newStore(db, logger.Named("PgTagRepo"), opts)}
}

func (r *pgTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	err := r.read(ctx, "list tags", models.ErrTagNotFound, func(ctx context.Context) error {
		return pgxscan.Select(ctx, r.db, &tags, listTagsQuery)
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *pgTagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag
	err := r.read(ctx, "get tag by id", models.ErrTagNotFound, func(ctx context.Context) error {
		return pgxscan.Get(ctx, r.db, &tag, getTagByIDQuery, id)
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *pgTagRepository) ListByProduct(ctx context.Context, productID int64) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	err := r.read(ctx, "list tags by product", models.ErrProductNotFound, func(ctx context.Context) error {
		return pgxscan.Select(ctx, r.db, &tags, listTagsByProductQuery, productID)
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *pgTagRepository) Create(ctx context.Context, name string, productID int64) (*models.Tag, error) {
	var tag models.Tag
	err := r.write(ctx, "create tag", models.ErrProductNotFound, func(ctx context.Context) error {
		return pgxscan.Get(ctx, r.db, &tag, createTagQuery, name, productID)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info("Tag created", zap.Int64("tagID", tag.ID), zap.Int64("productID", productID))
	return &tag, nil
}

func (r *pgTagRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, "delete tag", models.ErrTagNotFound, deleteTagQuery, id)
}
