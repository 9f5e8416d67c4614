package repository

import (
	"context"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"
)

var _ interfaces.ImageRepository = (*pgImageRepository)(nil)

const (
	listImagesQuery          = `SELECT id_image, link, id_product FROM images ORDER BY id_image`
	getImageByIDQuery        = `SELECT id_image, link, id_product FROM images WHERE id_image = $1`
	listImagesByProductQuery = `SELECT id_image, link, id_product FROM images WHERE id_product = $1 ORDER BY id_image`
	createImageQuery         = `INSERT INTO images (link, id_product) VALUES ($1, $2) RETURNING id_image, link, id_product`
	deleteImageQuery         = `DELETE FROM images WHERE id_image = $1`
)

type pgImageRepository struct {
	store
}

// NewPgImageRepository creates a PostgreSQL-backed ImageRepository.
func NewPgImageRepository(db interfaces.DBTX, logger *zap.Logger, opts Options) interfaces.ImageRepository {
	return &pgImageRepository{store: newStore(db, logger.Named("PgImageRepo"), opts)}
}

func (r *pgImageRepository) List(ctx context.Context) ([]models.Image, error) {
	images := make([]models.Image, 0)
	err := r.read(ctx, "list images", models.ErrImageNotFound, func(ctx context.Context) error {
		return pgxscan.Select(ctx, r.db, &images, listImagesQuery)
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *pgImageRepository) GetByID(ctx context.Context, id int64) (*models.Image, error) {
	var image models.Image
	err := r.read(ctx, "get image by id", models.ErrImageNotFound, func(ctx context.Context) error {
		return pgxscan.Get(ctx, r.db, &image, getImageByIDQuery, id)
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *pgImageRepository) ListByProduct(ctx context.Context, productID int64) ([]models.Image, error) {
	images := make([]models.Image, 0)
	err := r.read(ctx, "list images by product", models.ErrProductNotFound, func(ctx context.Context) error {
		return pgxscan.Select(ctx, r.db, &images, listImagesByProductQuery, productID)
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// Create fails with ErrProductNotFound when the product does not exist.
func (r *pgImageRepository) Create(ctx context.Context, link string, productID int64) (*models.Image, error) {
	var image models.Image
	err := r.write(ctx, "create image", models.ErrProductNotFound, func(ctx context.Context) error {
		return pgxscan.Get(ctx, r.db, &image, createImageQuery, link, productID)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info("Image created", zap.Int64("imageID", image.ID), zap.Int64("productID", productID))
	return &image, nil
}

func (r *pgImageRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, "delete image", models.ErrImageNotFound, deleteImageQuery, id)
}
