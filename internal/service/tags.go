package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"marketplace-server/internal/access"
	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	"go.uber.org/zap"
)

const maxTagLength = 50

// TagService manages product tags.
type TagService interface {
	List(ctx context.Context, caller *models.Caller) ([]models.Tag, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.Tag, error)
	Create(ctx context.Context, caller *models.Caller, name string, productID int64) (*models.Tag, error)
	Delete(ctx context.Context, caller *models.Caller, id int64) error
}

var _ TagService = (*tagServiceImpl)(nil)

type tagServiceImpl struct {
	tags     interfaces.TagRepository
	products interfaces.ProductRepository
	logger   *zap.Logger
}

// NewTagService creates a TagService.
func NewTagService(tags interfaces.TagRepository, products interfaces.ProductRepository, logger *zap.Logger) TagService {
	return &tagServiceImpl{
		tags:     tags,
		products: products,
		logger:   logger.Named("TagService"),
	}
}

func tagSeller(c models.Caller) bool { return access.CanManageTag(c.Seller) }

func (s *tagServiceImpl) List(ctx context.Context, caller *models.Caller) ([]models.Tag, error) {
	if err := access.Require(caller, func(c models.Caller) bool { return access.CanListTags(c.Admin) }); err != nil {
		return nil, err
	}
	return s.tags.List(ctx)
}

func (s *tagServiceImpl) ListByProduct(ctx context.Context, productID int64) ([]models.Tag, error) {
	if err := validateID("id_product", productID); err != nil {
		return nil, err
	}
	return s.tags.ListByProduct(ctx, productID)
}

func (s *tagServiceImpl) Create(ctx context.Context, caller *models.Caller, name string, productID int64) (*models.Tag, error) {
	if err := access.Require(caller, tagSeller); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("name is required")
	}
	if utf8.RuneCountInString(name) > maxTagLength {
		return nil, models.NewValidationError("name must be at most %d characters", maxTagLength)
	}
	if err := validateID("id_product", productID); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(caller, access.Owner(product.OwnerID)); err != nil {
		return nil, err
	}

	tag, err := s.tags.Create(ctx, name, productID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Tag created", zap.Int64("tagID", tag.ID), zap.Int64("productID", productID))
	return tag, nil
}

func (s *tagServiceImpl) Delete(ctx context.Context, caller *models.Caller, id int64) error {
	if err := access.Require(caller, access.Authenticated); err != nil {
		return err
	}
	if err := validateID("id", id); err != nil {
		return err
	}

	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return err
	}
	product, err := s.products.GetByID(ctx, tag.ProductID)
	if err != nil {
		return err
	}
	if err := access.Require(caller, access.TagEditor(product.OwnerID)); err != nil {
		return err
	}
	return s.tags.Delete(ctx, id)
}
