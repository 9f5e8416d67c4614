package service

import (
	"context"
	"strings"

	"marketplace-server/internal/access"
	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	"go.uber.org/zap"
)

const productImageFolder = "products"

// ImageInput attaches an image to a product either by an existing link or by
// a file to upload. Exactly one of Link and File must be set.
type ImageInput struct {
	ProductID int64
	Link      string
	File      *Upload
}

// ImageService manages product images.
type ImageService interface {
	List(ctx context.Context, caller *models.Caller) ([]models.Image, error)
	Get(ctx context.Context, caller *models.Caller, id int64) (*models.Image, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.Image, error)
	Create(ctx context.Context, caller *models.Caller, in ImageInput) (*models.Image, error)
	Delete(ctx context.Context, caller *models.Caller, id int64) error
}

var _ ImageService = (*imageServiceImpl)(nil)

type imageServiceImpl struct {
	images   interfaces.ImageRepository
	products interfaces.ProductRepository
	uploader interfaces.Uploader
	logger   *zap.Logger
}

// NewImageService creates an ImageService.
func NewImageService(images interfaces.ImageRepository, products interfaces.ProductRepository, uploader interfaces.Uploader, logger *zap.Logger) ImageService {
	return &imageServiceImpl{
		images:   images,
		products: products,
		uploader: uploader,
		logger:   logger.Named("ImageService"),
	}
}

func imageAdmin(c models.Caller) bool { return access.CanAdminImage(c.Admin) }

func imageSeller(c models.Caller) bool { return access.CanManageImage(c.Seller) }

func (s *imageServiceImpl) List(ctx context.Context, caller *models.Caller) ([]models.Image, error) {
	if err := access.Require(caller, imageAdmin); err != nil {
		return nil, err
	}
	return s.images.List(ctx)
}

func (s *imageServiceImpl) Get(ctx context.Context, caller *models.Caller, id int64) (*models.Image, error) {
	if err := access.Require(caller, imageAdmin); err != nil {
		return nil, err
	}
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	return s.images.GetByID(ctx, id)
}

func (s *imageServiceImpl) ListByProduct(ctx context.Context, productID int64) ([]models.Image, error) {
	if err := validateID("id_product", productID); err != nil {
		return nil, err
	}
	return s.images.ListByProduct(ctx, productID)
}

func (s *imageServiceImpl) Create(ctx context.Context, caller *models.Caller, in ImageInput) (*models.Image, error) {
	if err := access.Require(caller, imageSeller); err != nil {
		return nil, err
	}
	if err := validateID("id_product", in.ProductID); err != nil {
		return nil, err
	}
	link := strings.TrimSpace(in.Link)
	switch {
	case link == "" && in.File == nil:
		return nil, models.NewValidationError("link or file is required")
	case link != "" && in.File != nil:
		return nil, models.NewValidationError("provide either link or file, not both")
	case link != "":
		if err := validate.Var(link, "url"); err != nil {
			return nil, models.NewValidationError("link must be a valid URL")
		}
	default:
		if err := in.File.validate(); err != nil {
			return nil, err
		}
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(caller, access.Owner(product.OwnerID)); err != nil {
		return nil, err
	}

	if in.File != nil {
		link, err = s.uploader.Upload(ctx, in.File.Data, in.File.ContentType, productImageFolder+"/"+product.Name)
		if err != nil {
			return nil, err
		}
	}

	image, err := s.images.Create(ctx, link, product.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Image attached", zap.Int64("imageID", image.ID), zap.Int64("productID", product.ID))
	return image, nil
}

func (s *imageServiceImpl) Delete(ctx context.Context, caller *models.Caller, id int64) error {
	if err := access.Require(caller, imageAdmin); err != nil {
		return err
	}
	if err := validateID("id", id); err != nil {
		return err
	}
	return s.images.Delete(ctx, id)
}
