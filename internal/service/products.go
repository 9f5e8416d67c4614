package service

import (
	"context"
	"strings"

	"marketplace-server/internal/access"
	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"
	"marketplace-server/internal/patch"

	"go.uber.org/zap"
)

// ProductInput carries the seller-supplied fields of a new listing.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Model       string
	Condition   string
	Price       float64
}

// ProductService implements the catalog and its moderation flow. Anonymous
// callers are passed as a nil *models.Caller.
type ProductService interface {
	ListAll(ctx context.Context, caller *models.Caller) ([]models.Product, error)
	ListApproved(ctx context.Context) ([]models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)
	Search(ctx context.Context, term string, page models.Page) ([]models.SearchResult, error)
	Get(ctx context.Context, caller *models.Caller, id int64) (*models.Product, error)
	GetApproved(ctx context.Context, id int64) (*models.Product, error)
	ListByOwner(ctx context.Context, caller *models.Caller, ownerID int64) ([]models.Product, error)
	ListSelf(ctx context.Context, caller *models.Caller) ([]models.Product, error)
	Create(ctx context.Context, caller *models.Caller, in ProductInput) (*models.Product, error)
	Update(ctx context.Context, caller *models.Caller, id int64, p models.ProductPatch) (*models.Product, error)
	Approve(ctx context.Context, caller *models.Caller, id int64) (*models.Product, error)
	Delete(ctx context.Context, caller *models.Caller, id int64) error
}

var _ ProductService = (*productServiceImpl)(nil)

type productServiceImpl struct {
	products interfaces.ProductRepository
	events   interfaces.EventPublisher
	logger   *zap.Logger
}

// NewProductService creates a ProductService.
func NewProductService(products interfaces.ProductRepository, events interfaces.EventPublisher, logger *zap.Logger) ProductService {
	return &productServiceImpl{
		products: products,
		events:   events,
		logger:   logger.Named("ProductService"),
	}
}

func (s *productServiceImpl) ListAll(ctx context.Context, caller *models.Caller) ([]models.Product, error) {
	if err := access.Require(caller, access.Admin); err != nil {
		return nil, err
	}
	return s.products.ListAll(ctx)
}

func (s *productServiceImpl) ListApproved(ctx context.Context) ([]models.Product, error) {
	return s.products.ListApproved(ctx)
}

func (s *productServiceImpl) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, models.NewValidationError("category is required")
	}
	return s.products.ListApprovedByCategory(ctx, category)
}

func (s *productServiceImpl) Search(ctx context.Context, term string, page models.Page) ([]models.SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, models.NewValidationError("search term is required")
	}
	if page.Limit < 0 || page.Offset < 0 {
		return nil, models.NewValidationError("limit and offset must not be negative")
	}
	return s.products.Search(ctx, term, page.Normalize())
}

// Get returns any product, approved or not. Admin only.
func (s *productServiceImpl) Get(ctx context.Context, caller *models.Caller, id int64) (*models.Product, error) {
	if err := access.Require(caller, access.Admin); err != nil {
		return nil, err
	}
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, id)
}

func (s *productServiceImpl) GetApproved(ctx context.Context, id int64) (*models.Product, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	return s.products.GetApprovedByID(ctx, id)
}

// ListByOwner shows a seller's listings. Listings still in moderation are
// visible only to the owner and to admins.
func (s *productServiceImpl) ListByOwner(ctx context.Context, caller *models.Caller, ownerID int64) ([]models.Product, error) {
	if err := validateID("id", ownerID); err != nil {
		return nil, err
	}
	approvedOnly := caller == nil || !access.CanViewUnapproved(caller.UserID, ownerID, caller.Admin)
	return s.products.ListByOwner(ctx, ownerID, approvedOnly)
}

func (s *productServiceImpl) ListSelf(ctx context.Context, caller *models.Caller) ([]models.Product, error) {
	if err := access.Require(caller, access.Authenticated); err != nil {
		return nil, err
	}
	return s.products.ListByOwner(ctx, caller.UserID, false)
}

// Create lists a new product for the calling seller. It starts unapproved.
func (s *productServiceImpl) Create(ctx context.Context, caller *models.Caller, in ProductInput) (*models.Product, error) {
	if err := access.Require(caller, access.Seller); err != nil {
		return nil, err
	}
	np := models.NewProduct{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Model:       strings.TrimSpace(in.Model),
		Condition:   strings.TrimSpace(in.Condition),
		Price:       in.Price,
		OwnerID:     caller.UserID,
	}
	if err := validateStruct(np); err != nil {
		return nil, err
	}
	return s.products.Create(ctx, np)
}

// Update applies a sparse change to a product the caller owns. Owners may
// withdraw approval; granting it also requires an admin.
func (s *productServiceImpl) Update(ctx context.Context, caller *models.Caller, id int64, p models.ProductPatch) (*models.Product, error) {
	if err := access.Require(caller, access.Authenticated); err != nil {
		return nil, err
	}
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	if p.Price != nil && *p.Price < 0 {
		return nil, models.NewValidationError("price must be at least 0")
	}

	set := patch.New().
		String("name", trimmed(p.Name)).
		String("description", p.Description).
		String("category", trimmed(p.Category)).
		String("model", trimmed(p.Model)).
		String("condition", trimmed(p.Condition)).
		Float("price", p.Price).
		Bool("approved", p.Approved)
	if set.Empty() {
		return nil, models.ErrNoFieldsProvided
	}

	current, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rules := []access.Rule{access.Owner(current.OwnerID)}
	if p.Approved != nil && *p.Approved {
		rules = append(rules, access.Admin)
	}
	if err := access.Require(caller, rules...); err != nil {
		s.logger.Warn("Product update denied", zap.Int64("productID", id), zap.Int64("callerID", caller.UserID))
		return nil, err
	}

	// ownership is re-checked by the UPDATE itself
	return s.products.UpdateOwned(ctx, id, caller.UserID, set)
}

func (s *productServiceImpl) Approve(ctx context.Context, caller *models.Caller, id int64) (*models.Product, error) {
	if err := access.Require(caller, access.Admin); err != nil {
		return nil, err
	}
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	product, err := s.products.SetApproved(ctx, id, true)
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.events, s.logger, models.NewDomainEvent(models.EventProductApproved, id, caller.UserID))
	return product, nil
}

func (s *productServiceImpl) Delete(ctx context.Context, caller *models.Caller, id int64) error {
	if err := access.Require(caller, access.Authenticated); err != nil {
		return err
	}
	if err := validateID("id", id); err != nil {
		return err
	}

	current, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Require(caller, access.OwnerOrAdmin(current.OwnerID)); err != nil {
		return err
	}

	if access.CanMutateProduct(caller.UserID, current.OwnerID) {
		err = s.products.DeleteOwned(ctx, id, caller.UserID)
	} else {
		err = s.products.Delete(ctx, id)
	}
	if err != nil {
		return err
	}
	publishEvent(ctx, s.events, s.logger, models.NewDomainEvent(models.EventProductDeleted, id, caller.UserID))
	return nil
}
