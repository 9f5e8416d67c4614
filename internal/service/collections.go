package service

import (
	"context"

	"marketplace-server/internal/access"
	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	"go.uber.org/zap"
)

// CollectionService manages the caller's own cart or favourites list.
type CollectionService interface {
	Add(ctx context.Context, caller *models.Caller, productID int64) (*models.CollectionEntry, error)
	List(ctx context.Context, caller *models.Caller) ([]models.CollectionItem, error)
	Remove(ctx context.Context, caller *models.Caller, entryID int64) error
}

var _ CollectionService = (*collectionServiceImpl)(nil)

type collectionServiceImpl struct {
	entries  interfaces.CollectionRepository
	products interfaces.ProductRepository
	logger   *zap.Logger
}

// NewCollectionService creates a CollectionService over one collection.
func NewCollectionService(name models.Collection, entries interfaces.CollectionRepository, products interfaces.ProductRepository, logger *zap.Logger) CollectionService {
	return &collectionServiceImpl{
		entries:  entries,
		products: products,
		logger:   logger.Named("CollectionService").With(zap.String("collection", string(name))),
	}
}

// Add puts an approved product in the caller's list. Adding it twice returns
// the existing entry.
func (s *collectionServiceImpl) Add(ctx context.Context, caller *models.Caller, productID int64) (*models.CollectionEntry, error) {
	if err := access.Require(caller, access.Authenticated); err != nil {
		return nil, err
	}
	if err := validateID("id_product", productID); err != nil {
		return nil, err
	}
	if _, err := s.products.GetApprovedByID(ctx, productID); err != nil {
		return nil, err
	}

	entry, err := s.entries.Add(ctx, caller.UserID, productID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Entry added", zap.Int64("userID", caller.UserID), zap.Int64("productID", productID))
	return entry, nil
}

func (s *collectionServiceImpl) List(ctx context.Context, caller *models.Caller) ([]models.CollectionItem, error) {
	if err := access.Require(caller, access.Authenticated); err != nil {
		return nil, err
	}
	return s.entries.ListByUser(ctx, caller.UserID)
}

// Remove deletes one of the caller's entries. Someone else's entry is reported
// as not found.
func (s *collectionServiceImpl) Remove(ctx context.Context, caller *models.Caller, entryID int64) error {
	if err := access.Require(caller, access.Authenticated); err != nil {
		return err
	}
	if err := validateID("id", entryID); err != nil {
		return err
	}
	return s.entries.Remove(ctx, entryID, caller.UserID)
}
