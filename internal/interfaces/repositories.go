package interfaces

import (
	"context"
	"time"

	"marketplace-server/internal/models"
	"marketplace-server/internal/patch"
)

// UserRepository is the Entity Store contract for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id int64, set *patch.Set) (*models.User, error)
	SetRole(ctx context.Context, id int64, role models.Role) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepository is the Entity Store contract for products.
// Every product returned carries a non-nil Images slice.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	GetApprovedByID(ctx context.Context, id int64) (*models.Product, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	ListApproved(ctx context.Context) ([]models.Product, error)
	ListApprovedByCategory(ctx context.Context, category string) ([]models.Product, error)
	ListByOwner(ctx context.Context, ownerID int64, approvedOnly bool) ([]models.Product, error)
	Search(ctx context.Context, term string, page models.Page) ([]models.SearchResult, error)
	Create(ctx context.Context, p models.NewProduct) (*models.Product, error)
	// UpdateOwned applies set only when the product belongs to ownerID.
	UpdateOwned(ctx context.Context, id, ownerID int64, set *patch.Set) (*models.Product, error)
	SetApproved(ctx context.Context, id int64, approved bool) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	// DeleteOwned deletes only when the product belongs to ownerID.
	DeleteOwned(ctx context.Context, id, ownerID int64) error
}

// ImageRepository is the Entity Store contract for images.
type ImageRepository interface {
	List(ctx context.Context) ([]models.Image, error)
	GetByID(ctx context.Context, id int64) (*models.Image, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.Image, error)
	Create(ctx context.Context, link string, productID int64) (*models.Image, error)
	Delete(ctx context.Context, id int64) error
}

// TagRepository is the Entity Store contract for tags.
type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.Tag, error)
	Create(ctx context.Context, name string, productID int64) (*models.Tag, error)
	Delete(ctx context.Context, id int64) error
}

// CollectionRepository stores one per-user product list (cart or favourites).
type CollectionRepository interface {
	Add(ctx context.Context, userID, productID int64) (*models.CollectionEntry, error)
	ListByUser(ctx context.Context, userID int64) ([]models.CollectionItem, error)
	// Remove deletes the entry only when it belongs to userID.
	Remove(ctx context.Context, entryID, userID int64) error
}

// TokenDenylist records revoked session token ids until they expire.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
