package models

import "time"

// Collection names a per-user product list.
type Collection string

const (
	CollectionCart       Collection = "cart"
	CollectionFavourites Collection = "favourites"
)

// Valid reports whether c is a known collection.
func (c Collection) Valid() bool {
	return c == CollectionCart || c == CollectionFavourites
}

// CollectionEntry associates a user with a product in a cart or favourites list.
type CollectionEntry struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"id_user" db:"id_user"`
	ProductID int64     `json:"id_product" db:"id_product"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CollectionItem is an entry joined with its product and images.
type CollectionItem struct {
	EntryID int64     `json:"id" db:"entry_id"`
	AddedAt time.Time `json:"added_at" db:"added_at"`
	Product
}
