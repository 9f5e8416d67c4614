package models

import "time"

// Product is a listing owned by exactly one user.
// Images is never nil when read from the store.
type Product struct {
	ID          int64     `json:"id_product" db:"id_product"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Model       string    `json:"model" db:"model"`
	Condition   string    `json:"condition" db:"condition"`
	Price       float64   `json:"price" db:"price"`
	Approved    bool      `json:"approved" db:"approved"`
	OwnerID     int64     `json:"id_user" db:"id_user"`
	Images      []string  `json:"images" db:"images"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// NewProduct carries the fields a seller supplies when listing a product.
type NewProduct struct {
	Name        string  `validate:"required,max=200"`
	Description string  `validate:"max=5000"`
	Category    string  `validate:"required,max=100"`
	Model       string  `validate:"max=100"`
	Condition   string  `validate:"max=50"`
	Price       float64 `validate:"gte=0"`
	OwnerID     int64   `validate:"required,gt=0"`
}

// ProductPatch is a sparse product update. Price zero and Approved false are
// real values, only nil means absent.
type ProductPatch struct {
	Name        *string
	Description *string
	Category    *string
	Model       *string
	Condition   *string
	Price       *float64
	Approved    *bool
}

// SearchResult is a product with its relevance score.
type SearchResult struct {
	Product
	Score int `json:"score" db:"score"`
}

// Page bounds list queries.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Normalize clamps the page to the supported range.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
