package models

// Image is a blob-storage link attached to a product.
type Image struct {
	ID        int64  `json:"id_image" db:"id_image"`
	Link      string `json:"link" db:"link"`
	ProductID int64  `json:"id_product" db:"id_product"`
}

// Tag is a free-text label attached to a product.
type Tag struct {
	ID        int64  `json:"id_tag" db:"id_tag"`
	Name      string `json:"name" db:"name"`
	ProductID int64  `json:"id_product" db:"id_product"`
}
