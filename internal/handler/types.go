package handler

import "marketplace-server/internal/models"

// --- Request Structs ---

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Name        *string `json:"name"`
	Surname     *string `json:"surname"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Description *string `json:"description"`
}

func (r updateUserRequest) toPatch() models.UserPatch {
	return models.UserPatch{
		Name:        r.Name,
		Surname:     r.Surname,
		Email:       r.Email,
		Password:    r.Password,
		Description: r.Description,
	}
}

type createProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Model       string   `json:"model"`
	Condition   string   `json:"condition"`
	Price       *float64 `json:"price" binding:"required"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Model       *string  `json:"model"`
	Condition   *string  `json:"condition"`
	Price       *float64 `json:"price"`
	Approved    *bool    `json:"approved"`
}

func (r updateProductRequest) toPatch() models.ProductPatch {
	return models.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Model:       r.Model,
		Condition:   r.Condition,
		Price:       r.Price,
		Approved:    r.Approved,
	}
}

// createImageRequest is the JSON form. Multipart requests send id_product and file instead.
type createImageRequest struct {
	Link      string `json:"link" binding:"required"`
	ProductID int64  `json:"id_product" binding:"required"`
}

type createTagRequest struct {
	Name      string `json:"name" binding:"required"`
	ProductID int64  `json:"id_product" binding:"required"`
}

type collectionRequest struct {
	ProductID int64 `json:"id_product" binding:"required"`
}

// --- Response Structs ---

type searchResponse struct {
	Results []models.SearchResult `json:"results"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}
