package handler

import (
	"net/http"

	"marketplace-server/internal/models"
	"marketplace-server/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listAllProducts(c *gin.Context) {
	products, err := h.svc.Products.ListAll(c.Request.Context(), callerFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) listApprovedProducts(c *gin.Context) {
	products, err := h.svc.Products.ListApproved(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) getApprovedProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.svc.Products.GetApproved(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) listProductsByCategory(c *gin.Context) {
	products, err := h.svc.Products.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) searchProducts(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit")
	if !ok {
		return
	}
	offset, ok := parseIntQuery(c, "offset")
	if !ok {
		return
	}
	page := models.Page{Limit: limit, Offset: offset}.Normalize()

	results, err := h.svc.Products.Search(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, searchResponse{Results: results, Limit: page.Limit, Offset: page.Offset})
}

func (h *Handler) listOwnProducts(c *gin.Context) {
	products, err := h.svc.Products.ListSelf(c.Request.Context(), callerFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) listProductsByOwner(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	products, err := h.svc.Products.ListByOwner(c.Request.Context(), callerFrom(c), ownerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.svc.Products.Get(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request data: %v", err)
		return
	}

	product, err := h.svc.Products.Create(c.Request.Context(), callerFrom(c), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Model:       req.Model,
		Condition:   req.Condition,
		Price:       *req.Price,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	productsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request data: %v", err)
		return
	}

	product, err := h.svc.Products.Update(c.Request.Context(), callerFrom(c), id, req.toPatch())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) approveProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.svc.Products.Approve(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Products.Delete(c.Request.Context(), callerFrom(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Cart and favourites ---

func (h *Handler) listCollection(svc service.CollectionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context(), callerFrom(c))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func (h *Handler) addToCollection(svc service.CollectionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req collectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request data: %v", err)
			return
		}
		entry, err := svc.Add(c.Request.Context(), callerFrom(c), req.ProductID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

func (h *Handler) removeFromCollection(svc service.CollectionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := svc.Remove(c.Request.Context(), callerFrom(c), id); err != nil {
			handleServiceError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
