package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listTags(c *gin.Context) {
	tags, err := h.svc.Tags.List(c.Request.Context(), callerFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *Handler) listTagsByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tags, err := h.svc.Tags.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *Handler) createTag(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request data: %v", err)
		return
	}
	tag, err := h.svc.Tags.Create(c.Request.Context(), callerFrom(c), req.Name, req.ProductID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *Handler) deleteTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Tags.Delete(c.Request.Context(), callerFrom(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
