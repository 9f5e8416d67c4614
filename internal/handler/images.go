package handler

import (
	"net/http"
	"strconv"

	"marketplace-server/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listImages(c *gin.Context) {
	images, err := h.svc.Images.List(c.Request.Context(), callerFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *Handler) listImagesByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	images, err := h.svc.Images.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *Handler) getImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	image, err := h.svc.Images.Get(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

// createImage accepts either a JSON body with a link or a multipart form
// carrying id_product and file.
func (h *Handler) createImage(c *gin.Context) {
	var in service.ImageInput
	kind := "link"

	if isMultipart(c) {
		kind = "image"
		file, err := h.readUpload(c)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		productID, err := strconv.ParseInt(c.PostForm("id_product"), 10, 64)
		if err != nil || productID <= 0 {
			badRequest(c, "id_product must be a positive integer")
			return
		}
		in = service.ImageInput{ProductID: productID, File: file}
	} else {
		var req createImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request data: %v", err)
			return
		}
		in = service.ImageInput{ProductID: req.ProductID, Link: req.Link}
	}

	image, err := h.svc.Images.Create(c.Request.Context(), callerFrom(c), in)
	if err != nil {
		if in.File != nil {
			uploadsTotal.WithLabelValues(kind, "failure").Inc()
		}
		handleServiceError(c, err)
		return
	}
	if in.File != nil {
		uploadsTotal.WithLabelValues(kind, "success").Inc()
	}
	c.JSON(http.StatusCreated, image)
}

func (h *Handler) deleteImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Images.Delete(c.Request.Context(), callerFrom(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
