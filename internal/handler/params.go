package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"marketplace-server/internal/models"
	"marketplace-server/internal/service"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "%s must be a positive integer", name)
		return 0, false
	}
	return id, true
}

func parseIntQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		badRequest(c, "%s must be a non-negative integer", name)
		return 0, false
	}
	return v, true
}

// readUpload reads the multipart "file" field, bounded by the configured size.
func (h *Handler) readUpload(c *gin.Context) (*service.Upload, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+(1<<20))

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, models.NewValidationError("file must be at most %d bytes", h.maxUploadSize)
		}
		return nil, models.NewValidationError("file is required")
	}
	if header.Size > h.maxUploadSize {
		return nil, models.NewValidationError("file must be at most %d bytes", h.maxUploadSize)
	}

	f, err := header.Open()
	if err != nil {
		return nil, models.NewValidationError("file could not be read")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadSize+1))
	if err != nil {
		return nil, models.NewValidationError("file could not be read")
	}
	if int64(len(data)) > h.maxUploadSize {
		return nil, models.NewValidationError("file must be at most %d bytes", h.maxUploadSize)
	}
	return &service.Upload{Data: data, ContentType: header.Header.Get("Content-Type")}, nil
}

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEMultipartPOSTForm
}
