package handler

import (
	"errors"
	"net/http"

	"marketplace-server/internal/middleware"
	"marketplace-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// retryAfterSeconds is advertised on 503 responses for timed out operations.
const retryAfterSeconds = "1"

// handleServiceError maps the error taxonomy to an HTTP status and a stable
// error code. Store and driver details never reach the client.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrTimeout):
		c.Header("Retry-After", retryAfterSeconds)
		statusCode = http.StatusServiceUnavailable
		errResp = models.ErrorResponse{Code: models.ErrCodeTimeout, Message: "The operation timed out, please retry"}
	case errors.Is(err, models.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeBadCredentials, Message: "Invalid email or password"}
	case errors.Is(err, models.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenExpired, Message: "Token has expired"}
	case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrTokenMalformed), errors.Is(err, models.ErrTokenRevoked):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Token is invalid, malformed or revoked"}
	case errors.Is(err, models.ErrUnauthenticated):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeUnauthenticated, Message: "Authentication required"}
	case errors.Is(err, models.ErrValidation):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeValidation, Message: err.Error()}
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
		errResp = models.ErrorResponse{Code: models.ErrCodeForbidden, Message: "You are not allowed to perform this action"}
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeNotFound, Message: err.Error()}
	case errors.Is(err, models.ErrEmailAlreadyInUse):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeEmailInUse, Message: "Email already in use"}
	case errors.Is(err, models.ErrNoFieldsProvided):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeNoFields, Message: "No fields provided to update"}
	case errors.Is(err, models.ErrConflict):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeConflict, Message: "The request conflicts with existing data"}
	case errors.Is(err, models.ErrUploadFailed):
		statusCode = http.StatusBadGateway
		errResp = models.ErrorResponse{Code: models.ErrCodeUploadFailed, Message: "File upload failed"}
	case errors.Is(err, models.ErrUpstream):
		statusCode = http.StatusBadGateway
		errResp = models.ErrorResponse{Code: models.ErrCodeUpstream, Message: "A backing service failed"}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError",
			zap.String("request_id", middleware.RequestID(c)), zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Code: models.ErrCodeInternal, Message: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}

func badRequest(c *gin.Context, format string, args ...any) {
	handleServiceError(c, models.NewValidationError(format, args...))
}
