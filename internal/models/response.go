package models

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stable error codes exposed to clients.
const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeUnauthenticated = "UNAUTHENTICATED"
	ErrCodeBadCredentials  = "INVALID_CREDENTIALS"
	ErrCodeTokenInvalid    = "TOKEN_INVALID"
	ErrCodeTokenExpired    = "TOKEN_EXPIRED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeEmailInUse      = "EMAIL_IN_USE"
	ErrCodeNoFields        = "NO_FIELDS_PROVIDED"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeTimeout         = "TIMEOUT"
	ErrCodeUploadFailed    = "UPLOAD_FAILED"
	ErrCodeUpstream        = "UPSTREAM_FAILURE"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeInternal        = "INTERNAL_ERROR"
)
