package apierrors

import (
	"net/http"

	"blastsms/internal/observability"

	"github.com/gin-gonic/gin"
)

const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeMissingConfig       = "MISSING_CONFIGURATION"
	CodeInternal            = "INTERNAL_ERROR"
	CodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	internalFailureMessage  = "An internal error occurred. Please try again later."
	configFailureMessagePfx = "Missing configuration"
)

var logger = observability.NewLogger()

// SetLogger replaces the package logger, used by bootstrap and tests.
func SetLogger(l *observability.Logger) {
	if l != nil {
		logger = l
	}
}

// ErrorResponse is the JSON structure returned to API clients.
// Success is always false so clients can branch on one flag for every endpoint.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// respond writes the error response and logs correlation info
func respond(c *gin.Context, statusCode int, body ErrorResponse) {
	ctx := observability.WithFields(c.Request.Context(),
		observability.Field{Key: "status_code", Value: statusCode},
		observability.Field{Key: "error_code", Value: body.Code},
		observability.Field{Key: "error_message", Value: body.Error},
	)
	logger.Info(ctx, "API error response")

	c.AbortWithStatusJSON(statusCode, body)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, ErrorResponse{Error: message, Code: CodeNotFound})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, code, message string) {
	respond(c, http.StatusBadRequest, ErrorResponse{Error: message, Code: code})
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, code, message string) {
	respond(c, http.StatusConflict, ErrorResponse{Error: message, Code: code})
}

// ServiceUnavailable sends a 503 response and logs the internal error
func ServiceUnavailable(c *gin.Context, code, message string, internalErr error) {
	logger.Error(c.Request.Context(), "service unavailable", internalErr)
	respond(c, http.StatusServiceUnavailable, ErrorResponse{Error: message, Code: code})
}

// MissingConfiguration sends a 500 naming the absent settings. Kept apart
// from InternalError so operators can tell setup problems from runtime ones.
func MissingConfiguration(c *gin.Context, missing []string) {
	respond(c, http.StatusInternalServerError, ErrorResponse{
		Error:   configFailureMessagePfx,
		Code:    CodeMissingConfig,
		Missing: missing,
	})
}

// InternalError sends a sanitized 500 response - never exposes internal details
func InternalError(c *gin.Context, internalErr error) {
	logger.Error(c.Request.Context(), "internal error", internalErr)
	respond(c, http.StatusInternalServerError, ErrorResponse{Error: internalFailureMessage, Code: CodeInternal})
}

// Failure sends a 500 with a caller-chosen public message, for endpoints whose
// clients expect a specific failure text.
func Failure(c *gin.Context, message string, internalErr error) {
	logger.Error(c.Request.Context(), "request failed", internalErr)
	respond(c, http.StatusInternalServerError, ErrorResponse{Error: message, Code: CodeInternal})
}
