package server

import (
	"net/http"

	"github.com/HartBrook/lyra/internal/errors"
	"github.com/gin-gonic/gin"
)

// APIError represents a structured error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Common error codes
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// RespondError sends a structured error response
func RespondError(c *gin.Context, status int, code string, message string) {
	RespondErrorWithDetails(c, status, code, message, "")
}

// RespondErrorWithDetails sends a structured error response with details
func RespondErrorWithDetails(c *gin.Context, status int, code string, message string, details string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// BadRequest sends a 400 error
func BadRequest(c *gin.Context, message string) {
	RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// NotFound sends a 404 error
func NotFound(c *gin.Context, message string) {
	RespondError(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// RespondLyraError maps err to a status code and writes the envelope.
// Errors that are not LyraErrors become a 500 without their text.
func RespondLyraError(c *gin.Context, err error) {
	_ = c.Error(err)

	le, ok := errors.From(err)
	if !ok {
		RespondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}
	RespondErrorWithDetails(c, statusFor(le.Code), string(le.Code), le.Error(), le.Hint)
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrEmptyPrompt, errors.ErrInvalidTaskType, errors.ErrInvalidPriority,
		errors.ErrCandidateOutOfRange, errors.ErrConfigInvalid:
		return http.StatusBadRequest
	case errors.ErrSessionNotFound, errors.ErrNoDraft:
		return http.StatusNotFound
	case errors.ErrLLMRequestFailed, errors.ErrLLMAuthFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
