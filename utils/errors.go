package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ValidationError means tool arguments failed schema validation. It is surfaced
// to the user through a success:false envelope with a corrective narrative.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a named argument field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError means a booking slot race was lost: someone else confirmed the
// slot between selection and commit.
type ConflictError struct {
	SlotID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s already booked", e.SlotID)
}

// UpstreamTimeout means the LLM or a domain collaborator did not answer within
// budget. It is never retried inside the same user turn.
type UpstreamTimeout struct {
	Upstream string
	Err      error
}

func (e *UpstreamTimeout) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Upstream, e.Err)
}

func (e *UpstreamTimeout) Unwrap() error { return e.Err }

// DegradedDataError means the capacity source is stale or unreachable. The
// capacity engine absorbs it into the safe-default snapshot; it never reaches
// a user.
type DegradedDataError struct {
	Source string
	Err    error
}

func (e *DegradedDataError) Error() string {
	return fmt.Sprintf("degraded data from %s: %v", e.Source, e.Err)
}

func (e *DegradedDataError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsUpstreamTimeout reports whether err is an UpstreamTimeout.
func IsUpstreamTimeout(err error) bool {
	var ut *UpstreamTimeout
	return errors.As(err, &ut)
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
