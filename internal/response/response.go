// Package response provides helpers for consistent API responses.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error codes returned in the "code" field.
const (
	CodeBadRequest        = "BAD_REQUEST"
	CodeTextTooLong       = "TEXT_TOO_LONG"
	CodeUnknownOperation  = "UNKNOWN_OPERATION"
	CodeUnknownPreset     = "UNKNOWN_PRESET"
	CodeJobNotFound       = "JOB_NOT_FOUND"
	CodeJobNotCancelable  = "JOB_NOT_CANCELABLE"
	CodeJobsDisabled      = "JOBS_DISABLED"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Success sends a successful JSON response with the given data.
// The response will always include "error": false.
func Success(c echo.Context, data map[string]interface{}) error {
	return SuccessWithStatus(c, http.StatusOK, data)
}

// SuccessWithStatus is Success with an explicit status code.
func SuccessWithStatus(c echo.Context, statusCode int, data map[string]interface{}) error {
	resp := make(map[string]interface{}, len(data)+1)
	resp["error"] = false

	// Merge additional data
	for k, v := range data {
		resp[k] = v
	}

	return c.JSON(statusCode, resp)
}

// Error sends an error JSON response with the given status code and message.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, map[string]interface{}{
		"error":   true,
		"message": message,
	})
}

// ErrorWithCode sends an error response with a specific error code.
// This is useful for clients that need to handle specific error types.
func ErrorWithCode(c echo.Context, statusCode int, code string, message string) error {
	return c.JSON(statusCode, map[string]interface{}{
		"error":   true,
		"code":    code,
		"message": message,
	})
}
