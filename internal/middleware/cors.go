// Package middleware provides HTTP middleware functions.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSMiddleware returns a CORS middleware that allows requests from
// localhost and the configured origins.
func CORSMiddleware(allowedOrigins ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get("Origin")

			// Check if origin is allowed
			if IsAllowedOrigin(origin, allowedOrigins) {
				c.Response().Header().Set("Access-Control-Allow-Origin", origin)
				c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type")
				c.Response().Header().Set("Access-Control-Allow-Credentials", "true")
				c.Response().Header().Add("Vary", "Origin")
			}

			// Handle preflight requests
			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}

// IsAllowedOrigin checks if the origin is allowed for CORS.
// An empty origin is never allowed.
func IsAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}

	// Allow localhost for development
	if strings.HasPrefix(origin, "http://localhost:") {
		return true
	}

	for _, allowed := range allowedOrigins {
		if allowed == "*" || strings.EqualFold(origin, strings.TrimSuffix(allowed, "/")) {
			return true
		}
	}

	return false
}
