package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mybooks/server/internal/auth"
)

// GetUID extracts the signed-in user's Firebase uid from the Gin context.
// Returns an empty string when not authenticated.
func GetUID(c *gin.Context) string {
	return auth.GetUID(c)
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondUnauthorized sends a 401 Unauthorized response.
func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
}

// respondUpstreamError logs the error and sends a 502 Bad Gateway response.
// Used when a remote dependency (Firestore, Open Library) fails.
func respondUpstreamError(c *gin.Context, err error, context string) {
	log.Printf("Upstream error (%s): %v", context, err)
	c.JSON(http.StatusBadGateway, ErrorResponse{Error: "upstream service unavailable"})
}
