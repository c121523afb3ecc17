package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context keys for the session identity
const (
	ContextKeyUID   = "auth_uid"
	ContextKeyEmail = "auth_email"
)

// Middleware resolves the session identity for HTTP requests.
type Middleware struct {
	sessionManager *SessionManager
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(sessionManager *SessionManager) *Middleware {
	return &Middleware{sessionManager: sessionManager}
}

// Handler returns a Gin middleware that copies the session identity into the
// Gin context. It never rejects requests; use RequireSession for that.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := m.sessionManager.GetUID(c.Request); uid != "" {
			c.Set(ContextKeyUID, uid)
			c.Set(ContextKeyEmail, m.sessionManager.GetEmail(c.Request))
		}
		c.Next()
	}
}

// RequireSession returns a middleware that rejects unauthenticated requests.
func (m *Middleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// GetUID retrieves the signed-in user's Firebase uid from the context.
// Returns an empty string if not authenticated.
func GetUID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeyUID); exists {
		if uid, ok := id.(string); ok {
			return uid
		}
	}
	return ""
}

// GetEmail retrieves the signed-in user's email from the context.
func GetEmail(c *gin.Context) string {
	if e, exists := c.Get(ContextKeyEmail); exists {
		if email, ok := e.(string); ok {
			return email
		}
	}
	return ""
}

// IsAuthenticated returns true if the request carries a session identity.
func IsAuthenticated(c *gin.Context) bool {
	return GetUID(c) != ""
}

// SessionIdentity reads the current uid from the session data carried in a
// request context. It satisfies the profile reconciler's session dependency.
type SessionIdentity struct {
	sessionManager *SessionManager
}

// NewSessionIdentity creates a session identity reader.
func NewSessionIdentity(sessionManager *SessionManager) *SessionIdentity {
	return &SessionIdentity{sessionManager: sessionManager}
}

// CurrentUID returns the uid stored in the session, or an empty string when
// the request is not signed in. The context must come from a request that
// passed through SessionLoadSave.
func (s *SessionIdentity) CurrentUID(ctx context.Context) string {
	return s.sessionManager.GetString(ctx, SessionKeyUID)
}
