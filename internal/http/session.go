package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mybooks/server/internal/auth"
	"github.com/mybooks/server/internal/credentials"
)

// SessionController answers the startup question: does the client go straight
// to the home screen or to the login screen. Cached credentials count even
// when no server session is live, matching the remember-me behaviour of the
// credentials cache.
type SessionController struct {
	creds    *credentials.Cache
	sessions *auth.SessionManager
}

func NewSessionController(creds *credentials.Cache, sessions *auth.SessionManager) *SessionController {
	return &SessionController{creds: creds, sessions: sessions}
}

// Status reports the session and credential cache state. When CSRF protection
// is active the response carries the token clients must replay on mutations.
// GET /api/session
func (sc *SessionController) Status(c *gin.Context) {
	cached := sc.creds.Load()

	resp := gin.H{
		"authenticated":      auth.IsAuthenticated(c),
		"credentials_cached": cached.Present(),
	}

	if token := auth.GetCSRFToken(c); token != "" {
		resp["csrf_token"] = token
	}

	if sc.sessions != nil {
		if data := sc.sessions.GetSessionData(c.Request); data != nil {
			resp["email"] = data.Email
			resp["login_at"] = data.LoginAt
		}
	}

	c.JSON(http.StatusOK, resp)
}
