package http

import (
	"github.com/mybooks/server/internal/auth"
	"github.com/mybooks/server/internal/credentials"
	"github.com/mybooks/server/internal/favorites"
	"github.com/mybooks/server/internal/localstore"
	"github.com/mybooks/server/internal/profile"
	"github.com/mybooks/server/internal/theme"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router. This replaces a long parameter list in NewRouter.
type RouterConfig struct {
	// Core state
	Reconciler  *profile.Reconciler
	Favorites   *favorites.Manager
	Credentials *credentials.Cache
	Theme       *theme.Preference
	LocalStore  *localstore.Store

	// Catalog
	Searcher BookSearcher
	Trending TrendingSource

	// Authentication
	AuthController *auth.AuthController
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager

	// CSRF protection; disabled when empty
	CSRFSecret    []byte
	SecureCookies bool

	// Application info
	Version string
}
