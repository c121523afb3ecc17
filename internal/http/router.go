package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mybooks/server/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	// Health endpoints
	health := NewHealthController(cfg.LocalStore, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Auth endpoints
	if cfg.AuthController != nil {
		cfg.AuthController.RegisterRoutes(router)
	}

	// Startup routing
	if cfg.Credentials != nil {
		sessionController := NewSessionController(cfg.Credentials, cfg.SessionManager)
		router.GET("/api/session", sessionController.Status)
	}

	// Catalog endpoints
	if cfg.Searcher != nil && cfg.Trending != nil {
		booksController := NewBooksController(cfg.Searcher, cfg.Trending)
		router.GET("/api/books/search", booksController.Search)
		router.GET("/api/books/trending", booksController.Trending)
	}

	// Favorites endpoints
	if cfg.Favorites != nil {
		favoritesController := NewFavoritesController(cfg.Favorites)
		router.GET("/api/favorites", favoritesController.List)
		router.POST("/api/favorites/toggle", favoritesController.Toggle)
	}

	// Theme endpoints
	if cfg.Theme != nil {
		themeController := NewThemeController(cfg.Theme)
		router.GET("/api/theme", themeController.Get)
		router.PUT("/api/theme", themeController.Set)
	}

	// Profile endpoints stay reachable without a session: loading falls back
	// to the cached credentials, and saving reports the missing session itself.
	if cfg.Reconciler != nil {
		profileController := NewProfileController(cfg.Reconciler)
		router.GET("/api/profile", profileController.Get)
		router.PUT("/api/profile", profileController.Update)
	}

	return router
}
