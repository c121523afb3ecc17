package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mybooks/server/internal/auth"
	"github.com/mybooks/server/internal/catalog"
	"github.com/mybooks/server/internal/config"
	"github.com/mybooks/server/internal/credentials"
	"github.com/mybooks/server/internal/favorites"
	"github.com/mybooks/server/internal/firebase"
	http_controllers "github.com/mybooks/server/internal/http"
	"github.com/mybooks/server/internal/localstore"
	"github.com/mybooks/server/internal/profile"
	"github.com/mybooks/server/internal/theme"
	"github.com/mybooks/server/internal/trending"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the trending refresh)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting MyBooks server v%s", version)

	// Initialize local storage
	store, err := localstore.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize local storage: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing local storage: %v", err)
		}
	}()

	// Local state built on the KV store
	creds := credentials.NewCache(store)
	favoritesManager := favorites.NewManager(store)
	themePreference := theme.NewPreference(store)

	// Firebase (identity + profile documents)
	ctx := context.Background()
	firebaseService, err := firebase.NewService(ctx, cfg.Firebase)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	defer func() {
		if err := firebaseService.Close(); err != nil {
			log.Printf("Error closing Firebase clients: %v", err)
		}
	}()

	if cfg.Firebase.WebAPIKey == "" {
		log.Printf("WARNING: Firebase web API key is not set. Sign-in will fail. Set 'FIREBASE_WEB_API_KEY' to enable.")
	}
	tokens := firebase.NewTokens(cfg.Firebase.WebAPIKey)
	documents := firebaseService.UserDocuments()

	// Open Library catalog with a trending cache in front of it
	catalogClient := catalog.NewClient(cfg.OpenLibrary.Subject, cfg.OpenLibrary.Limit)
	trendingCache := trending.NewCache(catalogClient)

	var trendingCancel context.CancelFunc
	if cfg.Trending.RefreshEnabled {
		var trendingCtx context.Context
		trendingCtx, trendingCancel = context.WithCancel(context.Background())
		if err := trendingCache.Start(trendingCtx, cfg.Trending.Schedule); err != nil {
			log.Printf("WARNING: trending refresh disabled: %v", err)
			trendingCancel()
			trendingCancel = nil
		}
	}

	// Sessions live next to the rest of the local state
	sqlDB, err := store.DB().DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}
	authMiddleware := auth.NewMiddleware(sessionManager)

	// Generate or use configured CSRF secret
	var csrfSecret []byte
	if cfg.Auth.SessionSecret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.Auth.SessionSecret)
		}
	} else {
		secret, err := auth.GenerateSessionSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		csrfSecret, _ = hex.DecodeString(secret)
		log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	}

	authService := auth.NewService(tokens, documents, cfg.Auth)
	authController := auth.NewAuthController(authService, sessionManager, creds, cfg.Auth)

	// Profile reconciler ties the session, the remote document and the
	// credentials cache together
	sessionIdentity := auth.NewSessionIdentity(sessionManager)
	reconciler := profile.NewReconciler(sessionIdentity, documents, creds)

	routerCfg := http_controllers.RouterConfig{
		Reconciler:     reconciler,
		Favorites:      favoritesManager,
		Credentials:    creds,
		Theme:          themePreference,
		LocalStore:     store,
		Searcher:       catalogClient,
		Trending:       trendingCache,
		AuthController: authController,
		AuthMiddleware: authMiddleware,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(_ context.Context) {
		authController.Stop()
		if trendingCancel != nil {
			trendingCancel()
		}
		trendingCache.Stop()
	}

	Serve(router, cfg, onShutdown)
}
