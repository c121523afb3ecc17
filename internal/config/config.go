package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Firebase
		OpenLibrary
		Trending
		Auth
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Firebase struct {
		CredentialsPath string // Path to the service account JSON file
		ProjectID       string // Optional override; read from credentials if empty
		WebAPIKey       string // Web API key for password sign-in
	}
	OpenLibrary struct {
		Subject string // Subject slug used for trending lookups
		Limit   int    // Max results per request
	}
	Trending struct {
		RefreshEnabled bool
		Schedule       string // Cron format: "0 */6 * * *" = every 6 hours
	}
	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		SecureCookies   bool // Set to false for local dev without HTTPS

		// Rate limiting configuration
		MaxLoginAttempts int           // Max failed attempts before lockout (default: 5)
		RateLimitWindow  time.Duration // Time window for counting attempts (default: 15m)
		LockoutDuration  time.Duration // How long to lock out (default: 30m)
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Firebase defaults
	v.SetDefault("firebase_credentials_path", "./service-account.json")
	v.SetDefault("firebase_project_id", "")
	v.SetDefault("firebase_web_api_key", "")

	// Open Library defaults
	v.SetDefault("openlibrary_subject", "science_fiction")
	v.SetDefault("openlibrary_limit", 20)

	// Trending cache defaults
	v.SetDefault("trending_refresh_enabled", true)
	v.SetDefault("trending_refresh_schedule", "0 */6 * * *") // Every 6 hours

	// Auth defaults
	v.SetDefault("auth_session_secret", "")       // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h")  // 24 hours
	v.SetDefault("auth_secure_cookies", true)     // HTTPS-only cookies
	v.SetDefault("auth_max_login_attempts", 5)    // Max failed attempts
	v.SetDefault("auth_rate_limit_window", "15m") // Window for counting attempts
	v.SetDefault("auth_lockout_duration", "30m")  // Lockout duration

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Firebase: Firebase{
			CredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
			ProjectID:       v.GetString("FIREBASE_PROJECT_ID"),
			WebAPIKey:       v.GetString("FIREBASE_WEB_API_KEY"),
		},
		OpenLibrary: OpenLibrary{
			Subject: v.GetString("OPENLIBRARY_SUBJECT"),
			Limit:   v.GetInt("OPENLIBRARY_LIMIT"),
		},
		Trending: Trending{
			RefreshEnabled: v.GetBool("TRENDING_REFRESH_ENABLED"),
			Schedule:       v.GetString("TRENDING_REFRESH_SCHEDULE"),
		},
		Auth: Auth{
			SessionSecret:    v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime:  v.GetDuration("AUTH_SESSION_LIFETIME"),
			SecureCookies:    v.GetBool("AUTH_SECURE_COOKIES"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
	}
}
