// Package auth handles email/password sign-in against the Firebase identity
// provider and keeps the resulting identity in a server-side session cookie.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<base64-32-bytes>  # Auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h              # Session duration
//	AUTH_SECURE_COOKIES=true               # HTTPS-only cookies
//	AUTH_MAX_LOGIN_ATTEMPTS=5              # Failed attempts before lockout
//	AUTH_RATE_LIMIT_WINDOW=15m             # Window for counting attempts
//	AUTH_LOCKOUT_DURATION=30m              # Lockout duration
//
// # Usage
//
// Initialize in entrypoint:
//
//	authService := auth.NewService(tokens, documents, cfg.Auth)
//	sessionManager, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	router.Use(sessionManager.SessionLoadSave())
//
// Extract the session identity in handlers:
//
//	uid := auth.GetUID(c) // Empty string when not signed in
package auth
