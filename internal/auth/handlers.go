package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mybooks/server/internal/config"
	"github.com/mybooks/server/internal/credentials"
	"github.com/mybooks/server/internal/firebase"
)

// AuthController handles authentication-related HTTP endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	creds          *credentials.Cache
	rateLimiter    *RateLimiter
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager, creds *credentials.Cache, cfg config.Auth) *AuthController {
	rlCfg := DefaultRateLimitConfig()
	if cfg.MaxLoginAttempts > 0 {
		rlCfg.MaxAttempts = cfg.MaxLoginAttempts
	}
	if cfg.RateLimitWindow > 0 {
		rlCfg.WindowDuration = cfg.RateLimitWindow
	}
	if cfg.LockoutDuration > 0 {
		rlCfg.LockoutDuration = cfg.LockoutDuration
	}
	rateLimiter := NewRateLimiter(rlCfg)

	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		creds:          creds,
		rateLimiter:    rateLimiter,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router gin.IRouter) {
	router.POST("/api/auth/login", ac.Login)
	router.POST("/api/auth/signup", ac.Signup)
	router.POST("/api/auth/logout", ac.Logout)
}

// Stop cleans up resources (rate limiter background goroutine).
func (ac *AuthController) Stop() {
	if ac.rateLimiter != nil {
		ac.rateLimiter.Stop()
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and starts a session.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	clientIP := c.ClientIP()
	if ac.rateLimiter != nil {
		allowed, retryAfter := ac.rateLimiter.Allow(clientIP, req.Email)
		if !allowed {
			c.Header("Retry-After", retryAfter.String())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many login attempts",
				"retry_after": retryAfter.String(),
			})
			return
		}
	}

	uid, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailRequired), errors.Is(err, ErrPasswordRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, firebase.ErrInvalidCredentials):
			if ac.rateLimiter != nil {
				ac.rateLimiter.RecordFailure(clientIP, req.Email)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "sign in failed"})
		}
		return
	}

	if ac.rateLimiter != nil {
		ac.rateLimiter.RecordSuccess(clientIP, req.Email)
	}

	if err := ac.sessionManager.CreateSession(c.Request, uid, req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"uid": uid})
}

// Signup creates a new account. The client is expected to log in afterwards,
// so no session is started here.
func (ac *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	uid, err := ac.service.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTooShort),
			errors.Is(err, ErrPasswordTooShort),
			errors.Is(err, ErrEmailRequired),
			errors.Is(err, ErrEmailInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, firebase.ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "sign up failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"uid": uid})
}

// Logout destroys the session and forgets the cached credentials.
func (ac *AuthController) Logout(c *gin.Context) {
	_ = ac.sessionManager.DestroySession(c.Request)
	if ac.creds != nil {
		ac.creds.Clear()
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
