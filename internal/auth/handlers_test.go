package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mybooks/server/internal/config"
	"github.com/mybooks/server/internal/credentials"
	"github.com/mybooks/server/internal/firebase"
)

type memoryStorage struct {
	values map[string]string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{values: make(map[string]string)}
}

func (m *memoryStorage) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStorage) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memoryStorage) Remove(key string) error {
	delete(m.values, key)
	return nil
}

type controllerFixture struct {
	router  *gin.Engine
	tokens  *fakeTokenClient
	storage *memoryStorage
}

func newControllerFixture(t *testing.T, cfg config.Auth) *controllerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}

	if cfg.SessionLifetime == 0 {
		cfg.SessionLifetime = time.Hour
	}
	sm, err := NewSessionManager(sqlDB, cfg)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	tokens := &fakeTokenClient{uid: "uid-1"}
	svc := NewService(tokens, &fakeSeeder{}, cfg)
	storage := newMemoryStorage()
	creds := credentials.NewCache(storage)

	controller := NewAuthController(svc, sm, creds, cfg)
	t.Cleanup(controller.Stop)

	router := gin.New()
	router.Use(sm.SessionLoadSave())
	controller.RegisterRoutes(router)

	return &controllerFixture{router: router, tokens: tokens, storage: storage}
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginCreatesSession(t *testing.T) {
	fx := newControllerFixture(t, config.Auth{})

	w := postJSON(fx.router, "/api/auth/login", loginRequest{
		Email:    "user@example.com",
		Password: "secret123",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["uid"] != "uid-1" {
		t.Errorf("uid = %q, want uid-1", resp["uid"])
	}

	cookieSet := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			cookieSet = true
		}
	}
	if !cookieSet {
		t.Error("session cookie not set on login")
	}
}

func TestLoginRejectsInvalidCredentials(t *testing.T) {
	fx := newControllerFixture(t, config.Auth{})
	fx.tokens.signInErr = firebase.ErrInvalidCredentials

	w := postJSON(fx.router, "/api/auth/login", loginRequest{
		Email:    "user@example.com",
		Password: "wrong",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	fx := newControllerFixture(t, config.Auth{
		MaxLoginAttempts: 2,
		RateLimitWindow:  time.Minute,
		LockoutDuration:  time.Minute,
	})
	fx.tokens.signInErr = firebase.ErrInvalidCredentials

	body := loginRequest{Email: "user@example.com", Password: "wrong"}
	postJSON(fx.router, "/api/auth/login", body)
	postJSON(fx.router, "/api/auth/login", body)

	w := postJSON(fx.router, "/api/auth/login", body)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestSignupValidationErrors(t *testing.T) {
	fx := newControllerFixture(t, config.Auth{})

	w := postJSON(fx.router, "/api/auth/signup", signupRequest{
		Username: "ab",
		Email:    "reader@example.com",
		Password: "secret123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSignupEmailConflict(t *testing.T) {
	fx := newControllerFixture(t, config.Auth{})
	fx.tokens.signUpErr = firebase.ErrEmailExists

	w := postJSON(fx.router, "/api/auth/signup", signupRequest{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "secret123",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestLogoutClearsCachedCredentials(t *testing.T) {
	fx := newControllerFixture(t, config.Auth{})
	fx.storage.values["user_creds"] = `{"username":"reader","email":"reader@example.com","password":"secret123"}`

	w := postJSON(fx.router, "/api/auth/logout", struct{}{})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if _, ok := fx.storage.values["user_creds"]; ok {
		t.Error("cached credentials not cleared on logout")
	}
}
