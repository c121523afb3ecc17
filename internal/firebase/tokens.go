package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrInvalidCredentials is returned when the email/password pair is
	// rejected by the identity provider.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailExists is returned at sign-up when the email is already
	// registered.
	ErrEmailExists = errors.New("email already registered")
)

// Tokens performs email/password sign-in and account creation through the
// Identity Toolkit REST API. The Admin SDK deliberately has no password
// sign-in verb, so this is the same endpoint the mobile client SDK talks to.
type Tokens struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewTokens creates a client for the given web API key.
func NewTokens(apiKey string) *Tokens {
	return &Tokens{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://identitytoolkit.googleapis.com/v1",
		apiKey:  apiKey,
	}
}

type tokenRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type tokenResponse struct {
	LocalID string `json:"localId"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn verifies an email/password pair and returns the session identity.
func (t *Tokens) SignIn(ctx context.Context, email, password string) (string, error) {
	return t.post(ctx, "accounts:signInWithPassword", email, password)
}

// SignUp creates a new account and returns the new session identity.
func (t *Tokens) SignUp(ctx context.Context, email, password string) (string, error) {
	return t.post(ctx, "accounts:signUp", email, password)
}

func (t *Tokens) post(ctx context.Context, endpoint, email, password string) (string, error) {
	payload, err := json.Marshal(tokenRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", t.baseURL, endpoint, t.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity request: %w", err)
	}
	defer resp.Body.Close()

	var result tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode identity response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error != nil {
			return "", mapIdentityError(result.Error.Message)
		}
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if result.LocalID == "" {
		return "", fmt.Errorf("identity response missing localId")
	}
	return result.LocalID, nil
}

// mapIdentityError converts Identity Toolkit error codes to sentinel errors.
// Lockout variants carry a suffix (e.g. "TOO_MANY_ATTEMPTS_TRY_LATER : ...").
func mapIdentityError(message string) error {
	code := strings.TrimSpace(strings.SplitN(message, ":", 2)[0])
	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
		return ErrInvalidCredentials
	case "EMAIL_EXISTS":
		return ErrEmailExists
	default:
		return fmt.Errorf("identity provider error: %s", message)
	}
}
