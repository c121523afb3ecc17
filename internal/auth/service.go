package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mybooks/server/internal/config"
	"github.com/mybooks/server/internal/entities"
)

var validate = validator.New()

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrEmailInvalid     = errors.New("invalid email format")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// TokenClient verifies and creates accounts at the identity provider.
type TokenClient interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	SignUp(ctx context.Context, email, password string) (string, error)
}

// DocumentSeeder creates the initial profile document for a new account.
type DocumentSeeder interface {
	CreateUser(ctx context.Context, uid string, doc entities.UserDocument) error
}

// Service handles sign-in and account creation.
type Service struct {
	tokens TokenClient
	docs   DocumentSeeder
	config config.Auth

	now func() time.Time
}

// NewService creates a new authentication service.
func NewService(tokens TokenClient, docs DocumentSeeder, cfg config.Auth) *Service {
	return &Service{
		tokens: tokens,
		docs:   docs,
		config: cfg,
		now:    time.Now,
	}
}

// Login verifies an email/password pair and returns the Firebase uid.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmailRequired
	}
	if password == "" {
		return "", ErrPasswordRequired
	}

	return s.tokens.SignIn(ctx, email, password)
}

// Signup creates a new account and seeds its profile document. The seeded
// name is the email local part; the profile screen is where users pick a
// proper one.
func (s *Service) Signup(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if len(username) < 3 {
		return "", ErrUsernameTooShort
	}
	if len(password) < 6 {
		return "", ErrPasswordTooShort
	}
	if email == "" {
		return "", ErrEmailRequired
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", ErrEmailInvalid
	}

	uid, err := s.tokens.SignUp(ctx, email, password)
	if err != nil {
		return "", err
	}

	doc := entities.UserDocument{
		Name:      strings.SplitN(email, "@", 2)[0],
		Email:     email,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.docs.CreateUser(ctx, uid, doc); err != nil {
		return "", fmt.Errorf("seed profile document: %w", err)
	}

	return uid, nil
}
