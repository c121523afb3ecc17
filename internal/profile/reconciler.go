// Package profile resolves the authoritative user profile for display and
// persists edits with the remote document store as source of truth.
//
// Load prefers the remote users/{uid} document and falls back to the local
// credential cache when no session exists, the document is missing, or the
// remote read fails. Save writes remotely first (as a merge, never a field
// deletion) and mirrors into the credential cache only after remote success.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mybooks/server/internal/entities"
)

var validate = validator.New()

var (
	// ErrNotAuthenticated is returned by Save when no session identity exists.
	ErrNotAuthenticated = errors.New("not authenticated, please login again")

	// ErrDocumentNotFound is returned by DocumentStore implementations when
	// no document exists for the requested identity.
	ErrDocumentNotFound = errors.New("user document not found")
)

// ValidationError reports a locally rejected save; no writes occur.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SessionProvider exposes the current session identity, empty when no user is
// authenticated.
type SessionProvider interface {
	CurrentUID(ctx context.Context) string
}

// DocumentStore is the remote store holding the authoritative profile.
type DocumentStore interface {
	// GetUser returns the profile document for uid, or ErrDocumentNotFound.
	GetUser(ctx context.Context, uid string) (*entities.UserDocument, error)

	// MergeUser updates only the given fields of the uid document, leaving
	// fields absent from the payload untouched.
	MergeUser(ctx context.Context, uid string, fields map[string]any) error
}

// CredentialCache is the local fallback and post-save mirror.
type CredentialCache interface {
	Save(creds entities.CachedCredentials)
	Load() *entities.CachedCredentials
}

// FormState mirrors the profile form fields.
type FormState struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	ImageURL    *string `json:"image"`
	DateOfBirth *string `json:"dob"` // ISO-8601
	Gender      string  `json:"gender"`
}

// Source names where a Load populated the view state from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
	SourceNone   Source = "none"
)

// Reconciler coordinates the remote document, the credential cache and the
// in-memory form state. The mutex only guards memory: operations that
// interleave resolve last-write-wins, matching the single-user, single-device
// usage model.
type Reconciler struct {
	mu       sync.Mutex
	sessions SessionProvider
	docs     DocumentStore
	cache    CredentialCache
	now      func() time.Time

	form     FormState
	baseline *entities.UserDocument // nil until a confirmed remote read or write
}

// NewReconciler creates a reconciler over the given collaborators.
func NewReconciler(sessions SessionProvider, docs DocumentStore, cache CredentialCache) *Reconciler {
	return &Reconciler{
		sessions: sessions,
		docs:     docs,
		cache:    cache,
		now:      time.Now,
	}
}

// Load resolves the profile for display, executed once per screen activation.
// No retry happens within a single call. The returned Source names where the
// view state came from.
func (r *Reconciler) Load(ctx context.Context) Source {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Each activation starts over: the baseline is only re-established by a
	// successful remote read.
	r.form = FormState{}
	r.baseline = nil

	uid := r.sessions.CurrentUID(ctx)
	if uid == "" {
		// Never contacts the remote store on this path.
		return r.loadFromCacheLocked()
	}

	doc, err := r.docs.GetUser(ctx, uid)
	if err != nil {
		if !errors.Is(err, ErrDocumentNotFound) {
			log.Printf("Profile load error: %v", err)
		}
		// Bootstrap-from-cache only: the baseline stays unset, so the next
		// save is always offered.
		return r.loadFromCacheLocked()
	}

	r.applyDocumentLocked(doc)
	snapshot := *doc
	// The form never carries the remote image, so neither does the baseline.
	snapshot.ImageURL = nil
	r.baseline = &snapshot
	return SourceRemote
}

func (r *Reconciler) loadFromCacheLocked() Source {
	creds := r.cache.Load()
	if creds == nil {
		return SourceNone
	}

	gender := entities.GenderMale
	if creds.Gender != nil && *creds.Gender != "" {
		gender = *creds.Gender
	}
	r.form = FormState{
		Username:    creds.Username,
		Email:       creds.Email,
		Password:    creds.Password,
		ImageURL:    nil,
		DateOfBirth: creds.DateOfBirth,
		Gender:      gender,
	}
	return SourceCache
}

func (r *Reconciler) applyDocumentLocked(doc *entities.UserDocument) {
	gender := doc.Gender
	if gender == "" {
		gender = entities.GenderMale
	}
	r.form = FormState{
		Username:    doc.Name, // remote "name" maps to the form's username
		Email:       doc.Email,
		Password:    doc.Password,
		ImageURL:    nil,
		DateOfBirth: doc.DateOfBirth,
		Gender:      gender,
	}
}

// Form returns the current form state.
func (r *Reconciler) Form() FormState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form
}

// SetForm replaces the in-memory form state with edited values.
func (r *Reconciler) SetForm(form FormState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.form = form
}

// Changed reports whether any form field differs from the baseline snapshot.
// An absent baseline always reads as changed, so a first save is offered
// whenever no confirmed remote state exists. This gates the save affordance
// only; it is not a server-side guard.
func (r *Reconciler) Changed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.baseline == nil {
		return true
	}

	baseGender := r.baseline.Gender
	if baseGender == "" {
		baseGender = entities.GenderMale
	}

	return r.form.Username != r.baseline.Name ||
		r.form.Email != r.baseline.Email ||
		r.form.Password != r.baseline.Password ||
		r.form.Gender != baseGender ||
		!eqOptional(r.form.DateOfBirth, r.baseline.DateOfBirth) ||
		!eqOptional(r.form.ImageURL, r.baseline.ImageURL)
}

// Save validates the form, writes it to the remote store as a merge, and on
// success mirrors the written fields into the credential cache and resets the
// baseline to the just-written values. A remote failure leaves both the cache
// and the in-memory edits alone so the user may retry.
func (r *Reconciler) Save(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	form := r.form
	if strings.TrimSpace(form.Username) == "" ||
		strings.TrimSpace(form.Email) == "" ||
		strings.TrimSpace(form.Password) == "" {
		return &ValidationError{Message: "Username, email and password are required."}
	}
	if err := validate.Var(form.Email, "email"); err != nil {
		return &ValidationError{Message: "Enter a valid email address."}
	}

	uid := r.sessions.CurrentUID(ctx)
	if uid == "" {
		return ErrNotAuthenticated
	}

	updatedAt := r.now().UTC().Format(time.RFC3339)
	fields := map[string]any{
		"name":      form.Username,
		"email":     form.Email,
		"password":  form.Password,
		"imageUrl":  form.ImageURL,
		"dob":       form.DateOfBirth,
		"gender":    form.Gender,
		"updatedAt": updatedAt,
	}

	if err := r.docs.MergeUser(ctx, uid, fields); err != nil {
		log.Printf("Profile update error: %v", err)
		return fmt.Errorf("failed to update profile: %w", err)
	}

	r.cache.Save(entities.CachedCredentials{
		Username:    form.Username,
		Email:       form.Email,
		Password:    form.Password,
		ImageURL:    form.ImageURL,
		DateOfBirth: form.DateOfBirth,
		Gender:      &form.Gender,
	})

	r.baseline = &entities.UserDocument{
		Name:        form.Username,
		Email:       form.Email,
		Password:    form.Password,
		ImageURL:    form.ImageURL,
		DateOfBirth: form.DateOfBirth,
		Gender:      form.Gender,
		UpdatedAt:   updatedAt,
	}
	return nil
}

// BaselineSet reports whether a confirmed remote snapshot exists.
func (r *Reconciler) BaselineSet() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.baseline != nil
}

func eqOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
