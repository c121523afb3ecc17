// Package firebase wires the remote collaborators: password sign-in through
// the Identity Toolkit REST API and the users document collection in
// Firestore.
package firebase

import (
	"context"
	"fmt"
	"path/filepath"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/mybooks/server/internal/config"
)

// Service holds the initialized Firebase app and its Firestore client.
type Service struct {
	app       *firebase.App
	firestore *firestore.Client
}

// NewService initializes the Firebase Admin SDK from the configured service
// account key and opens a Firestore client.
func NewService(ctx context.Context, cfg config.Firebase) (*Service, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("firebase service account key path is required")
	}

	opt := option.WithCredentialsFile(filepath.Clean(cfg.CredentialsPath))

	var app *firebase.App
	var err error
	if cfg.ProjectID != "" {
		app, err = firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opt)
	} else {
		// Let the SDK infer the project from the credentials.
		app, err = firebase.NewApp(ctx, nil, opt)
	}
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}

	return &Service{
		app:       app,
		firestore: fs,
	}, nil
}

// UserDocuments returns the users collection bound to this service.
func (s *Service) UserDocuments() *UserDocuments {
	return &UserDocuments{client: s.firestore}
}

// Close releases the Firestore connection.
func (s *Service) Close() error {
	return s.firestore.Close()
}
