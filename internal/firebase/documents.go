package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mybooks/server/internal/entities"
	"github.com/mybooks/server/internal/profile"
)

const usersCollection = "users"

// UserDocuments is the Firestore-backed profile document store. It implements
// profile.DocumentStore.
type UserDocuments struct {
	client *firestore.Client
}

var _ profile.DocumentStore = (*UserDocuments)(nil)

// NewUserDocuments wraps an existing Firestore client.
func NewUserDocuments(client *firestore.Client) *UserDocuments {
	return &UserDocuments{client: client}
}

// GetUser fetches the users/{uid} document. A missing document maps to
// profile.ErrDocumentNotFound.
func (d *UserDocuments) GetUser(ctx context.Context, uid string) (*entities.UserDocument, error) {
	snap, err := d.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, profile.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch user document: %w", err)
	}

	var doc entities.UserDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode user document: %w", err)
	}
	return &doc, nil
}

// MergeUser writes only the given fields of users/{uid}, creating the
// document when missing and leaving fields absent from the payload untouched.
func (d *UserDocuments) MergeUser(ctx context.Context, uid string, fields map[string]any) error {
	_, err := d.client.Collection(usersCollection).Doc(uid).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("write user document: %w", err)
	}
	return nil
}

// CreateUser seeds the users/{uid} document at sign-up time with a full
// overwrite.
func (d *UserDocuments) CreateUser(ctx context.Context, uid string, doc entities.UserDocument) error {
	_, err := d.client.Collection(usersCollection).Doc(uid).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("create user document: %w", err)
	}
	return nil
}
