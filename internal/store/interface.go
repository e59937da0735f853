package store

import (
	"context"
	"io"

	"github.com/amady/vitrine/internal/model"
)

// DocumentStore handles card persistence for the five content collections.
//
// FetchAll failures wrap errors.ErrUnavailable; create/update/delete
// failures wrap errors.ErrWriteFailed, including writes against a missing
// document.
type DocumentStore interface {
	// FetchAll retrieves every document in the named collection.
	FetchAll(ctx context.Context, collection model.Collection) ([]*model.Card, error)

	// Create persists a new document. The store assigns the card's ID;
	// any caller-provided ID is ignored.
	Create(ctx context.Context, collection model.Collection, card *model.Card) error

	// Update merges fields into an existing document. imageURL is applied
	// only when non-nil; a nil imageURL never clears a prior value.
	Update(ctx context.Context, collection model.Collection, id string, fields map[string]string, imageURL *string) error

	// Delete removes the document.
	Delete(ctx context.Context, collection model.Collection, id string) error
}

// BlobStore handles image binaries.
type BlobStore interface {
	// Upload stores the binary under a path namespaced by collection and a
	// uniqueness token, and returns a durable fetch URL. associatedID is
	// folded into the path when replacing an existing card's image.
	// Failures wrap errors.ErrUploadFailed.
	Upload(ctx context.Context, collection model.Collection, name string, r io.Reader, associatedID string) (string, error)
}

// SiteStore handles site-level config persistence.
type SiteStore interface {
	Load() (*model.SiteConfig, error)
	Save(cfg *model.SiteConfig) error
	Exists() bool
}

// GlobalStore handles global config persistence.
type GlobalStore interface {
	Load() (*model.GlobalConfig, error)
	Save(cfg *model.GlobalConfig) error
	EnsureExists() error
}
