package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amady/vitrine/internal/config"
	vitrerr "github.com/amady/vitrine/internal/errors"
	"github.com/amady/vitrine/internal/id"
	"github.com/amady/vitrine/internal/model"
	"github.com/amady/vitrine/internal/version"
)

// FileStore implements DocumentStore using one JSON file per card.
type FileStore struct {
	paths *config.Paths
}

// NewFileStore creates a new file-backed document store.
func NewFileStore(paths *config.Paths) *FileStore {
	return &FileStore{paths: paths}
}

// FetchAll returns all cards in a collection.
// Malformed card files are logged and skipped.
func (s *FileStore) FetchAll(ctx context.Context, collection model.Collection) ([]*model.Card, error) {
	dir := s.paths.CollectionDir(collection.String())

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*model.Card{}, nil // Empty collection, not an error
		}
		return nil, vitrerr.Unavailable(collection.String(), err)
	}

	var cards []*model.Card
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		card, err := s.readCard(path)
		if err != nil {
			// Log warning but don't fail - allows partial reads
			fmt.Fprintf(os.Stderr, "Warning: skipping malformed card file %s: %v\n", entry.Name(), err)
			continue
		}
		cards = append(cards, card)
	}

	if cards == nil {
		cards = []*model.Card{} // Ensure non-nil
	}
	return cards, nil
}

// Create writes a new card document, assigning its ID.
func (s *FileStore) Create(ctx context.Context, collection model.Collection, card *model.Card) error {
	if err := model.ValidateFields(card.Fields); err != nil {
		return vitrerr.WriteFailed("create", collection.String(), "", err)
	}

	card.ID = id.Generate()
	card.Version = version.CurrentCardVersion

	dir := s.paths.CollectionDir(collection.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return vitrerr.WriteFailed("create", collection.String(), "", err)
	}

	if err := s.writeCard(s.paths.CardPath(collection.String(), card.ID), card); err != nil {
		return vitrerr.WriteFailed("create", collection.String(), "", err)
	}
	return nil
}

// Update merges fields into an existing card document.
func (s *FileStore) Update(ctx context.Context, collection model.Collection, cardID string, fields map[string]string, imageURL *string) error {
	if err := model.ValidateFields(fields); err != nil {
		return vitrerr.WriteFailed("update", collection.String(), cardID, err)
	}

	path := s.paths.CardPath(collection.String(), cardID)
	card, err := s.readCard(path)
	if err != nil {
		if os.IsNotExist(err) {
			return vitrerr.WriteFailed("update", collection.String(), cardID, vitrerr.CardNotFound(cardID))
		}
		return vitrerr.WriteFailed("update", collection.String(), cardID, err)
	}

	if card.Fields == nil {
		card.Fields = make(map[string]string)
	}
	for k, v := range fields {
		card.Fields[k] = v
	}
	if imageURL != nil {
		card.ImageURL = *imageURL
	}

	if err := s.writeCard(path, card); err != nil {
		return vitrerr.WriteFailed("update", collection.String(), cardID, err)
	}
	return nil
}

// Delete removes a card document.
func (s *FileStore) Delete(ctx context.Context, collection model.Collection, cardID string) error {
	path := s.paths.CardPath(collection.String(), cardID)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return vitrerr.WriteFailed("delete", collection.String(), cardID, vitrerr.CardNotFound(cardID))
		}
		return vitrerr.WriteFailed("delete", collection.String(), cardID, err)
	}
	return nil
}

func (s *FileStore) readCard(path string) (*model.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var card model.Card
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return &card, nil
}

func (s *FileStore) writeCard(path string, card *model.Card) error {
	data, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write card file: %w", err)
	}
	return nil
}
