package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	vitrerr "github.com/amady/vitrine/internal/errors"
	"github.com/amady/vitrine/internal/id"
	"github.com/amady/vitrine/internal/model"
	"github.com/amady/vitrine/internal/version"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements DocumentStore on a single SQLite database. Cards
// are kept as JSON documents in one table, keyed by collection and id, so
// the document model stays identical to the file backend.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLiteStore opens (and bootstraps) a SQLite document store.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS cards (
		collection TEXT NOT NULL,
		id         TEXT NOT NULL,
		data       TEXT NOT NULL,
		PRIMARY KEY (collection, id)
	)`); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create cards table: %w", err)
	}

	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// FetchAll returns all cards in a collection in insertion order.
func (s *SQLiteStore) FetchAll(ctx context.Context, collection model.Collection) ([]*model.Card, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT data FROM cards WHERE collection = ? ORDER BY rowid`,
		collection.String(),
	)
	if err != nil {
		return nil, vitrerr.Unavailable(collection.String(), err)
	}
	defer rows.Close()

	cards := []*model.Card{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, vitrerr.Unavailable(collection.String(), err)
		}

		var card model.Card
		if err := json.Unmarshal([]byte(data), &card); err != nil {
			return nil, vitrerr.Unavailable(collection.String(), fmt.Errorf("invalid card document: %w", err))
		}
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, vitrerr.Unavailable(collection.String(), err)
	}

	return cards, nil
}

// Create inserts a new card document, assigning its ID.
func (s *SQLiteStore) Create(ctx context.Context, collection model.Collection, card *model.Card) error {
	if err := model.ValidateFields(card.Fields); err != nil {
		return vitrerr.WriteFailed("create", collection.String(), "", err)
	}

	card.ID = id.Generate()
	card.Version = version.CurrentCardVersion

	data, err := json.Marshal(card)
	if err != nil {
		return vitrerr.WriteFailed("create", collection.String(), "", err)
	}

	if _, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO cards (collection, id, data) VALUES (?, ?, ?)`,
		collection.String(), card.ID, string(data),
	); err != nil {
		return vitrerr.WriteFailed("create", collection.String(), "", err)
	}
	return nil
}

// Update merges fields into an existing card document.
func (s *SQLiteStore) Update(ctx context.Context, collection model.Collection, cardID string, fields map[string]string, imageURL *string) error {
	if err := model.ValidateFields(fields); err != nil {
		return vitrerr.WriteFailed("update", collection.String(), cardID, err)
	}

	card, err := s.get(ctx, collection, cardID)
	if err != nil {
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

	data, err := json.Marshal(card)
	if err != nil {
		return vitrerr.WriteFailed("update", collection.String(), cardID, err)
	}

	if _, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE cards SET data = ? WHERE collection = ? AND id = ?`,
		string(data), collection.String(), cardID,
	); err != nil {
		return vitrerr.WriteFailed("update", collection.String(), cardID, err)
	}
	return nil
}

// Delete removes a card document.
func (s *SQLiteStore) Delete(ctx context.Context, collection model.Collection, cardID string) error {
	res, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM cards WHERE collection = ? AND id = ?`,
		collection.String(), cardID,
	)
	if err != nil {
		return vitrerr.WriteFailed("delete", collection.String(), cardID, err)
	}

	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return vitrerr.WriteFailed("delete", collection.String(), cardID, vitrerr.CardNotFound(cardID))
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, collection model.Collection, cardID string) (*model.Card, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT data FROM cards WHERE collection = ? AND id = ?`,
		collection.String(), cardID,
	)

	var data string
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, vitrerr.CardNotFound(cardID)
		}
		return nil, err
	}

	var card model.Card
	if err := json.Unmarshal([]byte(data), &card); err != nil {
		return nil, fmt.Errorf("invalid card document: %w", err)
	}
	return &card, nil
}
