// Package imagestore holds image blobs in their own database, separate
// from the record store so the record collections stay cheap to load and
// serialize.
package imagestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/closetd/closetd/internal/domain"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no image exists for the requested id.
var ErrNotFound = errors.New("image not found")

type ImageRecord struct {
	ID        string
	Data      []byte
	Thumbnail []byte
	CreatedAt string
}

// Store is an explicitly constructed client over the image database.
// Every call runs in its own transaction.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the image database at path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open image database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping image database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS images (
			id         TEXT PRIMARY KEY,
			data       BLOB NOT NULL,
			thumbnail  BLOB NOT NULL,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("failed to create images table: %w (also failed to close db: %v)", err, cerr)
		}
		return nil, fmt.Errorf("failed to create images table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores or replaces the blobs for id.
func (s *Store) Save(ctx context.Context, id string, data, thumbnail []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO images (id, data, thumbnail, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, thumbnail = excluded.thumbnail
	`, id, data, thumbnail, domain.Now())
	if err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit image save: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*ImageRecord, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	record := &ImageRecord{}
	err = tx.QueryRowContext(ctx, `
		SELECT id, data, thumbnail, created_at FROM images WHERE id = ?
	`, id).Scan(&record.ID, &record.Data, &record.Thumbnail, &record.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return record, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit image delete: %w", err)
	}
	return nil
}

// All returns every stored image, used by export.
func (s *Store) All(ctx context.Context) ([]*ImageRecord, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT id, data, thumbnail, created_at FROM images ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*ImageRecord
	for rows.Next() {
		record := &ImageRecord{}
		if err := rows.Scan(&record.ID, &record.Data, &record.Thumbnail, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}
	return records, nil
}

// Clear removes every stored image, used by import.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM images`); err != nil {
		return fmt.Errorf("failed to clear images: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit image clear: %w", err)
	}
	return nil
}
