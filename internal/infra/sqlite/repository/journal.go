package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"derrclan.com/ayah-printer/internal/domain/entities"
)

// JournalRepository keeps one reflection per calendar date.
type JournalRepository struct {
	db *sql.DB
}

func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Get retrieves the entry for date. An unknown date yields an empty entry.
func (r *JournalRepository) Get(ctx context.Context, date string) (*entities.JournalEntry, error) {
	entry := entities.JournalEntry{Date: date}

	query := `SELECT chapter, ayah, reflection, updated_at FROM journal WHERE date = ?`
	err := r.db.QueryRowContext(ctx, query, date).Scan(
		&entry.Chapter,
		&entry.Ayah,
		&entry.Reflection,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &entry, nil
		}
		return nil, fmt.Errorf("get journal entry: %w", err)
	}

	return &entry, nil
}

// Save inserts or replaces the entry for entry.Date.
func (r *JournalRepository) Save(ctx context.Context, entry *entities.JournalEntry) error {
	query := `
		INSERT INTO journal (date, chapter, ayah, reflection)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			chapter = excluded.chapter,
			ayah = excluded.ayah,
			reflection = excluded.reflection,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query, entry.Date, entry.Chapter, entry.Ayah, entry.Reflection)
	if err != nil {
		return fmt.Errorf("save journal entry: %w", err)
	}
	return nil
}
