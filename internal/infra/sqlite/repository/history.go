package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"derrclan.com/ayah-printer/internal/domain/entities"
	"derrclan.com/ayah-printer/internal/infra/sqlite"
)

var ErrHistoryNotFound = errors.New("history entry not found")

// HistoryRepository stores every printed output.
type HistoryRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewHistoryRepository creates a new HistoryRepository backed by db.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db, now: time.Now}
}

// Record inserts entry with a fresh time-ordered id and returns the stored row.
func (r *HistoryRepository) Record(ctx context.Context, entry entities.HistoryEntry) (entities.HistoryEntry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return entities.HistoryEntry{}, fmt.Errorf("generate history id: %w", err)
	}
	entry.ID = id.String()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC().Truncate(time.Second)

	query := `
		INSERT INTO history (id, mode, chapter, ayah, output, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID,
		string(entry.Mode),
		entry.Chapter,
		entry.Ayah,
		entry.Output,
		entry.CreatedAt.Format(sqlite.TimeFormat),
	)
	if err != nil {
		return entities.HistoryEntry{}, fmt.Errorf("record history: %w", err)
	}

	return entry, nil
}

// Recent returns at most limit entries, newest first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]entities.HistoryEntry, error) {
	if limit <= 0 {
		return []entities.HistoryEntry{}, nil
	}

	query := `
		SELECT id, mode, chapter, ayah, output, created_at
		FROM history
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent history: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.HistoryEntry, 0, limit)
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return entries, nil
}

// Get returns the entry with the given id or ErrHistoryNotFound.
func (r *HistoryRepository) Get(ctx context.Context, id string) (*entities.HistoryEntry, error) {
	query := `
		SELECT id, mode, chapter, ayah, output, created_at
		FROM history
		WHERE id = ?
	`

	entry, err := scanHistory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}

	return &entry, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHistory(s scanner) (entities.HistoryEntry, error) {
	var (
		entry entities.HistoryEntry
		mode  string
	)
	err := s.Scan(
		&entry.ID,
		&mode,
		&entry.Chapter,
		&entry.Ayah,
		&entry.Output,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entry, err
		}
		return entry, fmt.Errorf("scan history: %w", err)
	}
	entry.Mode = entities.Mode(mode)

	return entry, nil
}
