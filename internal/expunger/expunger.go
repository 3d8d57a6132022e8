package expunger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/infra/sqlite"
)

// Policy bounds how much printing history is kept.
type Policy struct {
	MaxAge     time.Duration
	MaxEntries int
	Every      time.Duration
}

// DefaultPolicy keeps four weeks of history, at most 500 rows, checked daily.
var DefaultPolicy = Policy{
	MaxAge:     28 * 24 * time.Hour,
	MaxEntries: 500,
	Every:      24 * time.Hour,
}

// Start runs an initial expunge immediately in a background goroutine and then
// repeats it every policy.Every until ctx is cancelled. The returned channel is
// closed when the goroutine exits.
func Start(ctx context.Context, db *sql.DB, policy Policy, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		logger.Debug("starting initial history expunge")
		run(ctx, db, policy, logger)

		ticker := time.NewTicker(policy.Every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				logger.Debug("starting scheduled history expunge")
				run(ctx, db, policy, logger)
			}
		}
	}()
	return done
}

func run(ctx context.Context, db *sql.DB, policy Policy, logger *zap.Logger) {
	removed, err := Expunge(ctx, db, policy, time.Now())
	if err != nil {
		logger.Error("failed to expunge history", zap.Error(err))
		return
	}
	if removed > 0 {
		logger.Info("expunged history entries", zap.Int64("removed_count", removed))
	}
}

// Expunge removes old and excess rows from the history table.
// It enforces two rules:
// 1. Remove entries older than policy.MaxAge.
// 2. Keep at most policy.MaxEntries entries (removing oldest first).
func Expunge(ctx context.Context, db *sql.DB, policy Policy, now time.Time) (int64, error) {
	var removed int64

	// created_at is stored as UTC text, so the cutoff must be formatted the same way.
	cutoff := now.UTC().Add(-policy.MaxAge).Format(sqlite.TimeFormat)
	res, err := db.ExecContext(ctx, "DELETE FROM history WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired history: %w", err)
	}
	n, _ := res.RowsAffected()
	removed += n

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history").Scan(&count); err != nil {
		return removed, fmt.Errorf("count history: %w", err)
	}

	if count > policy.MaxEntries {
		limit := count - policy.MaxEntries
		query := `
			DELETE FROM history
			WHERE id IN (
				SELECT id
				FROM history
				ORDER BY created_at ASC
				LIMIT ?
			)
		`
		res, err := db.ExecContext(ctx, query, limit)
		if err != nil {
			return removed, fmt.Errorf("delete excess history: %w", err)
		}
		n, _ := res.RowsAffected()
		removed += n
	}

	return removed, nil
}
