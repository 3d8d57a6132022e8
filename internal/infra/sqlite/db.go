package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// TimeFormat is how timestamps are written so they compare correctly with
// SQLite's datetime() results.
const TimeFormat = "2006-01-02 15:04:05"

// Open opens the database at path (":memory:" works) and applies every
// pending migration.
func Open(path string, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows one writer; a single connection also keeps :memory: databases alive.
	db.SetMaxOpenConns(1)

	if err := Migrate(db, logger); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate brings the schema up to date. Each call builds its own goose
// provider, so databases can be migrated concurrently.
func Migrate(db *sql.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys,
		goose.WithLogger(gooseLogger{logger.Sugar()}),
	)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(context.Background())
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	for _, r := range results {
		logger.Debug("applied migration", zap.String("result", r.String()))
	}

	logger.Info("database initialized successfully")
	return nil
}

// gooseLogger routes goose output through zap. Fatal messages are logged as
// errors; the error returned from Migrate decides what happens next.
type gooseLogger struct {
	l *zap.SugaredLogger
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) { g.l.Errorf(format, v...) }
func (g gooseLogger) Printf(format string, v ...interface{}) { g.l.Debugf(format, v...) }
