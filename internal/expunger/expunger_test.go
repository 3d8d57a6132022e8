package expunger

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/infra/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sqlite.Open(":memory:", nil)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return db
}

func insert(t *testing.T, db *sql.DB, id, modifier string) {
	t.Helper()
	query := fmt.Sprintf(`INSERT INTO history (id, mode, chapter, ayah, output, created_at)
		VALUES ('%s', 'explicit', 1, '1', 'output', datetime('now', %s))`, id, modifier)
	if _, err := db.Exec(query); err != nil {
		t.Fatalf("failed to insert record %s: %v", id, err)
	}
}

func TestExpunge_TimeLimit(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	insert(t, db, "old", "'-30 days'")
	insert(t, db, "new", "'-1 days'")

	removed, err := Expunge(context.Background(), db, DefaultPolicy, time.Now())
	if err != nil {
		t.Fatalf("Expunge failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed record, got %d", removed)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM history WHERE id = 'old'").Scan(&count); err != nil {
		t.Fatalf("failed to query count: %v", err)
	}
	if count != 0 {
		t.Errorf("old record should have been deleted")
	}

	if err := db.QueryRow("SELECT COUNT(*) FROM history WHERE id = 'new'").Scan(&count); err != nil {
		t.Fatalf("failed to query count: %v", err)
	}
	if count != 1 {
		t.Errorf("new record should have been preserved")
	}
}

func TestExpunge_CountLimit(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// 10 oldest records, then 500 newer ones.
	for i := 0; i < 10; i++ {
		insert(t, db, fmt.Sprintf("old_%d", i), fmt.Sprintf("'-10 days', '+%d seconds'", i))
	}
	for i := 0; i < 500; i++ {
		insert(t, db, fmt.Sprintf("new_%d", i), fmt.Sprintf("'-1 days', '+%d seconds'", i))
	}

	if _, err := Expunge(context.Background(), db, DefaultPolicy, time.Now()); err != nil {
		t.Fatalf("Expunge failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count); err != nil {
		t.Fatalf("failed to query total count: %v", err)
	}
	if count != 500 {
		t.Errorf("expected 500 records, got %d", count)
	}

	if err := db.QueryRow("SELECT COUNT(*) FROM history WHERE id LIKE 'old_%'").Scan(&count); err != nil {
		t.Fatalf("failed to query old records count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected all 10 old records to be deleted, found %d", count)
	}
}

func TestStart_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	db := setupTestDB(t)
	defer db.Close()

	insert(t, db, "old", "'-30 days'")

	ctx, cancel := context.WithCancel(context.Background())
	done := Start(ctx, db, Policy{MaxAge: DefaultPolicy.MaxAge, MaxEntries: 500, Every: time.Hour}, zap.NewNop())

	deadline := time.Now().Add(5 * time.Second)
	for {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count); err != nil {
			t.Fatalf("failed to query count: %v", err)
		}
		if count == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("initial expunge did not run, %d records left", count)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("expunger did not stop after cancel")
	}
}
