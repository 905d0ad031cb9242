package history

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/urlsweep/internal/model"
	"github.com/nao1215/urlsweep/internal/report"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// testPayload builds a stored run for the given directory.
func testPayload(directory string, broken int) *report.Payload {
	p := &report.Payload{
		Directory:    directory,
		DateChecked:  time.Now(),
		FilesScanned: 4,
		UniqueURLs:   10,
		OK:           broken == 0,
	}
	for i := 0; i < broken; i++ {
		p.Broken = append(p.Broken, model.BrokenLink{
			URL:     "https://dead.test/" + string(rune('a'+i)),
			Detail:  "HTTP 404: Not Found",
			Sources: []string{filepath.Join(directory, "a.md")},
		})
	}
	return p
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, "urlsweep.db")); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "nonexistent-db")

		_, err := Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err == nil {
			t.Fatal("expected error when CreateIfNotExists=false and database does not exist")
		}
		if !strings.Contains(err.Error(), "database not found") {
			t.Errorf("expected informative error, got %q", err.Error())
		}
		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("database directory should not have been created when CreateIfNotExists=false")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "existing-db")

		db1, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		if err := db1.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}

		db2, err := Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to open existing database: %v", err)
		}
		defer db2.Close()
	})
}

// TestSaveAndListRuns tests run storage and metadata listing.
func TestSaveAndListRuns(t *testing.T) {
	t.Parallel()

	t.Run("saved run appears in listing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		if err := db.SaveRun(ctx, testPayload("/docs", 2)); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}

		runs, err := db.ListRuns(ctx, "/docs")
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(runs))
		}

		got := runs[0]
		if got.Directory != "/docs" {
			t.Errorf("expected directory /docs, got %q", got.Directory)
		}
		if got.FilesScanned != 4 || got.UniqueURLs != 10 {
			t.Errorf("unexpected totals: %+v", got)
		}
		if got.BrokenCount != 2 {
			t.Errorf("expected broken count 2, got %d", got.BrokenCount)
		}
	})

	t.Run("listing filters by directory", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		if err := db.SaveRun(ctx, testPayload("/docs", 0)); err != nil {
			t.Fatal(err)
		}
		if err := db.SaveRun(ctx, testPayload("/other", 1)); err != nil {
			t.Fatal(err)
		}

		runs, err := db.ListRuns(ctx, "/docs")
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 1 || runs[0].Directory != "/docs" {
			t.Errorf("expected only /docs runs, got %+v", runs)
		}

		all, err := db.ListRuns(ctx, "")
		if err != nil {
			t.Fatalf("failed to list all runs: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("expected 2 runs in total, got %d", len(all))
		}
	})

	t.Run("empty database lists nothing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		runs, err := db.ListRuns(context.Background(), "/docs")
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("expected no runs, got %d", len(runs))
		}
	})
}

// TestLatestRuns tests full payload retrieval ordering.
func TestLatestRuns(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SaveRun(ctx, testPayload("/docs", 2)); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveRun(ctx, testPayload("/docs", 1)); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveRun(ctx, testPayload("/docs", 0)); err != nil {
		t.Fatal(err)
	}

	payloads, err := db.LatestRuns(ctx, "/docs", 2)
	if err != nil {
		t.Fatalf("failed to get latest runs: %v", err)
	}
	if len(payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(payloads))
	}

	// Most recent first: the clean run, then the one-broken run.
	if !payloads[0].OK {
		t.Errorf("expected latest run to be clean, got %+v", payloads[0])
	}
	if len(payloads[1].Broken) != 1 {
		t.Errorf("expected previous run to have 1 broken link, got %d", len(payloads[1].Broken))
	}
}
