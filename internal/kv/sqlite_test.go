package kv

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/tally/internal/migration"
)

func TestSQLiteStore(t *testing.T) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "tally.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	exerciseStore(t, s)
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.db")
	ctx := context.Background()

	s := NewSQLiteStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	if err := s.Set(ctx, "tasks", `[{"id":3}]`); err != nil {
		t.Fatalf("Set() returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() returned error: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	t.Cleanup(func() { reopened.Close() })

	got, err := reopened.Get(ctx, "tasks")
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	if got != `[{"id":3}]` {
		t.Errorf("Get() = %q, want %q", got, `[{"id":3}]`)
	}
}

func TestSQLiteStoreInitIsIdempotent(t *testing.T) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "tally.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Init(); err != nil {
		t.Errorf("second Init() returned error: %v", err)
	}
}

func TestSQLiteStoreLoadRechecksSchemaAfterFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.db")
	s := NewSQLiteStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Simulate a database migrated by a newer release.
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("failed to bump schema version: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	newer := NewSQLiteStore(path)
	t.Cleanup(func() { newer.Close() })
	for i := range 2 {
		if err := newer.Load(); !errors.Is(err, migration.ErrSchemaTooNew) {
			t.Fatalf("Load() #%d = %v, want ErrSchemaTooNew", i+1, err)
		}
	}
	if _, err := newer.Get(context.Background(), "tasks"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Get() after failed Load = %v, want ErrNotLoaded", err)
	}
}
