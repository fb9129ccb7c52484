package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/tally/internal/kv"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/state"
)

// openContext opens the storage at path the way main does for a second process.
func openContext(t *testing.T, dir string, provider kv.Provider) *Context {
	t.Helper()
	t.Cleanup(func() { provider.Close() })
	c := &Context{KV: provider, Store: state.New(provider), ConfigDir: dir, Out: &bytes.Buffer{}}
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	return c
}

func TestWithLockReloadsBeforeWriting(t *testing.T) {
	tests := []struct {
		name string
		open func(path string) kv.Provider
		file string
	}{
		{"sqlite", func(p string) kv.Provider { return kv.NewSQLiteStore(p) }, "tally.db"},
		{"json", func(p string) kv.Provider { return kv.NewFileStore(p) }, "tally.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			setup := tt.open(path)
			if err := setup.Init(); err != nil {
				t.Fatalf("Init() returned error: %v", err)
			}
			if err := setup.Close(); err != nil {
				t.Fatal(err)
			}

			// Both processes load before either writes.
			a := openContext(t, dir, tt.open(path))
			b := openContext(t, dir, tt.open(path))

			now := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)
			bg := context.Background()
			if err := a.WithLock(func() error {
				return a.Store.AddTask(bg, models.NewTask("From A", now))
			}); err != nil {
				t.Fatalf("A: %v", err)
			}
			if err := b.WithLock(func() error {
				return b.Store.AddTask(bg, models.NewTask("From B", now.Add(time.Millisecond)))
			}); err != nil {
				t.Fatalf("B: %v", err)
			}

			reader := openContext(t, dir, tt.open(path))
			tasks := reader.Store.Tasks()
			if len(tasks) != 2 {
				t.Fatalf("stored tasks = %+v, want both writes", tasks)
			}
			if tasks[0].Title != "From A" || tasks[1].Title != "From B" {
				t.Errorf("titles = %q, %q", tasks[0].Title, tasks[1].Title)
			}
		})
	}
}

func TestWithLockSkipsReloadBeforeFirstLoad(t *testing.T) {
	dir := t.TempDir()
	provider := kv.NewSQLiteStore(filepath.Join(dir, "tally.db"))
	t.Cleanup(func() { provider.Close() })
	c := &Context{KV: provider, Store: state.New(provider), ConfigDir: dir}

	// Storage does not exist yet, so a reload would fail.
	if err := c.WithLock(provider.Init); err != nil {
		t.Fatalf("WithLock() returned error: %v", err)
	}
	if !c.Store.Loading() {
		t.Error("store was loaded by WithLock")
	}
}
