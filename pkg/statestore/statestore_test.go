package statestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/jsonscope/pkg/collapse"
)

func TestNewRecord(t *testing.T) {
	state := collapse.DefaultState().Collapse(".items").Collapse(".meta")
	rec := NewRecord("my view", state)

	if rec.ID == "" {
		t.Fatal("record has no ID")
	}
	if rec.Name != "my view" {
		t.Errorf("Name = %q, want %q", rec.Name, "my view")
	}
	if !rec.State().Equal(state) {
		t.Errorf("State() = %v, want %v", rec.State().Paths(), state.Paths())
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestRecordSetState(t *testing.T) {
	rec := NewRecord("", collapse.DefaultState())
	before := rec.UpdatedAt

	next := collapse.DefaultState().Collapse("[0]")
	rec.SetState(next)

	if !rec.State().Equal(next) {
		t.Errorf("State() = %v, want %v", rec.State().Paths(), next.Paths())
	}
	if rec.UpdatedAt.Before(before) {
		t.Error("UpdatedAt not bumped")
	}
}

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	// Missing records come back nil, nil.
	rec, err := store.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if rec != nil {
		t.Fatalf("Get missing = %+v, want nil", rec)
	}

	// Set then Get round-trips.
	saved := NewRecord("test", collapse.DefaultState().Collapse(".a").Collapse(".b"))
	if err := store.Set(ctx, saved); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for saved record")
	}
	if got.ID != saved.ID || got.Name != saved.Name {
		t.Errorf("Get = %+v, want %+v", got, saved)
	}
	if !got.State().Equal(saved.State()) {
		t.Errorf("state = %v, want %v", got.Paths, saved.Paths)
	}

	// Overwrite updates in place.
	saved.SetState(collapse.DefaultState().Collapse(".c"))
	if err := store.Set(ctx, saved); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, err = store.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if want := []string{".c"}; len(got.Paths) != 1 || got.Paths[0] != want[0] {
		t.Errorf("paths after overwrite = %v, want %v", got.Paths, want)
	}

	// List includes the record.
	other := NewRecord("other", collapse.DefaultState())
	if err := store.Set(ctx, other); err != nil {
		t.Fatalf("Set other: %v", err)
	}
	recs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("List returned %d records, want 2", len(recs))
	}

	// Delete is idempotent.
	if err := store.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete again: %v", err)
	}
	rec, err = store.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get deleted: %v", err)
	}
	if rec != nil {
		t.Errorf("Get deleted = %+v, want nil", rec)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	testStore(t, store)
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	testStore(t, store)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	rec := NewRecord("", collapse.DefaultState().Collapse(".a"))
	if err := store.Set(ctx, rec); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's record must not leak into the store.
	rec.Paths[0] = ".mutated"
	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Paths[0] != ".a" {
		t.Errorf("stored record mutated: paths = %v", got.Paths)
	}
}

func TestFileStoreSkipsMalformed(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.Set(ctx, NewRecord("ok", collapse.DefaultState())); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	recs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("List returned %d records, want 1", len(recs))
	}
}
