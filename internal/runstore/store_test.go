package runstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenPath returned error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenPathRequiresPath(t *testing.T) {
	if _, err := OpenPath("   "); err == nil {
		t.Fatal("expected error for blank database path")
	}
}

func TestBeginAndFinishRun(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	run, err := store.Begin(ctx, "/media/show.mcc")
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected generated run id")
	}
	if run.Status != StatusRunning {
		t.Fatalf("Status = %q, want %q", run.Status, StatusRunning)
	}
	if run.InputFile != "/media/show.mcc" {
		t.Fatalf("InputFile = %q", run.InputFile)
	}
	if run.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	run.Status = StatusCompleted
	run.Formats = "608,708"
	run.TrackCount = 2
	run.EventCount = 41
	run.WarningCount = 1
	run.OutputDir = "/tmp/run-x"
	if err := store.Finish(ctx, run); err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}

	got, err := store.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got == nil {
		t.Fatal("expected run")
	}
	if got.Status != StatusCompleted {
		t.Fatalf("Status = %q, want %q", got.Status, StatusCompleted)
	}
	if got.Formats != "608,708" || got.TrackCount != 2 || got.EventCount != 41 || got.WarningCount != 1 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.OutputDir != "/tmp/run-x" {
		t.Fatalf("OutputDir = %q", got.OutputDir)
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Fatalf("UpdatedAt %v before CreatedAt %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	store := newStore(t)
	run, err := store.GetByID(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if run != nil {
		t.Fatalf("expected nil run, got %+v", run)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	first, err := store.Begin(ctx, "/media/a.mcc")
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	// Creation timestamps order the listing, so force distinct values.
	time.Sleep(2 * time.Millisecond)
	second, err := store.Begin(ctx, "/media/b.mcc")
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}

	runs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Fatalf("expected newest first, got %s then %s", runs[0].ID, runs[1].ID)
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != second.ID {
		t.Fatalf("expected only newest run, got %+v", limited)
	}
}

func TestRemoveAndClear(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	run, err := store.Begin(ctx, "/media/a.mcc")
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}

	removed, err := store.Remove(ctx, run.ID)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if !removed {
		t.Fatal("expected removal")
	}
	removed, err = store.Remove(ctx, run.ID)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if removed {
		t.Fatal("expected no-op removal")
	}

	if _, err := store.Begin(ctx, "/media/b.mcc"); err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	if _, err := store.Begin(ctx, "/media/c.mcc"); err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	cleared, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if cleared != 2 {
		t.Fatalf("expected 2 cleared, got %d", cleared)
	}
}

func TestStatsGroupsByStatus(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	running, err := store.Begin(ctx, "/media/a.mcc")
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	failed, err := store.Begin(ctx, "/media/b.mcc")
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	failed.Status = StatusFailed
	failed.ErrorMessage = "decoder exited with status 1"
	if err := store.Finish(ctx, failed); err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats[StatusRunning] != 1 || stats[StatusFailed] != 1 {
		t.Fatalf("unexpected stats %v", stats)
	}
	_ = running
}

func TestReopenExistingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := OpenPath(dbPath)
	if err != nil {
		t.Fatalf("OpenPath returned error: %v", err)
	}
	run, err := store.Begin(context.Background(), "/media/a.mcc")
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	store.Close()

	reopened, err := OpenPath(dbPath)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetByID(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got == nil {
		t.Fatal("expected run to survive reopen")
	}
}

func TestSchemaMismatchRejected(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := OpenPath(dbPath)
	if err != nil {
		t.Fatalf("OpenPath returned error: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	store.Close()

	if _, err := OpenPath(dbPath); err == nil {
		t.Fatal("expected schema mismatch error")
	}
}
