package worker

import (
	"context"
	"path/filepath"
	"testing"

	"cuentas/internal/amqp"
	"cuentas/internal/core"
	"cuentas/internal/sheets/memory"
	"cuentas/internal/storage"
)

func testSetup(t *testing.T) (*SyncWorker, *storage.SQLiteRepository, *memory.Store) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "cuentas.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	store := memory.New()
	return NewSyncWorker(repo, store, 10), repo, store
}

func expense(payer string, cents int64) core.Entry {
	return core.Entry{
		Date:        core.NewDate(2026, 8, 1),
		Payer:       payer,
		Description: "Supermercado",
		Amount:      core.Money{Cents: cents},
		Kind:        core.KindExpense,
	}
}

func TestHandleSyncMessageMirrorsEntry(t *testing.T) {
	w, repo, store := testSetup(t)
	ctx := context.Background()

	ids, err := repo.AppendEntries(ctx, []core.Entry{expense("Patricio", 100_00)})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	msg := amqp.NewEntrySyncMessage(ids[0], 1)
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if store.Len() != 1 {
		t.Fatalf("sheet holds %d entries, want 1", store.Len())
	}
	stored, err := repo.GetEntry(ctx, ids[0])
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if stored.SyncStatus != storage.SyncDone {
		t.Fatalf("status = %s, want %s", stored.SyncStatus, storage.SyncDone)
	}
}

func TestHandleSyncMessageSkipsAlreadySynced(t *testing.T) {
	w, repo, store := testSetup(t)
	ctx := context.Background()

	ids, err := repo.AppendEntries(ctx, []core.Entry{expense("Patricio", 100_00)})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.MarkSynced(ctx, ids[0]); err != nil {
		t.Fatalf("mark synced: %v", err)
	}

	msg := amqp.NewEntrySyncMessage(ids[0], 1)
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("already-synced entry mirrored again, sheet holds %d", store.Len())
	}
}

func TestProcessPendingEntriesDrainsBacklog(t *testing.T) {
	w, repo, store := testSetup(t)
	ctx := context.Background()

	_, err := repo.AppendEntries(ctx, []core.Entry{
		expense("Patricio", 100_00),
		expense("Sergio", 50_00),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := w.ProcessPendingEntries(ctx); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("sheet holds %d entries, want 2", store.Len())
	}

	pending, err := repo.GetPendingSyncEntries(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("backlog not drained, %d pending", len(pending))
	}
}
