package storage

import (
	"context"
	"path/filepath"
	"testing"

	"cuentas/internal/core"
)

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "cuentas.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func entry(payer, desc string, cents int64) core.Entry {
	return core.Entry{
		Date:        core.NewDate(2026, 8, 1),
		Payer:       payer,
		Description: desc,
		Amount:      core.Money{Cents: cents},
		Kind:        core.KindExpense,
	}
}

func TestAppendAndReadAllKeepsOrder(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	ids, err := repo.AppendEntries(ctx, []core.Entry{
		entry("Patricio", "Supermercado", 100_00),
		entry("Sergio", "Farmacia", 50_00),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(ids) != 2 || ids[0] >= ids[1] {
		t.Fatalf("ids not ascending: %v", ids)
	}

	got, err := repo.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Payer != "Patricio" || got[1].Payer != "Sergio" {
		t.Fatalf("insertion order lost: %v, %v", got[0].Payer, got[1].Payer)
	}
	if got[0].Amount.Cents != 100_00 {
		t.Fatalf("amount = %d", got[0].Amount.Cents)
	}
	if got[0].Kind != core.KindExpense {
		t.Fatalf("kind = %s", got[0].Kind)
	}
}

func TestSyncStatusLifecycle(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	ids, err := repo.AppendEntries(ctx, []core.Entry{
		entry("Patricio", "Supermercado", 100_00),
		entry("Sergio", "Farmacia", 50_00),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	stored, err := repo.GetEntry(ctx, ids[0])
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if stored.SyncStatus != SyncPending {
		t.Fatalf("new entry status = %s, want %s", stored.SyncStatus, SyncPending)
	}

	pending, err := repo.GetPendingSyncEntries(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}

	if err := repo.MarkSynced(ctx, ids[0]); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	if err := repo.MarkSyncError(ctx, ids[1]); err != nil {
		t.Fatalf("mark error: %v", err)
	}

	pending, err = repo.GetPendingSyncEntries(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending after marks = %d, want 0", len(pending))
	}

	stored, err = repo.GetEntry(ctx, ids[0])
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if stored.SyncStatus != SyncDone {
		t.Fatalf("status = %s, want %s", stored.SyncStatus, SyncDone)
	}
	if stored.Version != 2 {
		t.Fatalf("version = %d, want 2 after one status change", stored.Version)
	}
}

func TestGetPendingSyncEntriesLimit(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	var batch []core.Entry
	for i := 0; i < 5; i++ {
		batch = append(batch, entry("Patricio", "Gasto", 10_00))
	}
	if _, err := repo.AppendEntries(ctx, batch); err != nil {
		t.Fatalf("append: %v", err)
	}

	pending, err := repo.GetPendingSyncEntries(ctx, 3)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("limit ignored, got %d", len(pending))
	}
}
