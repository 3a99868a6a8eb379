package worker

import (
	"context"
	"fmt"
	"log/slog"

	"cuentas/internal/amqp"
	"cuentas/internal/sheets"
	"cuentas/internal/storage"
)

// SyncWorker mirrors SQLite-recorded ledger entries to the household
// sheet. The primary path is the AMQP queue; ProcessPendingEntries is the
// backup sweep for messages that got lost.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	sheet     sheets.LedgerAppender
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, sheet sheets.LedgerAppender, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		sheet:     sheet,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single entry sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.EntrySyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	stored, err := w.storage.GetEntry(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get entry from storage: %w", err)
	}

	if stored.SyncStatus == storage.SyncDone {
		slog.InfoContext(ctx, "Entry already synced, skipping", "id", msg.ID)
		return nil
	}

	return w.syncEntry(ctx, stored)
}

func (w *SyncWorker) syncEntry(ctx context.Context, stored storage.StoredEntry) error {
	if err := w.sheet.Append(ctx, stored.Entry); err != nil {
		if markErr := w.storage.MarkSyncError(ctx, stored.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", stored.ID, "error", markErr)
		}
		return fmt.Errorf("append entry to sheet: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, stored.ID); err != nil {
		return fmt.Errorf("mark entry synced: %w", err)
	}

	slog.InfoContext(ctx, "Entry mirrored to sheet",
		"id", stored.ID,
		"payer", stored.Entry.Payer,
		"amount_cents", stored.Entry.Amount.Cents)
	return nil
}

// ProcessPendingEntries syncs any entries that have not been mirrored yet.
func (w *SyncWorker) ProcessPendingEntries(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncEntries(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending entries: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending entries", "count", len(pending))

	for _, stored := range pending {
		if err := w.syncEntry(ctx, stored); err != nil {
			slog.ErrorContext(ctx, "Failed to sync pending entry",
				"id", stored.ID, "error", err)
			// Keep going; the next sweep retries.
		}
	}
	return nil
}

// StartupSyncCheck runs one pending sweep at boot so a restart drains
// whatever accumulated while the worker was down.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	slog.InfoContext(ctx, "Running startup sync check")
	return w.ProcessPendingEntries(ctx)
}
