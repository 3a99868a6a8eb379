package services

import (
	"context"
	"fmt"
	"log/slog"

	"cuentas/internal/amqp"
	"cuentas/internal/core"
	"cuentas/internal/storage"
)

// LedgerService orchestrates ledger writes across SQLite and AMQP: save
// locally first, then publish a sync message per row so the worker mirrors
// it to the household sheet. A broker outage never fails the write.
type LedgerService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewLedgerService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// AppendEntries saves entries locally and publishes one sync message per
// saved row.
func (s *LedgerService) AppendEntries(ctx context.Context, entries ...core.Entry) ([]int64, error) {
	ids, err := s.storage.AppendEntries(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("save entries: %w", err)
	}

	for _, id := range ids {
		if err := s.publishSyncMessage(ctx, id, 1); err != nil {
			slog.ErrorContext(ctx, "Failed to publish sync message",
				"id", id, "error", err)
			// Entry is saved locally; the periodic pending sweep picks it up.
		}
	}

	return ids, nil
}

func (s *LedgerService) publishSyncMessage(ctx context.Context, id, version int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishEntrySync(ctx, id, version)
}

// Close closes both storage and AMQP connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
