package adapters

import (
	"context"

	"cuentas/internal/core"
	"cuentas/internal/services"
	"cuentas/internal/storage"
)

// SQLiteAdapter adapts SQLiteRepository and LedgerService to the ledger
// storage ports so the HTTP handlers work unchanged against the
// SQLite + AMQP backend.
type SQLiteAdapter struct {
	storage *storage.SQLiteRepository
	service *services.LedgerService
}

func NewSQLiteAdapter(storage *storage.SQLiteRepository, service *services.LedgerService) *SQLiteAdapter {
	return &SQLiteAdapter{
		storage: storage,
		service: service,
	}
}

// ReadAll implements sheets.LedgerReader.
func (a *SQLiteAdapter) ReadAll(ctx context.Context) ([]core.Entry, error) {
	return a.storage.ReadAll(ctx)
}

// Append implements sheets.LedgerAppender.
func (a *SQLiteAdapter) Append(ctx context.Context, entries ...core.Entry) error {
	_, err := a.service.AppendEntries(ctx, entries...)
	return err
}
