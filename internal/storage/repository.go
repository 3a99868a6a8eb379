// Package storage persists the ledger in SQLite. Insertion order is the
// row id; the engine's "position decides everything" invariant maps onto
// ORDER BY id.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cuentas/internal/core"

	_ "modernc.org/sqlite"
)

const (
	SyncPending = "pending"
	SyncDone    = "synced"
	SyncError   = "error"
)

// StoredEntry is a ledger entry together with its storage metadata.
type StoredEntry struct {
	ID         int64
	Version    int64
	Entry      core.Entry
	SyncStatus string
	CreatedAt  time.Time
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AppendEntries inserts entries in order within one transaction and
// returns their new ids.
func (r *SQLiteRepository) AppendEntries(ctx context.Context, entries []core.Entry) ([]int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const q = `INSERT INTO entries (entry_date, payer, description, amount_cents, kind)
	           VALUES (?, ?, ?, ?, ?)`
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		res, err := tx.ExecContext(ctx, q,
			e.Date.String(), e.Payer, e.Description, e.Amount.Cents, string(e.Kind))
		if err != nil {
			return nil, fmt.Errorf("insert entry: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("last insert id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Entries saved to SQLite", "count", len(ids))
	return ids, nil
}

// ReadAll returns the full history in insertion order.
func (r *SQLiteRepository) ReadAll(ctx context.Context) ([]core.Entry, error) {
	const q = `SELECT entry_date, payer, description, amount_cents, kind
	           FROM entries ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []core.Entry
	for rows.Next() {
		var (
			date, payer, desc, kind string
			cents                   int64
		)
		if err := rows.Scan(&date, &payer, &desc, &cents, &kind); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, core.Entry{
			Date:        core.ParseDate(date),
			Payer:       payer,
			Description: desc,
			Amount:      core.Money{Cents: cents},
			Kind:        core.EntryKind(kind),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

// GetEntry retrieves a single stored entry by id.
func (r *SQLiteRepository) GetEntry(ctx context.Context, id int64) (StoredEntry, error) {
	const q = `SELECT id, version, entry_date, payer, description, amount_cents, kind, sync_status, created_at
	           FROM entries WHERE id = ?`
	var (
		se                      StoredEntry
		date, payer, desc, kind string
		cents                   int64
		created                 sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&se.ID, &se.Version, &date, &payer, &desc, &cents, &kind, &se.SyncStatus, &created)
	if err != nil {
		return StoredEntry{}, fmt.Errorf("get entry %d: %w", id, err)
	}
	se.CreatedAt = created.Time
	se.Entry = core.Entry{
		Date:        core.ParseDate(date),
		Payer:       payer,
		Description: desc,
		Amount:      core.Money{Cents: cents},
		Kind:        core.EntryKind(kind),
	}
	return se, nil
}

// GetPendingSyncEntries returns entries not yet mirrored to the sheet,
// oldest first. Backup path for lost queue messages.
func (r *SQLiteRepository) GetPendingSyncEntries(ctx context.Context, limit int) ([]StoredEntry, error) {
	const q = `SELECT id, version, entry_date, payer, description, amount_cents, kind, sync_status, created_at
	           FROM entries WHERE sync_status = ? ORDER BY id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending entries: %w", err)
	}
	defer rows.Close()

	var out []StoredEntry
	for rows.Next() {
		var (
			se                      StoredEntry
			date, payer, desc, kind string
			cents                   int64
			created                 sql.NullTime
		)
		if err := rows.Scan(&se.ID, &se.Version, &date, &payer, &desc, &cents, &kind, &se.SyncStatus, &created); err != nil {
			return nil, fmt.Errorf("scan pending entry: %w", err)
		}
		se.CreatedAt = created.Time
		se.Entry = core.Entry{
			Date:        core.ParseDate(date),
			Payer:       payer,
			Description: desc,
			Amount:      core.Money{Cents: cents},
			Kind:        core.EntryKind(kind),
		}
		out = append(out, se)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending entries: %w", err)
	}
	return out, nil
}

// MarkSynced marks an entry as successfully mirrored to the sheet.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	return r.setSyncStatus(ctx, id, SyncDone)
}

// MarkSyncError marks an entry whose mirror attempt failed.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	return r.setSyncStatus(ctx, id, SyncError)
}

func (r *SQLiteRepository) setSyncStatus(ctx context.Context, id int64, status string) error {
	const q = `UPDATE entries SET sync_status = ?, version = version + 1 WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, status, id); err != nil {
		return fmt.Errorf("set sync status %s on %d: %w", status, id, err)
	}
	return nil
}
