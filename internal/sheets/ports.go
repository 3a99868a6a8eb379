package sheets

import (
	"context"

	"cuentas/internal/core"
)

// Ports for outbound ledger storage adapters.
type (
	// LedgerReader returns the full ordered history. Implementations must
	// read fresh on every call; the engine never works on cached history.
	LedgerReader interface {
		ReadAll(ctx context.Context) ([]core.Entry, error)
	}

	// LedgerAppender appends entries at the end of the history, preserving
	// their order. Semantically append-only even where the underlying
	// protocol overwrites the whole row range.
	LedgerAppender interface {
		Append(ctx context.Context, entries ...core.Entry) error
	}

	// Backend is the full storage surface the HTTP server needs.
	Backend interface {
		LedgerReader
		LedgerAppender
	}
)
