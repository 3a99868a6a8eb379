// Package memory provides an in-process ledger store. It backs local
// development and tests, and doubles as the degraded fallback when no
// durable backend is configured.
package memory

import (
	"context"
	"sync"

	"cuentas/internal/core"
	ports "cuentas/internal/sheets"
)

type Store struct {
	mu      sync.Mutex
	entries []core.Entry
}

var (
	_ ports.LedgerReader   = (*Store)(nil)
	_ ports.LedgerAppender = (*Store)(nil)
)

func New(seed ...core.Entry) *Store {
	s := &Store{}
	s.entries = append(s.entries, seed...)
	return s
}

// ReadAll returns the full history in insertion order.
func (s *Store) ReadAll(_ context.Context) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Append concatenates entries in order. Never reorders, never deduplicates.
func (s *Store) Append(_ context.Context, entries ...core.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return nil
}

// Len returns the current number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
