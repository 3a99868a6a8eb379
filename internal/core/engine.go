package core

import (
	"fmt"
	"strings"
)

// Engine evaluates a ledger snapshot against one fixed household
// configuration. Every method is a pure function of its inputs; the engine
// holds no state between calls.
type Engine struct {
	settings Settings
}

func NewEngine(settings Settings) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &Engine{settings: settings}, nil
}

// Settings returns the configuration the engine was built with.
func (e *Engine) Settings() Settings {
	return e.settings
}

// ValidateEntry checks a member-submitted entry before it may enter the
// ledger: positive amount, non-empty description, known payer. System rows
// never pass through here; they are produced by CloseEntries.
func (e *Engine) ValidateEntry(entry Entry) error {
	if !e.settings.IsMember(entry.Payer) {
		return fmt.Errorf("%w: %q", ErrUnknownPayer, entry.Payer)
	}
	if strings.TrimSpace(entry.Description) == "" {
		return ErrEmptyDescription
	}
	if err := entry.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

// DetectKind derives the entry kind from the sentinel strings, the inverse
// of the flat-row encoding.
func (e *Engine) DetectKind(payer, description string) EntryKind {
	return e.settings.DetectKind(payer, description)
}

// CurrentCycle returns the entries of the active accounting period: the
// sub-sequence strictly after the last close marker, or the whole history
// when no cycle has ever been closed.
func (e *Engine) CurrentCycle(entries []Entry) []Entry {
	last := -1
	for i, entry := range entries {
		// Exact description match, independent of the kind tag: any row
		// carrying the sentinel closes a cycle, as in the original sheet.
		if entry.Description == e.settings.CloseMarker {
			last = i
		}
	}
	cycle := make([]Entry, len(entries[last+1:]))
	copy(cycle, entries[last+1:])
	return cycle
}

// Classify partitions a cycle into real expenses and settlement payments.
// System-generated rows belong to neither; they must not be counted as a
// member's spending.
func (e *Engine) Classify(cycle []Entry) (expenses, payments []Entry) {
	for _, entry := range cycle {
		kind := entry.Kind
		if kind == "" {
			kind = e.settings.DetectKind(entry.Payer, entry.Description)
		}
		switch kind {
		case KindPayment:
			payments = append(payments, entry)
		case KindExpense:
			expenses = append(expenses, entry)
		}
	}
	return expenses, payments
}

// Balance computes the active-cycle balance in one step.
func (e *Engine) Balance(cycle []Entry) BalanceResult {
	expenses, payments := e.Classify(cycle)
	return e.ComputeBalance(expenses, payments)
}
