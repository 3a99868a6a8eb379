package core

import (
	"errors"
	"strings"
	"time"
)

const (
	KindExpense EntryKind = "expense"
	KindPayment EntryKind = "payment"
	KindMarker  EntryKind = "marker"
	KindSummary EntryKind = "summary"
)

type (
	// EntryKind tags what a ledger line represents. Kinds are derived from
	// the sentinel strings at the storage boundary and never persisted as a
	// separate column.
	EntryKind string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Entry is one immutable ledger line. Position in the ledger is the only
	// ordering signal; Date is display data.
	Entry struct {
		Date        Date
		Payer       string
		Description string
		Amount      Money
		Kind        EntryKind
	}

	// Settings is the immutable configuration the engine is built from.
	Settings struct {
		Members       []string
		Currency      string
		Precision     int32
		CloseMarker   string
		PaymentMarker string
		SystemPayer   string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrUnknownPayer     = errors.New("unknown payer")
	ErrTooFewMembers    = errors.New("at least two members required")
)

// DefaultSettings returns the configuration of the household sheet this
// service replaced.
func DefaultSettings() Settings {
	return Settings{
		Members:       []string{"Patricio", "Sergio"},
		Currency:      "$",
		Precision:     0,
		CloseMarker:   "⛔ CIERRE DE CICLO ⛔",
		PaymentMarker: "PAGO DEUDA",
		SystemPayer:   "SISTEMA",
	}
}

func (s Settings) Validate() error {
	if len(s.Members) < 2 {
		return ErrTooFewMembers
	}
	seen := map[string]struct{}{}
	for _, m := range s.Members {
		m = strings.TrimSpace(m)
		if m == "" {
			return errors.New("empty member name")
		}
		if m == s.SystemPayer {
			return errors.New("member name collides with system payer")
		}
		if _, dup := seen[m]; dup {
			return errors.New("duplicate member name: " + m)
		}
		seen[m] = struct{}{}
	}
	if strings.TrimSpace(s.CloseMarker) == "" {
		return errors.New("empty close marker")
	}
	if strings.TrimSpace(s.PaymentMarker) == "" {
		return errors.New("empty payment marker")
	}
	if strings.TrimSpace(s.SystemPayer) == "" {
		return errors.New("empty system payer")
	}
	if s.Precision != 0 && s.Precision != 2 {
		return errors.New("precision must be 0 or 2")
	}
	return nil
}

// DetectKind derives an entry kind from the sentinel strings, the inverse
// of the flat-row encoding. Member rows are expenses unless the description
// carries the payment marker; system rows are markers or summaries.
func (s Settings) DetectKind(payer, description string) EntryKind {
	if payer == s.SystemPayer {
		if description == s.CloseMarker {
			return KindMarker
		}
		return KindSummary
	}
	if strings.Contains(description, s.PaymentMarker) {
		return KindPayment
	}
	return KindExpense
}

// IsMember reports whether name is one of the configured members.
func (s Settings) IsMember(name string) bool {
	for _, m := range s.Members {
		if m == name {
			return true
		}
	}
	return false
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date truncated to a calendar day.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses the YYYY-MM-DD storage form. The zero Date is returned
// for anything unparseable; dates are display data and never gate a row.
func ParseDate(s string) Date {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}
	}
	return Date{Time: t}
}

// String renders the YYYY-MM-DD storage form, empty for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// IsSystem reports whether the entry was generated by the engine rather
// than recorded by a member.
func (e Entry) IsSystem() bool {
	return e.Kind == KindMarker || e.Kind == KindSummary
}
