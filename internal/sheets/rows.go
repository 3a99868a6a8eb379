// Package sheets defines the storage ports and the flat-row codec shared by
// the ledger backends.
//
// The storage format is four ordered columns per row: Fecha (YYYY-MM-DD),
// Pagado Por (member or system payer), Concepto (free text with sentinel
// values) and Monto (decimal amount). Entry kinds exist only in memory; on
// disk a row is distinguished solely by its payer and description sentinels.
package sheets

import (
	"strings"

	"cuentas/internal/core"
)

// Row is one flat storage record.
type Row struct {
	Date        string
	Payer       string
	Description string
	Amount      string
}

// IsBlank reports whether every cell is empty. Fully blank rows are
// discarded on read; partially blank rows are kept with coerced values.
func (r Row) IsBlank() bool {
	return strings.TrimSpace(r.Date) == "" &&
		strings.TrimSpace(r.Payer) == "" &&
		strings.TrimSpace(r.Description) == "" &&
		strings.TrimSpace(r.Amount) == ""
}

// EncodeRow serializes an entry to the flat format. The amount keeps its
// exact value; display rounding never reaches storage.
func EncodeRow(e core.Entry) Row {
	return Row{
		Date:        e.Date.String(),
		Payer:       e.Payer,
		Description: e.Description,
		Amount:      e.Amount.Decimal().String(),
	}
}

// DecodeRow turns one flat record into an entry, deriving the kind from
// the sentinel strings. Blank or non-numeric amounts coerce to zero.
func DecodeRow(s core.Settings, r Row) core.Entry {
	cents, _ := core.CoerceCents(r.Amount)
	payer := strings.TrimSpace(r.Payer)
	desc := strings.TrimSpace(r.Description)
	return core.Entry{
		Date:        core.ParseDate(r.Date),
		Payer:       payer,
		Description: desc,
		Amount:      core.Money{Cents: cents},
		Kind:        s.DetectKind(payer, desc),
	}
}

// DecodeRows decodes a whole read, dropping fully blank rows and keeping
// everything else in order.
func DecodeRows(s core.Settings, rows []Row) []core.Entry {
	var out []core.Entry
	for _, r := range rows {
		if r.IsBlank() {
			continue
		}
		out = append(out, DecodeRow(s, r))
	}
	return out
}
