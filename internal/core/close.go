package core

import "fmt"

// CloseEntries builds the system rows that end the active cycle: summary
// rows with the cycle totals, then exactly one close-marker row. The rows
// are appended to the ledger like any member entry and are recognized on
// read only by the system payer and the sentinel descriptions.
//
// Closing an already-empty cycle still appends a marker; the extractor
// always uses the last marker, so duplicate closes degrade gracefully.
func (e *Engine) CloseEntries(res BalanceResult, date Date) []Entry {
	s := e.settings
	system := func(desc string, kind EntryKind) Entry {
		return Entry{
			Date:        date,
			Payer:       s.SystemPayer,
			Description: desc,
			Amount:      Money{Cents: 0},
			Kind:        kind,
		}
	}

	var out []Entry
	out = append(out, system(
		fmt.Sprintf("TOTAL CICLO: %s", s.FormatAmount(res.TotalExpenses)), KindSummary))
	out = append(out, system(
		fmt.Sprintf("CUOTA JUSTA: %s", s.FormatAmount(res.FairShare)), KindSummary))
	if res.Debtor != "" {
		out = append(out, system(
			fmt.Sprintf("%s le debe a %s: %s", res.Debtor, res.Creditor, s.FormatAmount(res.Owed)), KindSummary))
	}
	out = append(out, system(s.CloseMarker, KindMarker))
	return out
}
