package sheets

import (
	"testing"

	"cuentas/internal/core"
)

func TestDecodeRowsDropsBlankAndCoerces(t *testing.T) {
	s := core.DefaultSettings()
	rows := []Row{
		{"2026-08-01", "Patricio", "Supermercado", "150"},
		{"", "", "", ""}, // fully blank: dropped
		{"2026-08-02", "Sergio", "Luz", ""},      // blank amount: coerced to 0
		{"2026-08-03", "Sergio", "Taxi", "n/a"},  // non-numeric: coerced to 0
		{"2026-08-04", "Sergio", "PAGO DEUDA", "25"},
		{"2026-08-05", "SISTEMA", "⛔ CIERRE DE CICLO ⛔", "0"},
	}
	entries := DecodeRows(s, rows)
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries after dropping blank row, got %d", len(entries))
	}
	if entries[0].Amount.Cents != 15000 || entries[0].Kind != core.KindExpense {
		t.Fatalf("first entry decoded wrong: %+v", entries[0])
	}
	if entries[1].Amount.Cents != 0 {
		t.Fatalf("blank amount must coerce to zero, got %d", entries[1].Amount.Cents)
	}
	if entries[2].Amount.Cents != 0 {
		t.Fatalf("non-numeric amount must coerce to zero, got %d", entries[2].Amount.Cents)
	}
	if entries[3].Kind != core.KindPayment {
		t.Fatalf("payment sentinel must tag the payment kind, got %s", entries[3].Kind)
	}
	if entries[4].Kind != core.KindMarker {
		t.Fatalf("close sentinel must tag the marker kind, got %s", entries[4].Kind)
	}
}

func TestEncodeRowKeepsSentinelsAndExactAmount(t *testing.T) {
	s := core.DefaultSettings()
	e := core.Entry{
		Date:        core.NewDate(2026, 8, 30),
		Payer:       "Sergio",
		Description: "PAGO DEUDA",
		Amount:      core.Money{Cents: 1250},
		Kind:        core.KindPayment,
	}
	r := EncodeRow(e)
	if r.Date != "2026-08-30" || r.Payer != "Sergio" || r.Description != "PAGO DEUDA" {
		t.Fatalf("row fields wrong: %+v", r)
	}
	if r.Amount != "12.5" {
		t.Fatalf("amount must survive exactly, got %q", r.Amount)
	}

	// A decode of the encoded row recovers the same entry.
	back := DecodeRow(s, r)
	if back != e {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, e)
	}
}

func TestRowIsBlank(t *testing.T) {
	if !(Row{" ", "", "\t", ""}).IsBlank() {
		t.Fatalf("whitespace-only row is blank")
	}
	if (Row{"", "", "x", ""}).IsBlank() {
		t.Fatalf("row with any cell set is not blank")
	}
}
