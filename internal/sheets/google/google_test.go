package google

import (
	"context"
	"testing"

	"cuentas/internal/core"
	ports "cuentas/internal/sheets"
)

func TestRowFromCells(t *testing.T) {
	cases := []struct {
		name  string
		cells []any
		want  ports.Row
	}{
		{
			"full row",
			[]any{"2026-08-30", "Patricio", "Supermercado", "150"},
			ports.Row{Date: "2026-08-30", Payer: "Patricio", Description: "Supermercado", Amount: "150"},
		},
		{
			"short row pads with blanks",
			[]any{"2026-08-30", "Sergio"},
			ports.Row{Date: "2026-08-30", Payer: "Sergio"},
		},
		{
			"numeric amount cell",
			[]any{"2026-08-30", "Sergio", "Luz", 12.5},
			ports.Row{Date: "2026-08-30", Payer: "Sergio", Description: "Luz", Amount: "12.5"},
		},
		{
			"whitespace trimmed",
			[]any{" 2026-08-30 ", " Patricio ", " Pan ", " 1 "},
			ports.Row{Date: "2026-08-30", Payer: "Patricio", Description: "Pan", Amount: "1"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rowFromCells(tc.cells); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestNewFromEnvRequiresSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	if _, err := NewFromEnv(context.Background(), core.DefaultSettings()); err == nil {
		t.Fatalf("expected error without GOOGLE_SPREADSHEET_ID")
	}
}
