package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestCoerceCents(t *testing.T) {
	cases := []struct {
		in      string
		out     int64
		numeric bool
	}{
		{"150", 15000, true},
		{"12.5", 1250, true},
		{"12,5", 1250, true},
		{"0", 0, true},
		{"", 0, false},      // blank cell coerces to zero
		{"   ", 0, false},   // whitespace-only too
		{"n/a", 0, false},   // non-numeric coerces instead of failing the read
		{"-10", 0, false},   // negatives never enter the ledger
	}
	for _, tc := range cases {
		got, numeric := CoerceCents(tc.in)
		if got != tc.out || numeric != tc.numeric {
			t.Fatalf("%q expected (%d,%v), got (%d,%v)", tc.in, tc.out, tc.numeric, got, numeric)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	s := DefaultSettings()
	if got := s.FormatAmount(Money{Cents: 15000}.Decimal()); got != "$150" {
		t.Fatalf("expected $150, got %q", got)
	}
	s.Precision = 2
	if got := s.FormatAmount(Money{Cents: 1250}.Decimal()); got != "$12.50" {
		t.Fatalf("expected $12.50, got %q", got)
	}
}
