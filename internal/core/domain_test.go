package core

import (
	"errors"
	"testing"
	"time"
)

func TestSettingsValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Settings)
		ok   bool
	}{
		{"defaults", func(s *Settings) {}, true},
		{"one member", func(s *Settings) { s.Members = []string{"A"} }, false},
		{"blank member", func(s *Settings) { s.Members = []string{"A", " "} }, false},
		{"duplicate member", func(s *Settings) { s.Members = []string{"A", "A"} }, false},
		{"member named as system", func(s *Settings) { s.Members = []string{"A", "SISTEMA"} }, false},
		{"empty close marker", func(s *Settings) { s.CloseMarker = "" }, false},
		{"empty payment marker", func(s *Settings) { s.PaymentMarker = " " }, false},
		{"odd precision", func(s *Settings) { s.Precision = 3 }, false},
		{"precision two", func(s *Settings) { s.Precision = 2 }, true},
		{"three members", func(s *Settings) { s.Members = []string{"A", "B", "C"} }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			tc.mut(&s)
			err := s.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDateStorageForm(t *testing.T) {
	d := ParseDate("2026-08-30")
	if d.IsZero() {
		t.Fatalf("expected parsed date")
	}
	if got := d.String(); got != "2026-08-30" {
		t.Fatalf("expected 2026-08-30, got %q", got)
	}
	if !ParseDate("not a date").IsZero() {
		t.Fatalf("expected zero date for garbage")
	}
	if got := (Date{Time: time.Time{}}).String(); got != "" {
		t.Fatalf("expected empty string for zero date, got %q", got)
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := (Money{Cents: -100}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestValidateEntry(t *testing.T) {
	eng, err := NewEngine(DefaultSettings())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	good := Entry{
		Date:        NewDate(2026, 8, 30),
		Payer:       "Patricio",
		Description: "Supermercado",
		Amount:      Money{Cents: 10000},
	}
	if err := eng.ValidateEntry(good); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		mut  func(*Entry)
		want error
	}{
		{"unknown payer", func(e *Entry) { e.Payer = "Nadie" }, ErrUnknownPayer},
		{"system payer rejected", func(e *Entry) { e.Payer = "SISTEMA" }, ErrUnknownPayer},
		{"empty description", func(e *Entry) { e.Description = "  " }, ErrEmptyDescription},
		{"zero amount", func(e *Entry) { e.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(e *Entry) { e.Amount = Money{Cents: -1} }, ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := good
			tc.mut(&e)
			if err := eng.ValidateEntry(e); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
