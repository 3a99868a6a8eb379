package memory

import (
	"context"
	"testing"

	"cuentas/internal/core"
)

func TestStoreAppendAndReadAll(t *testing.T) {
	ctx := context.Background()
	store := New()

	e1 := core.Entry{Payer: "Patricio", Description: "Pan", Amount: core.Money{Cents: 100}, Kind: core.KindExpense}
	e2 := core.Entry{Payer: "Sergio", Description: "Leche", Amount: core.Money{Cents: 200}, Kind: core.KindExpense}

	if err := store.Append(ctx, e1, e2); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 || got[0].Description != "Pan" || got[1].Description != "Leche" {
		t.Fatalf("order must be preserved: %+v", got)
	}

	// Mutating the returned slice must not touch the store.
	got[0].Description = "mutated"
	again, _ := store.ReadAll(ctx)
	if again[0].Description != "Pan" {
		t.Fatalf("ReadAll must return a copy")
	}
}

func TestStoreSeed(t *testing.T) {
	seed := core.Entry{Payer: "Patricio", Description: "Pan", Amount: core.Money{Cents: 100}}
	store := New(seed)
	if store.Len() != 1 {
		t.Fatalf("expected seeded entry, got %d", store.Len())
	}
}
