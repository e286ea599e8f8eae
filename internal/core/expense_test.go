package core

import (
	"testing"
	"time"
)

func mustMoney(t *testing.T, cents int64, currency string) Money {
	t.Helper()
	m, err := NewMoney(cents, currency)
	if err != nil {
		t.Fatalf("new money: %v", err)
	}
	return m
}

func TestNewExpense(t *testing.T) {
	desc := "taxi to work"
	date := time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)

	e := NewExpense(NewExpenseInput{
		UserID:      "42",
		Amount:      mustMoney(t, 1200, "USD"),
		Category:    "transport",
		Description: &desc,
		Date:        date,
	})

	if e.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if e.UserID != "42" || e.Category != "transport" {
		t.Fatalf("unexpected fields: %+v", e)
	}
	if e.Description == nil || *e.Description != desc {
		t.Fatalf("unexpected description: %v", e.Description)
	}
	if !e.Date.Equal(date) {
		t.Fatalf("expected date %v, got %v", date, e.Date)
	}
	if e.CreatedAt.IsZero() || !e.UpdatedAt.Equal(e.CreatedAt) {
		t.Fatalf("unexpected timestamps: created=%v updated=%v", e.CreatedAt, e.UpdatedAt)
	}

	other := NewExpense(NewExpenseInput{
		UserID:   "42",
		Amount:   mustMoney(t, 100, "USD"),
		Category: "other",
	})
	if other.ID == e.ID {
		t.Fatal("ids must be unique")
	}
	if other.Date.IsZero() || !other.Date.Equal(other.CreatedAt) {
		t.Fatalf("zero date should default to creation instant, got %v", other.Date)
	}
	if other.Description != nil {
		t.Fatalf("expected unset description, got %q", *other.Description)
	}
}

func TestExpenseUpdatesProduceCopies(t *testing.T) {
	e := NewExpense(NewExpenseInput{
		UserID:   "7",
		Amount:   mustMoney(t, 450, "USD"),
		Category: "other",
	})

	updated := e.UpdateCategory("food")
	updated = updated.UpdateDescription("lunch")
	updated = updated.UpdateAmount(mustMoney(t, 900, "USD"))

	// Identity and ownership never change.
	if updated.ID != e.ID || updated.UserID != e.UserID {
		t.Fatalf("id/userId changed: %+v vs %+v", updated, e)
	}
	if updated.Category != "food" || updated.Amount.Cents != 900 {
		t.Fatalf("changes not applied: %+v", updated)
	}
	if updated.Description == nil || *updated.Description != "lunch" {
		t.Fatalf("unexpected description: %v", updated.Description)
	}
	if updated.UpdatedAt.Before(e.UpdatedAt) {
		t.Fatalf("updatedAt regressed: %v < %v", updated.UpdatedAt, e.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(e.CreatedAt) {
		t.Fatal("createdAt must not change on update")
	}

	// The original snapshot is untouched.
	if e.Category != "other" || e.Amount.Cents != 450 || e.Description != nil {
		t.Fatalf("original mutated: %+v", e)
	}
}

func TestExpenseMatches(t *testing.T) {
	desc := "Taxi to the airport"
	e := NewExpense(NewExpenseInput{
		UserID:      "7",
		Amount:      mustMoney(t, 1200, "USD"),
		Category:    "transport",
		Description: &desc,
	})

	for _, q := range []string{"taxi", "TAXI", "airport", "transport", "  port "} {
		if !e.Matches(q) {
			t.Fatalf("expected match for %q", q)
		}
	}
	if e.Matches("pizza") {
		t.Fatal("unexpected match for pizza")
	}

	noDesc := NewExpense(NewExpenseInput{
		UserID:   "7",
		Amount:   mustMoney(t, 100, "USD"),
		Category: "food",
	})
	if !noDesc.Matches("food") {
		t.Fatal("expected category match without description")
	}
	if noDesc.Matches("taxi") {
		t.Fatal("unexpected match without description")
	}
}
