package core

import "testing"

func TestParse(t *testing.T) {
	var parser ExpenseParser

	cases := []struct {
		name       string
		input      string
		cents      int64
		currency   string
		category   Category
		desc       string
		hasDesc    bool
		wantErrMsg string
	}{
		{
			name:  "description then amount",
			input: "coffee 4.50",
			cents: 450, currency: "USD",
			category: CategoryOther, desc: "coffee", hasDesc: true,
		},
		{
			name:  "amount category description",
			input: "12 transport taxi",
			cents: 1200, currency: "USD",
			category: CategoryTransport, desc: "taxi", hasDesc: true,
		},
		{
			name:  "amount and category only",
			input: "4.50 health",
			cents: 450, currency: "USD",
			category: CategoryHealth, hasDesc: false,
		},
		{
			name:  "bare amount",
			input: "  7  ",
			cents: 700, currency: "USD",
			category: CategoryOther, hasDesc: false,
		},
		{
			name:  "first numeric token wins",
			input: "2 bags 100",
			cents: 200, currency: "USD",
			category: CategoryOther, desc: "bags 100", hasDesc: true,
		},
		{
			name:  "non-category first word folds into description",
			input: "groceries 23.10 at the market",
			cents: 2310, currency: "USD",
			category: CategoryOther, desc: "groceries  at the market", hasDesc: true,
		},
		{
			name:       "empty input",
			input:      "   ",
			wantErrMsg: "Input cannot be empty",
		},
		{
			name:       "no amount",
			input:      "no numbers here",
			wantErrMsg: "No valid amount found in input",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parser.Parse(tc.input, "")
			if tc.wantErrMsg != "" {
				if !IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if err.Error() != tc.wantErrMsg {
					t.Fatalf("expected %q, got %q", tc.wantErrMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Amount.Cents != tc.cents || got.Amount.Currency != tc.currency {
				t.Fatalf("expected %d %s, got %+v", tc.cents, tc.currency, got.Amount)
			}
			if got.Category != tc.category {
				t.Fatalf("expected category %q, got %q", tc.category, got.Category)
			}
			if tc.hasDesc {
				if got.Description == nil || *got.Description != tc.desc {
					t.Fatalf("expected description %q, got %v", tc.desc, got.Description)
				}
			} else if got.Description != nil {
				t.Fatalf("expected unset description, got %q", *got.Description)
			}
		})
	}
}

func TestParseDefaultCurrency(t *testing.T) {
	var parser ExpenseParser

	got, err := parser.Parse("coffee 4.50", "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Amount.Currency != "EUR" {
		t.Fatalf("expected EUR, got %q", got.Amount.Currency)
	}
}

func TestGuessCategory(t *testing.T) {
	var parser ExpenseParser

	cases := []struct {
		in   string
		want Category
	}{
		{"Grabbed a quick lunch", CategoryFood},
		{"UBER to the airport", CategoryTransport},
		{"new shoes from the mall", CategoryShopping},
		{"monthly internet bill", CategoryUtilities},
		{"dentist appointment", CategoryHealth},
		{"concert tickets", CategoryEntertainment},
		{"xyz", CategoryOther},
		{"", CategoryOther},
	}
	for _, tc := range cases {
		if got := parser.GuessCategory(tc.in); got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
