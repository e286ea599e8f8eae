package telegram

import (
	"strings"
	"testing"
	"time"

	"matheo/internal/core"
)

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"4.50", `4\.50`},
		{"a-b_c", `a\-b\_c`},
		{"(parens) [brackets]", `\(parens\) \[brackets\]`},
		{"100% safe!", `100% safe\!`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		if got := EscapeMarkdownV2(tt.input); got != tt.want {
			t.Errorf("EscapeMarkdownV2(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatExpense(t *testing.T) {
	desc := "morning coffee"
	e := core.Expense{
		Category:    string(core.CategoryFood),
		Amount:      core.Money{Cents: 450, Currency: "USD"},
		Description: &desc,
		Date:        time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}

	got := FormatExpense(e)
	for _, want := range []string{"🍽️", "*Food*", `USD 4\.50`, `2026\-08\-30`, "_morning coffee_"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatExpense() = %q, missing %q", got, want)
		}
	}

	e.Description = nil
	if got := FormatExpense(e); strings.Contains(got, "_") {
		t.Errorf("expected no description line, got %q", got)
	}
}

func TestListMessageEmpty(t *testing.T) {
	got := ListMessage(nil)
	if got != `No expenses found\.` {
		t.Errorf("ListMessage(nil) = %q", got)
	}
}

func TestSummaryMessage(t *testing.T) {
	s := core.Summary{
		Year:  2026,
		Month: 8,
		Total: core.Money{Cents: 4600, Currency: "EUR"},
		ByCategory: []core.CategoryAmount{
			{Category: core.CategoryFood, Amount: core.Money{Cents: 3400, Currency: "EUR"}},
			{Category: core.CategoryTransport, Amount: core.Money{Cents: 1200, Currency: "EUR"}},
		},
	}

	got := SummaryMessage(s)
	for _, want := range []string{"August 2026", `EUR 34\.00`, `EUR 12\.00`, `*Total: EUR 46\.00*`} {
		if !strings.Contains(got, want) {
			t.Errorf("SummaryMessage() = %q, missing %q", got, want)
		}
	}

	empty := SummaryMessage(core.Summary{Year: 2026, Month: 8})
	if !strings.Contains(empty, `No expenses this month\.`) {
		t.Errorf("expected empty-month message, got %q", empty)
	}
}

func TestExpenseActionsKeyboard(t *testing.T) {
	kb := ExpenseActionsKeyboard("abc-123")
	if len(kb.InlineKeyboard) != 1 || len(kb.InlineKeyboard[0]) != 2 {
		t.Fatalf("expected one row with two buttons, got %+v", kb.InlineKeyboard)
	}
	if got := kb.InlineKeyboard[0][0].CallbackData; got != "expense:edit:abc-123" {
		t.Errorf("edit callback data = %q", got)
	}
	if got := kb.InlineKeyboard[0][1].CallbackData; got != "expense:delete:abc-123" {
		t.Errorf("delete callback data = %q", got)
	}
}

func TestCategoryKeyboard(t *testing.T) {
	kb := CategoryKeyboard("abc-123")

	var buttons []InlineKeyboardButton
	for _, row := range kb.InlineKeyboard {
		if len(row) > 3 {
			t.Errorf("row has %d buttons, want at most 3", len(row))
		}
		buttons = append(buttons, row...)
	}
	if len(buttons) != len(core.AllCategories()) {
		t.Fatalf("expected %d buttons, got %d", len(core.AllCategories()), len(buttons))
	}
	if got := buttons[0].CallbackData; got != "expense:setcat:abc-123:food" {
		t.Errorf("first callback data = %q", got)
	}
}

func TestMainKeyboard(t *testing.T) {
	kb := MainKeyboard()
	if !kb.ResizeKeyboard {
		t.Error("expected resize_keyboard to be set")
	}
	var texts []string
	for _, row := range kb.Keyboard {
		for _, btn := range row {
			texts = append(texts, btn.Text)
		}
	}
	joined := strings.Join(texts, "|")
	for _, want := range []string{btnAddExpense, btnSummary, btnUploadInvoice, btnSettings} {
		if !strings.Contains(joined, want) {
			t.Errorf("main keyboard missing %q", want)
		}
	}
}
