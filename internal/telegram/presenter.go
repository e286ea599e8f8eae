package telegram

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"matheo/internal/core"
)

// Main keyboard actions.
const (
	btnAddExpense    = "💸 Add Expense"
	btnSummary       = "📊 Summary"
	btnUploadInvoice = "🧾 Upload Invoice"
	btnSettings      = "⚙️ Settings"
)

// Callback data prefixes carried by inline buttons.
const (
	callbackDelete      = "expense:delete:"
	callbackEdit        = "expense:edit:"
	callbackSetCategory = "expense:setcat:"
)

var markdownV2Escapes = regexp.MustCompile("[_*\\[\\]()~`>#+\\-=|{}.!\\\\]")

// EscapeMarkdownV2 backslash-escapes every character MarkdownV2 treats as
// markup.
func EscapeMarkdownV2(s string) string {
	return markdownV2Escapes.ReplaceAllString(s, `\$0`)
}

// FormatExpense renders one expense as a MarkdownV2 line.
func FormatExpense(e core.Expense) string {
	cat := core.Category(e.Category)
	line := fmt.Sprintf("%s *%s* %s %s",
		cat.Emoji(),
		EscapeMarkdownV2(cat.DisplayName()),
		EscapeMarkdownV2(e.Amount.Format()),
		EscapeMarkdownV2(e.Date.Format("2006-01-02")),
	)
	if e.Description != nil && *e.Description != "" {
		line += fmt.Sprintf("\n_%s_", EscapeMarkdownV2(*e.Description))
	}
	return line
}

func WelcomeMessage(firstName string) string {
	greeting := "Welcome to Matheo"
	if firstName != "" {
		greeting += ", " + firstName
	}
	hint := `Send me an expense like "coffee 4.50" and I will track it for you.`
	return EscapeMarkdownV2(greeting+"!") + "\n\n" + EscapeMarkdownV2(hint)
}

func SavedMessage(e core.Expense) string {
	return "✅ Expense saved\n\n" + FormatExpense(e)
}

func UpdatedMessage(e core.Expense) string {
	return "✏️ Expense updated\n\n" + FormatExpense(e)
}

func DeletedMessage() string {
	return "🗑 Expense deleted"
}

func ListMessage(expenses []core.Expense) string {
	if len(expenses) == 0 {
		return EscapeMarkdownV2("No expenses found.")
	}
	lines := make([]string, 0, len(expenses))
	for _, e := range expenses {
		lines = append(lines, FormatExpense(e))
	}
	return strings.Join(lines, "\n\n")
}

func SummaryMessage(s core.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *%s %d*\n\n", time.Month(s.Month).String(), s.Year)
	if len(s.ByCategory) == 0 {
		b.WriteString(EscapeMarkdownV2("No expenses this month."))
		return b.String()
	}
	for _, ca := range s.ByCategory {
		fmt.Fprintf(&b, "%s %s: %s\n",
			ca.Category.Emoji(),
			EscapeMarkdownV2(ca.Category.DisplayName()),
			EscapeMarkdownV2(ca.Amount.Format()),
		)
	}
	fmt.Fprintf(&b, "\n*Total: %s*", EscapeMarkdownV2(s.Total.Format()))
	return b.String()
}

// MainKeyboard is the persistent reply keyboard offered after /start.
func MainKeyboard() *ReplyKeyboardMarkup {
	return &ReplyKeyboardMarkup{
		Keyboard: [][]KeyboardButton{
			{{Text: btnAddExpense}, {Text: btnSummary}},
			{{Text: btnUploadInvoice}, {Text: btnSettings}},
		},
		ResizeKeyboard: true,
	}
}

// ExpenseActionsKeyboard offers edit and delete on a saved expense.
func ExpenseActionsKeyboard(expenseID string) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{{
			{Text: "✏️ Edit", CallbackData: callbackEdit + expenseID},
			{Text: "🗑 Delete", CallbackData: callbackDelete + expenseID},
		}},
	}
}

// CategoryKeyboard lists every category, three per row, for re-categorizing
// an expense.
func CategoryKeyboard(expenseID string) *InlineKeyboardMarkup {
	categories := core.AllCategories()
	var rows [][]InlineKeyboardButton
	for i := 0; i < len(categories); i += 3 {
		end := i + 3
		if end > len(categories) {
			end = len(categories)
		}
		var row []InlineKeyboardButton
		for _, cat := range categories[i:end] {
			row = append(row, InlineKeyboardButton{
				Text:         cat.Emoji() + " " + cat.DisplayName(),
				CallbackData: callbackSetCategory + expenseID + ":" + string(cat),
			})
		}
		rows = append(rows, row)
	}
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}
