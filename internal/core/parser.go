package core

import (
	"regexp"
	"strings"
)

// amountPattern matches an integer or an exactly-two-decimal-place number.
// The first match in the input wins, which is the deliberate tie-break for
// ambiguous input like "2 bags 100".
var amountPattern = regexp.MustCompile(`\d+(?:\.\d{2})?`)

// ParsedExpense is the structured draft produced from free text, prior to
// persistence. A nil Description means the input had none, which is distinct
// from an explicitly empty one.
type ParsedExpense struct {
	Amount      Money
	Category    Category
	Description *string
}

// ExpenseParser turns raw chat text like "coffee 4.50" into a draft expense.
// Parsing is best-effort and tolerant of missing structure: the only hard
// requirements are non-empty input and a recognizable amount.
type ExpenseParser struct{}

// Parse decomposes input into amount, category and description. The default
// currency is applied to the parsed amount; when blank it falls back to USD.
func (p ExpenseParser) Parse(input, defaultCurrency string) (ParsedExpense, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ParsedExpense{}, NewValidationError("Input cannot be empty")
	}

	amountStr := amountPattern.FindString(trimmed)
	if amountStr == "" {
		return ParsedExpense{}, NewValidationError("No valid amount found in input")
	}

	// Remove only the first occurrence of the matched substring.
	remaining := strings.TrimSpace(strings.Replace(trimmed, amountStr, "", 1))

	if defaultCurrency == "" {
		defaultCurrency = "USD"
	}
	cents, err := ParseAmount(amountStr)
	if err != nil {
		return ParsedExpense{}, err
	}
	amount, err := NewMoney(cents, defaultCurrency)
	if err != nil {
		// The pattern excludes negative amounts, so this path is not
		// reachable through documented inputs.
		return ParsedExpense{}, err
	}

	parsed := ParsedExpense{Amount: amount, Category: CategoryOther}
	if remaining != "" {
		words := strings.Fields(remaining)
		first := strings.ToLower(words[0])
		if IsValidCategory(first) {
			parsed.Category = Category(first)
			if len(words) > 1 {
				desc := strings.Join(words[1:], " ")
				parsed.Description = &desc
			}
		} else {
			parsed.Description = &remaining
		}
	}

	return parsed, nil
}

// Keyword table for GuessCategory, checked in category declaration order.
// Taken from the bot's observed behavior; "other" intentionally has none.
var categoryKeywords = map[Category][]string{
	CategoryFood: {
		"lunch", "dinner", "breakfast", "coffee", "restaurant",
		"food", "meal", "pizza", "burger",
	},
	CategoryTransport: {
		"taxi", "bus", "train", "car", "uber", "gas", "petrol",
		"parking", "transport",
	},
	CategoryHealth: {
		"doctor", "hospital", "pharmacy", "medicine", "health", "dentist",
	},
	CategoryShopping: {
		"store", "shop", "mall", "market", "clothes", "dress", "shoes",
	},
	CategoryEntertainment: {
		"movie", "cinema", "game", "concert", "music", "entertainment",
	},
	CategoryUtilities: {
		"electric", "water", "gas", "internet", "phone", "utilities", "bill",
	},
	CategoryOther: {},
}

// GuessCategory returns the first category whose keyword list matches the
// description anywhere, case-insensitively, or "other" when none match. It
// is a pure, total function independent of Parse's category resolution.
func (p ExpenseParser) GuessCategory(description string) Category {
	text := strings.ToLower(description)
	for _, category := range allCategories {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(text, keyword) {
				return category
			}
		}
	}
	return CategoryOther
}
