package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Expense is a single recorded spend event owned by one user. Instances are
// immutable: the Update* methods return a fresh copy and never mutate the
// receiver. ID and UserID are assigned once and never change.
type Expense struct {
	ID          string
	UserID      string
	Amount      Money
	Category    string
	Description *string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpenseInput carries the fields the caller controls at creation time.
type NewExpenseInput struct {
	UserID      string
	Amount      Money
	Category    string
	Description *string
	Date        time.Time
}

// NewExpense assigns identity and timestamps. A zero Date defaults to the
// creation instant.
func NewExpense(input NewExpenseInput) Expense {
	now := time.Now().UTC()
	date := input.Date
	if date.IsZero() {
		date = now
	}
	return Expense{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Matches reports whether the query occurs in the category or description,
// case-insensitively.
func (e Expense) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if strings.Contains(strings.ToLower(e.Category), q) {
		return true
	}
	if e.Description != nil && strings.Contains(strings.ToLower(*e.Description), q) {
		return true
	}
	return false
}

// UpdateCategory returns a copy with the new category.
func (e Expense) UpdateCategory(category string) Expense {
	e.Category = category
	e.UpdatedAt = e.nextUpdatedAt()
	return e
}

// UpdateDescription returns a copy with the new description.
func (e Expense) UpdateDescription(description string) Expense {
	e.Description = &description
	e.UpdatedAt = e.nextUpdatedAt()
	return e
}

// UpdateAmount returns a copy with the new amount.
func (e Expense) UpdateAmount(amount Money) Expense {
	e.Amount = amount
	e.UpdatedAt = e.nextUpdatedAt()
	return e
}

// nextUpdatedAt advances UpdatedAt, never regressing it even if the clock
// reads earlier than the stored value.
func (e Expense) nextUpdatedAt() time.Time {
	now := time.Now().UTC()
	if now.Before(e.UpdatedAt) {
		return e.UpdatedAt
	}
	return now
}
