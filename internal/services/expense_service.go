// Package services implements the application layer: each exported method is
// one use case orchestrating validation, persistence and event publishing.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"matheo/internal/amqp"
	"matheo/internal/cache"
	"matheo/internal/core"
)

// ExpenseService orchestrates expense operations against the repository and
// publishes change events. The AMQP client is optional; a nil client skips
// publishing. Failures from dependencies are returned unchanged to the
// caller. The single exception is event publishing, which is logged and
// never fails the request.
type ExpenseService struct {
	repo      core.ExpenseRepository
	events    *amqp.Client
	summaries *cache.LRUCache[core.Summary]
}

func NewExpenseService(repo core.ExpenseRepository, events *amqp.Client) *ExpenseService {
	return &ExpenseService{
		repo:      repo,
		events:    events,
		summaries: cache.NewLRUCache[core.Summary](256, 5*time.Minute),
	}
}

// CreateExpenseInput is the data-transfer input for Create.
type CreateExpenseInput struct {
	UserID      string
	AmountCents int64
	Currency    string
	Category    string
	Description *string
	Date        time.Time
}

// MoneyChange carries a replacement amount for Update.
type MoneyChange struct {
	AmountCents int64
	Currency    string
}

// ExpenseChanges is a partial update; nil fields are left untouched.
type ExpenseChanges struct {
	Category    *string
	Description *string
	Money       *MoneyChange
}

// UpdateExpenseInput is the data-transfer input for Update.
type UpdateExpenseInput struct {
	ExpenseID string
	UserID    string
	Changes   ExpenseChanges
}

// Create validates the category and amount, builds the entity and persists
// it.
func (s *ExpenseService) Create(ctx context.Context, in CreateExpenseInput) (core.Expense, error) {
	if !core.IsValidCategory(in.Category) {
		return core.Expense{}, core.NewValidationError(fmt.Sprintf("Invalid category: %q", in.Category))
	}

	amount, err := core.NewMoney(in.AmountCents, in.Currency)
	if err != nil {
		return core.Expense{}, err
	}

	expense := core.NewExpense(core.NewExpenseInput{
		UserID:      in.UserID,
		Amount:      amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
	})

	saved, err := s.repo.Save(ctx, expense)
	if err != nil {
		return core.Expense{}, err
	}

	s.publishEvent(ctx, saved, amqp.ActionCreated)
	s.invalidateSummary(saved)
	return saved, nil
}

// Update applies the present changes in a fixed order (category, then
// description, then money), validating each before anything is persisted.
func (s *ExpenseService) Update(ctx context.Context, in UpdateExpenseInput) (core.Expense, error) {
	existing, err := s.repo.FindByID(ctx, in.ExpenseID, in.UserID)
	if err != nil {
		return core.Expense{}, err
	}
	if existing == nil {
		return core.Expense{}, core.NewNotFoundError("Expense")
	}

	expense := *existing

	if in.Changes.Category != nil {
		if !core.IsValidCategory(*in.Changes.Category) {
			return core.Expense{}, core.NewValidationError(fmt.Sprintf("Invalid category: %q", *in.Changes.Category))
		}
		expense = expense.UpdateCategory(*in.Changes.Category)
	}

	if in.Changes.Description != nil {
		expense = expense.UpdateDescription(*in.Changes.Description)
	}

	if in.Changes.Money != nil {
		amount, err := core.NewMoney(in.Changes.Money.AmountCents, in.Changes.Money.Currency)
		if err != nil {
			return core.Expense{}, err
		}
		expense = expense.UpdateAmount(amount)
	}

	updated, err := s.repo.Update(ctx, expense)
	if err != nil {
		return core.Expense{}, err
	}

	s.publishEvent(ctx, updated, amqp.ActionUpdated)
	s.invalidateSummary(updated)
	return updated, nil
}

// Delete removes the expense after checking it exists for this owner.
func (s *ExpenseService) Delete(ctx context.Context, expenseID, userID string) error {
	existing, err := s.repo.FindByID(ctx, expenseID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return core.NewNotFoundError("Expense")
	}

	if err := s.repo.Delete(ctx, expenseID, userID); err != nil {
		return err
	}

	s.publishEvent(ctx, *existing, amqp.ActionDeleted)
	s.invalidateSummary(*existing)
	return nil
}

// List delegates to the repository; filter semantics are its contract.
func (s *ExpenseService) List(ctx context.Context, userID string, filters core.ExpenseFilters) ([]core.Expense, error) {
	return s.repo.FindByUser(ctx, userID, filters)
}

// Search loads the user's full expense set and keeps the ones matching the
// query. Per-user volumes are assumed small enough for this to be fine.
func (s *ExpenseService) Search(ctx context.Context, userID, query string) ([]core.Expense, error) {
	all, err := s.repo.FindByUser(ctx, userID, core.ExpenseFilters{})
	if err != nil {
		return nil, err
	}

	matched := make([]core.Expense, 0, len(all))
	for _, e := range all {
		if e.Matches(query) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Summarize aggregates one month of expenses per category. Results are
// cached per (user, month) and invalidated by any mutation in that month.
// Mixing currencies within the month surfaces Money.Add's validation error.
func (s *ExpenseService) Summarize(ctx context.Context, userID string, year int, month time.Month) (core.Summary, error) {
	key := summaryKey(userID, year, month)
	if cached, ok := s.summaries.Get(key); ok {
		return cached, nil
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	expenses, err := s.repo.FindByUser(ctx, userID, core.ExpenseFilters{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return core.Summary{}, err
	}

	summary := core.Summary{Year: year, Month: int(month)}
	byCategory := make(map[core.Category]core.Money)
	for i, e := range expenses {
		if i == 0 {
			summary.Total = e.Amount
		} else if summary.Total, err = summary.Total.Add(e.Amount); err != nil {
			return core.Summary{}, err
		}

		c := core.Category(e.Category)
		if current, ok := byCategory[c]; ok {
			if byCategory[c], err = current.Add(e.Amount); err != nil {
				return core.Summary{}, err
			}
		} else {
			byCategory[c] = e.Amount
		}
	}
	for _, c := range core.AllCategories() {
		if amount, ok := byCategory[c]; ok {
			summary.ByCategory = append(summary.ByCategory, core.CategoryAmount{
				Category: c,
				Amount:   amount,
			})
		}
	}

	s.summaries.Set(key, summary)
	return summary, nil
}

// Close releases the repository and messaging resources, aggregating errors.
func (s *ExpenseService) Close() error {
	var errs []error

	if closer, ok := s.repo.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}
	return nil
}

func (s *ExpenseService) publishEvent(ctx context.Context, e core.Expense, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseEvent(ctx, e.ID, e.UserID, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"expense_id", e.ID,
			"action", action,
			"error", err)
	}
}

func (s *ExpenseService) invalidateSummary(e core.Expense) {
	s.summaries.Delete(summaryKey(e.UserID, e.Date.Year(), e.Date.Month()))
}

func summaryKey(userID string, year int, month time.Month) string {
	return fmt.Sprintf("%s|%04d-%02d", userID, year, int(month))
}
