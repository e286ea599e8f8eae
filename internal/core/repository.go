package core

import (
	"context"
	"time"
)

// ExpenseFilters narrows FindByUser results. The zero value means no
// filtering. Date bounds are inclusive and apply to the effective date.
type ExpenseFilters struct {
	Category  string
	StartDate time.Time
	EndDate   time.Time
}

// ExpenseRepository is the persistence port the application layer depends
// on. Implementations are interchangeable at wiring time; every operation is
// scoped by (id, userID) so one user can never touch another's rows.
//
// FindByID returns (nil, nil) when no row exists for the pair: absence is
// not an error at this boundary, the application layer decides what it
// means. FindByUser returns expenses ordered by effective date descending.
// Backend failures carry the DB_ERROR code.
type ExpenseRepository interface {
	Save(ctx context.Context, e Expense) (Expense, error)
	Update(ctx context.Context, e Expense) (Expense, error)
	FindByID(ctx context.Context, id, userID string) (*Expense, error)
	FindByUser(ctx context.Context, userID string, filters ExpenseFilters) ([]Expense, error)
	Delete(ctx context.Context, id, userID string) error
}
