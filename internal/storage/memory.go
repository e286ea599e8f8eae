package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"matheo/internal/core"
)

// MemoryRepository is a mutex-guarded in-memory core.ExpenseRepository with
// the same filter and ordering semantics as the SQLite one. It backs tests
// and the default data backend when no database is configured.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[string]core.Expense
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]core.Expense)}
}

var _ core.ExpenseRepository = (*MemoryRepository)(nil)

func (r *MemoryRepository) Save(_ context.Context, e core.Expense) (core.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[e.ID] = e
	return e, nil
}

func (r *MemoryRepository) Update(_ context.Context, e core.Expense) (core.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[e.ID]
	if !ok || existing.UserID != e.UserID {
		return core.Expense{}, core.NewStorageError("update expense: no matching row", nil)
	}
	r.items[e.ID] = e
	return e, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id, userID string) (*core.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok || e.UserID != userID {
		return nil, nil
	}
	out := e
	return &out, nil
}

func (r *MemoryRepository) FindByUser(_ context.Context, userID string, filters core.ExpenseFilters) ([]core.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []core.Expense
	for _, e := range r.items {
		if e.UserID != userID {
			continue
		}
		if filters.Category != "" && e.Category != filters.Category {
			continue
		}
		day := dateOnly(e.Date)
		if !filters.StartDate.IsZero() && day.Before(dateOnly(filters.StartDate)) {
			continue
		}
		if !filters.EndDate.IsZero() && day.After(dateOnly(filters.EndDate)) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := dateOnly(out[i].Date), dateOnly(out[j].Date)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete is a no-op for an absent pair, matching the SQL DELETE semantics
// the application layer relies on.
func (r *MemoryRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.items[id]; ok && e.UserID == userID {
		delete(r.items, id)
	}
	return nil
}

// dateOnly truncates to the calendar day; the persisted date column is
// date-only, so filters compare at day granularity.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
