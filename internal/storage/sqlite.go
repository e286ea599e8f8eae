// Package storage provides the persistence adapters behind
// core.ExpenseRepository: a SQLite store for production and an in-memory
// store for tests and local runs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"matheo/internal/core"

	_ "modernc.org/sqlite"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339Nano
)

// SQLiteRepository persists expenses in a local SQLite database. The *sql.DB
// handle is created once and shared for the process lifetime; SQLite itself
// is the arbiter of per-row consistency.
type SQLiteRepository struct {
	db *sql.DB
}

var _ core.ExpenseRepository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Save(ctx context.Context, e core.Expense) (core.Expense, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, user_id, amount_cents, currency, category, description, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Amount.Cents, e.Amount.Currency, e.Category,
		nullableText(e.Description), e.Date.UTC().Format(dateLayout),
		e.CreatedAt.UTC().Format(timeLayout), e.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return core.Expense{}, core.NewStorageError("save expense", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"user_id", e.UserID,
		"category", e.Category,
		"amount_cents", e.Amount.Cents)

	return e, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, e core.Expense) (core.Expense, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses
		SET amount_cents = ?, currency = ?, category = ?, description = ?, date = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		e.Amount.Cents, e.Amount.Currency, e.Category, nullableText(e.Description),
		e.Date.UTC().Format(dateLayout), e.UpdatedAt.UTC().Format(timeLayout),
		e.ID, e.UserID,
	)
	if err != nil {
		return core.Expense{}, core.NewStorageError("update expense", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.Expense{}, core.NewStorageError("update expense: no matching row", nil)
	}
	return e, nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id, userID string) (*core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, amount_cents, currency, category, description, date, created_at, updated_at
		FROM expenses
		WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, core.NewStorageError("find expense by id", err)
	}
	return &e, nil
}

func (r *SQLiteRepository) FindByUser(ctx context.Context, userID string, filters core.ExpenseFilters) ([]core.Expense, error) {
	query := `
		SELECT id, user_id, amount_cents, currency, category, description, date, created_at, updated_at
		FROM expenses
		WHERE user_id = ?`
	args := []any{userID}

	if filters.Category != "" {
		query += " AND category = ?"
		args = append(args, filters.Category)
	}
	if !filters.StartDate.IsZero() {
		query += " AND date >= ?"
		args = append(args, filters.StartDate.UTC().Format(dateLayout))
	}
	if !filters.EndDate.IsZero() {
		query += " AND date <= ?"
		args = append(args, filters.EndDate.UTC().Format(dateLayout))
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, core.NewStorageError("find expenses by user", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, core.NewStorageError("scan expense row", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStorageError("iterate expense rows", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return core.NewStorageError("delete expense", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e           core.Expense
		description sql.NullString
		date        string
		createdAt   string
		updatedAt   string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.Amount.Cents, &e.Amount.Currency,
		&e.Category, &description, &date, &createdAt, &updatedAt)
	if err != nil {
		return core.Expense{}, err
	}
	if description.Valid {
		d := description.String
		e.Description = &d
	}
	if e.Date, err = time.ParseInLocation(dateLayout, date, time.UTC); err != nil {
		return core.Expense{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	if e.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return core.Expense{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if e.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return core.Expense{}, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}
	return e, nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// Rows written by hand or by older tooling may omit fractions.
		t, err = time.Parse(time.RFC3339, strings.TrimSpace(s))
	}
	return t, err
}

func nullableText(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
