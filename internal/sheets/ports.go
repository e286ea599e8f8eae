// Package sheets defines the export port and its Google Sheets adapter.
package sheets

import (
	"context"

	"matheo/internal/core"
)

// RowAppender appends one expense row to an external backup sheet and
// returns an opaque reference to it.
type RowAppender interface {
	Append(ctx context.Context, e core.Expense) (rowRef string, err error)
}
