// Package worker consumes expense events and exports new expenses to the
// backup sheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"matheo/internal/amqp"
	"matheo/internal/core"
	"matheo/internal/sheets"
)

// ExportWorker handles expense events from AMQP. Created expenses are loaded
// from storage and appended to the sheet; other actions are logged and
// acknowledged so the queue keeps draining.
type ExportWorker struct {
	repo     core.ExpenseRepository
	appender sheets.RowAppender
}

func NewExportWorker(repo core.ExpenseRepository, appender sheets.RowAppender) *ExportWorker {
	return &ExportWorker{
		repo:     repo,
		appender: appender,
	}
}

// HandleEvent processes a single expense event message.
func (w *ExportWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	if msg.Action != amqp.ActionCreated {
		slog.InfoContext(ctx, "Skipping non-create event",
			"expense_id", msg.ExpenseID,
			"action", msg.Action)
		return nil
	}

	expense, err := w.repo.FindByID(ctx, msg.ExpenseID, msg.UserID)
	if err != nil {
		return fmt.Errorf("load expense %s: %w", msg.ExpenseID, err)
	}
	if expense == nil {
		// Deleted before we got to it; nothing to export.
		slog.WarnContext(ctx, "Expense vanished before export",
			"expense_id", msg.ExpenseID,
			"user_id", msg.UserID)
		return nil
	}

	ref, err := w.appender.Append(ctx, *expense)
	if err != nil {
		return fmt.Errorf("export expense %s: %w", msg.ExpenseID, err)
	}

	slog.InfoContext(ctx, "Expense exported",
		"expense_id", msg.ExpenseID,
		"row_ref", ref)
	return nil
}
