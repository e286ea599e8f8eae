package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"matheo/internal/core"
	"matheo/internal/log"
	"matheo/internal/services"
)

// Handler routes incoming updates to the expense service and renders the
// replies.
type Handler struct {
	svc             *services.ExpenseService
	api             API
	parser          core.ExpenseParser
	defaultCurrency string
	logger          *log.Logger
}

func NewHandler(svc *services.ExpenseService, api API, defaultCurrency string, logger *log.Logger) *Handler {
	return &Handler{
		svc:             svc,
		api:             api,
		defaultCurrency: defaultCurrency,
		logger:          logger.WithComponent(log.ComponentBot),
	}
}

// HandleUpdate dispatches a single update. Errors are reported to the user
// and logged; the returned error is reserved for transport failures.
func (h *Handler) HandleUpdate(ctx context.Context, u Update) {
	switch {
	case u.Message != nil && u.Message.From != nil:
		h.handleMessage(ctx, u.Message)
	case u.CallbackQuery != nil:
		h.handleCallback(ctx, u.CallbackQuery)
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	switch {
	case strings.HasPrefix(text, "/start"):
		h.reply(ctx, SendMessageRequest{
			ChatID:      msg.Chat.ID,
			Text:        WelcomeMessage(msg.From.FirstName),
			ParseMode:   ParseModeMarkdownV2,
			ReplyMarkup: MainKeyboard(),
		})
	case strings.HasPrefix(text, "/list"):
		h.handleList(ctx, msg.Chat.ID, userID, text)
	case strings.HasPrefix(text, "/search"):
		h.handleSearch(ctx, msg.Chat.ID, userID, text)
	case strings.HasPrefix(text, "/summary"), text == btnSummary:
		h.handleSummary(ctx, msg.Chat.ID, userID)
	case text == btnAddExpense:
		h.replyPlain(ctx, msg.Chat.ID, `Send me an expense like "coffee 4.50" or "12 transport taxi".`)
	case text == btnUploadInvoice:
		h.replyPlain(ctx, msg.Chat.ID, "Invoice upload is not available yet.")
	case text == btnSettings:
		h.replyPlain(ctx, msg.Chat.ID, "Default currency: "+h.defaultCurrency)
	default:
		h.handleFreeText(ctx, msg.Chat.ID, userID, text)
	}
}

// handleFreeText treats any unrecognized message as an expense to record.
func (h *Handler) handleFreeText(ctx context.Context, chatID int64, userID, text string) {
	parsed, err := h.parser.Parse(text, h.defaultCurrency)
	if err != nil {
		h.replyPlain(ctx, chatID, `I could not find an amount in that. Try something like "coffee 4.50".`)
		return
	}

	created, err := h.svc.Create(ctx, services.CreateExpenseInput{
		UserID:      userID,
		AmountCents: parsed.Amount.Cents,
		Currency:    parsed.Amount.Currency,
		Category:    string(parsed.Category),
		Description: parsed.Description,
	})
	if err != nil {
		h.replyError(ctx, chatID, err)
		return
	}

	h.reply(ctx, SendMessageRequest{
		ChatID:      chatID,
		Text:        SavedMessage(created),
		ParseMode:   ParseModeMarkdownV2,
		ReplyMarkup: ExpenseActionsKeyboard(created.ID),
	})
}

func (h *Handler) handleList(ctx context.Context, chatID int64, userID, text string) {
	var filters core.ExpenseFilters
	if fields := strings.Fields(text); len(fields) > 1 {
		category := strings.ToLower(fields[1])
		if !core.IsValidCategory(category) {
			h.replyPlain(ctx, chatID, "Unknown category. Valid ones are: "+categoryList())
			return
		}
		filters.Category = category
	}

	expenses, err := h.svc.List(ctx, userID, filters)
	if err != nil {
		h.replyError(ctx, chatID, err)
		return
	}
	h.reply(ctx, SendMessageRequest{
		ChatID:    chatID,
		Text:      ListMessage(expenses),
		ParseMode: ParseModeMarkdownV2,
	})
}

func (h *Handler) handleSearch(ctx context.Context, chatID int64, userID, text string) {
	query := strings.TrimSpace(strings.TrimPrefix(text, "/search"))
	if query == "" {
		h.replyPlain(ctx, chatID, "Usage: /search <text>")
		return
	}

	expenses, err := h.svc.Search(ctx, userID, query)
	if err != nil {
		h.replyError(ctx, chatID, err)
		return
	}
	h.reply(ctx, SendMessageRequest{
		ChatID:    chatID,
		Text:      ListMessage(expenses),
		ParseMode: ParseModeMarkdownV2,
	})
}

func (h *Handler) handleSummary(ctx context.Context, chatID int64, userID string) {
	now := time.Now().UTC()
	summary, err := h.svc.Summarize(ctx, userID, now.Year(), now.Month())
	if err != nil {
		h.replyError(ctx, chatID, err)
		return
	}
	h.reply(ctx, SendMessageRequest{
		ChatID:    chatID,
		Text:      SummaryMessage(summary),
		ParseMode: ParseModeMarkdownV2,
	})
}

func (h *Handler) handleCallback(ctx context.Context, cb *CallbackQuery) {
	userID := strconv.FormatInt(cb.From.ID, 10)

	switch {
	case strings.HasPrefix(cb.Data, callbackDelete):
		h.handleDeleteCallback(ctx, cb, userID, strings.TrimPrefix(cb.Data, callbackDelete))
	case strings.HasPrefix(cb.Data, callbackEdit):
		h.handleEditCallback(ctx, cb, strings.TrimPrefix(cb.Data, callbackEdit))
	case strings.HasPrefix(cb.Data, callbackSetCategory):
		h.handleSetCategoryCallback(ctx, cb, userID, strings.TrimPrefix(cb.Data, callbackSetCategory))
	default:
		h.answer(ctx, cb.ID, "")
	}
}

func (h *Handler) handleDeleteCallback(ctx context.Context, cb *CallbackQuery, userID, expenseID string) {
	if err := h.svc.Delete(ctx, expenseID, userID); err != nil {
		h.answer(ctx, cb.ID, callbackErrorText(err))
		return
	}
	if cb.Message != nil {
		h.edit(ctx, EditMessageTextRequest{
			ChatID:    cb.Message.Chat.ID,
			MessageID: cb.Message.MessageID,
			Text:      DeletedMessage(),
		})
	}
	h.answer(ctx, cb.ID, "Deleted")
}

func (h *Handler) handleEditCallback(ctx context.Context, cb *CallbackQuery, expenseID string) {
	if cb.Message == nil {
		h.answer(ctx, cb.ID, "")
		return
	}
	h.reply(ctx, SendMessageRequest{
		ChatID:      cb.Message.Chat.ID,
		Text:        "Pick a new category:",
		ReplyMarkup: CategoryKeyboard(expenseID),
	})
	h.answer(ctx, cb.ID, "")
}

func (h *Handler) handleSetCategoryCallback(ctx context.Context, cb *CallbackQuery, userID, data string) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		h.answer(ctx, cb.ID, "")
		return
	}
	expenseID, category := parts[0], parts[1]

	updated, err := h.svc.Update(ctx, services.UpdateExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
		Changes:   services.ExpenseChanges{Category: &category},
	})
	if err != nil {
		h.answer(ctx, cb.ID, callbackErrorText(err))
		return
	}
	if cb.Message != nil {
		h.edit(ctx, EditMessageTextRequest{
			ChatID:      cb.Message.Chat.ID,
			MessageID:   cb.Message.MessageID,
			Text:        UpdatedMessage(updated),
			ParseMode:   ParseModeMarkdownV2,
			ReplyMarkup: ExpenseActionsKeyboard(expenseID),
		})
	}
	h.answer(ctx, cb.ID, "Updated")
}

func (h *Handler) reply(ctx context.Context, req SendMessageRequest) {
	if _, err := h.api.SendMessage(ctx, req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to send message",
			log.FieldChatID, req.ChatID, log.FieldError, err)
	}
}

func (h *Handler) replyPlain(ctx context.Context, chatID int64, text string) {
	h.reply(ctx, SendMessageRequest{ChatID: chatID, Text: text})
}

func (h *Handler) edit(ctx context.Context, req EditMessageTextRequest) {
	if _, err := h.api.EditMessageText(ctx, req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to edit message",
			log.FieldChatID, req.ChatID, log.FieldError, err)
	}
}

func (h *Handler) answer(ctx context.Context, callbackID, text string) {
	err := h.api.AnswerCallbackQuery(ctx, AnswerCallbackQueryRequest{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to answer callback query", log.FieldError, err)
	}
}

// replyError turns a service error into a user-facing message. Validation
// messages are shown as-is; everything else stays generic.
func (h *Handler) replyError(ctx context.Context, chatID int64, err error) {
	switch {
	case core.IsValidation(err):
		h.replyPlain(ctx, chatID, "⚠️ "+userMessage(err))
	case core.IsNotFound(err):
		h.replyPlain(ctx, chatID, "Expense not found.")
	default:
		h.logger.ErrorContext(ctx, "Expense operation failed", log.FieldError, err)
		h.replyPlain(ctx, chatID, "Something went wrong. Please try again.")
	}
}

func callbackErrorText(err error) string {
	switch {
	case core.IsValidation(err):
		return userMessage(err)
	case core.IsNotFound(err):
		return "Expense not found"
	default:
		return "Something went wrong"
	}
}

func userMessage(err error) string {
	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		return coreErr.Message
	}
	return err.Error()
}

func categoryList() string {
	categories := core.AllCategories()
	names := make([]string, 0, len(categories))
	for _, cat := range categories {
		names = append(names, string(cat))
	}
	return strings.Join(names, ", ")
}
