package telegram

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"matheo/internal/log"
)

const updateJSON = `{"update_id":1,"message":{"message_id":1,"from":{"id":7,"first_name":"Ada"},"chat":{"id":100},"text":"coffee 4.50"}}`

func TestWebhookRejectsBadSecret(t *testing.T) {
	h, api, _ := newTestHandler()
	srv := NewServer(":0", h, "s3cret", log.New(log.DefaultConfig()))

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(updateJSON))
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 without secret, got %d", rec.Code)
	}
	if len(api.sent) != 0 {
		t.Errorf("expected no messages sent, got %d", len(api.sent))
	}
}

func TestWebhookProcessesUpdate(t *testing.T) {
	h, api, _ := newTestHandler()
	srv := NewServer(":0", h, "s3cret", log.New(log.DefaultConfig()))

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(updateJSON))
	req.Header.Set(secretTokenHeader, "s3cret")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(api.sent) != 1 || !strings.Contains(api.sent[0].Text, "Expense saved") {
		t.Errorf("expected saved confirmation, got %+v", api.sent)
	}
}

func TestWebhookRejectsBadJSON(t *testing.T) {
	h, _, _ := newTestHandler()
	srv := NewServer(":0", h, "", log.New(log.DefaultConfig()))

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	h, _, _ := newTestHandler()
	srv := NewServer(":0", h, "", log.New(log.DefaultConfig()))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
