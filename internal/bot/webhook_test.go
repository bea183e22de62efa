package bot

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func webhookRequest(t *testing.T, update tgbotapi.Update, secret string) *http.Request {
	t.Helper()
	body, err := json.Marshal(update)
	if err != nil {
		t.Fatalf("marshal update: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	if secret != "" {
		req.Header.Set(secretTokenHeader, secret)
	}
	return req
}

func TestWebhookRejectsWrongSecret(t *testing.T) {
	t.Parallel()
	b, sender := newTestBot(t)

	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, webhookRequest(t, commandUpdate(42, "/start"), "wrong-secret"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("dispatcher must not run on a rejected delivery, sent %+v", sender.sent)
	}
}

func TestWebhookRejectsMissingSecret(t *testing.T) {
	t.Parallel()
	b, sender := newTestBot(t)

	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, webhookRequest(t, commandUpdate(42, "/start"), ""))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("dispatcher must not run on a rejected delivery, sent %+v", sender.sent)
	}
}

func TestWebhookDispatchesValidUpdateOnce(t *testing.T) {
	t.Parallel()
	b, sender := newTestBot(t)

	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, webhookRequest(t, commandUpdate(42, "/start"), "test-token"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected exactly one dispatched reply, got %+v", sender.sent)
	}
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	t.Parallel()
	b, _ := newTestBot(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	req.Header.Set(secretTokenHeader, "test-token")
	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestWebhookRejectsNonPost(t *testing.T) {
	t.Parallel()
	b, _ := newTestBot(t)

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	b, _ := newTestBot(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	b.HealthHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got, want := rec.Body.String(), "Bot is alive!"; got != want {
		t.Fatalf("body = %q, want %q", got, want)
	}
}
