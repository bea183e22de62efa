package bot

import (
	"encoding/json"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Handler returns the HTTP handler for Telegram webhook deliveries.
func (b *Bot) Handler() http.HandlerFunc {
	return b.handleWebhook
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.Header.Get(secretTokenHeader) != b.cfg.BotToken {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		b.logger.Printf("webhook: decode update: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	b.Dispatch(update)
	w.WriteHeader(http.StatusOK)
}

// HealthHandler returns the liveness handler the hosting platform polls.
func (b *Bot) HealthHandler() http.HandlerFunc {
	return b.handleHealth
}

func (b *Bot) handleHealth(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "Bot is alive!")
}
