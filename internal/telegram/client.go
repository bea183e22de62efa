package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client wraps the Telegram Bot API operations required by the bot.
type Client struct {
	api *tgbotapi.BotAPI
}

// New authenticates against the Bot API with the given token.
func New(token string) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api client: %w", err)
	}
	api.Debug = false
	return &Client{api: api}, nil
}

// Username returns the bot account's username.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// SendMessage delivers a text message to the given chat.
func (c *Client) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send message to chat %d: %w", chatID, err)
	}
	return nil
}

// RegisterWebhook replaces any previously registered webhook with url,
// dropping pending updates, and sets the shared secret Telegram echoes back
// in the X-Telegram-Bot-Api-Secret-Token header of every delivery.
func (c *Client) RegisterWebhook(url, secret string) error {
	if _, err := c.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}

	// The typed WebhookConfig predates the secret_token parameter, so the
	// request is built directly.
	params := tgbotapi.Params{
		"url":          url,
		"secret_token": secret,
	}
	if _, err := c.api.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}
