package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-approvals-api/internal/config"
	"github.com/go-approvals-api/internal/domain"
)

const apiBase = "https://api.telegram.org/bot"

// Channel delivers approval prompts to the operator chat and acknowledges
// the operator's button presses.
type Channel interface {
	SendApprovalPrompt(ctx context.Context, v domain.Verification, label string) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

type channel struct {
	httpClient *http.Client
	baseURL    string
	chatID     string
}

// NewChannel builds a Telegram Bot API channel. Returns an error when the
// bot credentials are not configured, so main can fall back to a nil
// channel and keep serving.
func NewChannel(cfg *config.Config) (Channel, error) {
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
		return nil, errors.New("telegram bot token or chat id not configured")
	}
	return &channel{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    apiBase + cfg.TelegramBotToken,
		chatID:     cfg.TelegramChatID,
	}, nil
}

// SendApprovalPrompt posts the prompt with an Approve/Decline inline
// keyboard. The callback data on each button carries the verb and the
// verification id, which the webhook echoes back. An empty label falls
// back to the raw payment-method id.
func (c *channel) SendApprovalPrompt(ctx context.Context, v domain.Verification, label string) error {
	display := v.PaymentMethodID
	if label != "" {
		display = fmt.Sprintf("%s (%s)", label, v.PaymentMethodID)
	}
	text := fmt.Sprintf(
		"Verification request\nUser: %s\nPayment method: %s\nCode: %s",
		v.UserID, display, v.Code,
	)
	payload := map[string]interface{}{
		"chat_id": c.chatID,
		"text":    text,
		"reply_markup": InlineKeyboard{
			Buttons: [][]InlineButton{{
				{Text: "Approve", CallbackData: string(domain.VerbApprove) + ":" + v.ID},
				{Text: "Decline", CallbackData: string(domain.VerbDecline) + ":" + v.ID},
			}},
		},
	}
	return c.call(ctx, "sendMessage", payload)
}

// AnswerCallback acks a callback query so the operator's client stops
// showing the progress spinner on the pressed button.
func (c *channel) AnswerCallback(ctx context.Context, callbackID, text string) error {
	return c.call(ctx, "answerCallbackQuery", map[string]interface{}{
		"callback_query_id": callbackID,
		"text":              text,
	})
}

func (c *channel) call(ctx context.Context, method string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	var out struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode telegram %s response: %w", method, err)
	}
	if !out.OK {
		return fmt.Errorf("telegram %s failed: %s", method, out.Description)
	}
	return nil
}
