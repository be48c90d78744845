package handler

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-approvals-api/internal/application/verification"
	"github.com/go-approvals-api/internal/domain"
	"github.com/go-approvals-api/internal/infrastructure/telegram"
)

// WebhookHandler receives Telegram updates carrying operator decisions.
// The response body is informational only: the channel retries on
// transport failures, never on what the body says.
type WebhookHandler struct {
	svc     verification.Service
	channel telegram.Channel
	secret  string // empty disables the secret-token check
}

func NewWebhookHandler(svc verification.Service, channel telegram.Channel, secret string) *WebhookHandler {
	return &WebhookHandler{svc: svc, channel: channel, secret: secret}
}

func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		got := r.Header.Get("X-Telegram-Bot-Api-Secret-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			writeError(w, http.StatusForbidden, "bad webhook secret")
			return
		}
	}

	var upd telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		// Acked like any other unusable update: a 4xx would make the
		// channel redeliver the same broken payload forever.
		slog.Warn("undecodable webhook update", "err", err)
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "ignored"})
		return
	}
	if upd.CallbackQuery == nil {
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "ignored"})
		return
	}

	ack := h.svc.HandleDecision(r.Context(), domain.ParseDecision(upd.CallbackQuery.Data))

	// Clear the button spinner in the operator chat. Best-effort.
	if h.channel != nil {
		if err := h.channel.AnswerCallback(r.Context(), upd.CallbackQuery.ID, ack); err != nil {
			slog.Warn("callback ack failed", "callback_id", upd.CallbackQuery.ID, "err", err)
		}
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: ack})
}
