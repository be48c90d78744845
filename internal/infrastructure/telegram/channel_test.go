package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-approvals-api/internal/config"
	"github.com/go-approvals-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChannel(srv *httptest.Server) *channel {
	return &channel{
		httpClient: &http.Client{Timeout: time.Second},
		baseURL:    srv.URL,
		chatID:     "12345",
	}
}

func TestSendApprovalPrompt_PayloadShape(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	ch := newTestChannel(srv)
	err := ch.SendApprovalPrompt(context.Background(), domain.Verification{
		ID: "v1", PaymentMethodID: "pm_1", UserID: "u_1", Code: "482913",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "/sendMessage", gotPath)
	assert.Equal(t, "12345", gotBody["chat_id"])
	assert.Contains(t, gotBody["text"], "482913")
	assert.Contains(t, gotBody["text"], "pm_1")

	markup, ok := gotBody["reply_markup"].(map[string]interface{})
	require.True(t, ok)
	rows, ok := markup["inline_keyboard"].([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 1)
	buttons := rows[0].([]interface{})
	require.Len(t, buttons, 2)
	assert.Equal(t, "approve:v1", buttons[0].(map[string]interface{})["callback_data"])
	assert.Equal(t, "decline:v1", buttons[1].(map[string]interface{})["callback_data"])
}

func TestSendApprovalPrompt_LabelShown(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	ch := newTestChannel(srv)
	err := ch.SendApprovalPrompt(context.Background(), domain.Verification{
		ID: "v1", PaymentMethodID: "pm_1", UserID: "u_1", Code: "482913",
	}, "visa ending 4242")
	require.NoError(t, err)
	assert.Contains(t, gotBody["text"], "visa ending 4242 (pm_1)")
}

func TestSendApprovalPrompt_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	ch := newTestChannel(srv)
	err := ch.SendApprovalPrompt(context.Background(), domain.Verification{ID: "v1"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestAnswerCallback(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	ch := newTestChannel(srv)
	err := ch.AnswerCallback(context.Background(), "cb-77", "approved")
	require.NoError(t, err)
	assert.Equal(t, "/answerCallbackQuery", gotPath)
	assert.Equal(t, "cb-77", gotBody["callback_query_id"])
	assert.Equal(t, "approved", gotBody["text"])
}

func TestNewChannel_MissingCredentials(t *testing.T) {
	_, err := NewChannel(&config.Config{TelegramChatID: "12345"})
	assert.Error(t, err)
}
