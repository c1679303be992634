package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramSender_Send(t *testing.T) {
	// Подготовка
	var got telegramRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer server.Close()

	sender := NewTelegramSender(server.URL+"/", time.Second)

	// Действие
	err := sender.Send(context.Background(), Message{BotToken: "TOKEN", ChatID: "42", Text: "hello"})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "42", got.ChatID)
	assert.Equal(t, "hello", got.Text)
}

func TestTelegramSender_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	sender := NewTelegramSender(server.URL, time.Second)

	err := sender.Send(context.Background(), Message{BotToken: "TOKEN", ChatID: "42", Text: "hello"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestTelegramSender_MissingAddress(t *testing.T) {
	sender := NewTelegramSender("http://127.0.0.1:0", time.Second)

	assert.Error(t, sender.Send(context.Background(), Message{ChatID: "42"}))
	assert.Error(t, sender.Send(context.Background(), Message{BotToken: "TOKEN"}))
}

func TestTelegramSender_TransportErrorHidesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	sender := NewTelegramSender(url, time.Second)
	err := sender.Send(context.Background(), Message{BotToken: "SECRET", ChatID: "42"})

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET")
}
