package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sender доставляет одно уведомление
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// TelegramSender отправляет сообщения через Bot API
type TelegramSender struct {
	apiURL     string
	httpClient *http.Client
}

// NewTelegramSender создает отправителя. apiURL - адрес Bot API, например https://api.telegram.org
func NewTelegramSender(apiURL string, timeout time.Duration) *TelegramSender {
	return &TelegramSender{
		apiURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type telegramRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send вызывает sendMessage. Ответ с ok=false считается ошибкой.
func (s *TelegramSender) Send(ctx context.Context, msg Message) error {
	if msg.BotToken == "" {
		return errors.New("telegram: bot token is empty")
	}
	if msg.ChatID == "" {
		return errors.New("telegram: chat id is empty")
	}

	body, err := json.Marshal(telegramRequest{ChatID: msg.ChatID, Text: msg.Text})
	if err != nil {
		return fmt.Errorf("telegram: failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", s.apiURL, msg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// Ошибка клиента содержит URL с токеном, наружу его не отдаем
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("telegram: request failed: %w", err)
	}
	defer resp.Body.Close()

	var out telegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("telegram: failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if !out.OK {
		return fmt.Errorf("telegram: api error (status %d): %s", resp.StatusCode, out.Description)
	}
	return nil
}
