// File: services/notification/telegram.go
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"transformai/config"
	"transformai/utils"
)

// Package-level HTTP client for Telegram API calls.
var telegramHTTPClient = &http.Client{Timeout: 10 * time.Second}

// TelegramNotifier posts operational messages to a Telegram chat. It no-ops
// silently when the bot token or chat id is not configured.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
}

// NewTelegramNotifier constructs a ChatOpsNotifier from the app configuration.
func NewTelegramNotifier() *TelegramNotifier {
	return &TelegramNotifier{
		BotToken: config.AppConfig.TelegramBotToken,
		ChatID:   config.AppConfig.TelegramChatID,
	}
}

type telegramSendRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramSendResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

func (t *TelegramNotifier) Send(ctx context.Context, message string) error {
	logger := utils.GetLogger()

	if t.BotToken == "" || t.ChatID == "" {
		logger.Debug("Telegram notification skipped: missing bot token or chat ID")
		return nil
	}

	payload, err := json.Marshal(telegramSendRequest{
		ChatID:    t.ChatID,
		Text:      message,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := telegramHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call telegram API: %w", err)
	}
	defer resp.Body.Close()

	var tgResp telegramSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&tgResp); err != nil {
		return fmt.Errorf("failed to decode telegram response: %w", err)
	}
	if !tgResp.OK {
		return fmt.Errorf("telegram API error: %s", tgResp.Description)
	}
	return nil
}
