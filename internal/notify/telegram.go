package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"yhmonitor/internal/program"
)

const (
	telegramAPIBase = "https://api.telegram.org/bot"
	telegramTimeout = 10 * time.Second
)

// TelegramNotifier posts change notifications to a Telegram chat.
type TelegramNotifier struct {
	botToken   string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// NewTelegramNotifier creates a new Telegram notifier.
func NewTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  telegramAPIBase,
		httpClient: &http.Client{
			Timeout: telegramTimeout,
		},
	}, nil
}

// Notify sends one message summarizing the additions and removals for a
// source. Nothing is sent when both lists are empty.
func (n *TelegramNotifier) Notify(source string, added, removed []program.Key) error {
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}
	return n.sendMessage(formatTelegramMessage(source, added, removed))
}

// sendMessage sends a text message to the configured chat
func (n *TelegramNotifier) sendMessage(text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}

	url := fmt.Sprintf("%s%s/sendMessage", n.baseURL, n.botToken)

	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}

// formatTelegramMessage formats one source's changes as a Telegram HTML
// message. Titles and providers are scraped text and get escaped.
func formatTelegramMessage(source string, added, removed []program.Key) string {
	var msg strings.Builder

	msg.WriteString("🎓 <b>Yrkeshögskolan program updates</b>\n\n")
	msg.WriteString(fmt.Sprintf("📍 Source: <b>%s</b>\n", html.EscapeString(source)))

	if len(added) > 0 {
		msg.WriteString("\n➕ <b>New programs:</b>\n")
		for _, key := range added {
			msg.WriteString(fmt.Sprintf("• <a href=\"%s\">%s</a> by %s\n",
				key.Link, html.EscapeString(key.Title), html.EscapeString(key.Provider)))
		}
	}

	if len(removed) > 0 {
		msg.WriteString("\n➖ <b>Removed programs:</b>\n")
		for _, key := range removed {
			msg.WriteString(fmt.Sprintf("• %s by %s\n",
				html.EscapeString(key.Title), html.EscapeString(key.Provider)))
		}
	}

	return strings.TrimRight(msg.String(), "\n")
}
