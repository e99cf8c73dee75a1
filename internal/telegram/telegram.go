// Package telegram delivers digest messages to a channel via the Bot API.
package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"novapulse/internal/logger"
	"novapulse/internal/metrics"
)

const (
	defaultAPIBase = "https://api.telegram.org"

	// messageMaxRunes is Telegram's hard per-message limit.
	messageMaxRunes = 4096
)

// Sender posts HTML messages to one chat/channel. In dry-run mode messages go
// to out instead of the API, for local testing.
type Sender struct {
	token   string
	chatID  string
	delay   time.Duration
	dryRun  bool
	out     io.Writer
	apiBase string
	client  *http.Client
}

func NewSender(token, chatID string, delay time.Duration, dryRun bool) *Sender {
	return &Sender{
		token:   token,
		chatID:  chatID,
		delay:   delay,
		dryRun:  dryRun,
		out:     os.Stdout,
		apiBase: defaultAPIBase,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SendMessages delivers each non-blank block in order with the configured
// delay between sends and returns how many were delivered. Failed sends are
// counted, not retried.
func (s *Sender) SendMessages(messages []string) int {
	sent := 0
	for i, msg := range messages {
		if strings.TrimSpace(msg) == "" {
			continue
		}
		if err := s.sendMessage(truncate(msg)); err != nil {
			logger.Error("Telegram send failed", "message", i+1, "error", err)
		} else {
			sent++
		}
		if i < len(messages)-1 && s.delay > 0 {
			time.Sleep(s.delay)
		}
	}
	metrics.Global.AddMessagesSent(sent)
	return sent
}

func (s *Sender) sendMessage(text string) error {
	if s.dryRun {
		fmt.Fprintln(s.out, strings.Repeat("=", 60))
		fmt.Fprintln(s.out, text)
		fmt.Fprintln(s.out, strings.Repeat("=", 60))
		return nil
	}

	if s.token == "" || s.chatID == "" {
		return fmt.Errorf("telegram token or channel id not configured")
	}

	payload := map[string]interface{}{
		"chat_id":    s.chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.token)
	resp, err := s.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	var data struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !data.OK {
		return fmt.Errorf("telegram API error: %s", data.Description)
	}
	return nil
}

// truncate enforces the per-message size limit, signalling the cut with a
// trailing ellipsis.
func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= messageMaxRunes {
		return text
	}
	return string(runes[:messageMaxRunes-1]) + "…"
}
