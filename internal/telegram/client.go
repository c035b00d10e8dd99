// Package telegram provides a client for delivering latency reports via the
// Telegram Bot API. Delivery is optional and disabled by default.
package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rewired-gh/polylatency/internal/models"
	"github.com/rewired-gh/polylatency/internal/report"
)

// Client handles Telegram notifications.
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client.
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendLatencyReport delivers the summary statistics of one run. Empty
// latency sets are expected to be filtered out by the caller.
func (c *Client) SendLatencyReport(title string, run report.Run, summaries []report.LabeledSummary) error {
	return c.sendMarkdownV2(c.formatReport(title, run, summaries))
}

// SendGeoAlert delivers the geoblock verdict for a run.
func (c *Client) SendGeoAlert(run report.Run, status models.GeoStatus) error {
	verdict := "✅ *Location allowed*"
	if status.Blocked {
		verdict = "🚫 *Location blocked*"
	}

	text := fmt.Sprintf("%s\nIP `%s` · %s / %s\nRun `%s`",
		verdict,
		escapeMarkdownV2(orUnknown(status.IP)),
		escapeMarkdownV2(orUnknown(status.Country)),
		escapeMarkdownV2(orUnknown(status.Region)),
		escapeMarkdownV2(run.ID.String()),
	)
	return c.sendMarkdownV2(text)
}

// formatReport formats one run's summaries into a MarkdownV2 message.
func (c *Client) formatReport(title string, run report.Run, summaries []report.LabeledSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📡 *%s*\n", escapeMarkdownV2(title))
	fmt.Fprintf(&b, "📅 %s · run `%s`\n\n",
		escapeMarkdownV2(run.StartedAt.Format("2006-01-02 15:04:05")),
		escapeMarkdownV2(run.ID.String()),
	)

	for _, s := range summaries {
		fmt.Fprintf(&b, "*%s*\n", escapeMarkdownV2(s.Label))
		fmt.Fprintf(&b, "%d calls · median %s · avg %s · min %s · max %s\n\n",
			s.Summary.Count,
			escapeMarkdownV2(fmt.Sprintf("%.2f ms", s.Summary.Median)),
			escapeMarkdownV2(fmt.Sprintf("%.2f ms", s.Summary.Mean)),
			escapeMarkdownV2(fmt.Sprintf("%.2f ms", s.Summary.Min)),
			escapeMarkdownV2(fmt.Sprintf("%.2f ms", s.Summary.Max)),
		)
	}

	return b.String()
}

// sendMarkdownV2 sends a MarkdownV2 message with linear-backoff retry.
func (c *Client) sendMarkdownV2(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if _, err := c.bot.Send(msg); err == nil {
			return nil
		} else {
			lastErr = err
		}
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}
	return fmt.Errorf("failed after %d retries: %w", c.maxRetries, lastErr)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2.
func escapeMarkdownV2(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4) // pre-allocate with room for escapes
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
