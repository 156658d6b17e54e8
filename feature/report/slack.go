package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// messageCharLimit caps a single Slack message; bot-token posts are chunked
// to stay under it.
const messageCharLimit = 3500

const defaultPostMessageURL = "https://slack.com/api/chat.postMessage"

// SlackConfig holds the Slack credentials. A webhook wins over the bot
// token; with neither set the notifier is a no-op.
type SlackConfig struct {
	// WebhookURL is an incoming-webhook URL for the target channel.
	WebhookURL string `mapstructure:"webhook_url"`
	// BotToken is a bot user OAuth token, used when no webhook is set.
	BotToken string `mapstructure:"bot_token"`
	// Channel is the channel posted to with the bot token.
	Channel string `mapstructure:"channel"`
}

// Notifier posts a titled list of lines to a destination.
type Notifier interface {
	Post(ctx context.Context, title string, lines []string) error
}

// NewNotifier selects the notifier implementation from the config.
func NewNotifier(cfg SlackConfig, logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := &http.Client{Timeout: 15 * time.Second}
	if cfg.WebhookURL != "" {
		return &webhookNotifier{url: cfg.WebhookURL, client: client, logger: logger}
	}
	if cfg.BotToken != "" && cfg.Channel != "" {
		return &botNotifier{
			token:   cfg.BotToken,
			channel: cfg.Channel,
			apiURL:  defaultPostMessageURL,
			client:  client,
			logger:  logger,
		}
	}
	logger.Info("Slack not configured, report stays local")
	return noopNotifier{}
}

// renderMessage joins title and lines into the message text.
func renderMessage(title string, lines []string) string {
	if len(lines) == 0 {
		return title + "\n[info] no changes."
	}
	return title + "\n" + strings.Join(lines, "\n")
}

type noopNotifier struct{}

func (noopNotifier) Post(context.Context, string, []string) error { return nil }

type webhookNotifier struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func (n *webhookNotifier) Post(ctx context.Context, title string, lines []string) error {
	payload, err := json.Marshal(map[string]string{"text": renderMessage(title, lines)})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook: unexpected status %d", resp.StatusCode)
	}
	n.logger.Info("Report posted to Slack webhook", zap.Int("lines", len(lines)))
	return nil
}

type botNotifier struct {
	token   string
	channel string
	apiURL  string
	client  *http.Client
	logger  *zap.Logger
}

func (n *botNotifier) Post(ctx context.Context, title string, lines []string) error {
	for _, chunk := range chunkMessage(renderMessage(title, lines)) {
		if err := n.postChunk(ctx, chunk); err != nil {
			return err
		}
	}
	n.logger.Info("Report posted via Slack bot", zap.String("channel", n.channel), zap.Int("lines", len(lines)))
	return nil
}

func (n *botNotifier) postChunk(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{"channel": n.channel, "text": text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.apiURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.token)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack api: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("slack api: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("slack api: decode response: %w", err)
	}
	if !body.OK {
		return fmt.Errorf("slack api error: %s", body.Error)
	}
	return nil
}

// chunkMessage splits a message on line boundaries so every chunk stays
// under the character limit.
func chunkMessage(text string) []string {
	var chunks []string
	current := ""
	for _, line := range strings.Split(text, "\n") {
		if len(current)+len(line)+1 > messageCharLimit && current != "" {
			chunks = append(chunks, current)
			current = ""
		}
		current += line + "\n"
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}
