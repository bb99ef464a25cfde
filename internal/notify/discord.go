// Package notify posts announcements to a Discord webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Discord sends messages to a single configured webhook URL. The zero-value
// URL disables sending; callers can stay oblivious via Announce.
type Discord struct {
	webhookURL string
	client     *http.Client
	logger     *slog.Logger
}

func NewDiscord(webhookURL string, client *http.Client, logger *slog.Logger) *Discord {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Discord{webhookURL: webhookURL, client: client, logger: logger}
}

// Enabled reports whether a webhook URL is configured.
func (d *Discord) Enabled() bool {
	return d.webhookURL != ""
}

// Send posts content to the webhook and returns the upstream status code.
func (d *Discord) Send(ctx context.Context, content string) (int, error) {
	if !d.Enabled() {
		return 0, fmt.Errorf("discord webhook is not configured")
	}

	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return res.StatusCode, fmt.Errorf("webhook returned status %d", res.StatusCode)
	}

	return res.StatusCode, nil
}

// Announce is the best-effort variant: failures are logged, never returned,
// so a broken webhook cannot fail the request that triggered it.
func (d *Discord) Announce(ctx context.Context, content string) {
	if !d.Enabled() {
		return
	}
	if _, err := d.Send(ctx, content); err != nil {
		d.logger.Warn("discord announce failed", slog.Any("err", err))
	}
}
