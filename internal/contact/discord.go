// Package contact delivers contact form messages to a Discord webhook.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when no webhook URL is set.
var ErrNotConfigured = errors.New("discord webhook URL is not configured")

// Notifier posts messages to a Discord webhook. Delivery is synchronous
// and never retried; a failed delivery is the caller's to report.
type Notifier struct {
	httpClient *http.Client
	webhookURL string
}

// NewNotifier creates a webhook notifier. An empty webhookURL is
// allowed; Send then fails with ErrNotConfigured.
func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		webhookURL: webhookURL,
	}
}

type webhookPayload struct {
	Content string `json:"content"`
}

// Send posts a contact form message to the webhook.
func (n *Notifier) Send(ctx context.Context, message string) error {
	if n.webhookURL == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(webhookPayload{
		Content: "New message from KanaSchool contact form:\n\n" + message,
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %s", resp.Status)
	}

	return nil
}
