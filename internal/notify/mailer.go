package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier attempts best-effort delivery of one notice. Implementations make
// exactly one attempt; retrying and queueing belong to the relay, not here.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// RelayMailer delivers notices by posting them to an HTTP mail relay.
type RelayMailer struct {
	url    string
	apiKey string
	from   string
	client *http.Client
}

func NewRelayMailer(url, apiKey, from string, timeout time.Duration) *RelayMailer {
	return &RelayMailer{
		url:    url,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: timeout},
	}
}

type relayMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (m *RelayMailer) Send(ctx context.Context, recipient, subject, body string) error {
	payload, err := json.Marshal(relayMessage{
		From:    m.from,
		To:      recipient,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("Send: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("Send: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("Send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("Send: relay returned status %d", resp.StatusCode)
	}
	return nil
}
