package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RelaySender delivers messages through an HTTP mail-relay API.
type RelaySender struct {
	url    string
	token  string
	client *http.Client
}

// NewRelaySender creates a RelaySender posting to the given endpoint.
func NewRelaySender(url, token string) *RelaySender {
	return &RelaySender{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

// relayPayload is the JSON body expected by the relay endpoint.
type relayPayload struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	TextBody string `json:"text"`
	HTMLBody string `json:"html,omitempty"`
}

// Send posts the message to the relay API. Non-2xx responses are
// reported with the status and a snippet of the response body.
func (s *RelaySender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(relayPayload{
		From:     msg.From,
		To:       msg.To,
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
		HTMLBody: msg.HTMLBody,
	})
	if err != nil {
		return fmt.Errorf("marshal relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send relay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("relay rejected message, status %d: %s", resp.StatusCode, body)
	}
	return nil
}
