package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender delivers one completion event to its destination.
type Sender interface {
	Send(ctx context.Context, event CompletionEvent) error
}

// WebhookSender posts completion events as JSON to a configured endpoint.
type WebhookSender struct {
	url    string
	client *http.Client
}

// NewWebhookSender creates a sender posting to the given URL.
func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type webhookPayload struct {
	Event       string    `json:"event"`
	ActorID     string    `json:"actor_id"`
	WorkOrderID string    `json:"work_order_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Send posts the event. Non-2xx responses are reported as errors so the
// relay can retry the event later.
func (s *WebhookSender) Send(ctx context.Context, event CompletionEvent) error {
	payload := webhookPayload{
		Event:       "assignment.completed",
		ActorID:     event.ActorID.String(),
		WorkOrderID: event.WorkOrderID.String(),
		OccurredAt:  event.OccurredAt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification webhook returned %s", resp.Status)
	}

	return nil
}
