package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Webhook forwards vibration triggers to a companion push gateway that
// relays them to the device.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string) *Webhook {
	if url == "" {
		return nil
	}
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type webhookPayload struct {
	Event string `json:"event"`
}

func (w *Webhook) Trigger(ctx context.Context) {
	if w == nil || w.url == "" {
		return
	}

	body, _ := json.Marshal(webhookPayload{Event: "vibrate"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		slog.Debug("haptics webhook unreachable", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		slog.Debug("haptics webhook non-2xx", "status", resp.StatusCode)
	}
}
