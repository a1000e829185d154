package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestWebhook_Trigger(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var payload webhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		if payload.Event != "vibrate" {
			t.Errorf("expected vibrate event, got %q", payload.Event)
		}
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL)
	wh.Trigger(context.Background())

	if hits.Load() != 1 {
		t.Errorf("expected 1 webhook call, got %d", hits.Load())
	}
}

func TestWebhook_EmptyURLDisabled(t *testing.T) {
	if wh := NewWebhook(""); wh != nil {
		t.Error("expected nil webhook for empty URL")
	}

	// A nil webhook is still safe to trigger.
	var wh *Webhook
	wh.Trigger(context.Background())
}

func TestWebhook_UnreachableIsSilent(t *testing.T) {
	wh := NewWebhook("http://127.0.0.1:1")
	// Must not panic or return anything; failures are fire-and-forget.
	wh.Trigger(context.Background())
}
