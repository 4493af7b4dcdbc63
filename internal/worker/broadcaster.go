package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/culinai/chef/internal/httpclient"
)

// HistoryUpdate tells a signed-in user's open pages that a new entry landed
// in their remote history.
type HistoryUpdate struct {
	ItemID       string `json:"item_id"`
	SummaryTitle string `json:"summary_title"`
}

// Broadcaster publishes history updates.
type Broadcaster interface {
	Broadcast(ctx context.Context, userID string, update HistoryUpdate) error
}

// RealtimeBroadcaster sends updates over the Supabase realtime broadcast
// RPC on channel user:<id>:history.
type RealtimeBroadcaster struct {
	supabaseURL string
	serviceKey  string
	httpClient  *http.Client
}

func NewRealtimeBroadcaster(supabaseURL, serviceKey string) *RealtimeBroadcaster {
	return &RealtimeBroadcaster{
		supabaseURL: strings.TrimSuffix(supabaseURL, "/"),
		serviceKey:  serviceKey,
		httpClient:  httpclient.Default,
	}
}

func (b *RealtimeBroadcaster) Broadcast(ctx context.Context, userID string, update HistoryUpdate) error {
	body, err := json.Marshal(map[string]any{
		"channel": fmt.Sprintf("user:%s:history", userID),
		"type":    "broadcast",
		"event":   "history",
		"payload": update,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast payload: %w", err)
	}

	req, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "Supabase"), http.MethodPost,
		b.supabaseURL+"/rest/v1/rpc/broadcast", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.serviceKey)
	req.Header.Set("apikey", b.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to broadcast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("broadcast failed with status %d", resp.StatusCode)
	}
	return nil
}
