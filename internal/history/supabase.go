package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/culinai/chef/internal/httpclient"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/recipe"
)

// SupabaseRemote talks to the recipe_history table through the Supabase
// REST API with the service role key.
type SupabaseRemote struct {
	supabaseURL string
	serviceKey  string
	httpClient  *http.Client
}

func NewSupabaseRemote(supabaseURL, serviceKey string) *SupabaseRemote {
	return &SupabaseRemote{
		supabaseURL: strings.TrimSuffix(supabaseURL, "/"),
		serviceKey:  serviceKey,
		httpClient:  httpclient.Default,
	}
}

type historyRow struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	Language     string       `json:"language"`
	SummaryTitle string       `json:"summary_title"`
	Recipes      recipe.Batch `json:"recipes"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (c *SupabaseRemote) newRequest(ctx context.Context, method, rawURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "Supabase"), method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	return req, nil
}

func (c *SupabaseRemote) Insert(ctx context.Context, userID string, item Item) error {
	data, err := json.Marshal([]historyRow{{
		ID:           item.ID,
		UserID:       userID,
		Language:     string(item.Language),
		SummaryTitle: item.SummaryTitle,
		Recipes:      item.Recipes,
		CreatedAt:    item.Time().UTC(),
	}})
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.supabaseURL+"/rest/v1/recipe_history", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to insert history (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *SupabaseRemote) Recent(ctx context.Context, userID string, limit int) ([]Item, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("user_id", "eq."+userID)
	query.Set("order", "created_at.desc")
	query.Set("limit", strconv.Itoa(limit))

	req, err := c.newRequest(ctx, http.MethodGet, c.supabaseURL+"/rest/v1/recipe_history?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to list history (status %d): %s", resp.StatusCode, string(body))
	}

	var rows []historyRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{
			ID:           row.ID,
			Timestamp:    row.CreatedAt.UnixMilli(),
			Language:     i18n.Language(row.Language),
			Recipes:      row.Recipes,
			SummaryTitle: row.SummaryTitle,
		})
	}
	return items, nil
}
