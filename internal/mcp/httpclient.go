package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/workout"
)

// HTTPClient implements DataSource by calling the LiftLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL,
// authenticating with the given session token.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

// QuerySets fetches the raw log for the filter's date range and applies the
// remaining filter fields locally. The REST API scopes rows to the token's
// user, so the filter's UserID is ignored. Cursors are not supported in
// remote mode; tools only issue range queries.
func (c *HTTPClient) QuerySets(ctx context.Context, f store.SetFilter, _ string, limit int) (*store.Page, error) {
	params := url.Values{}
	start := f.DateFrom
	if f.Date != "" {
		start = f.Date
	}
	if start == "" {
		start = "0001-01-01"
	}
	end := f.DateTo
	if f.Date != "" {
		end = f.Date
	}
	if end == "" {
		end = "9999-12-31"
	}
	params.Set("start", start)
	params.Set("end", end)

	body, err := c.get(ctx, "/api/v1/analytics/logs", params)
	if err != nil {
		return nil, err
	}

	var sets []workout.LoggedSet
	if err := json.Unmarshal(body, &sets); err != nil {
		return nil, fmt.Errorf("httpclient: decode logs: %w", err)
	}

	filtered := sets[:0]
	for _, s := range sets {
		if f.MuscleGroup != "" && s.MuscleGroup != f.MuscleGroup {
			continue
		}
		if f.Exercise != "" && s.Exercise != f.Exercise {
			continue
		}
		if f.IsWarmup != nil && s.IsWarmup != *f.IsWarmup {
			continue
		}
		filtered = append(filtered, s)
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return &store.Page{Sets: filtered}, nil
}

func (c *HTTPClient) MuscleGroups(ctx context.Context, _ int) ([]string, error) {
	body, err := c.get(ctx, "/api/v1/catalog/muscles", nil)
	if err != nil {
		return nil, err
	}

	var groups []string
	if err := json.Unmarshal(body, &groups); err != nil {
		return nil, fmt.Errorf("httpclient: decode muscle catalog: %w", err)
	}
	return groups, nil
}

func (c *HTTPClient) Exercises(ctx context.Context, _ int, muscleGroup string) ([]string, error) {
	params := url.Values{}
	params.Set("muscle", muscleGroup)

	body, err := c.get(ctx, "/api/v1/catalog/exercises", params)
	if err != nil {
		return nil, err
	}

	var exercises []string
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercise catalog: %w", err)
	}
	return exercises, nil
}

func (c *HTTPClient) GetDataStats(ctx context.Context, _ int) (*store.DataStats, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats store.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode data stats: %w", err)
	}
	return &stats, nil
}
