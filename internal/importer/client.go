package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client sends CSV files to a remote LiftLog server's import endpoints,
// for machines that have the export files but no database access.
type Client struct {
	serverURL  string
	token      string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the given server, authenticating
// with the given session token.
func NewClient(serverURL, token string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		token:     token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SendCSV POSTs raw CSV bytes to the import endpoint for the given format
// ("strong" or "backup") and returns the number of committed rows. Retries
// up to 3 times with exponential backoff on failure.
func (c *Client) SendCSV(format string, data []byte) (int, error) {
	url := c.serverURL + "/api/v1/import/" + format

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return 0, fmt.Errorf("creating import request: %w", err)
		}
		req.Header.Set("Content-Type", "text/csv")
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			var result struct {
				Committed int `json:"committed"`
			}
			if err := json.Unmarshal(body, &result); err != nil {
				return 0, fmt.Errorf("decoding import response: %w", err)
			}
			return result.Committed, nil
		}

		lastErr = fmt.Errorf("import failed (status %d): %s", resp.StatusCode, body)
		// Client errors won't improve with retries.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			break
		}
	}

	return 0, fmt.Errorf("after retries: %w", lastErr)
}
