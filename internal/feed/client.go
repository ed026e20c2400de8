// Package feed fetches and decodes the public transit JSON feeds
package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client performs authenticated GETs against the public transit feeds.
type Client struct {
	apiKey string
	client *http.Client
}

// NewClient creates a feed client. The API key is optional; when set it
// is sent as an x-api-key header on every request.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves url and returns the decoded record list. A single GET
// is issued with no retry; any transport error or non-2xx status is a
// fetch failure. Extra headers override the defaults.
func (c *Client) Fetch(url string, extraHeaders map[string]string) ([]json.RawMessage, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading feed response: %w", err)
	}

	return decodeRecords(body)
}

// decodeRecords handles the feed envelope variants: a bare JSON array,
// an object wrapping the list in "data" or "results", or an object with
// neither, which decodes to an empty list.
func decodeRecords(body []byte) ([]json.RawMessage, error) {
	var direct []json.RawMessage
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct, nil
	}

	var env struct {
		Data    []json.RawMessage `json:"data"`
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decoding feed body: %w", err)
	}
	if env.Data != nil {
		return env.Data, nil
	}
	if env.Results != nil {
		return env.Results, nil
	}
	return nil, nil
}
