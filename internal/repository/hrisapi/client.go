package hrisapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrBackend marks any failure talking to the HRIS backend: transport
// errors, non-2xx statuses and undecodable bodies. Callers treat it as a
// recoverable remote failure; local state never advances on it.
var ErrBackend = errors.New("hris backend request failed")

// Client is the HTTP gateway to the backend that owns attendance and
// day-off persistence.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type backendError struct {
	Message string `json:"message"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrBackend, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var be backendError
		msg := ""
		if json.Unmarshal(raw, &be) == nil {
			msg = be.Error.Message
			if msg == "" {
				msg = be.Message
			}
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%w: %s (status %d)", ErrBackend, msg, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrBackend, err)
	}
	return nil
}

// normalizeClock reduces a backend timestamp to "HH:MM". Values that fit
// no known layout are passed through verbatim so the segment builder can
// degrade to its error fallback instead of the gateway guessing.
func normalizeClock(raw string) string {
	if raw == "" {
		return raw
	}
	layouts := []string{"15:04", "15:04:05", time.RFC3339, "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04")
		}
	}
	return raw
}
