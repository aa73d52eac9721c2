// Package client is a thin http wrapper around the gpt-load REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the api root of a local gpt-load instance.
const DefaultBaseURL = "http://localhost:3001/api"

const maxResponseSize = 10 * 1024 * 1024

// Config defines client parameters.
type Config struct {
	BaseURL    string        // api root, DefaultBaseURL if empty
	Timeout    time.Duration // per request, ignored when HTTPClient is set
	HTTPClient *http.Client
}

// Client calls the backend api. No retries, the caller decides what to do on failure.
type Client struct {
	baseURL string
	http    *http.Client
}

// APIError is a failed call: non-2xx http status or non-zero envelope code.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("api error, status %d, code %d: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error, status %d: %s", e.StatusCode, e.Message)
}

// New makes a client.
func New(cfg Config) *Client {
	res := &Client{baseURL: strings.TrimSuffix(cfg.BaseURL, "/"), http: cfg.HTTPClient}
	if res.baseURL == "" {
		res.baseURL = DefaultBaseURL
	}
	if res.http == nil {
		res.http = &http.Client{Timeout: cfg.Timeout}
	}
	return res
}

// BaseURL returns the api root.
func (c *Client) BaseURL() string { return c.baseURL }

// do sends the request and decodes the envelope data into out. Nil out skips decoding,
// absent or null data leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader = http.NoBody
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("make request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%s %s: invalid json response", method, path)
	}
	if code := gjson.GetBytes(data, "code"); code.Exists() && code.Int() != 0 {
		return &APIError{StatusCode: resp.StatusCode, Code: int(code.Int()), Message: gjson.GetBytes(data, "message").String()}
	}

	payload := gjson.GetBytes(data, "data")
	if out == nil || !payload.Exists() || payload.Type == gjson.Null {
		return nil
	}
	if err := json.Unmarshal([]byte(payload.Raw), out); err != nil {
		return fmt.Errorf("decode %s %s data: %w", method, path, err)
	}
	return nil
}

// newAPIError takes the message from the envelope if the body has one, the body text otherwise.
func newAPIError(status int, body []byte) *APIError {
	res := &APIError{StatusCode: status, Message: http.StatusText(status)}
	if gjson.ValidBytes(body) {
		if code := gjson.GetBytes(body, "code"); code.Exists() {
			res.Code = int(code.Int())
		}
		if msg := gjson.GetBytes(body, "message"); msg.Exists() && msg.String() != "" {
			res.Message = msg.String()
		}
		return res
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		res.Message = text
	}
	return res
}
