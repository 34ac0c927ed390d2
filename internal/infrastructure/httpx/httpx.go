package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Client calls the projects JSON API. Server errors and transport failures are
// retried for requests that are safe to repeat.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	UserID  string
}

// StatusError is a non-2xx answer decoded from the API error envelope.
type StatusError struct {
	Status  int    `json:"code"`
	Message string `json:"message"`
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d: %s", e.Status, e.Message) }

// DoJSON sends body as JSON and decodes a 2xx response into out when out is non-nil.
func (c *Client) DoJSON(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
	}
	if c.HTTP == nil {
		c.HTTP = http.DefaultClient
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = 3 * time.Second

	retryable := method != http.MethodPost || headers["X-Idempotency-Key"] != ""
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.UserID != "" {
			req.Header.Set("X-User-ID", c.UserID)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := c.HTTP.Do(req)
		if err != nil {
			if !retryable {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			serr := decodeError(resp)
			if resp.StatusCode >= 500 && retryable {
				return serr
			}
			return backoff.Permanent(serr)
		}
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return nil
	}
	return backoff.Retry(op, backoff.WithContext(exp, ctx))
}

func decodeError(resp *http.Response) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	serr := &StatusError{}
	if err := json.Unmarshal(b, serr); err != nil || serr.Message == "" {
		serr.Message = string(bytes.TrimSpace(b))
	}
	serr.Status = resp.StatusCode
	return serr
}
