package contact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Sender delivers one message. Implementations make exactly one attempt.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Client posts messages to a Formspree-style endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a client that gives up on the endpoint after timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Endpoint is where Send posts.
func (c *Client) Endpoint() string { return c.endpoint }

// Send issues a single form-encoded POST. Any non-2xx answer or transport
// error is reported as ErrSubmissionFailed.
func (c *Client) Send(ctx context.Context, msg Message) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(msg.Values().Encode()))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: endpoint returned %s", ErrSubmissionFailed, resp.Status)
	}
	return nil
}
