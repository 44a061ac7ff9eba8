package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
)

// ErrSubmitting is returned while a previous Submit is still pending.
var ErrSubmitting = errors.New("contact: a submission is already in flight")

// Client posts messages to a contact endpoint, one at a time. There is no
// queue and no retry.
type Client struct {
	endpoint   string
	http       *http.Client
	submitting atomic.Bool
}

func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

// Submitting reports whether a request is pending.
func (c *Client) Submitting() bool { return c.submitting.Load() }

// Submit sends m and waits for the answer. A rejected submission comes back
// as a *FriendlyError carrying the server's code.
func (c *Client) Submit(ctx context.Context, m Message) error {
	if !c.submitting.CompareAndSwap(false, true) {
		return ErrSubmitting
	}
	defer c.submitting.Store(false)

	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode contact message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build contact request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post contact message: %w", err)
	}
	defer resp.Body.Close()

	var out Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return fmt.Errorf("malformed contact response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !out.OK {
		return &FriendlyError{Code: out.Code, Message: out.Error, Status: resp.StatusCode}
	}
	return nil
}
