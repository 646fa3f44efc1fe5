// Package remote syncs the local ledgers with an optional stats
// server. The wire format is a single payload holding both ledgers'
// snapshots plus a server timestamp; conflicts resolve by last write
// wins. Everything the server sends is schema-validated before it can
// touch local state.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abhisek/mathforge/internal/progress"
	"github.com/abhisek/mathforge/internal/treasury"
)

// Payload is the unit of sync: both ledgers plus the time of the last
// write, as reported by whoever wrote it.
type Payload struct {
	User      string            `json:"user"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Stats     progress.Snapshot `json:"stats"`
	Treasury  treasury.Snapshot `json:"treasury"`
}

// Client fetches and stores payloads for a user.
type Client interface {
	FetchStats(ctx context.Context, user string) (*Payload, error)
	UpsertStats(ctx context.Context, payload *Payload) error
}

const defaultTimeout = 10 * time.Second

// HTTPClient talks to a stats server over its JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the given base URL, e.g.
// "https://sync.example.com". An optional *http.Client overrides the
// default transport, mainly for tests.
func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *HTTPClient) statsURL(user string) string {
	return fmt.Sprintf("%s/v1/stats/%s", c.baseURL, url.PathEscape(user))
}

// FetchStats retrieves the user's payload. Returns ErrNotFound when
// the server has never seen the user.
func (c *HTTPClient) FetchStats(ctx context.Context, user string) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statsURL(user), nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ErrUnavailable{Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &ErrUnavailable{Op: "fetch", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &ErrUnavailable{Op: "fetch", Err: err}
	}
	if err := validatePayload(body); err != nil {
		return nil, err
	}

	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, &ErrInvalidPayload{Err: err}
	}
	return &p, nil
}

// UpsertStats stores the payload under its user.
func (c *HTTPClient) UpsertStats(ctx context.Context, payload *Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.statsURL(payload.User), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &ErrUnavailable{Op: "upsert", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ErrUnavailable{Op: "upsert", StatusCode: resp.StatusCode}
	}
	return nil
}

// Noop is the client used when no sync endpoint is configured. Fetch
// reports nothing stored; upserts vanish.
type Noop struct{}

func (Noop) FetchStats(ctx context.Context, user string) (*Payload, error) {
	return nil, ErrNotFound
}

func (Noop) UpsertStats(ctx context.Context, payload *Payload) error {
	return nil
}
