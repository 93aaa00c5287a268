// Package anecdoteapi is the JSON over HTTP client for the anecdote service.
package anecdoteapi

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/anecdotes/internal/core/anecdote"
)

const (
	collectionPath = "/anecdotes"
	maxErrorBody   = 512
	userAgent      = "anecdotes-client"
)

var _ anecdote.Service = (*Client)(nil)

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to the anecdote service rooted at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a client for the service at baseURL. A zero timeout leaves the
// underlying http.Client without a deadline.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// List returns every anecdote known to the service.
func (c *Client) List(ctx context.Context) ([]anecdote.Anecdote, error) {
	var out []anecdote.Anecdote
	if err := c.do(ctx, http.MethodGet, collectionPath, nil, &out); err != nil {
		return nil, fmt.Errorf("list anecdotes: %w", err)
	}
	if out == nil {
		out = []anecdote.Anecdote{}
	}
	return out, nil
}

// Get returns a single anecdote by id.
func (c *Client) Get(ctx context.Context, id string) (anecdote.Anecdote, error) {
	if err := anecdote.ValidateID(id); err != nil {
		return anecdote.Anecdote{}, err
	}

	var out anecdote.Anecdote
	if err := c.do(ctx, http.MethodGet, itemPath(id), nil, &out); err != nil {
		return anecdote.Anecdote{}, fmt.Errorf("get anecdote %s: %w", id, err)
	}
	return out, nil
}

// Create submits a new anecdote and returns the service's canonical copy,
// including the assigned identifier.
func (c *Client) Create(ctx context.Context, a anecdote.Anecdote) (anecdote.Anecdote, error) {
	body := struct {
		Content string `json:"content"`
		Votes   int    `json:"votes"`
	}{Content: a.Content, Votes: a.Votes}

	var out anecdote.Anecdote
	if err := c.do(ctx, http.MethodPost, collectionPath, body, &out); err != nil {
		return anecdote.Anecdote{}, fmt.Errorf("create anecdote: %w", err)
	}
	return out, nil
}

// Update replaces the anecdote identified by a.ID with a.
func (c *Client) Update(ctx context.Context, a anecdote.Anecdote) (anecdote.Anecdote, error) {
	if err := anecdote.ValidateID(a.ID.String()); err != nil {
		return anecdote.Anecdote{}, err
	}

	var out anecdote.Anecdote
	if err := c.do(ctx, http.MethodPut, itemPath(a.ID.String()), a, &out); err != nil {
		return anecdote.Anecdote{}, fmt.Errorf("update anecdote %s: %w", a.ID, err)
	}
	return out, nil
}

func itemPath(id string) string {
	return collectionPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Msg("anecdote service request failed")
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Debug().Err(err).Msg("close anecdote service response body")
		}
	}()

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("anecdote service request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
