// Package supabase implements the datasource contract against a hosted
// Supabase project: GoTrue for authentication and PostgREST for row storage.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
	"github.com/vecopay/vecopay/internal/infrastructure/metrics"
)

const backendLabel = "supabase"

// Config holds the connection settings for one Supabase project.
type Config struct {
	BaseURL         string
	AnonKey         string
	SessionFile     string
	Timeout         time.Duration
	RetryMaxElapsed time.Duration
}

// Client talks to one Supabase project. It satisfies both datasource.Auth
// and datasource.Rows.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	log     zerolog.Logger
	metrics *metrics.Metrics

	retryMaxElapsed time.Duration

	sessions *sessionFile

	mu      sync.Mutex
	session *session

	changes chan *datasource.UserRecord
}

// NewClient builds a client. The persisted session, if any, is loaded on the
// first call that needs it.
func NewClient(cfg Config, log zerolog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:         cfg.BaseURL,
		anonKey:         cfg.AnonKey,
		http:            &http.Client{Timeout: cfg.Timeout},
		log:             log.With().Str("backend", backendLabel).Logger(),
		metrics:         m,
		retryMaxElapsed: cfg.RetryMaxElapsed,
		sessions:        newSessionFile(cfg.SessionFile),
		changes:         make(chan *datasource.UserRecord, 8),
	}
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: status %d: %s", e.Status, e.Message)
}

// errorBody covers the error shapes GoTrue and PostgREST return.
type errorBody struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

func (b errorBody) text() string {
	switch {
	case b.Message != "":
		return b.Message
	case b.Msg != "":
		return b.Msg
	default:
		return b.ErrorDescription
	}
}

// do performs one API call with exponential backoff on network errors and
// 5xx responses. 4xx responses are permanent. out, when non-nil, receives
// the decoded response body.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any, extra http.Header) error {
	start := time.Now()
	c.metrics.BackendCalls.WithLabelValues(backendLabel, op).Inc()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("supabase: encode %s: %w", op, err)
		}
	}

	requestID := ulid.Make().String()

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.retryMaxElapsed

	err := backoff.Retry(func() error {
		return c.doOnce(ctx, method, path, query, payload, out, extra, requestID)
	}, backoff.WithContext(b, ctx))

	c.metrics.BackendDuration.WithLabelValues(backendLabel, op).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.BackendErrors.WithLabelValues(backendLabel, op).Inc()
		c.log.Warn().
			Err(err).
			Str("operation", op).
			Str("request_id", requestID).
			Msg("backend call failed")
	}

	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, payload []byte, out any, extra http.Header, requestID string) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return backoff.Permanent(err)
	}

	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.bearerToken())
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range extra {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return &APIError{Status: resp.StatusCode, Message: resp.Status}
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return backoff.Permanent(&APIError{Status: resp.StatusCode, Message: eb.text()})
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("supabase: decode response: %w", err))
		}
	}

	return nil
}

// bearerToken returns the session access token when signed in, the anon key
// otherwise. The persisted session is loaded here so that a row call made
// before any auth call still carries the user's token.
func (c *Client) bearerToken() string {
	s, err := c.loadSession()
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to load persisted session")
		return c.anonKey
	}
	if s != nil && s.AccessToken != "" {
		return s.AccessToken
	}
	return c.anonKey
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
