// Package rest inserts records through a PostgREST-compatible HTTP API,
// such as the one exposed by a Supabase project.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/onboarding/internal/middleware"
	"github.com/mcoot/onboarding/internal/model"
	"github.com/mcoot/onboarding/internal/storage"
)

// Config holds the REST endpoint settings
type Config struct {
	// URL is the project base URL, e.g. https://xyz.supabase.co
	URL string
	// APIKey is sent as both the apikey header and the bearer token
	APIKey  string
	Timeout time.Duration

	// Logger receives one line per request (optional)
	Logger *slog.Logger
	// Transport is the underlying round tripper; nil means http.DefaultTransport
	Transport http.RoundTripper
}

// DefaultConfig returns default REST configuration
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
	}
}

// Client is a PostgREST-backed implementation of the storage interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Ensure Client implements the interface
var _ storage.Store = (*Client)(nil)

// errorBody is the PostgREST error payload
type errorBody struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details"`
	Hint    *string `json:"hint"`
}

// New creates a new REST store client
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("rest store: URL is required")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("rest store: invalid URL: %w", err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: middleware.Chain(cfg.Transport,
				middleware.Recovery(logger),
				middleware.Logging(logger),
			),
		},
	}, nil
}

// Insert posts the record to /rest/v1/{table}
func (c *Client) Insert(ctx context.Context, table string, record *model.RegistrationRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	endpoint := c.baseURL + "/rest/v1/" + url.PathEscape(table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", "return=minimal")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &storage.RemoteError{Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &storage.RemoteError{Message: err.Error(), Err: err}
	}

	return decodeError(resp.StatusCode, respBody)
}

// decodeError converts a non-2xx response into a RemoteError
func decodeError(status int, body []byte) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && (eb.Message != "" || eb.Code != "") {
		remote := &storage.RemoteError{
			Code:    eb.Code,
			Message: eb.Message,
			Err:     fmt.Errorf("HTTP %d", status),
		}
		if eb.Details != nil {
			remote.Details = *eb.Details
		}
		if eb.Code == storage.CodeUniqueViolation {
			remote.Err = fmt.Errorf("HTTP %d: %w", status, model.ErrDuplicateUser)
		}
		return remote
	}

	return &storage.RemoteError{
		Code:    fmt.Sprintf("HTTP %d", status),
		Message: strings.TrimSpace(string(body)),
		Err:     fmt.Errorf("HTTP %d", status),
	}
}
