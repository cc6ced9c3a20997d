// Package api is the only place that talks HTTP to the notes server.
//
// Gateway attaches the current bearer token to every request, applies the
// configured base URL and timeout, and turns non-2xx responses into *Error.
// Client layers the typed auth, profile and notes endpoints on top of it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/bnema/notevault-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	maxResponseBytes      = 1 << 20
	defaultRequestTimeout = 30 * time.Second
	requestIDHeader       = "X-Request-ID"
)

type Config struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	UserAgent      string
	Logger         zerolog.Logger
}

type Gateway struct {
	baseURL        string
	client         *http.Client
	requestTimeout time.Duration
	userAgent      string
	tokens         ports.TokenSource
	log            zerolog.Logger
	newRequestID   func() string
}

func NewGateway(cfg Config, tokens ports.TokenSource) (*Gateway, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Gateway{
		baseURL:        baseURL,
		client:         client,
		requestTimeout: timeout,
		userAgent:      cfg.UserAgent,
		tokens:         tokens,
		log:            cfg.Logger,
		newRequestID:   func() string { return uuid.NewString() },
	}, nil
}

// Do sends body (JSON encoded, nil for none) to path and decodes a 2xx
// response into out when out is non-nil and the body is not empty.
func (g *Gateway) Do(ctx context.Context, method, path string, body any, out any) error {
	requestCtx, cancel := g.requestContext(ctx)
	defer cancel()

	req, err := g.newRequest(requestCtx, method, path, body)
	if err != nil {
		return err
	}

	requestID := req.Header.Get(requestIDHeader)
	logger := g.log.With().Str("method", method).Str("path", path).Str("request_id", requestID).Logger()
	started := time.Now()
	logger.Debug().Bool("bearer", req.Header.Get("Authorization") != "").Msg("sending request")

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Debug().Err(err).Dur("elapsed", time.Since(started)).Msg("request failed")
		return &Error{Method: method, Path: path, Err: fmt.Errorf("perform request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Method: method, Path: path, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	logger.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(started)).Msg("received response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newStatusError(method, path, resp.StatusCode, payload)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return nil
}

func (g *Gateway) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}
	req.Header.Set(requestIDHeader, g.newRequestID())

	// Read on every call: a login or logout between two requests must be visible.
	if g.tokens != nil {
		if token := g.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return req, nil
}

func (g *Gateway) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, g.requestTimeout)
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("api base url is required")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	return strings.TrimRight(parsed.String(), "/"), nil
}

// Error is a failed round trip. Status is 0 when no response was received.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

var _ ports.APIError = (*Error)(nil)

func newStatusError(method, path string, status int, payload []byte) *Error {
	apiErr := &Error{
		Method:  method,
		Path:    path,
		Status:  status,
		Message: extractMessage(payload),
	}
	if status == http.StatusUnauthorized {
		apiErr.Err = domain.ErrUnauthorized
	}

	return apiErr
}

func (e *Error) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	return e.Status
}

func (e *Error) ServerMessage() string {
	return e.Message
}

func extractMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}

	return strings.TrimSpace(body.Message)
}
