// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the financial insights backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/finsight-tui/internal/stocks"
)

// DefaultBaseURL is the hosted backend.
const DefaultBaseURL = "https://llm-financial-insights-bot-production.up.railway.app"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeStatus
	ErrTypeInvalidResponse
)

// String returns the category name used in log fields.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeStatus:
		return "status"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// Sentinel errors for easy checking.
var (
	ErrTimeout         = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrMissingResponse = &ClientError{Type: ErrTypeInvalidResponse, Message: "reply has no response text"}
)

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the backend's /stocks and /chat endpoints. Both URLs are
// derived from one base URL.
//
// The Client is safe for concurrent use; the base URL may be swapped while
// requests are running and takes effect on the next call.
//
// Example:
//
//	client := api.NewClient(cfg.API.BaseURL, logger)
//	records, err := client.FetchStocks(ctx)
//	reply, err := client.SendChat(ctx, "How is AAPL doing?")
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for baseURL. Requests carry no timeout beyond
// the transport defaults and the caller's context.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL replaces the base URL for subsequent requests.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

func (c *Client) endpoint(path string) string {
	return c.BaseURL() + path
}

// =============================================================================
// STOCKS
// =============================================================================

// FetchStocks retrieves the current stock snapshot. Any non-2xx status,
// transport failure, or malformed body is returned as a *ClientError.
func (c *Client) FetchStocks(ctx context.Context) ([]stocks.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/stocks"), nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, "failed to fetch stock data")
	if err != nil {
		return nil, err
	}

	records, err := stocks.DecodeList(body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode stock data", Cause: err}
	}
	return records, nil
}

// =============================================================================
// CHAT
// =============================================================================

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	Message string `json:"message"`
}

// chatReply mirrors the POST /chat response with a raw field so a missing or
// non-string response can be told apart from an empty one.
type chatReply struct {
	Response json.RawMessage `json:"response"`
}

// SendChat posts one message and returns the assistant's reply text.
func (c *Client) SendChat(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(ChatRequest{Message: message})
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/chat"), bytes.NewReader(payload))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, "chat request failed")
	if err != nil {
		return "", err
	}

	var reply chatReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	raw := bytes.TrimSpace(reply.Response)
	if len(raw) == 0 || raw[0] != '"' {
		return "", ErrMissingResponse
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return text, nil
}

// do executes req and returns the body of a 2xx response.
func (c *Client) do(req *http.Request, failure string) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: failure, Cause: err}
	}
	defer drainAndClose(resp.Body)

	c.logger.Debug("backend response",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ClientError{
			Type:       ErrTypeStatus,
			Message:    fmt.Sprintf("%s: %s", failure, resp.Status),
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to read response", Cause: err}
	}
	return body, nil
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsStatus reports whether err is a non-2xx reply with the given status code.
// A code of 0 matches any status failure.
func IsStatus(err error, code int) bool {
	var clientErr *ClientError
	if !errors.As(err, &clientErr) || clientErr.Type != ErrTypeStatus {
		return false
	}
	return code == 0 || clientErr.StatusCode == code
}

// Category returns the error category of err, or ErrTypeUnknown.
func Category(err error) ErrorType {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type
	}
	return ErrTypeUnknown
}

// Helper to drain response body
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
