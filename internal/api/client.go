// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

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
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tickertalk/tickertalk-tui/internal/model"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is where a locally run backend listens.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the default timeout for API requests. Analyze can
	// legitimately take a while: the backend narrates through several
	// market-data tool calls before answering.
	DefaultTimeout = 90 * time.Second

	// MaxResponseSize caps response bodies to prevent memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// sharedHTTPClient is used by all clients. Connection pooling reduces TCP
// handshake overhead across the frequent small thread-registry calls.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// Error variables for the transport error classes the UI distinguishes.
var (
	// ErrRateLimited indicates the backend signalled quota exhaustion.
	ErrRateLimited = errors.New("rate limited")

	// ErrNoData indicates a snapshot came back without a usable price.
	ErrNoData = errors.New("no data for symbol")

	// ErrUnreachable indicates a transport-level failure (no HTTP response).
	ErrUnreachable = errors.New("backend unreachable")

	// ErrEmptySymbol indicates a snapshot was requested for a blank symbol.
	ErrEmptySymbol = errors.New("empty symbol")
)

// APIError represents any other non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// apiErrorResponse is FastAPI's error envelope.
type apiErrorResponse struct {
	Detail string `json:"detail"`
}

// =============================================================================
// REQUEST / RESPONSE TYPES
// =============================================================================

// analyzeRequest is the body for POST /analyze. ThreadID is a pointer so a
// brand-new conversation serializes as an explicit null thread_id.
type analyzeRequest struct {
	Query    string  `json:"query"`
	ThreadID *string `json:"thread_id"`
}

// AnalyzeResult is the backend's reply to an analyze call. ThreadID is the
// server-assigned thread identifier, also returned for continuations.
type AnalyzeResult struct {
	Response string `json:"response"`
	ThreadID string `json:"thread_id"`
}

// threadHistoryResponse is the body of GET /threads/{id}.
type threadHistoryResponse struct {
	Messages []model.Message `json:"messages"`
}

// snapshotRequest is the body for POST /agent/stock.
type snapshotRequest struct {
	Symbol string `json:"symbol"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the stock-analysis backend. The base URL is fixed at
// construction time from configuration; it is not runtime-mutable.
type Client struct {
	baseURL string
	timeout time.Duration
	log     *logrus.Logger
}

// NewClient creates a client for the default local backend.
func NewClient() *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		log:     logrus.StandardLogger(),
	}
}

// WithBaseURL sets the backend base URL.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// WithLogger sets the logger used for request diagnostics.
func (c *Client) WithLogger(log *logrus.Logger) *Client {
	c.log = log
	return c
}

// BaseURL returns the configured backend location.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// OPERATIONS
// =============================================================================

// ListThreads fetches the authoritative thread list. Callers refresh with
// this after any create or delete rather than patching locally.
func (c *Client) ListThreads(ctx context.Context) ([]model.ThreadSummary, error) {
	body, err := c.do(ctx, http.MethodGet, "/threads", nil)
	if err != nil {
		return nil, err
	}

	var threads []model.ThreadSummary
	if err := json.Unmarshal(body, &threads); err != nil {
		return nil, fmt.Errorf("failed to parse thread list: %w", err)
	}
	return threads, nil
}

// GetThread fetches the full message history for one thread.
func (c *Client) GetThread(ctx context.Context, id string) ([]model.Message, error) {
	body, err := c.do(ctx, http.MethodGet, "/threads/"+id, nil)
	if err != nil {
		return nil, err
	}

	var history threadHistoryResponse
	if err := json.Unmarshal(body, &history); err != nil {
		return nil, fmt.Errorf("failed to parse thread history: %w", err)
	}
	return history.Messages, nil
}

// DeleteThread removes a thread server-side. Irreversible; callers must
// confirm with the user before issuing it.
func (c *Client) DeleteThread(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/threads/"+id, nil)
	return err
}

// Analyze starts or continues a conversation. threadID is empty for a
// brand-new conversation; the returned ThreadID is the id the caller
// should adopt.
func (c *Client) Analyze(ctx context.Context, query, threadID string) (*AnalyzeResult, error) {
	req := analyzeRequest{Query: query}
	if threadID != "" {
		req.ThreadID = &threadID
	}

	body, err := c.do(ctx, http.MethodPost, "/analyze", req)
	if err != nil {
		return nil, err
	}

	var result AnalyzeResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse analyze response: %w", err)
	}
	return &result, nil
}

// StockSnapshot fetches dashboard data for one symbol. A 2xx response
// without a usable price field is classified as ErrNoData.
func (c *Client) StockSnapshot(ctx context.Context, symbol string) (*model.Snapshot, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	body, err := c.do(ctx, http.MethodPost, "/agent/stock", snapshotRequest{Symbol: symbol})
	if err != nil {
		return nil, err
	}

	var snap model.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if !snap.HasPrice() {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}
	return &snap, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// do performs one request and classifies the outcome. A nil payload sends
// no body. No retries: the only recovery path is the user acting again, so
// a transient failure must surface immediately.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := sharedHTTPClient.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).WithError(err).Warn("backend request failed")
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond).String(),
	}).Debug("backend request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(resp.StatusCode, body)
	}
	return body, nil
}

// readResponse reads the body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// classifyStatus converts non-2xx responses into the client's error taxonomy.
func classifyStatus(statusCode int, body []byte) error {
	message := ""
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil {
		message = apiErr.Detail
	}

	switch statusCode {
	case http.StatusTooManyRequests:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrRateLimited, message)
		}
		return ErrRateLimited
	case http.StatusNotFound:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrNoData, message)
		}
		return ErrNoData
	default:
		return &APIError{Status: statusCode, Message: message}
	}
}
