package stlc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stlcctl/pkg/logging"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	clientSubsystem = "STLCClient"

	// ChatPath is the endpoint path of the generation service.
	ChatPath = "/chat"

	// RequestIDHeader carries the per-submission id.
	RequestIDHeader = "X-Request-ID"
)

// Client talks to the generation service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of the default http.Client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		userAgent:  "stlcctl",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Generate performs a single POST of req to the chat endpoint. It never
// retries.
func (c *Client) Generate(ctx context.Context, req SubmissionRequest) (ResultBundle, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return ResultBundle{}, fmt.Errorf("failed to encode submission: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ChatPath, bytes.NewReader(body))
	if err != nil {
		return ResultBundle{}, &TransportError{Err: err}
	}
	requestID := uuid.New().String()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(RequestIDHeader, requestID)

	logging.Info(clientSubsystem, "Submitting STLC request %s to %s", requestID, c.baseURL)
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logging.Error(clientSubsystem, err, "STLC request %s got no response", requestID)
		return ResultBundle{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return ResultBundle{}, &TransportError{Err: err}
	}
	logging.Debug(clientSubsystem, "STLC request %s answered %d in %s (%d bytes)",
		requestID, resp.StatusCode, time.Since(start).Round(time.Millisecond), len(payload))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ResultBundle{}, &ServiceRejectedError{
			StatusCode: resp.StatusCode,
			Reason:     rejectionReason(payload),
		}
	}

	if !gjson.ValidBytes(payload) {
		return ResultBundle{}, &MalformedResponseError{Err: fmt.Errorf("body is not valid JSON")}
	}
	response := gjson.GetBytes(payload, "response")
	if !response.Exists() || response.Type == gjson.Null {
		return ResultBundle{}, nil
	}
	return NewResultBundle([]byte(response.Raw)), nil
}

// rejectionReason extracts the "detail" text of an error body, falling back
// to DefaultFailureReason.
func rejectionReason(payload []byte) string {
	if !gjson.ValidBytes(payload) {
		return DefaultFailureReason
	}
	detail := gjson.GetBytes(payload, "detail")
	if detail.Type != gjson.String || detail.String() == "" {
		return DefaultFailureReason
	}
	return detail.String()
}
