package enrichment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// FailureKind classifies a failed enrichment request
type FailureKind string

const (
	KindConnection FailureKind = "connection"
	KindTimeout    FailureKind = "timeout"
	KindStatus     FailureKind = "status"
)

// RequestError is a typed failure from the enrichment endpoint. StatusCode
// is set only for KindStatus.
type RequestError struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("enrichment request failed: HTTP %d", e.StatusCode)
	case KindTimeout:
		return fmt.Sprintf("enrichment request timed out: %v", e.Err)
	default:
		return fmt.Sprintf("enrichment request failed: %v", e.Err)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Client sends stripped events to the enrichment endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a new enrichment client with a bounded per-request timeout
func NewClient(endpoint string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enrich POSTs one stripped event payload and returns the response body.
// Each event is attempted exactly once; failures come back as *RequestError
// so the caller can classify them without retrying.
func (c *Client) Enrich(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &RequestError{Kind: KindConnection, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Kind: classify(err), Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Warn("Failed to close response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Kind: classify(err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{Kind: KindStatus, StatusCode: resp.StatusCode}
	}

	return body, nil
}

// classify separates timeouts from plain connection failures
func classify(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindConnection
}
