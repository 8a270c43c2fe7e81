// Package graphql is a minimal GraphQL-over-HTTP client.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// Request is a single GraphQL operation.
type Request struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors"`
}

// Doer executes a request and returns the raw data payload.
type Doer interface {
	Do(ctx context.Context, req Request) (json.RawMessage, error)
}

// Options configures a Client.
type Options struct {
	Endpoint   string
	Timeout    time.Duration
	Headers    map[string]string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client posts operations to one endpoint.
type Client struct {
	endpoint string
	timeout  time.Duration
	headers  map[string]string
	http     *http.Client
	log      *zap.Logger
}

// NewClient validates opts and builds a Client.
func NewClient(opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, errors.New("graphql: endpoint is required")
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	headers := make(map[string]string, len(opts.Headers))
	for k, v := range opts.Headers {
		headers[k] = v
	}
	return &Client{
		endpoint: opts.Endpoint,
		timeout:  opts.Timeout,
		headers:  headers,
		http:     hc,
		log:      log,
	}, nil
}

// Endpoint returns the URL operations are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Do posts req and returns its data payload. Every failure is a *QueryError.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	fail := func(kind Kind, err error) error {
		return &QueryError{Operation: req.OperationName, Kind: kind, Err: err}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fail(KindDecode, fmt.Errorf("encode request: %w", err))
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fail(KindTransport, fmt.Errorf("build request: %w", err))
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	log := c.log.With(zap.String("op", req.OperationName), zap.String("request_id", requestID))
	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Warn("graphql request failed", zap.Error(err))
		return nil, fail(KindTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fail(KindTransport, fmt.Errorf("read response: %w", err))
	}
	log.Debug("graphql response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(raw)),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		qe := &QueryError{Operation: req.OperationName, Kind: KindStatus, StatusCode: resp.StatusCode}
		var r response
		if json.Unmarshal(raw, &r) == nil {
			qe.Errors = r.Errors
		}
		return nil, qe
	}

	var r response
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fail(KindDecode, fmt.Errorf("decode response: %w", err))
	}
	if len(r.Errors) > 0 {
		return nil, &QueryError{Operation: req.OperationName, Kind: KindGraphQL, Errors: r.Errors}
	}
	if len(r.Data) == 0 || bytes.Equal(r.Data, []byte("null")) {
		return nil, fail(KindDecode, errors.New("response has no data"))
	}
	return r.Data, nil
}
