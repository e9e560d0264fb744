// Package backend talks to the generate-response endpoint.
package backend

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

	"github.com/google/uuid"
)

const (
	DefaultEndpoint = "http://localhost:8000/generate-response"

	// RequestIDHeader carries the id of the user message being answered.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 4 << 20
)

// Querier sends one query and waits for the complete reply.
type Querier interface {
	SendQuery(ctx context.Context, query string) (string, error)
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Response *string `json:"response"`
}

type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// Client is the HTTP implementation of Querier.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, httpClient *http.Client) (*Client, error) {
	if err := ValidateEndpoint(endpoint); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}, nil
}

// ValidateEndpoint checks that endpoint is an absolute http(s) URL.
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: missing host", endpoint)
	}
	return nil
}

func (c *Client) Endpoint() string { return c.endpoint }

// SendQuery posts query to the endpoint and returns the reply text
// unparsed. Any failure is reported as *RequestFailed.
func (c *Client) SendQuery(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", c.fail(0, "", ErrEmptyQuery)
	}

	body, err := json.Marshal(queryRequest{Query: query})
	if err != nil {
		return "", c.fail(0, "", fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", c.fail(0, "", fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, RequestID(ctx))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.fail(0, "", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", c.fail(resp.StatusCode, "", fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.fail(resp.StatusCode, errorDetail(data), fmt.Errorf("unexpected status %s", resp.Status))
	}

	var out queryResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", c.fail(resp.StatusCode, "", fmt.Errorf("decode response: %w", err))
	}
	if out.Response == nil {
		return "", c.fail(resp.StatusCode, "", errors.New("decode response: missing response field"))
	}
	return *out.Response, nil
}

func (c *Client) fail(status int, detail string, err error) *RequestFailed {
	return &RequestFailed{
		Endpoint:   c.endpoint,
		StatusCode: status,
		Detail:     detail,
		Err:        err,
	}
}

// errorDetail extracts the "detail" field of an error body. String details
// are returned as is, structured ones in compact JSON.
func errorDetail(data []byte) string {
	var body errorResponse
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, body.Detail); err != nil {
		return ""
	}
	return compact.String()
}

type requestIDKey struct{}

// WithRequestID attaches the id sent in the X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id attached to ctx, or a fresh one.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
