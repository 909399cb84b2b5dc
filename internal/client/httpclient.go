package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClientConfig carries per-client transport settings.
type HTTPClientConfig struct {
	Timeout time.Duration
}

// HTTPClient is a thin JSON-over-HTTP helper bound to a single upstream
// endpoint.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPClient creates a client for one upstream endpoint.
func NewHTTPClient(endpoint string, config HTTPClientConfig) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Request describes a single upstream call.
type Request struct {
	Method  string
	Headers map[string]string
	Body    interface{}
}

// DoRequest executes the request against the bound endpoint. The caller owns
// the response body.
func (c *HTTPClient) DoRequest(ctx context.Context, r Request) (*http.Response, error) {
	var body io.Reader
	if r.Body != nil {
		jsonData, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}

	return c.httpClient.Do(req)
}
