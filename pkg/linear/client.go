package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIBaseURL is the public Linear API host.
const DefaultAPIBaseURL = "https://api.linear.app"

const defaultUserAgent = "linear-mcp-server"
const defaultTimeout = 30 * time.Second

// TokenProvider returns the current Linear credential. It is called on
// every request, so implementations should be cheap.
type TokenProvider func() string

// Client issues GraphQL requests against a single Linear endpoint. It is
// the only suspension point of every tool: one POST per Do call, no
// retries, no caching, no shared mutable state beyond configuration, so a
// Client is safe for concurrent use.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	userAgent     string
	token         string
	tokenProvider TokenProvider
	bearer        bool
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API host, e.g. for a mock endpoint in tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the HTTP client, e.g. to add a logging transport.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithBearerToken marks the credential as an OAuth access token, sent as
// "Bearer <token>". Personal API keys are sent bare, which is the default.
func WithBearerToken() ClientOption {
	return func(c *Client) {
		c.bearer = true
	}
}

// WithTokenProvider supplies the credential dynamically on each request,
// allowing token refresh without rebuilding the client.
func WithTokenProvider(provider TokenProvider) ClientOption {
	return func(c *Client) {
		c.tokenProvider = provider
	}
}

// NewClient creates a client authenticating with the given token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultAPIBaseURL,
		userAgent: defaultUserAgent,
		token:     token,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return c
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Do executes one GraphQL request and returns the raw data object.
// Failures are classified: a failed round trip returns *TransportError, an
// HTTP status >= 400 or a GraphQL errors array (even on 2xx) returns
// *APIError. Caller values travel exclusively through the variables map,
// never interpolated into the query text.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	if variables == nil {
		variables = map[string]any{}
	}
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	token := c.token
	if c.tokenProvider != nil {
		token = c.tokenProvider()
	}
	if c.bearer {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result graphQLResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, &APIError{StatusCode: resp.StatusCode, Errors: result.Errors}
	}
	return result.Data, nil
}
