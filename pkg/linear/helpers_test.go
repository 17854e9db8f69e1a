package linear

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/linearmcp/linear-mcp-server/internal/gqlmock"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubGetClientFn(client *Client) GetClientFn {
	return func(context.Context) (*Client, error) {
		return client, nil
	}
}

func stubGetClientFnErr(msg string) GetClientFn {
	return func(context.Context) (*Client, error) {
		return nil, errors.New(msg)
	}
}

// mockedClient builds a client whose transport only answers the given
// matchers. Anything else comes back as an HTTP 400.
func mockedClient(ms ...*gqlmock.Matcher) *Client {
	return NewClient("lin_api_test", WithHTTPClient(gqlmock.NewMockedHTTPClient(ms...)))
}

type erroringRoundTripper struct {
	err error
}

func (rt erroringRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, rt.err
}

func createMCPRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func getTextResult(t *testing.T, result *mcp.CallToolResult) mcp.TextContent {
	t.Helper()
	assert.NotNil(t, result)
	require.Len(t, result.Content, 1)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return textContent
}
