package linear

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GetMe creates a tool to get the authenticated Linear user.
func GetMe(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_me",
			mcp.WithDescription(t("TOOL_GET_ME_DESCRIPTION", "Get the authenticated user. Use this when a request includes \"me\", \"my\" or needs the caller's identity to build other tool calls.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_GET_ME_USER_TITLE", "Get my user profile"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
		),
		func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			data, err := client.Do(ctx, "query { viewer { id name email } }", nil)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				Viewer struct {
					ID    string `json:"id"`
					Name  string `json:"name"`
					Email string `json:"email"`
				} `json:"viewer"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode viewer: %w", err)
			}

			user := User{
				ID:     out.Viewer.ID,
				Name:   out.Viewer.Name,
				Email:  out.Viewer.Email,
				Active: true,
			}
			return MarshalledTextResult(user), nil
		}
}
