package linear

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type userNode struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active *bool  `json:"active"`
}

func parseUser(n userNode) User {
	user := User{
		ID:     n.ID,
		Name:   n.Name,
		Email:  n.Email,
		Active: true,
	}
	if n.Active != nil {
		user.Active = *n.Active
	}
	return user
}

// ListUsers creates a tool to list users in the organization.
func ListUsers(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_users",
			mcp.WithDescription(t("TOOL_LIST_USERS_DESCRIPTION", "List users in the organization")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_LIST_USERS_USER_TITLE", "List users"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of users to return (default 50)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			limit, err := OptionalIntParamWithDefault(request, "limit", 50)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			data, err := client.Do(ctx,
				"query($first: Int!) { users(first: $first) { nodes { id name email active } } }",
				map[string]any{"first": limit})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				Users struct {
					Nodes []userNode `json:"nodes"`
				} `json:"users"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode users: %w", err)
			}

			users := make([]User, 0, len(out.Users.Nodes))
			for _, n := range out.Users.Nodes {
				users = append(users, parseUser(n))
			}
			return MarshalledTextResult(users), nil
		}
}
