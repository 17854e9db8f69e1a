package linear

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ListComments creates a tool to list the comments on an issue.
func ListComments(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_comments",
			mcp.WithDescription(t("TOOL_LIST_COMMENTS_DESCRIPTION", "List comments on an issue")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_LIST_COMMENTS_USER_TITLE", "List comments"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithString("identifier",
				mcp.Required(),
				mcp.Description("Issue identifier, e.g. ENG-123"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of comments to return (default 50)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			identifier, err := RequiredParam[string](request, "identifier")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			limit, err := OptionalIntParamWithDefault(request, "limit", 50)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			issueID, err := resolveIssueID(ctx, client, identifier)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			query := fmt.Sprintf("query($id: ID!, $first: Int!) { issue(id: $id) { comments(first: $first) { nodes { %s } } } }", commentFields)
			data, err := client.Do(ctx, query, map[string]any{"id": issueID, "first": limit})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				Issue struct {
					Comments struct {
						Nodes []commentNode `json:"nodes"`
					} `json:"comments"`
				} `json:"issue"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode comments: %w", err)
			}

			comments := make([]Comment, 0, len(out.Issue.Comments.Nodes))
			for _, n := range out.Issue.Comments.Nodes {
				comments = append(comments, parseComment(n))
			}
			return MarshalledTextResult(comments), nil
		}
}

// CreateComment creates a tool to add a comment to an issue.
func CreateComment(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_comment",
			mcp.WithDescription(t("TOOL_CREATE_COMMENT_DESCRIPTION", "Add a comment to an issue")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_CREATE_COMMENT_USER_TITLE", "Create comment"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("identifier",
				mcp.Required(),
				mcp.Description("Issue identifier, e.g. ENG-123"),
			),
			mcp.WithString("body",
				mcp.Required(),
				mcp.Description("Comment body (markdown)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			identifier, err := RequiredParam[string](request, "identifier")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			body, err := RequiredParam[string](request, "body")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			issueID, err := resolveIssueID(ctx, client, identifier)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			mutation := fmt.Sprintf("mutation($input: CommentCreateInput!) { commentCreate(input: $input) { success comment { %s } } }", commentFields)
			data, err := client.Do(ctx, mutation, map[string]any{
				"input": map[string]any{"issueId": issueID, "body": body},
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				CommentCreate struct {
					Success bool        `json:"success"`
					Comment commentNode `json:"comment"`
				} `json:"commentCreate"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode commentCreate: %w", err)
			}
			if !out.CommentCreate.Success {
				opErr := &OperationFailedError{Op: "commentCreate"}
				return mcp.NewToolResultError(opErr.Error()), nil
			}
			comment := parseComment(out.CommentCreate.Comment)
			return MarshalledTextResult(comment), nil
		}
}

// UpdateComment creates a tool to replace a comment's body.
func UpdateComment(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("update_comment",
			mcp.WithDescription(t("TOOL_UPDATE_COMMENT_DESCRIPTION", "Update a comment's body")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_UPDATE_COMMENT_USER_TITLE", "Update comment"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("comment_id",
				mcp.Required(),
				mcp.Description("Comment ID"),
			),
			mcp.WithString("body",
				mcp.Required(),
				mcp.Description("New comment body (markdown)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var params struct {
				CommentID string `mapstructure:"comment_id"`
				Body      string `mapstructure:"body"`
			}
			if err := mapstructure.Decode(request.GetArguments(), &params); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if params.CommentID == "" {
				return mcp.NewToolResultError("missing required parameter: comment_id"), nil
			}
			if params.Body == "" {
				return mcp.NewToolResultError("missing required parameter: body"), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			mutation := fmt.Sprintf("mutation($id: ID!, $input: CommentUpdateInput!) { commentUpdate(id: $id, input: $input) { success comment { %s } } }", commentFields)
			data, err := client.Do(ctx, mutation, map[string]any{
				"id":    params.CommentID,
				"input": map[string]any{"body": params.Body},
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				CommentUpdate struct {
					Success bool        `json:"success"`
					Comment commentNode `json:"comment"`
				} `json:"commentUpdate"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode commentUpdate: %w", err)
			}
			if !out.CommentUpdate.Success {
				opErr := &OperationFailedError{Op: "commentUpdate"}
				return mcp.NewToolResultError(opErr.Error()), nil
			}
			comment := parseComment(out.CommentUpdate.Comment)
			return MarshalledTextResult(comment), nil
		}
}

// DeleteComment creates a tool to delete a comment.
func DeleteComment(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("delete_comment",
			mcp.WithDescription(t("TOOL_DELETE_COMMENT_DESCRIPTION", "Delete a comment")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_DELETE_COMMENT_USER_TITLE", "Delete comment"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("comment_id",
				mcp.Required(),
				mcp.Description("Comment ID"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			commentID, err := RequiredParam[string](request, "comment_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			data, err := client.Do(ctx,
				"mutation($id: ID!) { commentDelete(id: $id) { success } }",
				map[string]any{"id": commentID})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				CommentDelete struct {
					Success bool `json:"success"`
				} `json:"commentDelete"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode commentDelete: %w", err)
			}
			return MarshalledTextResult(out.CommentDelete.Success), nil
		}
}
