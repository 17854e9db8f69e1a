package linear

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ListLabels creates a tool to list issue labels, optionally scoped to a team.
func ListLabels(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_labels",
			mcp.WithDescription(t("TOOL_LIST_LABELS_DESCRIPTION", "List labels, optionally filtered by team")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_LIST_LABELS_USER_TITLE", "List labels"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithString("team_key",
				mcp.Description("Only include labels belonging to this team, e.g. ENG"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of labels to return (default 100)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			teamKey, err := OptionalParam[string](request, "team_key")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			limit, err := OptionalIntParamWithDefault(request, "limit", 100)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			vars := map[string]any{"first": limit}
			var clauses []filterClause
			if teamKey != "" {
				teamID, err := resolveTeamID(ctx, client, teamKey)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				vars["teamId"] = teamID
				clauses = append(clauses, filterClause{"$teamId: ID!", "team: { id: { eq: $teamId } }"})
			}

			data, err := client.Do(ctx, buildListQuery("issueLabels", labelFields, clauses), vars)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				IssueLabels struct {
					Nodes []Label `json:"nodes"`
				} `json:"issueLabels"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode labels: %w", err)
			}

			labels := out.IssueLabels.Nodes
			if labels == nil {
				labels = []Label{}
			}
			return MarshalledTextResult(labels), nil
		}
}

// CreateLabel creates a tool to create a label in a team.
func CreateLabel(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_label",
			mcp.WithDescription(t("TOOL_CREATE_LABEL_DESCRIPTION", "Create a new label")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_CREATE_LABEL_USER_TITLE", "Create label"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Label name"),
			),
			mcp.WithString("team_key",
				mcp.Required(),
				mcp.Description("Key of the team the label belongs to, e.g. ENG"),
			),
			mcp.WithString("color",
				mcp.Description("Label color as a hex string, e.g. #ff0000"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			name, err := RequiredParam[string](request, "name")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			teamKey, err := RequiredParam[string](request, "team_key")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			color, err := OptionalParam[string](request, "color")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			teamID, err := resolveTeamID(ctx, client, teamKey)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			input := mutationInput{}
			input.set("name", name)
			input.set("teamId", teamID)
			if color != "" {
				input.set("color", color)
			}

			mutation := fmt.Sprintf("mutation($input: IssueLabelCreateInput!) { issueLabelCreate(input: $input) { success issueLabel { %s } } }", labelFields)
			data, err := client.Do(ctx, mutation, map[string]any{"input": map[string]any(input)})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				IssueLabelCreate struct {
					Success    bool  `json:"success"`
					IssueLabel Label `json:"issueLabel"`
				} `json:"issueLabelCreate"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode issueLabelCreate: %w", err)
			}
			if !out.IssueLabelCreate.Success {
				opErr := &OperationFailedError{Op: "issueLabelCreate"}
				return mcp.NewToolResultError(opErr.Error()), nil
			}
			return MarshalledTextResult(out.IssueLabelCreate.IssueLabel), nil
		}
}

// DeleteLabel creates a tool to delete a label.
func DeleteLabel(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("delete_label",
			mcp.WithDescription(t("TOOL_DELETE_LABEL_DESCRIPTION", "Delete a label")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_DELETE_LABEL_USER_TITLE", "Delete label"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("label_id",
				mcp.Required(),
				mcp.Description("Label ID"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			labelID, err := RequiredParam[string](request, "label_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			data, err := client.Do(ctx,
				"mutation($id: ID!) { issueLabelDelete(id: $id) { success } }",
				map[string]any{"id": labelID})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				IssueLabelDelete struct {
					Success bool `json:"success"`
				} `json:"issueLabelDelete"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode issueLabelDelete: %w", err)
			}
			return MarshalledTextResult(out.IssueLabelDelete.Success), nil
		}
}
