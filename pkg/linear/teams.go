package linear

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ListTeams creates a tool to list all teams.
func ListTeams(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_teams",
			mcp.WithDescription(t("TOOL_LIST_TEAMS_DESCRIPTION", "List teams")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_LIST_TEAMS_USER_TITLE", "List teams"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
		),
		func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			data, err := client.Do(ctx, "query { teams { nodes { id name key } } }", nil)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				Teams struct {
					Nodes []Team `json:"nodes"`
				} `json:"teams"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode teams: %w", err)
			}

			teams := out.Teams.Nodes
			if teams == nil {
				teams = []Team{}
			}
			return MarshalledTextResult(teams), nil
		}
}

// ListWorkflowStates creates a tool to list the workflow states of a team.
func ListWorkflowStates(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_workflow_states",
			mcp.WithDescription(t("TOOL_LIST_WORKFLOW_STATES_DESCRIPTION", "List workflow states (statuses) for a team")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_LIST_WORKFLOW_STATES_USER_TITLE", "List workflow states"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithString("team_key",
				mcp.Required(),
				mcp.Description("Team key, e.g. ENG"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			teamKey, err := RequiredParam[string](request, "team_key")
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

			data, err := client.Do(ctx,
				"query($teamId: ID!) { workflowStates(filter: { team: { id: { eq: $teamId } } }) { nodes { id name type } } }",
				map[string]any{"teamId": teamID})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				WorkflowStates struct {
					Nodes []WorkflowState `json:"nodes"`
				} `json:"workflowStates"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode workflow states: %w", err)
			}

			states := out.WorkflowStates.Nodes
			if states == nil {
				states = []WorkflowState{}
			}
			return MarshalledTextResult(states), nil
		}
}
