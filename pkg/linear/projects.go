package linear

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ListProjects creates a tool to list projects, optionally scoped to the
// teams that can access them.
func ListProjects(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_projects",
			mcp.WithDescription(t("TOOL_LIST_PROJECTS_DESCRIPTION", "List projects, optionally filtered by team")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_LIST_PROJECTS_USER_TITLE", "List projects"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithString("team_key",
				mcp.Description("Only include projects accessible to this team, e.g. ENG"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of projects to return (default 50)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			teamKey, err := OptionalParam[string](request, "team_key")
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

			vars := map[string]any{"first": limit}
			var clauses []filterClause
			if teamKey != "" {
				teamID, err := resolveTeamID(ctx, client, teamKey)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				vars["teamId"] = teamID
				clauses = append(clauses, filterClause{"$teamId: ID!", "accessibleTeams: { id: { eq: $teamId } }"})
			}

			data, err := client.Do(ctx, buildListQuery("projects", projectFields, clauses), vars)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				Projects struct {
					Nodes []Project `json:"nodes"`
				} `json:"projects"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode projects: %w", err)
			}

			projects := out.Projects.Nodes
			if projects == nil {
				projects = []Project{}
			}
			return MarshalledTextResult(projects), nil
		}
}

// CreateProject creates a tool to create a project shared by one or more teams.
func CreateProject(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_project",
			mcp.WithDescription(t("TOOL_CREATE_PROJECT_DESCRIPTION", "Create a new project")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_CREATE_PROJECT_USER_TITLE", "Create project"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Project name"),
			),
			mcp.WithArray("team_keys",
				mcp.Required(),
				mcp.Description("Keys of the teams the project belongs to"),
				mcp.Items(
					map[string]interface{}{
						"type": "string",
					},
				),
			),
			mcp.WithString("description",
				mcp.Description("Project description"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			name, err := RequiredParam[string](request, "name")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			teamKeys, err := RequiredStringArrayParam(request, "team_keys")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			description, err := OptionalParam[string](request, "description")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			teamIDs := make([]string, 0, len(teamKeys))
			for _, key := range teamKeys {
				teamID, err := resolveTeamID(ctx, client, key)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				teamIDs = append(teamIDs, teamID)
			}

			input := mutationInput{}
			input.set("name", name)
			input.set("teamIds", teamIDs)
			if description != "" {
				input.set("description", description)
			}

			mutation := fmt.Sprintf("mutation($input: ProjectCreateInput!) { projectCreate(input: $input) { success project { %s } } }", projectFields)
			data, err := client.Do(ctx, mutation, map[string]any{"input": map[string]any(input)})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				ProjectCreate struct {
					Success bool    `json:"success"`
					Project Project `json:"project"`
				} `json:"projectCreate"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode projectCreate: %w", err)
			}
			if !out.ProjectCreate.Success {
				opErr := &OperationFailedError{Op: "projectCreate"}
				return mcp.NewToolResultError(opErr.Error()), nil
			}
			return MarshalledTextResult(out.ProjectCreate.Project), nil
		}
}

// UpdateProject creates a tool to update a project's name, description or state.
func UpdateProject(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("update_project",
			mcp.WithDescription(t("TOOL_UPDATE_PROJECT_DESCRIPTION", "Update a project")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_UPDATE_PROJECT_USER_TITLE", "Update project"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("Project ID"),
			),
			mcp.WithString("name",
				mcp.Description("New project name"),
			),
			mcp.WithString("description",
				mcp.Description("New project description"),
			),
			mcp.WithString("state",
				mcp.Description("New state: planned, backlog, started, paused, completed or canceled"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, err := RequiredParam[string](request, "project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			input := mutationInput{}
			for _, field := range []string{"name", "description", "state"} {
				if value, ok, err := OptionalParamOK[string](request, field); err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				} else if ok {
					input.set(field, value)
				}
			}
			if len(input) == 0 {
				argErr := &InvalidArgumentError{Reason: "no fields to update"}
				return mcp.NewToolResultError(argErr.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			mutation := fmt.Sprintf("mutation($id: ID!, $input: ProjectUpdateInput!) { projectUpdate(id: $id, input: $input) { success project { %s } } }", projectFields)
			data, err := client.Do(ctx, mutation, map[string]any{"id": projectID, "input": map[string]any(input)})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				ProjectUpdate struct {
					Success bool    `json:"success"`
					Project Project `json:"project"`
				} `json:"projectUpdate"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode projectUpdate: %w", err)
			}
			if !out.ProjectUpdate.Success {
				opErr := &OperationFailedError{Op: "projectUpdate"}
				return mcp.NewToolResultError(opErr.Error()), nil
			}
			return MarshalledTextResult(out.ProjectUpdate.Project), nil
		}
}
