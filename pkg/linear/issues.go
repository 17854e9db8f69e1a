package linear

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type issueConnection struct {
	Nodes []issueNode `json:"nodes"`
}

// ListIssues creates a tool to list issues with optional equality filters.
func ListIssues(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_issues",
			mcp.WithDescription(t("TOOL_LIST_ISSUES_DESCRIPTION", "List issues with optional filters")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_LIST_ISSUES_USER_TITLE", "List issues"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithString("team_key",
				mcp.Description("Filter by team key, e.g. ENG"),
			),
			mcp.WithString("assignee_id",
				mcp.Description("Filter by assignee user ID"),
			),
			mcp.WithString("state_id",
				mcp.Description("Filter by workflow state ID"),
			),
			mcp.WithString("project_id",
				mcp.Description("Filter by project ID"),
			),
			mcp.WithString("cycle_id",
				mcp.Description("Filter by cycle ID"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of issues to return (default 20)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			teamKey, err := OptionalParam[string](request, "team_key")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			assigneeID, err := OptionalParam[string](request, "assignee_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			stateID, err := OptionalParam[string](request, "state_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			projectID, err := OptionalParam[string](request, "project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			cycleID, err := OptionalParam[string](request, "cycle_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			limit, err := OptionalIntParamWithDefault(request, "limit", 20)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			vars := map[string]any{"first": limit}
			var clauses []filterClause
			if teamKey != "" {
				vars["teamKey"] = strings.ToUpper(teamKey)
				clauses = append(clauses, filterClause{"$teamKey: String!", "team: { key: { eq: $teamKey } }"})
			}
			if assigneeID != "" {
				vars["assigneeId"] = assigneeID
				clauses = append(clauses, filterClause{"$assigneeId: ID!", "assignee: { id: { eq: $assigneeId } }"})
			}
			if stateID != "" {
				vars["stateId"] = stateID
				clauses = append(clauses, filterClause{"$stateId: ID!", "state: { id: { eq: $stateId } }"})
			}
			if projectID != "" {
				vars["projectId"] = projectID
				clauses = append(clauses, filterClause{"$projectId: ID!", "project: { id: { eq: $projectId } }"})
			}
			if cycleID != "" {
				vars["cycleId"] = cycleID
				clauses = append(clauses, filterClause{"$cycleId: ID!", "cycle: { id: { eq: $cycleId } }"})
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			data, err := client.Do(ctx, buildListQuery("issues", issueFields, clauses), vars)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				Issues issueConnection `json:"issues"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode issues: %w", err)
			}
			return MarshalledTextResult(parseIssues(out.Issues.Nodes)), nil
		}
}

// GetIssue creates a tool to get a single issue by identifier. A missing
// identifier yields a null result, not an error.
func GetIssue(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_issue",
			mcp.WithDescription(t("TOOL_GET_ISSUE_DESCRIPTION", "Get an issue by identifier (e.g. ENG-123)")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_GET_ISSUE_USER_TITLE", "Get issue"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithString("identifier",
				mcp.Required(),
				mcp.Description("Issue identifier, e.g. ENG-123"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			identifier, err := RequiredParam[string](request, "identifier")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			query := fmt.Sprintf("query($id: String!) { issues(filter: { identifier: { eq: $id } }, first: 1) { nodes { %s } } }", issueFields)
			data, err := client.Do(ctx, query, map[string]any{"id": strings.ToUpper(identifier)})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				Issues issueConnection `json:"issues"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode issues: %w", err)
			}
			if len(out.Issues.Nodes) == 0 {
				return MarshalledTextResult((*Issue)(nil)), nil
			}
			issue := parseIssue(out.Issues.Nodes[0])
			return MarshalledTextResult(issue), nil
		}
}

// SearchIssues creates a tool for full-text issue search.
func SearchIssues(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("search_issues",
			mcp.WithDescription(t("TOOL_SEARCH_ISSUES_DESCRIPTION", "Search issues by text")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_SEARCH_ISSUES_USER_TITLE", "Search issues"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Search text"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of issues to return (default 20)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			searchText, err := RequiredParam[string](request, "query")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			limit, err := OptionalIntParamWithDefault(request, "limit", 20)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			query := fmt.Sprintf("query($q: String!, $first: Int!) { issueSearch(query: $q, first: $first) { nodes { %s } } }", issueFields)
			data, err := client.Do(ctx, query, map[string]any{"q": searchText, "first": limit})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				IssueSearch issueConnection `json:"issueSearch"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode search results: %w", err)
			}
			return MarshalledTextResult(parseIssues(out.IssueSearch.Nodes)), nil
		}
}

// CreateIssue creates a tool to create an issue. The team key resolves to
// an id first; only explicitly supplied optional fields enter the input.
func CreateIssue(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_issue",
			mcp.WithDescription(t("TOOL_CREATE_ISSUE_DESCRIPTION", "Create a new issue")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_CREATE_ISSUE_USER_TITLE", "Create issue"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Issue title"),
			),
			mcp.WithString("team_key",
				mcp.Required(),
				mcp.Description("Key of the team the issue belongs to, e.g. ENG"),
			),
			mcp.WithString("description",
				mcp.Description("Issue description (markdown)"),
			),
			mcp.WithNumber("priority",
				mcp.Description("Priority: 0=none, 1=urgent, 2=high, 3=medium, 4=low"),
			),
			mcp.WithNumber("estimate",
				mcp.Description("Point estimate"),
			),
			mcp.WithString("due_date",
				mcp.Description("Due date (YYYY-MM-DD)"),
			),
			mcp.WithString("assignee_id",
				mcp.Description("Assignee user ID"),
			),
			mcp.WithString("state_id",
				mcp.Description("Workflow state ID"),
			),
			mcp.WithString("project_id",
				mcp.Description("Project ID"),
			),
			mcp.WithString("cycle_id",
				mcp.Description("Cycle ID"),
			),
			mcp.WithArray("label_ids",
				mcp.Description("Label IDs to attach"),
				mcp.Items(
					map[string]interface{}{
						"type": "string",
					},
				),
			),
			mcp.WithString("parent_id",
				mcp.Description("Parent issue ID"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			title, err := RequiredParam[string](request, "title")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			teamKey, err := RequiredParam[string](request, "team_key")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			input := mutationInput{}
			input.set("title", title)

			description, err := OptionalParam[string](request, "description")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if description != "" {
				input.set("description", description)
			}
			if priority, ok, err := OptionalParamOK[float64](request, "priority"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			} else if ok {
				p := Priority(priority)
				if err := p.Validate(); err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				input.set("priority", int(p))
			}
			if estimate, ok, err := OptionalParamOK[float64](request, "estimate"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			} else if ok {
				input.set("estimate", estimate)
			}
			dueDate, err := OptionalParam[string](request, "due_date")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if dueDate != "" {
				input.set("dueDate", dueDate)
			}
			for param, name := range map[string]string{
				"assignee_id": "assigneeId",
				"state_id":    "stateId",
				"project_id":  "projectId",
				"cycle_id":    "cycleId",
				"parent_id":   "parentId",
			} {
				value, err := OptionalParam[string](request, param)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				if value != "" {
					input.set(name, value)
				}
			}
			labelIDs, err := OptionalStringArrayParam(request, "label_ids")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if len(labelIDs) > 0 {
				input.set("labelIds", labelIDs)
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			teamID, err := resolveTeamID(ctx, client, teamKey)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			input.set("teamId", teamID)

			mutation := fmt.Sprintf("mutation($input: IssueCreateInput!) { issueCreate(input: $input) { success issue { %s } } }", issueFields)
			data, err := client.Do(ctx, mutation, map[string]any{"input": map[string]any(input)})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				IssueCreate struct {
					Success bool      `json:"success"`
					Issue   issueNode `json:"issue"`
				} `json:"issueCreate"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode issueCreate: %w", err)
			}
			if !out.IssueCreate.Success {
				opErr := &OperationFailedError{Op: "issueCreate"}
				return mcp.NewToolResultError(opErr.Error()), nil
			}
			issue := parseIssue(out.IssueCreate.Issue)
			return MarshalledTextResult(issue), nil
		}
}

// UpdateIssue creates a tool to update an issue. Each optional field is
// three-state: absent leaves it untouched, a supplied value sets it, and
// for the clearable fields a supplied empty value (or negative estimate)
// clears it. Supplying no fields at all fails before any network call.
func UpdateIssue(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("update_issue",
			mcp.WithDescription(t("TOOL_UPDATE_ISSUE_DESCRIPTION", "Update an existing issue. Use an empty string to clear a clearable field.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_UPDATE_ISSUE_USER_TITLE", "Update issue"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("identifier",
				mcp.Required(),
				mcp.Description("Issue identifier, e.g. ENG-123"),
			),
			mcp.WithString("title",
				mcp.Description("New title"),
			),
			mcp.WithString("description",
				mcp.Description("New description (markdown)"),
			),
			mcp.WithNumber("priority",
				mcp.Description("Priority: 0=none, 1=urgent, 2=high, 3=medium, 4=low"),
			),
			mcp.WithNumber("estimate",
				mcp.Description("Point estimate; a negative value clears it"),
			),
			mcp.WithString("due_date",
				mcp.Description("Due date (YYYY-MM-DD); empty string clears it"),
			),
			mcp.WithString("assignee_id",
				mcp.Description("Assignee user ID; empty string unassigns"),
			),
			mcp.WithString("state_id",
				mcp.Description("Workflow state ID"),
			),
			mcp.WithString("project_id",
				mcp.Description("Project ID; empty string clears it"),
			),
			mcp.WithString("cycle_id",
				mcp.Description("Cycle ID; empty string clears it"),
			),
			mcp.WithArray("label_ids",
				mcp.Description("Replacement set of label IDs"),
				mcp.Items(
					map[string]interface{}{
						"type": "string",
					},
				),
			),
			mcp.WithString("parent_id",
				mcp.Description("Parent issue ID; empty string clears it"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			identifier, err := RequiredParam[string](request, "identifier")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			input := mutationInput{}
			if title, ok, err := OptionalParamOK[string](request, "title"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			} else if ok {
				input.set("title", title)
			}
			if description, ok, err := OptionalParamOK[string](request, "description"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			} else if ok {
				input.set("description", description)
			}
			if priority, ok, err := OptionalParamOK[float64](request, "priority"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			} else if ok {
				p := Priority(priority)
				if err := p.Validate(); err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				input.set("priority", int(p))
			}
			if estimate, ok, err := OptionalParamOK[float64](request, "estimate"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			} else if ok {
				if estimate >= 0 {
					input.set("estimate", estimate)
				} else {
					input.set("estimate", nil)
				}
			}
			if dueDate, ok, err := OptionalParamOK[string](request, "due_date"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			} else if ok {
				input.setOrClear("dueDate", dueDate)
			}
			if assigneeID, ok, err := OptionalParamOK[string](request, "assignee_id"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			} else if ok {
				input.setOrClear("assigneeId", assigneeID)
			}
			if stateID, ok, err := OptionalParamOK[string](request, "state_id"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			} else if ok {
				input.set("stateId", stateID)
			}
			if projectID, ok, err := OptionalParamOK[string](request, "project_id"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			} else if ok {
				input.setOrClear("projectId", projectID)
			}
			if cycleID, ok, err := OptionalParamOK[string](request, "cycle_id"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			} else if ok {
				input.setOrClear("cycleId", cycleID)
			}
			if _, ok := request.GetArguments()["label_ids"]; ok {
				labelIDs, err := OptionalStringArrayParam(request, "label_ids")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				input.set("labelIds", labelIDs)
			}
			if parentID, ok, err := OptionalParamOK[string](request, "parent_id"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			} else if ok {
				input.setOrClear("parentId", parentID)
			}

			if len(input) == 0 {
				argErr := &InvalidArgumentError{Reason: "no fields to update"}
				return mcp.NewToolResultError(argErr.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			issueID, err := resolveIssueID(ctx, client, identifier)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			mutation := fmt.Sprintf("mutation($id: ID!, $input: IssueUpdateInput!) { issueUpdate(id: $id, input: $input) { success issue { %s } } }", issueFields)
			data, err := client.Do(ctx, mutation, map[string]any{"id": issueID, "input": map[string]any(input)})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				IssueUpdate struct {
					Success bool      `json:"success"`
					Issue   issueNode `json:"issue"`
				} `json:"issueUpdate"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode issueUpdate: %w", err)
			}
			if !out.IssueUpdate.Success {
				opErr := &OperationFailedError{Op: "issueUpdate"}
				return mcp.NewToolResultError(opErr.Error()), nil
			}
			issue := parseIssue(out.IssueUpdate.Issue)
			return MarshalledTextResult(issue), nil
		}
}

// DeleteIssue creates a tool to permanently delete an issue.
func DeleteIssue(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("delete_issue",
			mcp.WithDescription(t("TOOL_DELETE_ISSUE_DESCRIPTION", "Permanently delete an issue")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_DELETE_ISSUE_USER_TITLE", "Delete issue"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("identifier",
				mcp.Required(),
				mcp.Description("Issue identifier, e.g. ENG-123"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			identifier, err := RequiredParam[string](request, "identifier")
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

			data, err := client.Do(ctx,
				"mutation($id: ID!) { issueDelete(id: $id) { success } }",
				map[string]any{"id": issueID})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				IssueDelete struct {
					Success bool `json:"success"`
				} `json:"issueDelete"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode issueDelete: %w", err)
			}
			return MarshalledTextResult(out.IssueDelete.Success), nil
		}
}
