package linear

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ListCycles creates a tool to list a team's cycles.
func ListCycles(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_cycles",
			mcp.WithDescription(t("TOOL_LIST_CYCLES_DESCRIPTION", "List cycles (sprints) for a team")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_LIST_CYCLES_USER_TITLE", "List cycles"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithString("team_key",
				mcp.Required(),
				mcp.Description("Team key, e.g. ENG"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of cycles to return (default 20)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			teamKey, err := RequiredParam[string](request, "team_key")
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

			teamID, err := resolveTeamID(ctx, client, teamKey)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			clauses := []filterClause{{"$teamId: ID!", "team: { id: { eq: $teamId } }"}}
			data, err := client.Do(ctx, buildListQuery("cycles", cycleFields, clauses),
				map[string]any{"first": limit, "teamId": teamID})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				Cycles struct {
					Nodes []cycleNode `json:"nodes"`
				} `json:"cycles"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode cycles: %w", err)
			}

			cycles := make([]Cycle, 0, len(out.Cycles.Nodes))
			for _, n := range out.Cycles.Nodes {
				cycles = append(cycles, parseCycle(n))
			}
			return MarshalledTextResult(cycles), nil
		}
}

// CreateCycle creates a tool to create a cycle for a team.
func CreateCycle(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_cycle",
			mcp.WithDescription(t("TOOL_CREATE_CYCLE_DESCRIPTION", "Create a new cycle. Dates are ISO 8601.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_CREATE_CYCLE_USER_TITLE", "Create cycle"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("team_key",
				mcp.Required(),
				mcp.Description("Team key, e.g. ENG"),
			),
			mcp.WithString("starts_at",
				mcp.Required(),
				mcp.Description("Cycle start (ISO 8601)"),
			),
			mcp.WithString("ends_at",
				mcp.Required(),
				mcp.Description("Cycle end (ISO 8601)"),
			),
			mcp.WithString("name",
				mcp.Description("Cycle name"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			teamKey, err := RequiredParam[string](request, "team_key")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			startsAt, err := RequiredParam[string](request, "starts_at")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			endsAt, err := RequiredParam[string](request, "ends_at")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			name, err := OptionalParam[string](request, "name")
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
			input.set("teamId", teamID)
			input.set("startsAt", startsAt)
			input.set("endsAt", endsAt)
			if name != "" {
				input.set("name", name)
			}

			mutation := fmt.Sprintf("mutation($input: CycleCreateInput!) { cycleCreate(input: $input) { success cycle { %s } } }", cycleFields)
			data, err := client.Do(ctx, mutation, map[string]any{"input": map[string]any(input)})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				CycleCreate struct {
					Success bool      `json:"success"`
					Cycle   cycleNode `json:"cycle"`
				} `json:"cycleCreate"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode cycleCreate: %w", err)
			}
			if !out.CycleCreate.Success {
				opErr := &OperationFailedError{Op: "cycleCreate"}
				return mcp.NewToolResultError(opErr.Error()), nil
			}
			cycle := parseCycle(out.CycleCreate.Cycle)
			return MarshalledTextResult(cycle), nil
		}
}
