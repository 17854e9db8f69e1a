package linear

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/linearmcp/linear-mcp-server/internal/gqlmock"
	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ListTeams(t *testing.T) {
	tool, _ := ListTeams(stubGetClientFn(nil), translations.NullTranslationHelper)
	assert.Equal(t, "list_teams", tool.Name)
	assert.Empty(t, tool.InputSchema.Required)

	client := mockedClient(gqlmock.NewQueryMatcher(
		"query { teams { nodes { id name key } } }",
		nil,
		gqlmock.DataResponse(map[string]any{
			"teams": map[string]any{"nodes": []map[string]any{
				{"id": "team-1", "name": "Engineering", "key": "ENG"},
			}},
		}),
	))
	_, handler := ListTeams(stubGetClientFn(client), translations.NullTranslationHelper)

	result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{}))
	require.NoError(t, err)

	var teams []Team
	require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result).Text), &teams))
	require.Len(t, teams, 1)
	assert.Equal(t, "ENG", teams[0].Key)
}

func Test_ListWorkflowStates(t *testing.T) {
	tool, _ := ListWorkflowStates(stubGetClientFn(nil), translations.NullTranslationHelper)
	assert.Equal(t, "list_workflow_states", tool.Name)
	assert.ElementsMatch(t, tool.InputSchema.Required, []string{"team_key"})

	t.Run("resolves the team then lists its states", func(t *testing.T) {
		client := mockedClient(
			gqlmock.NewQueryMatcher(
				teamResolveQuery,
				map[string]any{"key": "ENG"},
				gqlmock.DataResponse(map[string]any{
					"teams": map[string]any{"nodes": []map[string]any{{"id": "team-1"}}},
				}),
			),
			gqlmock.NewQueryMatcher(
				"query($teamId: ID!) { workflowStates(filter: { team: { id: { eq: $teamId } } }) { nodes { id name type } } }",
				map[string]any{"teamId": "team-1"},
				gqlmock.DataResponse(map[string]any{
					"workflowStates": map[string]any{"nodes": []map[string]any{
						{"id": "state-1", "name": "Backlog", "type": "backlog"},
						{"id": "state-2", "name": "In Progress", "type": "started"},
					}},
				}),
			),
		)
		_, handler := ListWorkflowStates(stubGetClientFn(client), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{"team_key": "eng"}))
		require.NoError(t, err)

		var states []WorkflowState
		require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result).Text), &states))
		require.Len(t, states, 2)
		assert.Equal(t, "started", states[1].Type)
	})

	t.Run("unknown team surfaces the resolution failure", func(t *testing.T) {
		client := mockedClient(gqlmock.NewQueryMatcher(
			teamResolveQuery,
			map[string]any{"key": "NOPE"},
			gqlmock.DataResponse(map[string]any{
				"teams": map[string]any{"nodes": []map[string]any{}},
			}),
		))
		_, handler := ListWorkflowStates(stubGetClientFn(client), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{"team_key": "NOPE"}))
		require.NoError(t, err)
		require.True(t, result.IsError)
	})
}
