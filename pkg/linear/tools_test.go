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

func Test_InitToolsets(t *testing.T) {
	t.Run("all enables every toolset", func(t *testing.T) {
		tsg, err := InitToolsets([]string{"all"}, false, stubGetClientFn(nil), translations.NullTranslationHelper)
		require.NoError(t, err)

		expected := []string{"context", "users", "teams", "issues", "projects", "cycles", "comments", "labels", "documents", "webhooks"}
		require.Len(t, tsg.Toolsets, len(expected))
		for _, name := range expected {
			assert.True(t, tsg.IsEnabled(name), "toolset %s should be enabled", name)
		}
	})

	t.Run("selective enablement", func(t *testing.T) {
		tsg, err := InitToolsets([]string{"issues", "teams"}, false, stubGetClientFn(nil), translations.NullTranslationHelper)
		require.NoError(t, err)

		assert.True(t, tsg.IsEnabled("issues"))
		assert.True(t, tsg.IsEnabled("teams"))
		assert.False(t, tsg.IsEnabled("webhooks"))
	})

	t.Run("unknown toolset fails", func(t *testing.T) {
		_, err := InitToolsets([]string{"pull_requests"}, false, stubGetClientFn(nil), translations.NullTranslationHelper)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pull_requests")
	})

	t.Run("read-only drops write tools", func(t *testing.T) {
		tsg, err := InitToolsets([]string{"all"}, true, stubGetClientFn(nil), translations.NullTranslationHelper)
		require.NoError(t, err)

		issues, err := tsg.GetToolset("issues")
		require.NoError(t, err)

		for _, st := range issues.GetActiveTools() {
			assert.NotContains(t, []string{"create_issue", "update_issue", "delete_issue"}, st.Tool.Name)
		}
		names := make([]string, 0)
		for _, st := range issues.GetActiveTools() {
			names = append(names, st.Tool.Name)
		}
		assert.ElementsMatch(t, names, []string{"list_issues", "get_issue", "search_issues"})
	})
}

func Test_InitMultiUserToolsets(t *testing.T) {
	tsg, err := InitMultiUserToolsets([]string{"all"}, false, stubGetClientFn(nil), translations.NullTranslationHelper)
	require.NoError(t, err)

	t.Run("every tool requires api_key", func(t *testing.T) {
		for _, ts := range tsg.Toolsets {
			for _, st := range ts.GetAvailableTools() {
				assert.Contains(t, st.Tool.InputSchema.Properties, "api_key", "tool %s", st.Tool.Name)
				assert.Contains(t, st.Tool.InputSchema.Required, "api_key", "tool %s", st.Tool.Name)
			}
		}
	})

	t.Run("missing api_key is an authentication error", func(t *testing.T) {
		teams, err := tsg.GetToolset("teams")
		require.NoError(t, err)

		for _, st := range teams.GetActiveTools() {
			if st.Tool.Name != "list_teams" {
				continue
			}
			result, err := st.Handler(context.Background(), createMCPRequest(map[string]interface{}{}))
			require.NoError(t, err)
			require.True(t, result.IsError)
			assert.Contains(t, getTextResult(t, result).Text, "authentication error")
		}
	})

	t.Run("api_key flows into the handler context", func(t *testing.T) {
		// The stub client fn ignores the context, so only the auth
		// wrapper can reject the call. A present key must get through.
		client := mockedClient(gqlmock.NewQueryMatcher(
			"query { teams { nodes { id name key } } }",
			nil,
			gqlmock.DataResponse(map[string]any{
				"teams": map[string]any{"nodes": []map[string]any{
					{"id": "team-1", "name": "Engineering", "key": "ENG"},
				}},
			}),
		))
		tsgLive, err := InitMultiUserToolsets([]string{"teams"}, false, stubGetClientFn(client), translations.NullTranslationHelper)
		require.NoError(t, err)
		teams, err := tsgLive.GetToolset("teams")
		require.NoError(t, err)

		for _, st := range teams.GetActiveTools() {
			if st.Tool.Name != "list_teams" {
				continue
			}
			result, err := st.Handler(context.Background(), createMCPRequest(map[string]interface{}{
				"api_key": "lin_api_other_user",
			}))
			require.NoError(t, err)
			require.False(t, result.IsError)

			var teamsOut []Team
			require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result).Text), &teamsOut))
			require.Len(t, teamsOut, 1)
		}
	})
}

func Test_APIKeyContext(t *testing.T) {
	ctx := context.Background()

	_, ok := APIKeyFromContext(ctx)
	assert.False(t, ok)

	ctx = WithAPIKey(ctx, "lin_api_test")
	key, ok := APIKeyFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "lin_api_test", key)
}

func Test_InitContextToolset(t *testing.T) {
	ts := InitContextToolset(stubGetClientFn(nil), translations.NullTranslationHelper)
	assert.Equal(t, "context", ts.Name)
	assert.True(t, ts.Enabled)
	require.Len(t, ts.GetActiveTools(), 1)
	assert.Equal(t, "get_me", ts.GetActiveTools()[0].Tool.Name)
}
