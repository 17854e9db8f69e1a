package linear

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/linearmcp/linear-mcp-server/internal/gqlmock"
	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ListLabels(t *testing.T) {
	tool, _ := ListLabels(stubGetClientFn(nil), translations.NullTranslationHelper)
	assert.Equal(t, "list_labels", tool.Name)
	assert.Empty(t, tool.InputSchema.Required)

	t.Run("workspace-wide listing", func(t *testing.T) {
		client := mockedClient(gqlmock.NewQueryMatcher(
			buildListQuery("issueLabels", labelFields, nil),
			map[string]any{"first": 100},
			gqlmock.DataResponse(map[string]any{
				"issueLabels": map[string]any{"nodes": []map[string]any{
					{"id": "label-1", "name": "bug", "color": "#ff0000"},
					{"id": "label-2", "name": "feature"},
				}},
			}),
		))
		_, handler := ListLabels(stubGetClientFn(client), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{}))
		require.NoError(t, err)

		var labels []Label
		require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result).Text), &labels))
		require.Len(t, labels, 2)
		assert.Equal(t, "#ff0000", labels[0].Color)
	})

	t.Run("team filter resolves the key first", func(t *testing.T) {
		client := mockedClient(
			gqlmock.NewQueryMatcher(
				teamResolveQuery,
				map[string]any{"key": "ENG"},
				gqlmock.DataResponse(map[string]any{
					"teams": map[string]any{"nodes": []map[string]any{{"id": "team-1"}}},
				}),
			),
			gqlmock.NewQueryMatcher(
				buildListQuery("issueLabels", labelFields, []filterClause{
					{"$teamId: ID!", "team: { id: { eq: $teamId } }"},
				}),
				map[string]any{"first": 100, "teamId": "team-1"},
				gqlmock.DataResponse(map[string]any{
					"issueLabels": map[string]any{"nodes": []map[string]any{}},
				}),
			),
		)
		_, handler := ListLabels(stubGetClientFn(client), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{"team_key": "eng"}))
		require.NoError(t, err)
		assert.Equal(t, "[]", getTextResult(t, result).Text)
	})
}

func Test_CreateLabel(t *testing.T) {
	tool, _ := CreateLabel(stubGetClientFn(nil), translations.NullTranslationHelper)
	assert.Equal(t, "create_label", tool.Name)
	assert.ElementsMatch(t, tool.InputSchema.Required, []string{"name", "team_key"})

	createMutation := fmt.Sprintf("mutation($input: IssueLabelCreateInput!) { issueLabelCreate(input: $input) { success issueLabel { %s } } }", labelFields)

	t.Run("creates a colored label", func(t *testing.T) {
		client := mockedClient(
			gqlmock.NewQueryMatcher(
				teamResolveQuery,
				map[string]any{"key": "ENG"},
				gqlmock.DataResponse(map[string]any{
					"teams": map[string]any{"nodes": []map[string]any{{"id": "team-1"}}},
				}),
			),
			gqlmock.NewQueryMatcher(
				createMutation,
				map[string]any{"input": map[string]any{
					"name":   "bug",
					"teamId": "team-1",
					"color":  "#ff0000",
				}},
				gqlmock.DataResponse(map[string]any{
					"issueLabelCreate": map[string]any{
						"success":    true,
						"issueLabel": map[string]any{"id": "label-1", "name": "bug", "color": "#ff0000"},
					},
				}),
			),
		)
		_, handler := CreateLabel(stubGetClientFn(client), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{
			"name":     "bug",
			"team_key": "ENG",
			"color":    "#ff0000",
		}))
		require.NoError(t, err)

		var label Label
		require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result).Text), &label))
		assert.Equal(t, "label-1", label.ID)
	})

	t.Run("unreported success becomes a tool error", func(t *testing.T) {
		client := mockedClient(
			gqlmock.NewQueryMatcher(
				teamResolveQuery,
				map[string]any{"key": "ENG"},
				gqlmock.DataResponse(map[string]any{
					"teams": map[string]any{"nodes": []map[string]any{{"id": "team-1"}}},
				}),
			),
			gqlmock.NewQueryMatcher(
				createMutation,
				map[string]any{"input": map[string]any{"name": "bug", "teamId": "team-1"}},
				gqlmock.DataResponse(map[string]any{
					"issueLabelCreate": map[string]any{"success": false},
				}),
			),
		)
		_, handler := CreateLabel(stubGetClientFn(client), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{
			"name":     "bug",
			"team_key": "ENG",
		}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		assert.Contains(t, getTextResult(t, result).Text, "issueLabelCreate")
	})
}

func Test_DeleteLabel(t *testing.T) {
	tool, _ := DeleteLabel(stubGetClientFn(nil), translations.NullTranslationHelper)
	assert.Equal(t, "delete_label", tool.Name)
	assert.ElementsMatch(t, tool.InputSchema.Required, []string{"label_id"})

	client := mockedClient(gqlmock.NewQueryMatcher(
		"mutation($id: ID!) { issueLabelDelete(id: $id) { success } }",
		map[string]any{"id": "label-1"},
		gqlmock.DataResponse(map[string]any{
			"issueLabelDelete": map[string]any{"success": true},
		}),
	))
	_, handler := DeleteLabel(stubGetClientFn(client), translations.NullTranslationHelper)

	result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{"label_id": "label-1"}))
	require.NoError(t, err)
	assert.Equal(t, "true", getTextResult(t, result).Text)
}
