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

func Test_ListDocuments(t *testing.T) {
	tool, _ := ListDocuments(stubGetClientFn(nil), translations.NullTranslationHelper)
	assert.Equal(t, "list_documents", tool.Name)
	assert.Empty(t, tool.InputSchema.Required)

	t.Run("unfiltered listing", func(t *testing.T) {
		client := mockedClient(gqlmock.NewQueryMatcher(
			buildListQuery("documents", documentFields, nil),
			map[string]any{"first": 50},
			gqlmock.DataResponse(map[string]any{
				"documents": map[string]any{"nodes": []map[string]any{
					{
						"id":      "document-1",
						"title":   "Runbook",
						"project": map[string]any{"id": "project-1"},
					},
				}},
			}),
		))
		_, handler := ListDocuments(stubGetClientFn(client), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{}))
		require.NoError(t, err)

		var documents []Document
		require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result).Text), &documents))
		require.Len(t, documents, 1)
		assert.Equal(t, "project-1", documents[0].ProjectID)
	})

	t.Run("project filter is passed through without resolution", func(t *testing.T) {
		client := mockedClient(gqlmock.NewQueryMatcher(
			buildListQuery("documents", documentFields, []filterClause{
				{"$projectId: ID!", "project: { id: { eq: $projectId } }"},
			}),
			map[string]any{"first": 50, "projectId": "project-1"},
			gqlmock.DataResponse(map[string]any{
				"documents": map[string]any{"nodes": []map[string]any{}},
			}),
		))
		_, handler := ListDocuments(stubGetClientFn(client), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{"project_id": "project-1"}))
		require.NoError(t, err)
		assert.Equal(t, "[]", getTextResult(t, result).Text)
	})
}

func Test_CreateDocument(t *testing.T) {
	tool, _ := CreateDocument(stubGetClientFn(nil), translations.NullTranslationHelper)
	assert.Equal(t, "create_document", tool.Name)
	assert.ElementsMatch(t, tool.InputSchema.Required, []string{"title", "project_id"})

	createMutation := fmt.Sprintf("mutation($input: DocumentCreateInput!) { documentCreate(input: $input) { success document { %s } } }", documentFields)

	client := mockedClient(gqlmock.NewQueryMatcher(
		createMutation,
		map[string]any{"input": map[string]any{
			"title":     "Runbook",
			"projectId": "project-1",
			"content":   "# Oncall",
		}},
		gqlmock.DataResponse(map[string]any{
			"documentCreate": map[string]any{
				"success": true,
				"document": map[string]any{
					"id":      "document-1",
					"title":   "Runbook",
					"content": "# Oncall",
					"project": map[string]any{"id": "project-1"},
				},
			},
		}),
	))
	_, handler := CreateDocument(stubGetClientFn(client), translations.NullTranslationHelper)

	result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{
		"title":      "Runbook",
		"project_id": "project-1",
		"content":    "# Oncall",
	}))
	require.NoError(t, err)

	var document Document
	require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result).Text), &document))
	assert.Equal(t, "document-1", document.ID)
	assert.Equal(t, "project-1", document.ProjectID)
}

func Test_UpdateDocument(t *testing.T) {
	tool, _ := UpdateDocument(stubGetClientFn(nil), translations.NullTranslationHelper)
	assert.Equal(t, "update_document", tool.Name)
	assert.ElementsMatch(t, tool.InputSchema.Required, []string{"document_id"})

	updateMutation := fmt.Sprintf("mutation($id: ID!, $input: DocumentUpdateInput!) { documentUpdate(id: $id, input: $input) { success document { %s } } }", documentFields)

	t.Run("updates the title only", func(t *testing.T) {
		client := mockedClient(gqlmock.NewQueryMatcher(
			updateMutation,
			map[string]any{"id": "document-1", "input": map[string]any{"title": "Runbook v2"}},
			gqlmock.DataResponse(map[string]any{
				"documentUpdate": map[string]any{
					"success":  true,
					"document": map[string]any{"id": "document-1", "title": "Runbook v2"},
				},
			}),
		))
		_, handler := UpdateDocument(stubGetClientFn(client), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{
			"document_id": "document-1",
			"title":       "Runbook v2",
		}))
		require.NoError(t, err)

		var document Document
		require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result).Text), &document))
		assert.Equal(t, "Runbook v2", document.Title)
	})

	t.Run("no fields fails before any network call", func(t *testing.T) {
		_, handler := UpdateDocument(stubGetClientFn(mockedClient()), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{
			"document_id": "document-1",
		}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		assert.Equal(t, "no fields to update", getTextResult(t, result).Text)
	})
}

func Test_DeleteDocument(t *testing.T) {
	tool, _ := DeleteDocument(stubGetClientFn(nil), translations.NullTranslationHelper)
	assert.Equal(t, "delete_document", tool.Name)
	assert.ElementsMatch(t, tool.InputSchema.Required, []string{"document_id"})

	client := mockedClient(gqlmock.NewQueryMatcher(
		"mutation($id: ID!) { documentDelete(id: $id) { success } }",
		map[string]any{"id": "document-1"},
		gqlmock.DataResponse(map[string]any{
			"documentDelete": map[string]any{"success": true},
		}),
	))
	_, handler := DeleteDocument(stubGetClientFn(client), translations.NullTranslationHelper)

	result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{"document_id": "document-1"}))
	require.NoError(t, err)
	assert.Equal(t, "true", getTextResult(t, result).Text)
}
