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

func Test_ListUsers(t *testing.T) {
	tool, _ := ListUsers(stubGetClientFn(nil), translations.NullTranslationHelper)
	assert.Equal(t, "list_users", tool.Name)
	assert.Contains(t, tool.InputSchema.Properties, "limit")
	assert.Empty(t, tool.InputSchema.Required)

	usersQuery := "query($first: Int!) { users(first: $first) { nodes { id name email active } } }"

	t.Run("defaults to 50 users", func(t *testing.T) {
		client := mockedClient(gqlmock.NewQueryMatcher(
			usersQuery,
			map[string]any{"first": 50},
			gqlmock.DataResponse(map[string]any{
				"users": map[string]any{"nodes": []map[string]any{
					{"id": "user-1", "name": "Alice", "email": "alice@example.com", "active": true},
					{"id": "user-2", "name": "Bob", "email": "bob@example.com", "active": false},
				}},
			}),
		))
		_, handler := ListUsers(stubGetClientFn(client), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{}))
		require.NoError(t, err)

		var users []User
		require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result).Text), &users))
		require.Len(t, users, 2)
		assert.True(t, users[0].Active)
		assert.False(t, users[1].Active)
	})

	t.Run("missing active field defaults to true", func(t *testing.T) {
		client := mockedClient(gqlmock.NewQueryMatcher(
			usersQuery,
			map[string]any{"first": 10},
			gqlmock.DataResponse(map[string]any{
				"users": map[string]any{"nodes": []map[string]any{
					{"id": "user-1", "name": "Alice"},
				}},
			}),
		))
		_, handler := ListUsers(stubGetClientFn(client), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{"limit": float64(10)}))
		require.NoError(t, err)

		var users []User
		require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result).Text), &users))
		require.Len(t, users, 1)
		assert.True(t, users[0].Active)
	})
}
