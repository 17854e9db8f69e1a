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

func Test_GetMe(t *testing.T) {
	tool, _ := GetMe(stubGetClientFn(nil), translations.NullTranslationHelper)
	assert.Equal(t, "get_me", tool.Name)
	assert.NotEmpty(t, tool.Description)
	assert.Empty(t, tool.InputSchema.Required)

	t.Run("returns the viewer", func(t *testing.T) {
		client := mockedClient(gqlmock.NewQueryMatcher(
			"query { viewer { id name email } }",
			nil,
			gqlmock.DataResponse(map[string]any{
				"viewer": map[string]any{"id": "user-1", "name": "Alice", "email": "alice@example.com"},
			}),
		))
		_, handler := GetMe(stubGetClientFn(client), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{}))
		require.NoError(t, err)

		var user User
		require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result).Text), &user))
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "Alice", user.Name)
		assert.True(t, user.Active)
	})

	t.Run("API failure surfaces as a tool error result", func(t *testing.T) {
		client := mockedClient(gqlmock.NewQueryMatcher(
			"query { viewer { id name email } }",
			nil,
			gqlmock.ErrorResponse("authentication required"),
		))
		_, handler := GetMe(stubGetClientFn(client), translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		assert.Contains(t, getTextResult(t, result).Text, "authentication required")
	})
}
