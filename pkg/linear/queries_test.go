package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery(t *testing.T) {
	t.Run("no filters yields an empty filter object", func(t *testing.T) {
		q := buildListQuery("webhooks", "id url", nil)
		assert.Equal(t, "query($first: Int!) { webhooks(first: $first, filter: {  }) { nodes { id url } } }", q)
	})

	t.Run("one filter", func(t *testing.T) {
		q := buildListQuery("cycles", "id number", []filterClause{
			{"$teamId: ID!", "team: { id: { eq: $teamId } }"},
		})
		assert.Equal(t, "query($first: Int!, $teamId: ID!) { cycles(first: $first, filter: { team: { id: { eq: $teamId } } }) { nodes { id number } } }", q)
	})

	t.Run("filters keep their order", func(t *testing.T) {
		q := buildListQuery("issues", "id", []filterClause{
			{"$teamKey: String!", "team: { key: { eq: $teamKey } }"},
			{"$stateId: ID!", "state: { id: { eq: $stateId } }"},
		})
		assert.Equal(t, "query($first: Int!, $teamKey: String!, $stateId: ID!) { issues(first: $first, filter: { team: { key: { eq: $teamKey } }, state: { id: { eq: $stateId } } }) { nodes { id } } }", q)
	})

	t.Run("no caller value ever appears in the query text", func(t *testing.T) {
		q := buildListQuery("issues", "id", []filterClause{
			{"$assigneeId: ID!", "assignee: { id: { eq: $assigneeId } }"},
		})
		assert.NotContains(t, q, "user-123")
	})
}

func TestMutationInput(t *testing.T) {
	in := mutationInput{}
	in.set("title", "New title")
	in.setOrClear("dueDate", "2026-01-15")
	in.setOrClear("assigneeId", "")

	assert.Equal(t, "New title", in["title"])
	assert.Equal(t, "2026-01-15", in["dueDate"])

	// Supplied empty values are present as explicit nulls
	v, ok := in["assigneeId"]
	assert.True(t, ok)
	assert.Nil(t, v)

	// Untouched fields are entirely absent
	_, ok = in["projectId"]
	assert.False(t, ok)
}
