package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIssue(t *testing.T) {
	t.Run("flattens relationships", func(t *testing.T) {
		priority := 2.0
		estimate := 3.0
		issue := parseIssue(issueNode{
			ID:         "issue-1",
			Identifier: "ENG-42",
			Title:      "Fix login",
			Priority:   &priority,
			Estimate:   &estimate,
			State:      &refNode{ID: "state-1", Name: "In Progress"},
			Assignee:   &refNode{ID: "user-1", Name: "Alice"},
			Project:    &refNode{ID: "project-1", Name: "Q1"},
			Cycle:      &refNode{ID: "cycle-1"},
			Parent:     &refNode{ID: "issue-0"},
			Labels: labelConnection{Nodes: []refNode{
				{ID: "label-1", Name: "bug"},
				{ID: "label-2", Name: "backend"},
			}},
		})

		assert.Equal(t, "ENG-42", issue.Identifier)
		require.NotNil(t, issue.Priority)
		assert.Equal(t, PriorityHigh, *issue.Priority)
		require.NotNil(t, issue.Estimate)
		assert.Equal(t, 3.0, *issue.Estimate)
		assert.Equal(t, "In Progress", issue.State)
		assert.Equal(t, "state-1", issue.StateID)
		assert.Equal(t, "Alice", issue.Assignee)
		assert.Equal(t, "user-1", issue.AssigneeID)
		assert.Equal(t, "Q1", issue.Project)
		assert.Equal(t, "project-1", issue.ProjectID)
		assert.Equal(t, "cycle-1", issue.CycleID)
		assert.Equal(t, "issue-0", issue.ParentID)

		// Parallel slices stay index-aligned
		assert.Equal(t, []string{"bug", "backend"}, issue.Labels)
		assert.Equal(t, []string{"label-1", "label-2"}, issue.LabelIDs)
	})

	t.Run("null relationships stay empty", func(t *testing.T) {
		issue := parseIssue(issueNode{ID: "issue-1", Identifier: "ENG-1", Title: "Bare"})

		assert.Nil(t, issue.Priority)
		assert.Nil(t, issue.Estimate)
		assert.Empty(t, issue.State)
		assert.Empty(t, issue.Assignee)
		assert.Empty(t, issue.ProjectID)
		assert.Empty(t, issue.CycleID)
		assert.Empty(t, issue.ParentID)
		assert.NotNil(t, issue.Labels)
		assert.Empty(t, issue.Labels)
		assert.NotNil(t, issue.LabelIDs)
	})
}

func TestParseComment(t *testing.T) {
	comment := parseComment(commentNode{
		ID:        "comment-1",
		Body:      "Looks good",
		CreatedAt: "2026-01-01T00:00:00.000Z",
		User:      &refNode{ID: "user-1", Name: "Alice"},
	})
	assert.Equal(t, "Alice", comment.User)
	assert.Equal(t, "user-1", comment.UserID)

	// Deleted authors come back null
	anonymous := parseComment(commentNode{ID: "comment-2", Body: "orphan"})
	assert.Empty(t, anonymous.User)
	assert.Empty(t, anonymous.UserID)
}

func TestParseWebhook(t *testing.T) {
	enabled := false
	webhook := parseWebhook(webhookNode{
		ID:            "webhook-1",
		URL:           "https://example.com/hook",
		Enabled:       &enabled,
		ResourceTypes: []string{"Issue"},
	})
	assert.False(t, webhook.Enabled)
	assert.Equal(t, []string{"Issue"}, webhook.ResourceTypes)

	// Absent fields default to enabled with an empty type list
	defaulted := parseWebhook(webhookNode{ID: "webhook-2", URL: "https://example.com/hook"})
	assert.True(t, defaulted.Enabled)
	assert.NotNil(t, defaulted.ResourceTypes)
	assert.Empty(t, defaulted.ResourceTypes)
}

func TestParseDocument(t *testing.T) {
	doc := parseDocument(documentNode{
		ID:      "doc-1",
		Title:   "Runbook",
		Project: &refNode{ID: "project-1"},
	})
	assert.Equal(t, "project-1", doc.ProjectID)

	orphan := parseDocument(documentNode{ID: "doc-2", Title: "Orphan"})
	assert.Empty(t, orphan.ProjectID)
}
