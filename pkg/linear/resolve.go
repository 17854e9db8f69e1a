package linear

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// The write paths of the API only accept opaque ids, never human-facing
// keys, so every mutating tool resolves its team key or issue identifier
// first. Keys are canonically upper-case in Linear; lookups upper-case
// their input so "eng" and "ENG" resolve alike. A resolution is one round
// trip; if more than one node comes back (not expected, keys are unique)
// the first in returned order wins.

func resolveTeamID(ctx context.Context, client *Client, teamKey string) (string, error) {
	data, err := client.Do(ctx,
		"query($key: String!) { teams(filter: { key: { eq: $key } }) { nodes { id } } }",
		map[string]any{"key": strings.ToUpper(teamKey)})
	if err != nil {
		return "", err
	}
	var out struct {
		Teams struct {
			Nodes []refNode `json:"nodes"`
		} `json:"teams"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("failed to decode teams: %w", err)
	}
	if len(out.Teams.Nodes) == 0 {
		return "", &NotFoundError{Kind: "team", Key: teamKey}
	}
	return out.Teams.Nodes[0].ID, nil
}

func resolveIssueID(ctx context.Context, client *Client, identifier string) (string, error) {
	data, err := client.Do(ctx,
		"query($id: String!) { issues(filter: { identifier: { eq: $id } }, first: 1) { nodes { id } } }",
		map[string]any{"id": strings.ToUpper(identifier)})
	if err != nil {
		return "", err
	}
	var out struct {
		Issues struct {
			Nodes []refNode `json:"nodes"`
		} `json:"issues"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("failed to decode issues: %w", err)
	}
	if len(out.Issues.Nodes) == 0 {
		return "", &NotFoundError{Kind: "issue", Key: identifier}
	}
	return out.Issues.Nodes[0].ID, nil
}
