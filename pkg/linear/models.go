// Package linear implements the Linear MCP tool catalogue: a thin,
// stateless translation layer between typed tool calls and the Linear
// GraphQL API.
package linear

// Priority is an issue priority as Linear encodes it: 0 is "no priority"
// and, counterintuitively, 1 is the most urgent.
type Priority int

const (
	PriorityNone   Priority = 0
	PriorityUrgent Priority = 1
	PriorityHigh   Priority = 2
	PriorityMedium Priority = 3
	PriorityLow    Priority = 4
)

var priorityNames = map[Priority]string{
	PriorityNone:   "none",
	PriorityUrgent: "urgent",
	PriorityHigh:   "high",
	PriorityMedium: "medium",
	PriorityLow:    "low",
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "invalid"
}

// Validate returns an InvalidArgumentError if p is outside the 0-4 range
// the API accepts.
func (p Priority) Validate() error {
	if p < PriorityNone || p > PriorityLow {
		return &InvalidArgumentError{Reason: "priority must be between 0 (none) and 4 (low)"}
	}
	return nil
}

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Active bool   `json:"active"`
}

type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// WorkflowState is a status within a team's workflow. Type is one of
// backlog, unstarted, started, completed, canceled.
type WorkflowState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Issue is the flattened representation of a Linear issue. Identifier is
// the human-facing key ("ENG-123") used for lookups; ID is the opaque
// primary key the API requires for mutations. Labels and LabelIDs are
// parallel, index-aligned slices.
type Issue struct {
	ID          string    `json:"id"`
	Identifier  string    `json:"identifier"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	State       string    `json:"state,omitempty"`
	StateID     string    `json:"state_id,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Estimate    *float64  `json:"estimate,omitempty"`
	DueDate     string    `json:"due_date,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	AssigneeID  string    `json:"assignee_id,omitempty"`
	Project     string    `json:"project,omitempty"`
	ProjectID   string    `json:"project_id,omitempty"`
	CycleID     string    `json:"cycle_id,omitempty"`
	Labels      []string  `json:"labels"`
	LabelIDs    []string  `json:"label_ids"`
	ParentID    string    `json:"parent_id,omitempty"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   string    `json:"created_at,omitempty"`
	UpdatedAt   string    `json:"updated_at,omitempty"`
}

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	State       string `json:"state,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Cycle is a time-boxed iteration scoped to a team. Number is the
// sequence within the team.
type Cycle struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Number   int    `json:"number"`
	StartsAt string `json:"starts_at,omitempty"`
	EndsAt   string `json:"ends_at,omitempty"`
}

type Comment struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	User      string `json:"user,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type Document struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	URL       string `json:"url,omitempty"`
}

type Webhook struct {
	ID            string   `json:"id"`
	Label         string   `json:"label,omitempty"`
	URL           string   `json:"url"`
	Enabled       bool     `json:"enabled"`
	ResourceTypes []string `json:"resource_types"`
}
