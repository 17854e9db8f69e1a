package linear

// Wire-side node shapes as the GraphQL API returns them. Relationship
// fields arrive as nested objects or null; the parse functions flatten
// them into the record model without ever dereferencing an absent one.

type refNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type labelConnection struct {
	Nodes []refNode `json:"nodes"`
}

type issueNode struct {
	ID          string          `json:"id"`
	Identifier  string          `json:"identifier"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	Priority    *float64        `json:"priority"`
	Estimate    *float64        `json:"estimate"`
	DueDate     string          `json:"dueDate"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
	State       *refNode        `json:"state"`
	Assignee    *refNode        `json:"assignee"`
	Project     *refNode        `json:"project"`
	Cycle       *refNode        `json:"cycle"`
	Parent      *refNode        `json:"parent"`
	Labels      labelConnection `json:"labels"`
}

func parseIssue(n issueNode) Issue {
	issue := Issue{
		ID:          n.ID,
		Identifier:  n.Identifier,
		Title:       n.Title,
		Description: n.Description,
		Estimate:    n.Estimate,
		DueDate:     n.DueDate,
		URL:         n.URL,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
		Labels:      make([]string, 0, len(n.Labels.Nodes)),
		LabelIDs:    make([]string, 0, len(n.Labels.Nodes)),
	}
	if n.Priority != nil {
		p := Priority(*n.Priority)
		issue.Priority = &p
	}
	if n.State != nil {
		issue.State = n.State.Name
		issue.StateID = n.State.ID
	}
	if n.Assignee != nil {
		issue.Assignee = n.Assignee.Name
		issue.AssigneeID = n.Assignee.ID
	}
	if n.Project != nil {
		issue.Project = n.Project.Name
		issue.ProjectID = n.Project.ID
	}
	if n.Cycle != nil {
		issue.CycleID = n.Cycle.ID
	}
	if n.Parent != nil {
		issue.ParentID = n.Parent.ID
	}
	for _, label := range n.Labels.Nodes {
		issue.Labels = append(issue.Labels, label.Name)
		issue.LabelIDs = append(issue.LabelIDs, label.ID)
	}
	return issue
}

func parseIssues(nodes []issueNode) []Issue {
	issues := make([]Issue, 0, len(nodes))
	for _, n := range nodes {
		issues = append(issues, parseIssue(n))
	}
	return issues
}

type commentNode struct {
	ID        string   `json:"id"`
	Body      string   `json:"body"`
	CreatedAt string   `json:"createdAt"`
	User      *refNode `json:"user"`
}

func parseComment(n commentNode) Comment {
	comment := Comment{
		ID:        n.ID,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
	}
	if n.User != nil {
		comment.User = n.User.Name
		comment.UserID = n.User.ID
	}
	return comment
}

type documentNode struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	URL     string   `json:"url"`
	Project *refNode `json:"project"`
}

func parseDocument(n documentNode) Document {
	doc := Document{
		ID:      n.ID,
		Title:   n.Title,
		Content: n.Content,
		URL:     n.URL,
	}
	if n.Project != nil {
		doc.ProjectID = n.Project.ID
	}
	return doc
}

type webhookNode struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	URL           string   `json:"url"`
	Enabled       *bool    `json:"enabled"`
	ResourceTypes []string `json:"resourceTypes"`
}

func parseWebhook(n webhookNode) Webhook {
	webhook := Webhook{
		ID:            n.ID,
		Label:         n.Label,
		URL:           n.URL,
		Enabled:       true,
		ResourceTypes: n.ResourceTypes,
	}
	if n.Enabled != nil {
		webhook.Enabled = *n.Enabled
	}
	if webhook.ResourceTypes == nil {
		webhook.ResourceTypes = []string{}
	}
	return webhook
}

type cycleNode struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
}

func parseCycle(n cycleNode) Cycle {
	return Cycle{
		ID:       n.ID,
		Name:     n.Name,
		Number:   n.Number,
		StartsAt: n.StartsAt,
		EndsAt:   n.EndsAt,
	}
}
