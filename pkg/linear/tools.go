package linear

import (
	"context"
	"fmt"

	"github.com/linearmcp/linear-mcp-server/pkg/toolsets"
	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var DefaultTools = []string{"all"}

type apiKeyContextKey struct{}

// WithAPIKey returns a context carrying a per-request Linear API key.
func WithAPIKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, apiKeyContextKey{}, key)
}

// APIKeyFromContext returns the per-request API key, if any.
func APIKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(apiKeyContextKey{}).(string)
	return key, ok
}

// extractAPIKeyFromRequest pulls the api_key parameter out of an MCP
// request and returns a context with the key injected
func extractAPIKeyFromRequest(ctx context.Context, request mcp.CallToolRequest) (context.Context, error) {
	key, err := RequiredParam[string](request, "api_key")
	if err != nil {
		return nil, err
	}
	return WithAPIKey(ctx, key), nil
}

// wrapToolHandlerWithAuth wraps a tool handler to extract api_key from the request
// and inject it into the context before calling the original handler
func wrapToolHandlerWithAuth(handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctxWithAuth, err := extractAPIKeyFromRequest(ctx, request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("authentication error: %s", err.Error())), nil
		}
		return handler(ctxWithAuth, request)
	}
}

// createMultiUserTool adds an api_key parameter to the tool schema and wraps the handler
func createMultiUserTool(tool mcp.Tool, handler server.ToolHandlerFunc) server.ServerTool {
	if tool.InputSchema.Properties == nil {
		tool.InputSchema.Properties = make(map[string]interface{})
	}
	tool.InputSchema.Properties["api_key"] = map[string]interface{}{
		"type":        "string",
		"description": "Linear API key for authentication",
	}
	tool.InputSchema.Required = append(tool.InputSchema.Required, "api_key")

	return toolsets.NewServerTool(tool, wrapToolHandlerWithAuth(handler))
}

type toolWrapFunc func(tool mcp.Tool, handler server.ToolHandlerFunc) server.ServerTool

func buildToolsetGroup(readOnly bool, getClient GetClientFn, t translations.TranslationHelperFunc, wrap toolWrapFunc) *toolsets.ToolsetGroup {
	tsg := toolsets.NewToolsetGroup(readOnly)

	contextTools := toolsets.NewToolset("context", "Tools providing the authenticated user's context").
		AddReadTools(
			wrap(GetMe(getClient, t)),
		)
	users := toolsets.NewToolset("users", "Linear user related tools").
		AddReadTools(
			wrap(ListUsers(getClient, t)),
		)
	teams := toolsets.NewToolset("teams", "Linear team and workflow state related tools").
		AddReadTools(
			wrap(ListTeams(getClient, t)),
			wrap(ListWorkflowStates(getClient, t)),
		)
	issues := toolsets.NewToolset("issues", "Linear issue related tools").
		AddReadTools(
			wrap(ListIssues(getClient, t)),
			wrap(GetIssue(getClient, t)),
			wrap(SearchIssues(getClient, t)),
		).
		AddWriteTools(
			wrap(CreateIssue(getClient, t)),
			wrap(UpdateIssue(getClient, t)),
			wrap(DeleteIssue(getClient, t)),
		)
	projects := toolsets.NewToolset("projects", "Linear project related tools").
		AddReadTools(
			wrap(ListProjects(getClient, t)),
		).
		AddWriteTools(
			wrap(CreateProject(getClient, t)),
			wrap(UpdateProject(getClient, t)),
		)
	cycles := toolsets.NewToolset("cycles", "Linear cycle (sprint) related tools").
		AddReadTools(
			wrap(ListCycles(getClient, t)),
		).
		AddWriteTools(
			wrap(CreateCycle(getClient, t)),
		)
	comments := toolsets.NewToolset("comments", "Linear issue comment related tools").
		AddReadTools(
			wrap(ListComments(getClient, t)),
		).
		AddWriteTools(
			wrap(CreateComment(getClient, t)),
			wrap(UpdateComment(getClient, t)),
			wrap(DeleteComment(getClient, t)),
		)
	labels := toolsets.NewToolset("labels", "Linear label related tools").
		AddReadTools(
			wrap(ListLabels(getClient, t)),
		).
		AddWriteTools(
			wrap(CreateLabel(getClient, t)),
			wrap(DeleteLabel(getClient, t)),
		)
	documents := toolsets.NewToolset("documents", "Linear document related tools").
		AddReadTools(
			wrap(ListDocuments(getClient, t)),
		).
		AddWriteTools(
			wrap(CreateDocument(getClient, t)),
			wrap(UpdateDocument(getClient, t)),
			wrap(DeleteDocument(getClient, t)),
		)
	webhooks := toolsets.NewToolset("webhooks", "Linear webhook related tools").
		AddReadTools(
			wrap(ListWebhooks(getClient, t)),
		).
		AddWriteTools(
			wrap(CreateWebhook(getClient, t)),
			wrap(DeleteWebhook(getClient, t)),
		)

	tsg.AddToolset(contextTools)
	tsg.AddToolset(users)
	tsg.AddToolset(teams)
	tsg.AddToolset(issues)
	tsg.AddToolset(projects)
	tsg.AddToolset(cycles)
	tsg.AddToolset(comments)
	tsg.AddToolset(labels)
	tsg.AddToolset(documents)
	tsg.AddToolset(webhooks)

	return tsg
}

// InitToolsets builds the full toolset group and enables the requested toolsets.
func InitToolsets(passedToolsets []string, readOnly bool, getClient GetClientFn, t translations.TranslationHelperFunc) (*toolsets.ToolsetGroup, error) {
	tsg := buildToolsetGroup(readOnly, getClient, t, toolsets.NewServerTool)
	if err := tsg.EnableToolsets(passedToolsets); err != nil {
		return nil, err
	}
	return tsg, nil
}

// InitMultiUserToolsets is like InitToolsets but every tool takes an
// api_key parameter so a shared server can act for many users.
func InitMultiUserToolsets(passedToolsets []string, readOnly bool, getClient GetClientFn, t translations.TranslationHelperFunc) (*toolsets.ToolsetGroup, error) {
	tsg := buildToolsetGroup(readOnly, getClient, t, createMultiUserTool)
	if err := tsg.EnableToolsets(passedToolsets); err != nil {
		return nil, err
	}
	return tsg, nil
}

// InitContextToolset returns the context toolset on its own. It is
// always enabled.
func InitContextToolset(getClient GetClientFn, t translations.TranslationHelperFunc) *toolsets.Toolset {
	contextTools := toolsets.NewToolset("context", "Tools providing the authenticated user's context").
		AddReadTools(
			toolsets.NewServerTool(GetMe(getClient, t)),
		)
	contextTools.Enabled = true
	return contextTools
}

// InitDynamicToolset creates a toolset for discovering and enabling
// other toolsets at runtime.
func InitDynamicToolset(s *server.MCPServer, tsg *toolsets.ToolsetGroup, t translations.TranslationHelperFunc) *toolsets.Toolset {
	dynamicToolSelection := toolsets.NewToolset("dynamic", "Discover and enable additional toolsets on demand").
		AddReadTools(
			toolsets.NewServerTool(ListAvailableToolsets(tsg, t)),
			toolsets.NewServerTool(GetToolsetsTools(tsg, t)),
			toolsets.NewServerTool(EnableToolset(s, tsg, t)),
		)
	dynamicToolSelection.Enabled = true
	return dynamicToolSelection
}
