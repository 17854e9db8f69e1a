package linear

import (
	"context"

	"github.com/linearmcp/linear-mcp-server/pkg/toolsets"
	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ListAvailableToolsets creates a tool to list the toolsets this server
// can enable, with their current state.
func ListAvailableToolsets(tsg *toolsets.ToolsetGroup, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_available_toolsets",
			mcp.WithDescription(t("TOOL_LIST_AVAILABLE_TOOLSETS_DESCRIPTION", "List all available toolsets this server can offer, providing the enabled status of each. Use this when a task could be achieved with a Linear tool and the currently available tools aren't enough.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_LIST_AVAILABLE_TOOLSETS_USER_TITLE", "List available toolsets"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			payload := []map[string]string{}
			for name, ts := range tsg.Toolsets {
				status := "inactive"
				if ts.Enabled {
					status = "active"
				}
				payload = append(payload, map[string]string{
					"name":              name,
					"description":       ts.Description,
					"can_enable":        "true",
					"currently_enabled": status,
				})
			}
			return MarshalledTextResult(payload), nil
		}
}

// GetToolsetsTools creates a tool to list the tools a specific toolset
// would provide if enabled.
func GetToolsetsTools(tsg *toolsets.ToolsetGroup, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_toolset_tools",
			mcp.WithDescription(t("TOOL_GET_TOOLSET_TOOLS_DESCRIPTION", "Lists all the capabilities that are offered by a given toolset. Use this to get clarity on whether enabling a toolset would help you to complete a task.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_GET_TOOLSET_TOOLS_USER_TITLE", "List all tools in a toolset"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithString("toolset",
				mcp.Required(),
				mcp.Description("The name of the toolset to list tools for"),
			),
		),
		func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			toolsetName, err := RequiredParam[string](request, "toolset")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			toolset, err := tsg.GetToolset(toolsetName)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			payload := []map[string]string{}
			for _, st := range toolset.GetAvailableTools() {
				payload = append(payload, map[string]string{
					"name":        st.Tool.Name,
					"description": st.Tool.Description,
					"toolset":     toolsetName,
				})
			}
			return MarshalledTextResult(payload), nil
		}
}

// EnableToolset creates a tool to enable a toolset and register its
// tools with the running server.
func EnableToolset(s *server.MCPServer, tsg *toolsets.ToolsetGroup, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("enable_toolset",
			mcp.WithDescription(t("TOOL_ENABLE_TOOLSET_DESCRIPTION", "Enable one of the sets of tools the Linear MCP server provides. Use get_toolset_tools and list_available_toolsets first to see what this will offer.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title: t("TOOL_ENABLE_TOOLSET_USER_TITLE", "Enable a toolset"),
				// This tool modifies the server state, but not Linear data.
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("toolset",
				mcp.Required(),
				mcp.Description("The name of the toolset to enable"),
			),
		),
		func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			toolsetName, err := RequiredParam[string](request, "toolset")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			toolset, err := tsg.GetToolset(toolsetName)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if toolset.Enabled {
				return mcp.NewToolResultText("Toolset " + toolsetName + " is already enabled"), nil
			}

			toolset.Enabled = true
			toolset.RegisterTools(s)

			return mcp.NewToolResultText("Toolset " + toolsetName + " enabled"), nil
		}
}
