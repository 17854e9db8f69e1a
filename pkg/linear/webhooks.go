package linear

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ListWebhooks creates a tool to list all webhooks in the workspace.
func ListWebhooks(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_webhooks",
			mcp.WithDescription(t("TOOL_LIST_WEBHOOKS_DESCRIPTION", "List webhooks")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_LIST_WEBHOOKS_USER_TITLE", "List webhooks"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of webhooks to return (default 50)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			limit, err := OptionalIntParamWithDefault(request, "limit", 50)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			data, err := client.Do(ctx, buildListQuery("webhooks", webhookFields, nil),
				map[string]any{"first": limit})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				Webhooks struct {
					Nodes []webhookNode `json:"nodes"`
				} `json:"webhooks"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode webhooks: %w", err)
			}

			webhooks := make([]Webhook, 0, len(out.Webhooks.Nodes))
			for _, n := range out.Webhooks.Nodes {
				webhooks = append(webhooks, parseWebhook(n))
			}
			return MarshalledTextResult(webhooks), nil
		}
}

// CreateWebhook creates a tool to register a webhook endpoint.
func CreateWebhook(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_webhook",
			mcp.WithDescription(t("TOOL_CREATE_WEBHOOK_DESCRIPTION", "Create a webhook. Resource types include Issue, Comment, Project, Cycle and IssueLabel.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_CREATE_WEBHOOK_USER_TITLE", "Create webhook"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("url",
				mcp.Required(),
				mcp.Description("Endpoint URL to deliver events to"),
			),
			mcp.WithArray("resource_types",
				mcp.Required(),
				mcp.Description("Resource types to subscribe to"),
				mcp.Items(
					map[string]interface{}{
						"type": "string",
					},
				),
			),
			mcp.WithString("team_key",
				mcp.Description("Restrict the webhook to this team, e.g. ENG"),
			),
			mcp.WithString("label",
				mcp.Description("Human-readable webhook label"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			url, err := RequiredParam[string](request, "url")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			resourceTypes, err := RequiredStringArrayParam(request, "resource_types")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			teamKey, err := OptionalParam[string](request, "team_key")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			label, err := OptionalParam[string](request, "label")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			input := mutationInput{}
			input.set("url", url)
			input.set("resourceTypes", resourceTypes)
			if teamKey != "" {
				teamID, err := resolveTeamID(ctx, client, teamKey)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				input.set("teamId", teamID)
			}
			if label != "" {
				input.set("label", label)
			}

			mutation := fmt.Sprintf("mutation($input: WebhookCreateInput!) { webhookCreate(input: $input) { success webhook { %s } } }", webhookFields)
			data, err := client.Do(ctx, mutation, map[string]any{"input": map[string]any(input)})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				WebhookCreate struct {
					Success bool        `json:"success"`
					Webhook webhookNode `json:"webhook"`
				} `json:"webhookCreate"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode webhookCreate: %w", err)
			}
			if !out.WebhookCreate.Success {
				opErr := &OperationFailedError{Op: "webhookCreate"}
				return mcp.NewToolResultError(opErr.Error()), nil
			}
			webhook := parseWebhook(out.WebhookCreate.Webhook)
			return MarshalledTextResult(webhook), nil
		}
}

// DeleteWebhook creates a tool to delete a webhook.
func DeleteWebhook(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("delete_webhook",
			mcp.WithDescription(t("TOOL_DELETE_WEBHOOK_DESCRIPTION", "Delete a webhook")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_DELETE_WEBHOOK_USER_TITLE", "Delete webhook"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("webhook_id",
				mcp.Required(),
				mcp.Description("Webhook ID"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var params struct {
				WebhookID string `mapstructure:"webhook_id"`
			}
			if err := mapstructure.Decode(request.GetArguments(), &params); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if params.WebhookID == "" {
				return mcp.NewToolResultError("missing required parameter: webhook_id"), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			data, err := client.Do(ctx,
				"mutation($id: ID!) { webhookDelete(id: $id) { success } }",
				map[string]any{"id": params.WebhookID})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				WebhookDelete struct {
					Success bool `json:"success"`
				} `json:"webhookDelete"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode webhookDelete: %w", err)
			}
			return MarshalledTextResult(out.WebhookDelete.Success), nil
		}
}
