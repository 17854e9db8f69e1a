package linear

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ListDocuments creates a tool to list documents, optionally scoped to a project.
func ListDocuments(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_documents",
			mcp.WithDescription(t("TOOL_LIST_DOCUMENTS_DESCRIPTION", "List documents, optionally filtered by project")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_LIST_DOCUMENTS_USER_TITLE", "List documents"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithString("project_id",
				mcp.Description("Only include documents in this project"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of documents to return (default 50)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, err := OptionalParam[string](request, "project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			limit, err := OptionalIntParamWithDefault(request, "limit", 50)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			vars := map[string]any{"first": limit}
			var clauses []filterClause
			if projectID != "" {
				vars["projectId"] = projectID
				clauses = append(clauses, filterClause{"$projectId: ID!", "project: { id: { eq: $projectId } }"})
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			data, err := client.Do(ctx, buildListQuery("documents", documentFields, clauses), vars)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				Documents struct {
					Nodes []documentNode `json:"nodes"`
				} `json:"documents"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode documents: %w", err)
			}

			documents := make([]Document, 0, len(out.Documents.Nodes))
			for _, n := range out.Documents.Nodes {
				documents = append(documents, parseDocument(n))
			}
			return MarshalledTextResult(documents), nil
		}
}

// CreateDocument creates a tool to create a document in a project.
func CreateDocument(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_document",
			mcp.WithDescription(t("TOOL_CREATE_DOCUMENT_DESCRIPTION", "Create a new document in a project")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_CREATE_DOCUMENT_USER_TITLE", "Create document"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Document title"),
			),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("ID of the project the document belongs to"),
			),
			mcp.WithString("content",
				mcp.Description("Document content (markdown)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			title, err := RequiredParam[string](request, "title")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			projectID, err := RequiredParam[string](request, "project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			content, err := OptionalParam[string](request, "content")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			input := mutationInput{}
			input.set("title", title)
			input.set("projectId", projectID)
			if content != "" {
				input.set("content", content)
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			mutation := fmt.Sprintf("mutation($input: DocumentCreateInput!) { documentCreate(input: $input) { success document { %s } } }", documentFields)
			data, err := client.Do(ctx, mutation, map[string]any{"input": map[string]any(input)})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				DocumentCreate struct {
					Success  bool         `json:"success"`
					Document documentNode `json:"document"`
				} `json:"documentCreate"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode documentCreate: %w", err)
			}
			if !out.DocumentCreate.Success {
				opErr := &OperationFailedError{Op: "documentCreate"}
				return mcp.NewToolResultError(opErr.Error()), nil
			}
			document := parseDocument(out.DocumentCreate.Document)
			return MarshalledTextResult(document), nil
		}
}

// UpdateDocument creates a tool to update a document's title or content.
func UpdateDocument(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("update_document",
			mcp.WithDescription(t("TOOL_UPDATE_DOCUMENT_DESCRIPTION", "Update a document")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_UPDATE_DOCUMENT_USER_TITLE", "Update document"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("document_id",
				mcp.Required(),
				mcp.Description("Document ID"),
			),
			mcp.WithString("title",
				mcp.Description("New document title"),
			),
			mcp.WithString("content",
				mcp.Description("New document content (markdown)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			documentID, err := RequiredParam[string](request, "document_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			input := mutationInput{}
			for _, field := range []string{"title", "content"} {
				if value, ok, err := OptionalParamOK[string](request, field); err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				} else if ok {
					input.set(field, value)
				}
			}
			if len(input) == 0 {
				argErr := &InvalidArgumentError{Reason: "no fields to update"}
				return mcp.NewToolResultError(argErr.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			mutation := fmt.Sprintf("mutation($id: ID!, $input: DocumentUpdateInput!) { documentUpdate(id: $id, input: $input) { success document { %s } } }", documentFields)
			data, err := client.Do(ctx, mutation, map[string]any{"id": documentID, "input": map[string]any(input)})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				DocumentUpdate struct {
					Success  bool         `json:"success"`
					Document documentNode `json:"document"`
				} `json:"documentUpdate"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode documentUpdate: %w", err)
			}
			if !out.DocumentUpdate.Success {
				opErr := &OperationFailedError{Op: "documentUpdate"}
				return mcp.NewToolResultError(opErr.Error()), nil
			}
			document := parseDocument(out.DocumentUpdate.Document)
			return MarshalledTextResult(document), nil
		}
}

// DeleteDocument creates a tool to delete a document.
func DeleteDocument(getClient GetClientFn, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("delete_document",
			mcp.WithDescription(t("TOOL_DELETE_DOCUMENT_DESCRIPTION", "Delete a document")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_DELETE_DOCUMENT_USER_TITLE", "Delete document"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("document_id",
				mcp.Required(),
				mcp.Description("Document ID"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			documentID, err := RequiredParam[string](request, "document_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get Linear client: %w", err)
			}

			data, err := client.Do(ctx,
				"mutation($id: ID!) { documentDelete(id: $id) { success } }",
				map[string]any{"id": documentID})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var out struct {
				DocumentDelete struct {
					Success bool `json:"success"`
				} `json:"documentDelete"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("failed to decode documentDelete: %w", err)
			}
			return MarshalledTextResult(out.DocumentDelete.Success), nil
		}
}
