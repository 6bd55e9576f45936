package mcp

import (
	"context"

	"supplydash/internal/models"
)

// ToolInvoker handles MCP tool invocation with parameter validation
type ToolInvoker struct {
	executor   *ToolExecutor
	validators map[string]*SchemaValidator
}

// NewToolInvoker compiles the schema of every tool
func NewToolInvoker(executor *ToolExecutor) (*ToolInvoker, error) {
	validators := make(map[string]*SchemaValidator)
	for _, tool := range Tools() {
		v, err := NewSchemaValidator(tool.InputSchema)
		if err != nil {
			return nil, err
		}
		validators[tool.Name] = v
	}

	return &ToolInvoker{
		executor:   executor,
		validators: validators,
	}, nil
}

// ListTools returns the tools/list result
func (ti *ToolInvoker) ListTools() *ListToolsResult {
	return &ListToolsResult{Tools: Tools()}
}

// InvokeTool validates args and dispatches to the named tool
func (ti *ToolInvoker) InvokeTool(ctx context.Context, toolName string, args map[string]interface{}) (*CallToolResult, error) {
	validator, ok := ti.validators[toolName]
	if !ok {
		return nil, &RPCError{
			Code:    MethodNotFound,
			Message: "Unknown tool",
			Data:    toolName,
		}
	}

	if err := validator.Validate(args); err != nil {
		return nil, ErrorFromValidation(err)
	}

	filters := models.FiltersFromArgs(args)

	switch toolName {
	case ToolGetDrilldown:
		entity, _ := args["entity"].(string)
		return ti.executor.ExecuteGetDrilldown(ctx, entity, filters)
	default:
		return ti.executor.ExecuteGetAnalyticsSummary(ctx, filters)
	}
}
