package mcp

import (
	"context"
	"encoding/json"

	"supplydash/internal/models"
)

// AnalyticsService is the part of the aggregator the tools call.
type AnalyticsService interface {
	Summary(ctx context.Context, f models.Filters) (*models.AnalyticsSummary, error)
	Drilldown(ctx context.Context, entity string, f models.Filters) (*models.DrilldownResponse, error)
}

// ToolExecutor handles execution of MCP tools
type ToolExecutor struct {
	service AnalyticsService
}

// NewToolExecutor creates a new tool executor over service
func NewToolExecutor(service AnalyticsService) *ToolExecutor {
	return &ToolExecutor{service: service}
}

// ExecuteGetAnalyticsSummary returns the summary for f as JSON text content
func (te *ToolExecutor) ExecuteGetAnalyticsSummary(ctx context.Context, f models.Filters) (*CallToolResult, error) {
	summary, err := te.service.Summary(ctx, f)
	if err != nil {
		return nil, FormatMCPError(err)
	}
	return textResult(summary)
}

// ExecuteGetDrilldown returns the drilldown rows for entity as JSON text content
func (te *ToolExecutor) ExecuteGetDrilldown(ctx context.Context, entity string, f models.Filters) (*CallToolResult, error) {
	rows, err := te.service.Drilldown(ctx, entity, f)
	if err != nil {
		return nil, FormatMCPError(err)
	}
	return textResult(rows)
}

func textResult(v interface{}) (*CallToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, &RPCError{
			Code:    InternalError,
			Message: "Failed to serialize result",
			Data:    err.Error(),
		}
	}

	return &CallToolResult{
		Content: []TextContent{
			{
				Type: "text",
				Text: string(payload),
			},
		},
	}, nil
}
