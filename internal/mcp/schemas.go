package mcp

import "supplydash/internal/aggregator"

// Tool names
const (
	ToolGetAnalyticsSummary = "get_analytics_summary"
	ToolGetDrilldown        = "get_drilldown"
)

// filterProperties describes the shared filter arguments. Values are not
// type-checked: malformed filters are treated as absent, as on the HTTP API.
func filterProperties() map[string]interface{} {
	return map[string]interface{}{
		"from":       map[string]interface{}{"description": "Earliest order date, inclusive (YYYY-MM-DD)"},
		"to":         map[string]interface{}{"description": "Latest order date, inclusive (YYYY-MM-DD)"},
		"category":   map[string]interface{}{"description": "Product category (e.g., Respiratory, Surgical)"},
		"deviceType": map[string]interface{}{"description": "Device type within a category"},
		"supplierId": map[string]interface{}{"description": "Supplier identifier (e.g., SUP-001)"},
		"region":     map[string]interface{}{"description": "Buyer and supplier region (e.g., Midwest, International)"},
		"riskLevel":  map[string]interface{}{"description": "Supplier risk tier: all, low, medium or high"},
	}
}

// GetAnalyticsSummaryToolSchema returns the JSON Schema for get_analytics_summary parameters
func GetAnalyticsSummaryToolSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": filterProperties(),
	}
}

// GetDrilldownToolSchema returns the JSON Schema for get_drilldown parameters
// entity must be one of the supported record types when present
func GetDrilldownToolSchema() map[string]interface{} {
	props := filterProperties()
	props["entity"] = map[string]interface{}{
		"type":        "string",
		"description": "Record type to list; defaults to orders",
		"enum":        []string{aggregator.EntityOrders, aggregator.EntityInventory, aggregator.EntityCompliance},
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
}

// GetAnalyticsSummaryTool returns the complete MCP Tool definition for get_analytics_summary
func GetAnalyticsSummaryTool() Tool {
	return Tool{
		Name:        ToolGetAnalyticsSummary,
		Description: "Daily revenue by category with anomaly flags, plus the supplier reliability scorecard, for the given filters",
		InputSchema: GetAnalyticsSummaryToolSchema(),
	}
}

// GetDrilldownTool returns the complete MCP Tool definition for get_drilldown
func GetDrilldownTool() Tool {
	return Tool{
		Name:        ToolGetDrilldown,
		Description: "Raw orders, inventory positions or compliance documents matching the given filters",
		InputSchema: GetDrilldownToolSchema(),
	}
}

// Tools lists every tool in the order tools/list reports them
func Tools() []Tool {
	return []Tool{GetAnalyticsSummaryTool(), GetDrilldownTool()}
}
