package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplydash/internal/aggregator"
	"supplydash/internal/models"
	"supplydash/internal/store"
)

// fakeService records the last call and returns canned results.
type fakeService struct {
	filters models.Filters
	entity  string
	err     error
}

func (f *fakeService) Summary(_ context.Context, filters models.Filters) (*models.AnalyticsSummary, error) {
	f.filters = filters
	if f.err != nil {
		return nil, f.err
	}
	return &models.AnalyticsSummary{
		RevenueByCategory:   []models.RevenueDatum{{Date: "2024-01-01", Category: "Respiratory", Revenue: 1000}},
		SupplierReliability: []models.SupplierReliabilityDatum{},
		Metadata:            models.SummaryMetadata{LastUpdated: "2024-06-30T15:00:00Z"},
	}, nil
}

func (f *fakeService) Drilldown(_ context.Context, entity string, filters models.Filters) (*models.DrilldownResponse, error) {
	f.filters = filters
	f.entity = entity
	if f.err != nil {
		return nil, f.err
	}
	return &models.DrilldownResponse{Entity: entity, Rows: []models.Order{}}, nil
}

func newInvoker(t *testing.T, svc AnalyticsService) *ToolInvoker {
	t.Helper()
	invoker, err := NewToolInvoker(NewToolExecutor(svc))
	require.NoError(t, err)
	return invoker
}

func TestParseJSONRPCRequest(t *testing.T) {
	req, err := ParseJSONRPCRequest(strings.NewReader(`{"jsonrpc":"2.0","id":7,"method":"tools/list"}`))
	require.NoError(t, err)
	assert.Equal(t, MethodListTools, req.Method)
	assert.Equal(t, float64(7), req.ID)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"invalid json", `{`, ParseError},
		{"wrong version", `{"jsonrpc":"1.0","id":1,"method":"tools/list"}`, InvalidRequest},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, InvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSONRPCRequest(strings.NewReader(tt.body))
			var rpcErr *RPCError
			require.ErrorAs(t, err, &rpcErr)
			assert.Equal(t, tt.code, rpcErr.Code)
		})
	}
}

func TestParseCallToolParams(t *testing.T) {
	p, err := ParseCallToolParams(json.RawMessage(`{"name":"get_drilldown"}`))
	require.NoError(t, err)
	assert.Equal(t, ToolGetDrilldown, p.Name)
	assert.NotNil(t, p.Arguments)

	for _, raw := range []string{``, `[]`, `{"arguments":{}}`} {
		_, err := ParseCallToolParams(json.RawMessage(raw))
		var rpcErr *RPCError
		require.ErrorAs(t, err, &rpcErr, "params %q", raw)
		assert.Equal(t, InvalidParams, rpcErr.Code)
	}
}

func TestListTools(t *testing.T) {
	got := newInvoker(t, &fakeService{}).ListTools()
	require.Len(t, got.Tools, 2)
	assert.Equal(t, ToolGetAnalyticsSummary, got.Tools[0].Name)
	assert.Equal(t, ToolGetDrilldown, got.Tools[1].Name)
	assert.Contains(t, got.Tools[1].InputSchema["properties"], "entity")
}

func TestInvokeTool_Summary(t *testing.T) {
	svc := &fakeService{}
	invoker := newInvoker(t, svc)

	result, err := invoker.InvokeTool(context.Background(), ToolGetAnalyticsSummary, map[string]interface{}{
		"category":  "Respiratory",
		"from":      "2024-13-45",
		"riskLevel": "extreme",
		"region":    42.0,
	})
	require.NoError(t, err)
	assert.Equal(t, models.Filters{Category: "Respiratory"}, svc.filters)

	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)

	var summary models.AnalyticsSummary
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &summary))
	assert.Equal(t, 1000.0, summary.RevenueByCategory[0].Revenue)
}

func TestInvokeTool_Drilldown(t *testing.T) {
	svc := &fakeService{}
	invoker := newInvoker(t, svc)

	_, err := invoker.InvokeTool(context.Background(), ToolGetDrilldown, map[string]interface{}{
		"entity":     "inventory",
		"supplierId": "SUP-001",
	})
	require.NoError(t, err)
	assert.Equal(t, "inventory", svc.entity)
	assert.Equal(t, "SUP-001", svc.filters.SupplierID)

	_, err = invoker.InvokeTool(context.Background(), ToolGetDrilldown, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "", svc.entity)
}

func TestInvokeTool_RejectsUnknownEntity(t *testing.T) {
	svc := &fakeService{}
	invoker := newInvoker(t, svc)

	_, err := invoker.InvokeTool(context.Background(), ToolGetDrilldown, map[string]interface{}{"entity": "shipments"})
	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, InvalidParams, rpcErr.Code)
	data := rpcErr.Data.(map[string]interface{})
	assert.Equal(t, "/entity", data["field"])
	assert.Empty(t, svc.entity, "service must not be called")
}

func TestInvokeTool_UnknownTool(t *testing.T) {
	_, err := newInvoker(t, &fakeService{}).InvokeTool(context.Background(), "get_report", nil)
	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, MethodNotFound, rpcErr.Code)
}

func TestInvokeTool_ServiceErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w x", aggregator.ErrUnsupportedEntity), InvalidParams},
		{fmt.Errorf("load snapshot: %w", store.ErrNoSnapshot), DataUnavailable},
		{context.DeadlineExceeded, TimeoutExceeded},
		{errors.New("boom"), InternalError},
	}
	for _, tt := range tests {
		invoker := newInvoker(t, &fakeService{err: tt.err})
		_, err := invoker.InvokeTool(context.Background(), ToolGetAnalyticsSummary, map[string]interface{}{})
		var rpcErr *RPCError
		require.ErrorAs(t, err, &rpcErr)
		assert.Equal(t, tt.code, rpcErr.Code, "error %v", tt.err)
	}
}

func TestSSEWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewSSEWriter(rec)

	require.NoError(t, w.SendNamedEvent("dispute_filed", map[string]string{"orderId": "o1"}))
	require.NoError(t, w.SendResult(1, ListToolsResult{Tools: []Tool{}}))
	require.NoError(t, w.SendError(2, &RPCError{Code: InvalidParams, Message: "bad"}))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		"event: dispute_filed\ndata: {\"orderId\":\"o1\"}\n\n"+
			"data: {\"jsonrpc\":\"2.0\",\"id\":1,\"result\":{\"tools\":[]}}\n\n"+
			"data: {\"jsonrpc\":\"2.0\",\"id\":2,\"error\":{\"code\":-32602,\"message\":\"bad\"}}\n\n",
		rec.Body.String())
}
