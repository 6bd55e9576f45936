package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"supplydash/internal/mcp"
)

// MCPInvokeHandler handles MCP JSON-RPC requests via SSE transport
type MCPInvokeHandler struct {
	invoker *mcp.ToolInvoker
	timeout time.Duration
	logger  *slog.Logger
}

// NewMCPInvokeHandler creates a new MCP handler over service
func NewMCPInvokeHandler(service mcp.AnalyticsService, timeout time.Duration, logger *slog.Logger) (*MCPInvokeHandler, error) {
	invoker, err := mcp.NewToolInvoker(mcp.NewToolExecutor(service))
	if err != nil {
		return nil, err
	}

	return &MCPInvokeHandler{
		invoker: invoker,
		timeout: timeout,
		logger:  logger.With("handler", "mcp"),
	}, nil
}

// ServeHTTP handles POST /mcp. Every outcome, errors included, is a
// single JSON-RPC response sent as one SSE event.
func (h *MCPInvokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	correlationID := GetCorrelationID(r.Context())

	sseWriter := mcp.NewSSEWriter(w)

	req, err := mcp.ParseJSONRPCRequest(r.Body)
	if err != nil {
		sseWriter.SendError(nil, mcp.FormatMCPError(err))
		return
	}

	switch req.Method {
	case mcp.MethodListTools, "list_tools":
		mcp.LogMCPRequest(r.Context(), h.logger, req.Method, "", correlationID)
		sseWriter.SendResult(req.ID, h.invoker.ListTools())
		return
	case mcp.MethodCallTool, "call_tool":
	default:
		sseWriter.SendError(req.ID, &mcp.RPCError{
			Code:    mcp.MethodNotFound,
			Message: "Unknown method (expected 'tools/list' or 'tools/call')",
			Data:    req.Method,
		})
		return
	}

	toolParams, err := mcp.ParseCallToolParams(req.Params)
	if err != nil {
		sseWriter.SendError(req.ID, mcp.FormatMCPError(err))
		return
	}

	mcp.LogMCPRequest(r.Context(), h.logger, req.Method, toolParams.Name, correlationID)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	done := make(chan struct{})
	var result *mcp.CallToolResult
	var invokeErr error

	go func() {
		result, invokeErr = h.invoker.InvokeTool(ctx, toolParams.Name, toolParams.Arguments)
		close(done)
	}()

	select {
	case <-done:
		latencyMS := time.Since(start).Milliseconds()

		if invokeErr != nil {
			rpcErr := mcp.FormatMCPError(invokeErr)
			mcp.LogMCPError(ctx, h.logger, req.Method, toolParams.Name, correlationID, rpcErr.Code, rpcErr.Message)
			sseWriter.SendError(req.ID, rpcErr)
			return
		}

		mcp.LogMCPSuccess(ctx, h.logger, req.Method, toolParams.Name, correlationID, latencyMS)
		sseWriter.SendResult(req.ID, result)

	case <-ctx.Done():
		latencyMS := time.Since(start).Milliseconds()

		mcp.LogMCPError(ctx, h.logger, req.Method, toolParams.Name, correlationID, mcp.TimeoutExceeded, "Request timeout")

		sseWriter.SendError(req.ID, &mcp.RPCError{
			Code:    mcp.TimeoutExceeded,
			Message: "Request timeout",
			Data: map[string]interface{}{
				"timeout_ms": h.timeout.Milliseconds(),
				"elapsed_ms": latencyMS,
			},
		})
	}
}
