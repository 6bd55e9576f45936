package mcp

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter wraps http.ResponseWriter with SSE event sending capability
type SSEWriter struct {
	w http.ResponseWriter
}

// NewSSEWriter sets the event-stream headers on w.
// Flushing goes through http.ResponseController so it works behind
// middleware wrappers.
func NewSSEWriter(w http.ResponseWriter) *SSEWriter {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	return &SSEWriter{w: w}
}

// Flush sends headers and any buffered data to the client
func (s *SSEWriter) Flush() error {
	if err := http.NewResponseController(s.w).Flush(); err != nil {
		return fmt.Errorf("failed to flush SSE stream: %w", err)
	}
	return nil
}

// SendEvent sends data as an unnamed SSE event
func (s *SSEWriter) SendEvent(data interface{}) error {
	return s.SendNamedEvent("", data)
}

// SendNamedEvent sends data as an SSE event of the given type.
// An empty event name omits the event line.
func (s *SSEWriter) SendNamedEvent(event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal SSE data: %w", err)
	}

	if event != "" {
		if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
			return fmt.Errorf("failed to write SSE event: %w", err)
		}
	}

	// SSE format: "data: {json}\n\n"
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return fmt.Errorf("failed to write SSE event: %w", err)
	}

	return s.Flush()
}

// SendError sends a JSON-RPC error as an SSE event
func (s *SSEWriter) SendError(id interface{}, rpcErr *RPCError) error {
	return s.SendEvent(NewJSONRPCError(id, rpcErr.Code, rpcErr.Message, rpcErr.Data))
}

// SendResult sends a JSON-RPC success result as an SSE event
func (s *SSEWriter) SendResult(id interface{}, result interface{}) error {
	return s.SendEvent(NewJSONRPCResult(id, result))
}
