package mcp

import (
	"context"
	"errors"
	"fmt"

	"supplydash/internal/aggregator"
	"supplydash/internal/store"
)

// FormatMCPError maps tool errors onto JSON-RPC errors
func FormatMCPError(err error) *RPCError {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ErrorFromValidation(ve)
	}

	switch {
	case errors.Is(err, aggregator.ErrUnsupportedEntity):
		return &RPCError{
			Code:    InvalidParams,
			Message: "Unsupported entity",
			Data:    err.Error(),
		}
	case errors.Is(err, store.ErrNoSnapshot):
		return &RPCError{
			Code:    DataUnavailable,
			Message: "Dataset unavailable",
			Data:    err.Error(),
		}
	case errors.Is(err, context.DeadlineExceeded):
		return &RPCError{
			Code:    TimeoutExceeded,
			Message: "Request timeout",
		}
	}

	return &RPCError{
		Code:    InternalError,
		Message: fmt.Sprintf("Internal error: %s", err.Error()),
	}
}

// ErrorFromValidation converts a validation error to RPC error
func ErrorFromValidation(err error) *RPCError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return &RPCError{
			Code:    InvalidParams,
			Message: "Parameter validation failed",
			Data: map[string]interface{}{
				"field":   ve.Field,
				"message": ve.Message,
			},
		}
	}
	return &RPCError{
		Code:    InvalidParams,
		Message: fmt.Sprintf("Validation failed: %s", err.Error()),
	}
}
