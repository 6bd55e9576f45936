package handlers

import (
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"supplydash/internal/mcp"
	"supplydash/internal/store"
)

// SnapshotSource provides the current snapshot.
type SnapshotSource interface {
	Snapshot() (*store.Snapshot, error)
}

// StreamHandler replays the activity feed of the snapshot current at
// connect time as server-sent events, one per interval, starting at a
// random position and wrapping around.
type StreamHandler struct {
	source   SnapshotSource
	interval time.Duration
	logger   *slog.Logger

	offset func(n int) int
}

// NewStreamHandler creates a new event stream handler.
func NewStreamHandler(source SnapshotSource, interval time.Duration, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		source:   source,
		interval: interval,
		logger:   logger.With("handler", "stream"),
		offset:   rand.IntN,
	}
}

// ServeHTTP handles GET /api/analytics/stream.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snap, err := h.source.Snapshot()
	if err != nil {
		sendServiceError(w, h.logger, err)
		return
	}

	sse := mcp.NewSSEWriter(w)
	w.WriteHeader(http.StatusOK)
	if err := sse.Flush(); err != nil {
		h.logger.Error("sse_init_failed", "error", err)
		return
	}

	ctx := r.Context()
	events := snap.Events()
	correlationID := GetCorrelationID(ctx)

	h.logger.Info("stream_opened",
		"snapshot_version", snap.Version(),
		"events", len(events),
		"correlation_id", correlationID,
	)

	if len(events) == 0 {
		<-ctx.Done()
		return
	}

	index := h.offset(len(events))
	send := func() bool {
		event := events[index%len(events)]
		index++
		if err := sse.SendNamedEvent(event.Type, event); err != nil {
			h.logger.Debug("stream_write_failed", "error", err, "correlation_id", correlationID)
			return false
		}
		return true
	}

	if !send() {
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	sent := 1
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("stream_closed", "sent", sent, "correlation_id", correlationID)
			return
		case <-ticker.C:
			if !send() {
				return
			}
			sent++
		}
	}
}
