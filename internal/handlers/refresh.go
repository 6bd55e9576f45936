package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"supplydash/internal/models"
	"supplydash/internal/store"
)

// Regenerator replaces the current snapshot with a freshly generated one.
type Regenerator interface {
	Regenerate() (*store.Snapshot, error)
}

// RefreshHandler handles POST /api/analytics/refresh.
type RefreshHandler struct {
	regen  Regenerator
	logger *slog.Logger
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(regen Regenerator, logger *slog.Logger) *RefreshHandler {
	return &RefreshHandler{
		regen:  regen,
		logger: logger.With("handler", "refresh"),
	}
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	snap, err := h.regen.Regenerate()
	if err != nil {
		sendServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("snapshot_regenerated",
		"snapshot_version", snap.Version(),
		"orders", len(snap.Orders()),
		"latency_ms", time.Since(start).Milliseconds(),
		"correlation_id", GetCorrelationID(r.Context()),
	)

	writeJSON(w, h.logger, http.StatusOK, models.RefreshResponse{
		Version:     snap.Version(),
		GeneratedAt: snap.GeneratedAt().UTC().Format(time.RFC3339),
		Orders:      len(snap.Orders()),
		Suppliers:   len(snap.Suppliers()),
	})
}
