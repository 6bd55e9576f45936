package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"supplydash/internal/aggregator"
	"supplydash/internal/models"
)

// AnalyticsService computes the read-side analytics views.
type AnalyticsService interface {
	Summary(ctx context.Context, f models.Filters) (*models.AnalyticsSummary, error)
	Drilldown(ctx context.Context, entity string, f models.Filters) (*models.DrilldownResponse, error)
	Insights(ctx context.Context) (*models.CommandInsights, error)
}

// AnalyticsHandler serves the summary, drilldown and command-center endpoints.
type AnalyticsHandler struct {
	service AnalyticsService
	logger  *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(service AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With("handler", "analytics"),
	}
}

// Summary handles GET /api/analytics/summary.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	filters := models.ParseFilters(r.URL.Query())

	summary, err := h.service.Summary(r.Context(), filters)
	if err != nil {
		sendServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, summary)
}

// Drilldown handles GET /api/analytics/drilldown. A missing entity means
// orders; an unknown one is a 400 carrying only a message.
func (h *AnalyticsHandler) Drilldown(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := models.ParseFilters(query)

	entity := aggregator.EntityOrders
	if query.Has("entity") {
		entity = query.Get("entity")
	}

	resp, err := h.service.Drilldown(r.Context(), entity, filters)
	if err != nil {
		if errors.Is(err, aggregator.ErrUnsupportedEntity) {
			writeJSON(w, h.logger, http.StatusBadRequest, map[string]string{
				"message": fmt.Sprintf("Unsupported entity %s", entity),
			})
			return
		}
		sendServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// Insights handles GET /api/command/insights.
func (h *AnalyticsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.service.Insights(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, insights)
}
