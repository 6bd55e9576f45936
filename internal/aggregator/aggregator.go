// Package aggregator assembles analytics summaries and drilldowns from the
// current snapshot.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"supplydash/internal/instrumentation"
	"supplydash/internal/metrics"
	"supplydash/internal/models"
	"supplydash/internal/store"
)

// Drilldown entities.
const (
	EntityOrders     = "orders"
	EntityInventory  = "inventory"
	EntityCompliance = "compliance"
)

// Summary cache outcomes, used as metric labels.
const (
	outcomeHit    = "hit"
	outcomeMiss   = "miss"
	outcomeBypass = "bypass"
)

// DefaultDrilldownLimit caps the rows of a drilldown response.
const DefaultDrilldownLimit = 200

// ErrUnsupportedEntity is returned for a drilldown entity other than
// orders, inventory or compliance.
var ErrUnsupportedEntity = errors.New("unsupported entity")

// SnapshotSource provides the current snapshot.
type SnapshotSource interface {
	Snapshot() (*store.Snapshot, error)
}

// SummaryCache stores computed summaries. Load returns nil, nil on a miss.
type SummaryCache interface {
	Load(ctx context.Context, key string) (*models.AnalyticsSummary, error)
	Store(ctx context.Context, key string, summary *models.AnalyticsSummary) error
}

// Config tunes summary and drilldown computation.
type Config struct {
	Anomaly        metrics.AnomalyConfig
	DrilldownLimit int
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Anomaly:        *metrics.DefaultAnomalyConfig(),
		DrilldownLimit: DefaultDrilldownLimit,
	}
}

// Aggregator serves summaries and drilldowns over a snapshot source.
type Aggregator struct {
	source  SnapshotSource
	cache   SummaryCache // nil disables caching
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	cfg     Config

	now func() time.Time
}

// New creates a new aggregator. cache and metrics may be nil.
func New(source SnapshotSource, cache SummaryCache, logger *slog.Logger, metrics *instrumentation.Metrics, cfg Config) *Aggregator {
	if cfg.DrilldownLimit <= 0 {
		cfg.DrilldownLimit = DefaultDrilldownLimit
	}
	return &Aggregator{
		source:  source,
		cache:   cache,
		logger:  logger.With("component", "aggregator"),
		metrics: metrics,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Summarize computes the revenue series and the supplier scorecard for f.
//
// Both halves work on the same filtered order slice and run concurrently.
// The result carries no metadata; callers stamp it.
func Summarize(ctx context.Context, snap *store.Snapshot, f models.Filters, cfg *metrics.AnomalyConfig) (*models.AnalyticsSummary, error) {
	orders := metrics.FilterOrders(snap.Orders(), metrics.NewOrderFilter(snap, f))

	var (
		revenue     []models.RevenueDatum
		reliability []models.SupplierReliabilityDatum
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		series := metrics.AggregateRevenue(orders)
		revenue = series.Data(metrics.DetectAnomalies(series, cfg))
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		disputes := metrics.DisputesByOrder(snap.Events())
		reliability = metrics.ScoreSuppliers(snap.Suppliers(), orders, disputes, f)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.AnalyticsSummary{
		RevenueByCategory:   revenue,
		SupplierReliability: reliability,
	}, nil
}

// summaryKey identifies a summary of one snapshot generation under f.
func summaryKey(snap *store.Snapshot, f models.Filters) string {
	return fmt.Sprintf("summary:v%d:%d:%s", snap.Version(), snap.GeneratedAt().UnixNano(), f.CacheKey())
}

// Summary returns the analytics summary for f, consulting the cache when
// one is configured. Cache failures are logged and never fail the request.
func (a *Aggregator) Summary(ctx context.Context, f models.Filters) (*models.AnalyticsSummary, error) {
	startTime := time.Now()

	snap, err := a.source.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	key := summaryKey(snap, f)
	outcome := outcomeBypass

	var summary *models.AnalyticsSummary
	if a.cache != nil {
		outcome = outcomeMiss
		cached, err := a.cache.Load(ctx, key)
		if err != nil {
			a.logger.Warn("summary_cache_load_failed", "cache_key", key, "error", err)
			a.recordError("summary_cache", "load_failed")
		} else if cached != nil {
			summary = cached
			outcome = outcomeHit
		}
	}

	if summary == nil {
		summary, err = Summarize(ctx, snap, f, &a.cfg.Anomaly)
		if err != nil {
			return nil, fmt.Errorf("summarize: %w", err)
		}
		if a.cache != nil {
			if err := a.cache.Store(ctx, key, summary); err != nil {
				a.logger.Warn("summary_cache_store_failed", "cache_key", key, "error", err)
				a.recordError("summary_cache", "store_failed")
			}
		}
	}

	summary.Metadata = models.SummaryMetadata{
		LastUpdated: a.now().UTC().Format(time.RFC3339),
	}

	elapsed := time.Since(startTime)
	if a.metrics != nil {
		a.metrics.RecordSummary(float64(elapsed.Milliseconds()), outcome)
	}

	a.logger.Info("summary_computed",
		"snapshot_version", snap.Version(),
		"cache", outcome,
		"revenue_rows", len(summary.RevenueByCategory),
		"suppliers", len(summary.SupplierReliability),
		"latency_ms", elapsed.Milliseconds(),
	)

	return summary, nil
}

// Drilldown returns up to the configured limit of raw records of entity
// matching f. An empty entity means orders.
func (a *Aggregator) Drilldown(ctx context.Context, entity string, f models.Filters) (*models.DrilldownResponse, error) {
	if entity == "" {
		entity = EntityOrders
	}

	snap, err := a.source.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows any
	switch entity {
	case EntityOrders:
		orders := metrics.FilterOrders(snap.Orders(), metrics.NewOrderFilter(snap, f))
		rows = limit(orders, a.cfg.DrilldownLimit)
	case EntityInventory:
		rows = limit(metrics.FilterInventory(snap.Inventory(), f), a.cfg.DrilldownLimit)
	case EntityCompliance:
		rows = limit(metrics.FilterComplianceDocs(snap.ComplianceDocs(), f), a.cfg.DrilldownLimit)
	default:
		if a.metrics != nil {
			a.metrics.RecordDrilldown("unsupported")
		}
		return nil, fmt.Errorf("%w %s", ErrUnsupportedEntity, entity)
	}

	if a.metrics != nil {
		a.metrics.RecordDrilldown(entity)
	}
	return &models.DrilldownResponse{Entity: entity, Rows: rows}, nil
}

// Insights returns the command-center view of the current snapshot.
func (a *Aggregator) Insights(ctx context.Context) (*models.CommandInsights, error) {
	snap, err := a.source.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	insights := metrics.ComputeInsights(snap.Orders(), snap.Inventory(), a.now())
	return &insights, nil
}

func (a *Aggregator) recordError(component, errorType string) {
	if a.metrics != nil {
		a.metrics.RecordError(component, errorType)
	}
}

func limit[T any](rows []T, n int) []T {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
