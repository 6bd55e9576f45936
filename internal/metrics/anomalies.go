package metrics

import (
	"cmp"
	"math"
	"slices"

	"supplydash/internal/models"
)

// AnomalyConfig contains configuration for anomaly detection.
type AnomalyConfig struct {
	ZThreshold float64 // flag points with |z| at or above this
	MaxResults int     // global cap across all categories
}

// DefaultAnomalyConfig returns default configuration.
func DefaultAnomalyConfig() *AnomalyConfig {
	return &AnomalyConfig{
		ZThreshold: 2.0,
		MaxResults: 3,
	}
}

// Anomaly is a revenue point that sits far from its category's mean.
type Anomaly struct {
	Key     RevenueKey
	Revenue float64
	Score   float64 // z-score, unrounded
	Reason  string
}

// Stats holds the mean and sample standard deviation of a series.
type Stats struct {
	Count  int
	Mean   float64
	StdDev float64
}

// ComputeStats returns the mean and sample standard deviation of values.
// The variance denominator is n-1, floored at 1 so a single value has a
// standard deviation of zero.
func ComputeStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	variance := sq / float64(max(len(values)-1, 1))

	return Stats{Count: len(values), Mean: mean, StdDev: math.Sqrt(variance)}
}

// DetectAnomalies scores every point of every category against that
// category's own mean and standard deviation and returns the strongest
// outliers, strongest first. Categories with a flat series (zero standard
// deviation) never produce anomalies.
func DetectAnomalies(series *RevenueSeries, cfg *AnomalyConfig) []Anomaly {
	if cfg == nil {
		cfg = DefaultAnomalyConfig()
	}

	var found []Anomaly
	for _, category := range series.Categories() {
		points := series.Points(category)
		values := make([]float64, len(points))
		for i, p := range points {
			values[i] = p.Revenue
		}
		stats := ComputeStats(values)
		if stats.StdDev == 0 {
			continue
		}

		for _, p := range points {
			z := (p.Revenue - stats.Mean) / stats.StdDev
			if math.Abs(z) < cfg.ZThreshold {
				continue
			}
			reason := models.ReasonBelowMean
			if z > 0 {
				reason = models.ReasonAboveMean
			}
			found = append(found, Anomaly{
				Key:     RevenueKey{Date: p.Date, Category: category},
				Revenue: p.Revenue,
				Score:   z,
				Reason:  reason,
			})
		}
	}

	// Ties on |z| resolve by date then category so the cut is stable.
	slices.SortFunc(found, func(a, b Anomaly) int {
		if c := cmp.Compare(math.Abs(b.Score), math.Abs(a.Score)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Key.Date, b.Key.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Key.Category, b.Key.Category)
	})

	if cfg.MaxResults >= 0 && len(found) > cfg.MaxResults {
		found = found[:cfg.MaxResults]
	}
	return found
}
