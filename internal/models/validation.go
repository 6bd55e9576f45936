package models

import (
	"fmt"
	"math"
)

// ValidateSeedData checks the record-level invariants of a dataset.
// Orders referencing unknown suppliers are allowed; aggregation drops them.
func ValidateSeedData(data *SeedData) error {
	validStatuses := map[string]bool{
		StatusOrdered: true, StatusShipped: true, StatusDelivered: true,
		StatusPaid: true, StatusCanceled: true,
	}
	for i, o := range data.Orders {
		if o.ID == "" {
			return fmt.Errorf("order %d: id is required", i)
		}
		if !IsDate(o.Date) {
			return fmt.Errorf("order %s: invalid date %q", o.ID, o.Date)
		}
		if o.Qty <= 0 {
			return fmt.Errorf("order %s: qty must be positive, got %d", o.ID, o.Qty)
		}
		if o.UnitPrice < 0 || math.IsNaN(o.UnitPrice) {
			return fmt.Errorf("order %s: unitPrice must be non-negative", o.ID)
		}
		if !validStatuses[o.Status] {
			return fmt.Errorf("order %s: invalid status %q", o.ID, o.Status)
		}
		if o.LeadTimeDays < 0 {
			return fmt.Errorf("order %s: leadTimeDays must be non-negative", o.ID)
		}
	}

	validRisk := map[string]bool{RiskLow: true, RiskMedium: true, RiskHigh: true}
	seen := make(map[string]bool, len(data.Suppliers))
	for _, s := range data.Suppliers {
		if s.ID == "" {
			return fmt.Errorf("supplier id is required")
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate supplier id %s", s.ID)
		}
		seen[s.ID] = true
		for name, v := range map[string]float64{
			"onTimePct": s.OnTimePct, "disputeRate": s.DisputeRate, "defectRate": s.DefectRate,
		} {
			if v < 0 || v > 1 {
				return fmt.Errorf("supplier %s: %s must be in [0, 1], got %f", s.ID, name, v)
			}
		}
		if !validRisk[s.RiskLevel] {
			return fmt.Errorf("supplier %s: invalid risk level %q", s.ID, s.RiskLevel)
		}
	}

	return nil
}

// ValidateSummary checks the output invariants of a summary.
func ValidateSummary(summary *AnalyticsSummary, maxAnomalies int) error {
	anomalies := 0
	for i, row := range summary.RevenueByCategory {
		if row.Revenue < 0 {
			return fmt.Errorf("revenue for %s/%s must be non-negative", row.Date, row.Category)
		}
		if i > 0 {
			prev := summary.RevenueByCategory[i-1]
			if prev.Date > row.Date || (prev.Date == row.Date && prev.Category >= row.Category) {
				return fmt.Errorf("revenue rows out of order at index %d", i)
			}
		}
		if row.AnomalyScore != nil {
			anomalies++
			if row.AnomalyReason != ReasonAboveMean && row.AnomalyReason != ReasonBelowMean {
				return fmt.Errorf("invalid anomaly reason: %s", row.AnomalyReason)
			}
		}
	}
	if anomalies > maxAnomalies {
		return fmt.Errorf("too many anomalies: %d > %d", anomalies, maxAnomalies)
	}

	for i, row := range summary.SupplierReliability {
		if row.OnTimePct < 0 || row.OnTimePct > 1 {
			return fmt.Errorf("supplier %s: onTimePct must be in [0, 1], got %f", row.SupplierID, row.OnTimePct)
		}
		if row.DisputeRate < 0 {
			return fmt.Errorf("supplier %s: disputeRate must be non-negative", row.SupplierID)
		}
		if i > 0 && summary.SupplierReliability[i-1].OnTimePct < row.OnTimePct {
			return fmt.Errorf("supplier rows out of order at index %d", i)
		}
	}

	return nil
}
