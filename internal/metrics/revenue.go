package metrics

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"supplydash/internal/models"
)

// RevenueKey identifies one cell of the revenue series.
type RevenueKey struct {
	Date     string
	Category string
}

// RevenuePoint is the revenue of one category on one date.
type RevenuePoint struct {
	Date    string
	Revenue float64 // unrounded
}

// RevenueSeries holds exact revenue sums per (date, category) for the
// pairs present in an order set. Absent pairs are not zero-filled.
type RevenueSeries struct {
	byCategory map[string]map[string]decimal.Decimal
}

// AggregateRevenue sums qty × unitPrice per (date, category).
func AggregateRevenue(orders []models.Order) *RevenueSeries {
	s := &RevenueSeries{byCategory: make(map[string]map[string]decimal.Decimal)}
	for i := range orders {
		o := &orders[i]
		dates, ok := s.byCategory[o.Category]
		if !ok {
			dates = make(map[string]decimal.Decimal)
			s.byCategory[o.Category] = dates
		}
		amount := decimal.NewFromFloat(o.UnitPrice).Mul(decimal.NewFromInt(int64(o.Qty)))
		dates[o.Date] = dates[o.Date].Add(amount)
	}
	return s
}

// Len returns the number of (date, category) pairs.
func (s *RevenueSeries) Len() int {
	n := 0
	for _, dates := range s.byCategory {
		n += len(dates)
	}
	return n
}

// Categories returns the categories present, sorted.
func (s *RevenueSeries) Categories() []string {
	out := make([]string, 0, len(s.byCategory))
	for c := range s.byCategory {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Points returns one category's revenue by date, dates ascending.
func (s *RevenueSeries) Points(category string) []RevenuePoint {
	dates := s.byCategory[category]
	out := make([]RevenuePoint, 0, len(dates))
	for d, sum := range dates {
		v, _ := sum.Float64()
		out = append(out, RevenuePoint{Date: d, Revenue: v})
	}
	slices.SortFunc(out, func(a, b RevenuePoint) int { return cmp.Compare(a.Date, b.Date) })
	return out
}

// Data renders the series as revenue rows sorted by date then category,
// revenue rounded to cents. Anomalies are attached by exact key match.
func (s *RevenueSeries) Data(anomalies []Anomaly) []models.RevenueDatum {
	byKey := make(map[RevenueKey]Anomaly, len(anomalies))
	for _, a := range anomalies {
		byKey[a.Key] = a
	}

	out := make([]models.RevenueDatum, 0, s.Len())
	for category, dates := range s.byCategory {
		for date, sum := range dates {
			row := models.RevenueDatum{
				Date:     date,
				Category: category,
				Revenue:  roundDecimal(sum, 2),
			}
			if a, ok := byKey[RevenueKey{Date: date, Category: category}]; ok {
				score := Round(a.Score, 2)
				row.AnomalyScore = &score
				row.AnomalyReason = a.Reason
			}
			out = append(out, row)
		}
	}

	slices.SortFunc(out, func(a, b models.RevenueDatum) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return out
}
