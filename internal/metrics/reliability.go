package metrics

import (
	"cmp"
	"slices"

	"supplydash/internal/models"
)

// OnTimeLeadDays is the longest lead time that still counts as on time.
const OnTimeLeadDays = 7

// fallbackCategory labels a supplier with no declared categories.
const fallbackCategory = "Mixed"

// supplierStats accumulates one supplier's filtered orders.
type supplierStats struct {
	total    int
	onTime   int
	disputed int
	category string // category of the last order seen
}

// DisputesByOrder counts dispute_filed events per order id.
func DisputesByOrder(events []models.Event) map[string]int {
	out := make(map[string]int)
	for _, e := range events {
		if e.Type != models.EventDisputeFiled {
			continue
		}
		if id := e.OrderID(); id != "" {
			out[id]++
		}
	}
	return out
}

// ScoreSuppliers builds the reliability scorecard.
//
// The roster is every supplier in suppliers that passes the supplier part
// of f, whether or not it has matching orders. Suppliers with matching
// orders are scored from them; the rest report their baseline figures.
// Rows are sorted by on-time percentage, highest first, keeping roster
// order on ties.
func ScoreSuppliers(suppliers []models.Supplier, orders []models.Order, disputes map[string]int, f models.Filters) []models.SupplierReliabilityDatum {
	stats := make(map[string]*supplierStats)
	for i := range orders {
		o := &orders[i]
		st, ok := stats[o.SupplierID]
		if !ok {
			st = &supplierStats{}
			stats[o.SupplierID] = st
		}
		st.total++
		if o.LeadTimeDays <= OnTimeLeadDays {
			st.onTime++
		}
		if disputes[o.ID] > 0 {
			st.disputed++
		}
		st.category = o.Category
	}

	out := make([]models.SupplierReliabilityDatum, 0, len(suppliers))
	for i := range suppliers {
		s := &suppliers[i]
		if !SupplierMatches(s, f) {
			continue
		}

		row := models.SupplierReliabilityDatum{
			SupplierID:   s.ID,
			SupplierName: s.Name,
			DefectRate:   Round(s.DefectRate, 3),
			Region:       s.Region,
		}

		st, ok := stats[s.ID]
		if !ok || st.total == 0 {
			row.OnTimePct = Round(s.OnTimePct, 3)
			row.DisputeRate = Round(s.DisputeRate, 3)
			row.Category = fallbackCategory
			if len(s.Categories) > 0 {
				row.Category = s.Categories[0]
			}
		} else {
			total := float64(st.total)
			row.OnTimePct = Round(float64(st.onTime)/total, 3)
			row.DisputeRate = Round(max(float64(st.disputed)/total, 0), 3)
			row.Category = st.category
		}
		out = append(out, row)
	}

	slices.SortStableFunc(out, func(a, b models.SupplierReliabilityDatum) int {
		return cmp.Compare(b.OnTimePct, a.OnTimePct)
	})
	return out
}
