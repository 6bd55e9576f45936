package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilters(t *testing.T) {
	q := url.Values{}
	q.Set("from", "2024-01-01")
	q.Set("riskLevel", "high")
	q.Set("category", "Respiratory")
	q.Set("unknown", "ignored")

	f := ParseFilters(q)
	assert.Equal(t, "2024-01-01", f.From)
	assert.Equal(t, "high", f.RiskLevel)
	assert.Equal(t, "Respiratory", f.Category)
	assert.Empty(t, f.To)
}

func TestParseFilters_NormalizesMalformedInput(t *testing.T) {
	q := url.Values{}
	q.Set("from", "yesterday")
	q.Set("to", "2024-13-45")
	q.Set("riskLevel", "extreme")
	q.Set("region", "   ")

	assert.Equal(t, Filters{}, ParseFilters(q))
}

func TestFiltersFromArgs_NonStringValuesAreAbsent(t *testing.T) {
	f := FiltersFromArgs(map[string]any{
		"supplierId": 42,
		"category":   []string{"Mobility"},
		"region":     "West",
		"riskLevel":  "all",
	})
	assert.Equal(t, Filters{Region: "West", RiskLevel: "all"}, f)
}

func TestFilters_CacheKeyTreatsAllAsAbsent(t *testing.T) {
	a := Filters{Category: "Infusion", RiskLevel: RiskAll}
	b := Filters{Category: "Infusion"}
	assert.Equal(t, a.CacheKey(), b.CacheKey())
	assert.Equal(t, "category=Infusion", b.CacheKey())
	assert.NotEqual(t, b.CacheKey(), Filters{Category: "Infusion", RiskLevel: RiskLow}.CacheKey())
}

func TestRiskLevelFor(t *testing.T) {
	cases := map[float64]string{
		0.0:   RiskLow,
		0.039: RiskLow,
		0.04:  RiskMedium,
		0.079: RiskMedium,
		0.08:  RiskHigh,
		0.5:   RiskHigh,
	}
	for rate, want := range cases {
		assert.Equal(t, want, RiskLevelFor(rate), "rate %v", rate)
	}
}

func TestEventOrderID(t *testing.T) {
	assert.Equal(t, "ORD-1", Event{Payload: map[string]any{"orderId": "ORD-1"}}.OrderID())
	assert.Equal(t, "", Event{Payload: map[string]any{"supplierId": "SUP-001"}}.OrderID())
	assert.Equal(t, "", Event{}.OrderID())
	assert.Equal(t, "17", Event{Payload: map[string]any{"orderId": 17}}.OrderID())
}

func TestValidateSeedData(t *testing.T) {
	data := &SeedData{
		Orders: []Order{{ID: "o1", Date: "2024-01-01", Qty: 1, UnitPrice: 10, Status: StatusPaid}},
		Suppliers: []Supplier{
			{ID: "SUP-001", OnTimePct: 0.9, DisputeRate: 0.01, DefectRate: 0.01, RiskLevel: RiskLow},
		},
	}
	require.NoError(t, ValidateSeedData(data))

	data.Orders[0].Qty = 0
	assert.Error(t, ValidateSeedData(data))
	data.Orders[0].Qty = 1

	data.Orders[0].Status = "lost"
	assert.Error(t, ValidateSeedData(data))
	data.Orders[0].Status = StatusPaid

	data.Suppliers = append(data.Suppliers, data.Suppliers[0])
	assert.Error(t, ValidateSeedData(data))
}

func TestValidateSummary(t *testing.T) {
	score := 2.5
	summary := &AnalyticsSummary{
		RevenueByCategory: []RevenueDatum{
			{Date: "2024-01-01", Category: "A", Revenue: 10},
			{Date: "2024-01-01", Category: "B", Revenue: 10, AnomalyScore: &score, AnomalyReason: ReasonAboveMean},
		},
		SupplierReliability: []SupplierReliabilityDatum{
			{SupplierID: "s1", OnTimePct: 0.9},
			{SupplierID: "s2", OnTimePct: 0.8},
		},
	}
	require.NoError(t, ValidateSummary(summary, 3))
	assert.Error(t, ValidateSummary(summary, 0))

	summary.RevenueByCategory[0], summary.RevenueByCategory[1] = summary.RevenueByCategory[1], summary.RevenueByCategory[0]
	assert.Error(t, ValidateSummary(summary, 3))
}
