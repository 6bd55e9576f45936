package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplydash/internal/models"
)

func TestAggregateRevenue_DailyTotals(t *testing.T) {
	orders := []models.Order{
		{Date: "2024-01-01", Category: "Respiratory", Qty: 10, UnitPrice: 100},
		{Date: "2024-01-02", Category: "Respiratory", Qty: 5, UnitPrice: 100},
	}

	series := AggregateRevenue(orders)
	got := series.Data(DetectAnomalies(series, nil))

	assert.Equal(t, []models.RevenueDatum{
		{Date: "2024-01-01", Category: "Respiratory", Revenue: 1000},
		{Date: "2024-01-02", Category: "Respiratory", Revenue: 500},
	}, got)
}

func TestAggregateRevenue_ExactCents(t *testing.T) {
	orders := []models.Order{
		{Date: "2024-03-01", Category: "Imaging", Qty: 1, UnitPrice: 0.1},
		{Date: "2024-03-01", Category: "Imaging", Qty: 1, UnitPrice: 0.2},
		{Date: "2024-03-01", Category: "Dental", Qty: 3, UnitPrice: 19.99},
		{Date: "2024-02-28", Category: "Imaging", Qty: 2, UnitPrice: 1.005},
	}

	got := AggregateRevenue(orders).Data(nil)
	require.Len(t, got, 3)

	assert.Equal(t, models.RevenueDatum{Date: "2024-02-28", Category: "Imaging", Revenue: 2.01}, got[0])
	assert.Equal(t, models.RevenueDatum{Date: "2024-03-01", Category: "Dental", Revenue: 59.97}, got[1])
	assert.Equal(t, models.RevenueDatum{Date: "2024-03-01", Category: "Imaging", Revenue: 0.3}, got[2])
}

func TestRevenueSeries_KeysMatchOrders(t *testing.T) {
	orders := fixtureOrders()
	series := AggregateRevenue(orders)

	want := map[RevenueKey]bool{}
	for _, o := range orders {
		want[RevenueKey{Date: o.Date, Category: o.Category}] = true
	}

	got := map[RevenueKey]bool{}
	for _, d := range series.Data(nil) {
		key := RevenueKey{Date: d.Date, Category: d.Category}
		assert.False(t, got[key], "duplicate key %v", key)
		got[key] = true
	}
	assert.Equal(t, want, got)
	assert.Equal(t, len(want), series.Len())
}

func TestRevenueSeries_Empty(t *testing.T) {
	series := AggregateRevenue(nil)
	assert.Equal(t, 0, series.Len())
	assert.Empty(t, series.Categories())
	assert.NotNil(t, series.Data(nil))
	assert.Empty(t, DetectAnomalies(series, nil))
}

func TestRevenueSeries_Points(t *testing.T) {
	series := AggregateRevenue(fixtureOrders())

	assert.Equal(t, []string{"Imaging", "Surgical"}, series.Categories())
	assert.Equal(t, []RevenuePoint{
		{Date: "2024-01-01", Revenue: 200},
		{Date: "2024-01-03", Revenue: 10},
		{Date: "2024-01-04", Revenue: 75},
	}, series.Points("Imaging"))
	assert.Empty(t, series.Points("Dental"))
}
