package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"supplydash/internal/models"
)

func TestNewOrderFilter(t *testing.T) {
	suppliers := fixtureSuppliers()
	idx := indexOf(suppliers)
	orders := fixtureOrders()

	tests := []struct {
		name    string
		filters models.Filters
		want    []string
	}{
		{name: "no filters drops dangling supplier", filters: models.Filters{}, want: []string{"o1", "o2", "o4"}},
		{name: "from is inclusive", filters: models.Filters{From: "2024-01-04"}, want: []string{"o2", "o4"}},
		{name: "to is inclusive", filters: models.Filters{To: "2024-01-04"}, want: []string{"o1", "o4"}},
		{name: "category", filters: models.Filters{Category: "Surgical"}, want: []string{"o2"}},
		{name: "device type", filters: models.Filters{DeviceType: "Scanner"}, want: []string{"o1", "o4"}},
		{name: "supplier", filters: models.Filters{SupplierID: "SUP-002"}, want: []string{"o2"}},
		{name: "risk all is unconstrained", filters: models.Filters{RiskLevel: models.RiskAll}, want: []string{"o1", "o2", "o4"}},
		{name: "risk high", filters: models.Filters{RiskLevel: models.RiskHigh}, want: []string{"o2"}},
		// o4 ships to Europe but its supplier sits in North America.
		{name: "region applies to buyer and supplier", filters: models.Filters{Region: "Europe"}, want: []string{"o2"}},
		{name: "nothing matches", filters: models.Filters{Category: "Dental"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterOrders(orders, NewOrderFilter(idx, tt.filters))
			assert.Equal(t, tt.want, orderIDs(got))
		})
	}
}

func TestSupplierMatches(t *testing.T) {
	s := fixtureSuppliers()[0]

	assert.True(t, SupplierMatches(&s, models.Filters{}))
	assert.True(t, SupplierMatches(&s, models.Filters{Category: "Imaging", DeviceType: "Scanner", Region: "North America"}))
	assert.False(t, SupplierMatches(&s, models.Filters{Category: "Surgical"}))
	assert.False(t, SupplierMatches(&s, models.Filters{DeviceType: "Stapler"}))
	assert.False(t, SupplierMatches(&s, models.Filters{RiskLevel: models.RiskMedium}))
	assert.False(t, SupplierMatches(&s, models.Filters{SupplierID: "SUP-002"}))
}

func TestFilterInventoryAndDocs(t *testing.T) {
	items := []models.InventoryItem{
		{SKU: "a", Category: "Imaging", DeviceType: "Scanner", SupplierID: "SUP-001"},
		{SKU: "b", Category: "Surgical", DeviceType: "Stapler", SupplierID: "SUP-002"},
	}
	got := FilterInventory(items, models.Filters{Category: "Surgical", From: "2030-01-01"})
	assert.Len(t, got, 1)
	assert.Equal(t, "b", got[0].SKU)

	docs := []models.ComplianceDoc{
		{SupplierID: "SUP-001", Type: "ISO 13485"},
		{SupplierID: "SUP-002", Type: "FDA 510(k)"},
	}
	assert.Len(t, FilterComplianceDocs(docs, models.Filters{}), 2)
	onlyTwo := FilterComplianceDocs(docs, models.Filters{SupplierID: "SUP-002", Category: "Imaging"})
	assert.Equal(t, []models.ComplianceDoc{docs[1]}, onlyTwo)
}
