package metrics

import "supplydash/internal/models"

// supplierMap is a SupplierIndex over a fixed roster.
type supplierMap map[string]*models.Supplier

func (m supplierMap) Supplier(id string) (*models.Supplier, bool) {
	s, ok := m[id]
	return s, ok
}

func indexOf(suppliers []models.Supplier) supplierMap {
	m := make(supplierMap, len(suppliers))
	for i := range suppliers {
		m[suppliers[i].ID] = &suppliers[i]
	}
	return m
}

func fixtureSuppliers() []models.Supplier {
	return []models.Supplier{
		{
			ID: "SUP-001", Name: "Northwind Medical", Region: "North America",
			OnTimePct: 0.9, DisputeRate: 0.02, DefectRate: 0.011, RiskLevel: models.RiskLow,
			Categories: []string{"Imaging"}, DeviceTypes: []string{"Scanner"},
		},
		{
			ID: "SUP-002", Name: "Contoso Surgical", Region: "Europe",
			OnTimePct: 0.7, DisputeRate: 0.1, DefectRate: 0.03, RiskLevel: models.RiskHigh,
			Categories: []string{"Surgical"}, DeviceTypes: []string{"Stapler"},
		},
	}
}

func fixtureOrders() []models.Order {
	return []models.Order{
		{ID: "o1", Date: "2024-01-01", Category: "Imaging", DeviceType: "Scanner", SupplierID: "SUP-001",
			BuyerRegion: "North America", Qty: 2, UnitPrice: 100, Status: models.StatusPaid, LeadTimeDays: 5},
		{ID: "o2", Date: "2024-01-05", Category: "Surgical", DeviceType: "Stapler", SupplierID: "SUP-002",
			BuyerRegion: "Europe", Qty: 1, UnitPrice: 50, Status: models.StatusShipped, LeadTimeDays: 9},
		{ID: "o3", Date: "2024-01-03", Category: "Imaging", DeviceType: "Scanner", SupplierID: "SUP-404",
			BuyerRegion: "North America", Qty: 1, UnitPrice: 10, Status: models.StatusPaid, LeadTimeDays: 2},
		{ID: "o4", Date: "2024-01-04", Category: "Imaging", DeviceType: "Scanner", SupplierID: "SUP-001",
			BuyerRegion: "Europe", Qty: 1, UnitPrice: 75, Status: models.StatusDelivered, LeadTimeDays: 3},
	}
}

func orderIDs(orders []models.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}
