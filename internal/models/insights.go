package models

// InsightSlice is one bar or wedge of a command-center chart.
type InsightSlice struct {
	Label        string  `json:"label"`
	Value        float64 `json:"value"`
	DisplayValue string  `json:"displayValue,omitempty"`
	Color        string  `json:"color"`
}

// TaskInsights buckets orders by fulfilment stage.
type TaskInsights struct {
	Total       int            `json:"total"`
	SLABreaches int            `json:"slaBreaches"`
	Dataset     []InsightSlice `json:"dataset"`
}

// FinanceMeta holds the reference values behind the finance figures.
type FinanceMeta struct {
	SnapshotDate string  `json:"snapshotDate"`
	BaselineDSO  float64 `json:"baselineDso"`
}

// FinanceInsights estimates savings from closed orders.
type FinanceInsights struct {
	Dataset []InsightSlice `json:"dataset"`
	Meta    FinanceMeta    `json:"meta"`
}

// InventoryInsights buckets SKUs by replenishment urgency.
type InventoryInsights struct {
	Dataset           []InsightSlice `json:"dataset"`
	TotalSKUs         int            `json:"totalSkus"`
	ScenarioAvailable bool           `json:"scenarioAvailable"`
}

// CommandInsights is the response of the command-center endpoint.
type CommandInsights struct {
	Tasks     TaskInsights      `json:"tasks"`
	Finance   FinanceInsights   `json:"finance"`
	Inventory InventoryInsights `json:"inventory"`
}
