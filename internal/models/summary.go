package models

// Anomaly reasons.
const (
	ReasonAboveMean = "Above rolling mean"
	ReasonBelowMean = "Below rolling mean"
)

// RevenueDatum is one (date, category) revenue row, optionally annotated
// with an anomaly.
type RevenueDatum struct {
	Date          string   `json:"date"`
	Category      string   `json:"category"`
	Revenue       float64  `json:"revenue"`
	AnomalyScore  *float64 `json:"anomalyScore,omitempty"`
	AnomalyReason string   `json:"anomalyReason,omitempty"`
}

// SupplierReliabilityDatum is the reliability scorecard row of one supplier.
type SupplierReliabilityDatum struct {
	SupplierID   string  `json:"supplierId"`
	SupplierName string  `json:"supplierName"`
	OnTimePct    float64 `json:"onTimePct"`
	DisputeRate  float64 `json:"disputeRate"`
	DefectRate   float64 `json:"defectRate"`
	Region       string  `json:"region"`
	Category     string  `json:"category"`
}

// SummaryMetadata describes when a summary was served.
type SummaryMetadata struct {
	LastUpdated string `json:"lastUpdated"`
}

// AnalyticsSummary is the response of the summary endpoint.
type AnalyticsSummary struct {
	RevenueByCategory   []RevenueDatum             `json:"revenueByCategory"`
	SupplierReliability []SupplierReliabilityDatum `json:"supplierReliability"`
	Metadata            SummaryMetadata            `json:"metadata"`
}

// DrilldownResponse carries raw records of one entity type.
type DrilldownResponse struct {
	Entity string `json:"entity"`
	Rows   any    `json:"rows"`
}

// RefreshResponse describes a freshly regenerated snapshot.
type RefreshResponse struct {
	Version     uint64 `json:"version"`
	GeneratedAt string `json:"generatedAt"`
	Orders      int    `json:"orders"`
	Suppliers   int    `json:"suppliers"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
