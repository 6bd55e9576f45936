package models

import "fmt"

// Order statuses.
const (
	StatusOrdered   = "ordered"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusPaid      = "paid"
	StatusCanceled  = "canceled"
)

// Risk tiers.
const (
	RiskAll    = "all"
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Event types.
const (
	EventOrderCreated    = "order_created"
	EventShipmentUpdated = "shipment_updated"
	EventDocExpiring     = "doc_expiring"
	EventDisputeFiled    = "dispute_filed"
)

// Compliance document statuses.
const (
	DocActive   = "active"
	DocExpiring = "expiring"
	DocExpired  = "expired"
)

// Risk tier thresholds on a supplier's dispute rate.
const (
	HighRiskDisputeRate   = 0.08
	MediumRiskDisputeRate = 0.04
)

// Order is a single line of the order ledger.
type Order struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"` // YYYY-MM-DD
	SKU          string  `json:"sku"`
	Category     string  `json:"category"`
	DeviceType   string  `json:"deviceType"`
	SupplierID   string  `json:"supplierId"`
	BuyerRegion  string  `json:"buyerRegion"`
	Qty          int     `json:"qty"`
	UnitPrice    float64 `json:"unitPrice"`
	Status       string  `json:"status"`
	ShipDate     *string `json:"shipDate"` // nil until shipped
	LeadTimeDays int     `json:"leadTimeDays"`
}

// InventoryItem is the stock position of one SKU.
type InventoryItem struct {
	SKU           string  `json:"sku"`
	UDI           string  `json:"udi"`
	Category      string  `json:"category"`
	DeviceType    string  `json:"deviceType"`
	SupplierID    string  `json:"supplierId"`
	OnHand        int     `json:"onHand"`
	OnOrder       int     `json:"onOrder"`
	LotAgeDays    int     `json:"lotAgeDays"`
	ExpiryDate    string  `json:"expiryDate"`
	BackorderFlag bool    `json:"backorderFlag"`
	UnitPrice     float64 `json:"unitPrice"`
}

// Supplier carries the baseline reliability figures computed from the
// supplier's full order history when the snapshot was built.
type Supplier struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	OnTimePct   float64  `json:"onTimePct"`
	DisputeRate float64  `json:"disputeRate"`
	DefectRate  float64  `json:"defectRate"`
	Country     string   `json:"country"`
	Region      string   `json:"region"`
	Categories  []string `json:"categories"`
	DeviceTypes []string `json:"deviceTypes"`
	RiskLevel   string   `json:"riskLevel"`
}

// ComplianceDoc is a certificate or audit held by a supplier.
type ComplianceDoc struct {
	SupplierID string `json:"supplierId"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	ExpiresAt  string `json:"expiresAt"`
}

// Event is an entry of the activity feed.
type Event struct {
	Timestamp string         `json:"timestamp"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
}

// OrderID returns payload.orderId as a string, or "" when absent.
// Non-string ids (numbers from hand-written fixtures) are formatted.
func (e Event) OrderID() string {
	v, ok := e.Payload["orderId"]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// SeedData is the serialized form of a full dataset (seed.json).
type SeedData struct {
	Orders         []Order         `json:"orders"`
	Inventory      []InventoryItem `json:"inventory"`
	Suppliers      []Supplier      `json:"suppliers"`
	ComplianceDocs []ComplianceDoc `json:"complianceDocs"`
	Events         []Event         `json:"events"`
}

// RiskLevelFor maps a dispute rate to its risk tier.
func RiskLevelFor(disputeRate float64) string {
	switch {
	case disputeRate >= HighRiskDisputeRate:
		return RiskHigh
	case disputeRate >= MediumRiskDisputeRate:
		return RiskMedium
	default:
		return RiskLow
	}
}
