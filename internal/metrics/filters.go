package metrics

import (
	"slices"

	"supplydash/internal/models"
)

// SupplierIndex resolves supplier ids.
type SupplierIndex interface {
	Supplier(id string) (*models.Supplier, bool)
}

// OrderPredicate reports whether an order passes a filter.
type OrderPredicate func(order *models.Order) bool

// SupplierMatches applies the supplier-level part of f.
func SupplierMatches(s *models.Supplier, f models.Filters) bool {
	if f.SupplierID != "" && s.ID != f.SupplierID {
		return false
	}
	if f.Category != "" && !slices.Contains(s.Categories, f.Category) {
		return false
	}
	if f.DeviceType != "" && !slices.Contains(s.DeviceTypes, f.DeviceType) {
		return false
	}
	if f.Region != "" && s.Region != f.Region {
		return false
	}
	if risk := f.RiskConstraint(); risk != "" && s.RiskLevel != risk {
		return false
	}
	return true
}

// NewOrderFilter builds the order predicate for f.
//
// An order passes when its own fields match f and its supplier passes
// SupplierMatches. Orders whose supplier cannot be resolved never pass.
// Note that region constrains both the buyer region of the order and the
// region of its supplier.
func NewOrderFilter(suppliers SupplierIndex, f models.Filters) OrderPredicate {
	return func(o *models.Order) bool {
		if f.From != "" && o.Date < f.From {
			return false
		}
		if f.To != "" && o.Date > f.To {
			return false
		}
		if f.Category != "" && o.Category != f.Category {
			return false
		}
		if f.DeviceType != "" && o.DeviceType != f.DeviceType {
			return false
		}
		if f.SupplierID != "" && o.SupplierID != f.SupplierID {
			return false
		}
		if f.Region != "" && o.BuyerRegion != f.Region {
			return false
		}
		supplier, ok := suppliers.Supplier(o.SupplierID)
		if !ok {
			return false
		}
		return SupplierMatches(supplier, f)
	}
}

// FilterOrders returns the orders passing pred, in ledger order.
func FilterOrders(orders []models.Order, pred OrderPredicate) []models.Order {
	out := make([]models.Order, 0, len(orders)/4)
	for i := range orders {
		if pred(&orders[i]) {
			out = append(out, orders[i])
		}
	}
	return out
}

// FilterSuppliers returns the suppliers passing SupplierMatches, in roster order.
func FilterSuppliers(suppliers []models.Supplier, f models.Filters) []models.Supplier {
	out := make([]models.Supplier, 0, len(suppliers))
	for i := range suppliers {
		if SupplierMatches(&suppliers[i], f) {
			out = append(out, suppliers[i])
		}
	}
	return out
}

// FilterInventory applies the category, device type and supplier filters.
func FilterInventory(items []models.InventoryItem, f models.Filters) []models.InventoryItem {
	out := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if f.Category != "" && item.Category != f.Category {
			continue
		}
		if f.DeviceType != "" && item.DeviceType != f.DeviceType {
			continue
		}
		if f.SupplierID != "" && item.SupplierID != f.SupplierID {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FilterComplianceDocs applies the supplier filter.
func FilterComplianceDocs(docs []models.ComplianceDoc, f models.Filters) []models.ComplianceDoc {
	if f.SupplierID == "" {
		return docs
	}
	out := make([]models.ComplianceDoc, 0)
	for _, d := range docs {
		if d.SupplierID == f.SupplierID {
			out = append(out, d)
		}
	}
	return out
}
