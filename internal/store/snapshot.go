package store

import (
	"time"

	"supplydash/internal/models"
)

// Snapshot is an immutable view of one generation of the dataset.
//
// Accessors return the underlying slices without copying; callers must
// treat them as read-only. A new dataset is installed by building a new
// Snapshot, never by editing an existing one.
type Snapshot struct {
	version     uint64
	generatedAt time.Time

	orders    []models.Order
	inventory []models.InventoryItem
	suppliers []models.Supplier
	docs      []models.ComplianceDoc
	events    []models.Event

	supplierByID map[string]*models.Supplier
}

// NewSnapshot indexes data into a snapshot. The snapshot takes ownership
// of data's slices.
func NewSnapshot(data *models.SeedData) *Snapshot {
	s := &Snapshot{
		generatedAt:  time.Now().UTC(),
		orders:       data.Orders,
		inventory:    data.Inventory,
		suppliers:    data.Suppliers,
		docs:         data.ComplianceDocs,
		events:       data.Events,
		supplierByID: make(map[string]*models.Supplier, len(data.Suppliers)),
	}
	for i := range s.suppliers {
		s.supplierByID[s.suppliers[i].ID] = &s.suppliers[i]
	}
	return s
}

// Version increases by one with every snapshot installed in a Store.
// Snapshots built outside a Store report zero.
func (s *Snapshot) Version() uint64 { return s.version }

// GeneratedAt is when the snapshot was built.
func (s *Snapshot) GeneratedAt() time.Time { return s.generatedAt }

func (s *Snapshot) Orders() []models.Order                 { return s.orders }
func (s *Snapshot) Inventory() []models.InventoryItem      { return s.inventory }
func (s *Snapshot) Suppliers() []models.Supplier           { return s.suppliers }
func (s *Snapshot) ComplianceDocs() []models.ComplianceDoc { return s.docs }
func (s *Snapshot) Events() []models.Event                 { return s.events }

// Supplier looks up a supplier by id.
func (s *Snapshot) Supplier(id string) (*models.Supplier, bool) {
	sup, ok := s.supplierByID[id]
	return sup, ok
}

// SeedData returns the snapshot contents in serializable form.
func (s *Snapshot) SeedData() *models.SeedData {
	return &models.SeedData{
		Orders:         s.orders,
		Inventory:      s.inventory,
		Suppliers:      s.suppliers,
		ComplianceDocs: s.docs,
		Events:         s.events,
	}
}
