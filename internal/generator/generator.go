// Package generator builds synthetic supply-chain datasets: suppliers,
// inventory, a year of orders, compliance documents and an activity feed.
package generator

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"supplydash/internal/metrics"
	"supplydash/internal/models"
)

type categorySpec struct {
	Name        string
	DeviceTypes []string
}

var categories = []categorySpec{
	{Name: "Respiratory", DeviceTypes: []string{"Ventilation", "Oxygen Therapy", "Airway Clearance"}},
	{Name: "Mobility", DeviceTypes: []string{"Wheelchairs", "Mobility Assist", "Gait Training"}},
	{Name: "Infusion", DeviceTypes: []string{"Infusion Pumps", "Medication Delivery", "IV Sets"}},
	{Name: "Monitoring", DeviceTypes: []string{"Remote Monitoring", "Cardiac Monitoring", "Glucose Monitoring"}},
	{Name: "Surgical", DeviceTypes: []string{"Orthopedic Robotics", "Minimally Invasive", "Imaging"}},
}

var regions = []string{"Northeast", "Midwest", "South", "West", "International"}

var countriesByRegion = map[string][]string{
	"Northeast":     {"United States"},
	"Midwest":       {"United States"},
	"South":         {"United States"},
	"West":          {"United States"},
	"International": {"Canada", "United Kingdom", "Germany", "Netherlands", "Singapore"},
}

var complianceDocTypes = []string{"ISO 13485", "FDA 510K", "HIPAA BAA", "Cybersecurity Audit"}

const (
	historyDays     = 365
	onTimeLeadDays  = 7
	minDisputeRate  = 0.01
	baselineDispute = 0.05 // probability an order counts as disputed in the baseline
	sampledEvents   = 0.08 // share of orders that appear in the activity feed
	disputeEvent    = 0.12 // share of sampled orders with a dispute_filed event
	expiringWindow  = 45   // days before expiry a document is flagged
)

// Options controls the dataset size and randomness.
type Options struct {
	SupplierCount  int
	InventoryCount int
	OrderCount     int

	// Seed makes generation reproducible; zero seeds from the clock.
	Seed uint64

	// Now anchors all relative dates; zero uses the wall clock at each call.
	Now time.Time
}

// DefaultOptions returns the production dataset size.
func DefaultOptions() Options {
	return Options{
		SupplierCount:  120,
		InventoryCount: 500,
		OrderCount:     50000,
	}
}

// Generator produces datasets. It is not safe for concurrent use.
type Generator struct {
	opts Options
	src  *rand.ChaCha8
	rng  *rand.Rand
}

// New creates a generator. Zero counts fall back to DefaultOptions.
func New(opts Options) *Generator {
	defaults := DefaultOptions()
	if opts.SupplierCount <= 0 {
		opts.SupplierCount = defaults.SupplierCount
	}
	if opts.InventoryCount <= 0 {
		opts.InventoryCount = defaults.InventoryCount
	}
	if opts.OrderCount <= 0 {
		opts.OrderCount = defaults.OrderCount
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	src := rand.NewChaCha8(key)

	return &Generator{opts: opts, src: src, rng: rand.New(src)}
}

// baselineTracker counts a supplier's full order history.
type baselineTracker struct {
	total    int
	onTime   int
	disputes int
}

// Generate builds a complete dataset.
func (g *Generator) Generate() *models.SeedData {
	now := g.opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := truncateDay(now)

	suppliers := g.suppliers(g.opts.SupplierCount)
	inventory := g.inventory(suppliers, g.opts.InventoryCount, today)
	orders, tracker := g.orders(inventory, g.opts.OrderCount, today)
	docs := g.complianceDocs(suppliers, today)
	events := g.events(orders, docs)

	return &models.SeedData{
		Orders:         orders,
		Inventory:      inventory,
		Suppliers:      enrichSuppliers(suppliers, tracker),
		ComplianceDocs: docs,
		Events:         events,
	}
}

func (g *Generator) suppliers(count int) []models.Supplier {
	records := make([]models.Supplier, 0, count)
	for i := 0; i < count; i++ {
		primary := pick(g.rng, categories)
		secondary := primary
		if g.rng.Float64() > 0.6 {
			secondary = pick(g.rng, categories)
		}
		region := pick(g.rng, regions)
		disputeRate := metrics.Round(g.float(0.015, 0.12), 3)

		cats := []string{primary.Name}
		if secondary.Name != primary.Name {
			cats = append(cats, secondary.Name)
		}
		var devices []string
		for _, d := range append(slices.Clone(primary.DeviceTypes), secondary.DeviceTypes...) {
			if !slices.Contains(devices, d) {
				devices = append(devices, d)
			}
		}
		if len(devices) > 4 {
			devices = devices[:4]
		}

		records = append(records, models.Supplier{
			ID:          fmt.Sprintf("SUP-%03d", i+1),
			Name:        fmt.Sprintf("%s Solutions %d", primary.Name, i+1),
			OnTimePct:   metrics.Round(g.float(0.78, 0.98), 3),
			DisputeRate: disputeRate,
			DefectRate:  metrics.Round(g.float(0.005, 0.04), 3),
			Country:     pick(g.rng, countriesByRegion[region]),
			Region:      region,
			Categories:  cats,
			DeviceTypes: devices,
			RiskLevel:   models.RiskLevelFor(disputeRate),
		})
	}
	return records
}

func (g *Generator) inventory(suppliers []models.Supplier, count int, today time.Time) []models.InventoryItem {
	items := make([]models.InventoryItem, 0, count)
	for i := 0; i < count; i++ {
		supplier := pick(g.rng, suppliers)
		category := pick(g.rng, supplier.Categories)
		deviceTypes := supplier.DeviceTypes
		for _, c := range categories {
			if c.Name == category {
				deviceTypes = c.DeviceTypes
				break
			}
		}

		items = append(items, models.InventoryItem{
			SKU:           fmt.Sprintf("SKU-%04d", i+1),
			UDI:           g.udi(),
			Category:      category,
			DeviceType:    pick(g.rng, deviceTypes),
			SupplierID:    supplier.ID,
			OnHand:        g.intn(10, 350),
			OnOrder:       g.intn(0, 180),
			LotAgeDays:    g.intn(5, 240),
			ExpiryDate:    today.AddDate(0, 0, g.intn(45, 540)).Format(models.DateLayout),
			BackorderFlag: g.rng.Float64() > 0.9,
			UnitPrice:     float64(g.intn(1200, 7800)),
		})
	}
	return items
}

func (g *Generator) orders(inventory []models.InventoryItem, total int, today time.Time) ([]models.Order, map[string]*baselineTracker) {
	orders := make([]models.Order, 0, total)
	tracker := make(map[string]*baselineTracker)
	start := today.AddDate(0, 0, -historyDays)

	for i := 0; i < total; i++ {
		item := pick(g.rng, inventory)
		orderDate := start.AddDate(0, 0, g.intn(0, historyDays))
		status := statusForAge(daysBetween(orderDate, today))
		leadTime := g.intn(2, 18)

		stats, ok := tracker[item.SupplierID]
		if !ok {
			stats = &baselineTracker{}
			tracker[item.SupplierID] = stats
		}
		stats.total++
		if leadTime <= onTimeLeadDays {
			stats.onTime++
		}
		if g.rng.Float64() < baselineDispute {
			stats.disputes++
		}

		var shipDate *string
		if status != models.StatusOrdered {
			d := orderDate.AddDate(0, 0, leadTime).Format(models.DateLayout)
			shipDate = &d
		}

		orders = append(orders, models.Order{
			ID:           fmt.Sprintf("ORD-%06d", i+1),
			Date:         orderDate.Format(models.DateLayout),
			SKU:          item.SKU,
			Category:     item.Category,
			DeviceType:   item.DeviceType,
			SupplierID:   item.SupplierID,
			BuyerRegion:  pick(g.rng, regions),
			Qty:          g.intn(1, 35),
			UnitPrice:    metrics.Round(item.UnitPrice*g.float(0.95, 1.2), 2),
			Status:       status,
			ShipDate:     shipDate,
			LeadTimeDays: leadTime,
		})
	}
	return orders, tracker
}

func (g *Generator) complianceDocs(suppliers []models.Supplier, today time.Time) []models.ComplianceDoc {
	docs := make([]models.ComplianceDoc, 0, len(suppliers)*len(complianceDocTypes))
	for _, s := range suppliers {
		for _, docType := range complianceDocTypes {
			expiresIn := g.intn(-120, 240)
			status := models.DocActive
			switch {
			case expiresIn < 0:
				status = models.DocExpired
			case expiresIn < expiringWindow:
				status = models.DocExpiring
			}
			docs = append(docs, models.ComplianceDoc{
				SupplierID: s.ID,
				Type:       docType,
				Status:     status,
				ExpiresAt:  today.AddDate(0, 0, expiresIn).Format(models.DateLayout),
			})
		}
	}
	return docs
}

func (g *Generator) events(orders []models.Order, docs []models.ComplianceDoc) []models.Event {
	var events []models.Event
	for _, o := range orders {
		if g.rng.Float64() >= sampledEvents {
			continue
		}
		events = append(events, models.Event{
			Timestamp: o.Date + "T08:00:00Z",
			Type:      models.EventOrderCreated,
			Payload:   map[string]any{"orderId": o.ID, "supplierId": o.SupplierID, "qty": o.Qty},
		})
		if o.ShipDate != nil && g.rng.Float64() > 0.3 {
			events = append(events, models.Event{
				Timestamp: *o.ShipDate + "T12:00:00Z",
				Type:      models.EventShipmentUpdated,
				Payload:   map[string]any{"orderId": o.ID, "status": o.Status, "leadTimeDays": o.LeadTimeDays},
			})
		}
		if g.rng.Float64() < disputeEvent {
			events = append(events, models.Event{
				Timestamp: o.Date + "T20:15:00Z",
				Type:      models.EventDisputeFiled,
				Payload: map[string]any{
					"orderId": o.ID,
					"amount":  metrics.Round(float64(o.Qty)*o.UnitPrice*0.1, 2),
				},
			})
		}
	}

	for _, d := range docs {
		if d.Status == models.DocActive || g.rng.Float64() <= 0.4 {
			continue
		}
		events = append(events, models.Event{
			Timestamp: d.ExpiresAt + "T00:00:00Z",
			Type:      models.EventDocExpiring,
			Payload:   map[string]any{"supplierId": d.SupplierID, "docType": d.Type, "status": d.Status},
		})
	}

	slices.SortStableFunc(events, func(a, b models.Event) int {
		return strings.Compare(a.Timestamp, b.Timestamp)
	})
	return events
}

// enrichSuppliers replaces the drawn reliability figures with the ones
// observed over each supplier's generated order history.
func enrichSuppliers(suppliers []models.Supplier, tracker map[string]*baselineTracker) []models.Supplier {
	out := make([]models.Supplier, len(suppliers))
	for i, s := range suppliers {
		out[i] = s
		stats, ok := tracker[s.ID]
		if !ok || stats.total == 0 {
			continue
		}
		disputeRate := max(float64(stats.disputes)/float64(stats.total), minDisputeRate)
		out[i].OnTimePct = metrics.Round(float64(stats.onTime)/float64(stats.total), 3)
		out[i].DisputeRate = metrics.Round(disputeRate, 3)
		out[i].RiskLevel = models.RiskLevelFor(disputeRate)
	}
	return out
}

func statusForAge(daysOld int) string {
	switch {
	case daysOld < 3:
		return models.StatusOrdered
	case daysOld < 7:
		return models.StatusShipped
	case daysOld < 14:
		return models.StatusDelivered
	default:
		return models.StatusPaid
	}
}

func (g *Generator) udi() string {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		id = uuid.New()
	}
	return "UDI-" + strings.ToUpper(id.String()[:12])
}

// intn returns a uniform integer in [lo, hi].
func (g *Generator) intn(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) float(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
