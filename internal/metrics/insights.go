package metrics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"supplydash/internal/models"
)

const (
	slaBreachLeadDays     = 14
	laborMinutesPerOrder  = 24
	baselineDSO           = 45.0
	lowStockThreshold     = 50
	ageingLotDays         = 240
	expiryWatchWindowDays = 45
	hoursPerDay           = 24
	minutesPerHr          = 60
)

// Chart colors.
const (
	colorSky    = "#38bdf8"
	colorCyan   = "#22d3ee"
	colorTeal   = "#14b8a6"
	colorYellow = "#facc15"
	colorOrange = "#f97316"
	colorRose   = "#fb7185"
	colorGreen  = "#22c55e"
)

// ComputeInsights builds the command-center view over the whole snapshot.
// now anchors expiry arithmetic and the finance snapshot date.
func ComputeInsights(orders []models.Order, inventory []models.InventoryItem, now time.Time) models.CommandInsights {
	return models.CommandInsights{
		Tasks:     taskInsights(orders),
		Finance:   financeInsights(orders, now),
		Inventory: inventoryInsights(inventory, now),
	}
}

func isClosed(status string) bool {
	return status == models.StatusDelivered || status == models.StatusPaid
}

func taskInsights(orders []models.Order) models.TaskInsights {
	var open, inProgress, closed, breaches int
	for i := range orders {
		o := &orders[i]
		switch {
		case o.Status == models.StatusOrdered:
			open++
		case o.Status == models.StatusShipped:
			inProgress++
		case isClosed(o.Status):
			closed++
		}
		if !isClosed(o.Status) && o.Status != models.StatusCanceled && o.LeadTimeDays > slaBreachLeadDays {
			breaches++
		}
	}
	return models.TaskInsights{
		Total:       open + inProgress + closed,
		SLABreaches: breaches,
		Dataset: []models.InsightSlice{
			{Label: "Open", Value: float64(open), Color: colorSky},
			{Label: "In Progress", Value: float64(inProgress), Color: colorCyan},
			{Label: "Closed", Value: float64(closed), Color: colorTeal},
		},
	}
}

func financeInsights(orders []models.Order, now time.Time) models.FinanceInsights {
	var completed, leadDays int
	cash := decimal.Zero
	for i := range orders {
		o := &orders[i]
		if !isClosed(o.Status) {
			continue
		}
		completed++
		leadDays += o.LeadTimeDays
		qty := decimal.NewFromInt(int64(max(o.Qty, 0)))
		cash = cash.Add(qty.Mul(decimal.NewFromFloat(math.Max(o.UnitPrice, 0))))
	}

	laborHours := float64(completed*laborMinutesPerOrder) / minutesPerHr
	var dso float64
	if completed > 0 {
		dso = float64(leadDays) / float64(completed)
	}
	improvement := math.Max(baselineDSO-dso, 0)

	return models.FinanceInsights{
		Dataset: []models.InsightSlice{
			{
				Label:        "Labor hrs saved",
				Value:        Round(laborHours, 2),
				DisplayValue: fmt.Sprintf("%.1f hrs", laborHours),
				Color:        colorCyan,
			},
			{
				Label:        "Projected cash ($K)",
				Value:        roundDecimal(cash.Div(decimal.NewFromInt(1000)), 2),
				DisplayValue: "$" + groupThousands(cash.Round(2).String()),
				Color:        colorSky,
			},
			{
				Label:        "DSO improvement",
				Value:        Round(improvement, 2),
				DisplayValue: fmt.Sprintf("%.1f days", improvement),
				Color:        colorYellow,
			},
		},
		Meta: models.FinanceMeta{
			SnapshotDate: now.UTC().Format(time.RFC3339),
			BaselineDSO:  baselineDSO,
		},
	}
}

// groupThousands inserts commas into the integer part of a plain decimal string.
func groupThousands(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := sign + b.String()
	if hasFrac {
		out += "." + frac
	}
	return out
}

// daysToExpiry rounds up partial days. ok is false for an unparseable date.
func daysToExpiry(expiry string, now time.Time) (int, bool) {
	t, err := time.Parse(models.DateLayout, expiry)
	if err != nil {
		return 0, false
	}
	return int(math.Ceil(t.Sub(now).Hours() / hoursPerDay)), true
}

func inventoryInsights(items []models.InventoryItem, now time.Time) models.InventoryInsights {
	var reorder, monitor, healthy int
	for i := range items {
		item := &items[i]
		critical := item.BackorderFlag || item.OnHand == 0
		lowStock := item.OnHand < lowStockThreshold && !item.BackorderFlag
		if critical || lowStock {
			reorder++
			continue
		}
		days, ok := daysToExpiry(item.ExpiryDate, now)
		if item.LotAgeDays > ageingLotDays || (ok && days <= expiryWatchWindowDays) {
			monitor++
			continue
		}
		healthy++
	}
	return models.InventoryInsights{
		Dataset: []models.InsightSlice{
			{Label: "Reorder now", Value: float64(reorder), Color: colorOrange},
			{Label: "Monitor closely", Value: float64(monitor), Color: colorRose},
			{Label: "Healthy buffer", Value: float64(healthy), Color: colorGreen},
		},
		TotalSKUs:         len(items),
		ScenarioAvailable: len(items) > 0,
	}
}
