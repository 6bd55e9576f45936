package models

import (
	"net/url"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by orders and filters.
const DateLayout = "2006-01-02"

// Filters narrows the order ledger and supplier roster.
// An empty field means no constraint on that dimension.
type Filters struct {
	From       string `json:"from,omitempty"` // inclusive
	To         string `json:"to,omitempty"`   // inclusive
	Category   string `json:"category,omitempty"`
	DeviceType string `json:"deviceType,omitempty"`
	SupplierID string `json:"supplierId,omitempty"`
	Region     string `json:"region,omitempty"`
	RiskLevel  string `json:"riskLevel,omitempty"` // all|low|medium|high
}

// ParseFilters reads the recognised filter keys from query parameters.
// Blank values, malformed dates and unknown risk levels are dropped.
func ParseFilters(q url.Values) Filters {
	args := make(map[string]any, len(q))
	for key, values := range q {
		if len(values) > 0 {
			args[key] = values[0]
		}
	}
	return FiltersFromArgs(args)
}

// FiltersFromArgs reads the recognised filter keys from a loosely typed
// argument map. Non-string values are treated as absent.
func FiltersFromArgs(args map[string]any) Filters {
	get := func(key string) string {
		s, ok := args[key].(string)
		if !ok || strings.TrimSpace(s) == "" {
			return ""
		}
		return s
	}

	f := Filters{
		From:       get("from"),
		To:         get("to"),
		Category:   get("category"),
		DeviceType: get("deviceType"),
		SupplierID: get("supplierId"),
		Region:     get("region"),
	}
	if !IsDate(f.From) {
		f.From = ""
	}
	if !IsDate(f.To) {
		f.To = ""
	}
	switch risk := get("riskLevel"); risk {
	case RiskAll, RiskLow, RiskMedium, RiskHigh:
		f.RiskLevel = risk
	}
	return f
}

// IsDate reports whether s is a calendar date in YYYY-MM-DD form.
func IsDate(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// RiskConstraint returns the risk tier to enforce, or "" when "all" or unset.
func (f Filters) RiskConstraint() string {
	if f.RiskLevel == RiskAll {
		return ""
	}
	return f.RiskLevel
}

// CacheKey returns a canonical encoding of the filters. Filters that select
// the same records produce the same key.
func (f Filters) CacheKey() string {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("from", f.From)
	set("to", f.To)
	set("category", f.Category)
	set("deviceType", f.DeviceType)
	set("supplierId", f.SupplierID)
	set("region", f.Region)
	set("riskLevel", f.RiskConstraint())
	// Encode sorts by key.
	return v.Encode()
}
