package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerCount narrows a customer count; zero values are ignored.
type CustomerCount struct {
	Status CustomerStatus
	From   time.Time
	To     time.Time
}

type CategoryCount struct {
	Category string
	Count    int64
}

type StatValue struct {
	Value      int64   `json:"value"`
	Change     float64 `json:"change"`
	ChangeType string  `json:"changeType"`
}

type RevenueStat struct {
	Value      decimal.Decimal `json:"value"`
	Change     float64         `json:"change"`
	ChangeType string          `json:"changeType"`
}

type DashboardStats struct {
	TotalProducts   StatValue   `json:"totalProducts"`
	NewContacts     StatValue   `json:"newContacts"`
	ActiveCustomers StatValue   `json:"activeCustomers"`
	TotalCustomers  int64       `json:"totalCustomers"`
	Revenue         RevenueStat `json:"revenue"`
}

type SalesPoint struct {
	Month     string          `json:"month"`
	Sales     decimal.Decimal `json:"sales"`
	Contacts  int64           `json:"contacts"`
	Customers int64           `json:"customers"`
}

// CategorySlice is one wedge of the category chart; Value is a rounded percentage.
type CategorySlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Count int64  `json:"count"`
	Color string `json:"color"`
}

var ChartPalette = []string{"#8B5CF6", "#10B981", "#F59E0B", "#EF4444", "#6B7280", "#3B82F6", "#EC4899"}

// PercentChange returns the rounded month-over-month change in percent and
// "increase" or "decrease". Growth from an empty previous period counts as 100.
func PercentChange(current, previous float64) (float64, string) {
	pct := 100.0
	switch {
	case previous > 0:
		pct = math.Round((current - previous) / previous * 100)
	case current == 0:
		pct = 0
	}
	if pct < 0 {
		return pct, "decrease"
	}
	return pct, "increase"
}
