// Package billing provides the per-cycle charge accumulator handed to a
// contract at every cycle advance.
package billing

import (
	"github.com/shopspring/decimal"
)

// CycleLedger accumulates one billing cycle's charges for one line:
// fixed costs, the plan's per-minute rate, paid minutes and free minutes.
//
// Invariant: entries are only ever added; nothing on a ledger is removed or
// rewritten once posted. A fresh ledger is created for every cycle, so free
// minutes start at zero each month.
type CycleLedger struct {
	month int
	year  int

	label string
	rate  decimal.Decimal

	fixed  decimal.Decimal
	billed int
	free   int
}

// NewCycleLedger creates an empty ledger for the given month (1-12) and year.
func NewCycleLedger(month, year int) *CycleLedger {
	return &CycleLedger{
		month: month,
		year:  year,
		rate:  decimal.Zero,
		fixed: decimal.Zero,
	}
}

// Month is the cycle's calendar month (1-12).
func (l *CycleLedger) Month() int { return l.month }

// Year is the cycle's calendar year.
func (l *CycleLedger) Year() int { return l.year }

// AddFixedCost adds a flat charge independent of usage. Negative amounts are
// valid: prepaid credit is posted as a negative fixed cost.
func (l *CycleLedger) AddFixedCost(amount decimal.Decimal) {
	l.fixed = l.fixed.Add(amount)
}

// SetRate records the plan tag and per-minute rate for this cycle.
func (l *CycleLedger) SetRate(label string, perMinute decimal.Decimal) {
	l.label = label
	l.rate = perMinute
}

// AddBilledMinutes accumulates paid usage minutes.
func (l *CycleLedger) AddBilledMinutes(minutes int) {
	if minutes <= 0 {
		return
	}
	l.billed += minutes
}

// AddFreeMinutes accumulates minutes consumed from a free allowance.
func (l *CycleLedger) AddFreeMinutes(minutes int) {
	if minutes <= 0 {
		return
	}
	l.free += minutes
}

// FreeMinutesUsed reports free minutes consumed so far this cycle.
func (l *CycleLedger) FreeMinutesUsed() int { return l.free }

// BilledMinutes reports paid minutes accumulated so far this cycle.
func (l *CycleLedger) BilledMinutes() int { return l.billed }

// RateLabel is the plan tag recorded by SetRate.
func (l *CycleLedger) RateLabel() string { return l.label }

// Rate is the per-minute rate recorded by SetRate.
func (l *CycleLedger) Rate() decimal.Decimal { return l.rate }

// FixedCost is the sum of flat charges posted this cycle.
func (l *CycleLedger) FixedCost() decimal.Decimal { return l.fixed }

// TotalCost is fixed costs plus billed minutes at the recorded rate.
func (l *CycleLedger) TotalCost() decimal.Decimal {
	return l.fixed.Add(l.rate.Mul(decimal.NewFromInt(int64(l.billed))))
}

// Summary is the JSON-friendly view of a ledger.
type Summary struct {
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	RateLabel       string          `json:"rate_label"`
	RatePerMinute   decimal.Decimal `json:"rate_per_minute"`
	FixedCost       decimal.Decimal `json:"fixed_cost"`
	BilledMinutes   int             `json:"billed_minutes"`
	FreeMinutesUsed int             `json:"free_minutes_used"`
	TotalCost       decimal.Decimal `json:"total_cost"`
}

// Summarize snapshots the ledger.
func (l *CycleLedger) Summarize() Summary {
	return Summary{
		Month:           l.month,
		Year:            l.year,
		RateLabel:       l.label,
		RatePerMinute:   l.rate,
		FixedCost:       l.fixed,
		BilledMinutes:   l.billed,
		FreeMinutesUsed: l.free,
		TotalCost:       l.TotalCost(),
	}
}
