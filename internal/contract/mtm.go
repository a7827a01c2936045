package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// MTM is the month-to-month plan: no end date, no deposit, no free minutes.
// Every cycle carries the flat monthly fee and the MTM per-minute rate.
type MTM struct {
	base
}

// NewMTM creates a month-to-month contract starting on start.
func NewMTM(start time.Time) *MTM {
	return &MTM{base: newBase(start)}
}

func (c *MTM) CycleAdvance(month, year int, ledger Ledger) {
	c.mustActive("cycle advance")

	c.ledger = ledger
	ledger.AddFixedCost(MTMMonthlyFee)
	ledger.SetRate(RateLabelMTM, MTMMinuteRate)
}

func (c *MTM) BillCall(call CallRecord) { c.billCall(call) }

func (c *MTM) Terminate() decimal.Decimal { return c.terminate() }
