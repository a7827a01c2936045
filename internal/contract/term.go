package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// Term is the fixed-term plan: a deposit charged on the first cycle, a
// monthly fee, a monthly free-minute allowance and an end date. Reaching the
// end date while active commits the contract, which makes the deposit
// refundable at termination. The line may keep operating past the end date;
// commitment, once earned, is never revoked.
type Term struct {
	base
	end    time.Time
	commit bool
}

// NewTerm creates a term contract running from start to end.
// end must be strictly after start.
func NewTerm(start, end time.Time) (*Term, error) {
	if !end.After(start) {
		return nil, ErrEndNotAfterStart
	}
	return &Term{base: newBase(start), end: end}, nil
}

// End is the termination-eligibility date.
func (c *Term) End() time.Time { return c.end }

// Committed reports whether the contract has reached its end date.
func (c *Term) Committed() bool { return c.commit }

func (c *Term) CycleAdvance(month, year int, ledger Ledger) {
	c.mustActive("cycle advance")

	// First cycle carries the one-time deposit.
	if sameMonth(c.start, month, year) {
		ledger.AddFixedCost(TermDeposit)
	}
	if sameMonth(c.end, month, year) {
		c.commit = true
	}

	c.ledger = ledger
	ledger.SetRate(RateLabelTerm, TermMinuteRate)
	ledger.AddFixedCost(TermMonthlyFee)
}

// BillCall consumes the cycle's free-minute allowance before billing paid
// minutes. The allowance is tracked on the ledger, so it resets naturally
// with each new cycle.
func (c *Term) BillCall(call CallRecord) {
	c.mustActive("bill call")
	ledger := c.mustLedger("bill call")

	minutes := billableMinutes(call.DurationSeconds())
	remaining := TermFreeMinutes - ledger.FreeMinutesUsed()

	if remaining > 0 {
		free := minutes
		if free > remaining {
			free = remaining
		}
		ledger.AddFreeMinutes(free)
		ledger.AddBilledMinutes(minutes - free)
		return
	}
	ledger.AddBilledMinutes(minutes)
}

// Terminate settles the line. A committed contract gets the deposit back;
// early termination forfeits it (it stays embedded in the charged cost).
func (c *Term) Terminate() decimal.Decimal {
	c.mustActive("terminate")
	cost := c.mustLedger("terminate").TotalCost()
	if c.commit {
		cost = cost.Sub(TermDeposit)
	}
	c.status = StatusTerminated
	return cost
}
