package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prepaid is the balance-based plan. The balance is signed: negative means
// credit available to the customer, non-negative means amount owed. Each
// cycle carries the previous cycle's net result forward as the new fixed
// charge, topping up with credit whenever the balance gets close to zero.
type Prepaid struct {
	base
	balance decimal.Decimal
}

// NewPrepaid creates a prepaid contract starting on start with the given
// initial credit. credit must be non-negative; it is stored negated, so the
// initial balance is always a credit (or zero).
func NewPrepaid(start time.Time, credit decimal.Decimal) (*Prepaid, error) {
	if credit.IsNegative() {
		return nil, ErrNegativeCredit
	}
	return &Prepaid{base: newBase(start), balance: credit.Neg()}, nil
}

// Balance is the signed running balance (negative = credit).
func (c *Prepaid) Balance() decimal.Decimal { return c.balance }

func (c *Prepaid) CycleAdvance(month, year int, ledger Ledger) {
	c.mustActive("cycle advance")

	// Carry the previous cycle's net result forward.
	if c.ledger != nil {
		c.balance = c.ledger.TotalCost()
	}
	// Top up when credit runs low (or the customer already owes).
	if c.balance.GreaterThan(rechargeFloor) {
		c.balance = c.balance.Sub(RechargeCredit)
	}

	c.ledger = ledger
	ledger.AddFixedCost(c.balance)
	ledger.SetRate(RateLabelPrepaid, PrepaidMinuteRate)
}

func (c *Prepaid) BillCall(call CallRecord) { c.billCall(call) }

// Terminate settles the line. Remaining credit is forfeited, never refunded:
// a negative total clamps to zero. The balance resets either way.
func (c *Prepaid) Terminate() decimal.Decimal {
	c.mustActive("terminate")
	cost := c.mustLedger("terminate").TotalCost()
	c.status = StatusTerminated
	c.balance = decimal.Zero
	if cost.IsNegative() {
		return decimal.Zero
	}
	return cost
}
