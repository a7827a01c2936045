// Package contract implements the commercial plans a phone line can be
// billed under: month-to-month (MTM), fixed term with deposit (Term) and
// prepaid balance (Prepaid).
//
// A contract is driven once per billing cycle (CycleAdvance), once per call
// placed during that cycle (BillCall) and at most once at line termination
// (Terminate). The driver owns the per-cycle Ledger and hands a fresh one to
// CycleAdvance; the contract keeps a non-owning reference to it until the
// next cycle.
//
// Precondition violations (billing before the first cycle advance, any
// operation on a terminated contract) are programming errors and panic.
// Invalid construction parameters return errors, since those values may
// originate from API input.
package contract

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is the per-cycle charge accumulator consumed by contracts.
// It is owned by the driver, not by the contract.
type Ledger interface {
	// AddFixedCost adds a flat charge independent of usage.
	AddFixedCost(amount decimal.Decimal)
	// SetRate records the plan tag and the per-minute usage rate.
	SetRate(label string, perMinute decimal.Decimal)
	// AddBilledMinutes accumulates paid usage minutes.
	AddBilledMinutes(minutes int)
	// AddFreeMinutes accumulates minutes drawn from a free allowance.
	AddFreeMinutes(minutes int)
	// FreeMinutesUsed reports the free minutes consumed so far this cycle.
	FreeMinutesUsed() int
	// TotalCost is fixed costs plus billed minutes times the rate.
	TotalCost() decimal.Decimal
}

// CallRecord exposes a placed call's duration in whole seconds.
type CallRecord interface {
	DurationSeconds() int
}

// Contract is the lifecycle shared by all plans.
type Contract interface {
	// CycleAdvance opens the billing cycle for month/year on ledger,
	// registering the cycle's fixed charges and rate. It must be called
	// exactly once per cycle, before any BillCall for that cycle.
	CycleAdvance(month, year int, ledger Ledger)

	// BillCall adds the call's usage to the current cycle's ledger.
	BillCall(call CallRecord)

	// Terminate settles the contract and returns the amount owed.
	// The contract rejects all further operations afterwards.
	Terminate() decimal.Decimal
}

// Status is the contract lifecycle state.
type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
)

// Rate labels recorded on the ledger per plan.
const (
	RateLabelMTM     = "MTM"
	RateLabelTerm    = "TERM"
	RateLabelPrepaid = "PREPAID"
)

// Plan constants. Amounts are in the account currency.
var (
	MTMMonthlyFee = decimal.RequireFromString("50.00")
	MTMMinuteRate = decimal.RequireFromString("0.05")

	TermMonthlyFee = decimal.RequireFromString("20.00")
	TermDeposit    = decimal.RequireFromString("300.00")
	TermMinuteRate = decimal.RequireFromString("0.10")

	PrepaidMinuteRate = decimal.RequireFromString("0.025")
	// RechargeCredit is granted whenever the prepaid balance rises above
	// the recharge floor at cycle advance.
	RechargeCredit = decimal.RequireFromString("25.00")

	rechargeFloor = decimal.RequireFromString("-10.00")
)

// TermFreeMinutes is the monthly free-minute allowance on a Term plan.
const TermFreeMinutes = 100

var (
	ErrEndNotAfterStart = errors.New("contract: end date must be after start date")
	ErrNegativeCredit   = errors.New("contract: initial prepaid credit must be non-negative")
)

// base carries the state every plan shares: the service start date, the
// lifecycle status and the non-owning reference to the current cycle's
// ledger. The start date is never cleared; termination is signalled by
// status alone.
type base struct {
	start  time.Time
	status Status
	ledger Ledger
}

func newBase(start time.Time) base {
	return base{start: start, status: StatusActive}
}

// Start is the date the line began service.
func (b *base) Start() time.Time { return b.start }

// Status reports whether the contract is active or terminated.
func (b *base) Status() Status { return b.status }

func (b *base) mustActive(op string) {
	if b.status != StatusActive {
		panic(fmt.Sprintf("contract: %s on terminated contract", op))
	}
}

func (b *base) mustLedger(op string) Ledger {
	if b.ledger == nil {
		panic(fmt.Sprintf("contract: %s before first cycle advance", op))
	}
	return b.ledger
}

// billCall is the default call billing: round the duration up to whole
// minutes and charge them all at the cycle rate.
func (b *base) billCall(call CallRecord) {
	b.mustActive("bill call")
	b.mustLedger("bill call").AddBilledMinutes(billableMinutes(call.DurationSeconds()))
}

// terminate is the default settlement: the current ledger's total cost.
func (b *base) terminate() decimal.Decimal {
	b.mustActive("terminate")
	cost := b.mustLedger("terminate").TotalCost()
	b.status = StatusTerminated
	return cost
}

// billableMinutes converts a duration in seconds to whole billed minutes,
// rounding up to the next full minute.
func billableMinutes(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	m := seconds / 60
	if seconds%60 != 0 {
		m++
	}
	return m
}

func sameMonth(t time.Time, month, year int) bool {
	return int(t.Month()) == month && t.Year() == year
}
