// Package lines is the in-memory registry of phone lines and the driver of
// their billing contracts: it opens each cycle with a fresh ledger, routes
// calls to the line's contract and performs termination settlement once.
package lines

import (
	"time"

	"github.com/shopspring/decimal"

	"line-billing/internal/billing"
	"line-billing/internal/contract"
)

// PlanType selects the commercial plan a line is billed under.
type PlanType string

const (
	PlanMTM     PlanType = "mtm"
	PlanTerm    PlanType = "term"
	PlanPrepaid PlanType = "prepaid"
)

func (p PlanType) valid() bool {
	switch p {
	case PlanMTM, PlanTerm, PlanPrepaid:
		return true
	default:
		return false
	}
}

// line is the registry's record for one phone line. The contract and the
// cycle ledgers are reachable only through the service, which enforces the
// call ordering the billing core treats as preconditions.
type line struct {
	id     string
	number string
	plan   PlanType

	start time.Time
	end   time.Time // term plan only

	contract contract.Contract
	current  *billing.CycleLedger
	history  []*billing.CycleLedger

	terminated bool
	amountOwed decimal.Decimal

	createdAt time.Time
}

// View is the read model returned to callers.
type View struct {
	ID     string   `json:"id"`
	Number string   `json:"number"`
	Plan   PlanType `json:"plan"`

	Status contract.Status `json:"status"`

	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`

	CurrentCycle *billing.Summary `json:"current_cycle,omitempty"`
	Cycles       []billing.Summary `json:"cycles,omitempty"`

	// AmountOwed is set once the line has been terminated.
	AmountOwed *decimal.Decimal `json:"amount_owed,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (l *line) view() View {
	v := View{
		ID:        l.id,
		Number:    l.number,
		Plan:      l.plan,
		Status:    contract.StatusActive,
		Start:     l.start,
		CreatedAt: l.createdAt,
	}
	if !l.end.IsZero() {
		end := l.end
		v.End = &end
	}
	if l.current != nil {
		s := l.current.Summarize()
		v.CurrentCycle = &s
	}
	for _, c := range l.history {
		v.Cycles = append(v.Cycles, c.Summarize())
	}
	if l.terminated {
		v.Status = contract.StatusTerminated
		owed := l.amountOwed
		v.AmountOwed = &owed
	}
	return v
}
