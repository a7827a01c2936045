package contract

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newTestTerm(t *testing.T) *Term {
	t.Helper()
	c, err := NewTerm(date(2024, time.January), date(2024, time.December))
	if err != nil {
		t.Fatalf("new term: %v", err)
	}
	return c
}

func TestNewTerm_RejectsEndNotAfterStart(t *testing.T) {
	start := date(2024, time.June)
	if _, err := NewTerm(start, start); err != ErrEndNotAfterStart {
		t.Fatalf("expected ErrEndNotAfterStart, got %v", err)
	}
	if _, err := NewTerm(start, date(2024, time.January)); err != ErrEndNotAfterStart {
		t.Fatalf("expected ErrEndNotAfterStart, got %v", err)
	}
}

func TestTerm_FirstCycleCarriesDeposit(t *testing.T) {
	c := newTestTerm(t)
	l := newFakeLedger()
	c.CycleAdvance(1, 2024, l)

	// 300.00 deposit + 20.00 monthly fee, no calls
	mustEqual(t, l.TotalCost(), decimal.RequireFromString("320.00"))
	if l.label != RateLabelTerm {
		t.Fatalf("expected TERM label, got %q", l.label)
	}
	mustEqual(t, l.rate, TermMinuteRate)
}

func TestTerm_LaterCyclesSkipDeposit(t *testing.T) {
	c := newTestTerm(t)
	c.CycleAdvance(1, 2024, newFakeLedger())

	l := newFakeLedger()
	c.CycleAdvance(2, 2024, l)
	mustEqual(t, l.fixed, TermMonthlyFee)
}

func TestTerm_FreeMinutesConsumedBeforePaid(t *testing.T) {
	c := newTestTerm(t)
	l := newFakeLedger()
	c.CycleAdvance(1, 2024, l)

	// 3000s = 50 min, fully free
	c.BillCall(fakeCall(3000))
	if l.free != 50 || l.billed != 0 {
		t.Fatalf("expected 50 free / 0 billed, got %d / %d", l.free, l.billed)
	}

	// 4000s = 67 min, 50 free remain, 17 paid
	c.BillCall(fakeCall(4000))
	if l.free != 100 || l.billed != 17 {
		t.Fatalf("expected 100 free / 17 billed, got %d / %d", l.free, l.billed)
	}

	// 320.00 fixed + 17 * 0.10
	mustEqual(t, l.TotalCost(), decimal.RequireFromString("321.70"))
}

func TestTerm_PoolExhaustedBillsEverything(t *testing.T) {
	c := newTestTerm(t)
	l := newFakeLedger()
	c.CycleAdvance(1, 2024, l)

	c.BillCall(fakeCall(100 * 60))
	if l.free != 100 {
		t.Fatalf("expected pool exhausted, got %d free", l.free)
	}
	c.BillCall(fakeCall(130))
	if l.billed != 3 {
		t.Fatalf("expected 3 paid minutes, got %d", l.billed)
	}
}

func TestTerm_FreePoolResetsEachCycle(t *testing.T) {
	c := newTestTerm(t)
	first := newFakeLedger()
	c.CycleAdvance(1, 2024, first)
	c.BillCall(fakeCall(100 * 60))

	second := newFakeLedger()
	c.CycleAdvance(2, 2024, second)
	c.BillCall(fakeCall(10 * 60))
	if second.free != 10 || second.billed != 0 {
		t.Fatalf("expected fresh pool, got %d free / %d billed", second.free, second.billed)
	}
}

func TestTerm_CommitmentRefundsDeposit(t *testing.T) {
	c := newTestTerm(t)
	c.CycleAdvance(1, 2024, newFakeLedger())

	l := newFakeLedger()
	c.CycleAdvance(12, 2024, l)
	if !c.Committed() {
		t.Fatalf("expected commitment at end month")
	}

	// 20.00 monthly fee minus the 300.00 refund
	owed := c.Terminate()
	mustEqual(t, owed, decimal.RequireFromString("-280.00"))
}

func TestTerm_EarlyTerminationForfeitsDeposit(t *testing.T) {
	c := newTestTerm(t)
	l := newFakeLedger()
	c.CycleAdvance(1, 2024, l)
	if c.Committed() {
		t.Fatalf("unexpected commitment on first cycle")
	}

	// Deposit stays embedded in the charged cost.
	owed := c.Terminate()
	mustEqual(t, owed, decimal.RequireFromString("320.00"))
}

func TestTerm_CommitmentIsSticky(t *testing.T) {
	c := newTestTerm(t)
	c.CycleAdvance(12, 2024, newFakeLedger())
	if !c.Committed() {
		t.Fatalf("expected commitment")
	}

	// The line keeps running month-to-month past the end date; commitment
	// stays earned.
	l := newFakeLedger()
	c.CycleAdvance(1, 2025, l)
	if !c.Committed() {
		t.Fatalf("commitment must never reset")
	}

	owed := c.Terminate()
	mustEqual(t, owed, TermMonthlyFee.Sub(TermDeposit))
}
