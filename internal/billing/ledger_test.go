package billing

import (
	"testing"

	"github.com/shopspring/decimal"

	"line-billing/internal/contract"
)

// The ledger must satisfy the contract-side interface.
var _ contract.Ledger = (*CycleLedger)(nil)

func TestCycleLedger_TotalCost(t *testing.T) {
	l := NewCycleLedger(3, 2024)
	l.AddFixedCost(decimal.RequireFromString("50.00"))
	l.SetRate("MTM", decimal.RequireFromString("0.05"))
	l.AddBilledMinutes(3)

	if got := l.TotalCost(); !got.Equal(decimal.RequireFromString("50.15")) {
		t.Fatalf("expected 50.15, got %s", got)
	}
}

func TestCycleLedger_EmptyTotalIsZero(t *testing.T) {
	l := NewCycleLedger(1, 2024)
	if !l.TotalCost().IsZero() {
		t.Fatalf("expected zero total, got %s", l.TotalCost())
	}
}

func TestCycleLedger_NegativeFixedCost(t *testing.T) {
	// Prepaid credit posts as a negative fixed cost.
	l := NewCycleLedger(1, 2024)
	l.AddFixedCost(decimal.RequireFromString("-40"))
	l.SetRate("PREPAID", decimal.RequireFromString("0.025"))
	l.AddBilledMinutes(4)

	if got := l.TotalCost(); !got.Equal(decimal.RequireFromString("-39.9")) {
		t.Fatalf("expected -39.9, got %s", got)
	}
}

func TestCycleLedger_IgnoresNonPositiveMinutes(t *testing.T) {
	l := NewCycleLedger(1, 2024)
	l.AddBilledMinutes(0)
	l.AddBilledMinutes(-3)
	l.AddFreeMinutes(-1)
	if l.BilledMinutes() != 0 || l.FreeMinutesUsed() != 0 {
		t.Fatalf("expected no accumulation, got %d/%d", l.BilledMinutes(), l.FreeMinutesUsed())
	}
}

func TestCycleLedger_Summarize(t *testing.T) {
	l := NewCycleLedger(7, 2025)
	l.AddFixedCost(decimal.RequireFromString("20.00"))
	l.SetRate("TERM", decimal.RequireFromString("0.10"))
	l.AddFreeMinutes(100)
	l.AddBilledMinutes(17)

	s := l.Summarize()
	if s.Month != 7 || s.Year != 2025 {
		t.Fatalf("unexpected cycle tag: %d/%d", s.Month, s.Year)
	}
	if s.RateLabel != "TERM" || s.BilledMinutes != 17 || s.FreeMinutesUsed != 100 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if !s.TotalCost.Equal(decimal.RequireFromString("21.70")) {
		t.Fatalf("expected 21.70, got %s", s.TotalCost)
	}
}
