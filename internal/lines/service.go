package lines

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"line-billing/internal/billing"
	"line-billing/internal/calls"
	"line-billing/internal/contract"
	"line-billing/internal/observability/metrics"
)

var (
	ErrNotFound        = errors.New("lines: not found")
	ErrInvalidArgument = errors.New("lines: invalid argument")
	ErrLineTerminated  = errors.New("lines: line is terminated")
	ErrNoOpenCycle     = errors.New("lines: no billing cycle open")
	ErrDuplicateCycle  = errors.New("lines: cycle already open for that month")
)

// Service owns the line registry.
//
// Ordering invariants enforced here, so contract preconditions can never be
// violated by API callers:
// - a cycle must be open before calls are billed or the line is terminated
// - the same month/year cannot be opened twice in a row
// - a terminated line rejects every further operation
type Service struct {
	mu    sync.Mutex
	lines map[string]*line
	clock func() time.Time
}

func NewService() *Service {
	return &Service{lines: make(map[string]*line), clock: time.Now}
}

// CreateLineRequest carries plan selection and plan-specific parameters.
type CreateLineRequest struct {
	Number string
	Plan   PlanType
	Start  time.Time

	// End is required for PlanTerm and must be strictly after Start.
	End time.Time
	// Credit is the initial prepaid credit; required non-negative for
	// PlanPrepaid, ignored otherwise.
	Credit decimal.Decimal
}

func (s *Service) CreateLine(req CreateLineRequest) (View, error) {
	if req.Number == "" || !req.Plan.valid() || req.Start.IsZero() {
		return View{}, ErrInvalidArgument
	}

	l := &line{
		id:        uuid.NewString(),
		number:    req.Number,
		plan:      req.Plan,
		start:     req.Start,
		createdAt: s.clock().UTC(),
	}

	switch req.Plan {
	case PlanMTM:
		l.contract = contract.NewMTM(req.Start)
	case PlanTerm:
		c, err := contract.NewTerm(req.Start, req.End)
		if err != nil {
			return View{}, err
		}
		l.contract = c
		l.end = req.End
	case PlanPrepaid:
		c, err := contract.NewPrepaid(req.Start, req.Credit)
		if err != nil {
			return View{}, err
		}
		l.contract = c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[l.id] = l
	return l.view(), nil
}

// AdvanceCycle opens the billing cycle for month/year with a fresh ledger.
func (s *Service) AdvanceCycle(lineID string, month, year int) (billing.Summary, error) {
	if month < 1 || month > 12 || year <= 0 {
		return billing.Summary{}, ErrInvalidArgument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.activeLine(lineID)
	if err != nil {
		return billing.Summary{}, err
	}
	if l.current != nil && l.current.Month() == month && l.current.Year() == year {
		return billing.Summary{}, ErrDuplicateCycle
	}

	ledger := billing.NewCycleLedger(month, year)
	l.contract.CycleAdvance(month, year, ledger)
	l.current = ledger
	l.history = append(l.history, ledger)

	metrics.CyclesAdvanced.WithLabelValues(string(l.plan)).Inc()
	return ledger.Summarize(), nil
}

// BillCall adds one call's usage to the line's open cycle.
func (s *Service) BillCall(lineID string, call calls.Call) (billing.Summary, error) {
	if call.Duration < 0 {
		return billing.Summary{}, ErrInvalidArgument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.activeLine(lineID)
	if err != nil {
		return billing.Summary{}, err
	}
	if l.current == nil {
		return billing.Summary{}, ErrNoOpenCycle
	}

	l.contract.BillCall(call)

	metrics.CallsBilled.WithLabelValues(string(l.plan)).Inc()
	return l.current.Summarize(), nil
}

// Terminate settles the line exactly once and returns the amount owed.
func (s *Service) Terminate(lineID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.activeLine(lineID)
	if err != nil {
		return decimal.Zero, err
	}
	if l.current == nil {
		return decimal.Zero, ErrNoOpenCycle
	}

	l.amountOwed = l.contract.Terminate()
	l.terminated = true

	metrics.Terminations.WithLabelValues(string(l.plan)).Inc()
	return l.amountOwed, nil
}

// GetLine returns the read model for one line.
func (s *Service) GetLine(lineID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lines[lineID]
	if !ok {
		return View{}, ErrNotFound
	}
	return l.view(), nil
}

// activeLine looks up a line and rejects terminated ones.
// Caller must hold s.mu.
func (s *Service) activeLine(lineID string) (*line, error) {
	if lineID == "" {
		return nil, ErrInvalidArgument
	}
	l, ok := s.lines[lineID]
	if !ok {
		return nil, ErrNotFound
	}
	if l.terminated {
		return nil, ErrLineTerminated
	}
	return l, nil
}
