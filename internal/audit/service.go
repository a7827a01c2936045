package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.

type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service logs internal audit information.
//
// Audit is internal-only and best-effort: callers log failures but never
// fail a billing operation because the trail could not be written.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}
	if e.LineID == "" {
		return ErrInvalidEvent
	}

	now := s.clock().UTC()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	return s.repo.Append(ctx, e)
}

// LogLineCreated records a new line entering service.
func (s *Service) LogLineCreated(ctx context.Context, actorUserID, actorRole, ip, lineID, metadata string) error {
	return s.Append(ctx, Event{
		Type:        EventTypeLineCreated,
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		IPAddress:   ip,
		LineID:      lineID,
		Message:     "line created",
		Metadata:    metadata,
	})
}

// LogCycleAdvanced records a billing cycle being opened on a line.
func (s *Service) LogCycleAdvanced(ctx context.Context, actorUserID, actorRole, ip, lineID, message string) error {
	return s.Append(ctx, Event{
		Type:        EventTypeCycleAdvanced,
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		IPAddress:   ip,
		LineID:      lineID,
		Message:     message,
	})
}

// LogLineTerminated records a settlement, including the amount owed.
func (s *Service) LogLineTerminated(ctx context.Context, actorUserID, actorRole, ip, lineID, metadata string) error {
	return s.Append(ctx, Event{
		Type:        EventTypeLineTerminated,
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		IPAddress:   ip,
		LineID:      lineID,
		Message:     "line terminated",
		Metadata:    metadata,
	})
}
