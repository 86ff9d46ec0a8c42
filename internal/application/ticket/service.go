package ticket

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/eventhub/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type TicketRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	MarkUsed(ctx context.Context, id string, scannedAt time.Time) error
	ListByAttendee(ctx context.Context, attendeeID string) ([]*domain.Ticket, error)
}

type EventGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Event, error)
}

type Service struct {
	tickets TicketRepo
	events  EventGetter
	clock   Clock
}

func New(tickets TicketRepo, events EventGetter, clock Clock) *Service {
	return &Service{tickets: tickets, events: events, clock: clock}
}

// Verify marks an active ticket as used. Only the event's organizer may
// verify, and a ticket can be used exactly once.
func (s *Service) Verify(ctx context.Context, ticketID, actorID string) (*domain.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	e, err := s.events.GetByID(ctx, t.EventID)
	if err != nil {
		return nil, err
	}
	if actorID == "" || actorID != e.OrganizerID {
		return nil, domain.ErrForbidden("only the event organizer can verify tickets")
	}
	if err := t.MarkUsed(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.tickets.MarkUsed(ctx, t.ID, *t.ScannedAt); err != nil {
		return nil, err
	}
	t.Event = e
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, ticketID, actorID string) (*domain.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	e, err := s.events.GetByID(ctx, t.EventID)
	if err != nil {
		return nil, err
	}
	if actorID != t.AttendeeID && actorID != e.OrganizerID {
		return nil, domain.ErrForbidden("not allowed")
	}
	t.Event = e
	return t, nil
}

// ListMine returns the caller's tickets with their events attached.
func (s *Service) ListMine(ctx context.Context, userID string) ([]*domain.Ticket, error) {
	tickets, err := s.tickets.ListByAttendee(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, t := range tickets {
		e, err := s.events.GetByID(ctx, t.EventID)
		if err != nil {
			zlog.Warn().Err(err).Str("ticket_id", t.ID).Str("event_id", t.EventID).Msg("event fetch for ticket listing failed")
			continue
		}
		t.Event = e
	}
	return tickets, nil
}
