package event

import (
	"context"

	"github.com/baechuer/eventhub/internal/domain"
)

func (s *Service) ListMyRegistrations(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return s.registrations.ListByUser(ctx, userID)
}

// ListAttendees is organizer-only.
func (s *Service) ListAttendees(ctx context.Context, eventID, actorID string) ([]Attendee, error) {
	e, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !isOrganizerOf(actorID, e.OrganizerID) {
		return nil, domain.ErrForbidden("only the organizer can list attendees")
	}
	return s.registrations.ListAttendees(ctx, eventID)
}

// MediaURL resolves a stored blob key to a serveable URL.
func (s *Service) MediaURL(key string) string {
	if key == "" {
		return ""
	}
	return s.media.URL(key)
}
