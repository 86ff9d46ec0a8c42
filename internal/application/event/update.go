package event

import (
	"context"
	"io"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/eventhub/internal/domain"
)

type UpdateCmd struct {
	ActorID string
	EventID string

	Title       *string
	Description *string
	Start       *time.Time
	End         *time.Time
	Location    *string
	CategoryID  *string
	Tags        *string
	Capacity    *int
	Featured    *bool
}

func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Event, error) {
	e, err := s.repo.GetByID(ctx, cmd.EventID)
	if err != nil {
		return nil, err
	}
	if !isOrganizerOf(cmd.ActorID, e.OrganizerID) {
		return nil, domain.ErrForbidden("only the organizer can update this event")
	}

	seatsDelta, err := e.ApplyUpdate(cmd.Title, cmd.Description, cmd.Location, cmd.Tags, cmd.Start, cmd.End, cmd.Capacity, cmd.Featured)
	if err != nil {
		return nil, err
	}
	if cmd.CategoryID != nil {
		if *cmd.CategoryID == "" {
			e.Category = nil
		} else {
			cat, err := s.categories.GetByID(ctx, *cmd.CategoryID)
			if err != nil {
				return nil, domain.ErrValidationMeta("invalid field", map[string]string{"category": "unknown category"})
			}
			e.Category = cat
		}
	}

	if err := s.repo.Update(ctx, e, seatsDelta); err != nil {
		return nil, err
	}
	s.invalidate(ctx, e.ID)
	return e, nil
}

func (s *Service) Delete(ctx context.Context, eventID, actorID string) error {
	e, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !isOrganizerOf(actorID, e.OrganizerID) {
		return domain.ErrForbidden("only the organizer can delete this event")
	}
	if err := s.repo.Delete(ctx, eventID); err != nil {
		return err
	}
	if e.PosterKey != "" {
		if err := s.media.Remove(ctx, e.PosterKey); err != nil {
			zlog.Warn().Err(err).Str("key", e.PosterKey).Msg("poster cleanup failed")
		}
	}
	s.invalidate(ctx, eventID)
	return nil
}

// SetPoster stores the uploaded image and records its key on the event.
func (s *Service) SetPoster(ctx context.Context, eventID, actorID, ext, contentType string, body io.Reader) (*domain.Event, error) {
	e, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !isOrganizerOf(actorID, e.OrganizerID) {
		return nil, domain.ErrForbidden("only the organizer can upload a poster")
	}

	key := "posters/" + eventID + ext
	if err := s.media.Put(ctx, key, contentType, body); err != nil {
		return nil, err
	}
	if err := s.repo.SetPoster(ctx, eventID, key); err != nil {
		return nil, err
	}
	e.PosterKey = key
	s.invalidate(ctx, eventID)
	return e, nil
}

func (s *Service) invalidate(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyEventDetails(eventID)); err != nil {
		zlog.Warn().Err(err).Str("event_id", eventID).Msg("cache invalidate failed")
	}
}
