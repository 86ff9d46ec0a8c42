package event

import (
	"context"
	"time"

	"github.com/baechuer/eventhub/internal/domain"
)

type CreateCmd struct {
	ActorID string

	Title       string
	Description string
	Start       time.Time
	End         *time.Time
	Location    string
	CategoryID  string
	Tags        string
	Capacity    int
	Featured    bool
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Event, error) {
	now := s.clock.Now()
	e, categoryID, err := domain.NewEvent(
		cmd.ActorID, cmd.Title, cmd.Description, cmd.Location, cmd.Tags,
		cmd.Start, cmd.End, cmd.CategoryID, cmd.Capacity, cmd.Featured, now,
	)
	if err != nil {
		return nil, err
	}
	if categoryID != "" {
		cat, err := s.categories.GetByID(ctx, categoryID)
		if err != nil {
			return nil, domain.ErrValidationMeta("invalid field", map[string]string{"category": "unknown category"})
		}
		e.Category = cat
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
