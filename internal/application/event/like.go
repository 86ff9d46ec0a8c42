package event

import (
	"context"

	"github.com/baechuer/eventhub/internal/domain"
)

// ToggleLike flips the like state for (eventID, userID) and reports the
// resulting state: true when the call created the like.
func (s *Service) ToggleLike(ctx context.Context, eventID, userID string) (bool, error) {
	if _, err := s.repo.GetByID(ctx, eventID); err != nil {
		return false, err
	}
	return s.likes.Toggle(ctx, eventID, userID, s.clock.Now())
}

func (s *Service) ListMyLikes(ctx context.Context, userID string) ([]*domain.Like, error) {
	return s.likes.ListByUser(ctx, userID)
}
