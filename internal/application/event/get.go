package event

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/eventhub/internal/domain"
)

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	key := cacheKeyEventDetails(id)
	if s.cache != nil {
		var e domain.Event
		found, err := s.cache.Get(ctx, key, &e)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache event get failed")
		} else if found {
			return &e, nil
		}
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, e, s.ttlDetails); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache event set failed")
		}
	}
	return e, nil
}
