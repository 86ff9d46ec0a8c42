package event

import (
	"context"
	"strings"
	"time"

	"github.com/baechuer/eventhub/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// FeaturedCap bounds the featured listing.
const FeaturedCap = 8

type ListFilter struct {
	StartAfter  *time.Time
	StartBefore *time.Time
	Location    string // substring match
	Category    string // case-insensitive exact name
	Search      string // OR across title/description/tags
	Featured    bool
	OrganizerID string // set only by ListMine

	Page     int
	PageSize int
}

func (f *ListFilter) Normalize() error {
	f.Location = strings.TrimSpace(f.Location)
	f.Category = strings.TrimSpace(f.Category)
	f.Search = strings.TrimSpace(f.Search)

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	if f.StartAfter != nil && f.StartBefore != nil && f.StartBefore.Before(*f.StartAfter) {
		return domain.ErrValidation("start_before must be >= start_after")
	}
	return nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]*domain.Event, int, error) {
	if err := f.Normalize(); err != nil {
		return nil, 0, err
	}

	// Only the first page of the public listing is cached.
	isFirstPage := f.Page == 1 && f.OrganizerID == ""
	cacheKey := ""

	type cached struct {
		Items []*domain.Event `json:"items"`
		Total int             `json:"total"`
	}

	if isFirstPage && s.cache != nil {
		cacheKey = cacheKeyList(f)
		var c cached
		found, err := s.cache.Get(ctx, cacheKey, &c)
		if err != nil {
			zlog.Warn().Err(err).Str("key", cacheKey).Msg("cache list get failed")
		} else if found {
			return c.Items, c.Total, nil
		}
	}

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	if isFirstPage && s.cache != nil && len(items) > 0 {
		if err := s.cache.Set(ctx, cacheKey, cached{Items: items, Total: total}, s.ttlList); err != nil {
			zlog.Warn().Err(err).Str("key", cacheKey).Msg("cache list set failed")
		}
	}

	return items, total, nil
}

// ListMine is restricted to the authenticated organizer's own events.
func (s *Service) ListMine(ctx context.Context, actorID string, page, pageSize int) ([]*domain.Event, int, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, 0, domain.ErrForbidden("not allowed")
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return s.repo.ListByOrganizer(ctx, actorID, page, pageSize)
}
