package event

import (
	"bytes"
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/eventhub/internal/domain"
)

// RSVP reserves a seat for userID on eventID. It returns the ticket and
// whether it was created by this call; an existing active ticket comes back
// with created == false. The QR image is written inside the reservation
// transaction so a failed reserve never leaves a dangling blob key in the
// database, and an orphaned blob is removed best effort.
func (s *Service) RSVP(ctx context.Context, eventID, userID string) (*domain.Ticket, bool, error) {
	e, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, false, err
	}

	var storedKey string
	persistQR := func(ticketID string) (string, error) {
		png, err := s.encodeQR(ticketID)
		if err != nil {
			return "", err
		}
		key := "tickets/" + ticketID + ".png"
		if err := s.media.Put(ctx, key, "image/png", bytes.NewReader(png)); err != nil {
			return "", err
		}
		storedKey = key
		return key, nil
	}

	t, created, err := s.tickets.Reserve(ctx, eventID, userID, s.clock.Now(), persistQR)
	if err != nil {
		if storedKey != "" {
			if rmErr := s.media.Remove(ctx, storedKey); rmErr != nil {
				zlog.Warn().Err(rmErr).Str("key", storedKey).Msg("orphan qr cleanup failed")
			}
		}
		return nil, false, err
	}

	if created {
		e.SeatsLeft--
		s.invalidate(ctx, eventID)
	}
	t.Event = e
	return t, created, nil
}
