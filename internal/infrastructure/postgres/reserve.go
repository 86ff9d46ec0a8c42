package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/eventhub/internal/domain"
)

// Reserve runs the seat-reservation transaction:
//
//  1. lock the event row (FOR UPDATE) — the single contended resource
//  2. reject organizer self-booking
//  3. return the existing ticket idempotently when one is held
//  4. fail when no seats remain; otherwise insert ticket + registration,
//     persist the QR asset via persistQR, decrement seats_left, commit
//
// Either every write lands or none do: persistQR failure rolls the
// transaction back. The losing side of a concurrent race is not retried; it
// observes the decremented seats_left once it acquires the lock.
func (r *TicketsRepo) Reserve(ctx context.Context, eventID, userID string, now time.Time, persistQR func(ticketID string) (string, error)) (*domain.Ticket, bool, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = tx.Rollback() }()

	var organizerID string
	var seatsLeft int
	err = tx.QueryRowContext(ctx, lockEventSQL, eventID).Scan(&organizerID, &seatsLeft)
	if err == sql.ErrNoRows {
		return nil, false, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, false, err
	}

	if organizerID == userID {
		return nil, false, domain.ErrInvalidState("organizers cannot rsvp to their own event")
	}

	existing, err := scanTicket(tx.QueryRowContext(ctx, selectTicketForPairSQL, eventID, userID))
	if err == nil {
		// Idempotent re-fetch: no decrement, no new QR.
		if err := tx.Commit(); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, err
	}

	if seatsLeft <= 0 {
		return nil, false, domain.ErrInvalidState("event is full")
	}

	now = now.UTC()
	ticket := &domain.Ticket{
		ID:         uuid.NewString(),
		EventID:    eventID,
		AttendeeID: userID,
		Status:     domain.TicketActive,
		CreatedAt:  now,
	}

	if _, err := tx.ExecContext(ctx, insertTicketSQL,
		ticket.ID, ticket.EventID, ticket.AttendeeID, string(ticket.Status), ticket.CreatedAt,
	); err != nil {
		return nil, false, err
	}

	if _, err := tx.ExecContext(ctx, insertRegistrationSQL,
		uuid.NewString(), eventID, userID, now,
	); err != nil {
		return nil, false, err
	}

	qrKey, err := persistQR(ticket.ID)
	if err != nil {
		return nil, false, fmt.Errorf("persist qr asset: %w", err)
	}
	ticket.QRKey = qrKey

	if _, err := tx.ExecContext(ctx, setTicketQRKeySQL, ticket.ID, qrKey); err != nil {
		return nil, false, err
	}

	if _, err := tx.ExecContext(ctx, decrementSeatsSQL, eventID); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit reservation: %w", err)
	}
	return ticket, true, nil
}
