package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/baechuer/eventhub/internal/domain"
)

type TicketsRepo struct {
	db *sql.DB
}

func NewTicketsRepo(db *sql.DB) *TicketsRepo { return &TicketsRepo{db: db} }

func scanTicket(row interface{ Scan(...any) error }) (*domain.Ticket, error) {
	var t domain.Ticket
	var status string
	var scanned sql.NullTime
	err := row.Scan(&t.ID, &t.EventID, &t.AttendeeID, &status, &t.QRKey, &t.CreatedAt, &scanned)
	if err != nil {
		return nil, err
	}
	t.Status = domain.TicketStatus(status)
	if scanned.Valid {
		ts := scanned.Time
		t.ScannedAt = &ts
	}
	return &t, nil
}

func (r *TicketsRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	t, err := scanTicket(r.db.QueryRowContext(ctx, selectTicketSQL, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("ticket not found")
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// MarkUsed persists only the two fields the verification flow touches.
func (r *TicketsRepo) MarkUsed(ctx context.Context, id string, scannedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, markTicketUsedSQL, id, string(domain.TicketUsed), scannedAt)
	return err
}

func (r *TicketsRepo) ListByAttendee(ctx context.Context, attendeeID string) ([]*domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+ticketColumns+`
FROM tickets t
WHERE t.attendee_id = $1
ORDER BY t.created_at DESC
`, attendeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
