package domain

import "time"

type TicketStatus string

const (
	TicketActive TicketStatus = "active"
	TicketUsed   TicketStatus = "used"
)

func (s TicketStatus) Valid() bool {
	return s == TicketActive || s == TicketUsed
}

type Ticket struct {
	ID         string
	EventID    string
	AttendeeID string
	Status     TicketStatus
	QRKey      string
	CreatedAt  time.Time
	ScannedAt  *time.Time
	Event      *Event
}

// MarkUsed is the one-way active -> used transition. A used ticket stays
// used; the original scanned timestamp is preserved.
func (t *Ticket) MarkUsed(now time.Time) error {
	if t.Status == TicketUsed {
		return ErrInvalidState("ticket already used")
	}
	scanned := now.UTC()
	t.Status = TicketUsed
	t.ScannedAt = &scanned
	return nil
}
