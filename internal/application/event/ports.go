package event

import (
	"context"
	"io"
	"time"

	"github.com/baechuer/eventhub/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// Update shifts seats_left by seatsDelta relative to the stored row and
	// writes the resulting value back onto e.
	Update(ctx context.Context, e *domain.Event, seatsDelta int) error
	SetPoster(ctx context.Context, id, posterKey string) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, f ListFilter) ([]*domain.Event, int, error)
	ListByOrganizer(ctx context.Context, organizerID string, page, pageSize int) ([]*domain.Event, int, error)
}

// TicketReserver is the transactional reservation boundary. persistQR runs
// inside the transaction window; its failure aborts every write.
type TicketReserver interface {
	Reserve(ctx context.Context, eventID, userID string, now time.Time, persistQR func(ticketID string) (string, error)) (*domain.Ticket, bool, error)
}

type LikesRepo interface {
	Toggle(ctx context.Context, eventID, userID string, now time.Time) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Like, error)
}

// Attendee is the organizer-facing view of a registration row.
type Attendee struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type RegistrationsRepo interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error)
	ListAttendees(ctx context.Context, eventID string) ([]Attendee, error)
}

type CategoryGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Category, error)
}

// MediaStore is satisfied by storage.FSStore and storage.S3Store.
type MediaStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Remove(ctx context.Context, key string) error
	URL(key string) string
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
