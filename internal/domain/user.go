package domain

import "time"

// Role is stored for compatibility with the data model but is not consulted
// by any permission check. Any authenticated user may organize events.
type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleAttendee  Role = "attendee"
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	IsStaff      bool
	AvatarKey    string
	CreatedAt    time.Time
}

// Registration is the immutable audit row created alongside a ticket on
// first RSVP. One row per (event, user).
type Registration struct {
	ID        string
	EventID   string
	UserID    string
	CreatedAt time.Time
	Event     *Event
}

// Like rows are toggled: created on like, deleted on un-like.
type Like struct {
	ID        string
	EventID   string
	UserID    string
	CreatedAt time.Time
	Event     *Event
}
