package dto

import "time"

type PageResp[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

type CategoryResp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EventResp struct {
	ID          string        `json:"id"`
	OrganizerID string        `json:"organizer_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Start       time.Time     `json:"start_datetime"`
	End         *time.Time    `json:"end_datetime,omitempty"`
	Location    string        `json:"location"`
	Category    *CategoryResp `json:"category,omitempty"`
	Tags        string        `json:"tags,omitempty"`
	Capacity    int           `json:"capacity"`
	SeatsLeft   int           `json:"seats_left"`
	PosterURL   string        `json:"poster_url,omitempty"`
	Featured    bool          `json:"featured"`
	CreatedAt   time.Time     `json:"created_at"`
}

type TicketResp struct {
	ID         string     `json:"id"`
	EventID    string     `json:"event_id"`
	AttendeeID string     `json:"attendee_id"`
	Status     string     `json:"status"`
	QRURL      string     `json:"qr_url,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ScannedAt  *time.Time `json:"scanned_at,omitempty"`
	Event      *EventResp `json:"event,omitempty"`
}

// VerifyResp mirrors the scanner contract: valid is true only when this call
// performed the active to used transition.
type VerifyResp struct {
	Valid  bool       `json:"valid"`
	Ticket TicketResp `json:"ticket"`
}

type RegistrationResp struct {
	ID        string     `json:"id"`
	EventID   string     `json:"event_id"`
	CreatedAt time.Time  `json:"created_at"`
	Event     *EventResp `json:"event,omitempty"`
}

type LikeResp struct {
	ID        string     `json:"id"`
	EventID   string     `json:"event_id"`
	CreatedAt time.Time  `json:"created_at"`
	Event     *EventResp `json:"event,omitempty"`
}

type UserResp struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	IsStaff   bool      `json:"is_staff"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type TokensResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthResp struct {
	User   UserResp   `json:"user"`
	Tokens TokensResp `json:"tokens"`
}
