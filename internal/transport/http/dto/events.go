package dto

import "time"

type CreateEventReq struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Start       time.Time  `json:"start_datetime"`
	End         *time.Time `json:"end_datetime,omitempty"`
	Location    string     `json:"location"`
	CategoryID  string     `json:"category_id,omitempty"`
	Tags        string     `json:"tags,omitempty"`
	Capacity    int        `json:"capacity"`
	Featured    bool       `json:"featured,omitempty"`
}

type UpdateEventReq struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Start       *time.Time `json:"start_datetime,omitempty"`
	End         *time.Time `json:"end_datetime,omitempty"`
	Location    *string    `json:"location,omitempty"`
	CategoryID  *string    `json:"category_id,omitempty"`
	Tags        *string    `json:"tags,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	Featured    *bool      `json:"featured,omitempty"`
}
