package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID   string
	Name string
}

type Event struct {
	ID          string
	OrganizerID string
	Title       string
	Description string
	Start       time.Time
	End         *time.Time
	Location    string
	Category    *Category
	Tags        string
	Capacity    int
	SeatsLeft   int
	PosterKey   string
	Featured    bool
	CreatedAt   time.Time
}

// NewEvent builds a validated event. SeatsLeft starts at Capacity and is
// mutated only by the reservation transaction afterwards.
func NewEvent(organizerID, title, description, location, tags string, start time.Time, end *time.Time, categoryID string, capacity int, featured bool, now time.Time) (*Event, string, error) {
	organizerID = strings.TrimSpace(organizerID)
	title = strings.TrimSpace(title)
	location = strings.TrimSpace(location)
	tags = strings.TrimSpace(tags)

	if organizerID == "" {
		return nil, "", ErrValidation("organizer is required")
	}
	if title == "" || len(title) > 200 {
		return nil, "", ErrValidationMeta("invalid field", map[string]string{"title": "required, <= 200 chars"})
	}
	if location == "" || len(location) > 200 {
		return nil, "", ErrValidationMeta("invalid field", map[string]string{"location": "required, <= 200 chars"})
	}
	if len(tags) > 200 {
		return nil, "", ErrValidationMeta("invalid field", map[string]string{"tags": "<= 200 chars"})
	}
	if start.IsZero() {
		return nil, "", ErrValidationMeta("invalid field", map[string]string{"start_datetime": "required"})
	}
	if end != nil && !end.After(start) {
		return nil, "", ErrValidationMeta("invalid field", map[string]string{"end_datetime": "must be after start_datetime"})
	}
	if capacity < 0 {
		return nil, "", ErrValidationMeta("invalid field", map[string]string{"capacity": "must be >= 0"})
	}
	categoryID = strings.TrimSpace(categoryID)

	var endUTC *time.Time
	if end != nil {
		t := end.UTC()
		endUTC = &t
	}

	return &Event{
		ID:          uuid.NewString(),
		OrganizerID: organizerID,
		Title:       title,
		Description: description,
		Start:       start.UTC(),
		End:         endUTC,
		Location:    location,
		Tags:        tags,
		Capacity:    capacity,
		SeatsLeft:   capacity,
		Featured:    featured,
		CreatedAt:   now.UTC(),
	}, categoryID, nil
}

// ApplyUpdate patches mutable fields and reports the capacity delta.
// seats_left is never written from here: the store shifts it by the returned
// delta against the current row, clamped to [0, capacity], so a reservation
// committing concurrently is never overwritten.
func (e *Event) ApplyUpdate(title, description, location, tags *string, start, end *time.Time, capacity *int, featured *bool) (int, error) {
	if title != nil {
		v := strings.TrimSpace(*title)
		if v == "" || len(v) > 200 {
			return 0, ErrValidationMeta("invalid field", map[string]string{"title": "required, <= 200 chars"})
		}
		e.Title = v
	}
	if description != nil {
		e.Description = *description
	}
	if location != nil {
		v := strings.TrimSpace(*location)
		if v == "" || len(v) > 200 {
			return 0, ErrValidationMeta("invalid field", map[string]string{"location": "required, <= 200 chars"})
		}
		e.Location = v
	}
	if tags != nil {
		v := strings.TrimSpace(*tags)
		if len(v) > 200 {
			return 0, ErrValidationMeta("invalid field", map[string]string{"tags": "<= 200 chars"})
		}
		e.Tags = v
	}
	if start != nil {
		e.Start = start.UTC()
	}
	if end != nil {
		t := end.UTC()
		e.End = &t
	}
	if e.End != nil && !e.End.After(e.Start) {
		return 0, ErrValidationMeta("invalid field", map[string]string{"end_datetime": "must be after start_datetime"})
	}
	seatsDelta := 0
	if capacity != nil {
		if *capacity < 0 {
			return 0, ErrValidationMeta("invalid field", map[string]string{"capacity": "must be >= 0"})
		}
		seatsDelta = *capacity - e.Capacity
		e.Capacity = *capacity
	}
	if featured != nil {
		e.Featured = *featured
	}
	return seatsDelta, nil
}
