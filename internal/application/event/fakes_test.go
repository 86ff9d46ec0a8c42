package event

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/baechuer/eventhub/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type memEvents struct {
	byID map[string]*domain.Event

	// afterGet runs once a caller has its snapshot, to interleave writes
	// between a read and the following update.
	afterGet func()
}

func newMemEvents() *memEvents { return &memEvents{byID: map[string]*domain.Event{}} }

func (m *memEvents) Create(ctx context.Context, e *domain.Event) error {
	m.byID[e.ID] = e
	return nil
}

func (m *memEvents) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	cp := *e
	if m.afterGet != nil {
		hook := m.afterGet
		m.afterGet = nil
		hook()
	}
	return &cp, nil
}

func (m *memEvents) Update(ctx context.Context, e *domain.Event, seatsDelta int) error {
	cur, ok := m.byID[e.ID]
	if !ok {
		return domain.ErrNotFound("event not found")
	}
	seats := cur.SeatsLeft + seatsDelta
	if seats < 0 {
		seats = 0
	}
	if seats > e.Capacity {
		seats = e.Capacity
	}
	cp := *e
	cp.SeatsLeft = seats
	e.SeatsLeft = seats
	m.byID[e.ID] = &cp
	return nil
}

func (m *memEvents) SetPoster(ctx context.Context, id, posterKey string) error {
	if e, ok := m.byID[id]; ok {
		e.PosterKey = posterKey
	}
	return nil
}

func (m *memEvents) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound("event not found")
	}
	delete(m.byID, id)
	return nil
}

func (m *memEvents) List(ctx context.Context, f ListFilter) ([]*domain.Event, int, error) {
	var out []*domain.Event
	for _, e := range m.byID {
		cp := *e
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *memEvents) ListByOrganizer(ctx context.Context, organizerID string, page, pageSize int) ([]*domain.Event, int, error) {
	var out []*domain.Event
	for _, e := range m.byID {
		if e.OrganizerID == organizerID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

// memReserver mimics the transactional reservation against the memEvents
// store, including the idempotent re-fetch and the persistQR-inside-tx rule.
type memReserver struct {
	events  *memEvents
	tickets map[string]*domain.Ticket // key event|user
}

func newMemReserver(events *memEvents) *memReserver {
	return &memReserver{events: events, tickets: map[string]*domain.Ticket{}}
}

func (m *memReserver) Reserve(ctx context.Context, eventID, userID string, now time.Time, persistQR func(string) (string, error)) (*domain.Ticket, bool, error) {
	e, ok := m.events.byID[eventID]
	if !ok {
		return nil, false, domain.ErrNotFound("event not found")
	}
	if e.OrganizerID == userID {
		return nil, false, domain.ErrInvalidState("organizers cannot rsvp to their own event")
	}
	if t, ok := m.tickets[eventID+"|"+userID]; ok {
		cp := *t
		return &cp, false, nil
	}
	if e.SeatsLeft <= 0 {
		return nil, false, domain.ErrInvalidState("event is full")
	}
	t := &domain.Ticket{
		ID:         "tk-" + userID,
		EventID:    eventID,
		AttendeeID: userID,
		Status:     domain.TicketActive,
		CreatedAt:  now,
	}
	key, err := persistQR(t.ID)
	if err != nil {
		return nil, false, err
	}
	t.QRKey = key
	e.SeatsLeft--
	m.tickets[eventID+"|"+userID] = t
	cp := *t
	return &cp, true, nil
}

type memLikes struct {
	set map[string]bool // event|user
}

func newMemLikes() *memLikes { return &memLikes{set: map[string]bool{}} }

func (m *memLikes) Toggle(ctx context.Context, eventID, userID string, now time.Time) (bool, error) {
	k := eventID + "|" + userID
	if m.set[k] {
		delete(m.set, k)
		return false, nil
	}
	m.set[k] = true
	return true, nil
}

func (m *memLikes) ListByUser(ctx context.Context, userID string) ([]*domain.Like, error) {
	return nil, nil
}

type memRegistrations struct {
	attendees map[string][]Attendee
}

func (m *memRegistrations) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return nil, nil
}

func (m *memRegistrations) ListAttendees(ctx context.Context, eventID string) ([]Attendee, error) {
	return m.attendees[eventID], nil
}

type memCategories struct {
	byID map[string]*domain.Category
}

func (m *memCategories) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("category not found")
	}
	return c, nil
}

type memMedia struct {
	blobs   map[string][]byte
	failPut bool
}

func newMemMedia() *memMedia { return &memMedia{blobs: map[string][]byte{}} }

func (m *memMedia) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	if m.failPut {
		return errors.New("blob store down")
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(body); err != nil {
		return err
	}
	m.blobs[key] = buf.Bytes()
	return nil
}

func (m *memMedia) Remove(ctx context.Context, key string) error {
	delete(m.blobs, key)
	return nil
}

func (m *memMedia) URL(key string) string { return "/media/" + key }

type memCache struct {
	store map[string][]byte
}

func newMemCache() *memCache { return &memCache{store: map[string][]byte{}} }

func (m *memCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (m *memCache) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}

func (m *memCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.store, k)
	}
	return nil
}

type testEnv struct {
	svc      *Service
	events   *memEvents
	reserver *memReserver
	likes    *memLikes
	media    *memMedia
	cache    *memCache
	now      time.Time
}

func newTestEnv() *testEnv {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	events := newMemEvents()
	reserver := newMemReserver(events)
	likes := newMemLikes()
	media := newMemMedia()
	cache := newMemCache()
	cats := &memCategories{byID: map[string]*domain.Category{
		"cat-1": {ID: "cat-1", Name: "conference"},
	}}
	regs := &memRegistrations{attendees: map[string][]Attendee{}}

	svc := New(events, reserver, likes, regs, cats, media,
		func(ticketID string) ([]byte, error) { return []byte("png:" + ticketID), nil },
		cache, fakeClock{t: now}, 0, 0)

	return &testEnv{svc: svc, events: events, reserver: reserver, likes: likes, media: media, cache: cache, now: now}
}

func (env *testEnv) seedEvent(id, organizerID string, seats int) *domain.Event {
	e := &domain.Event{
		ID:          id,
		OrganizerID: organizerID,
		Title:       "GopherCon",
		Location:    "Berlin",
		Start:       env.now.Add(48 * time.Hour),
		Capacity:    seats,
		SeatsLeft:   seats,
		CreatedAt:   env.now,
	}
	env.events.byID[id] = e
	return e
}
