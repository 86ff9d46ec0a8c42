package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/eventhub/internal/application/auth"
	"github.com/baechuer/eventhub/internal/application/category"
	"github.com/baechuer/eventhub/internal/application/event"
	"github.com/baechuer/eventhub/internal/application/ticket"
	"github.com/baechuer/eventhub/internal/config"
	"github.com/baechuer/eventhub/internal/domain"
	"github.com/baechuer/eventhub/internal/infrastructure/security"
	"github.com/baechuer/eventhub/internal/transport/http/handlers"
	authmw "github.com/baechuer/eventhub/internal/transport/http/middleware"
)

const (
	organizerID = "11111111-1111-1111-1111-111111111111"
	attendeeID  = "22222222-2222-2222-2222-222222222222"
	eventID     = "33333333-3333-3333-3333-333333333333"
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type memEvents struct{ byID map[string]*domain.Event }

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

func (m *memEvents) SetPoster(ctx context.Context, id, key string) error { return nil }

func (m *memEvents) Delete(ctx context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

func (m *memEvents) List(ctx context.Context, f event.ListFilter) ([]*domain.Event, int, error) {
	var out []*domain.Event
	for _, e := range m.byID {
		cp := *e
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *memEvents) ListByOrganizer(ctx context.Context, organizerID string, page, pageSize int) ([]*domain.Event, int, error) {
	return m.List(ctx, event.ListFilter{})
}

type memReserver struct {
	events  *memEvents
	tickets map[string]*domain.Ticket
}

func (m *memReserver) Reserve(ctx context.Context, evID, userID string, now time.Time, persistQR func(string) (string, error)) (*domain.Ticket, bool, error) {
	e, ok := m.events.byID[evID]
	if !ok {
		return nil, false, domain.ErrNotFound("event not found")
	}
	if e.OrganizerID == userID {
		return nil, false, domain.ErrInvalidState("organizers cannot rsvp to their own event")
	}
	if t, ok := m.tickets[evID+"|"+userID]; ok {
		return t, false, nil
	}
	if e.SeatsLeft <= 0 {
		return nil, false, domain.ErrInvalidState("event is full")
	}
	t := &domain.Ticket{
		ID:         "44444444-4444-4444-4444-444444444444",
		EventID:    evID,
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
	m.tickets[evID+"|"+userID] = t
	return t, true, nil
}

func (m *memReserver) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	for _, t := range m.tickets {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound("ticket not found")
}

func (m *memReserver) MarkUsed(ctx context.Context, id string, scannedAt time.Time) error {
	for _, t := range m.tickets {
		if t.ID == id {
			t.Status = domain.TicketUsed
			t.ScannedAt = &scannedAt
			return nil
		}
	}
	return domain.ErrNotFound("ticket not found")
}

func (m *memReserver) ListByAttendee(ctx context.Context, attendeeID string) ([]*domain.Ticket, error) {
	var out []*domain.Ticket
	for _, t := range m.tickets {
		if t.AttendeeID == attendeeID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memLikes struct{ set map[string]bool }

func (m *memLikes) Toggle(ctx context.Context, evID, userID string, now time.Time) (bool, error) {
	k := evID + "|" + userID
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

type memRegs struct{}

func (memRegs) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return nil, nil
}

func (memRegs) ListAttendees(ctx context.Context, eventID string) ([]event.Attendee, error) {
	return []event.Attendee{{UserID: attendeeID, Username: "alice"}}, nil
}

type memCats struct{ byID map[string]*domain.Category }

func (m *memCats) Create(ctx context.Context, c *domain.Category) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCats) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("category not found")
	}
	return c, nil
}

func (m *memCats) List(ctx context.Context) ([]*domain.Category, error) { return nil, nil }
func (m *memCats) Delete(ctx context.Context, id string) error          { return nil }

type memMedia struct{}

func (memMedia) Put(ctx context.Context, key, contentType string, body io.Reader) error { return nil }
func (memMedia) Remove(ctx context.Context, key string) error                           { return nil }
func (memMedia) URL(key string) string                                                  { return "/media/" + key }

type memUsers struct{ byID map[string]*domain.User }

func (m *memUsers) Create(ctx context.Context, u *domain.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("user not found")
	}
	return u, nil
}

func (m *memUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound("user not found")
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound("user not found")
}

func (m *memUsers) Update(ctx context.Context, u *domain.User) error { return nil }

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }
func (plainHasher) Compare(hash, p string) error {
	if hash != "h:"+p {
		return errors.New("mismatch")
	}
	return nil
}

type memSessions struct{ byToken map[string]string }

func (m *memSessions) CreateRefreshToken(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	tok := "refresh-" + userID
	m.byToken[tok] = userID
	return tok, nil
}

func (m *memSessions) RotateRefreshToken(ctx context.Context, old string, ttl time.Duration) (string, string, error) {
	uid, ok := m.byToken[old]
	if !ok {
		return "", "", domain.ErrUnauthorized("invalid refresh token")
	}
	delete(m.byToken, old)
	tok := old + "x"
	m.byToken[tok] = uid
	return tok, uid, nil
}

func (m *memSessions) RevokeRefreshToken(ctx context.Context, token string) error {
	delete(m.byToken, token)
	return nil
}

type testServer struct {
	handler http.Handler
	signer  *security.JWTSigner
	events  *memEvents
	users   *memUsers
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	clock := fakeClock{t: now}

	events := &memEvents{byID: map[string]*domain.Event{
		eventID: {
			ID:          eventID,
			OrganizerID: organizerID,
			Title:       "GopherCon",
			Location:    "Berlin",
			Start:       now.Add(48 * time.Hour),
			Capacity:    2,
			SeatsLeft:   2,
			CreatedAt:   now,
		},
	}}
	reserver := &memReserver{events: events, tickets: map[string]*domain.Ticket{}}
	cats := &memCats{byID: map[string]*domain.Category{}}
	users := &memUsers{byID: map[string]*domain.User{
		organizerID: {ID: organizerID, Username: "org", Email: "org@x.com", PasswordHash: "h:pw"},
		attendeeID:  {ID: attendeeID, Username: "alice", Email: "a@x.com", PasswordHash: "h:pw"},
	}}

	media := memMedia{}
	eventSvc := event.New(events, reserver, &memLikes{set: map[string]bool{}}, memRegs{}, cats,
		media, func(string) ([]byte, error) { return []byte("png"), nil }, nil, clock, 0, 0)
	ticketSvc := ticket.New(reserver, events, clock)
	categorySvc := category.New(cats)

	signer := security.NewJWTSigner("test-secret", "eventhub")
	authSvc := auth.New(users, plainHasher{}, signer, &memSessions{byToken: map[string]string{}}, clock, auth.Config{})

	h := Handlers{
		Events:     handlers.NewEventsHandler(eventSvc),
		Tickets:    handlers.NewTicketsHandler(ticketSvc, media.URL),
		Auth:       handlers.NewAuthHandler(authSvc, media, media.URL),
		Categories: handlers.NewCategoriesHandler(categorySvc),
		Health:     handlers.NewHealthHandler(nil),
	}

	cfg := &config.Config{MediaDriver: "s3"}
	return &testServer{
		handler: New(h, authmw.NewAuth(signer), cfg),
		signer:  signer,
		events:  events,
		users:   users,
	}
}

func (ts *testServer) do(t *testing.T, method, path, asUser string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if asUser != "" {
		tok, err := ts.signer.SignAccessToken(ts.users.byID[asUser], time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublicEventRoutes(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/events", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/events/"+eventID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "GopherCon")

	w = ts.do(t, http.MethodGet, "/api/events/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/events/"+eventID+"/rsvp", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodGet, "/api/tickets/mine", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRSVPFlow(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/events/"+eventID+"/rsvp", attendeeID, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"active"`)
	assert.Contains(t, w.Body.String(), "/media/tickets/")

	// repeat RSVP is idempotent, not an error
	w = ts.do(t, http.MethodPost, "/api/events/"+eventID+"/rsvp", attendeeID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// organizer self-book is a domain-rule violation -> 400
	w = ts.do(t, http.MethodPost, "/api/events/"+eventID+"/rsvp", organizerID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_state")
}

func TestVerifyFlow(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/events/"+eventID+"/rsvp", attendeeID, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	scan := map[string]string{"ticket_id": created.Data.ID}

	// attendee may not verify
	w = ts.do(t, http.MethodPost, "/api/tickets/verify", attendeeID, scan)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// organizer verifies once
	w = ts.do(t, http.MethodPost, "/api/tickets/verify", organizerID, scan)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)
	assert.Contains(t, w.Body.String(), `"status":"used"`)

	// second scan is rejected
	w = ts.do(t, http.MethodPost, "/api/tickets/verify", organizerID, scan)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountListingRoutes(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/events/"+eventID+"/rsvp", attendeeID, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, "/api/tickets/mine", attendeeID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"active"`)

	for _, path := range []string{"/api/events/mine", "/api/registrations/mine", "/api/likes/mine"} {
		w = ts.do(t, http.MethodGet, path, attendeeID, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	// per-event registrations are organizer only
	w = ts.do(t, http.MethodGet, "/api/registrations/event/"+eventID, attendeeID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodGet, "/api/registrations/event/"+eventID, organizerID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestEventUpdateOwnership(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPatch, "/api/events/"+eventID, attendeeID, map[string]any{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPatch, "/api/events/"+eventID, organizerID, map[string]any{"title": "Renamed"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Renamed")
}

func TestLikeToggleStatuses(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/events/"+eventID+"/like", attendeeID, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":true`)

	w = ts.do(t, http.MethodPost, "/api/events/"+eventID+"/like", attendeeID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":false`)
}

func TestAuthFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "pw",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")

	w = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCategoriesStaffOnly(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/categories", attendeeID, map[string]string{"name": "music"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	ts.users.byID[attendeeID].IsStaff = true
	w = ts.do(t, http.MethodPost, "/api/categories", attendeeID, map[string]string{"name": "music"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "music"))
}
