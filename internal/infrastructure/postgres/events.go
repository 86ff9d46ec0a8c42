package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/baechuer/eventhub/internal/application/event"
	"github.com/baechuer/eventhub/internal/domain"
)

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo { return &EventsRepo{db: db} }

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	var e domain.Event
	var catID, catName sql.NullString
	var end sql.NullTime
	err := row.Scan(
		&e.ID, &e.OrganizerID, &e.Title, &e.Description, &e.Start, &end,
		&e.Location, &catID, &catName, &e.Tags, &e.Capacity, &e.SeatsLeft,
		&e.PosterKey, &e.Featured, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if end.Valid {
		t := end.Time
		e.End = &t
	}
	if catID.Valid {
		e.Category = &domain.Category{ID: catID.String, Name: catName.String}
	}
	return &e, nil
}

func (r *EventsRepo) Create(ctx context.Context, e *domain.Event) error {
	var catID any
	if e.Category != nil {
		catID = e.Category.ID
	}
	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.ID, e.OrganizerID, e.Title, e.Description, e.Start, e.End,
		e.Location, catID, e.Tags, e.Capacity, e.SeatsLeft, e.Featured, e.CreatedAt,
	)
	return err
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, selectEventSQL, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Update writes the patched fields. seats_left is shifted by seatsDelta
// against the stored row so a concurrently taken seat is never handed back,
// and the stored value is scanned back onto e.
func (r *EventsRepo) Update(ctx context.Context, e *domain.Event, seatsDelta int) error {
	var catID any
	if e.Category != nil {
		catID = e.Category.ID
	}
	err := r.db.QueryRowContext(ctx, updateEventSQL,
		e.ID, e.Title, e.Description, e.Start, e.End,
		e.Location, catID, e.Tags, e.Capacity, seatsDelta, e.Featured,
	).Scan(&e.SeatsLeft)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound("event not found")
	}
	return err
}

func (r *EventsRepo) SetPoster(ctx context.Context, id, posterKey string) error {
	_, err := r.db.ExecContext(ctx, updateEventPosterSQL, id, posterKey)
	return err
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteEventSQL, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound("event not found")
	}
	return nil
}

// List applies the public filters. Featured listing overrides ordering and
// caps the result at 8 rows.
func (r *EventsRepo) List(ctx context.Context, f event.ListFilter) ([]*domain.Event, int, error) {
	where := []string{"TRUE"}
	args := []any{}
	argN := 1

	add := func(condFmt string, val any) {
		where = append(where, fmt.Sprintf(condFmt, argN))
		args = append(args, val)
		argN++
	}

	if f.StartAfter != nil {
		add("e.start_datetime >= $%d", *f.StartAfter)
	}
	if f.StartBefore != nil {
		add("e.start_datetime <= $%d", *f.StartBefore)
	}
	if f.Location != "" {
		add("e.location ILIKE $%d", "%"+f.Location+"%")
	}
	if f.Category != "" {
		add("LOWER(c.name) = LOWER($%d)", f.Category)
	}
	if f.Search != "" {
		where = append(where, fmt.Sprintf(
			"(e.title ILIKE $%d OR e.description ILIKE $%d OR e.tags ILIKE $%d)", argN, argN, argN))
		args = append(args, "%"+f.Search+"%")
		argN++
	}
	if f.Featured {
		where = append(where, "e.featured")
	}
	if f.OrganizerID != "" {
		add("e.organizer_id = $%d", f.OrganizerID)
	}

	whereSQL := "WHERE " + strings.Join(where, " AND ")

	countSQL := `SELECT COUNT(*) FROM events e LEFT JOIN categories c ON c.id = e.category_id ` + whereSQL
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := "e.created_at DESC"
	limit := f.PageSize
	offset := (f.Page - 1) * f.PageSize
	if f.Featured {
		orderBy = "e.start_datetime ASC"
		limit = event.FeaturedCap
		offset = 0
		if total > event.FeaturedCap {
			total = event.FeaturedCap
		}
	}

	listSQL := `
SELECT ` + eventColumns + `
FROM events e
LEFT JOIN categories c ON c.id = e.category_id
` + whereSQL + `
ORDER BY ` + orderBy + `
LIMIT $` + fmt.Sprintf("%d", argN) + ` OFFSET $` + fmt.Sprintf("%d", argN+1)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *EventsRepo) ListByOrganizer(ctx context.Context, organizerID string, page, pageSize int) ([]*domain.Event, int, error) {
	return r.List(ctx, event.ListFilter{OrganizerID: organizerID, Page: page, PageSize: pageSize})
}
