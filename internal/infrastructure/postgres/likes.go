package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/eventhub/internal/application/event"
	"github.com/baechuer/eventhub/internal/domain"
)

type LikesRepo struct {
	db *sql.DB
}

func NewLikesRepo(db *sql.DB) *LikesRepo { return &LikesRepo{db: db} }

// Toggle inserts the like row, or deletes it if one already exists. The
// unique (event_id, user_id) constraint decides a simultaneous double-create:
// the loser's insert affects zero rows and falls through to the delete path,
// which is the "already in desired state" outcome.
func (r *LikesRepo) Toggle(ctx context.Context, eventID, userID string, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertLikeSQL, uuid.NewString(), eventID, userID, now.UTC())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if _, err := r.db.ExecContext(ctx, deleteLikeSQL, eventID, userID); err != nil {
		return false, err
	}
	return false, nil
}

func (r *LikesRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Like, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT l.id, l.event_id, l.user_id, l.created_at
FROM event_likes l
WHERE l.user_id = $1
ORDER BY l.created_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Like
	for rows.Next() {
		var l domain.Like
		if err := rows.Scan(&l.ID, &l.EventID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

type RegistrationsRepo struct {
	db *sql.DB
}

func NewRegistrationsRepo(db *sql.DB) *RegistrationsRepo { return &RegistrationsRepo{db: db} }

func (r *RegistrationsRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT eu.id, eu.event_id, eu.user_id, eu.created_at
FROM event_users eu
WHERE eu.user_id = $1
ORDER BY eu.created_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &reg)
	}
	return out, rows.Err()
}

func (r *RegistrationsRepo) ListAttendees(ctx context.Context, eventID string) ([]event.Attendee, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT eu.user_id, u.username, u.email, eu.created_at
FROM event_users eu
JOIN users u ON u.id = eu.user_id
WHERE eu.event_id = $1
ORDER BY eu.created_at DESC
`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []event.Attendee
	for rows.Next() {
		var a event.Attendee
		if err := rows.Scan(&a.UserID, &a.Username, &a.Email, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
