package postgres

import (
	"context"
	"database/sql"

	"github.com/baechuer/eventhub/internal/domain"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo { return &UsersRepo{db: db} }

const userColumns = `id, username, email, password_hash, first_name, last_name, role, is_staff, avatar_key, created_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &role, &u.IsStaff, &u.AvatarKey, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func (r *UsersRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, username, email, password_hash, first_name, last_name, role, is_staff, avatar_key, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`, u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, string(u.Role), u.IsStaff, u.AvatarKey, u.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrConflict("username or email already registered")
	}
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE users SET first_name = $2, last_name = $3, avatar_key = $4 WHERE id = $1
`, u.ID, u.FirstName, u.LastName, u.AvatarKey)
	return err
}
