package auth

import (
	"context"
	"time"

	"github.com/baechuer/eventhub/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// TokenClaims is the verified identity carried by an access token.
type TokenClaims struct {
	UserID   string
	Username string
	IsStaff  bool
	Exp      time.Time
}

type TokenSigner interface {
	SignAccessToken(u *domain.User, ttl time.Duration) (string, error)
	VerifyAccessToken(token string) (TokenClaims, error)
}

// SessionStore holds opaque refresh tokens. Rotation invalidates the old
// token in the same step that mints the replacement.
type SessionStore interface {
	CreateRefreshToken(ctx context.Context, userID string, ttl time.Duration) (string, error)
	RotateRefreshToken(ctx context.Context, oldToken string, ttl time.Duration) (string, string, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
