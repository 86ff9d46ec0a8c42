package auth

import (
	"context"
	"time"

	"github.com/baechuer/eventhub/internal/domain"
)

type Service struct {
	users    UserRepo
	hasher   PasswordHasher
	signer   TokenSigner
	sessions SessionStore
	clock    Clock

	accessTTL  time.Duration
	refreshTTL time.Duration
}

type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func New(users UserRepo, hasher PasswordHasher, signer TokenSigner, sessions SessionStore, clock Clock, cfg Config) *Service {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		users:      users,
		hasher:     hasher,
		signer:     signer,
		sessions:   sessions,
		clock:      clock,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}
}

// Tokens is the common token output for handlers/DTO mapping.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	TokenType    string // "Bearer"
	ExpiresIn    int64  // seconds
}

type Result struct {
	User   *domain.User
	Tokens Tokens
}

func (s *Service) issueTokens(ctx context.Context, u *domain.User) (Tokens, error) {
	access, err := s.signer.SignAccessToken(u, s.accessTTL)
	if err != nil {
		return Tokens{}, err
	}
	refresh, err := s.sessions.CreateRefreshToken(ctx, u.ID, s.refreshTTL)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}
