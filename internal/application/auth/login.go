package auth

import (
	"context"
	"strings"

	"github.com/baechuer/eventhub/internal/domain"
)

// Login authenticates by username. A missing user and a wrong password
// produce the same error so accounts cannot be enumerated.
func (s *Service) Login(ctx context.Context, username, password string) (Result, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Result{}, domain.ErrUnauthorized("invalid credentials")
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return Result{}, domain.ErrUnauthorized("invalid credentials")
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return Result{}, domain.ErrUnauthorized("invalid credentials")
	}

	toks, err := s.issueTokens(ctx, u)
	if err != nil {
		return Result{}, err
	}
	return Result{User: u, Tokens: toks}, nil
}
