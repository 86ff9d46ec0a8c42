package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/eventhub/internal/domain"
)

type RegisterCmd struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

// Register creates the account and signs the new user in.
func (s *Service) Register(ctx context.Context, cmd RegisterCmd) (Result, error) {
	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))

	if _, err := s.users.GetByUsername(ctx, cmd.Username); err == nil {
		return Result{}, domain.ErrConflict("username already taken")
	}
	if _, err := s.users.GetByEmail(ctx, cmd.Email); err == nil {
		return Result{}, domain.ErrConflict("email already registered")
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return Result{}, err
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     cmd.Username,
		Email:        cmd.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(cmd.FirstName),
		LastName:     strings.TrimSpace(cmd.LastName),
		Role:         domain.RoleAttendee,
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return Result{}, err
	}

	toks, err := s.issueTokens(ctx, u)
	if err != nil {
		return Result{}, err
	}
	return Result{User: u, Tokens: toks}, nil
}
