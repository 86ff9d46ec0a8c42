package auth

import (
	"context"
	"io"
	"strings"

	"github.com/baechuer/eventhub/internal/domain"
)

func (s *Service) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

type UpdateProfileCmd struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, cmd UpdateProfileCmd) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cmd.FirstName != nil {
		u.FirstName = strings.TrimSpace(*cmd.FirstName)
	}
	if cmd.LastName != nil {
		u.LastName = strings.TrimSpace(*cmd.LastName)
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// AvatarStore is the slice of the media store the profile flow needs.
type AvatarStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
}

func (s *Service) SetAvatar(ctx context.Context, store AvatarStore, userID, ext, contentType string, body io.Reader) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	key := "avatars/" + userID + ext
	if err := store.Put(ctx, key, contentType, body); err != nil {
		return nil, err
	}
	u.AvatarKey = key
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
