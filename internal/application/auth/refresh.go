package auth

import (
	"context"

	"github.com/baechuer/eventhub/internal/domain"
)

// Refresh rotates a refresh token and issues a new access token. A used
// refresh token is invalid from that point on.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, domain.ErrUnauthorized("invalid refresh token")
	}

	newRefresh, userID, err := s.sessions.RotateRefreshToken(ctx, refreshToken, s.refreshTTL)
	if err != nil {
		return Tokens{}, domain.ErrUnauthorized("invalid refresh token")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Tokens{}, domain.ErrUnauthorized("invalid refresh token")
	}

	access, err := s.signer.SignAccessToken(u, s.accessTTL)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{
		AccessToken:  access,
		RefreshToken: newRefresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// Logout revokes the presented refresh token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.sessions.RevokeRefreshToken(ctx, refreshToken)
}
