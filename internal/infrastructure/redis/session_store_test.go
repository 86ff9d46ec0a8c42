package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return FromRaw(rdb), mr
}

func TestSessionStore_CreateAndRotate(t *testing.T) {
	c, _ := testClient(t)
	s := NewSessionStore(c)
	ctx := context.Background()

	tok, err := s.CreateRefreshToken(ctx, "user-1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	newTok, uid, err := s.RotateRefreshToken(ctx, tok, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
	assert.NotEqual(t, tok, newTok)

	// old token is gone
	_, _, err = s.RotateRefreshToken(ctx, tok, time.Hour)
	require.Error(t, err)

	// new token survives
	_, uid, err = s.RotateRefreshToken(ctx, newTok, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}

func TestSessionStore_Revoke(t *testing.T) {
	c, _ := testClient(t)
	s := NewSessionStore(c)
	ctx := context.Background()

	tok, err := s.CreateRefreshToken(ctx, "user-1", time.Hour)
	require.NoError(t, err)

	require.NoError(t, s.RevokeRefreshToken(ctx, tok))
	_, _, err = s.RotateRefreshToken(ctx, tok, time.Hour)
	require.Error(t, err)

	// unknown token revocation is a no-op
	assert.NoError(t, s.RevokeRefreshToken(ctx, "never-issued"))
}

func TestSessionStore_TokenExpires(t *testing.T) {
	c, mr := testClient(t)
	s := NewSessionStore(c)
	ctx := context.Background()

	tok, err := s.CreateRefreshToken(ctx, "user-1", time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, _, err = s.RotateRefreshToken(ctx, tok, time.Minute)
	require.Error(t, err)
}

func TestSessionStore_RawTokenNotStored(t *testing.T) {
	c, mr := testClient(t)
	s := NewSessionStore(c)

	tok, err := s.CreateRefreshToken(context.Background(), "user-1", time.Hour)
	require.NoError(t, err)

	for _, key := range mr.Keys() {
		assert.NotContains(t, key, tok)
	}
}
