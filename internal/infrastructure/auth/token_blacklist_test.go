package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/estatebooks/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_RevokeSingleToken(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "accountant-logout-jti", time.Hour))

	revoked, err := blacklist.IsBlacklisted(ctx, "accountant-logout-jti")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = blacklist.IsBlacklisted(ctx, "still-active-jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_EntryLapsesWithToken(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "short-lived-jti", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	revoked, err := blacklist.IsBlacklisted(ctx, "short-lived-jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_UserCutoff(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()
	issuedBefore := time.Now().Add(-time.Hour)

	// no cutoff recorded yet
	invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "hof-1", issuedBefore)
	require.NoError(t, err)
	assert.False(t, invalidated)

	require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, "hof-1", time.Hour))

	// issued before the cutoff: rejected
	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "hof-1", issuedBefore)
	require.NoError(t, err)
	assert.True(t, invalidated)

	// issued after the cutoff: still valid
	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "hof-1", time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.False(t, invalidated)

	// other users are untouched
	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "accountant-2", issuedBefore)
	require.NoError(t, err)
	assert.False(t, invalidated)
}

func TestTokenBlacklist_Implementations(t *testing.T) {
	var _ auth.TokenBlacklist = (*auth.InMemoryTokenBlacklist)(nil)
	var _ auth.TokenBlacklist = (*auth.RedisTokenBlacklist)(nil)
}
