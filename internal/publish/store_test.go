package publish

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	has, err := store.HasToken(ctx)
	require.NoError(t, err)
	require.False(t, has)

	token := "ghp_" + strings.Repeat("a", 36)
	require.NoError(t, store.SaveToken(ctx, token))

	got, err := store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, token, got)

	has, err = store.HasToken(ctx)
	require.NoError(t, err)
	require.True(t, has)
}

func TestStore_TokenObfuscated(t *testing.T) {
	token := "ghp_" + strings.Repeat("a", 36)
	stored := obfuscateToken(token)
	require.NotContains(t, stored, "ghp_")

	back, err := deobfuscateToken(stored)
	require.NoError(t, err)
	require.Equal(t, token, back)
}

func TestStore_SaveTokenReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveToken(ctx, "ghp_"+strings.Repeat("a", 36)))
	second := "ghp_" + strings.Repeat("b", 36)
	require.NoError(t, store.SaveToken(ctx, second))

	got, err := store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, second, got)
}

func TestStore_SettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	missing, err := store.SettingsFor(ctx, "p1")
	require.NoError(t, err)
	require.Nil(t, missing)

	pushedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	settings := Settings{
		ProjectID: "p1", Owner: "jane", Repo: "site",
		Branch: "main", BasePath: "/docs", LastPushAt: pushedAt,
	}
	require.NoError(t, store.SaveSettings(ctx, settings))

	got, err := store.SettingsFor(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, &settings, got)

	// Saving again for the same project replaces the entry.
	settings.Branch = "gh-pages"
	require.NoError(t, store.SaveSettings(ctx, settings))
	got, err = store.SettingsFor(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "gh-pages", got.Branch)
}

func TestStore_RemoveTokenClearsSettings(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveToken(ctx, "ghp_"+strings.Repeat("a", 36)))
	require.NoError(t, store.SaveSettings(ctx, Settings{
		ProjectID: "p1", Owner: "jane", Repo: "site", Branch: "main",
		BasePath: "/", LastPushAt: time.Now().UTC().Truncate(time.Second),
	}))

	require.NoError(t, store.RemoveToken(ctx))

	has, err := store.HasToken(ctx)
	require.NoError(t, err)
	require.False(t, has)

	settings, err := store.SettingsFor(ctx, "p1")
	require.NoError(t, err)
	require.Nil(t, settings, "disconnect removes saved destinations too")
}
