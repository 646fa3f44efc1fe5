package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMem()

	_, err := m.Get(ctx, KeyStats)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, KeyStats, json.RawMessage(`{"xp":100}`)))

	got, err := m.Get(ctx, KeyStats)
	require.NoError(t, err)
	require.JSONEq(t, `{"xp":100}`, string(got))

	require.NoError(t, m.Delete(ctx, KeyStats))
	_, err = m.Get(ctx, KeyStats)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMem()

	value := json.RawMessage(`{"xp":1}`)
	require.NoError(t, m.Set(ctx, KeyStats, value))
	value[1] = 'z' // mutate the caller's slice

	got, err := m.Get(ctx, KeyStats)
	require.NoError(t, err)
	require.JSONEq(t, `{"xp":1}`, string(got))
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, KeyTreasury)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, KeyTreasury, json.RawMessage(`{"petals":5}`)))
	require.NoError(t, s.Set(ctx, KeyTreasury, json.RawMessage(`{"petals":9}`)))

	got, err := s.Get(ctx, KeyTreasury)
	require.NoError(t, err)
	require.JSONEq(t, `{"petals":9}`, string(got))

	require.NoError(t, s.Delete(ctx, KeyTreasury))
	_, err = s.Get(ctx, KeyTreasury)
	require.ErrorIs(t, err, ErrNotFound)
}
