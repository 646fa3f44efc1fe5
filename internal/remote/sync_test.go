package remote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathforge/internal/progress"
	"github.com/abhisek/mathforge/internal/store"
	"github.com/abhisek/mathforge/internal/treasury"
)

// fakeClient is an in-memory Client for Syncer tests.
type fakeClient struct {
	payload *Payload
	upserts int
}

func (f *fakeClient) FetchStats(ctx context.Context, user string) (*Payload, error) {
	if f.payload == nil {
		return nil, ErrNotFound
	}
	p := *f.payload
	return &p, nil
}

func (f *fakeClient) UpsertStats(ctx context.Context, payload *Payload) error {
	p := *payload
	f.payload = &p
	f.upserts++
	return nil
}

func newTestSyncer(client Client) (*Syncer, *progress.Ledger, *treasury.Ledger) {
	blobs := store.NewMem()
	stats := progress.New(blobs)
	tr := treasury.New(blobs)
	return NewSyncer("akira", client, stats, tr, blobs), stats, tr
}

func TestPushUploadsSnapshots(t *testing.T) {
	ctx := context.Background()
	fake := &fakeClient{}
	s, stats, tr := newTestSyncer(fake)

	stats.AddXP(ctx, 500)
	tr.AddPetals(ctx, 120)

	require.NoError(t, s.Push(ctx))
	require.Equal(t, 1, fake.upserts)
	require.Equal(t, "akira", fake.payload.User)
	require.Equal(t, 500, fake.payload.Stats.XP)
	require.Equal(t, 120, fake.payload.Treasury.Petals)
	require.False(t, fake.payload.UpdatedAt.IsZero())
}

func TestPullImportsNewerPayload(t *testing.T) {
	ctx := context.Background()
	fake := &fakeClient{payload: &Payload{
		User:      "akira",
		UpdatedAt: time.Now().Add(time.Hour),
		Stats:     progress.Snapshot{XP: 2200, Level: 3},
		Treasury:  treasury.Snapshot{Petals: 40, TotalXP: 300, Rank: 2},
	}}
	s, stats, tr := newTestSyncer(fake)

	replaced, err := s.Pull(ctx)
	require.NoError(t, err)
	require.True(t, replaced)
	require.Equal(t, 2200, stats.Stats().XP)
	require.Equal(t, 40, tr.Snapshot().Petals)
}

func TestPullSkipsStalePayload(t *testing.T) {
	ctx := context.Background()
	fake := &fakeClient{}
	s, stats, _ := newTestSyncer(fake)

	stats.AddXP(ctx, 900)
	require.NoError(t, s.Push(ctx))

	// Rewind the remote copy behind what this device just pushed.
	fake.payload.UpdatedAt = fake.payload.UpdatedAt.Add(-time.Hour)
	fake.payload.Stats.XP = 1

	replaced, err := s.Pull(ctx)
	require.NoError(t, err)
	require.False(t, replaced)
	require.Equal(t, 900, stats.Stats().XP)
}

func TestPullWithNothingRemote(t *testing.T) {
	s, _, _ := newTestSyncer(&fakeClient{})
	replaced, err := s.Pull(context.Background())
	require.NoError(t, err)
	require.False(t, replaced)
}
