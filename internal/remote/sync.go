package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/mathforge/internal/progress"
	"github.com/abhisek/mathforge/internal/store"
	"github.com/abhisek/mathforge/internal/treasury"
)

// syncMetaKey holds the timestamp of the newest payload this device
// has seen, pushed or pulled.
const syncMetaKey = "sync_meta"

type syncMeta struct {
	UpdatedAt time.Time `json:"updatedAt"`
}

// Syncer moves ledger state between this device and a stats server.
type Syncer struct {
	user     string
	client   Client
	stats    *progress.Ledger
	treasury *treasury.Ledger
	blobs    store.Blobs
	now      func() time.Time
}

// NewSyncer wires a Syncer over the local ledgers and a client.
func NewSyncer(user string, client Client, stats *progress.Ledger, tr *treasury.Ledger, blobs store.Blobs) *Syncer {
	return &Syncer{
		user:     user,
		client:   client,
		stats:    stats,
		treasury: tr,
		blobs:    blobs,
		now:      time.Now,
	}
}

// Push uploads the current ledger snapshots, stamping them with the
// current time.
func (s *Syncer) Push(ctx context.Context) error {
	p := &Payload{
		User:      s.user,
		UpdatedAt: s.now().UTC(),
		Stats:     s.stats.Stats(),
		Treasury:  s.treasury.Snapshot(),
	}
	if err := s.client.UpsertStats(ctx, p); err != nil {
		return err
	}
	s.saveMeta(ctx, p.UpdatedAt)
	return nil
}

// Pull fetches the remote payload and imports it when it is newer than
// anything this device has seen. Returns true when local state was
// replaced. A missing remote payload is not an error; there is simply
// nothing to pull.
func (s *Syncer) Pull(ctx context.Context) (bool, error) {
	p, err := s.client.FetchStats(ctx, s.user)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if !p.UpdatedAt.After(s.loadMeta(ctx).UpdatedAt) {
		return false, nil
	}

	s.stats.Import(ctx, p.Stats)
	s.treasury.Import(ctx, p.Treasury)
	s.saveMeta(ctx, p.UpdatedAt)
	return true, nil
}

func (s *Syncer) loadMeta(ctx context.Context) syncMeta {
	var meta syncMeta
	raw, err := s.blobs.Get(ctx, syncMetaKey)
	if err != nil {
		return meta
	}
	_ = json.Unmarshal(raw, &meta)
	return meta
}

func (s *Syncer) saveMeta(ctx context.Context, at time.Time) {
	raw, err := json.Marshal(syncMeta{UpdatedAt: at})
	if err != nil {
		return
	}
	if err := s.blobs.Set(ctx, syncMetaKey, raw); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record sync time: %v\n", err)
	}
}
