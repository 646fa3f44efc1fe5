// Package treasury owns the reward economy: petal and ember balances,
// the tier-reward XP track with its titled ranks, and the power-up
// inventory. This XP track is separate from the quiz ledger's XP.
// Quiz correctness drives level; tier rewards drive rank.
package treasury

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/abhisek/mathforge/internal/store"
)

// Currency names a spendable balance.
type Currency string

const (
	CurrencyPetals Currency = "petals"
	CurrencyEmbers Currency = "embers"
)

// Power-up item ids stocked by the storefront.
const (
	ItemFreeze     = "freeze"
	ItemExtraTime  = "extraTime"
	ItemFiftyFifty = "fiftyFifty"
)

// Snapshot is the persisted state of the treasury.
type Snapshot struct {
	Petals    int            `json:"petals"`
	Embers    int            `json:"embers"`
	TotalXP   int            `json:"totalXP"`
	Rank      int            `json:"rank"`
	Inventory map[string]int `json:"inventory"`
}

// Ledger applies currency awards and purchases. Safe for concurrent
// use. Every mutation persists the whole snapshot, best-effort.
type Ledger struct {
	mu     sync.Mutex
	snap   Snapshot
	rankUp bool
	blobs  store.Blobs
}

// New creates a Ledger over the given blob store with default state.
func New(blobs store.Blobs) *Ledger {
	return &Ledger{snap: defaultSnapshot(), blobs: blobs}
}

func defaultSnapshot() Snapshot {
	return Snapshot{
		Inventory: map[string]int{
			ItemFreeze:     0,
			ItemExtraTime:  0,
			ItemFiftyFifty: 0,
		},
	}
}

// Load replaces in-memory state with the persisted snapshot.
func (l *Ledger) Load(ctx context.Context) error {
	raw, err := l.blobs.Get(ctx, store.KeyTreasury)
	if err == store.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load treasury: %w", err)
	}

	snap := defaultSnapshot()
	if err := json.Unmarshal(raw, &snap); err != nil {
		return fmt.Errorf("decode treasury: %w", err)
	}
	if snap.Inventory == nil {
		snap.Inventory = defaultSnapshot().Inventory
	}
	// Never trust a persisted rank below what totalXP warrants.
	snap.Rank = rankFor(snap.Rank, snap.TotalXP)

	l.mu.Lock()
	l.snap = snap
	l.mu.Unlock()
	return nil
}

// AddPetals credits petals and the shared XP track.
func (l *Ledger) AddPetals(ctx context.Context, amount int) {
	l.award(ctx, CurrencyPetals, amount)
}

// AddEmbers credits embers and the shared XP track.
func (l *Ledger) AddEmbers(ctx context.Context, amount int) {
	l.award(ctx, CurrencyEmbers, amount)
}

func (l *Ledger) award(ctx context.Context, currency Currency, amount int) {
	if amount <= 0 {
		return
	}

	l.mu.Lock()
	switch currency {
	case CurrencyEmbers:
		l.snap.Embers += amount
	default:
		l.snap.Petals += amount
	}
	l.snap.TotalXP += amount

	newRank := rankFor(l.snap.Rank, l.snap.TotalXP)
	if newRank > l.snap.Rank {
		l.snap.Rank = newRank
		l.rankUp = true
	}
	l.mu.Unlock()

	l.persist(ctx)
}

// BuyItem deducts cost from the chosen balance and stocks one unit of
// the item. Returns false, leaving all state untouched, when the
// balance can't cover the cost. A non-positive cost is rejected so a
// bad caller can never credit a balance through the storefront.
func (l *Ledger) BuyItem(ctx context.Context, itemID string, cost int, currency Currency) bool {
	if cost <= 0 {
		return false
	}
	l.mu.Lock()

	var balance *int
	switch currency {
	case CurrencyEmbers:
		balance = &l.snap.Embers
	default:
		balance = &l.snap.Petals
	}

	if *balance < cost {
		l.mu.Unlock()
		return false
	}
	*balance -= cost
	l.snap.Inventory[itemID]++
	l.mu.Unlock()

	l.persist(ctx)
	return true
}

// ConsumeItem decrements the item's count. Returns false, with no state
// change, when none are held.
func (l *Ledger) ConsumeItem(ctx context.Context, itemID string) bool {
	l.mu.Lock()
	if l.snap.Inventory[itemID] <= 0 {
		l.mu.Unlock()
		return false
	}
	l.snap.Inventory[itemID]--
	l.mu.Unlock()

	l.persist(ctx)
	return true
}

// ConsumeRankUp returns whether a rank-up happened since the last call
// and clears the flag. The UI shows its celebration exactly once.
func (l *Ledger) ConsumeRankUp() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	up := l.rankUp
	l.rankUp = false
	return up
}

// Snapshot returns a copy of the current state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := l.snap
	snap.Inventory = make(map[string]int, len(l.snap.Inventory))
	for k, v := range l.snap.Inventory {
		snap.Inventory[k] = v
	}
	return snap
}

// CurrentRank returns the player's rank entry.
func (l *Ledger) CurrentRank() Rank {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Ranks[l.snap.Rank]
}

// Import replaces the treasury state wholesale, e.g. after a remote
// sync pull, and persists the result.
func (l *Ledger) Import(ctx context.Context, snap Snapshot) {
	if snap.Inventory == nil {
		snap.Inventory = defaultSnapshot().Inventory
	}
	snap.Rank = rankFor(snap.Rank, snap.TotalXP)

	l.mu.Lock()
	l.snap = snap
	l.mu.Unlock()

	l.persist(ctx)
}

// Reset restores defaults and deletes the persisted copy.
func (l *Ledger) Reset(ctx context.Context) {
	l.mu.Lock()
	l.snap = defaultSnapshot()
	l.rankUp = false
	l.mu.Unlock()

	if err := l.blobs.Delete(ctx, store.KeyTreasury); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to clear treasury: %v\n", err)
	}
}

func (l *Ledger) persist(ctx context.Context) {
	l.mu.Lock()
	raw, err := json.Marshal(l.snap)
	l.mu.Unlock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to encode treasury: %v\n", err)
		return
	}
	if err := l.blobs.Set(ctx, store.KeyTreasury, raw); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to persist treasury: %v\n", err)
	}
}
