package treasury

import (
	"context"
	"testing"

	"github.com/abhisek/mathforge/internal/store"
)

func TestRankThresholds(t *testing.T) {
	tests := []struct {
		totalXP  int
		wantRank int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{249, 1},
		{250, 2},
		{4999, 8},
		{5000, 9},
		{999999, 9},
	}
	for _, tt := range tests {
		if got := rankFor(0, tt.totalXP); got != tt.wantRank {
			t.Errorf("rankFor(0, %d) = %d, want %d", tt.totalXP, got, tt.wantRank)
		}
	}
}

func TestAwardCrossesRankThreshold(t *testing.T) {
	ctx := context.Background()
	l := New(store.NewMem())

	l.AddPetals(ctx, 90)
	if s := l.Snapshot(); s.Rank != 0 {
		t.Fatalf("Rank = %d at 90 XP, want 0", s.Rank)
	}
	if l.ConsumeRankUp() {
		t.Fatal("rank-up flag set before crossing a threshold")
	}

	l.AddPetals(ctx, 20)
	s := l.Snapshot()
	if s.TotalXP != 110 || s.Rank != 1 {
		t.Fatalf("totalXP=%d rank=%d, want 110/1", s.TotalXP, s.Rank)
	}
	if !l.ConsumeRankUp() {
		t.Error("rank-up flag not set after crossing a threshold")
	}
	if l.ConsumeRankUp() {
		t.Error("rank-up flag fired twice")
	}
}

func TestAwardSkipsSeveralRanks(t *testing.T) {
	ctx := context.Background()
	l := New(store.NewMem())

	l.AddEmbers(ctx, 600)
	s := l.Snapshot()
	if s.Embers != 600 || s.TotalXP != 600 || s.Rank != 3 {
		t.Errorf("embers=%d totalXP=%d rank=%d, want 600/600/3", s.Embers, s.TotalXP, s.Rank)
	}
}

func TestBothCurrenciesShareXPTrack(t *testing.T) {
	ctx := context.Background()
	l := New(store.NewMem())

	l.AddPetals(ctx, 60)
	l.AddEmbers(ctx, 60)

	s := l.Snapshot()
	if s.Petals != 60 || s.Embers != 60 {
		t.Errorf("petals=%d embers=%d, want 60/60", s.Petals, s.Embers)
	}
	if s.TotalXP != 120 || s.Rank != 1 {
		t.Errorf("totalXP=%d rank=%d, want 120/1", s.TotalXP, s.Rank)
	}
}

func TestRankNeverDecreases(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMem()
	l := New(blobs)
	l.AddPetals(ctx, 300)

	before := l.Snapshot().Rank
	// Spending never touches the XP track or rank.
	l.BuyItem(ctx, ItemFreeze, 250, CurrencyPetals)
	s := l.Snapshot()
	if s.Rank != before {
		t.Errorf("Rank = %d after purchase, want %d", s.Rank, before)
	}
	if s.TotalXP != 300 {
		t.Errorf("TotalXP = %d after purchase, want 300", s.TotalXP)
	}
}

func TestBuyItem(t *testing.T) {
	ctx := context.Background()

	t.Run("insufficient balance leaves state untouched", func(t *testing.T) {
		l := New(store.NewMem())
		l.AddPetals(ctx, 30)

		if l.BuyItem(ctx, ItemFreeze, 50, CurrencyPetals) {
			t.Fatal("purchase succeeded with 30 petals against a 50 cost")
		}
		s := l.Snapshot()
		if s.Petals != 30 || s.Inventory[ItemFreeze] != 0 {
			t.Errorf("petals=%d freeze=%d, want 30/0", s.Petals, s.Inventory[ItemFreeze])
		}
	})

	t.Run("successful purchase deducts and stocks", func(t *testing.T) {
		l := New(store.NewMem())
		l.AddPetals(ctx, 80)

		if !l.BuyItem(ctx, ItemFreeze, 50, CurrencyPetals) {
			t.Fatal("purchase failed with 80 petals against a 50 cost")
		}
		s := l.Snapshot()
		if s.Petals != 30 || s.Inventory[ItemFreeze] != 1 {
			t.Errorf("petals=%d freeze=%d, want 30/1", s.Petals, s.Inventory[ItemFreeze])
		}
	})

	t.Run("non-positive cost is rejected", func(t *testing.T) {
		l := New(store.NewMem())
		l.AddPetals(ctx, 20)

		if l.BuyItem(ctx, ItemFreeze, 0, CurrencyPetals) {
			t.Error("zero-cost purchase accepted")
		}
		if l.BuyItem(ctx, ItemFreeze, -50, CurrencyPetals) {
			t.Error("negative-cost purchase accepted")
		}
		s := l.Snapshot()
		if s.Petals != 20 || s.Inventory[ItemFreeze] != 0 {
			t.Errorf("petals=%d freeze=%d, want 20/0", s.Petals, s.Inventory[ItemFreeze])
		}
	})

	t.Run("ember purchases draw from embers", func(t *testing.T) {
		l := New(store.NewMem())
		l.AddPetals(ctx, 100)
		l.AddEmbers(ctx, 10)

		if !l.BuyItem(ctx, ItemExtraTime, 5, CurrencyEmbers) {
			t.Fatal("ember purchase failed")
		}
		s := l.Snapshot()
		if s.Embers != 5 || s.Petals != 100 {
			t.Errorf("embers=%d petals=%d, want 5/100", s.Embers, s.Petals)
		}
	})
}

func TestConsumeItem(t *testing.T) {
	ctx := context.Background()
	l := New(store.NewMem())
	l.AddPetals(ctx, 100)
	l.BuyItem(ctx, ItemFiftyFifty, 40, CurrencyPetals)

	if !l.ConsumeItem(ctx, ItemFiftyFifty) {
		t.Fatal("consume failed with one unit held")
	}
	if l.ConsumeItem(ctx, ItemFiftyFifty) {
		t.Error("consume succeeded with zero units held")
	}
	if got := l.Snapshot().Inventory[ItemFiftyFifty]; got != 0 {
		t.Errorf("fiftyFifty count = %d, want 0", got)
	}
}

func TestPersistAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMem()

	l := New(blobs)
	l.AddPetals(ctx, 120)
	l.BuyItem(ctx, ItemFreeze, 50, CurrencyPetals)

	reloaded := New(blobs)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := reloaded.Snapshot()
	if s.Petals != 70 || s.TotalXP != 120 || s.Rank != 1 {
		t.Errorf("reloaded petals=%d totalXP=%d rank=%d, want 70/120/1", s.Petals, s.TotalXP, s.Rank)
	}
	if s.Inventory[ItemFreeze] != 1 {
		t.Errorf("reloaded freeze = %d, want 1", s.Inventory[ItemFreeze])
	}
	// The flag is transient UI state and never persists.
	if reloaded.ConsumeRankUp() {
		t.Error("rank-up flag survived a reload")
	}
}

func TestLoadRepairsUnderstatedRank(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMem()
	if err := blobs.Set(ctx, store.KeyTreasury, []byte(`{"petals":5,"totalXP":300,"rank":0}`)); err != nil {
		t.Fatal(err)
	}

	l := New(blobs)
	if err := l.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := l.Snapshot().Rank; got != 2 {
		t.Errorf("Rank = %d after load, want 2 for 300 XP", got)
	}
}

func TestResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMem()
	l := New(blobs)
	l.AddPetals(ctx, 200)
	l.BuyItem(ctx, ItemFreeze, 50, CurrencyPetals)

	l.Reset(ctx)

	s := l.Snapshot()
	if s.Petals != 0 || s.TotalXP != 0 || s.Rank != 0 || s.Inventory[ItemFreeze] != 0 {
		t.Errorf("reset left state behind: %+v", s)
	}
	if _, err := blobs.Get(ctx, store.KeyTreasury); err != store.ErrNotFound {
		t.Error("persisted blob survived reset")
	}
}

func TestCurrentRankTitle(t *testing.T) {
	ctx := context.Background()
	l := New(store.NewMem())

	if got := l.CurrentRank().Title; got != "Initiate of Numbers" {
		t.Errorf("starting rank = %q", got)
	}
	l.AddPetals(ctx, 1400)
	if got := l.CurrentRank().Title; got != "Dragon's Pupil" {
		t.Errorf("rank at 1400 XP = %q, want Dragon's Pupil", got)
	}
}

func TestSnapshotReturnsCopy(t *testing.T) {
	ctx := context.Background()
	l := New(store.NewMem())
	l.AddPetals(ctx, 100)
	l.BuyItem(ctx, ItemFreeze, 50, CurrencyPetals)

	s := l.Snapshot()
	s.Inventory[ItemFreeze] = 99

	if got := l.Snapshot().Inventory[ItemFreeze]; got == 99 {
		t.Error("Snapshot exposed the internal inventory map")
	}
}
