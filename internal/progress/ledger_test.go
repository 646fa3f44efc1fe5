package progress

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/mathforge/internal/quizgen"
	"github.com/abhisek/mathforge/internal/store"
)

func newTestLedger() (*Ledger, *time.Time) {
	l := New(store.NewMem())
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAddXPLevels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		amount    int
		wantXP    int
		wantLevel int
	}{
		{999, 999, 1},
		{1, 1000, 2},
		{500, 1500, 2},
		{1500, 3000, 4},
	}

	l, _ := newTestLedger()
	for _, tt := range tests {
		l.AddXP(ctx, tt.amount)
		s := l.Stats()
		if s.XP != tt.wantXP || s.Level != tt.wantLevel {
			t.Errorf("after AddXP(%d): xp=%d level=%d, want xp=%d level=%d",
				tt.amount, s.XP, s.Level, tt.wantXP, tt.wantLevel)
		}
	}
}

func TestAddXPFreshLedgerFixture(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger()

	l.AddXP(ctx, 1500)
	s := l.Stats()
	if s.XP != 1500 || s.Level != 2 {
		t.Errorf("xp=%d level=%d, want xp=1500 level=2", s.XP, s.Level)
	}
}

func TestRecordAnswerMonotonicCounters(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger()

	for i := 0; i < 20; i++ {
		before := l.Stats().TotalQuestions
		l.RecordAnswer(ctx, Answer{
			Category: quizgen.CategoryTables,
			Correct:  i%3 != 0,
		})
		s := l.Stats()
		if s.TotalQuestions != before+1 {
			t.Fatalf("TotalQuestions = %d, want %d", s.TotalQuestions, before+1)
		}
		if s.CorrectAnswers > s.TotalQuestions {
			t.Fatalf("CorrectAnswers %d exceeds TotalQuestions %d", s.CorrectAnswers, s.TotalQuestions)
		}
	}
}

func TestRecordAnswerCategoryStats(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger()

	l.RecordAnswer(ctx, Answer{Category: quizgen.CategorySquares, Correct: true})
	l.RecordAnswer(ctx, Answer{Category: quizgen.CategorySquares, Correct: false})

	cs := l.Stats().CategoryStats["squares"]
	if cs.Attempted != 2 || cs.Correct != 1 {
		t.Errorf("squares stats = %+v, want attempted=2 correct=1", cs)
	}
	if cs.Correct > cs.Attempted {
		t.Error("correct exceeds attempted")
	}
}

func TestRecordAnswerFastestTime(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger()

	if l.Stats().FastestTimeMs != nil {
		t.Fatal("fastest time should start unset")
	}

	// Wrong answers never set the fastest time.
	l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: false, TimeTakenMs: 100})
	if l.Stats().FastestTimeMs != nil {
		t.Fatal("wrong answer set fastest time")
	}

	l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true, TimeTakenMs: 4200})
	l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true, TimeTakenMs: 6000})
	l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true, TimeTakenMs: 3100})

	got := l.Stats().FastestTimeMs
	if got == nil || *got != 3100 {
		t.Errorf("FastestTimeMs = %v, want 3100", got)
	}
}

func TestRecordAnswerHeatmap(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger()

	l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true, QuestionID: "7x8"})
	l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: false, QuestionID: "7x8"})
	l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true})

	cell := l.Stats().Heatmap["7x8"]
	if cell.Attempts != 2 || cell.Correct != 1 {
		t.Errorf("heatmap cell = %+v, want attempts=2 correct=1", cell)
	}
	if len(l.Stats().Heatmap) != 1 {
		t.Error("answer without question id should not touch the heatmap")
	}
}

func TestDayStreakTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("first play starts at 1", func(t *testing.T) {
		l, _ := newTestLedger()
		l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true})
		if s := l.Stats(); s.Streak != 1 {
			t.Errorf("Streak = %d, want 1", s.Streak)
		}
	})

	t.Run("consecutive day increments", func(t *testing.T) {
		l, now := newTestLedger()
		l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true})
		*now = now.AddDate(0, 0, 1)
		l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true})
		if s := l.Stats(); s.Streak != 2 {
			t.Errorf("Streak = %d, want 2", s.Streak)
		}
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		l, _ := newTestLedger()
		l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true})
		l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: false})
		if s := l.Stats(); s.Streak != 1 {
			t.Errorf("Streak = %d, want 1", s.Streak)
		}
	})

	t.Run("three day gap resets to 1", func(t *testing.T) {
		l, now := newTestLedger()
		l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true})
		*now = now.AddDate(0, 0, 1)
		l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true})
		*now = now.AddDate(0, 0, 3)
		l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true})
		if s := l.Stats(); s.Streak != 1 {
			t.Errorf("Streak = %d, want 1", s.Streak)
		}
	})
}

func TestHistoryTracksDays(t *testing.T) {
	ctx := context.Background()
	l, now := newTestLedger()

	l.AddXP(ctx, 50)
	l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true})
	l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true})

	s := l.Stats()
	if len(s.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(s.History))
	}
	if s.History[0].XP != 50 || s.History[0].Questions != 2 {
		t.Errorf("today's entry = %+v, want xp=50 questions=2", s.History[0])
	}

	*now = now.AddDate(0, 0, 1)
	l.AddXP(ctx, 20)
	if got := len(l.Stats().History); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}
}

func TestHistoryEvictsPastCap(t *testing.T) {
	ctx := context.Background()
	l, now := newTestLedger()

	firstDay := now.Format("2006-01-02")
	for i := 0; i < 35; i++ {
		l.AddXP(ctx, 10)
		*now = now.AddDate(0, 0, 1)
	}

	s := l.Stats()
	if len(s.History) != 30 {
		t.Fatalf("history length = %d, want 30", len(s.History))
	}
	for _, e := range s.History {
		if e.Date == firstDay {
			t.Error("oldest entry survived eviction")
		}
	}
	// Entries stay ordered by creation date.
	for i := 1; i < len(s.History); i++ {
		if s.History[i].Date <= s.History[i-1].Date {
			t.Errorf("history out of order at %d: %s after %s", i, s.History[i].Date, s.History[i-1].Date)
		}
	}
}

func TestPersistAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMem()

	l := New(blobs)
	l.now = func() time.Time { return time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC) }
	l.AddXP(ctx, 1200)
	l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryCubes, Correct: true, TimeTakenMs: 900, QuestionID: "cb4"})

	reloaded := New(blobs)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := reloaded.Stats()
	if s.XP != 1200 || s.Level != 2 {
		t.Errorf("reloaded xp=%d level=%d, want 1200/2", s.XP, s.Level)
	}
	if s.Heatmap["cb4"].Attempts != 1 {
		t.Error("heatmap lost on reload")
	}
	if s.FastestTimeMs == nil || *s.FastestTimeMs != 900 {
		t.Errorf("FastestTimeMs = %v, want 900", s.FastestTimeMs)
	}
	// Pre-seeded categories survive even when never answered.
	if _, ok := s.CategoryStats["reciprocals"]; !ok {
		t.Error("base category seed missing after reload")
	}
}

func TestResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMem()
	l := New(blobs)
	l.AddXP(ctx, 500)
	l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true})

	l.Reset(ctx)

	s := l.Stats()
	if s.XP != 0 || s.Level != 1 || s.TotalQuestions != 0 || s.Streak != 0 {
		t.Errorf("reset left state behind: %+v", s)
	}
	if _, err := blobs.Get(ctx, store.KeyStats); err != store.ErrNotFound {
		t.Error("persisted blob survived reset")
	}
}

func TestHeatCellBands(t *testing.T) {
	tests := []struct {
		cell HeatCell
		want MasteryBand
	}{
		{HeatCell{}, BandUnseen},
		{HeatCell{Correct: 0, Attempts: 2}, BandWeak},
		{HeatCell{Correct: 1, Attempts: 2}, BandLearning},
		{HeatCell{Correct: 4, Attempts: 5}, BandStrong},
		{HeatCell{Correct: 5, Attempts: 5}, BandStrong},
	}
	for _, tt := range tests {
		if got := tt.cell.Band(); got != tt.want {
			t.Errorf("Band(%+v) = %s, want %s", tt.cell, got, tt.want)
		}
	}
}

func TestStatsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger()
	l.RecordAnswer(ctx, Answer{Category: quizgen.CategoryTables, Correct: true, QuestionID: "2x2"})

	s := l.Stats()
	s.Heatmap["2x2"] = HeatCell{Correct: 99, Attempts: 99}
	s.CategoryStats["tables"] = CategoryStat{Attempted: 99}

	fresh := l.Stats()
	if fresh.Heatmap["2x2"].Correct == 99 || fresh.CategoryStats["tables"].Attempted == 99 {
		t.Error("Stats exposed internal maps")
	}
}

func ExampleHeatCell_Band() {
	cell := HeatCell{Correct: 9, Attempts: 10}
	fmt.Println(cell.Band())
	// Output: strong
}
