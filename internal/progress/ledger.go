// Package progress owns the player's cumulative quiz statistics: XP
// and level, the daily play streak, per-category accuracy, a per-fact
// heatmap and a rolling 30-day history. Every mutation persists the
// whole snapshot through the blob store, best-effort.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/abhisek/mathforge/internal/quizgen"
	"github.com/abhisek/mathforge/internal/store"
)

const (
	// xpPerLevel is the flat XP cost of each level.
	xpPerLevel = 1000

	// historyCap bounds the rolling daily history.
	historyCap = 30

	dateLayout = "2006-01-02"
)

// CategoryStat counts attempts and correct answers for one category.
type CategoryStat struct {
	Attempted int `json:"attempted"`
	Correct   int `json:"correct"`
}

// HeatCell is the running accuracy record for a single fact id.
type HeatCell struct {
	Correct  int `json:"correct"`
	Attempts int `json:"attempts"`
}

// HistoryEntry is one calendar day of play.
type HistoryEntry struct {
	Date      string `json:"date"`
	XP        int    `json:"xp"`
	Questions int    `json:"questions"`
}

// Snapshot is the full persisted state of the ledger. FastestTimeMs is
// nil until the first correct timed answer; JSON has no infinity, so
// the sentinel is absence.
type Snapshot struct {
	XP             int                     `json:"xp"`
	Level          int                     `json:"level"`
	Streak         int                     `json:"streak"`
	LastPlayed     string                  `json:"lastPlayed,omitempty"`
	TotalQuestions int                     `json:"totalQuestions"`
	CorrectAnswers int                     `json:"correctAnswers"`
	FastestTimeMs  *int64                  `json:"fastestTimeMs,omitempty"`
	CategoryStats  map[string]CategoryStat `json:"categoryStats"`
	Heatmap        map[string]HeatCell     `json:"heatmap"`
	History        []HistoryEntry          `json:"history"`
}

// Answer is one answer event flowing into the ledger.
type Answer struct {
	Category    quizgen.Category
	Correct     bool
	TimeTakenMs int64
	QuestionID  string
}

// Ledger applies answer events and XP awards to a Snapshot and keeps
// the persisted copy in sync. Safe for concurrent use; Bubble Tea
// commands run on their own goroutines.
type Ledger struct {
	mu    sync.Mutex
	snap  Snapshot
	blobs store.Blobs
	now   func() time.Time
}

// New creates a Ledger over the given blob store with default state.
func New(blobs store.Blobs) *Ledger {
	return &Ledger{
		snap:  defaultSnapshot(),
		blobs: blobs,
		now:   time.Now,
	}
}

func defaultSnapshot() Snapshot {
	stats := make(map[string]CategoryStat, 5)
	for _, c := range quizgen.BaseCategories() {
		stats[string(c)] = CategoryStat{}
	}
	return Snapshot{
		Level:         1,
		CategoryStats: stats,
		Heatmap:       make(map[string]HeatCell),
	}
}

// Load replaces in-memory state with the persisted snapshot, merged
// over defaults so blobs written by older versions gain new fields.
func (l *Ledger) Load(ctx context.Context) error {
	raw, err := l.blobs.Get(ctx, store.KeyStats)
	if err == store.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	snap := defaultSnapshot()
	if err := json.Unmarshal(raw, &snap); err != nil {
		return fmt.Errorf("decode stats: %w", err)
	}
	// Re-seed base categories an old blob may lack.
	for _, c := range quizgen.BaseCategories() {
		if _, ok := snap.CategoryStats[string(c)]; !ok {
			snap.CategoryStats[string(c)] = CategoryStat{}
		}
	}
	if snap.Heatmap == nil {
		snap.Heatmap = make(map[string]HeatCell)
	}
	if snap.Level < 1 {
		snap.Level = 1
	}

	l.mu.Lock()
	l.snap = snap
	l.mu.Unlock()
	return nil
}

// AddXP awards XP, recomputes the level and credits today's history
// entry.
func (l *Ledger) AddXP(ctx context.Context, amount int) {
	l.mu.Lock()
	l.snap.XP += amount
	l.snap.Level = l.snap.XP/xpPerLevel + 1
	l.touchHistory(func(e *HistoryEntry) { e.XP += amount })
	l.mu.Unlock()

	l.persist(ctx)
}

// RecordAnswer folds one answer event into the ledger: totals, category
// stats, fastest time, heatmap, history and the day streak.
func (l *Ledger) RecordAnswer(ctx context.Context, a Answer) {
	l.mu.Lock()

	l.snap.TotalQuestions++
	if a.Correct {
		l.snap.CorrectAnswers++
		if l.snap.FastestTimeMs == nil || a.TimeTakenMs < *l.snap.FastestTimeMs {
			t := a.TimeTakenMs
			l.snap.FastestTimeMs = &t
		}
	}

	cs := l.snap.CategoryStats[string(a.Category)]
	cs.Attempted++
	if a.Correct {
		cs.Correct++
	}
	l.snap.CategoryStats[string(a.Category)] = cs

	if a.QuestionID != "" {
		cell := l.snap.Heatmap[a.QuestionID]
		cell.Attempts++
		if a.Correct {
			cell.Correct++
		}
		l.snap.Heatmap[a.QuestionID] = cell
	}

	l.touchHistory(func(e *HistoryEntry) { e.Questions++ })
	l.updateStreakLocked()

	l.mu.Unlock()

	l.persist(ctx)
}

// updateStreakLocked advances the day streak. Playing on consecutive
// calendar days extends it; a gap of two or more days (or first-ever
// play) restarts it at 1.
func (l *Ledger) updateStreakLocked() {
	today := l.now().Format(dateLayout)
	if l.snap.LastPlayed == today {
		return
	}

	yesterday := l.now().AddDate(0, 0, -1).Format(dateLayout)
	if l.snap.LastPlayed == yesterday {
		l.snap.Streak++
	} else {
		l.snap.Streak = 1
	}
	l.snap.LastPlayed = today
}

// touchHistory applies fn to today's history entry, creating it and
// evicting the oldest entry past the cap.
func (l *Ledger) touchHistory(fn func(*HistoryEntry)) {
	today := l.now().Format(dateLayout)
	for i := range l.snap.History {
		if l.snap.History[i].Date == today {
			fn(&l.snap.History[i])
			return
		}
	}

	entry := HistoryEntry{Date: today}
	fn(&entry)
	l.snap.History = append(l.snap.History, entry)
	if len(l.snap.History) > historyCap {
		l.snap.History = l.snap.History[len(l.snap.History)-historyCap:]
	}
}

// Stats returns a copy of the current snapshot.
func (l *Ledger) Stats() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := l.snap
	snap.CategoryStats = make(map[string]CategoryStat, len(l.snap.CategoryStats))
	for k, v := range l.snap.CategoryStats {
		snap.CategoryStats[k] = v
	}
	snap.Heatmap = make(map[string]HeatCell, len(l.snap.Heatmap))
	for k, v := range l.snap.Heatmap {
		snap.Heatmap[k] = v
	}
	snap.History = append([]HistoryEntry(nil), l.snap.History...)
	if l.snap.FastestTimeMs != nil {
		t := *l.snap.FastestTimeMs
		snap.FastestTimeMs = &t
	}
	return snap
}

// Reset restores defaults and deletes the persisted copy.
func (l *Ledger) Reset(ctx context.Context) {
	l.mu.Lock()
	l.snap = defaultSnapshot()
	l.mu.Unlock()

	if err := l.blobs.Delete(ctx, store.KeyStats); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to clear stats: %v\n", err)
	}
}

// Import replaces the ledger state wholesale, e.g. after a remote sync
// pull, and persists the result.
func (l *Ledger) Import(ctx context.Context, snap Snapshot) {
	if snap.CategoryStats == nil {
		snap.CategoryStats = defaultSnapshot().CategoryStats
	}
	if snap.Heatmap == nil {
		snap.Heatmap = make(map[string]HeatCell)
	}
	if snap.Level < 1 {
		snap.Level = snap.XP/xpPerLevel + 1
	}

	l.mu.Lock()
	l.snap = snap
	l.mu.Unlock()

	l.persist(ctx)
}

// persist writes the whole snapshot. Failures are logged and ignored;
// the next mutation writes the full state again.
func (l *Ledger) persist(ctx context.Context) {
	l.mu.Lock()
	raw, err := json.Marshal(l.snap)
	l.mu.Unlock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to encode stats: %v\n", err)
		return
	}
	if err := l.blobs.Set(ctx, store.KeyStats, raw); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to persist stats: %v\n", err)
	}
}
