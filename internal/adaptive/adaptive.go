// Package adaptive evolves a per-category difficulty level from answer
// streaks. Three consecutive correct answers raise the level, two
// consecutive misses lower it; the asymmetry drops a struggling player
// back quickly while making climbs feel earned.
package adaptive

import (
	"github.com/abhisek/mathforge/internal/quizgen"
)

const (
	// promoteStreak is the correct streak needed to raise the level.
	promoteStreak = 3

	// demoteStreak is the incorrect streak needed to lower the level.
	demoteStreak = 2
)

// State is the difficulty machine for a single category. The two
// streak counters are mutually exclusive: recording one kind of answer
// zeroes the other counter.
type State struct {
	Level           int `json:"level"`
	CorrectStreak   int `json:"correctStreak"`
	IncorrectStreak int `json:"incorrectStreak"`
}

// Adapter tracks difficulty state for every category a player has
// answered in. Categories start at level 1 on their first answer.
type Adapter struct {
	states map[quizgen.Category]*State
}

// New creates an empty Adapter.
func New() *Adapter {
	return &Adapter{states: make(map[quizgen.Category]*State)}
}

// Level returns the current difficulty level for a category, defaulting
// to the minimum for categories never answered.
func (a *Adapter) Level(category quizgen.Category) int {
	if s, ok := a.states[category]; ok {
		return s.Level
	}
	return quizgen.MinLevel
}

// Record feeds one answer result into the category's state machine.
// The level moves by at most one step per call and never leaves
// [MinLevel, MaxLevel].
func (a *Adapter) Record(category quizgen.Category, correct bool) {
	s, ok := a.states[category]
	if !ok {
		s = &State{Level: quizgen.MinLevel}
		a.states[category] = s
	}

	if correct {
		s.CorrectStreak++
		s.IncorrectStreak = 0
		if s.CorrectStreak >= promoteStreak && s.Level < quizgen.MaxLevel {
			s.Level++
			s.CorrectStreak = 0
		}
		return
	}

	s.IncorrectStreak++
	s.CorrectStreak = 0
	if s.IncorrectStreak >= demoteStreak && s.Level > quizgen.MinLevel {
		s.Level--
		s.IncorrectStreak = 0
	}
}

// Snapshot exports the full state for persistence.
func (a *Adapter) Snapshot() map[quizgen.Category]State {
	out := make(map[quizgen.Category]State, len(a.states))
	for c, s := range a.states {
		out[c] = *s
	}
	return out
}

// Restore replaces the adapter's state with a persisted snapshot.
// Levels outside the valid range are clamped rather than rejected, so a
// hand-edited or corrupted blob cannot wedge the machine.
func (a *Adapter) Restore(snapshot map[quizgen.Category]State) {
	a.states = make(map[quizgen.Category]*State, len(snapshot))
	for c, s := range snapshot {
		copied := s
		if copied.Level < quizgen.MinLevel {
			copied.Level = quizgen.MinLevel
		}
		if copied.Level > quizgen.MaxLevel {
			copied.Level = quizgen.MaxLevel
		}
		a.states[c] = &copied
	}
}
