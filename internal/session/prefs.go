package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/mathforge/internal/quizgen"
	"github.com/abhisek/mathforge/internal/store"
	"github.com/abhisek/mathforge/internal/tiers"
)

// Preferences remembers the player's last session setup so the home
// screen can preselect it.
type Preferences struct {
	Category  quizgen.Category `json:"category"`
	Tier      tiers.ID         `json:"tier"`
	Questions int              `json:"questions"`
}

// DefaultPreferences is what a fresh install starts from.
func DefaultPreferences() Preferences {
	return Preferences{
		Category:  quizgen.CategoryTables,
		Tier:      tiers.Gentle,
		Questions: 10,
	}
}

// LoadPreferences reads the saved setup, falling back to defaults on
// absence or corruption.
func LoadPreferences(ctx context.Context, blobs store.Blobs) Preferences {
	prefs := DefaultPreferences()
	raw, err := blobs.Get(ctx, store.KeySettings)
	if err != nil {
		return prefs
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return DefaultPreferences()
	}
	if !prefs.Category.Valid() {
		prefs.Category = quizgen.CategoryTables
	}
	if _, ok := tiers.ByID(prefs.Tier); !ok {
		prefs.Tier = tiers.Gentle
	}
	if prefs.Questions < 1 {
		prefs.Questions = 10
	}
	return prefs
}

// SavePreferences persists the setup, best-effort.
func SavePreferences(ctx context.Context, blobs store.Blobs, prefs Preferences) {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return
	}
	if err := blobs.Set(ctx, store.KeySettings, raw); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save preferences: %v\n", err)
	}
}
