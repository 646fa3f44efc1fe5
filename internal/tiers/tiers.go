// Package tiers defines the challenge presets a session runs under.
// Each tier fixes the per-question time limit and what a correct
// answer pays out.
package tiers

import (
	"time"

	"github.com/abhisek/mathforge/internal/treasury"
)

// ID names a tier preset.
type ID string

const (
	Gentle  ID = "gentle"
	Focused ID = "focused"
	Trial   ID = "trial"
	Dragon  ID = "dragon"
)

// Tier is one challenge preset. TimeLimit of zero means untimed.
type Tier struct {
	ID          ID
	Name        string
	Description string
	TimeLimit   time.Duration
	Reward      int
	Currency    treasury.Currency
}

var tiers = []Tier{
	{
		ID:          Gentle,
		Name:        "Gentle Breeze",
		Description: "No timer. Learn at your own pace.",
		Reward:      1,
		Currency:    treasury.CurrencyPetals,
	},
	{
		ID:          Focused,
		Name:        "Focused Bloom",
		Description: "12 seconds per question.",
		TimeLimit:   12 * time.Second,
		Reward:      2,
		Currency:    treasury.CurrencyPetals,
	},
	{
		ID:          Trial,
		Name:        "Warden's Trial",
		Description: "8 seconds per question.",
		TimeLimit:   8 * time.Second,
		Reward:      3,
		Currency:    treasury.CurrencyPetals,
	},
	{
		ID:          Dragon,
		Name:        "Dragon's Gauntlet",
		Description: "5 seconds per question. Embers await.",
		TimeLimit:   5 * time.Second,
		Reward:      2,
		Currency:    treasury.CurrencyEmbers,
	},
}

// All returns every tier in ascending intensity order.
func All() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// ByID looks a tier up by id. The second return reports whether the
// id named a known tier.
func ByID(id ID) (Tier, bool) {
	for _, t := range tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}

// Default is the tier a session falls back to.
func Default() Tier {
	return tiers[0]
}

// Timed reports whether the tier enforces a per-question countdown.
func (t Tier) Timed() bool {
	return t.TimeLimit > 0
}
