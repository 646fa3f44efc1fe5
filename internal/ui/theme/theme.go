package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Realm selects the active palette. Sakura is the default; Dragon
// takes over for the hardest tier.
type Realm int

const (
	RealmSakura Realm = iota
	RealmDragon
)

// Sakura palette — soft pinks on deep indigo.
var (
	Primary   = lipgloss.Color("#F472B6") // Blossom Pink
	Secondary = lipgloss.Color("#A78BFA") // Wisteria
	Accent    = lipgloss.Color("#FBBF24") // Lantern Gold
	Success   = lipgloss.Color("#34D399") // Jade
	Error     = lipgloss.Color("#FB7185") // Fallen Petal
	Text      = lipgloss.Color("#FDF2F8") // Moonlight
	TextDim   = lipgloss.Color("#9CA3AF") // Mist
	BgDark    = lipgloss.Color("#1E1B34") // Night Indigo
	BgCard    = lipgloss.Color("#2B2545") // Shrine Shadow
	Border    = lipgloss.Color("#4C4570") // Dusk
)

// Dragon palette — ember reds over charcoal.
var (
	DragonPrimary = lipgloss.Color("#F87171") // Ember Red
	DragonAccent  = lipgloss.Color("#FB923C") // Flame Orange
	DragonBg      = lipgloss.Color("#1C1917") // Charcoal
	DragonBorder  = lipgloss.Color("#57534E") // Ash
)

// PrimaryFor returns the realm's headline color.
func PrimaryFor(r Realm) color.Color {
	if r == RealmDragon {
		return DragonPrimary
	}
	return Primary
}

// AccentFor returns the realm's accent color.
func AccentFor(r Realm) color.Color {
	if r == RealmDragon {
		return DragonAccent
	}
	return Accent
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
