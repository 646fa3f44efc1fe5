// Package home is the entry screen: session setup, the petal market
// and navigation to statistics.
package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforge/internal/progress"
	"github.com/abhisek/mathforge/internal/quizgen"
	"github.com/abhisek/mathforge/internal/router"
	"github.com/abhisek/mathforge/internal/screen"
	"github.com/abhisek/mathforge/internal/screens/quiz"
	"github.com/abhisek/mathforge/internal/screens/stats"
	sess "github.com/abhisek/mathforge/internal/session"
	"github.com/abhisek/mathforge/internal/store"
	"github.com/abhisek/mathforge/internal/tiers"
	"github.com/abhisek/mathforge/internal/treasury"
	"github.com/abhisek/mathforge/internal/ui/components"
	"github.com/abhisek/mathforge/internal/ui/layout"
	"github.com/abhisek/mathforge/internal/ui/theme"
)

// Setup rows, in display order.
const (
	rowMode = iota
	rowCategory
	rowTier
	rowQuestions
	rowTable
	rowStart
	rowMarket
	rowStats
	rowCount
)

var categories = []quizgen.Category{
	quizgen.CategoryTables,
	quizgen.CategorySquares,
	quizgen.CategoryCubes,
	quizgen.CategoryReciprocals,
	quizgen.CategoryPowers,
	quizgen.CategoryMental,
	quizgen.CategoryMixed,
}

var questionCounts = []int{5, 10, 15, 20}

var modes = []sess.Mode{sess.ModePractice, sess.ModeSprint, sess.ModeSurvival}

func modeLabel(m sess.Mode) string {
	switch m {
	case sess.ModeSprint:
		return "Sprint (60s)"
	case sess.ModeSurvival:
		return "Survival"
	default:
		return "Practice"
	}
}

// HomeScreen implements screen.Screen for the landing page.
type HomeScreen struct {
	progress *progress.Ledger
	treasury *treasury.Ledger
	blobs    store.Blobs

	row         int
	modeIdx     int
	catIdx      int
	tierIdx     int
	countIdx    int
	tableInput  components.TextInput
	editingTbl  bool
	marketOpen  bool
	market      components.Menu
	marketNote  string
	optionCount int
	sound       bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen over the shared ledgers, preselecting
// the last-used setup.
func New(pl *progress.Ledger, tl *treasury.Ledger, blobs store.Blobs, optionCount int, sound bool) *HomeScreen {
	h := &HomeScreen{
		progress:    pl,
		treasury:    tl,
		blobs:       blobs,
		countIdx:    1,
		tableInput:  components.NewTextInput("any", true, 2),
		optionCount: optionCount,
		sound:       sound,
	}

	prefs := sess.LoadPreferences(context.Background(), blobs)
	for i, c := range categories {
		if c == prefs.Category {
			h.catIdx = i
		}
	}
	for i, t := range tiers.All() {
		if t.ID == prefs.Tier {
			h.tierIdx = i
		}
	}
	for i, n := range questionCounts {
		if n == prefs.Questions {
			h.countIdx = i
		}
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.marketOpen {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Browse"},
			{Key: "Enter", Description: "Buy"},
			{Key: "Esc", Description: "Close"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Adjust"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if h.editingTbl {
			var cmd tea.Cmd
			h.tableInput, cmd = h.tableInput.Update(msg)
			return h, cmd
		}
		return h, nil
	}

	if h.marketOpen {
		return h.updateMarket(kmsg)
	}
	if h.editingTbl {
		return h.updateTableInput(kmsg)
	}

	switch kmsg.String() {
	case "up", "k":
		if h.row > 0 {
			h.row--
		}
	case "down", "j":
		if h.row < rowCount-1 {
			h.row++
		}
	case "left", "h":
		h.adjust(-1)
	case "right", "l":
		h.adjust(1)
	case "enter":
		return h.activate()
	}

	return h, nil
}

func (h *HomeScreen) adjust(delta int) {
	practice := modes[h.modeIdx] == sess.ModePractice
	switch h.row {
	case rowMode:
		h.modeIdx = (h.modeIdx + delta + len(modes)) % len(modes)
	case rowCategory:
		if practice {
			h.catIdx = (h.catIdx + delta + len(categories)) % len(categories)
		}
	case rowTier:
		if practice {
			all := tiers.All()
			h.tierIdx = (h.tierIdx + delta + len(all)) % len(all)
		}
	case rowQuestions:
		if practice {
			h.countIdx = (h.countIdx + delta + len(questionCounts)) % len(questionCounts)
		}
	}
}

func (h *HomeScreen) activate() (screen.Screen, tea.Cmd) {
	switch h.row {
	case rowTable:
		if modes[h.modeIdx] == sess.ModePractice && categories[h.catIdx] == quizgen.CategoryTables {
			h.editingTbl = true
			return h, h.tableInput.Init()
		}
	case rowStart:
		return h.startSession()
	case rowMarket:
		h.marketOpen = true
		h.marketNote = ""
		h.market = h.buildMarketMenu()
	case rowStats:
		return h, func() tea.Msg {
			return router.PushScreenMsg{Screen: stats.New(h.progress, h.treasury)}
		}
	}
	return h, nil
}

func (h *HomeScreen) updateTableInput(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "enter", "esc":
		h.editingTbl = false
		return h, nil
	}
	var cmd tea.Cmd
	h.tableInput, cmd = h.tableInput.Update(kmsg)
	return h, cmd
}

func (h *HomeScreen) startSession() (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	tier := tiers.All()[h.tierIdx]
	mode := modes[h.modeIdx]
	opts := sess.Options{
		Category:    categories[h.catIdx],
		Tier:        tier,
		Mode:        mode,
		OptionCount: h.optionCount,
		Questions:   questionCounts[h.countIdx],
	}
	if mode == sess.ModePractice && opts.Category == quizgen.CategoryTables {
		if n, err := h.tableInput.NumericValue(); err == nil && n > 0 {
			opts.Quiz.Table = n
		}
	}

	sess.SavePreferences(ctx, h.blobs, sess.Preferences{
		Category:  opts.Category,
		Tier:      tier.ID,
		Questions: opts.Questions,
	})

	s, err := sess.New(ctx, opts, h.progress, h.treasury, h.blobs)
	if err != nil {
		h.marketNote = err.Error()
		return h, nil
	}
	return h, func() tea.Msg {
		return router.PushScreenMsg{Screen: quiz.New(s, h.sound)}
	}
}

func (h *HomeScreen) View(width, height int) string {
	if h.marketOpen {
		return h.viewMarket(width, height)
	}

	tier := tiers.All()[h.tierIdx]
	realm := theme.RealmSakura
	if tier.ID == tiers.Dragon {
		realm = theme.RealmDragon
	}

	title := lipgloss.NewStyle().
		Foreground(theme.PrimaryFor(realm)).
		Bold(true).
		Render("⚔  MathForge  ⚔")
	subtitle := theme.Subtitle.Render("Forge your numbers into steel")

	mode := modes[h.modeIdx]
	category := string(categories[h.catIdx])
	tierValue := fmt.Sprintf("%s (%s)", tier.Name, tierLimit(tier))
	count := fmt.Sprintf("%d", questionCounts[h.countIdx])

	table := "—"
	if mode == sess.ModePractice && categories[h.catIdx] == quizgen.CategoryTables {
		table = h.tableInput.Value()
		if table == "" {
			table = "any"
		}
		if h.editingTbl {
			table = h.tableInput.View()
		}
	}
	if mode != sess.ModePractice {
		category = string(quizgen.CategoryMixed)
		tierValue = "—"
		count = "endless"
	}

	start := "Begin Practice"
	switch mode {
	case sess.ModeSprint:
		start = "Start Sprint"
	case sess.ModeSurvival:
		start = "Enter Survival"
	}

	rows := []string{
		h.renderRow(rowMode, "Mode", modeLabel(mode)),
		h.renderRow(rowCategory, "Category", category),
		h.renderRow(rowTier, "Tier", tierValue),
		h.renderRow(rowQuestions, "Questions", count),
		h.renderRow(rowTable, "Table", table),
		"",
		h.renderAction(rowStart, start),
		h.renderAction(rowMarket, "Petal Market"),
		h.renderAction(rowStats, "Statistics"),
	}

	body := title + "\n" + subtitle + "\n\n"
	for _, r := range rows {
		body += r + "\n"
	}
	if h.marketNote != "" {
		body += "\n" + theme.Hint.Render(h.marketNote)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (h *HomeScreen) renderRow(row int, label, value string) string {
	line := fmt.Sprintf("%-11s ◂ %s ▸", label, value)
	if h.row == row {
		return theme.Selected.Render("▸ " + line)
	}
	return theme.Body.Render("  " + line)
}

func (h *HomeScreen) renderAction(row int, label string) string {
	if h.row == row {
		return theme.Selected.Render("▸ " + label)
	}
	return theme.Body.Render("  " + label)
}

func tierLimit(t tiers.Tier) string {
	if !t.Timed() {
		return "untimed"
	}
	return fmt.Sprintf("%.0fs", t.TimeLimit.Seconds())
}
