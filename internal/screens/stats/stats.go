// Package stats renders the progress and treasury ledgers: level,
// streak, accuracy per category, the fact heatmap and rank standing.
package stats

import (
	"fmt"
	"sort"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforge/internal/progress"
	"github.com/abhisek/mathforge/internal/router"
	"github.com/abhisek/mathforge/internal/screen"
	"github.com/abhisek/mathforge/internal/treasury"
	"github.com/abhisek/mathforge/internal/ui/components"
	"github.com/abhisek/mathforge/internal/ui/layout"
	"github.com/abhisek/mathforge/internal/ui/theme"
)

// StatsScreen implements screen.Screen for the statistics page.
type StatsScreen struct {
	progress *progress.Ledger
	treasury *treasury.Ledger
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates the stats screen over the shared ledgers.
func New(pl *progress.Ledger, tl *treasury.Ledger) *StatsScreen {
	return &StatsScreen{progress: pl, treasury: tl}
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	snap := s.progress.Stats()
	tr := s.treasury.Snapshot()

	barWidth := width / 3
	if barWidth > 40 {
		barWidth = 40
	}

	// Level and XP toward the next one.
	intoLevel := snap.XP % 1000
	levelBar := components.NewProgressBar(
		fmt.Sprintf("Level %d", snap.Level),
		float64(intoLevel)/1000,
		false,
		barWidth,
	)

	accuracy := 0
	if snap.TotalQuestions > 0 {
		accuracy = snap.CorrectAnswers * 100 / snap.TotalQuestions
	}

	fastest := "—"
	if snap.FastestTimeMs != nil {
		fastest = fmt.Sprintf("%.1fs", float64(*snap.FastestTimeMs)/1000)
	}

	body := theme.Title.Render("Statistics") + "\n\n"
	body += levelBar.View() + theme.Hint.Render(fmt.Sprintf("  %d/1000 XP", intoLevel)) + "\n\n"
	body += theme.Body.Render(fmt.Sprintf("%-16s %d day(s)", "Streak", snap.Streak)) + "\n"
	body += theme.Body.Render(fmt.Sprintf("%-16s %d answered, %d%% correct", "Questions", snap.TotalQuestions, accuracy)) + "\n"
	body += theme.Body.Render(fmt.Sprintf("%-16s %s", "Fastest answer", fastest)) + "\n\n"

	body += s.renderCategories(snap, barWidth) + "\n"
	body += s.renderHeatmap(snap) + "\n"
	body += s.renderRank(tr, barWidth)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (s *StatsScreen) renderCategories(snap progress.Snapshot, barWidth int) string {
	names := make([]string, 0, len(snap.CategoryStats))
	for name := range snap.CategoryStats {
		names = append(names, name)
	}
	sort.Strings(names)

	out := theme.Subtitle.Render("Category accuracy") + "\n"
	for _, name := range names {
		cs := snap.CategoryStats[name]
		pct := 0.0
		if cs.Attempted > 0 {
			pct = float64(cs.Correct) / float64(cs.Attempted)
		}
		bar := components.NewProgressBar(fmt.Sprintf("%-12s", name), pct, true, barWidth)
		out += bar.View() + "\n"
	}
	return out
}

func (s *StatsScreen) renderHeatmap(snap progress.Snapshot) string {
	var weak, learning, strong int
	for _, cell := range snap.Heatmap {
		switch cell.Band() {
		case progress.BandStrong:
			strong++
		case progress.BandLearning:
			learning++
		case progress.BandWeak:
			weak++
		}
	}

	out := theme.Subtitle.Render("Fact mastery") + "\n"
	out += theme.Correct.Render(fmt.Sprintf("  %d strong", strong))
	out += theme.Body.Render(fmt.Sprintf("   %d learning", learning))
	out += theme.Incorrect.Render(fmt.Sprintf("   %d weak", weak)) + "\n"
	return out
}

func (s *StatsScreen) renderRank(tr treasury.Snapshot, barWidth int) string {
	rank := treasury.Ranks[tr.Rank]

	out := theme.Subtitle.Render("Rank") + "\n"
	out += lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("  "+rank.Title) + "\n"

	if tr.Rank < len(treasury.Ranks)-1 {
		next := treasury.Ranks[tr.Rank+1]
		span := next.MinXP - rank.MinXP
		into := tr.TotalXP - rank.MinXP
		pct := 0.0
		if span > 0 {
			pct = float64(into) / float64(span)
		}
		bar := components.NewProgressBar("", pct, false, barWidth)
		out += bar.View() + theme.Hint.Render(fmt.Sprintf("  %d/%d to %s", tr.TotalXP, next.MinXP, next.Title)) + "\n"
	}
	return out
}
