// Package summary shows the end-of-session tally.
package summary

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforge/internal/router"
	"github.com/abhisek/mathforge/internal/screen"
	sess "github.com/abhisek/mathforge/internal/session"
	"github.com/abhisek/mathforge/internal/treasury"
	"github.com/abhisek/mathforge/internal/ui/layout"
	"github.com/abhisek/mathforge/internal/ui/theme"
)

// SummaryScreen implements screen.Screen for the session summary.
type SummaryScreen struct {
	summary sess.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen for a finished session.
func New(s sess.Summary) *SummaryScreen {
	return &SummaryScreen{summary: s}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	heading := "Session Complete"
	switch sum.Mode {
	case sess.ModeSprint:
		heading = "Time's Up!"
	case sess.ModeSurvival:
		heading = "Game Over!"
	}
	title := theme.Title.Render(heading)

	accuracy := 0
	if sum.Asked > 0 {
		accuracy = sum.Correct * 100 / sum.Asked
	}

	icon := "✿"
	if sum.Currency == treasury.CurrencyEmbers {
		icon = "♦"
	}

	var lines []string
	if sum.Mode == sess.ModePractice {
		lines = []string{
			fmt.Sprintf("%-12s %s", "Category", sum.Category),
			fmt.Sprintf("%-12s %s", "Tier", sum.Tier),
			fmt.Sprintf("%-12s %d / %d (%d%%)", "Score", sum.Correct, sum.Asked, accuracy),
			fmt.Sprintf("%-12s +%d", "XP", sum.XPEarned),
			fmt.Sprintf("%-12s +%d %s", "Reward", sum.Reward, icon),
			fmt.Sprintf("%-12s %s", "Time", sum.Duration.Round(time.Second)),
		}
	} else {
		lines = []string{
			fmt.Sprintf("%-12s %s", "Mode", sum.Mode),
			fmt.Sprintf("%-12s %d / %d (%d%%)", "Score", sum.Correct, sum.Asked, accuracy),
			fmt.Sprintf("%-12s +%d", "XP", sum.XPEarned),
			fmt.Sprintf("%-12s %s", "Time", sum.Duration.Round(time.Second)),
		}
	}

	body := title + "\n\n"
	for _, l := range lines {
		body += theme.Body.Render(l) + "\n"
	}

	if sum.RankedUp {
		body += "\n" + lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Render("★ Rank up! You are now "+sum.FinalRank.Title)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
