package quiz

import (
	"fmt"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/mathforge/internal/session"
	"github.com/abhisek/mathforge/internal/tiers"
	"github.com/abhisek/mathforge/internal/treasury"
	"github.com/abhisek/mathforge/internal/ui/components"
	"github.com/abhisek/mathforge/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	center := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	if q.errMsg != "" {
		return center.Render(theme.Incorrect.Render("Something went wrong") + "\n\n" + theme.Body.Render(q.errMsg))
	}
	if q.confirmingQuit {
		return center.Render(theme.Body.Render("End this session early?") + "\n\n" + theme.Hint.Render("y to end, n to keep going"))
	}
	if q.showingFeedback {
		return center.Render(q.renderFeedback())
	}
	if !q.hasQuestion {
		return center.Render(theme.Hint.Render("Forging the next question..."))
	}

	realm := theme.RealmSakura
	if q.session.Tier().ID == tiers.Dragon || q.session.Mode() == sess.ModeSurvival {
		realm = theme.RealmDragon
	}

	headline := lipgloss.NewStyle().
		Foreground(theme.PrimaryFor(realm)).
		Bold(true)

	var head string
	switch q.session.Mode() {
	case sess.ModeSprint:
		head = headline.Render(fmt.Sprintf("Sprint · %d correct", q.session.Correct()))
	case sess.ModeSurvival:
		head = headline.Render(fmt.Sprintf("Survival · %d correct", q.session.Correct()))
		head += theme.Incorrect.Render("   ♥ 1 life")
	default:
		head = headline.Render(fmt.Sprintf("Question %d of %d", q.session.Asked()+1, q.session.Total()))
		head += theme.Hint.Render(fmt.Sprintf("   level %d", q.session.Level()))
	}

	body := head + "\n\n" + q.mc.View()

	if q.session.Mode() == sess.ModeSprint {
		body += "\n" + q.renderSprintTimer(width/2)
	} else if q.session.Tier().Timed() {
		body += "\n" + q.renderTimer(width/2, realm)
	}

	return center.Render(body)
}

func (q *QuizScreen) renderSprintTimer(width int) string {
	left := q.session.SprintRemaining()
	pct := float64(left) / float64(sess.SprintDuration)
	bar := components.NewProgressBar(fmt.Sprintf("%2.0fs", left.Seconds()), pct, false, width)
	return bar.View()
}

func (q *QuizScreen) renderTimer(width int, realm theme.Realm) string {
	limit := q.session.Tier().TimeLimit
	pct := float64(q.remaining) / float64(limit)
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	label := fmt.Sprintf("%2.0fs", q.remaining.Seconds())
	if q.frozen {
		label = "❄ " + label
	}
	bar := components.NewProgressBar(label, pct, false, width)
	return bar.View()
}

func (q *QuizScreen) renderFeedback() string {
	res := q.lastResult
	if res.Correct {
		s := theme.Correct.Render("✓ Correct!") + "\n\n"
		s += theme.Body.Render(fmt.Sprintf("+%d XP", res.XPAwarded))
		if res.Reward > 0 {
			icon := "✿"
			if res.Currency == treasury.CurrencyEmbers {
				icon = "♦"
			}
			s += theme.Body.Render(fmt.Sprintf("   +%d %s", res.Reward, icon))
		}
		return s
	}

	s := theme.Incorrect.Render("✗ Not quite") + "\n\n"
	s += theme.Body.Render("The answer was " + res.CorrectOption.Label)
	return s
}
