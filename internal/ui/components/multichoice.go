package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforge/internal/quizgen"
	"github.com/abhisek/mathforge/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// MultiChoice renders a question's answer options and tracks the
// player's selection. Options hidden by a fifty-fifty stay in place
// but grey out and can't be selected.
type MultiChoice struct {
	Question  *quizgen.Question
	Selected  int
	Submitted bool
	ChosenID  string
	hidden    map[string]bool
}

// NewMultiChoice creates a selector for the given question.
func NewMultiChoice(q *quizgen.Question) MultiChoice {
	return MultiChoice{
		Question: q,
		hidden:   make(map[string]bool),
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Hide greys out the given option ids.
func (m *MultiChoice) Hide(optionIDs []string) {
	for _, id := range optionIDs {
		m.hidden[id] = true
	}
	// Move the cursor off a hidden option.
	if m.Selected < len(m.Question.Options) && m.hidden[m.Question.Options[m.Selected].ID] {
		for i, o := range m.Question.Options {
			if !m.hidden[o.ID] {
				m.Selected = i
				break
			}
		}
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.hidden[m.Question.Options[i].ID] {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Question.Options); i++ {
			if !m.hidden[m.Question.Options[i].ID] {
				m.Selected = i
				break
			}
		}
	case "enter":
		opt := m.Question.Options[m.Selected]
		if !m.hidden[opt.ID] {
			m.Submitted = true
			m.ChosenID = opt.ID
		}
	}

	return m, nil
}

// View renders the prompt and options.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question.Prompt) + "\n\n"

	for i, opt := range m.Question.Options {
		label := choiceLabels[i%len(choiceLabels)]
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt.Label)

		switch {
		case m.hidden[opt.ID]:
			s += lipgloss.NewStyle().Foreground(theme.Border).Render(fmt.Sprintf("  %s)  ·", label)) + "\n"
		case m.Submitted && opt.ID == m.Question.CorrectOptionID:
			s += theme.Correct.Render(line) + "\n"
		case m.Submitted && opt.ID == m.ChosenID:
			s += theme.Incorrect.Render(line) + "\n"
		case m.Submitted:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}

// IsCorrect returns true if the player chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.Question.IsCorrect(m.ChosenID)
}
