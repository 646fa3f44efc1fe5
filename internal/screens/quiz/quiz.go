// Package quiz runs the active practice screen: question display,
// countdown for timed tiers, answer feedback and power-ups.
package quiz

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathforge/internal/router"
	"github.com/abhisek/mathforge/internal/screen"
	"github.com/abhisek/mathforge/internal/screens/summary"
	sess "github.com/abhisek/mathforge/internal/session"
	"github.com/abhisek/mathforge/internal/ui/components"
	"github.com/abhisek/mathforge/internal/ui/layout"
)

// feedbackDelay is how long the graded answer stays on screen before
// the next question.
const feedbackDelay = 1200 * time.Millisecond

// QuizScreen implements screen.Screen for an active session.
type QuizScreen struct {
	session *sess.Session
	sound   bool

	mc            components.MultiChoice
	hasQuestion   bool
	remaining     time.Duration
	frozen        bool
	questionStart time.Time

	showingFeedback bool
	lastResult      sess.Result
	confirmingQuit  bool
	errMsg          string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen for a prepared session. When sound is
// on, graded answers ring the terminal bell.
func New(s *sess.Session, sound bool) *QuizScreen {
	return &QuizScreen{session: s, sound: sound}
}

// Init starts question generation and, when a clock is involved, the
// single 1-second tick stream that lives for the whole screen.
func (q *QuizScreen) Init() tea.Cmd {
	if q.session.Tier().Timed() || q.session.Mode() == sess.ModeSprint {
		return tea.Batch(q.nextQuestion(), tickCmd())
	}
	return q.nextQuestion()
}

func (q *QuizScreen) Title() string {
	switch q.session.Mode() {
	case sess.ModeSprint:
		return "Sprint"
	case sess.ModeSurvival:
		return "Survival"
	default:
		return "Practice"
	}
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.confirmingQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if q.showingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
	}
	if q.session.Tier().Timed() {
		hints = append(hints,
			layout.KeyHint{Key: "Z", Description: "Freeze"},
			layout.KeyHint{Key: "X", Description: "+Time"},
		)
	}
	hints = append(hints,
		layout.KeyHint{Key: "F", Description: "50/50"},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
	return hints
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		return q.handleQuestionReady(msg)
	case timerTickMsg:
		return q.handleTick()
	case gradedMsg:
		return q.handleGraded(msg)
	case feedbackDoneMsg:
		return q.handleFeedbackDone()
	case tea.KeyMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

// nextQuestion generates the next question off the update loop.
func (q *QuizScreen) nextQuestion() tea.Cmd {
	return func() tea.Msg {
		question, err := q.session.Next()
		return questionReadyMsg{Question: question, Err: err}
	}
}

func (q *QuizScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		q.errMsg = msg.Err.Error()
		return q, nil
	}

	q.mc = components.NewMultiChoice(msg.Question)
	q.hasQuestion = true
	q.frozen = false
	q.questionStart = time.Now()
	q.remaining = q.session.Tier().TimeLimit
	return q, nil
}

func (q *QuizScreen) handleTick() (screen.Screen, tea.Cmd) {
	if q.session.Mode() == sess.ModeSprint {
		// Sprint runs on one wall clock; ticks only redraw it and end
		// the run when the budget is spent.
		if q.session.Done() {
			return q.finish()
		}
		return q, tickCmd()
	}

	if !q.hasQuestion || q.showingFeedback || q.confirmingQuit || q.frozen {
		return q, tickCmd()
	}

	q.remaining -= time.Second
	if q.remaining > 0 {
		return q, tickCmd()
	}

	// Out of time: grade as a miss. The tick stream keeps running for
	// the next question.
	q.hasQuestion = false
	return q, tea.Batch(tickCmd(), func() tea.Msg {
		res, err := q.session.Timeout(context.Background())
		return gradedMsg{Result: res, Err: err}
	})
}

func (q *QuizScreen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		q.errMsg = msg.Err.Error()
		return q, nil
	}

	q.lastResult = msg.Result
	q.showingFeedback = true
	pause := tea.Tick(feedbackDelay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{}
	})
	if q.sound {
		return q, tea.Batch(pause, bellCmd)
	}
	return q, pause
}

// bellCmd rings the terminal bell. The byte is invisible, so writing
// it mid-frame never disturbs the layout.
func bellCmd() tea.Msg {
	fmt.Print("\a")
	return nil
}

func (q *QuizScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	q.showingFeedback = false
	if q.session.Done() {
		return q.finish()
	}
	return q, q.nextQuestion()
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if q.confirmingQuit {
		switch key {
		case "y", "Y":
			return q.finish()
		case "n", "N", "esc":
			q.confirmingQuit = false
		}
		return q, nil
	}

	if q.showingFeedback {
		// Any key skips the pause.
		return q.handleFeedbackDone()
	}

	if !q.hasQuestion {
		return q, nil
	}

	switch key {
	case "esc":
		q.confirmingQuit = true
		return q, nil
	case "f":
		if hidden := q.session.UseFiftyFifty(context.Background()); hidden != nil {
			q.mc.Hide(hidden)
		}
		return q, nil
	case "z":
		if q.session.UseFreeze(context.Background()) {
			q.frozen = true
		}
		return q, nil
	case "x":
		if bonus := q.session.UseExtraTime(context.Background()); bonus > 0 {
			q.remaining += bonus
		}
		return q, nil
	}

	var cmd tea.Cmd
	q.mc, cmd = q.mc.Update(msg)
	if q.mc.Submitted {
		q.hasQuestion = false
		elapsed := time.Since(q.questionStart)
		chosen := q.mc.ChosenID
		return q, func() tea.Msg {
			res, err := q.session.Submit(context.Background(), chosen, elapsed)
			return gradedMsg{Result: res, Err: err}
		}
	}
	return q, cmd
}

func (q *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	sum := q.session.Summary()
	return q, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
