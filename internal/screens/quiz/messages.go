package quiz

import (
	"time"

	"github.com/abhisek/mathforge/internal/quizgen"
	sess "github.com/abhisek/mathforge/internal/session"
)

// questionReadyMsg is sent when the next question has been generated.
type questionReadyMsg struct {
	Question *quizgen.Question
	Err      error
}

// timerTickMsg is sent every second to advance the countdown.
type timerTickMsg time.Time

// gradedMsg is sent when a submission has been graded and persisted.
type gradedMsg struct {
	Result sess.Result
	Err    error
}

// feedbackDoneMsg ends the post-answer feedback pause.
type feedbackDoneMsg struct{}
