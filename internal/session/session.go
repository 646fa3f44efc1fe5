// Package session orchestrates one practice run: it draws questions
// at the adapter's current level, folds answers into both ledgers,
// pays out tier rewards and applies power-ups. Timers live in the UI;
// a timeout reaches the session as a plain incorrect submission.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/abhisek/mathforge/internal/adaptive"
	"github.com/abhisek/mathforge/internal/progress"
	"github.com/abhisek/mathforge/internal/quizgen"
	"github.com/abhisek/mathforge/internal/store"
	"github.com/abhisek/mathforge/internal/tiers"
	"github.com/abhisek/mathforge/internal/treasury"
)

// xpPerCorrect is the base XP for a correct answer, multiplied by the
// question's difficulty level.
const xpPerCorrect = 10

// extraTimeBonus is what an extraTime power-up adds to the countdown.
const extraTimeBonus = 5 * time.Second

// Mode selects the run structure of a session.
type Mode string

const (
	// ModePractice is a fixed-length set under the chosen tier.
	ModePractice Mode = "practice"

	// ModeSprint is a 60-second score run over the mixed category.
	// Correct answers pay flat XP and no tier rewards.
	ModeSprint Mode = "sprint"

	// ModeSurvival is an endless run over the mixed category that ends
	// on the first wrong answer. High risk, double XP.
	ModeSurvival Mode = "survival"
)

// SprintDuration is the wall-clock budget of a sprint run.
const SprintDuration = 60 * time.Second

const (
	xpPerSprintCorrect   = 10
	xpPerSurvivalCorrect = 20
)

// Options configures a session.
type Options struct {
	Category    quizgen.Category
	Tier        tiers.Tier
	Mode        Mode
	Quiz        quizgen.Config
	OptionCount int
	Questions   int
	Rand        *rand.Rand
}

// Result reports the outcome of one submission.
type Result struct {
	Correct       bool
	CorrectOption quizgen.Option
	XPAwarded     int
	Reward        int
	Currency      treasury.Currency
	Level         int
}

// Summary is the state of a finished (or abandoned) session.
type Summary struct {
	Category  quizgen.Category
	Tier      tiers.ID
	Mode      Mode
	Asked     int
	Correct   int
	XPEarned  int
	Reward    int
	Currency  treasury.Currency
	Duration  time.Duration
	RankedUp  bool
	FinalRank treasury.Rank
}

// Session runs one practice set over the shared ledgers.
type Session struct {
	gen      *quizgen.Generator
	adapter  *adaptive.Adapter
	progress *progress.Ledger
	treasury *treasury.Ledger
	blobs    store.Blobs

	opts    Options
	current *quizgen.Question

	asked     int
	correct   int
	xpEarned  int
	rewarded  int
	dead      bool
	startedAt time.Time
	now       func() time.Time
}

// New builds a session over the shared ledgers. The difficulty
// adapter's state is restored from the blob store so levels carry
// across sessions.
func New(ctx context.Context, opts Options, pl *progress.Ledger, tl *treasury.Ledger, blobs store.Blobs) (*Session, error) {
	if opts.OptionCount == 0 {
		opts.OptionCount = quizgen.DefaultOptionCount
	}
	if opts.Questions == 0 {
		opts.Questions = 10
	}
	if opts.Mode == "" {
		opts.Mode = ModePractice
	}
	if opts.Mode != ModePractice {
		// Sprint and survival always draw across the fact categories
		// and run untimed per question, outside the tier economy.
		opts.Category = quizgen.CategoryMixed
		opts.Tier = tiers.Default()
	}
	if opts.Tier.ID == "" {
		opts.Tier = tiers.Default()
	}
	if !opts.Category.Valid() {
		return nil, &quizgen.ConfigError{Field: "category", Reason: fmt.Sprintf("unknown category %q", opts.Category)}
	}

	var gen *quizgen.Generator
	if opts.Rand != nil {
		gen = quizgen.NewWithRand(opts.Rand)
	} else {
		gen = quizgen.New()
	}

	s := &Session{
		gen:       gen,
		adapter:   adaptive.New(),
		progress:  pl,
		treasury:  tl,
		blobs:     blobs,
		opts:      opts,
		startedAt: time.Now(),
		now:       time.Now,
	}
	s.restoreDifficulty(ctx)
	return s, nil
}

// Next draws the next question at the adapter's current level for the
// session category.
func (s *Session) Next() (*quizgen.Question, error) {
	level := s.adapter.Level(s.opts.Category)
	q, err := s.gen.Generate(s.opts.Category, s.opts.OptionCount, s.opts.Quiz, level)
	if err != nil {
		return nil, err
	}
	s.current = q
	return q, nil
}

// Submit grades the chosen option against the current question. An
// empty optionID (a timeout) grades as incorrect. Ledger updates and
// the difficulty transition happen together.
func (s *Session) Submit(ctx context.Context, optionID string, elapsed time.Duration) (Result, error) {
	q := s.current
	if q == nil {
		return Result{}, fmt.Errorf("no question outstanding")
	}
	s.current = nil
	s.asked++

	correct := optionID != "" && q.IsCorrect(optionID)
	level := s.adapter.Level(s.opts.Category)

	answer, _ := q.CorrectOption()
	res := Result{
		Correct:       correct,
		CorrectOption: answer,
		Level:         level,
	}

	// The ledger records the concrete category a mixed draw produced;
	// the adapter tracks the session category so mixed mode has its own
	// difficulty track.
	s.progress.RecordAnswer(ctx, progress.Answer{
		Category:    q.Category,
		Correct:     correct,
		TimeTakenMs: elapsed.Milliseconds(),
		QuestionID:  q.ID,
	})
	s.adapter.Record(s.opts.Category, correct)
	s.persistDifficulty(ctx)

	if correct {
		s.correct++

		switch s.opts.Mode {
		case ModeSprint:
			res.XPAwarded = xpPerSprintCorrect
		case ModeSurvival:
			res.XPAwarded = xpPerSurvivalCorrect
		default:
			res.XPAwarded = xpPerCorrect * level
		}
		s.xpEarned += res.XPAwarded
		s.progress.AddXP(ctx, res.XPAwarded)

		if s.opts.Mode == ModePractice {
			res.Reward = s.opts.Tier.Reward
			res.Currency = s.opts.Tier.Currency
			s.rewarded += res.Reward
			switch res.Currency {
			case treasury.CurrencyEmbers:
				s.treasury.AddEmbers(ctx, res.Reward)
			default:
				s.treasury.AddPetals(ctx, res.Reward)
			}
		}
	} else if s.opts.Mode == ModeSurvival {
		s.dead = true
	}

	return res, nil
}

// Timeout grades the outstanding question as a miss.
func (s *Session) Timeout(ctx context.Context) (Result, error) {
	return s.Submit(ctx, "", s.opts.Tier.TimeLimit)
}

// UseFiftyFifty consumes a fiftyFifty power-up and returns the ids of
// wrong options to hide, leaving the correct option and one decoy.
// Returns nil when none are held or no question is outstanding.
func (s *Session) UseFiftyFifty(ctx context.Context) []string {
	q := s.current
	if q == nil || len(q.Options) <= 2 {
		return nil
	}
	if !s.treasury.ConsumeItem(ctx, treasury.ItemFiftyFifty) {
		return nil
	}

	wrong := make([]string, 0, len(q.Options)-1)
	for _, o := range q.Options {
		if o.ID != q.CorrectOptionID {
			wrong = append(wrong, o.ID)
		}
	}
	// Keep one decoy alongside the correct answer.
	return wrong[:len(wrong)-1]
}

// UseFreeze consumes a freeze power-up. The UI pauses its countdown
// while one is active.
func (s *Session) UseFreeze(ctx context.Context) bool {
	if !s.opts.Tier.Timed() {
		return false
	}
	return s.treasury.ConsumeItem(ctx, treasury.ItemFreeze)
}

// UseExtraTime consumes an extraTime power-up and returns the bonus to
// add to the countdown, zero when unavailable.
func (s *Session) UseExtraTime(ctx context.Context) time.Duration {
	if !s.opts.Tier.Timed() {
		return 0
	}
	if !s.treasury.ConsumeItem(ctx, treasury.ItemExtraTime) {
		return 0
	}
	return extraTimeBonus
}

// Done reports whether the session has ended: the planned count in
// practice, the clock in sprint, the first wrong answer in survival.
func (s *Session) Done() bool {
	switch s.opts.Mode {
	case ModeSprint:
		return s.SprintRemaining() <= 0
	case ModeSurvival:
		return s.dead
	default:
		return s.asked >= s.opts.Questions
	}
}

// SprintRemaining returns the time left on a sprint run, zero once the
// budget is spent or for other modes.
func (s *Session) SprintRemaining() time.Duration {
	if s.opts.Mode != ModeSprint {
		return 0
	}
	left := SprintDuration - s.now().Sub(s.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Asked returns how many questions have been graded so far.
func (s *Session) Asked() int { return s.asked }

// Correct returns how many answers were right so far.
func (s *Session) Correct() int { return s.correct }

// Total returns the planned question count.
func (s *Session) Total() int { return s.opts.Questions }

// Tier returns the tier this session runs under.
func (s *Session) Tier() tiers.Tier { return s.opts.Tier }

// Mode returns the session's run structure.
func (s *Session) Mode() Mode { return s.opts.Mode }

// Category returns the session's category.
func (s *Session) Category() quizgen.Category { return s.opts.Category }

// Level returns the adapter's current level for the session category.
func (s *Session) Level() int { return s.adapter.Level(s.opts.Category) }

// Summary closes the books on the session.
func (s *Session) Summary() Summary {
	return Summary{
		Category:  s.opts.Category,
		Tier:      s.opts.Tier.ID,
		Mode:      s.opts.Mode,
		Asked:     s.asked,
		Correct:   s.correct,
		XPEarned:  s.xpEarned,
		Reward:    s.rewarded,
		Currency:  s.opts.Tier.Currency,
		Duration:  time.Since(s.startedAt),
		RankedUp:  s.treasury.ConsumeRankUp(),
		FinalRank: s.treasury.CurrentRank(),
	}
}

func (s *Session) restoreDifficulty(ctx context.Context) {
	raw, err := s.blobs.Get(ctx, store.KeyDifficulty)
	if err != nil {
		return
	}
	var snap map[quizgen.Category]adaptive.State
	if err := json.Unmarshal(raw, &snap); err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring corrupt difficulty state: %v\n", err)
		return
	}
	s.adapter.Restore(snap)
}

func (s *Session) persistDifficulty(ctx context.Context) {
	raw, err := json.Marshal(s.adapter.Snapshot())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to encode difficulty state: %v\n", err)
		return
	}
	if err := s.blobs.Set(ctx, store.KeyDifficulty, raw); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to persist difficulty state: %v\n", err)
	}
}
