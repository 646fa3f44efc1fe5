package quizgen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/abhisek/mathforge/internal/mathfacts"
)

const (
	// recentCap is the size of the anti-repeat FIFO.
	recentCap = 10

	// regenAttempts caps how many times generation retries before
	// accepting a recently-seen question. Bounded latency beats
	// strict non-repetition.
	regenAttempts = 5
)

// Generator produces questions for one practice session. It owns the
// anti-repeat buffer, so separate sessions never leak repetition state
// into each other. Not safe for concurrent use.
type Generator struct {
	rng    *rand.Rand
	recent []string
}

// New creates a Generator seeded from the wall clock.
func New() *Generator {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a Generator with an explicit randomness source,
// which makes generation reproducible in tests.
func NewWithRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate emits one question for the category at the given difficulty
// level. Explicit cfg fields override the level's bands. Returns a
// *ConfigError for invalid input and a *GenerationError when no valid
// question can be built.
func (g *Generator) Generate(category Category, optionCount int, cfg Config, level int) (*Question, error) {
	if !category.Valid() {
		return nil, &ConfigError{Field: "category", Reason: fmt.Sprintf("unknown category %q", category)}
	}
	if optionCount == 0 {
		optionCount = DefaultOptionCount
	}
	if err := cfg.Validate(optionCount); err != nil {
		return nil, err
	}

	var q *Question
	var err error
	for attempt := 0; attempt <= regenAttempts; attempt++ {
		q, err = g.build(category, optionCount, cfg, level)
		if err != nil {
			return nil, err
		}
		if !g.seenRecently(q.ID) {
			break
		}
	}

	g.remember(q.ID)
	return q, nil
}

func (g *Generator) build(category Category, optionCount int, cfg Config, level int) (*Question, error) {
	if category == CategoryMixed {
		base := BaseCategories()
		category = base[g.rng.Intn(len(base))]
	}

	p := ParamsFor(category, level)

	switch category {
	case CategoryTables:
		min, max := cfg.bounds(p)
		n := cfg.Table
		if n == 0 {
			n = g.intInRange(min, max)
		}
		mult := g.rng.Intn(10) + 1
		return g.assemble(
			category,
			fmt.Sprintf("%dx%d", n, mult),
			fmt.Sprintf("%d × %d = ?", n, mult),
			float64(n*mult), optionCount, KindInteger,
		)

	case CategorySquares:
		min, max := cfg.bounds(p)
		n := g.intInRange(min, max)
		return g.assemble(
			category,
			fmt.Sprintf("sq%d", n),
			fmt.Sprintf("%d² = ?", n),
			float64(n*n), optionCount, KindInteger,
		)

	case CategoryCubes:
		min, max := cfg.bounds(p)
		n := g.intInRange(min, max)
		return g.assemble(
			category,
			fmt.Sprintf("cb%d", n),
			fmt.Sprintf("%d³ = ?", n),
			float64(n*n*n), optionCount, KindInteger,
		)

	case CategoryReciprocals:
		min, max := cfg.bounds(p)
		n := g.intInRange(min, max)
		answer := mathfacts.Round(1.0/float64(n), 4)
		return g.assemble(
			category,
			fmt.Sprintf("rc%d", n),
			fmt.Sprintf("1/%d = ?", n),
			answer, optionCount, KindDecimal,
		)

	case CategoryPowers:
		base := cfg.Base
		if base == 0 {
			base = p.Bases[g.rng.Intn(len(p.Bases))]
		}
		exp := g.intInRange(p.MinExp, p.MaxExp)
		return g.assemble(
			category,
			fmt.Sprintf("pw%d^%d", base, exp),
			fmt.Sprintf("%d^%d = ?", base, exp),
			float64(mathfacts.Pow(base, exp)), optionCount, KindInteger,
		)

	case CategoryMental:
		min, max := cfg.bounds(p)
		return g.buildMental(min, max, p.Steps, optionCount)
	}

	return nil, &ConfigError{Field: "category", Reason: fmt.Sprintf("unknown category %q", category)}
}

// buildMental produces a chained expression one operation at a time,
// with the running value as the left operand of each step. Before a
// multiplication the accumulated sum is parenthesized, so the printed
// expression equals the graded value under standard precedence, e.g.
// "(7 + 41) × 6 − 17".
func (g *Generator) buildMental(min, max, steps int, optionCount int) (*Question, error) {
	value := g.intInRange(min, max)
	prompt := fmt.Sprintf("%d", value)
	id := fmt.Sprintf("%d", value)
	openSum := false

	for i := 0; i < steps; i++ {
		operand := g.intInRange(min, max)
		switch g.rng.Intn(3) {
		case 0:
			value += operand
			prompt = fmt.Sprintf("%s + %d", prompt, operand)
			id = fmt.Sprintf("%s+%d", id, operand)
			openSum = true
		case 1:
			// Keep the running value positive.
			if value-operand <= 0 {
				value += operand
				prompt = fmt.Sprintf("%s + %d", prompt, operand)
				id = fmt.Sprintf("%s+%d", id, operand)
				openSum = true
				continue
			}
			value -= operand
			prompt = fmt.Sprintf("%s − %d", prompt, operand)
			id = fmt.Sprintf("%s-%d", id, operand)
			openSum = true
		default:
			// Small factors only; chained products grow fast.
			factor := g.rng.Intn(8) + 2
			value *= factor
			if openSum {
				prompt = fmt.Sprintf("(%s) × %d", prompt, factor)
				id = fmt.Sprintf("(%s)x%d", id, factor)
				openSum = false
			} else {
				prompt = fmt.Sprintf("%s × %d", prompt, factor)
				id = fmt.Sprintf("%sx%d", id, factor)
			}
		}
	}

	return g.assemble(
		CategoryMental,
		"mm"+id,
		prompt+" = ?",
		float64(value), optionCount, KindInteger,
	)
}

func (g *Generator) assemble(category Category, id, prompt string, answer float64, optionCount int, kind ValueKind) (*Question, error) {
	options, correctID, err := buildOptions(g.rng, answer, optionCount, kind)
	if err != nil {
		return nil, &GenerationError{Category: category, Err: err}
	}
	return &Question{
		ID:              id,
		Prompt:          prompt,
		Options:         options,
		CorrectOptionID: correctID,
		Category:        category,
	}, nil
}

func (g *Generator) intInRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + g.rng.Intn(max-min+1)
}

func (g *Generator) seenRecently(id string) bool {
	for _, r := range g.recent {
		if r == id {
			return true
		}
	}
	return false
}

func (g *Generator) remember(id string) {
	g.recent = append(g.recent, id)
	if len(g.recent) > recentCap {
		g.recent = g.recent[len(g.recent)-recentCap:]
	}
}
