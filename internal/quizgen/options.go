package quizgen

import (
	"errors"
	"math/rand"
	"strconv"

	"github.com/google/uuid"

	"github.com/abhisek/mathforge/internal/mathfacts"
)

// ValueKind describes the numeric shape of a question's answer, which
// controls how distractors are produced and formatted.
type ValueKind int

const (
	KindInteger ValueKind = iota
	KindDecimal
)

const (
	// maxCandidateAttempts bounds the random distractor search before
	// falling back to sequential offsets. Narrow ranges (correct
	// answer 1, four options) would otherwise spin forever.
	maxCandidateAttempts = 300

	// integerDelta is the half-width of the random offset band for
	// integer distractors.
	integerDelta = 10

	// decimalDeltaPct is the half-width, in percent, of the scaling
	// band for decimal distractors.
	decimalDeltaPct = 15
)

// buildOptions produces count shuffled options with exactly one equal
// to the correct value and all values pairwise distinct.
func buildOptions(rng *rand.Rand, correct float64, count int, kind ValueKind) ([]Option, string, error) {
	values := []float64{correct}
	used := map[string]bool{formatValue(correct, kind): true}

	for attempt := 0; len(values) < count && attempt < maxCandidateAttempts; attempt++ {
		candidate, ok := drawCandidate(rng, correct, kind)
		if !ok {
			continue
		}
		key := formatValue(candidate, kind)
		if used[key] {
			continue
		}
		used[key] = true
		values = append(values, candidate)
	}

	// Random search exhausted: walk outward from the correct value so
	// generation stays bounded on tiny ranges.
	for step := 1; len(values) < count && step <= count*20; step++ {
		for _, candidate := range sequentialCandidates(correct, step, kind) {
			if candidate <= 0 {
				continue
			}
			key := formatValue(candidate, kind)
			if used[key] {
				continue
			}
			used[key] = true
			values = append(values, candidate)
			if len(values) == count {
				break
			}
		}
	}

	if len(values) < count {
		return nil, "", errors.New("distractor pool exhausted")
	}

	rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	options := make([]Option, 0, count)
	correctKey := formatValue(correct, kind)
	var correctID string
	for _, v := range values {
		label := formatValue(v, kind)
		o := Option{ID: uuid.NewString(), Label: label, Value: label}
		if label == correctKey {
			correctID = o.ID
		}
		options = append(options, o)
	}
	return options, correctID, nil
}

// drawCandidate proposes one random wrong value near the correct one.
func drawCandidate(rng *rand.Rand, correct float64, kind ValueKind) (float64, bool) {
	switch kind {
	case KindDecimal:
		delta := rng.Intn(2*decimalDeltaPct+1) - decimalDeltaPct
		if delta == 0 {
			return 0, false
		}
		v := mathfacts.Round(correct*(1+float64(delta)/100), 4)
		if v <= 0 {
			return 0, false
		}
		return v, true
	default:
		delta := rng.Intn(2*integerDelta+1) - integerDelta
		if delta == 0 {
			return 0, false
		}
		v := correct + float64(delta)
		if v <= 0 {
			return 0, false
		}
		return v, true
	}
}

// sequentialCandidates yields the deterministic fallback values at a
// given distance from the correct answer.
func sequentialCandidates(correct float64, step int, kind ValueKind) []float64 {
	if kind == KindDecimal {
		up := mathfacts.Round(correct*(1+float64(step)/100), 4)
		down := mathfacts.Round(correct*(1-float64(step)/100), 4)
		return []float64{up, down}
	}
	return []float64{correct + float64(step), correct - float64(step)}
}

func formatValue(v float64, kind ValueKind) string {
	if kind == KindDecimal {
		return mathfacts.FormatDecimal(v, 4)
	}
	return strconv.Itoa(int(v))
}
