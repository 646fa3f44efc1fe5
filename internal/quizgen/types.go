// Package quizgen generates multiple-choice arithmetic questions with
// difficulty-banded operand ranges, plausible distractors and a short
// anti-repeat memory.
package quizgen

// Category identifies a practice mode.
type Category string

const (
	CategoryTables      Category = "tables"
	CategorySquares     Category = "squares"
	CategoryCubes       Category = "cubes"
	CategoryReciprocals Category = "reciprocals"
	CategoryPowers      Category = "powers"
	CategoryMental      Category = "mental"
	CategoryMixed       Category = "mixed"
)

// BaseCategories returns the five fact categories that mixed mode draws
// from and that the progress ledger pre-seeds.
func BaseCategories() []Category {
	return []Category{
		CategoryTables,
		CategorySquares,
		CategoryCubes,
		CategoryReciprocals,
		CategoryPowers,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryTables, CategorySquares, CategoryCubes, CategoryReciprocals,
		CategoryPowers, CategoryMental, CategoryMixed:
		return true
	}
	return false
}

// Option is a single answer choice within a question.
type Option struct {
	// ID is unique within one question only.
	ID string

	// Label is the display string shown to the player.
	Label string

	// Value is the canonical value this option represents. Exactly one
	// option per question carries the mathematically correct value.
	Value string
}

// Question is a generated quiz question ready for display.
type Question struct {
	// ID is a canonical fingerprint of category + operands, e.g. "7x8",
	// "sq12" or "pw3^4". It keys the anti-repeat buffer and the
	// per-fact heatmap.
	ID string

	// Prompt is the question text, e.g. "7 × 8 = ?".
	Prompt string

	// Options are the answer choices in shuffled order.
	Options []Option

	// CorrectOptionID references the option holding the correct value.
	CorrectOptionID string

	// Category is the mode this question was generated for. For mixed
	// mode it is the concrete category that was drawn.
	Category Category
}

// CorrectOption returns the option referenced by CorrectOptionID.
func (q *Question) CorrectOption() (Option, bool) {
	for _, o := range q.Options {
		if o.ID == q.CorrectOptionID {
			return o, true
		}
	}
	return Option{}, false
}

// IsCorrect reports whether the chosen option is the correct one.
func (q *Question) IsCorrect(optionID string) bool {
	return optionID != "" && optionID == q.CorrectOptionID
}
