package quizgen

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

func newTestGenerator(seed int64) *Generator {
	return NewWithRand(rand.New(rand.NewSource(seed)))
}

func TestGenerateSquaresStaysInLevelBand(t *testing.T) {
	g := newTestGenerator(1)

	for i := 0; i < 50; i++ {
		q, err := g.Generate(CategorySquares, 4, Config{}, 1)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}

		n, err := strconv.Atoi(strings.TrimPrefix(q.ID, "sq"))
		if err != nil {
			t.Fatalf("unexpected id %q", q.ID)
		}
		if n < 2 || n > 10 {
			t.Errorf("level-1 squares drew n=%d, want [2,10]", n)
		}

		// The literal square must be among the options.
		want := strconv.Itoa(n * n)
		found := false
		for _, o := range q.Options {
			if o.Value == want {
				found = true
			}
		}
		if !found {
			t.Errorf("options for %q missing %s", q.ID, want)
		}

		correct, ok := q.CorrectOption()
		if !ok || correct.Value != want {
			t.Errorf("correct option = %+v, want value %s", correct, want)
		}
	}
}

func TestGenerateAntiRepeatBuffer(t *testing.T) {
	g := newTestGenerator(7)

	// Level 5 squares span [51,99]: far more than 11 distinct ids.
	var ids []string
	for i := 0; i < 11; i++ {
		q, err := g.Generate(CategorySquares, 4, Config{}, 5)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		ids = append(ids, q.ID)
	}

	// Each id must not appear in the 10 generations before it; a single
	// repeat is tolerated when the retry budget runs out.
	repeats := 0
	for i, id := range ids {
		lo := i - 10
		if lo < 0 {
			lo = 0
		}
		for _, prev := range ids[lo:i] {
			if prev == id {
				repeats++
			}
		}
	}
	if repeats > 1 {
		t.Errorf("%d repeats within the anti-repeat window, want at most 1", repeats)
	}
}

func TestGenerateTableOverride(t *testing.T) {
	g := newTestGenerator(3)

	for i := 0; i < 20; i++ {
		q, err := g.Generate(CategoryTables, 4, Config{Table: 7}, 3)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !strings.HasPrefix(q.ID, "7x") {
			t.Errorf("id %q does not use the configured table", q.ID)
		}
	}
}

func TestGenerateMinMaxOverride(t *testing.T) {
	g := newTestGenerator(4)

	for i := 0; i < 30; i++ {
		q, err := g.Generate(CategorySquares, 4, Config{Min: 12, Max: 14}, 1)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		n, _ := strconv.Atoi(strings.TrimPrefix(q.ID, "sq"))
		if n < 12 || n > 14 {
			t.Errorf("drew n=%d outside configured [12,14]", n)
		}
	}
}

func TestGeneratePowersShape(t *testing.T) {
	g := newTestGenerator(5)

	q, err := g.Generate(CategoryPowers, 4, Config{}, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	var base, exp int
	if _, err := fmt.Sscanf(q.ID, "pw%d^%d", &base, &exp); err != nil {
		t.Fatalf("unexpected powers id %q", q.ID)
	}
	if base != 2 {
		t.Errorf("level-1 powers base = %d, want 2", base)
	}
	if exp < 2 || exp > 4 {
		t.Errorf("level-1 powers exponent = %d, want [2,4]", exp)
	}
}

func TestGenerateReciprocalsDecimalFormat(t *testing.T) {
	g := newTestGenerator(6)

	q, err := g.Generate(CategoryReciprocals, 4, Config{}, 2)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	correct, ok := q.CorrectOption()
	if !ok {
		t.Fatal("no correct option")
	}
	if !strings.Contains(correct.Value, ".") || len(strings.Split(correct.Value, ".")[1]) != 4 {
		t.Errorf("reciprocal value %q not formatted to 4 decimal places", correct.Value)
	}
}

func TestGenerateMixedDrawsBaseCategories(t *testing.T) {
	g := newTestGenerator(8)

	seen := map[Category]bool{}
	for i := 0; i < 100; i++ {
		q, err := g.Generate(CategoryMixed, 4, Config{}, 3)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if q.Category == CategoryMixed || q.Category == CategoryMental {
			t.Fatalf("mixed produced category %q", q.Category)
		}
		seen[q.Category] = true
	}
	if len(seen) < 3 {
		t.Errorf("mixed mode drew only %d distinct categories in 100 questions", len(seen))
	}
}

func TestGenerateMentalPositiveAnswer(t *testing.T) {
	g := newTestGenerator(9)

	for i := 0; i < 50; i++ {
		q, err := g.Generate(CategoryMental, 4, Config{}, 4)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		correct, ok := q.CorrectOption()
		if !ok {
			t.Fatal("no correct option")
		}
		v, err := strconv.Atoi(correct.Value)
		if err != nil || v <= 0 {
			t.Errorf("mental answer %q not a positive integer", correct.Value)
		}
	}
}

// evalPrecedence evaluates a rendered mental prompt under standard
// operator precedence, honoring parentheses. Supported tokens are
// integers, "+", "−", "×", "(" and ")".
func evalPrecedence(t *testing.T, expr string) int {
	t.Helper()
	tokens := strings.Fields(strings.NewReplacer("(", "( ", ")", " )").Replace(expr))
	pos := 0

	peek := func() string {
		if pos < len(tokens) {
			return tokens[pos]
		}
		return ""
	}

	var parseExpr func() int
	var parseTerm func() int
	var parseFactor func() int

	parseFactor = func() int {
		if peek() == "(" {
			pos++
			v := parseExpr()
			if peek() != ")" {
				t.Fatalf("unbalanced parentheses in %q", expr)
			}
			pos++
			return v
		}
		n, err := strconv.Atoi(peek())
		if err != nil {
			t.Fatalf("unexpected token %q in %q", peek(), expr)
		}
		pos++
		return n
	}
	parseTerm = func() int {
		v := parseFactor()
		for peek() == "×" {
			pos++
			v *= parseFactor()
		}
		return v
	}
	parseExpr = func() int {
		v := parseTerm()
		for peek() == "+" || peek() == "−" {
			op := peek()
			pos++
			if op == "+" {
				v += parseTerm()
			} else {
				v -= parseTerm()
			}
		}
		return v
	}

	v := parseExpr()
	if pos != len(tokens) {
		t.Fatalf("trailing tokens in %q", expr)
	}
	return v
}

func TestGenerateMentalPromptMatchesPrecedence(t *testing.T) {
	g := newTestGenerator(7)

	for i := 0; i < 200; i++ {
		q, err := g.Generate(CategoryMental, 4, Config{}, 3)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		correct, ok := q.CorrectOption()
		if !ok {
			t.Fatal("no correct option")
		}
		want, err := strconv.Atoi(correct.Value)
		if err != nil {
			t.Fatalf("mental answer %q not an integer", correct.Value)
		}

		expr := strings.TrimSuffix(q.Prompt, " = ?")
		if got := evalPrecedence(t, expr); got != want {
			t.Errorf("prompt %q evaluates to %d under standard precedence, but correct option is %d", q.Prompt, got, want)
		}
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	g := newTestGenerator(10)

	var cfgErr *ConfigError

	_, err := g.Generate(CategorySquares, 4, Config{Min: 20, Max: 5}, 1)
	if !errors.As(err, &cfgErr) {
		t.Errorf("min>max: got %v, want *ConfigError", err)
	}

	_, err = g.Generate(CategorySquares, 1, Config{}, 1)
	if !errors.As(err, &cfgErr) {
		t.Errorf("optionCount=1: got %v, want *ConfigError", err)
	}

	_, err = g.Generate(Category("fractions"), 4, Config{}, 1)
	if !errors.As(err, &cfgErr) {
		t.Errorf("unknown category: got %v, want *ConfigError", err)
	}
}

func TestGenerateDefaultOptionCount(t *testing.T) {
	g := newTestGenerator(11)

	q, err := g.Generate(CategoryTables, 0, Config{}, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(q.Options) != DefaultOptionCount {
		t.Errorf("got %d options, want default %d", len(q.Options), DefaultOptionCount)
	}
}
