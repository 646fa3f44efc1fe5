package quizgen

// Config carries optional per-session overrides for question
// generation. The zero value means "use the difficulty bands".
//
// Min, Max, Table and Base narrow the operand draw (explicit values win
// over difficulty-derived defaults, which is how "practice the 7 times
// table" works). TotalQuestions and TimeLimitSecs are session settings
// that the orchestrator consumes; generation ignores them.
type Config struct {
	Min   int
	Max   int
	Table int // fixed multiplicand for the tables category
	Base  int // fixed base for the powers category

	TotalQuestions int
	TimeLimitSecs  int
}

// DefaultOptionCount is the number of answer choices per question when
// the caller does not ask for a specific count.
const DefaultOptionCount = 4

// Validate rejects configurations that would make generation loop or
// produce nonsense.
func (c Config) Validate(optionCount int) error {
	if optionCount < 2 {
		return &ConfigError{Field: "optionCount", Reason: "must be at least 2"}
	}
	if c.Min < 0 || c.Max < 0 {
		return &ConfigError{Field: "min/max", Reason: "must not be negative"}
	}
	if c.Min > 0 && c.Max > 0 && c.Min > c.Max {
		return &ConfigError{Field: "min/max", Reason: "min exceeds max"}
	}
	if c.Table < 0 {
		return &ConfigError{Field: "table", Reason: "must be positive"}
	}
	if c.Base < 0 {
		return &ConfigError{Field: "base", Reason: "must be positive"}
	}
	return nil
}

// bounds applies the config's Min/Max overrides to a band.
func (c Config) bounds(p Params) (int, int) {
	min, max := p.Min, p.Max
	if c.Min > 0 {
		min = c.Min
	}
	if c.Max > 0 {
		max = c.Max
	}
	if min > max {
		max = min
	}
	return min, max
}
