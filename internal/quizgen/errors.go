package quizgen

import "fmt"

// ConfigError indicates an invalid generation configuration, e.g.
// min > max or an option count below two.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

// GenerationError indicates that a question could not be produced, e.g.
// the distractor pool was exhausted even after widening the search.
type GenerationError struct {
	Category Category
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s question: %v", e.Category, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
