// Package mathfacts computes the arithmetic fact families the rest of the
// engine quizzes on: multiplication tables, squares, cubes, reciprocals and
// powers. Everything here is pure; callers guarantee positive limits.
package mathfacts

import (
	"fmt"
	"math"
)

// TableEntry is one row of a multiplication table.
type TableEntry struct {
	Multiplicand int
	Multiplier   int
	Product      int
}

// Table returns base×1 through base×limit.
func Table(base, limit int) []TableEntry {
	entries := make([]TableEntry, 0, limit)
	for m := 1; m <= limit; m++ {
		entries = append(entries, TableEntry{
			Multiplicand: base,
			Multiplier:   m,
			Product:      base * m,
		})
	}
	return entries
}

// PowerEntry is n raised to some exponent.
type PowerEntry struct {
	N      int
	Result int
}

// Squares returns n² for n=1..limit.
func Squares(limit int) []PowerEntry {
	entries := make([]PowerEntry, 0, limit)
	for n := 1; n <= limit; n++ {
		entries = append(entries, PowerEntry{N: n, Result: n * n})
	}
	return entries
}

// Cubes returns n³ for n=1..limit.
func Cubes(limit int) []PowerEntry {
	entries := make([]PowerEntry, 0, limit)
	for n := 1; n <= limit; n++ {
		entries = append(entries, PowerEntry{N: n, Result: n * n * n})
	}
	return entries
}

// ReciprocalEntry is 1/n in its common representations.
type ReciprocalEntry struct {
	N          int
	Fraction   string  // "1/7"
	Decimal    float64 // 1/n rounded to 4 decimal places
	Percentage float64 // decimal × 100 rounded to 2 decimal places
}

// Reciprocals returns 1/n for n=1..limit.
func Reciprocals(limit int) []ReciprocalEntry {
	entries := make([]ReciprocalEntry, 0, limit)
	for n := 1; n <= limit; n++ {
		d := 1.0 / float64(n)
		entries = append(entries, ReciprocalEntry{
			N:          n,
			Fraction:   fmt.Sprintf("1/%d", n),
			Decimal:    Round(d, 4),
			Percentage: Round(d*100, 2),
		})
	}
	return entries
}

// ExponentEntry is base^exponent.
type ExponentEntry struct {
	Base     int
	Exponent int
	Result   int
}

// Powers returns base^1 through base^limit.
func Powers(base, limit int) []ExponentEntry {
	entries := make([]ExponentEntry, 0, limit)
	result := 1
	for e := 1; e <= limit; e++ {
		result *= base
		entries = append(entries, ExponentEntry{Base: base, Exponent: e, Result: result})
	}
	return entries
}

// Pow computes base^exp for small non-negative exponents without
// going through floats.
func Pow(base, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

// Round rounds v to the given number of decimal places, half away
// from zero. Answer matching compares these fixed-precision values, so
// the rounding mode must not drift between call sites.
func Round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	if v < 0 {
		return -math.Floor(-v*shift+0.5) / shift
	}
	return math.Floor(v*shift+0.5) / shift
}

// FormatDecimal renders a rounded value with exactly the given number
// of decimal places, e.g. FormatDecimal(0.125, 4) == "0.1250".
func FormatDecimal(v float64, places int) string {
	return fmt.Sprintf("%.*f", places, Round(v, places))
}
