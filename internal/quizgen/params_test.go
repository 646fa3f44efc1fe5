package quizgen

import "testing"

func TestParamsForValidRanges(t *testing.T) {
	categories := []Category{
		CategoryTables, CategorySquares, CategoryCubes,
		CategoryReciprocals, CategoryPowers, CategoryMental,
	}

	for _, c := range categories {
		for level := MinLevel; level <= MaxLevel; level++ {
			p := ParamsFor(c, level)
			if p.Min > p.Max {
				t.Errorf("%s level %d: min %d > max %d", c, level, p.Min, p.Max)
			}
			if p.Min <= 0 {
				t.Errorf("%s level %d: non-positive min %d", c, level, p.Min)
			}
		}
	}
}

func TestParamsForMonotonicDifficulty(t *testing.T) {
	categories := []Category{
		CategoryTables, CategorySquares, CategoryCubes,
		CategoryReciprocals, CategoryPowers, CategoryMental,
	}

	for _, c := range categories {
		prev := -1.0
		for level := MinLevel; level <= MaxLevel; level++ {
			p := ParamsFor(c, level)
			mid := float64(p.Min+p.Max) / 2
			if mid < prev {
				t.Errorf("%s level %d: midpoint %.1f below level %d's %.1f", c, level, mid, level-1, prev)
			}
			prev = mid
		}
	}
}

func TestParamsForClampsLevel(t *testing.T) {
	p0, p1 := ParamsFor(CategorySquares, 0), ParamsFor(CategorySquares, 1)
	if p0.Min != p1.Min || p0.Max != p1.Max {
		t.Errorf("level 0 band [%d,%d] should clamp to level 1's [%d,%d]", p0.Min, p0.Max, p1.Min, p1.Max)
	}
	if p := ParamsFor(CategorySquares, 9); p.Min != 51 || p.Max != 99 {
		t.Errorf("level 9 should clamp to level 5 band, got [%d,%d]", p.Min, p.Max)
	}
}

func TestParamsForSquareBands(t *testing.T) {
	want := [5][2]int{{2, 10}, {11, 20}, {21, 35}, {36, 50}, {51, 99}}
	for level := 1; level <= 5; level++ {
		p := ParamsFor(CategorySquares, level)
		if p.Min != want[level-1][0] || p.Max != want[level-1][1] {
			t.Errorf("squares level %d = [%d,%d], want [%d,%d]",
				level, p.Min, p.Max, want[level-1][0], want[level-1][1])
		}
	}
}

func TestParamsForPowersBasesWiden(t *testing.T) {
	prev := 0
	for level := 1; level <= 5; level++ {
		p := ParamsFor(CategoryPowers, level)
		if len(p.Bases) < prev {
			t.Errorf("powers level %d: base set shrank to %d", level, len(p.Bases))
		}
		if p.MinExp < 2 {
			t.Errorf("powers level %d: min exponent %d below 2", level, p.MinExp)
		}
		prev = len(p.Bases)
	}
}
