package quizgen

// Params are the difficulty-derived generation parameters for one
// category at one level. Min/Max bound the primary operand; Bases and
// MinExp/MaxExp apply to powers; Steps applies to mental chains.
type Params struct {
	Min int
	Max int

	// Bases is the set of allowed bases for the powers category.
	Bases []int

	// MinExp and MaxExp bound the exponent for the powers category.
	MinExp int
	MaxExp int

	// Steps is the number of chained operations for mental questions.
	Steps int
}

// MinLevel and MaxLevel bound the difficulty scale.
const (
	MinLevel = 1
	MaxLevel = 5
)

// The band tables below are the single source of difficulty semantics.
// Each category's bands get strictly harder per level; tests assert the
// midpoints are monotonic.
var (
	tableBands      = [5][2]int{{2, 5}, {6, 9}, {10, 13}, {14, 17}, {18, 20}}
	squareBands     = [5][2]int{{2, 10}, {11, 20}, {21, 35}, {36, 50}, {51, 99}}
	cubeBands       = [5][2]int{{2, 5}, {6, 10}, {11, 15}, {16, 20}, {21, 25}}
	reciprocalBands = [5][2]int{{2, 5}, {6, 10}, {11, 15}, {16, 20}, {21, 30}}
	mentalBands     = [5][2]int{{1, 10}, {2, 20}, {5, 50}, {10, 75}, {10, 99}}

	powerBases = [5][]int{
		{2},
		{2, 3},
		{2, 3, 5},
		{2, 3, 5},
		{2, 3, 5, 6, 7},
	}
	powerExpBands = [5][2]int{{2, 4}, {2, 5}, {2, 5}, {2, 6}, {2, 6}}
	mentalSteps   = [5]int{2, 2, 3, 3, 4}
)

// ParamsFor returns the generation parameters for a category at a
// difficulty level. Levels outside [MinLevel, MaxLevel] are clamped.
// Mixed mode has no bands of its own; it reports the bands of the
// tables category and the generator substitutes a drawn category.
func ParamsFor(category Category, level int) Params {
	if level < MinLevel {
		level = MinLevel
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	i := level - 1

	switch category {
	case CategorySquares:
		return Params{Min: squareBands[i][0], Max: squareBands[i][1]}
	case CategoryCubes:
		return Params{Min: cubeBands[i][0], Max: cubeBands[i][1]}
	case CategoryReciprocals:
		return Params{Min: reciprocalBands[i][0], Max: reciprocalBands[i][1]}
	case CategoryPowers:
		return Params{
			Min:    powerExpBands[i][0],
			Max:    powerExpBands[i][1],
			Bases:  powerBases[i],
			MinExp: powerExpBands[i][0],
			MaxExp: powerExpBands[i][1],
		}
	case CategoryMental:
		return Params{
			Min:   mentalBands[i][0],
			Max:   mentalBands[i][1],
			Steps: mentalSteps[i],
		}
	default:
		// tables and mixed
		return Params{Min: tableBands[i][0], Max: tableBands[i][1]}
	}
}
