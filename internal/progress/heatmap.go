package progress

// MasteryBand classifies a heatmap cell for display.
type MasteryBand string

const (
	BandUnseen   MasteryBand = "unseen"
	BandWeak     MasteryBand = "weak"
	BandLearning MasteryBand = "learning"
	BandStrong   MasteryBand = "strong"
)

// Band maps a cell's running accuracy to a mastery band: 80%+ strong,
// 50%+ learning, anything answered below that weak.
func (c HeatCell) Band() MasteryBand {
	if c.Attempts == 0 {
		return BandUnseen
	}
	acc := float64(c.Correct) / float64(c.Attempts)
	switch {
	case acc >= 0.8:
		return BandStrong
	case acc >= 0.5:
		return BandLearning
	default:
		return BandWeak
	}
}

// Accuracy returns the cell's correct ratio, 0 for unseen facts.
func (c HeatCell) Accuracy() float64 {
	if c.Attempts == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Attempts)
}
