// Package score turns the day's four completion ratios into a 0-100 score.
package score

import "github.com/julianstephens/tally/internal/constants"

// Calculate weights habits, cleaning, water and reading into a 0-100 score.
// Ratios outside [0,1] are clamped.
func Calculate(habitRatio, cleaningRatio, waterRatio float64, didRead bool) float64 {
	reading := 0.0
	if didRead {
		reading = 1.0
	}
	total := clamp(habitRatio)*constants.HabitWeight +
		clamp(cleaningRatio)*constants.CleaningWeight +
		clamp(waterRatio)*constants.WaterWeight +
		reading*constants.ReadingWeight
	return 100 * total
}

// HabitRatio is 0 when no habits apply: no obligation earns no credit.
func HabitRatio(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

// CleaningRatio is 1 when no cleaning tasks were selected: no obligation
// earns full credit.
func CleaningRatio(completed, total int) float64 {
	if total <= 0 {
		return 1
	}
	return float64(completed) / float64(total)
}

// WaterRatio is capped at 1 so overdrinking earns no extra credit.
func WaterRatio(ounces, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return min(ounces/target, 1)
}

func IsGoodDay(score float64) bool {
	return score >= constants.GoodDayThreshold
}

func clamp(v float64) float64 {
	return max(0, min(v, 1))
}
