package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/tally/internal/constants"
)

func TestWeightsSumToOne(t *testing.T) {
	sum := constants.HabitWeight + constants.CleaningWeight + constants.WaterWeight + constants.ReadingWeight
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, constants.HabitWeight, constants.CleaningWeight)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name                   string
		habit, cleaning, water float64
		didRead                bool
		want                   float64
	}{
		{"everything done", 1, 1, 1, true, 100},
		{"nothing done", 0, 0, 0, false, 0},
		{"half habits full cleaning", 0.5, 1, 0, false, 45},
		{"reading only", 0, 0, 0, true, 15},
		{"water only", 0, 0, 1, false, 15},
		{"ratios above one are clamped", 2, 3, 4, true, 100},
		{"negative ratios are clamped", -1, -1, -1, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Calculate(tt.habit, tt.cleaning, tt.water, tt.didRead), 1e-9)
		})
	}
}

// Zero applicable habits earns no credit while zero cleaning tasks earns
// full credit. The asymmetry is intentional.
func TestZeroDenominatorDefaults(t *testing.T) {
	assert.Equal(t, 0.0, HabitRatio(0, 0))
	assert.Equal(t, 1.0, CleaningRatio(0, 0))

	assert.InDelta(t, 0.75, HabitRatio(3, 4), 1e-9)
	assert.InDelta(t, 1.0/3, CleaningRatio(1, 3), 1e-9)
}

func TestWaterRatio(t *testing.T) {
	assert.InDelta(t, 0.5, WaterRatio(32, 64), 1e-9)
	assert.Equal(t, 1.0, WaterRatio(100, 64), "overdrinking is capped")
	assert.Equal(t, 0.0, WaterRatio(32, 0), "no target earns nothing")
	assert.Equal(t, 0.0, WaterRatio(32, -8))
}

func TestIsGoodDay(t *testing.T) {
	assert.True(t, IsGoodDay(50))
	assert.True(t, IsGoodDay(99.9))
	assert.False(t, IsGoodDay(49.999))
}

func TestScoreDropsWhenDailyHabitMissed(t *testing.T) {
	done := Calculate(HabitRatio(1, 1), CleaningRatio(0, 0), WaterRatio(64, 64), false)
	missed := Calculate(HabitRatio(0, 1), CleaningRatio(0, 0), WaterRatio(64, 64), false)

	assert.InDelta(t, 85, done, 1e-9)
	assert.InDelta(t, 35, missed, 1e-9)
	assert.Greater(t, done, missed)
}
