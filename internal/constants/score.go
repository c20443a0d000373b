package constants

const (
	// Score weights. They sum to 1.0.
	HabitWeight    = 0.50
	CleaningWeight = 0.20
	WaterWeight    = 0.15
	ReadingWeight  = 0.15

	// GoodDayThreshold is the minimum score that keeps a day streak alive.
	GoodDayThreshold = 50.0

	// MaxTasksForToday caps the cleaning tasks surfaced per day.
	MaxTasksForToday = 3
)
