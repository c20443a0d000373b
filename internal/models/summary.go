package models

import "time"

// DaySummary is the one persisted aggregate per calendar day. Date is
// truncated to local midnight.
type DaySummary struct {
	ID                     string    `json:"id"`
	Date                   time.Time `json:"date"`
	HabitsCompleted        int       `json:"habits_completed"`
	HabitsTotal            int       `json:"habits_total"`
	CleaningTasksCompleted int       `json:"cleaning_tasks_completed"`
	CleaningTasksTotal     int       `json:"cleaning_tasks_total"`
	WaterOunces            float64   `json:"water_ounces"`
	WaterTarget            float64   `json:"water_target"`
	PagesRead              int       `json:"pages_read"`
	MinutesRead            int       `json:"minutes_read"`
	Score                  float64   `json:"score"`
	ReflectionNote         string    `json:"reflection_note,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// DidRead is the boolean reading signal used by the score.
func (d DaySummary) DidRead() bool {
	return d.PagesRead > 0 || d.MinutesRead > 0
}

type WeeklySummary struct {
	WeekStart          time.Time    `json:"week_start"`
	WeekEnd            time.Time    `json:"week_end"`
	Days               []DaySummary `json:"days"`
	AverageScore       float64      `json:"average_score"`
	HabitCompliance    float64      `json:"habit_compliance"`
	CleaningCompliance float64      `json:"cleaning_compliance"`
	AverageWaterOunces float64      `json:"average_water_ounces"`
	DaysRead           int          `json:"days_read"`
	TotalPagesRead     int          `json:"total_pages_read"`
}

type MonthlySummary struct {
	Month              time.Time    `json:"month"`
	Days               []DaySummary `json:"days"`
	AverageScore       float64      `json:"average_score"`
	HabitCompliance    float64      `json:"habit_compliance"`
	CleaningCompliance float64      `json:"cleaning_compliance"`
	AverageWaterOunces float64      `json:"average_water_ounces"`
	DaysRead           int          `json:"days_read"`
	TotalPagesRead     int          `json:"total_pages_read"`
	GoodDays           int          `json:"good_days"`
	BestStreak         int          `json:"best_streak"`
}

type WeeklyWorkoutSummary struct {
	WeekStart    time.Time `json:"week_start"`
	WeekEnd      time.Time `json:"week_end"`
	Count        int       `json:"count"`
	TotalMinutes int       `json:"total_minutes"`
	ActiveDays   int       `json:"active_days"`
}

// WidgetSnapshot is the read-only export for companion surfaces.
type WidgetSnapshot struct {
	Score                 float64   `json:"score"`
	HabitsCompleted       int       `json:"habits_completed"`
	HabitsTotal           int       `json:"habits_total"`
	WaterCurrent          float64   `json:"water_current"`
	WaterTarget           float64   `json:"water_target"`
	NextCleaningTaskTitle string    `json:"next_cleaning_task_title,omitempty"`
	DidReadToday          bool      `json:"did_read_today"`
	UpdatedAt             time.Time `json:"updated_at"`
}
