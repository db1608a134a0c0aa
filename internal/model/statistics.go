package model

import "github.com/Saba3939/oneday-todo/internal/clock"

// DailyStatistics holds per-day aggregate counters for one user.
//
// TotalTasks counts every task created on the day, including ones deleted
// later, so it never decreases below its historical value.
type DailyStatistics struct {
	Date           clock.Day `json:"date"`
	TotalTasks     int       `json:"total_tasks"`
	CompletedTasks int       `json:"completed_tasks"`
	CompletionRate float64   `json:"completion_rate"`
}
