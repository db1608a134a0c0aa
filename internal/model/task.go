package model

import (
	"time"

	"github.com/Saba3939/oneday-todo/internal/clock"
)

// GuestOwner is the sentinel owner for tasks kept in the on-device store.
const GuestOwner = "guest"

// Task represents a single todo item. A task belongs to the calendar day its
// CreatedAt falls on; that day never changes after creation.
type Task struct {
	ID          int64      `json:"id"`
	Owner       string     `json:"user_id"`
	Content     string     `json:"content"`
	IsCompleted bool       `json:"is_completed"`
	OrderIndex  int        `json:"order_index"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Day returns the calendar day the task belongs to.
func (t *Task) Day() clock.Day {
	return clock.DayOf(t.CreatedAt)
}
