// Package stats maintains the per-day aggregate counters shown on the
// statistics page. The task layer calls it best-effort: a failed update is
// logged by the caller and never rolls back the task mutation that
// triggered it.
package stats

import (
	"context"
	"database/sql"

	"github.com/Saba3939/oneday-todo/internal/clock"
)

// Recorder consumes task mutation events for one day.
type Recorder interface {
	// TaskAdded bumps the day's created-task counter.
	TaskAdded(ctx context.Context, owner string, day clock.Day) error

	// Recompute rebuilds the day's counters from the live task rows.
	Recompute(ctx context.Context, owner string, day clock.Day) error
}

// Nop is a recorder that does nothing. The local store and tests use it.
type Nop struct{}

func (Nop) TaskAdded(ctx context.Context, owner string, day clock.Day) error { return nil }
func (Nop) Recompute(ctx context.Context, owner string, day clock.Day) error { return nil }

// clampTotal keeps total_tasks monotone: it counts every task ever created
// on the day, so deletions must not shrink it below the recorded value.
func clampTotal(recorded, live int) int {
	if recorded > live {
		return recorded
	}
	return live
}

// completionRate returns the completed percentage, 0 for an empty day.
func completionRate(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// readRecordedTotal returns the stored total_tasks for the day, 0 if the row
// does not exist yet.
func readRecordedTotal(ctx context.Context, db *sql.DB, owner string, day clock.Day) (int, error) {
	var total int
	err := db.QueryRowContext(ctx, `
		SELECT total_tasks FROM task_statistics WHERE user_id = $1 AND date = $2`,
		owner, day.String(),
	).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return total, err
}
