package stats

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Saba3939/oneday-todo/internal/clock"
	"github.com/Saba3939/oneday-todo/internal/model"
)

// Postgres is the database-backed recorder used by the remote task store.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a recorder over the given connection.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

var _ Recorder = (*Postgres)(nil)

// TaskAdded bumps the day's total and refreshes the completion rate. The
// completed count is left alone; Recompute owns it.
func (p *Postgres) TaskAdded(ctx context.Context, owner string, day clock.Day) error {
	recorded, err := readRecordedTotal(ctx, p.db, owner, day)
	if err != nil {
		return fmt.Errorf("failed to read statistics: %w", err)
	}

	var completed int
	if recorded > 0 {
		if err := p.db.QueryRowContext(ctx, `
			SELECT completed_tasks FROM task_statistics WHERE user_id = $1 AND date = $2`,
			owner, day.String(),
		).Scan(&completed); err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("failed to read statistics: %w", err)
		}
	}

	total := recorded + 1
	return p.upsert(ctx, owner, day, total, completed)
}

// Recompute rebuilds the day's counters from the live task rows. total_tasks
// is floor-clamped so deleting a task never shrinks it.
func (p *Postgres) Recompute(ctx context.Context, owner string, day clock.Day) error {
	var live, completed int
	err := p.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_completed)
		FROM tasks
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3`,
		owner, day.Start(), day.Next().Start(),
	).Scan(&live, &completed)
	if err != nil {
		return fmt.Errorf("failed to count tasks: %w", err)
	}

	recorded, err := readRecordedTotal(ctx, p.db, owner, day)
	if err != nil {
		return fmt.Errorf("failed to read statistics: %w", err)
	}

	return p.upsert(ctx, owner, day, clampTotal(recorded, live), completed)
}

func (p *Postgres) upsert(ctx context.Context, owner string, day clock.Day, total, completed int) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO task_statistics (user_id, date, total_tasks, completed_tasks, completion_rate)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date) DO UPDATE SET
			total_tasks = EXCLUDED.total_tasks,
			completed_tasks = EXCLUDED.completed_tasks,
			completion_rate = EXCLUDED.completion_rate`,
		owner, day.String(), total, completed, completionRate(completed, total))
	if err != nil {
		return fmt.Errorf("failed to upsert statistics: %w", err)
	}
	return nil
}

// Range returns the day-by-day aggregates between from and to inclusive,
// with zero rows for days that have no record.
func (p *Postgres) Range(ctx context.Context, owner string, from, to clock.Day) ([]model.DailyStatistics, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT date, total_tasks, completed_tasks, completion_rate
		FROM task_statistics
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC`,
		owner, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics: %w", err)
	}
	defer rows.Close()

	byDay := make(map[clock.Day]model.DailyStatistics)
	for rows.Next() {
		var s model.DailyStatistics
		var date sql.NullTime
		if err := rows.Scan(&date, &s.TotalTasks, &s.CompletedTasks, &s.CompletionRate); err != nil {
			return nil, fmt.Errorf("failed to scan statistics: %w", err)
		}
		if date.Valid {
			s.Date = clock.Day(date.Time.UTC().Format("2006-01-02"))
			byDay[s.Date] = s
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []model.DailyStatistics
	for d := from; !to.Before(d); d = d.Next() {
		if s, ok := byDay[d]; ok {
			out = append(out, s)
		} else {
			out = append(out, model.DailyStatistics{Date: d})
		}
	}
	return out, nil
}
