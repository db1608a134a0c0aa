// Package remote implements the task store against the server's Postgres
// database. A Store is bound to one owner at construction and every query is
// scoped to that owner's id, so the "never touch another owner's rows"
// contract holds at the storage layer rather than in application logic.
package remote

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/Saba3939/oneday-todo/internal/billing"
	"github.com/Saba3939/oneday-todo/internal/clock"
	"github.com/Saba3939/oneday-todo/internal/logger"
	"github.com/Saba3939/oneday-todo/internal/model"
	"github.com/Saba3939/oneday-todo/internal/stats"
	"github.com/Saba3939/oneday-todo/internal/store"
)

// Store is the remote task store for one authenticated owner.
type Store struct {
	db      *sql.DB
	owner   string
	billing billing.Checker
	stats   stats.Recorder
}

// New creates a store bound to the given owner id.
func New(db *sql.DB, owner string, checker billing.Checker, recorder stats.Recorder) *Store {
	return &Store{db: db, owner: owner, billing: checker, stats: recorder}
}

var _ store.Store = (*Store)(nil)

const taskColumns = `id, user_id, content, is_completed, order_index, created_at, completed_at`

func scanTask(row interface{ Scan(...any) error }) (model.Task, error) {
	var t model.Task
	var completedAt sql.NullTime
	err := row.Scan(&t.ID, &t.Owner, &t.Content, &t.IsCompleted, &t.OrderIndex, &t.CreatedAt, &completedAt)
	if err != nil {
		return model.Task{}, err
	}
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	return t, nil
}

func (s *Store) listRange(ctx context.Context, where string, args ...any) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ` + where + ` ORDER BY order_index ASC`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ListDay returns the owner's tasks created on day, ordered by order_index.
func (s *Store) ListDay(ctx context.Context, day clock.Day) ([]model.Task, error) {
	return s.listRange(ctx, `AND created_at >= $2 AND created_at < $3`,
		s.owner, day.Start(), day.Next().Start())
}

// ListBefore returns the owner's tasks created strictly before day.
func (s *Store) ListBefore(ctx context.Context, day clock.Day) ([]model.Task, error) {
	return s.listRange(ctx, `AND created_at < $2`, s.owner, day.Start())
}

// Add creates a task for today, enforcing the free-tier daily quota first.
// Statistics bookkeeping runs after the insert and never fails the add.
func (s *Store) Add(ctx context.Context, content string) (model.Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Task{}, store.ErrEmptyContent
	}

	now := time.Now()
	day := clock.DayOf(now)

	if err := s.checkQuota(ctx, day); err != nil {
		return model.Task{}, err
	}

	var maxOrder int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(order_index), 0) FROM tasks
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3`,
		s.owner, day.Start(), day.Next().Start(),
	).Scan(&maxOrder)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to read order index: %w", err)
	}

	task := model.Task{
		Owner:      s.owner,
		Content:    content,
		OrderIndex: maxOrder + 1,
		CreatedAt:  now,
	}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (user_id, content, is_completed, order_index, created_at)
		VALUES ($1, $2, FALSE, $3, $4)
		RETURNING id`,
		s.owner, content, task.OrderIndex, now,
	).Scan(&task.ID)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}

	if err := s.stats.TaskAdded(ctx, s.owner, day); err != nil {
		logger.Warn("Statistics update failed after add",
			logger.F("owner", s.owner), logger.F("error", err))
	}

	return task, nil
}

// checkQuota fails with *store.QuotaError when a free-tier owner already has
// the daily limit of tasks created for day. The count is read from the
// precomputed statistics row when one exists, falling back to a direct count.
func (s *Store) checkQuota(ctx context.Context, day clock.Day) error {
	premium, err := s.billing.IsPremium(ctx, s.owner)
	if err != nil {
		return fmt.Errorf("failed to check subscription tier: %w", err)
	}
	if premium {
		return nil
	}

	count, err := s.dayTaskCount(ctx, day)
	if err != nil {
		return err
	}
	return freeTierQuota(count)
}

// dayTaskCount reads the day's task count from the precomputed statistics
// row, falling back to a direct count of the day's rows.
func (s *Store) dayTaskCount(ctx context.Context, day clock.Day) (int, error) {
	count := 0
	err := s.db.QueryRowContext(ctx, `
		SELECT total_tasks FROM task_statistics WHERE user_id = $1 AND date = $2`,
		s.owner, day.String(),
	).Scan(&count)
	if err != nil {
		// No counter yet (or unreadable): count the day's rows directly.
		if cerr := s.db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM tasks
			WHERE user_id = $1 AND created_at >= $2 AND created_at < $3`,
			s.owner, day.Start(), day.Next().Start(),
		).Scan(&count); cerr != nil {
			return 0, fmt.Errorf("failed to count today's tasks: %w", cerr)
		}
	}
	return count, nil
}

// freeTierQuota applies the free-tier daily limit to a day's task count.
func freeTierQuota(count int) error {
	if count >= store.FreeDailyLimit {
		return &store.QuotaError{Limit: store.FreeDailyLimit, Count: count}
	}
	return nil
}

// Toggle flips is_completed, stamping completed_at on completion and
// clearing it on the way back.
func (s *Store) Toggle(ctx context.Context, id int64) error {
	var isCompleted bool
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT is_completed, created_at FROM tasks WHERE id = $1 AND user_id = $2`,
		id, s.owner,
	).Scan(&isCompleted, &createdAt)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch task: %w", err)
	}

	var completedAt any
	if !isCompleted {
		completedAt = time.Now()
	}
	if _, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET is_completed = $1, completed_at = $2
		WHERE id = $3 AND user_id = $4`,
		!isCompleted, completedAt, id, s.owner,
	); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if err := s.stats.Recompute(ctx, s.owner, clock.DayOf(createdAt)); err != nil {
		logger.Warn("Statistics update failed after toggle",
			logger.F("owner", s.owner), logger.F("error", err))
	}
	return nil
}

// UpdateContent replaces the task's content.
func (s *Store) UpdateContent(ctx context.Context, id int64, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return store.ErrEmptyContent
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET content = $1 WHERE id = $2 AND user_id = $3`,
		content, id, s.owner)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes the task permanently.
func (s *Store) Delete(ctx context.Context, id int64) error {
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT created_at FROM tasks WHERE id = $1 AND user_id = $2`,
		id, s.owner,
	).Scan(&createdAt)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch task: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, s.owner); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if err := s.stats.Recompute(ctx, s.owner, clock.DayOf(createdAt)); err != nil {
		logger.Warn("Statistics update failed after delete",
			logger.F("owner", s.owner), logger.F("error", err))
	}
	return nil
}

// Reorder reassigns order_index as the 1-based position in ids. Every id
// must belong to the owner; a stale or foreign id rejects the whole call so
// a bad client cannot corrupt the ordering.
func (s *Store) Reorder(ctx context.Context, ids []int64) error {
	var owned int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND id = ANY($2)`,
		s.owner, pq.Array(ids),
	).Scan(&owned)
	if err != nil {
		return fmt.Errorf("failed to verify task ownership: %w", err)
	}
	if owned != len(ids) {
		return fmt.Errorf("reorder contains unknown task ids: %w", store.ErrNotFound)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for pos, id := range ids {
		if _, err := tx.ExecContext(ctx, `
			UPDATE tasks SET order_index = $1 WHERE id = $2 AND user_id = $3`,
			pos+1, id, s.owner); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to update order: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}

// LastAccess returns the day the carry-over flow last completed.
func (s *Store) LastAccess(ctx context.Context) (clock.Day, bool, error) {
	var last sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT last_access FROM users WHERE id = $1`, s.owner,
	).Scan(&last)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read last-access marker: %w", err)
	}
	if !last.Valid {
		return "", false, nil
	}
	return clock.Day(last.Time.UTC().Format("2006-01-02")), true, nil
}

// SetLastAccess records the carry-over marker.
func (s *Store) SetLastAccess(ctx context.Context, day clock.Day) error {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE users SET last_access = $1 WHERE id = $2`,
		day.String(), s.owner); err != nil {
		return fmt.Errorf("failed to update last-access marker: %w", err)
	}
	return nil
}
