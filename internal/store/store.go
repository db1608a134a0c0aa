// Package store defines the task store abstraction shared by the remote
// (Postgres-backed) and local (on-device) implementations. A session picks
// exactly one implementation at startup based on authentication state; call
// sites never branch on storage medium.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Saba3939/oneday-todo/internal/clock"
	"github.com/Saba3939/oneday-todo/internal/model"
)

// Store is the uniform task interface. All methods operate on the single
// owner the store was bound to at construction.
type Store interface {
	// ListDay returns the owner's tasks whose day equals day, ordered by
	// order_index ascending.
	ListDay(ctx context.Context, day clock.Day) ([]model.Task, error)

	// ListBefore returns the owner's tasks whose day is strictly earlier
	// than day, ordered by order_index. Used by the carry-over flow.
	ListBefore(ctx context.Context, day clock.Day) ([]model.Task, error)

	// Add creates a task with the given content, stamped with the current
	// time and appended after the day's existing tasks. Returns the
	// persisted task including its assigned id.
	Add(ctx context.Context, content string) (model.Task, error)

	// Toggle flips the completion state of the task with the given id.
	Toggle(ctx context.Context, id int64) error

	// UpdateContent replaces the task's content.
	UpdateContent(ctx context.Context, id int64, content string) error

	// Delete removes the task permanently.
	Delete(ctx context.Context, id int64) error

	// Reorder reassigns order_index as the 1-based position in ids. Ids
	// outside the owner's current task set must never affect another
	// owner's rows.
	Reorder(ctx context.Context, ids []int64) error

	// LastAccess returns the day the carry-over flow last completed for
	// this owner. ok is false if it has never run.
	LastAccess(ctx context.Context) (day clock.Day, ok bool, err error)

	// SetLastAccess records the carry-over marker.
	SetLastAccess(ctx context.Context, day clock.Day) error
}

var (
	// ErrEmptyContent is returned when a task's content is empty after
	// trimming whitespace.
	ErrEmptyContent = errors.New("task content must not be empty")

	// ErrNotFound is returned when an id does not exist for the calling
	// owner. It deliberately does not distinguish "missing" from "belongs
	// to someone else".
	ErrNotFound = errors.New("task not found")
)

// FreeDailyLimit is the number of tasks a free-tier user may create per day.
const FreeDailyLimit = 10

// QuotaError reports that the free-tier daily task limit was reached. It is
// a user-facing condition, not a system failure.
type QuotaError struct {
	Limit int
	Count int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("free plan allows up to %d tasks per day (you already have %d); upgrade to premium for unlimited tasks", e.Limit, e.Count)
}

// IsQuota reports whether err is a quota violation.
func IsQuota(err error) bool {
	var qe *QuotaError
	return errors.As(err, &qe)
}
