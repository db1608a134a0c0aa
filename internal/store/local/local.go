// Package local implements the guest-mode task store on top of a key-value
// driver. The whole task collection lives as one JSON array under a fixed
// key, the carry-over marker under a second key, mirroring how the browser
// build of the product used localStorage.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/Saba3939/oneday-todo/internal/clock"
	"github.com/Saba3939/oneday-todo/internal/model"
	"github.com/Saba3939/oneday-todo/internal/store"
)

const (
	tasksKey      = "oneday-todo-tasks"
	lastAccessKey = "oneday-todo-last-access"
)

// Store is the local task store. All tasks belong to the guest owner, so
// owner filtering is trivially satisfied; the store filters by day only.
type Store struct {
	kv  KV
	now func() time.Time
}

// New creates a local store over the given driver.
func New(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

var _ store.Store = (*Store)(nil)

func (s *Store) load() ([]model.Task, error) {
	raw, ok, err := s.kv.Get(tasksKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) save(tasks []model.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := s.kv.Set(tasksKey, string(data)); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// ListDay returns the tasks belonging to day, ordered by order_index.
func (s *Store) ListDay(ctx context.Context, day clock.Day) ([]model.Task, error) {
	tasks, err := s.load()
	if err != nil {
		return nil, err
	}
	var out []model.Task
	for _, t := range tasks {
		if t.Day() == day {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

// ListBefore returns the tasks belonging to days strictly before day.
func (s *Store) ListBefore(ctx context.Context, day clock.Day) ([]model.Task, error) {
	tasks, err := s.load()
	if err != nil {
		return nil, err
	}
	var out []model.Task
	for _, t := range tasks {
		if t.Day().Before(day) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

// Add creates a new guest task dated now, appended after today's tasks.
func (s *Store) Add(ctx context.Context, content string) (model.Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Task{}, store.ErrEmptyContent
	}

	tasks, err := s.load()
	if err != nil {
		return model.Task{}, err
	}

	now := s.now()
	today := clock.DayOf(now)
	maxOrder := 0
	for _, t := range tasks {
		if t.Day() == today && t.OrderIndex > maxOrder {
			maxOrder = t.OrderIndex
		}
	}

	task := model.Task{
		ID:          s.newID(tasks, now),
		Owner:       model.GuestOwner,
		Content:     content,
		IsCompleted: false,
		OrderIndex:  maxOrder + 1,
		CreatedAt:   now,
	}

	tasks = append(tasks, task)
	if err := s.save(tasks); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// newID generates a collision-free id. There is no central authority handing
// out sequential ids, so use the current time plus a random perturbation and
// re-roll on the off chance it is already taken.
func (s *Store) newID(tasks []model.Task, now time.Time) int64 {
	for {
		id := now.UnixMilli() + rand.Int63n(1000)
		taken := false
		for _, t := range tasks {
			if t.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

// Toggle flips the completion state of the task with the given id.
func (s *Store) Toggle(ctx context.Context, id int64) error {
	tasks, err := s.load()
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].IsCompleted = !tasks[i].IsCompleted
			return s.save(tasks)
		}
	}
	return store.ErrNotFound
}

// UpdateContent replaces the task's content.
func (s *Store) UpdateContent(ctx context.Context, id int64, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return store.ErrEmptyContent
	}
	tasks, err := s.load()
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Content = content
			return s.save(tasks)
		}
	}
	return store.ErrNotFound
}

// Delete removes the task permanently.
func (s *Store) Delete(ctx context.Context, id int64) error {
	tasks, err := s.load()
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			return s.save(tasks)
		}
	}
	return store.ErrNotFound
}

// Reorder reassigns order_index as the 1-based position in ids. Only today's
// tasks are eligible; unknown or stale ids are ignored.
func (s *Store) Reorder(ctx context.Context, ids []int64) error {
	tasks, err := s.load()
	if err != nil {
		return err
	}
	today := clock.DayOf(s.now())
	next := 1
	for _, id := range ids {
		for i := range tasks {
			if tasks[i].ID == id && tasks[i].Day() == today {
				// Ignored ids must not consume a position, so the indices
				// stay a dense 1..N.
				tasks[i].OrderIndex = next
				next++
			}
		}
	}
	return s.save(tasks)
}

// LastAccess returns the day the carry-over flow last completed.
func (s *Store) LastAccess(ctx context.Context) (clock.Day, bool, error) {
	raw, ok, err := s.kv.Get(lastAccessKey)
	if err != nil {
		return "", false, fmt.Errorf("failed to load last-access marker: %w", err)
	}
	if !ok || raw == "" {
		return "", false, nil
	}
	day, err := clock.ParseDay(raw)
	if err != nil {
		return "", false, fmt.Errorf("corrupt last-access marker: %w", err)
	}
	return day, true, nil
}

// SetLastAccess records the carry-over marker.
func (s *Store) SetLastAccess(ctx context.Context, day clock.Day) error {
	if err := s.kv.Set(lastAccessKey, day.String()); err != nil {
		return fmt.Errorf("failed to save last-access marker: %w", err)
	}
	return nil
}
