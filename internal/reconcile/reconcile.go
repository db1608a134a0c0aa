// Package reconcile implements the carry-over flow that runs once at session
// start: detect a day boundary, offer yesterday's incomplete tasks for
// re-creation, then clear every stale task and stamp the marker.
package reconcile

import (
	"context"
	"fmt"

	"github.com/Saba3939/oneday-todo/internal/clock"
	"github.com/Saba3939/oneday-todo/internal/logger"
	"github.com/Saba3939/oneday-todo/internal/model"
	"github.com/Saba3939/oneday-todo/internal/store"
)

// State is the flow's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateChecking
	StateAwaitingSelection
	StateApplying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChecking:
		return "checking"
	case StateAwaitingSelection:
		return "awaiting-selection"
	case StateApplying:
		return "applying"
	default:
		return "unknown"
	}
}

// Flow drives one reconciliation pass over a single store. It is not safe
// for concurrent use; a session runs at most one pass.
type Flow struct {
	store store.Store
	state State

	today    clock.Day
	firstRun bool
	stale    []model.Task // everything before today, completed included
	pending  []model.Task // the incomplete subset offered to the user
}

// New creates a flow over the session's active store.
func New(s store.Store) *Flow {
	return &Flow{store: s, state: StateIdle}
}

// State returns the current state.
func (f *Flow) State() State {
	return f.state
}

// FirstRun reports whether the marker was absent, meaning this is the
// owner's first-ever session and the dialog is informational only.
func (f *Flow) FirstRun() bool {
	return f.firstRun
}

// Pending returns the incomplete stale tasks awaiting a decision, in
// order_index order. All of them are pre-selected by default.
func (f *Flow) Pending() []model.Task {
	return f.pending
}

// Check reads the marker and decides whether a carry-over decision is
// needed. It returns true when the flow is awaiting a selection; the caller
// then presents Pending() and finishes with Apply. When it returns false the
// pass is already complete (either nothing was stale, or the cleanup ran
// with an empty selection).
func (f *Flow) Check(ctx context.Context, today clock.Day) (bool, error) {
	if f.state != StateIdle {
		return false, fmt.Errorf("reconciliation already in progress (state %s)", f.state)
	}
	f.state = StateChecking
	f.today = today

	marker, ok, err := f.store.LastAccess(ctx)
	if err != nil {
		f.state = StateIdle
		return false, fmt.Errorf("failed to read last-access marker: %w", err)
	}
	if ok && marker == today {
		// Same day: nothing to reconcile, marker untouched.
		f.state = StateIdle
		return false, nil
	}
	f.firstRun = !ok

	f.stale, err = f.store.ListBefore(ctx, today)
	if err != nil {
		f.state = StateIdle
		return false, fmt.Errorf("failed to list stale tasks: %w", err)
	}
	for _, t := range f.stale {
		if !t.IsCompleted {
			f.pending = append(f.pending, t)
		}
	}

	logger.Info("Carry-over check",
		logger.F("today", today),
		logger.F("marker", marker),
		logger.F("first_run", f.firstRun),
		logger.F("stale", len(f.stale)),
		logger.F("incomplete", len(f.pending)))

	if len(f.pending) == 0 && !f.firstRun {
		// Nothing to decide: still clear completed stale tasks and stamp
		// the marker.
		if _, err := f.apply(ctx, nil); err != nil {
			return false, err
		}
		return false, nil
	}

	// First-run sessions surface the informational dialog even with no
	// pending tasks; otherwise the user has a real selection to make.
	f.state = StateAwaitingSelection
	return true, nil
}

// Outcome summarizes an Apply pass.
type Outcome struct {
	CarriedOver int      // tasks re-created for today
	Discarded   int      // stale tasks deleted
	Failed      []string // contents whose carry-forward add failed (quota)
}

// Apply replays the user's selection: re-create each selected task as a
// fresh today-dated task, then delete every stale task from the original
// fetch regardless of selection, then stamp the marker. Dismissing the
// dialog is an Apply with no selection. Partial failures are not rolled
// back.
func (f *Flow) Apply(ctx context.Context, selected []int64) (Outcome, error) {
	if f.state != StateAwaitingSelection {
		return Outcome{}, fmt.Errorf("no selection pending (state %s)", f.state)
	}
	return f.apply(ctx, selected)
}

func (f *Flow) apply(ctx context.Context, selected []int64) (Outcome, error) {
	f.state = StateApplying
	defer func() { f.state = StateIdle }()

	chosen := make(map[int64]bool, len(selected))
	for _, id := range selected {
		chosen[id] = true
	}

	var out Outcome
	for _, t := range f.pending {
		if !chosen[t.ID] {
			continue
		}
		if _, err := f.store.Add(ctx, t.Content); err != nil {
			// A quota hit mid-batch skips this task but the flow keeps
			// going: remaining adds are attempted and the cleanup below
			// still runs.
			out.Failed = append(out.Failed, t.Content)
			if store.IsQuota(err) {
				logger.Warn("Carry-over add hit quota", logger.F("content", t.Content))
			} else {
				logger.Error("Carry-over add failed",
					logger.F("content", t.Content), logger.F("error", err))
			}
			continue
		}
		out.CarriedOver++
	}

	// Copy forward, then clear: every stale task goes, selected or not,
	// completed or not.
	for _, t := range f.stale {
		if err := f.store.Delete(ctx, t.ID); err != nil {
			logger.Error("Failed to delete stale task",
				logger.F("id", t.ID), logger.F("error", err))
			continue
		}
		out.Discarded++
	}

	if err := f.store.SetLastAccess(ctx, f.today); err != nil {
		return out, fmt.Errorf("failed to update last-access marker: %w", err)
	}

	logger.Info("Carry-over applied",
		logger.F("carried_over", out.CarriedOver),
		logger.F("discarded", out.Discarded),
		logger.F("failed", len(out.Failed)))
	return out, nil
}
