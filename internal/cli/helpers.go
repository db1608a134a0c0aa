package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Saba3939/oneday-todo/internal/clock"
	"github.com/Saba3939/oneday-todo/internal/model"
	"github.com/Saba3939/oneday-todo/internal/store"
)

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

// findToday looks a task up in today's list, so commands can echo its
// content back to the user.
func findToday(ctx context.Context, st store.Store, id int64) (model.Task, error) {
	tasks, err := st.ListDay(ctx, clock.Today())
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to list tasks: %w", err)
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, fmt.Errorf("task not found: %d", id)
}
