package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Saba3939/oneday-todo/internal/clock"
)

var moveCmd = &cobra.Command{
	Use:   "move [task-id] [position]",
	Short: "Move a task to a new position",
	Long: `Move a task to a 1-based position in today's list.

Examples:
  oneday move 3 1     # move task 3 to the top`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func runMove(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	if err := reconcileDay(ctx, st); err != nil {
		return err
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	pos, err := strconv.Atoi(args[1])
	if err != nil || pos < 1 {
		return fmt.Errorf("invalid position %q", args[1])
	}

	tasks, err := st.ListDay(ctx, clock.Today())
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	ids := make([]int64, 0, len(tasks))
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		ids = append(ids, t.ID)
	}
	if !found {
		return fmt.Errorf("task not found: %d", id)
	}
	if pos > len(ids)+1 {
		pos = len(ids) + 1
	}

	// Splice the task back in at its new slot
	ids = append(ids[:pos-1], append([]int64{id}, ids[pos-1:]...)...)

	if err := st.Reorder(ctx, ids); err != nil {
		return fmt.Errorf("failed to reorder tasks: %w", err)
	}

	fmt.Printf("↕️  Moved #%d to position %d\n", id, pos)
	return nil
}
