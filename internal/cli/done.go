package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task's completion",
	Long: `Toggle a task between done and pending.

Examples:
  oneday done 3
  oneday done 1756712345678`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func runDone(cmd *cobra.Command, args []string) error {
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

	if err := st.Toggle(ctx, id); err != nil {
		return fmt.Errorf("failed to toggle task: %w", err)
	}

	task, err := findToday(ctx, st, id)
	if err != nil {
		fmt.Println("✅ Toggled.")
		return nil
	}
	if task.IsCompleted {
		fmt.Printf("✅ Done: %q\n", task.Content)
	} else {
		fmt.Printf("○ Reopened: %q\n", task.Content)
	}
	return nil
}
