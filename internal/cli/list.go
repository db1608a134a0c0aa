package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Saba3939/oneday-todo/internal/clock"
	"github.com/Saba3939/oneday-todo/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List today's tasks",
	Long: `List today's tasks in display order.

Examples:
  oneday list
  oneday ls`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	if err := reconcileDay(ctx, st); err != nil {
		return err
	}

	today := clock.Today()
	tasks, err := st.ListDay(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	fmt.Println(tui.RenderTaskList(today, tasks))
	return nil
}
