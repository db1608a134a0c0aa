package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Saba3939/oneday-todo/internal/store"
)

var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add a task to today's list",
	Long: `Add a new task to today's list.

Examples:
  oneday add "Buy groceries"
  oneday add Write the weekly report`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	if err := reconcileDay(ctx, st); err != nil {
		return err
	}

	content := strings.Join(args, " ")

	task, err := st.Add(ctx, content)
	if err != nil {
		if store.IsQuota(err) {
			fmt.Printf("🚫 %v\n", err)
			return nil
		}
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("✅ Added: %q (#%d)\n", task.Content, task.ID)
	return nil
}
