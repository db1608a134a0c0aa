package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Saba3939/oneday-todo/internal/config"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID.

Examples:
  oneday delete 3
  oneday rm 3`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	task, err := findToday(ctx, st, id)
	if err != nil {
		return err
	}

	// Check config
	cfg, _ := config.Load() // Ignore error, use defaults
	if cfg.ConfirmDelete {
		fmt.Printf("About to delete: %q (#%d)\n", task.Content, task.ID)
		fmt.Print("Are you sure? [y/N]: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := st.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("🗑️  Deleted: %q\n", task.Content)
	return nil
}
