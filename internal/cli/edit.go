package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [task-id] [content]",
	Short: "Rewrite a task's content",
	Long: `Rewrite the text of a task. Completion state and position are kept.

Examples:
  oneday edit 3 "Buy groceries and coffee"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
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
	content := strings.Join(args[1:], " ")

	if err := st.UpdateContent(ctx, id, content); err != nil {
		return fmt.Errorf("failed to edit task: %w", err)
	}

	fmt.Printf("✏️  Updated #%d: %q\n", id, strings.TrimSpace(content))
	return nil
}
