package tui

import (
	"fmt"
	"strings"

	"github.com/Saba3939/oneday-todo/internal/clock"
	"github.com/Saba3939/oneday-todo/internal/model"
)

// RenderTaskList renders one day's tasks for the terminal.
func RenderTaskList(day clock.Day, tasks []model.Task) string {
	var b strings.Builder

	pending := 0
	for _, t := range tasks {
		if !t.IsCompleted {
			pending++
		}
	}

	b.WriteString(TitleStyle.Render(fmt.Sprintf("📅 %s", day)))
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("  %d pending, %d total\n", pending, len(tasks))))
	b.WriteString(strings.Repeat("─", 50))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(SubtitleStyle.Render("No tasks yet. Add one with: oneday add \"Your task\"\n"))
		return b.String()
	}

	for i, t := range tasks {
		mark := "○"
		style := TaskPendingStyle
		if t.IsCompleted {
			mark = "●"
			style = TaskDoneStyle
		}
		b.WriteString(fmt.Sprintf("%2d. %s %s  %s\n", i+1, mark, style.Render(t.Content), SubtitleStyle.Render(fmt.Sprintf("(#%d)", t.ID))))
	}
	return b.String()
}
