package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Saba3939/oneday-todo/internal/model"
)

// CarryOverModel is the day-start dialog. On a first run it is purely
// informational; otherwise it shows yesterday's unfinished tasks as a
// checklist, all pre-selected. Dismissing is a valid answer and means
// "carry nothing over".
type CarryOverModel struct {
	tasks    []model.Task
	checked  map[int64]bool
	cursor   int
	firstRun bool

	confirmed bool
	done      bool
}

// NewCarryOver builds the dialog with every pending task pre-selected.
func NewCarryOver(pending []model.Task, firstRun bool) CarryOverModel {
	checked := make(map[int64]bool, len(pending))
	for _, t := range pending {
		checked[t.ID] = true
	}
	return CarryOverModel{
		tasks:    pending,
		checked:  checked,
		firstRun: firstRun,
	}
}

func (m CarryOverModel) Init() tea.Cmd {
	return nil
}

func (m CarryOverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Confirm):
		m.confirmed = true
		m.done = true
		return m, tea.Quit

	case key.Matches(keyMsg, keys.Dismiss):
		m.done = true
		return m, tea.Quit
	}

	if m.firstRun || len(m.tasks) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Toggle):
		id := m.tasks[m.cursor].ID
		m.checked[id] = !m.checked[id]
	case key.Matches(keyMsg, keys.All):
		for _, t := range m.tasks {
			m.checked[t.ID] = true
		}
	case key.Matches(keyMsg, keys.None):
		for _, t := range m.tasks {
			m.checked[t.ID] = false
		}
	}
	return m, nil
}

func (m CarryOverModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	if m.firstRun {
		b.WriteString(TitleStyle.Render("Welcome to OneDay"))
		b.WriteString("\n\n")
		b.WriteString("Your task list resets every day.\n")
		b.WriteString("Unfinished tasks can be carried over each morning;\n")
		b.WriteString("everything else is cleared so you start fresh.\n")
		b.WriteString(HelpStyle.Render("enter/esc: continue"))
		return DialogStyle.Render(b.String())
	}

	b.WriteString(TitleStyle.Render("A new day"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d unfinished task(s) from before. Carry them over?", len(m.tasks))))
	b.WriteString("\n\n")

	for i, t := range m.tasks {
		checkbox := "[ ]"
		if m.checked[t.ID] {
			checkbox = CheckboxCheckedStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", checkbox, t.Content)
		if i == m.cursor {
			line = ItemSelectedStyle.Render("> " + line)
		} else {
			line = ItemStyle.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(SubtitleStyle.Render("\nUnselected tasks are deleted."))
	b.WriteString(HelpStyle.Render("space: toggle  a: all  n: none  enter: confirm  esc: carry nothing"))
	return DialogStyle.Render(b.String())
}

// Selected returns the ids the user kept checked. It returns nil when the
// dialog was dismissed, which callers treat as an empty selection.
func (m CarryOverModel) Selected() []int64 {
	if !m.confirmed {
		return nil
	}
	var ids []int64
	for _, t := range m.tasks {
		if m.checked[t.ID] {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// RunCarryOver shows the dialog and blocks until the user answers.
func RunCarryOver(pending []model.Task, firstRun bool) ([]int64, error) {
	p := tea.NewProgram(NewCarryOver(pending, firstRun))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run carry-over dialog: %w", err)
	}
	m, ok := final.(CarryOverModel)
	if !ok {
		return nil, fmt.Errorf("unexpected dialog model %T", final)
	}
	return m.Selected(), nil
}
