package tui

import "github.com/charmbracelet/lipgloss"

// Color palette based on TUI design
var (
	Primary   = lipgloss.Color("#4ECDC4")
	Completed = lipgloss.Color("#95E1A3")
	Warning   = lipgloss.Color("#FFE66D")
	Danger    = lipgloss.Color("#FF6B6B")
	Text      = lipgloss.Color("#FFFFFF")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	// Dialog container
	DialogStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	// Dialog items
	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(Primary).
				Bold(true)

	CheckboxCheckedStyle = lipgloss.NewStyle().
				Foreground(Completed)

	// Task list
	TaskPendingStyle = lipgloss.NewStyle().
				Foreground(Text)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(1, 0, 0, 0)
)
