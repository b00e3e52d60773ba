package ui

import "github.com/charmbracelet/lipgloss"

// ANSI colors keep the output readable on both light and dark terminals.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	UserStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	BotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	MetaStyle = DescStyle
)
