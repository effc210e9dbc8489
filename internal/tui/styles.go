package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#32de84"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#32de84")).Bold(true)
	quantityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f5f5f5")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f44336"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	linkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#338b93")).Underline(true)
)

var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#338b93")).
	Padding(1, 2).
	Width(56)
