package ui

import "github.com/charmbracelet/lipgloss"

// Style variables grouped in one block, following
// services/code_buddy/tui/diff_model.go's convention, re-themed for
// jiq's domain: a yellow input border signals a query-engine error
// (spec.md §4.2), overlay boxes get a rounded border, and notification
// styles map directly to spec.md §4.7's Info/Warning/Error classes.
var (
	borderOKStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39"))

	borderErrorStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("214"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	statsBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	overlayBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("75")).
				Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("235")).
				Background(lipgloss.Color("75")).
				Bold(true)

	dimItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	fieldTypeTagStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("108"))

	notifyInfoStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	notifyWarningStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("214")).
				Foreground(lipgloss.Color("255")).
				Padding(0, 1)

	notifyErrorStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Foreground(lipgloss.Color("255")).
				Padding(0, 1)

	searchCurrentMatchStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("235")).
				Background(lipgloss.Color("214"))

	searchOtherMatchStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("235")).
				Background(lipgloss.Color("110"))

	suggestionFixStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	suggestionOptimizeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	suggestionNextStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)
