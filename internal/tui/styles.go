package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/listing-renamer/internal/export"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	tokenStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6C757D")).
			Width(cellWidth).
			Height(3).
			Padding(0, 1)

	cursorCellStyle = cellStyle.
			BorderForeground(lipgloss.Color("#4ECDC4"))

	dragCellStyle = cellStyle.
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#F8B500"))
)

const cellWidth = 22

func levelStyle(level export.ProgressLevel) (lipgloss.Style, string) {
	switch level {
	case export.LevelError:
		return errorStyle, "✗"
	case export.LevelWarning:
		return warningStyle, "!"
	case export.LevelSuccess:
		return successStyle, "✓"
	case export.LevelInfo:
		return infoStyle, "›"
	default:
		return dimStyle, "•"
	}
}
