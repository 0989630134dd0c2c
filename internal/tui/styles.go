package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tinywins/internal/calendar"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	titleStyle = lipgloss.NewStyle().Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	cellStyle = lipgloss.NewStyle().Width(4).Align(lipgloss.Right)

	todayCellStyle = cellStyle.Underline(true)

	selectedCellStyle = cellStyle.Reverse(true)
)

// bucketStyles colour calendar days by mood bucket.
var bucketStyles = map[calendar.Bucket]lipgloss.Style{
	calendar.BucketNone:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	calendar.BucketPlanned: lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
	calendar.BucketHappy:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	calendar.BucketNeutral: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	calendar.BucketUnhappy: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
}
