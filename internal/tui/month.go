package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tinywins/internal/calendar"
	"github.com/julianstephens/tinywins/internal/models"
)

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// RenderMonth draws a Sunday-first grid. Days are coloured by mood bucket,
// today is underlined and selected is shown reversed.
func RenderMonth(m calendar.Month, cells []models.CalendarCell, today string) string {
	return renderMonth(m, cells, today, "")
}

func renderMonth(m calendar.Month, cells []models.CalendarCell, today, selected string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Title()))
	b.WriteString("\n")

	header := make([]string, len(weekdayHeader))
	for i, d := range weekdayHeader {
		header[i] = dimStyle.Render(cellStyle.Render(d))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for _, row := range calendar.Weeks(cells) {
		rendered := make([]string, 0, 7)
		for _, c := range row {
			rendered = append(rendered, renderCell(c, today, selected))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(c models.CalendarCell, today, selected string) string {
	if c.Empty {
		return cellStyle.Render("")
	}
	style := cellStyle
	switch c.Date {
	case selected:
		style = selectedCellStyle
	case today:
		style = todayCellStyle
	}
	label := fmt.Sprintf("%d", c.Day)
	if c.HasEntry {
		label = fmt.Sprintf("%d%s", c.Day, marker(c))
	}
	return bucketStyles[calendar.MoodBucket(c)].Inherit(style).Render(label)
}

func marker(c models.CalendarCell) string {
	if c.NumberOfTasks > 0 && c.TasksCompleted == c.NumberOfTasks {
		return "✓"
	}
	return "•"
}

// RenderLegend explains the calendar colours.
func RenderLegend() string {
	items := []struct {
		bucket calendar.Bucket
		label  string
	}{
		{calendar.BucketPlanned, "planned"},
		{calendar.BucketHappy, "mood 4-5"},
		{calendar.BucketNeutral, "mood 3"},
		{calendar.BucketUnhappy, "mood 1-2"},
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = bucketStyles[it.bucket].Render("■ " + it.label)
	}
	return strings.Join(parts, "  ") + dimStyle.Render("  ✓ all anchors done")
}
