package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/summary"
	"github.com/julianstephens/tinywins/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateDaily:
		content = m.viewDaily()
	case StateWeekly:
		content = m.viewWeekly()
	case StateCalendar:
		content = m.viewCalendar()
	case StateEditing:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active == StateEditing {
		active = m.previous
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	saved := "never saved"
	if stamp := m.tracker.LastSaved(); stamp != "" {
		if t, err := time.Parse(constants.TimestampFormat, stamp); err == nil {
			saved = "saved " + humanize.RelTime(t, m.clock.Now(), "ago", "from now")
		} else {
			saved = "saved " + stamp
		}
	}
	line := statusStyle.Render(saved)
	if m.message != "" {
		style := warningStyle
		if m.isError {
			style = dangerStyle
		}
		line += "  " + style.Render(m.message)
	}
	return line
}

func (m Model) viewDaily() string {
	d := m.tracker.Draft()
	var b strings.Builder

	title := d.Date
	if t, err := utils.ParseLocalDate(d.Date); err == nil {
		title = t.Format("Monday, January 2 2006")
	}
	if d.Date == m.today() {
		title += dimStyle.Render("  (today)")
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	status := "draft"
	switch {
	case d.CheckedIn:
		status = fmt.Sprintf("checked in, mood %d/%d", d.Mood, constants.MaxMood)
	case d.Submitted:
		status = "planned"
	}
	b.WriteString(dimStyle.Render("Status: " + status))
	b.WriteString("\n\n")

	for i, a := range d.Anchors {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		mark := "[ ]"
		text := a
		if d.Completed[i] {
			mark = "[x]"
			text = doneStyle.Render(a)
		}
		if a == "" {
			text = dimStyle.Render("(empty)")
		}
		fmt.Fprintf(&b, "%s%s %d. %s\n", prefix, mark, i+1, text)
	}

	if d.Explore != "" {
		fmt.Fprintf(&b, "\n%s %s\n", titleStyle.Render("Explore:"), d.Explore)
	}
	if d.CheckedIn && d.Journal != "" {
		fmt.Fprintf(&b, "\n%s\n%s\n", titleStyle.Render("Journal:"), d.Journal)
	}
	if !d.Submitted {
		b.WriteString("\n" + dimStyle.Render("Press 'p' to plan this day."))
	}
	return docStyle.Render(b.String())
}

func (m Model) viewWeekly() string {
	now := m.now()
	header := "This week"
	switch m.weekReq.Range {
	case summary.LastWeek:
		header = "Last week"
	case summary.Custom:
		header = "Custom"
	}
	if start, end, ok := m.weekReq.Bounds(now); ok {
		header = fmt.Sprintf("%s  %s → %s", header, utils.FormatLocalDate(start), utils.FormatLocalDate(end))
	}

	points := summary.Aggregate(m.tracker.Entries(), m.weekReq, now)
	t := summary.Summarize(points)
	totals := fmt.Sprintf("Days: %d  Tasks: %d/%d  Check-ins: %d", t.Days, t.TasksDone, t.TasksPlanned, t.CheckIns)
	if t.CheckIns > 0 {
		totals += fmt.Sprintf("  Avg mood: %.1f", t.AverageMood)
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(header),
		dimStyle.Render(totals),
		m.weekList.View(),
	))
}

func (m Model) viewCalendar() string {
	cells := m.month.Project(m.tracker.Entries())
	grid := renderMonth(m.month, cells, m.today(), m.selected)

	detail := dimStyle.Render(m.selected + ": no entry")
	if e, ok := m.tracker.Entry(m.selected); ok {
		detail = fmt.Sprintf("%s: %d/%d done", m.selected, e.CompletedCount(), len(e.Anchors))
		if e.CheckedIn() {
			detail += fmt.Sprintf(", mood %d/%d", e.Mood, constants.MaxMood)
		}
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, grid, RenderLegend(), "", detail))
}
