package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/models"
	"github.com/julianstephens/tinywins/internal/tracker"
	"github.com/julianstephens/tinywins/internal/utils"
)

// DayMarkdown renders the draft, and the committed entry when there is one,
// as a markdown document.
func DayMarkdown(d tracker.Draft, entry *models.Entry) string {
	var b strings.Builder

	title := d.Date
	if t, err := utils.ParseLocalDate(d.Date); err == nil {
		title = t.Format("Monday, January 2 2006")
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	status := "draft"
	switch {
	case entry == nil && d.Submitted:
		status = "submitted"
	case entry != nil && entry.CheckedIn():
		status = fmt.Sprintf("checked in, mood %d/%d", entry.Mood, constants.MaxMood)
	case entry != nil:
		status = "planned"
	}
	fmt.Fprintf(&b, "**Status:** %s\n\n", status)

	b.WriteString("## Anchors\n\n")
	anchors := 0
	for i, a := range d.Anchors {
		if strings.TrimSpace(a) == "" {
			continue
		}
		anchors++
		mark := " "
		if i < len(d.Completed) && d.Completed[i] {
			mark = "x"
		}
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, mark, a)
	}
	if anchors == 0 {
		b.WriteString("_No anchors yet._\n")
	}
	b.WriteString("\n")

	if strings.TrimSpace(d.Explore) != "" {
		fmt.Fprintf(&b, "## Explore\n\n%s\n\n", d.Explore)
	}

	if entry != nil && entry.CheckedIn() {
		b.WriteString("## Journal\n\n")
		if strings.TrimSpace(entry.Journal) == "" {
			b.WriteString("_No journal._\n")
		} else {
			fmt.Fprintf(&b, "%s\n", entry.Journal)
		}
	}
	return b.String()
}

// RenderMarkdown renders md for a terminal of width columns. The plain
// markdown is returned if rendering fails.
func RenderMarkdown(md string, width int) string {
	if width < 20 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// LastSavedText describes a lastSaved stamp relative to now.
func LastSavedText(stamp string, now time.Time) string {
	if stamp == "" {
		return "never saved"
	}
	t, err := time.Parse(constants.TimestampFormat, stamp)
	if err != nil {
		return "saved " + stamp
	}
	return "saved " + humanize.RelTime(t, now, "ago", "from now")
}
