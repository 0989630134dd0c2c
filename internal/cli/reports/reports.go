package reports

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tinywins/internal/calendar"
	"github.com/julianstephens/tinywins/internal/cli"
	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/export"
	"github.com/julianstephens/tinywins/internal/models"
	"github.com/julianstephens/tinywins/internal/summary"
	"github.com/julianstephens/tinywins/internal/tui"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// WeekCmd prints the range summary for this week, last week or a custom window.
type WeekCmd struct {
	Last bool   `help:"Summarize last week instead of this week."`
	From string `help:"Custom range start (YYYY-MM-DD)."`
	To   string `help:"Custom range end (YYYY-MM-DD)."`
}

func (c *WeekCmd) request() (summary.Request, error) {
	switch {
	case c.From != "" || c.To != "":
		if c.From == "" || c.To == "" {
			return summary.Request{}, fmt.Errorf("--from and --to must be given together")
		}
		if c.Last {
			return summary.Request{}, fmt.Errorf("--last cannot be combined with --from/--to")
		}
		return summary.Request{Range: summary.Custom, Start: c.From, End: c.To}, nil
	case c.Last:
		return summary.Request{Range: summary.LastWeek}, nil
	default:
		return summary.Request{Range: summary.ThisWeek}, nil
	}
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	req, err := c.request()
	if err != nil {
		return err
	}
	now := ctx.Now()
	if req.Range == summary.Custom {
		if _, _, ok := req.Bounds(now); !ok {
			return fmt.Errorf("invalid custom range %s..%s", req.Start, req.End)
		}
	}

	points := summary.Aggregate(ctx.Tracker.Entries(), req, now)
	totals := summary.Summarize(points)
	start, end, _ := req.Bounds(now)

	ctx.Println(headerStyle.Render(fmt.Sprintf("%s → %s", start.Format(constants.DateFormat), end.Format(constants.DateFormat))))
	ctx.Println()
	writePoints(ctx.Out, points)
	ctx.Println()
	ctx.Printf("Days: %d  Tasks: %d/%d  Check-ins: %d", totals.Days, totals.TasksDone, totals.TasksPlanned, totals.CheckIns)
	if totals.CheckIns > 0 {
		ctx.Printf("  Avg mood: %.1f", totals.AverageMood)
	}
	ctx.Println()
	return nil
}

func writePoints(w io.Writer, points []models.ChartPoint) {
	if len(points) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No entries in this range."))
		return
	}
	for _, p := range points {
		mood := "-"
		if p.Mood > 0 {
			mood = fmt.Sprintf("%d/%d", p.Mood, constants.MaxMood)
		}
		fmt.Fprintf(w, "  %s  %s  mood %-4s %s\n",
			p.Date, bar(p.Completed, len(p.Anchors)), mood, dimStyle.Render(strings.Join(p.Anchors, ", ")))
	}
}

// bar draws done/planned as filled and empty boxes.
func bar(done, planned int) string {
	if planned < done {
		planned = done
	}
	return strings.Repeat("■", done) + strings.Repeat("□", planned-done) + strings.Repeat(" ", max(0, constants.AnchorSlots-planned))
}

// CalendarCmd prints a month grid.
type CalendarCmd struct {
	Month string `help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	month := calendar.Current(ctx.Now())
	if c.Month != "" {
		m, err := calendar.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		month = m
	}
	cells := month.Project(ctx.Tracker.Entries())
	ctx.Println(tui.RenderMonth(month, cells, ctx.Today()))
	ctx.Println(tui.RenderLegend())
	return nil
}

// ExportCmd writes the history log as JSON or YAML.
type ExportCmd struct {
	Format string `short:"f" default:"json" enum:"json,yaml,yml" help:"Output format (json, yaml)."`
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
	Range  string `help:"Limit to thisWeek, lastWeek or custom."`
	From   string `help:"Custom range start (YYYY-MM-DD)."`
	To     string `help:"Custom range end (YYYY-MM-DD)."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	req := summary.Request{}
	if c.Range != "" {
		rng, err := summary.ParseRange(c.Range)
		if err != nil {
			return err
		}
		req = summary.Request{Range: rng, Start: c.From, End: c.To}
	}

	doc := export.Build(ctx.Tracker.Entries(), req, ctx.Now())

	if c.Output == "" {
		return export.Write(ctx.Out, doc, format)
	}
	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Output, err)
	}
	if err := export.Write(f, doc, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d entries to %s\n", len(doc.Points), c.Output)
	return nil
}
