package days

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tinywins/internal/cli"
	"github.com/julianstephens/tinywins/internal/constants"
	apperrors "github.com/julianstephens/tinywins/internal/errors"
)

// DayCmd groups the commands that act on one day's entry.
type DayCmd struct {
	Show    DayShowCmd    `cmd:"" help:"Show a day's plan and check-in." default:"withargs"`
	Plan    DayPlanCmd    `cmd:"" help:"Set the anchors for a day and submit the plan."`
	Edit    DayEditCmd    `cmd:"" help:"Reopen a submitted plan for editing."`
	Done    DayDoneCmd    `cmd:"" help:"Toggle completion of an anchor."`
	Checkin DayCheckinCmd `cmd:"" help:"Record (or undo) the mood and journal check-in."`
	Fresh   DayFreshCmd   `cmd:"" help:"Start a fresh check-in on the draft."`
	Reset   DayResetCmd   `cmd:"" help:"Reset the working draft to defaults."`
}

// selectDay binds the draft to date, defaulting to today.
func selectDay(ctx *cli.Context, date string) error {
	if date == "" || date == "today" {
		date = ctx.Today()
	}
	if err := ctx.Tracker.SelectDate(date); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	return nil
}

func draftMarkdown(ctx *cli.Context) string {
	d := ctx.Tracker.Draft()
	if e, ok := ctx.Tracker.Entry(d.Date); ok {
		return cli.DayMarkdown(d, &e)
	}
	return cli.DayMarkdown(d, nil)
}

type DayShowCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD). Defaults to the draft's date."`
	Raw  bool   `help:"Print markdown without terminal styling."`
}

func (c *DayShowCmd) Run(ctx *cli.Context) error {
	if c.Date != "" {
		if err := selectDay(ctx, c.Date); err != nil {
			return err
		}
	}
	md := draftMarkdown(ctx)
	if c.Raw {
		ctx.Printf("%s", md)
	} else {
		ctx.Printf("%s", cli.RenderMarkdown(md, 80))
	}
	ctx.Println(cli.LastSavedText(ctx.Tracker.LastSaved(), ctx.Now()))
	return nil
}

type DayPlanCmd struct {
	Date    string   `arg:"" optional:"" help:"Date (YYYY-MM-DD). Defaults to today."`
	Anchor  []string `short:"a" help:"Anchor task (repeat up to 3 times)."`
	Explore string   `short:"e" help:"Exploration note."`
}

func (c *DayPlanCmd) Run(ctx *cli.Context) error {
	if len(c.Anchor) > constants.AnchorSlots {
		return fmt.Errorf("at most %d anchors are allowed, got %d", constants.AnchorSlots, len(c.Anchor))
	}
	if err := selectDay(ctx, c.Date); err != nil {
		return err
	}
	for i := 0; i < constants.AnchorSlots; i++ {
		text := ""
		if i < len(c.Anchor) {
			text = c.Anchor[i]
		}
		ctx.Tracker.EditAnchor(i, text)
	}
	ctx.Tracker.EditExplore(c.Explore)
	prev, hadEntry := ctx.Tracker.Entry(ctx.Tracker.Draft().Date)
	ctx.Tracker.Submit()

	d := ctx.Tracker.Draft()
	ctx.Printf("✓ Plan submitted for %s (%d anchors)\n", d.Date, len(d.ValidAnchors()))
	if hadEntry && prev.CheckedIn() {
		ctx.Printf("⚠ The previous check-in for %s was cleared\n", d.Date)
	}
	return nil
}

type DayEditCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *DayEditCmd) Run(ctx *cli.Context) error {
	date := c.Date
	if date == "" {
		date = ctx.Today()
	}
	if err := ctx.Tracker.LoadForEdit(date); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("no plan submitted for %s", date)
		}
		return err
	}
	ctx.Tracker.EditPlan()
	ctx.Printf("Editing plan for %s. Run 'tinywins day plan %s -a ...' to resubmit.\n", date, date)
	ctx.Printf("%s", cli.RenderMarkdown(draftMarkdown(ctx), 80))
	return nil
}

type DayDoneCmd struct {
	Date  string `arg:"" help:"Date (YYYY-MM-DD) or 'today'."`
	Index int    `arg:"" help:"Anchor number (1-3)."`
}

func (c *DayDoneCmd) Run(ctx *cli.Context) error {
	if c.Index < 1 || c.Index > constants.AnchorSlots {
		return fmt.Errorf("anchor number must be between 1 and %d", constants.AnchorSlots)
	}
	if err := selectDay(ctx, c.Date); err != nil {
		return err
	}
	d := ctx.Tracker.Draft()
	if strings.TrimSpace(d.Anchors[c.Index-1]) == "" {
		return fmt.Errorf("anchor %d is empty on %s", c.Index, d.Date)
	}

	ctx.Tracker.ToggleCompletion(c.Index - 1)

	d = ctx.Tracker.Draft()
	state := "not done"
	if d.Completed[c.Index-1] {
		state = "done"
	}
	ctx.Printf("✓ %q marked %s\n", d.Anchors[c.Index-1], state)
	if !d.Submitted {
		ctx.Println("  (plan not submitted yet; the change lives in the draft only)")
	}
	return nil
}

type DayCheckinCmd struct {
	Date    string `arg:"" optional:"" help:"Date (YYYY-MM-DD). Defaults to today."`
	Journal string `short:"j" help:"Journal note."`
	Mood    int    `short:"m" default:"3" help:"Mood from 1 to 5."`
	Undo    bool   `help:"Clear the existing check-in instead."`
}

func (c *DayCheckinCmd) Run(ctx *cli.Context) error {
	if err := selectDay(ctx, c.Date); err != nil {
		return err
	}
	d := ctx.Tracker.Draft()
	if !d.Submitted {
		return fmt.Errorf("no plan submitted for %s; run 'tinywins day plan' first", d.Date)
	}

	if c.Undo {
		if !d.CheckedIn {
			return fmt.Errorf("%s has no check-in to undo", d.Date)
		}
		ctx.Tracker.ToggleCheckIn()
		ctx.Printf("✓ Check-in cleared for %s\n", d.Date)
		return nil
	}

	if c.Mood < constants.MinMood || c.Mood > constants.MaxMood {
		return fmt.Errorf("mood must be between %d and %d", constants.MinMood, constants.MaxMood)
	}
	if d.CheckedIn {
		ctx.Tracker.StartFreshCheckIn()
	}
	if err := ctx.Tracker.SetMood(c.Mood); err != nil {
		return err
	}
	ctx.Tracker.EditJournal(c.Journal)
	ctx.Tracker.ToggleCheckIn()
	ctx.Printf("✓ Checked in for %s (mood %d/%d)\n", d.Date, c.Mood, constants.MaxMood)
	return nil
}

type DayFreshCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *DayFreshCmd) Run(ctx *cli.Context) error {
	if err := selectDay(ctx, c.Date); err != nil {
		return err
	}
	ctx.Tracker.StartFreshCheckIn()
	ctx.Printf("✓ Fresh check-in started for %s\n", ctx.Tracker.Draft().Date)
	return nil
}

type DayResetCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD). Defaults to the draft's date."`
}

func (c *DayResetCmd) Run(ctx *cli.Context) error {
	if c.Date != "" {
		if err := selectDay(ctx, c.Date); err != nil {
			return err
		}
	}
	ctx.Tracker.Reset()
	ctx.Printf("✓ Draft reset for %s\n", ctx.Tracker.Draft().Date)
	return nil
}
