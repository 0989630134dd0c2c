package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/summary"
	"github.com/julianstephens/tinywins/internal/utils"
)

func validDate(s string) error {
	if _, err := utils.ParseLocalDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a date as YYYY-MM-DD")
	}
	return nil
}

// NewPlanForm edits the three anchor slots and the explore note.
func NewPlanForm(fm *PlanFormModel) *huh.Form {
	fields := make([]huh.Field, 0, constants.AnchorSlots+1)
	for i := range fm.Anchors {
		fields = append(fields, huh.NewInput().
			Title(fmt.Sprintf("Anchor %d", i+1)).
			Value(&fm.Anchors[i]))
	}
	fields = append(fields, huh.NewText().
		Title("Explore").
		Description("Something to look into today").
		Value(&fm.Explore))
	return huh.NewForm(huh.NewGroup(fields...))
}

// NewCheckInForm collects the journal and mood.
func NewCheckInForm(fm *CheckInFormModel) *huh.Form {
	moods := make([]huh.Option[int], 0, constants.MaxMood)
	for i := constants.MinMood; i <= constants.MaxMood; i++ {
		moods = append(moods, huh.NewOption(fmt.Sprintf("%d %s", i, moodLabel(i)), i))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Journal").
				Value(&fm.Journal),
			huh.NewSelect[int]().
				Title("Mood").
				Options(moods...).
				Value(&fm.Mood),
		),
	)
}

func moodLabel(mood int) string {
	switch mood {
	case 1:
		return "rough"
	case 2:
		return "meh"
	case 3:
		return "okay"
	case 4:
		return "good"
	default:
		return "great"
	}
}

// NewDateForm asks for a day to jump to.
func NewDateForm(fm *DateFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Go to date").
				Placeholder(constants.DateFormat).
				Value(&fm.Date).
				Validate(validDate),
		),
	)
}

// NewRangeForm picks the weekly summary window. Start and End only apply to
// a custom range.
func NewRangeForm(fm *RangeFormModel) *huh.Form {
	custom := func(s string) error {
		if fm.Range != summary.Custom {
			return nil
		}
		return validDate(s)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[summary.Range]().
				Title("Range").
				Options(
					huh.NewOption("This week", summary.ThisWeek),
					huh.NewOption("Last week", summary.LastWeek),
					huh.NewOption("Custom", summary.Custom),
				).
				Value(&fm.Range),
			huh.NewInput().
				Title("Start").
				Description("Custom range only").
				Placeholder(constants.DateFormat).
				Value(&fm.Start).
				Validate(custom),
			huh.NewInput().
				Title("End").
				Description("Custom range only").
				Placeholder(constants.DateFormat).
				Value(&fm.End).
				Validate(custom),
		),
	)
}

func (m *Model) openForm(kind formKind, form *huh.Form) tea.Cmd {
	m.previous = m.state
	m.state = StateEditing
	m.kind = kind
	m.form = form
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.state = m.previous
	m.kind = formNone
	m.form = nil
}

func (m *Model) startPlan() tea.Cmd {
	d := m.tracker.Draft()
	fm := &PlanFormModel{Explore: d.Explore}
	copy(fm.Anchors[:], d.Anchors)
	m.planForm = fm
	return m.openForm(formPlan, NewPlanForm(fm))
}

func (m *Model) startCheckIn() tea.Cmd {
	d := m.tracker.Draft()
	if !d.Submitted {
		m.setError(fmt.Errorf("submit a plan for %s before checking in", d.Date))
		return nil
	}
	fm := &CheckInFormModel{Journal: d.Journal, Mood: d.Mood}
	m.checkForm = fm
	return m.openForm(formCheckIn, NewCheckInForm(fm))
}

func (m *Model) startDate() tea.Cmd {
	fm := &DateFormModel{Date: m.tracker.Draft().Date}
	m.dateForm = fm
	return m.openForm(formDate, NewDateForm(fm))
}

func (m *Model) startRange() tea.Cmd {
	fm := &RangeFormModel{Range: m.weekReq.Range, Start: m.weekReq.Start, End: m.weekReq.End}
	if fm.Range == "" {
		fm.Range = summary.ThisWeek
	}
	m.rangeForm = fm
	return m.openForm(formRange, NewRangeForm(fm))
}

// applyForm commits the completed form to the tracker.
func (m *Model) applyForm() {
	switch m.kind {
	case formPlan:
		m.applyPlan()
	case formCheckIn:
		m.applyCheckIn()
	case formDate:
		m.selectDate(strings.TrimSpace(m.dateForm.Date))
	case formRange:
		m.applyRange()
	}
}

func (m *Model) applyPlan() {
	fm := m.planForm
	for i, a := range fm.Anchors {
		m.tracker.EditAnchor(i, strings.TrimSpace(a))
	}
	m.tracker.EditExplore(strings.TrimSpace(fm.Explore))
	m.tracker.Submit()
	m.refreshWeek()
	d := m.tracker.Draft()
	m.setMessage(fmt.Sprintf("Plan submitted for %s", d.Date))
}

func (m *Model) applyCheckIn() {
	fm := m.checkForm
	if m.tracker.Draft().CheckedIn {
		m.tracker.StartFreshCheckIn()
	}
	if err := m.tracker.SetMood(fm.Mood); err != nil {
		m.setError(err)
		return
	}
	m.tracker.EditJournal(strings.TrimSpace(fm.Journal))
	m.tracker.ToggleCheckIn()
	m.refreshWeek()
	m.setMessage(fmt.Sprintf("Checked in with mood %d/%d", fm.Mood, constants.MaxMood))
}

func (m *Model) applyRange() {
	fm := m.rangeForm
	req := summary.Request{Range: fm.Range}
	if fm.Range == summary.Custom {
		req.Start = strings.TrimSpace(fm.Start)
		req.End = strings.TrimSpace(fm.End)
		if _, _, ok := req.Bounds(m.now()); !ok {
			m.setError(fmt.Errorf("invalid custom range %s..%s", req.Start, req.End))
			return
		}
	}
	m.weekReq = req
	m.refreshWeek()
	m.message = ""
}
