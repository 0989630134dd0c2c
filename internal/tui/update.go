package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tinywins/internal/calendar"
	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/tui/components/weeklist"
	"github.com/julianstephens/tinywins/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.state == StateEditing {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.closeForm()
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			m.applyForm()
			m.closeForm()
		case huh.StateAborted:
			m.closeForm()
		}
		return m, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.weekList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case statusTickMsg:
		return m, statusTick()

	case weeklist.OpenDayMsg:
		m.openDay(msg.Date)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.switchTab((int(m.state) + 1) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.switchTab((int(m.state) - 1 + tabCount) % tabCount)
			return m, nil
		}

		switch m.state {
		case StateDaily:
			return m.updateDaily(msg)
		case StateWeekly:
			return m.updateWeekly(msg)
		case StateCalendar:
			return m.updateCalendar(msg)
		}
	}

	return m, nil
}

func (m *Model) switchTab(i int) {
	m.state = SessionState(i)
	m.message = ""
	if m.state == StateWeekly {
		m.refreshWeek()
	}
}

func (m Model) updateDaily(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.tracker.Draft()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < constants.AnchorSlots-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if d.Anchors[m.cursor] == "" {
			m.setError(fmt.Errorf("anchor %d is empty", m.cursor+1))
			break
		}
		m.tracker.ToggleCompletion(m.cursor)
		m.message = ""
	case key.Matches(msg, m.keys.PrevDay):
		m.shiftDay(d.Date, -1)
	case key.Matches(msg, m.keys.NextDay):
		m.shiftDay(d.Date, 1)
	case key.Matches(msg, m.keys.Today):
		m.selectDate(m.today())
	case key.Matches(msg, m.keys.GoTo):
		return m, m.startDate()
	case key.Matches(msg, m.keys.Plan):
		if d.Submitted {
			m.setError(fmt.Errorf("plan already submitted, press 'e' to edit it"))
			break
		}
		return m, m.startPlan()
	case key.Matches(msg, m.keys.EditPlan):
		if !d.Submitted {
			return m, m.startPlan()
		}
		m.tracker.EditPlan()
		return m, m.startPlan()
	case key.Matches(msg, m.keys.CheckIn):
		return m, m.startCheckIn()
	case key.Matches(msg, m.keys.Undo):
		if !d.CheckedIn {
			m.setError(fmt.Errorf("%s has no check-in to undo", d.Date))
			break
		}
		m.tracker.ToggleCheckIn()
		m.setMessage("Check-in undone")
	case key.Matches(msg, m.keys.Fresh):
		m.tracker.StartFreshCheckIn()
		m.setMessage("Started a fresh check-in")
	case key.Matches(msg, m.keys.Reset):
		m.tracker.Reset()
		m.cursor = 0
		m.setMessage("Draft reset")
	}
	return m, nil
}

func (m Model) updateWeekly(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Range) {
		return m, m.startRange()
	}
	var cmd tea.Cmd
	m.weekList, cmd = m.weekList.Update(msg)
	return m, cmd
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-7)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(7)
	case key.Matches(msg, m.keys.PrevMonth):
		m.setMonth(m.month.Prev())
	case key.Matches(msg, m.keys.NextMonth):
		m.setMonth(m.month.Next())
	case key.Matches(msg, m.keys.Today):
		m.selected = m.today()
		m.month = calendar.Current(m.now())
	case key.Matches(msg, m.keys.Enter):
		m.openDay(m.selected)
	}
	return m, nil
}

// selectDate binds the draft to date and keeps the calendar in step.
func (m *Model) selectDate(date string) {
	if err := m.tracker.SelectDate(date); err != nil {
		m.setError(err)
		return
	}
	m.cursor = 0
	m.message = ""
	m.selected = date
	if t, err := utils.ParseLocalDate(date); err == nil {
		m.month = calendar.Month{Year: t.Year(), Index: int(t.Month()) - 1}
	}
}

// openDay shows date in the daily view, loading its entry when one exists.
func (m *Model) openDay(date string) {
	if _, ok := m.tracker.Entry(date); ok {
		if err := m.tracker.LoadForEdit(date); err != nil {
			m.setError(err)
			return
		}
		m.selected = date
		m.cursor = 0
		m.message = ""
	} else {
		m.selectDate(date)
	}
	m.state = StateDaily
}

func (m *Model) shiftDay(date string, days int) {
	t, err := utils.ParseLocalDate(date)
	if err != nil {
		m.setError(err)
		return
	}
	m.selectDate(utils.FormatLocalDate(t.AddDate(0, 0, days)))
}

// moveSelection moves the calendar cursor by days, following it into
// neighbouring months.
func (m *Model) moveSelection(days int) {
	t, err := utils.ParseLocalDate(m.selected)
	if err != nil {
		t = time.Date(m.month.Year, time.Month(m.month.Index+1), 1, 12, 0, 0, 0, time.Local)
	}
	t = t.AddDate(0, 0, days)
	m.selected = utils.FormatLocalDate(t)
	m.month = calendar.Month{Year: t.Year(), Index: int(t.Month()) - 1}
}

// setMonth changes the shown month and clamps the cursor into it.
func (m *Model) setMonth(month calendar.Month) {
	day := 1
	if t, err := utils.ParseLocalDate(m.selected); err == nil {
		day = min(t.Day(), utils.DaysInMonth(month.Year, month.Index))
	}
	m.month = month
	m.selected = fmt.Sprintf("%04d-%02d-%02d", month.Year, month.Index+1, day)
}
