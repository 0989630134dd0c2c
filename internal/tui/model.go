package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/tinywins/internal/calendar"
	"github.com/julianstephens/tinywins/internal/summary"
	"github.com/julianstephens/tinywins/internal/tracker"
	"github.com/julianstephens/tinywins/internal/tui/components/weeklist"
	"github.com/julianstephens/tinywins/internal/utils"
)

type SessionState int

const (
	StateDaily SessionState = iota
	StateWeekly
	StateCalendar
	StateEditing
)

const tabCount = 3

var tabTitles = []string{"Daily", "Weekly", "Calendar"}

type formKind int

const (
	formNone formKind = iota
	formPlan
	formCheckIn
	formDate
	formRange
)

type PlanFormModel struct {
	Anchors [3]string
	Explore string
}

type CheckInFormModel struct {
	Journal string
	Mood    int
}

type DateFormModel struct {
	Date string
}

type RangeFormModel struct {
	Range summary.Range
	Start string
	End   string
}

// statusTickMsg refreshes the relative "last saved" text.
type statusTickMsg time.Time

const statusTickInterval = 15 * time.Second

type Model struct {
	tracker  *tracker.Tracker
	clock    clockwork.Clock
	loc      *time.Location
	state    SessionState
	previous SessionState
	keys     KeyMap
	help     help.Model

	// Daily
	cursor int

	// Weekly
	weekList weeklist.Model
	weekReq  summary.Request

	// Calendar
	month    calendar.Month
	selected string

	form      *huh.Form
	kind      formKind
	planForm  *PlanFormModel
	checkForm *CheckInFormModel
	dateForm  *DateFormModel
	rangeForm *RangeFormModel

	message  string
	isError  bool
	quitting bool
	width    int
	height   int
}

// NewModel returns the interactive model over tr. Dates are resolved in loc.
func NewModel(tr *tracker.Tracker, clock clockwork.Clock, loc *time.Location) Model {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if loc == nil {
		loc = time.Local
	}
	now := clock.Now().In(loc)
	m := Model{
		tracker:  tr,
		clock:    clock,
		loc:      loc,
		state:    StateDaily,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		weekReq:  summary.Request{Range: summary.ThisWeek},
		month:    calendar.Current(now),
		selected: tr.Draft().Date,
		weekList: weeklist.New(nil, 80, 20),
	}
	if t, err := utils.ParseLocalDate(m.selected); err == nil {
		m.month = calendar.Month{Year: t.Year(), Index: int(t.Month()) - 1}
	}
	m.refreshWeek()
	return m
}

func (m Model) now() time.Time {
	return m.clock.Now().In(m.loc)
}

func (m Model) today() string {
	return utils.Today(m.clock.Now(), m.loc)
}

// State returns the active view.
func (m Model) State() SessionState {
	return m.state
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateDaily:
		keys = append(keys, m.keys.Plan, m.keys.Toggle, m.keys.CheckIn)
	case StateWeekly:
		keys = append(keys, m.keys.Range, m.keys.Enter)
	case StateCalendar:
		keys = append(keys, m.keys.PrevMonth, m.keys.NextMonth, m.keys.Enter)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateDaily:
		actions = []key.Binding{
			m.keys.PrevDay, m.keys.NextDay, m.keys.Today, m.keys.GoTo,
			m.keys.Plan, m.keys.EditPlan, m.keys.Toggle,
			m.keys.CheckIn, m.keys.Undo, m.keys.Fresh, m.keys.Reset,
		}
	case StateWeekly:
		actions = []key.Binding{m.keys.Range}
	case StateCalendar:
		actions = []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.Today}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return statusTick()
}

func statusTick() tea.Cmd {
	return tea.Tick(statusTickInterval, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

func (m *Model) refreshWeek() {
	m.weekList.SetPoints(summary.Aggregate(m.tracker.Entries(), m.weekReq, m.now()))
}

func (m *Model) setMessage(msg string) {
	m.message = msg
	m.isError = false
}

func (m *Model) setError(err error) {
	m.message = err.Error()
	m.isError = true
}
