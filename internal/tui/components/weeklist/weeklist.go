package weeklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/models"
)

// OpenDayMsg asks the parent to load Date in the daily view.
type OpenDayMsg struct {
	Date string
}

type Item struct {
	Point models.ChartPoint
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  %d/%d done", i.Point.Date, i.Point.Completed, len(i.Point.Anchors))
}

func (i Item) Description() string {
	desc := strings.Join(i.Point.Anchors, ", ")
	if desc == "" {
		desc = "no anchors"
	}
	if i.Point.Mood > 0 {
		desc += fmt.Sprintf(" | mood %d/%d", i.Point.Mood, constants.MaxMood)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Point.Date }

type KeyMap struct {
	Open key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open day"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(points []models.ChartPoint, width, height int) Model {
	l := list.New(toItems(points), list.NewDefaultDelegate(), width, height)
	l.Title = "Week"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open}
	}

	return Model{list: l, keys: keys}
}

func toItems(points []models.ChartPoint) []list.Item {
	items := make([]list.Item, len(points))
	for i, p := range points {
		items[i] = Item{Point: p}
	}
	return items
}

func (m *Model) SetPoints(points []models.ChartPoint) {
	m.list.SetItems(toItems(points))
}

// Len returns the number of points shown.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Selected returns the highlighted point.
func (m Model) Selected() (models.ChartPoint, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Point, true
	}
	return models.ChartPoint{}, false
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Open) {
		if p, ok := m.Selected(); ok {
			return m, func() tea.Msg { return OpenDayMsg{Date: p.Date} }
		}
		return m, nil
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No entries in this range.\n  Press 'w' to pick another."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
