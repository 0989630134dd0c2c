// Package calendar projects the history log onto a Sunday-first month grid.
package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/tinywins/internal/models"
	"github.com/julianstephens/tinywins/internal/utils"
)

// Project returns one cell per grid square for the month: FirstWeekdayOfMonth
// empty leading cells followed by days 1..DaysInMonth. No trailing padding.
func Project(entries []models.Entry, year, monthIndex int) []models.CalendarCell {
	byDate := make(map[string]models.Entry, len(entries))
	for _, e := range entries {
		if _, dup := byDate[e.Date]; !dup {
			byDate[e.Date] = e
		}
	}

	lead := utils.FirstWeekdayOfMonth(year, monthIndex)
	days := utils.DaysInMonth(year, monthIndex)
	cells := make([]models.CalendarCell, 0, lead+days)

	for i := 0; i < lead; i++ {
		cells = append(cells, models.CalendarCell{Empty: true})
	}

	for day := 1; day <= days; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, monthIndex+1, day)
		cell := models.CalendarCell{Day: day, Date: date}
		if e, ok := byDate[date]; ok {
			cell.HasEntry = true
			cell.IsCheckedIn = e.CheckedIn()
			cell.Mood = e.Mood
			cell.Anchors = e.ValidAnchors()
			cell.TasksCompleted = e.CompletedCount()
			cell.NumberOfTasks = len(cell.Anchors)
		}
		cells = append(cells, cell)
	}
	return cells
}

// Weeks splits a projected grid into rows of seven. The last row may be short.
func Weeks(cells []models.CalendarCell) [][]models.CalendarCell {
	var rows [][]models.CalendarCell
	for i := 0; i < len(cells); i += 7 {
		end := i + 7
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[i:end])
	}
	return rows
}

// Mood buckets used to colour calendar days
type Bucket string

const (
	BucketNone    Bucket = "none"
	BucketPlanned Bucket = "planned"
	BucketHappy   Bucket = "happy"
	BucketNeutral Bucket = "neutral"
	BucketUnhappy Bucket = "unhappy"
)

// MoodBucket classifies a cell: no entry, planned without check-in, or by mood.
func MoodBucket(c models.CalendarCell) Bucket {
	switch {
	case !c.HasEntry:
		return BucketNone
	case !c.IsCheckedIn:
		return BucketPlanned
	case c.Mood >= 4:
		return BucketHappy
	case c.Mood >= 3:
		return BucketNeutral
	default:
		return BucketUnhappy
	}
}

// Month is a year and zero-based month index.
type Month struct {
	Year  int
	Index int
}

// Current returns the month containing now.
func Current(now time.Time) Month {
	return Month{Year: now.Year(), Index: int(now.Month()) - 1}
}

// ParseMonth parses YYYY-MM.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return Month{Year: t.Year(), Index: int(t.Month()) - 1}, nil
}

func (m Month) Prev() Month {
	if m.Index == 0 {
		return Month{Year: m.Year - 1, Index: 11}
	}
	return Month{Year: m.Year, Index: m.Index - 1}
}

func (m Month) Next() Month {
	if m.Index == 11 {
		return Month{Year: m.Year + 1, Index: 0}
	}
	return Month{Year: m.Year, Index: m.Index + 1}
}

// String renders the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Index+1)
}

// Title renders the month as "March 2024".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", time.Month(m.Index+1), m.Year)
}

// Project projects entries onto this month.
func (m Month) Project(entries []models.Entry) []models.CalendarCell {
	return Project(entries, m.Year, m.Index)
}
