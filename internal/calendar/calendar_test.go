package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tinywins/internal/models"
	"github.com/julianstephens/tinywins/internal/utils"
)

func TestProjectCompleteness(t *testing.T) {
	for year := 2023; year <= 2025; year++ {
		for month := 0; month < 12; month++ {
			cells := Project(nil, year, month)
			lead := utils.FirstWeekdayOfMonth(year, month)
			days := utils.DaysInMonth(year, month)

			require.Len(t, cells, lead+days, "%d-%02d", year, month+1)
			for i := 0; i < lead; i++ {
				assert.True(t, cells[i].Empty)
				assert.Empty(t, cells[i].Date)
			}
			for d := 1; d <= days; d++ {
				c := cells[lead+d-1]
				assert.False(t, c.Empty)
				assert.Equal(t, d, c.Day)
			}
		}
	}
}

func TestProjectFillsEntryCells(t *testing.T) {
	entries := []models.Entry{
		{Date: "2024-02-05", Anchors: []string{"Run", "", "Read"}, Completed: []bool{true, false, true}, Mood: 4, Journal: "nice"},
		{Date: "2024-02-06", Anchors: []string{"Write"}, Completed: []bool{false}},
		{Date: "2024-03-01", Anchors: []string{"elsewhere"}},
	}

	cells := Project(entries, 2024, 1)
	// February 2024 starts on Thursday
	require.Len(t, cells, 4+29)

	feb5 := cells[4+4]
	assert.Equal(t, models.CalendarCell{
		Day:            5,
		Date:           "2024-02-05",
		HasEntry:       true,
		IsCheckedIn:    true,
		Mood:           4,
		Anchors:        []string{"Run", "Read"},
		TasksCompleted: 2,
		NumberOfTasks:  2,
	}, feb5)

	feb6 := cells[4+5]
	assert.True(t, feb6.HasEntry)
	assert.False(t, feb6.IsCheckedIn)
	assert.Equal(t, 1, feb6.NumberOfTasks)

	feb7 := cells[4+6]
	assert.Equal(t, models.CalendarCell{Day: 7, Date: "2024-02-07"}, feb7)
}

func TestWeeks(t *testing.T) {
	cells := Project(nil, 2024, 1)
	rows := Weeks(cells)
	require.Len(t, rows, 5)
	assert.Len(t, rows[0], 7)
	assert.Len(t, rows[4], 5)
}

func TestMoodBucket(t *testing.T) {
	tests := []struct {
		cell models.CalendarCell
		want Bucket
	}{
		{models.CalendarCell{}, BucketNone},
		{models.CalendarCell{HasEntry: true}, BucketPlanned},
		{models.CalendarCell{HasEntry: true, IsCheckedIn: true, Mood: 5}, BucketHappy},
		{models.CalendarCell{HasEntry: true, IsCheckedIn: true, Mood: 4}, BucketHappy},
		{models.CalendarCell{HasEntry: true, IsCheckedIn: true, Mood: 3}, BucketNeutral},
		{models.CalendarCell{HasEntry: true, IsCheckedIn: true, Mood: 1}, BucketUnhappy},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MoodBucket(tt.cell))
	}
}

func TestMonthNavigation(t *testing.T) {
	jan := Month{Year: 2024, Index: 0}
	assert.Equal(t, Month{Year: 2023, Index: 11}, jan.Prev())
	assert.Equal(t, Month{Year: 2024, Index: 1}, jan.Next())

	dec := Month{Year: 2024, Index: 11}
	assert.Equal(t, Month{Year: 2025, Index: 0}, dec.Next())
	assert.Equal(t, "2024-12", dec.String())
	assert.Equal(t, "December 2024", dec.Title())

	assert.Equal(t, Month{Year: 2024, Index: 2}, Current(time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC)))
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-09")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2024, Index: 8}, m)

	_, err = ParseMonth("2024-13")
	assert.Error(t, err)
}
