// Package summary turns the history log into chronological points for a date window.
package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/tinywins/internal/models"
	"github.com/julianstephens/tinywins/internal/utils"
)

// Range selects the window to aggregate over.
type Range string

const (
	ThisWeek Range = "thisWeek"
	LastWeek Range = "lastWeek"
	Custom   Range = "custom"
)

// ParseRange validates a range name.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case ThisWeek, LastWeek, Custom:
		return Range(s), nil
	case "":
		return ThisWeek, nil
	}
	return "", fmt.Errorf("unknown range %q, expected thisWeek, lastWeek or custom", s)
}

// Request describes one aggregation. Start and End are YYYY-MM-DD and only
// used for Custom.
type Request struct {
	Range Range
	Start string
	End   string
}

// Bounds resolves the request to an inclusive window in now's location. ok is
// false when no filtering applies.
func (r Request) Bounds(now time.Time) (start, end time.Time, ok bool) {
	switch r.Range {
	case LastWeek:
		start, end = utils.WeekRange(now, -1)
		return start, end, true
	case Custom:
		s, errS := utils.ParseLocalDateIn(r.Start, now.Location())
		e, errE := utils.ParseLocalDateIn(r.End, now.Location())
		if errS != nil || errE != nil {
			return time.Time{}, time.Time{}, false
		}
		return utils.DayStart(s), utils.DayEnd(e), true
	default:
		start, end = utils.WeekRange(now, 0)
		return start, end, true
	}
}

// Aggregate filters entries to the requested window and returns them in
// ascending date order. Entry dates are compared at midday so a date on either
// boundary is included.
func Aggregate(entries []models.Entry, req Request, now time.Time) []models.ChartPoint {
	start, end, filter := req.Bounds(now)
	loc := now.Location()

	type dated struct {
		at    time.Time
		entry models.Entry
	}
	var picked []dated
	for _, e := range entries {
		d, err := utils.ParseLocalDateIn(e.Date, loc)
		if err != nil {
			if filter {
				continue
			}
			picked = append(picked, dated{entry: e})
			continue
		}
		mid := utils.Midday(d)
		if filter && (mid.Before(start) || mid.After(end)) {
			continue
		}
		picked = append(picked, dated{at: mid, entry: e})
	}

	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].at.Before(picked[j].at)
	})

	points := make([]models.ChartPoint, 0, len(picked))
	for _, p := range picked {
		points = append(points, toPoint(p.entry))
	}
	return points
}

func toPoint(e models.Entry) models.ChartPoint {
	return models.ChartPoint{
		Date:          e.Date,
		Completed:     e.CompletedCount(),
		Mood:          e.Mood,
		Anchors:       e.ValidAnchors(),
		Explore:       e.Explore,
		Journal:       e.Journal,
		CompletedList: append([]bool{}, e.Completed...),
	}
}

// Series reduces points to the shape chart renderers consume.
func Series(points []models.ChartPoint) []models.ChartDatum {
	out := make([]models.ChartDatum, len(points))
	for i, p := range points {
		out[i] = models.ChartDatum{Date: p.Date, Completed: p.Completed, Mood: p.Mood}
	}
	return out
}

// Summarize totals a set of points. AverageMood only counts checked-in days.
func Summarize(points []models.ChartPoint) models.Totals {
	var t models.Totals
	moodSum := 0
	for _, p := range points {
		t.Days++
		t.TasksDone += p.Completed
		t.TasksPlanned += len(p.Anchors)
		if p.Mood > 0 {
			t.CheckIns++
			moodSum += p.Mood
		}
	}
	if t.CheckIns > 0 {
		t.AverageMood = float64(moodSum) / float64(t.CheckIns)
	}
	return t
}
