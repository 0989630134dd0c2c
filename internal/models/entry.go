package models

import "strings"

// Entry is the committed record for one calendar day
type Entry struct {
	Date      string   `json:"date" yaml:"date"` // YYYY-MM-DD format
	Anchors   []string `json:"anchors" yaml:"anchors"`
	Explore   string   `json:"explore" yaml:"explore"`
	Completed []bool   `json:"completed" yaml:"completed"`
	Journal   string   `json:"journal" yaml:"journal"`
	Mood      int      `json:"mood" yaml:"mood"` // 0 means not checked in
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	c := e
	c.Anchors = append([]string(nil), e.Anchors...)
	c.Completed = append([]bool(nil), e.Completed...)
	if c.Anchors == nil {
		c.Anchors = []string{}
	}
	if c.Completed == nil {
		c.Completed = []bool{}
	}
	return c
}

// CheckedIn reports whether a mood check-in was recorded for the day.
func (e Entry) CheckedIn() bool {
	return e.Mood > 0
}

// ValidAnchors returns the anchors that contain more than whitespace.
func (e Entry) ValidAnchors() []string {
	return NonBlank(e.Anchors)
}

// CompletedCount counts the true completion flags.
func (e Entry) CompletedCount() int {
	return CountTrue(e.Completed)
}

// NonBlank filters out strings that are empty after trimming whitespace.
func NonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// CountTrue counts the true values in flags.
func CountTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
