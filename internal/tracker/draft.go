package tracker

import (
	"strings"

	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/models"
)

// Draft is the in-progress record for the selected date
type Draft struct {
	Date      string
	Anchors   []string
	Explore   string
	Completed []bool
	Journal   string
	Mood      int
	Submitted bool
	CheckedIn bool
}

// NewDraft returns a blank draft bound to date.
func NewDraft(date string) Draft {
	return Draft{
		Date:      date,
		Anchors:   make([]string, constants.AnchorSlots),
		Completed: make([]bool, constants.AnchorSlots),
		Mood:      constants.DefaultMood,
	}
}

// draftFromEntry loads a committed entry back into editable slots.
func draftFromEntry(e models.Entry) Draft {
	mood := e.Mood
	if mood == 0 {
		mood = constants.DefaultMood
	}
	return Draft{
		Date:      e.Date,
		Anchors:   padStrings(e.Anchors, constants.AnchorSlots),
		Explore:   e.Explore,
		Completed: padBools(e.Completed, constants.AnchorSlots),
		Journal:   e.Journal,
		Mood:      mood,
		Submitted: true,
		CheckedIn: e.Mood > 0,
	}
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	c := d
	c.Anchors = append([]string(nil), d.Anchors...)
	c.Completed = append([]bool(nil), d.Completed...)
	return c
}

// ValidAnchors returns the non-blank anchor slots.
func (d Draft) ValidAnchors() []string {
	return models.NonBlank(d.Anchors)
}

// compact moves non-blank anchors to the front, carrying their completion
// flags with them, so committed Anchors[i] pairs with Completed[i].
func (d *Draft) compact() {
	anchors := make([]string, 0, constants.AnchorSlots)
	completed := make([]bool, 0, constants.AnchorSlots)
	for i, a := range d.Anchors {
		if strings.TrimSpace(a) == "" {
			continue
		}
		anchors = append(anchors, a)
		completed = append(completed, i < len(d.Completed) && d.Completed[i])
	}
	d.Anchors = padStrings(anchors, constants.AnchorSlots)
	d.Completed = padBools(completed, constants.AnchorSlots)
}

// commit builds the entry a submit writes. Check-in fields start empty.
func (d Draft) commit() models.Entry {
	return models.Entry{
		Date:      d.Date,
		Anchors:   d.ValidAnchors(),
		Explore:   d.Explore,
		Completed: append([]bool(nil), d.Completed...),
		Journal:   "",
		Mood:      0,
	}
}

func padStrings(values []string, n int) []string {
	out := make([]string, n)
	copy(out, values)
	return out
}

func padBools(values []bool, n int) []bool {
	out := make([]bool, n)
	copy(out, values)
	return out
}
