package tracker

import (
	"fmt"

	apperrors "github.com/julianstephens/tinywins/internal/errors"
	"github.com/julianstephens/tinywins/internal/models"
)

// Fields selects the entry fields a merge replaces. Nil fields are left untouched.
type Fields struct {
	Completed []bool
	Journal   *string
	Mood      *int
}

// History is the committed day log, newest submission first. At most one
// entry exists per date. It does no locking of its own.
type History struct {
	entries []models.Entry
}

// NewHistory builds a log from entries, keeping the first occurrence of each date.
func NewHistory(entries []models.Entry) *History {
	h := &History{entries: make([]models.Entry, 0, len(entries))}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Date] {
			continue
		}
		seen[e.Date] = true
		h.entries = append(h.entries, e.Clone())
	}
	return h
}

// Upsert replaces any entry for the same date and puts the new one first.
func (h *History) Upsert(entry models.Entry) {
	kept := make([]models.Entry, 0, len(h.entries)+1)
	kept = append(kept, entry.Clone())
	for _, e := range h.entries {
		if e.Date != entry.Date {
			kept = append(kept, e)
		}
	}
	h.entries = kept
}

// MergeFields overwrites the selected fields of the entry for date in place.
// It returns ErrNotFound when the log has no entry for that date.
func (h *History) MergeFields(date string, f Fields) error {
	for i := range h.entries {
		if h.entries[i].Date != date {
			continue
		}
		if f.Completed != nil {
			h.entries[i].Completed = append([]bool(nil), f.Completed...)
		}
		if f.Journal != nil {
			h.entries[i].Journal = *f.Journal
		}
		if f.Mood != nil {
			h.entries[i].Mood = *f.Mood
		}
		return nil
	}
	return fmt.Errorf("%w: %s", apperrors.ErrNotFound, date)
}

// FindByDate returns a copy of the entry for date.
func (h *History) FindByDate(date string) (models.Entry, bool) {
	for _, e := range h.entries {
		if e.Date == date {
			return e.Clone(), true
		}
	}
	return models.Entry{}, false
}

// Entries returns a deep copy of the log in its stored order.
func (h *History) Entries() []models.Entry {
	out := make([]models.Entry, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Clone()
	}
	return out
}

func (h *History) Len() int {
	return len(h.entries)
}
