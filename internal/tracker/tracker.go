package tracker

import (
	"errors"
	"fmt"
	"sync"

	"github.com/julianstephens/tinywins/internal/constants"
	apperrors "github.com/julianstephens/tinywins/internal/errors"
	"github.com/julianstephens/tinywins/internal/logger"
	"github.com/julianstephens/tinywins/internal/models"
	"github.com/julianstephens/tinywins/internal/utils"
)

// Persister schedules writes of the tracker state.
// RequestSave is debounced; Flush is a deferred save that is never cancelled.
type Persister interface {
	RequestSave()
	Flush()
}

type noopPersister struct{}

func (noopPersister) RequestSave() {}
func (noopPersister) Flush()       {}

// Tracker owns the working draft and the history log. All state changes go
// through its named operations. Safe for use from timer goroutines.
type Tracker struct {
	mu        sync.Mutex
	draft     Draft
	history   *History
	lastSaved string
	persister Persister
}

// New returns a tracker with an empty log and a blank draft for date.
func New(date string) *Tracker {
	return &Tracker{
		draft:     NewDraft(date),
		history:   NewHistory(nil),
		persister: noopPersister{},
	}
}

// SetPersister attaches the component that persists state changes.
func (t *Tracker) SetPersister(p Persister) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p == nil {
		p = noopPersister{}
	}
	t.persister = p
}

// mutate runs fn under the lock and then notifies the persister outside it.
func (t *Tracker) mutate(flush bool, fn func()) {
	t.mu.Lock()
	fn()
	p := t.persister
	t.mu.Unlock()

	p.RequestSave()
	if flush {
		p.Flush()
	}
}

// SelectDate binds the draft to date. A date with an entry is loaded for
// editing; any other date gets a blank draft.
func (t *Tracker) SelectDate(date string) error {
	if !utils.IsLocalDate(date) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidFormat, date)
	}
	t.mutate(false, func() {
		t.selectLocked(date)
	})
	return nil
}

func (t *Tracker) selectLocked(date string) {
	if entry, ok := t.history.FindByDate(date); ok {
		t.draft = draftFromEntry(entry)
		return
	}
	t.draft = NewDraft(date)
}

// LoadForEdit selects a date that already has an entry.
func (t *Tracker) LoadForEdit(date string) error {
	t.mu.Lock()
	_, ok := t.history.FindByDate(date)
	t.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, date)
	}
	return t.SelectDate(date)
}

// EditAnchor replaces anchor slot i. i must be within [0, AnchorSlots).
func (t *Tracker) EditAnchor(i int, text string) {
	checkSlot(i)
	t.mutate(false, func() {
		t.draft.Anchors[i] = text
	})
}

func (t *Tracker) EditExplore(text string) {
	t.mutate(false, func() {
		t.draft.Explore = text
	})
}

func (t *Tracker) EditJournal(text string) {
	t.mutate(false, func() {
		t.draft.Journal = text
	})
}

// SetMood sets the draft mood. Moods outside 1..5 are rejected.
func (t *Tracker) SetMood(mood int) error {
	if mood < constants.MinMood || mood > constants.MaxMood {
		return fmt.Errorf("mood must be between %d and %d, got %d", constants.MinMood, constants.MaxMood, mood)
	}
	t.mutate(false, func() {
		t.draft.Mood = mood
	})
	return nil
}

// ToggleCompletion flips completion flag i. Once the plan is submitted the
// new vector is merged into the committed entry as well.
func (t *Tracker) ToggleCompletion(i int) {
	checkSlot(i)
	t.mutate(true, func() {
		t.draft.Completed[i] = !t.draft.Completed[i]
		if t.draft.Submitted {
			t.mergeLocked(Fields{Completed: append([]bool(nil), t.draft.Completed...)})
		}
	})
}

// Submit commits the draft plan for the selected date, replacing any prior
// entry. The committed entry starts without a check-in even when the date
// already had one. Blank slots are squeezed out of the draft first.
func (t *Tracker) Submit() {
	t.mutate(true, func() {
		t.draft.compact()
		t.draft.Submitted = true
		t.history.Upsert(t.draft.commit())
	})
}

// ToggleCheckIn records the draft journal and mood on the committed entry,
// or clears them if the day is already checked in.
func (t *Tracker) ToggleCheckIn() {
	t.mutate(true, func() {
		if t.draft.CheckedIn {
			journal, mood := "", 0
			t.mergeLocked(Fields{Journal: &journal, Mood: &mood})
			t.draft.Journal = ""
			t.draft.Mood = constants.DefaultMood
			t.draft.CheckedIn = false
			return
		}
		journal, mood := t.draft.Journal, t.draft.Mood
		t.mergeLocked(Fields{Journal: &journal, Mood: &mood})
		t.draft.CheckedIn = true
	})
}

// Reset restores the draft defaults for the selected date. The log is untouched.
func (t *Tracker) Reset() {
	t.mutate(true, func() {
		t.draft = NewDraft(t.draft.Date)
	})
}

// EditPlan reopens a submitted plan for editing.
func (t *Tracker) EditPlan() {
	t.mutate(false, func() {
		t.draft.Submitted = false
	})
}

// StartFreshCheckIn clears the draft check-in fields without touching the log.
func (t *Tracker) StartFreshCheckIn() {
	t.mutate(false, func() {
		t.draft.Journal = ""
		t.draft.Mood = constants.DefaultMood
		t.draft.CheckedIn = false
	})
}

// mergeLocked merges into the entry for the selected date. A missing entry is
// a no-op.
func (t *Tracker) mergeLocked(f Fields) {
	err := t.history.MergeFields(t.draft.Date, f)
	if errors.Is(err, apperrors.ErrNotFound) {
		logger.Debug("No entry to merge into", "date", t.draft.Date)
	}
}

// Draft returns a copy of the working draft.
func (t *Tracker) Draft() Draft {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft.Clone()
}

// Entries returns a copy of the history log, newest submission first.
func (t *Tracker) Entries() []models.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.Entries()
}

// Entry returns the committed entry for date.
func (t *Tracker) Entry(date string) (models.Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.FindByDate(date)
}

// LastSaved returns the timestamp of the last successful save, if any.
func (t *Tracker) LastSaved() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSaved
}

// MarkSaved records the timestamp of a successful save.
func (t *Tracker) MarkSaved(ts string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSaved = ts
}

// Snapshot returns the full state to persist.
func (t *Tracker) Snapshot() models.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	d := t.draft.Clone()
	return models.Snapshot{
		Anchors:   d.Anchors,
		Explore:   d.Explore,
		Journal:   d.Journal,
		Mood:      d.Mood,
		Done:      d.Submitted,
		CheckIn:   d.CheckedIn,
		Completed: d.Completed,
		History:   t.history.Entries(),
		DateInput: d.Date,
		LastSaved: t.lastSaved,
	}
}

// Restore applies the fields present in a loaded patch over the current state.
// It does not schedule a save.
func (t *Tracker) Restore(p models.StatePatch) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p.HasHistory {
		t.history = NewHistory(p.History)
	}
	if len(p.Anchors) > 0 {
		t.draft.Anchors = padStrings(p.Anchors, constants.AnchorSlots)
	}
	if p.Explore != nil {
		t.draft.Explore = *p.Explore
	}
	if p.Journal != nil {
		t.draft.Journal = *p.Journal
	}
	if p.Mood != nil && *p.Mood >= constants.MinMood && *p.Mood <= constants.MaxMood {
		t.draft.Mood = *p.Mood
	}
	if p.Done != nil {
		t.draft.Submitted = *p.Done
	}
	if p.CheckIn != nil {
		t.draft.CheckedIn = *p.CheckIn
	}
	if len(p.Completed) > 0 {
		t.draft.Completed = padBools(p.Completed, constants.AnchorSlots)
	}
	if p.DateInput != nil && utils.IsLocalDate(*p.DateInput) {
		t.draft.Date = *p.DateInput
	}
	if p.LastSaved != nil {
		t.lastSaved = *p.LastSaved
	}
}

func checkSlot(i int) {
	if i < 0 || i >= constants.AnchorSlots {
		panic(fmt.Sprintf("anchor slot %d out of range [0,%d)", i, constants.AnchorSlots))
	}
}
