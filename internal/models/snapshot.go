package models

// Snapshot is the persisted application state. Its JSON form is the stored blob.
type Snapshot struct {
	Anchors   []string `json:"anchors"`
	Explore   string   `json:"explore"`
	Journal   string   `json:"journal"`
	Mood      int      `json:"mood"`
	Done      bool     `json:"done"`
	CheckIn   bool     `json:"checkIn"`
	Completed []bool   `json:"completed"`
	History   []Entry  `json:"history"`
	DateInput string   `json:"dateInput"`
	LastSaved string   `json:"lastSaved"`
}

// StatePatch holds the fields recovered from a stored blob. Nil fields were
// absent or unusable and must leave the in-memory defaults alone.
type StatePatch struct {
	Anchors   []string
	Explore   *string
	Journal   *string
	Mood      *int
	Done      *bool
	CheckIn   *bool
	Completed []bool
	History   []Entry
	DateInput *string
	LastSaved *string

	// HasHistory distinguishes a stored empty history from an absent one.
	HasHistory bool
	// Skipped counts history records dropped for bad shape or duplicate dates.
	Skipped int
}

// Empty reports whether the patch carries no fields at all.
func (p StatePatch) Empty() bool {
	return p.Anchors == nil && p.Explore == nil && p.Journal == nil && p.Mood == nil &&
		p.Done == nil && p.CheckIn == nil && p.Completed == nil && !p.HasHistory &&
		p.DateInput == nil && p.LastSaved == nil
}
