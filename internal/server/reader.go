package server

import (
	"github.com/julianstephens/tinywins/internal/models"
	"github.com/julianstephens/tinywins/internal/tracker"
)

// Reader supplies the state the API serves.
type Reader interface {
	// History may return a usable log alongside a non-nil error.
	History() (*tracker.History, string, error)
}

// Loader reads the stored state. *persist.Gateway satisfies it.
type Loader interface {
	Load() (models.StatePatch, error)
}

// StoreReader loads the stored blob on every call so the API sees writes
// made by other processes.
type StoreReader struct {
	loader Loader
}

// NewStoreReader wraps a loader.
func NewStoreReader(l Loader) *StoreReader {
	return &StoreReader{loader: l}
}

// History returns the stored history log and the last-saved stamp. A blob
// that cannot be read or decoded yields an empty log together with the error.
func (r *StoreReader) History() (*tracker.History, string, error) {
	patch, err := r.loader.Load()
	lastSaved := ""
	if patch.LastSaved != nil {
		lastSaved = *patch.LastSaved
	}
	return tracker.NewHistory(patch.History), lastSaved, err
}
