// Package persist writes the tracker state to a blob store on a debounce plus
// deferred flushes, and reads it back tolerantly.
package persist

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/tinywins/internal/constants"
	apperrors "github.com/julianstephens/tinywins/internal/errors"
	"github.com/julianstephens/tinywins/internal/logger"
	"github.com/julianstephens/tinywins/internal/metrics"
	"github.com/julianstephens/tinywins/internal/models"
)

// Store holds a single blob per key. Get returns nil, nil for an absent key.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Source supplies the state to write and is told when a write lands.
type Source interface {
	Snapshot() models.Snapshot
	MarkSaved(ts string)
}

// Options configures a Gateway. Zero values fall back to the defaults.
type Options struct {
	Key        string
	Debounce   time.Duration
	FlushDelay time.Duration
	Clock      clockwork.Clock
}

// Gateway serializes state to a Store. Save requests are debounced; flushes
// are deferred point-in-time saves that are never cancelled. Every write reads
// the source state when it fires, not when it was scheduled.
type Gateway struct {
	store      Store
	key        string
	clock      clockwork.Clock
	debounce   time.Duration
	flushDelay time.Duration

	mu          sync.Mutex
	source      Source
	debounced   clockwork.Timer
	flushTimers map[uint64]clockwork.Timer
	nextFlush   uint64
	closed      bool
	inflight    sync.WaitGroup
}

// New creates a gateway over store.
func New(store Store, opts Options) *Gateway {
	if opts.Key == "" {
		opts.Key = constants.StorageKey
	}
	if opts.Debounce <= 0 {
		opts.Debounce = constants.DefaultSaveDebounce
	}
	if opts.FlushDelay <= 0 {
		opts.FlushDelay = constants.DefaultFlushDelay
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Gateway{
		store:       store,
		key:         opts.Key,
		clock:       opts.Clock,
		debounce:    opts.Debounce,
		flushDelay:  opts.FlushDelay,
		flushTimers: make(map[uint64]clockwork.Timer),
	}
}

// Attach sets the state source used by scheduled writes.
func (g *Gateway) Attach(src Source) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.source = src
}

func (g *Gateway) Key() string {
	return g.key
}

// RequestSave schedules a write after the debounce window. A request made
// while one is pending replaces it and restarts the window.
func (g *Gateway) RequestSave() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}

	if g.debounced != nil && g.debounced.Stop() {
		g.inflight.Done()
		metrics.RecordCoalesced()
	}

	g.inflight.Add(1)
	var timer clockwork.Timer
	timer = g.clock.AfterFunc(g.debounce, func() {
		defer g.inflight.Done()
		g.mu.Lock()
		if g.debounced == timer {
			g.debounced = nil
		}
		g.mu.Unlock()
		_ = g.persist(metrics.PathDebounced)
	})
	g.debounced = timer
}

// Flush schedules a write after the flush delay. Flushes are independent of
// each other and of the debounce window.
func (g *Gateway) Flush() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}

	id := g.nextFlush
	g.nextFlush++
	g.inflight.Add(1)
	g.flushTimers[id] = g.clock.AfterFunc(g.flushDelay, func() {
		defer g.inflight.Done()
		g.mu.Lock()
		delete(g.flushTimers, id)
		g.mu.Unlock()
		_ = g.persist(metrics.PathFlush)
	})
}

// SaveNow writes the current source state immediately.
func (g *Gateway) SaveNow() error {
	return g.persist(metrics.PathDirect)
}

// Save writes snap immediately, stamping it with the save time. It returns the
// stamp on success.
func (g *Gateway) Save(snap models.Snapshot) (string, error) {
	return g.write(snap, metrics.PathDirect)
}

func (g *Gateway) persist(path string) error {
	g.mu.Lock()
	src := g.source
	g.mu.Unlock()
	if src == nil {
		return nil
	}

	ts, err := g.write(src.Snapshot(), path)
	if err != nil {
		return err
	}
	src.MarkSaved(ts)
	return nil
}

func (g *Gateway) write(snap models.Snapshot, path string) (string, error) {
	start := g.clock.Now()
	snap.LastSaved = start.UTC().Format(constants.TimestampFormat)

	data, err := EncodeBlob(snap)
	if err != nil {
		metrics.RecordSaveFailure(path)
		logger.Error("Failed to encode state", "path", path, "error", err)
		return "", fmt.Errorf("%w: %v", apperrors.ErrStorageWrite, err)
	}

	if err := g.store.Set(g.key, data); err != nil {
		metrics.RecordSaveFailure(path)
		logger.Warn("Failed to save state", "path", path, "key", g.key, "error", err)
		return "", fmt.Errorf("%w: %v", apperrors.ErrStorageWrite, err)
	}

	metrics.RecordSave(path, g.clock.Since(start))
	logger.Debug("State saved", "path", path, "key", g.key, "bytes", len(data))
	return snap.LastSaved, nil
}

// Load reads and decodes the stored blob. A missing or unusable blob yields an
// empty patch; read and decode failures are also returned for diagnostics and
// may be ignored.
func (g *Gateway) Load() (models.StatePatch, error) {
	data, err := g.store.Get(g.key)
	if err != nil {
		metrics.RecordLoadError("read")
		logger.Warn("Failed to read state", "key", g.key, "error", err)
		return models.StatePatch{}, fmt.Errorf("%w: %v", apperrors.ErrStorageRead, err)
	}

	patch, err := DecodeBlob(data)
	if err != nil {
		metrics.RecordLoadError("decode")
		logger.Warn("Stored state is unreadable, starting from defaults", "key", g.key, "error", err)
		return models.StatePatch{}, err
	}
	if patch.Skipped > 0 {
		metrics.RecordSkippedEntries(patch.Skipped)
		logger.Warn("Skipped unusable history entries", "count", patch.Skipped)
	}
	return patch, nil
}

// Close stops accepting requests, runs any write that is still scheduled, and
// waits for writes already in progress. It is safe to call more than once.
func (g *Gateway) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true

	pending := false
	if g.debounced != nil && g.debounced.Stop() {
		g.inflight.Done()
		pending = true
	}
	g.debounced = nil
	for id, t := range g.flushTimers {
		if t.Stop() {
			g.inflight.Done()
			pending = true
		}
		delete(g.flushTimers, id)
	}
	g.mu.Unlock()

	g.inflight.Wait()
	if pending {
		return g.persist(metrics.PathDirect)
	}
	return nil
}
