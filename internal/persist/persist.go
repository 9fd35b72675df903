// Package persist keeps an adventure store in sync with a storage medium:
// it loads and migrates the saved document at startup and writes state
// changes back with a throttle.
package persist

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/azyu/adventurecrafter/internal/adventure"
	"github.com/azyu/adventurecrafter/internal/migrate"
	"github.com/azyu/adventurecrafter/internal/storage"
	"github.com/azyu/adventurecrafter/pkg/types"
	"github.com/rs/zerolog"
)

const (
	// DefaultKey identifies the document among other keys in the medium.
	DefaultKey = "adventure-crafter-root"
	// DefaultThrottle is the minimum interval between two physical writes.
	DefaultThrottle = time.Second
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithKey sets the storage key of the document.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithThrottle sets the minimum interval between writes. Zero writes on
// every change.
func WithThrottle(d time.Duration) Option {
	return func(a *Adapter) {
		if d >= 0 {
			a.throttle = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithEngine replaces the migration engine. Saved documents are stamped
// with the engine's latest version.
func WithEngine(engine *migrate.Engine) Option {
	return func(a *Adapter) {
		a.engine = engine
	}
}

// WithAvailability skips the startup probe and uses the given result.
func WithAvailability(available bool) Option {
	return func(a *Adapter) {
		a.available = &available
	}
}

// Adapter persists store state to a medium. It implements adventure.Listener.
type Adapter struct {
	medium   storage.Medium
	key      string
	throttle time.Duration
	engine   *migrate.Engine
	logger   zerolog.Logger

	available *bool
	// readOnly is set when the saved document could not be read, so a
	// transient read failure never overwrites it.
	readOnly bool

	mu        sync.Mutex
	pending   *types.AdventureState
	lastWrite time.Time
	timer     *time.Timer
	closed    bool
}

var _ adventure.Listener = (*Adapter)(nil)

// New creates an adapter over medium. Unless WithAvailability is given,
// the medium is probed once here; an unusable medium puts the adapter in
// memory-only mode.
func New(medium storage.Medium, opts ...Option) *Adapter {
	a := &Adapter{
		medium:   medium,
		key:      DefaultKey,
		throttle: DefaultThrottle,
		engine:   migrate.Default(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.engine.WithLogger(a.logger)

	if a.available == nil {
		ok := storage.Available(medium)
		a.available = &ok
	}
	if !*a.available {
		a.logger.Warn().
			Str("key", a.key).
			Msg("storage is not available; state will not persist across sessions")
	}
	return a
}

// Available reports whether the adapter writes to its medium.
func (a *Adapter) Available() bool {
	return *a.available && !a.readOnly
}

// Load reads, decodes and migrates the saved document. It returns the
// initial state when storage is unavailable, nothing is saved yet, or the
// saved document cannot be decoded.
func (a *Adapter) Load() types.AdventureState {
	if !*a.available {
		return types.InitialState()
	}

	raw, ok, err := a.medium.Get(a.key)
	if err != nil {
		a.readOnly = true
		a.logger.Warn().Err(err).Str("key", a.key).
			Msg("failed to read saved state; continuing in memory only")
		return types.InitialState()
	}
	if !ok {
		return types.InitialState()
	}

	var doc types.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		a.logger.Warn().Err(err).Str("key", a.key).
			Msg("saved state is corrupt; starting fresh")
		return types.InitialState()
	}

	if latest := a.engine.LatestVersion(); doc.Version > latest {
		a.logger.Warn().
			Int("version", doc.Version).
			Int("supported", latest).
			Msg("saved state comes from a newer version; it will be saved back as the supported version")
	}

	migrated := a.engine.Migrate(doc)
	if migrated.Version != doc.Version {
		a.logger.Info().
			Int("from", doc.Version).
			Int("to", migrated.Version).
			Msg("migrated saved state")
	}
	if len(migrated.State.Adventures) == 0 {
		return types.InitialState()
	}
	return migrated.State
}

// Bind seeds store with the loaded state and subscribes the adapter to its
// changes. The returned function unsubscribes.
func (a *Adapter) Bind(store *adventure.Store) func() {
	store.Replace(a.Load())
	return store.Subscribe(a)
}

// OnStateChange schedules state to be written. The first change after a quiet
// period is written immediately; later changes inside the throttle window are
// coalesced and only the latest one is written when the window ends.
func (a *Adapter) OnStateChange(state types.AdventureState) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	pending := state.Clone()
	a.pending = &pending

	if a.timer != nil {
		return
	}

	wait := a.throttle - time.Since(a.lastWrite)
	if a.lastWrite.IsZero() || wait <= 0 {
		a.writeOrRetryLocked()
		return
	}
	a.timer = time.AfterFunc(wait, a.onTimer)
}

func (a *Adapter) onTimer() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.timer = nil
	if a.closed {
		return
	}
	a.writeOrRetryLocked()
}

// writeOrRetryLocked writes the pending state and, if that fails, tries
// again on the next throttle tick.
func (a *Adapter) writeOrRetryLocked() {
	if err := a.writeLocked(); err != nil && a.throttle > 0 && a.timer == nil {
		a.timer = time.AfterFunc(a.throttle, a.onTimer)
	}
}

// Flush writes any pending state now.
func (a *Adapter) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	return a.writeLocked()
}

// Close flushes pending state and stops accepting changes.
func (a *Adapter) Close() error {
	err := a.Flush()

	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	return err
}

// Purge removes the saved document and drops any pending write.
func (a *Adapter) Purge() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if !a.Available() {
		return nil
	}
	if err := a.medium.Remove(a.key); err != nil {
		return fmt.Errorf("failed to purge saved state: %w", err)
	}
	return nil
}

// writeLocked writes the pending state. A failed write keeps the state
// pending so a later tick, change or flush tries again.
func (a *Adapter) writeLocked() error {
	if a.pending == nil {
		return nil
	}
	if !a.Available() {
		a.pending = nil
		return nil
	}

	doc := types.Document{
		Key:     a.key,
		Version: a.engine.LatestVersion(),
		State:   *a.pending,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	a.lastWrite = time.Now()
	if err := a.medium.Set(a.key, string(data)); err != nil {
		a.logger.Warn().Err(err).Str("key", a.key).Msg("failed to save state")
		return fmt.Errorf("failed to save state: %w", err)
	}
	a.pending = nil
	a.logger.Debug().Str("key", a.key).Int("bytes", len(data)).Msg("saved state")
	return nil
}
