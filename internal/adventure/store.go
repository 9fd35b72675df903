package adventure

import (
	"reflect"
	"sync"

	"github.com/azyu/adventurecrafter/pkg/types"
	"github.com/rs/zerolog"
)

// Listener is notified after every dispatch that changed the state.
type Listener interface {
	OnStateChange(state types.AdventureState)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(state types.AdventureState)

// OnStateChange calls f(state).
func (f ListenerFunc) OnStateChange(state types.AdventureState) {
	f(state)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

type subscription struct {
	id       int
	listener Listener
}

// Store owns the live AdventureState. Dispatches are serialized and listeners
// see states in the order they were produced, each receiving its own copy.
// A listener must not dispatch to the store that notifies it.
type Store struct {
	// notifyMu is held from the reduce through the listener loop.
	notifyMu sync.Mutex

	mu        sync.Mutex
	state     types.AdventureState
	subs      []subscription
	nextSubID int
	logger    zerolog.Logger
}

// NewStore creates a store seeded with initial.
func NewStore(initial types.AdventureState, opts ...Option) *Store {
	s := &Store{
		state:  initial.Clone(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscription{id: id, listener: l})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch reduces action into the current state and returns the result.
// Listeners are only notified when the state actually changed.
func (s *Store) Dispatch(action Action) types.AdventureState {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, action)
	changed := !reflect.DeepEqual(prev, next)
	s.state = next
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if action != nil {
		s.logger.Debug().
			Str("action", action.Type()).
			Bool("changed", changed).
			Msg("dispatch")
	}

	if changed {
		for _, sub := range subs {
			sub.listener.OnStateChange(next.Clone())
		}
	}
	return next.Clone()
}

// Replace swaps the whole state, e.g. after loading from storage. Listeners
// are not notified.
func (s *Store) Replace(state types.AdventureState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
}

// State returns a copy of the current state.
func (s *Store) State() types.AdventureState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Adventures returns a copy of the adventure list.
func (s *Store) Adventures() []types.Adventure {
	return s.State().Adventures
}

// SelectedAdventureID returns the current selection, or nil.
func (s *Store) SelectedAdventureID() *int {
	return s.State().SelectedAdventureID
}

// SelectedAdventure returns the selected adventure record, if any.
func (s *Store) SelectedAdventure() (types.Adventure, bool) {
	return SelectedAdventure(s.State())
}
