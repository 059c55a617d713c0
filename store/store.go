// Package store holds the reducer-shaped state containers of a mounted app:
// the audio store and the app store. A store's only mutation path is
// Dispatch, which runs a pure reducer over the current state.
package store

// Reducer maps the current state and an action to the next state.
// It must not mutate its input.
type Reducer[S, A any] func(S, A) S

// Store is a single state cell transformed by a reducer. It is not safe for
// concurrent use; all dispatches happen on the frame loop.
type Store[S, A any] struct {
	state       S
	reduce      Reducer[S, A]
	clone       func(S) S
	subscribers []*subscriber[S]
	dispatching bool
	queue       []A
}

type subscriber[S any] struct {
	fn func(prev, next S)
}

// New creates a store with an initial state. clone copies reference fields
// of S so callers of State never share memory with the cell; nil means S is
// copied by value.
func New[S, A any](initial S, reduce Reducer[S, A], clone func(S) S) *Store[S, A] {
	if clone == nil {
		clone = func(s S) S { return s }
	}
	return &Store[S, A]{state: clone(initial), reduce: reduce, clone: clone}
}

// State returns a copy of the current state.
func (s *Store[S, A]) State() S {
	return s.clone(s.state)
}

// Dispatch reduces action into the state and notifies subscribers.
// Dispatches issued by a subscriber are queued and applied in order after the
// current notification round, so every subscriber sees transitions in order.
func (s *Store[S, A]) Dispatch(action A) {
	if s.dispatching {
		s.queue = append(s.queue, action)
		return
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	s.apply(action)
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.apply(next)
	}
	s.queue = nil
}

func (s *Store[S, A]) apply(action A) {
	prev := s.state
	s.state = s.reduce(prev, action)
	for _, sub := range append([]*subscriber[S](nil), s.subscribers...) {
		sub.fn(s.clone(prev), s.clone(s.state))
	}
}

// Subscribe registers fn to run after every dispatch. The returned func
// removes the subscription.
func (s *Store[S, A]) Subscribe(fn func(prev, next S)) (unsubscribe func()) {
	sub := &subscriber[S]{fn: fn}
	s.subscribers = append(s.subscribers, sub)
	return func() {
		for i, cur := range s.subscribers {
			if cur == sub {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}
