package state

import (
	"sync"
)

type Listener func(State)

type subscriber struct {
	id int
	fn Listener
}

// Store owns the current State. Listeners are called synchronously, in
// registration order, once every dispatch has been reduced.
type Store struct {
	mu    sync.Mutex
	state State
	subs  []subscriber
	ids   int
}

func NewStore(initial State) *Store {
	return &Store{
		state: initial,
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Dispatch(actions ...Action) State {
	s.mu.Lock()
	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	var (
		curr = s.state
		subs = make([]subscriber, len(s.subs))
	)
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(curr)
	}
	return curr
}

// Subscribe registers fn and returns the function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids++
	id := s.ids
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.unsubscribe(id)
		})
	}
}

func (s *Store) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.subs {
		if s.subs[i].id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}
