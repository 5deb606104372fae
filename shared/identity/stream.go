package identity

import "sync"

// Stream is an in-process Provider fed by Publish. New subscribers receive
// the latest identity immediately.
type Stream struct {
	mu        sync.Mutex
	current   *User
	nextId    int
	listeners map[int]func(*User)
}

func NewStream(initial *User) *Stream {
	return &Stream{current: initial.clone(), listeners: make(map[int]func(*User))}
}

func (s *Stream) Subscribe(fn func(*User)) func() {
	s.mu.Lock()
	id := s.nextId
	s.nextId++
	s.listeners[id] = fn
	current := s.current.clone()
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Stream) Publish(u *User) {
	s.mu.Lock()
	s.current = u.clone()
	fns := make([]func(*User), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(u.clone())
	}
}
