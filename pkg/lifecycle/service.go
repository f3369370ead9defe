package lifecycle

import "sync"

// Handler is called when the app state changes.
type Handler func(state AppState)

// Service holds the current app state and notifies handlers on change.
// It is safe for concurrent use; handlers run on the goroutine that calls
// Update.
type Service struct {
	mu       sync.RWMutex
	state    AppState
	handlers map[int]Handler
	nextID   int
}

// NewService creates a service in the given initial state.
func NewService(initial AppState) *Service {
	return &Service{
		state:    initial,
		handlers: make(map[int]Handler),
	}
}

// State returns the current app state.
func (s *Service) State() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsActive returns true if the app is in the foreground and interactive.
func (s *Service) IsActive() bool {
	return s.State() == AppStateActive
}

// AddHandler registers a handler to be called on state changes.
// Returns a function that removes the handler.
func (s *Service) AddHandler(h Handler) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.handlers[id] = h
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.handlers, id)
		s.mu.Unlock()
	}
}

// Update sets the state and notifies handlers. Repeating the current state
// does nothing.
func (s *Service) Update(state AppState) {
	s.mu.Lock()
	if s.state == state {
		s.mu.Unlock()
		return
	}
	s.state = state
	handlers := make([]Handler, 0, len(s.handlers))
	for _, h := range s.handlers {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(state)
	}
}
