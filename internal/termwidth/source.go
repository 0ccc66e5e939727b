package termwidth

import "sync"

// subscribers is the listener bookkeeping shared by the sources.
type subscribers struct {
	mu   sync.Mutex
	fns  map[int]func()
	next int
}

func (s *subscribers) add(fn func()) (id, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func())
	}
	id = s.next
	s.next++
	s.fns[id] = fn
	return id, len(s.fns)
}

func (s *subscribers) remove(id int) (count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fns, id)
	return len(s.fns)
}

func (s *subscribers) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// ManualSource is a ResizeSource driven by explicit Notify calls. UI
// frameworks that deliver their own window-size messages feed it.
type ManualSource struct {
	subs subscribers
}

// NewManualSource creates an empty ManualSource.
func NewManualSource() *ManualSource {
	return &ManualSource{}
}

// Subscribe implements ResizeSource.
func (m *ManualSource) Subscribe(fn func()) func() {
	id, _ := m.subs.add(fn)
	var once sync.Once
	return func() {
		once.Do(func() { m.subs.remove(id) })
	}
}

// Notify signals a resize to every subscriber.
func (m *ManualSource) Notify() {
	m.subs.notify()
}
