//go:build unix

package termwidth

import (
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"
)

// SignalSource is a ResizeSource over SIGWINCH. The signal is only watched
// while at least one subscriber is registered.
type SignalSource struct {
	subs subscribers

	mu     sync.Mutex
	sigCh  chan os.Signal
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewSignalSource creates a SignalSource.
func NewSignalSource() *SignalSource {
	return &SignalSource{}
}

// Subscribe implements ResizeSource.
func (s *SignalSource) Subscribe(fn func()) func() {
	id, n := s.subs.add(fn)
	if n == 1 {
		s.start()
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			if s.subs.remove(id) == 0 {
				s.stop()
			}
		})
	}
}

func (s *SignalSource) start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sigCh != nil {
		return
	}
	s.sigCh = make(chan os.Signal, 1)
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	signal.Notify(s.sigCh, unix.SIGWINCH)
	go s.watch(s.sigCh, s.stopCh, s.doneCh)
}

func (s *SignalSource) stop() {
	s.mu.Lock()
	if s.sigCh == nil {
		s.mu.Unlock()
		return
	}
	signal.Stop(s.sigCh)
	close(s.stopCh)
	done := s.doneCh
	s.sigCh, s.stopCh, s.doneCh = nil, nil, nil
	s.mu.Unlock()
	<-done
}

func (s *SignalSource) watch(sigCh <-chan os.Signal, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	for {
		select {
		case <-stopCh:
			return
		case <-sigCh:
			s.subs.notify()
		}
	}
}
