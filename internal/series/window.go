// Package series keeps the most recent samples of a numeric stream.
package series

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultCapacity is the window size used when NewWindow is given n <= 0.
const DefaultCapacity = 120

// Window is a fixed-capacity ring buffer of samples. Pushing into a full
// window evicts the oldest sample. It is safe for concurrent use.
type Window struct {
	accepted  atomic.Int64
	rejected  atomic.Int64
	startTime time.Time

	mu    sync.Mutex
	ring  []float64
	idx   int
	count int
}

// NewWindow creates a Window holding up to n samples.
func NewWindow(n int) *Window {
	if n <= 0 {
		n = DefaultCapacity
	}
	return &Window{ring: make([]float64, n), startTime: time.Now()}
}

// Cap returns the window capacity.
func (w *Window) Cap() int { return len(w.ring) }

// Push appends a sample.
func (w *Window) Push(v float64) {
	w.accepted.Add(1)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.ring[w.idx] = v
	w.idx = (w.idx + 1) % len(w.ring)
	if w.count < len(w.ring) {
		w.count++
	}
}

// Reject counts an input token that could not be used as a sample.
func (w *Window) Reject() { w.rejected.Add(1) }

// Len returns the number of samples currently held.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Values returns the held samples, oldest first.
func (w *Window) Values() []float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastN(w.count)
}

// Last returns the n most recent samples, oldest first.
func (w *Window) Last(n int) []float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastN(min(max(n, 0), w.count))
}

func (w *Window) lastN(n int) []float64 {
	if n == 0 {
		return nil
	}
	size := len(w.ring)
	out := make([]float64, n)
	for i := range n {
		out[i] = w.ring[(w.idx-n+i+size)%size]
	}
	return out
}

// Latest returns the most recent sample.
func (w *Window) Latest() (float64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.count == 0 {
		return 0, false
	}
	return w.ring[(w.idx-1+len(w.ring))%len(w.ring)], true
}

// Min returns the smallest held sample, or NaN for an empty window.
func (w *Window) Min() float64 {
	return w.fold(math.Min)
}

// Max returns the largest held sample, or NaN for an empty window.
func (w *Window) Max() float64 {
	return w.fold(math.Max)
}

func (w *Window) fold(f func(a, b float64) float64) float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.count == 0 {
		return math.NaN()
	}
	vals := w.lastN(w.count)
	acc := vals[0]
	for _, v := range vals[1:] {
		acc = f(acc, v)
	}
	return acc
}

// Stats is a point-in-time summary of a Window.
type Stats struct {
	Accepted int64
	Rejected int64
	Held     int
	Min      float64
	Max      float64
	Last     float64
	Elapsed  time.Duration
}

// Stats returns a summary of the window and its lifetime counters.
func (w *Window) Stats() Stats {
	s := Stats{
		Accepted: w.accepted.Load(),
		Rejected: w.rejected.Load(),
		Held:     w.Len(),
		Min:      w.Min(),
		Max:      w.Max(),
		Elapsed:  time.Since(w.startTime),
	}
	s.Last, _ = w.Latest()
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("samples=%d rejected=%d held=%d min=%g max=%g last=%g",
		s.Accepted, s.Rejected, s.Held, s.Min, s.Max, s.Last)
}
