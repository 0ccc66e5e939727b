package series

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowEmpty(t *testing.T) {
	w := NewWindow(4)
	assert.Equal(t, 0, w.Len())
	assert.Nil(t, w.Values())
	assert.True(t, math.IsNaN(w.Min()))
	assert.True(t, math.IsNaN(w.Max()))
	_, ok := w.Latest()
	assert.False(t, ok)
}

func TestWindowEvictsOldest(t *testing.T) {
	w := NewWindow(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		w.Push(v)
	}
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []float64{3, 4, 5}, w.Values())
	assert.Equal(t, []float64{4, 5}, w.Last(2))
	assert.Equal(t, []float64{3, 4, 5}, w.Last(10))
	assert.Equal(t, 3.0, w.Min())
	assert.Equal(t, 5.0, w.Max())

	last, ok := w.Latest()
	require.True(t, ok)
	assert.Equal(t, 5.0, last)
}

func TestWindowDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewWindow(0).Cap())
	assert.Equal(t, 7, NewWindow(7).Cap())
}

func TestWindowStats(t *testing.T) {
	w := NewWindow(2)
	w.Push(-1)
	w.Push(8)
	w.Push(2)
	w.Reject()

	s := w.Stats()
	assert.Equal(t, int64(3), s.Accepted)
	assert.Equal(t, int64(1), s.Rejected)
	assert.Equal(t, 2, s.Held)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 8.0, s.Max)
	assert.Equal(t, 2.0, s.Last)
	assert.Equal(t, "samples=3 rejected=1 held=2 min=2 max=8 last=2", s.String())
}

func TestWindowConcurrent(t *testing.T) {
	w := NewWindow(50)
	const goroutines = 20
	const pushes = 500

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := range goroutines {
		go func() {
			defer wg.Done()
			for i := range pushes {
				w.Push(float64(g*pushes + i))
				_ = w.Values()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(goroutines*pushes), w.Stats().Accepted)
	assert.Equal(t, 50, w.Len())
}
