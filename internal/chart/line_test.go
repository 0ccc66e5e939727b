package chart

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineGraph(t *testing.T) {
	got := LineGraph([]float64{0, 1, 2, 3}, LineConfig{Width: 20, Height: 4})
	want := "3┤   •\n" +
		" │  • \n" +
		" │ •  \n" +
		"0┤•   "
	assert.Equal(t, want, got)
}

func TestLineGraphConnectsSteps(t *testing.T) {
	got := LineGraph([]float64{0, 3}, LineConfig{Width: 20, Height: 4})
	want := "3┤ •\n" +
		" │ │\n" +
		" │ │\n" +
		"0┤• "
	assert.Equal(t, want, got)
}

func TestLineGraphDefaults(t *testing.T) {
	values := make([]float64, 300)
	for i := range values {
		values[i] = float64(i % 50)
	}
	lines := strings.Split(LineGraph(values, LineConfig{Title: "latency"}), "\n")
	require.Len(t, lines, DefaultHeight+1)
	assert.Equal(t, "latency", lines[0])
	assertRowWidths(t, strings.Join(lines[1:], "\n"), DefaultWidth)
	assert.True(t, strings.HasPrefix(lines[1], "49┤"))
	assert.True(t, strings.HasPrefix(lines[DefaultHeight], " 0┤"))
}

func TestLineGraphSkipsNonFinite(t *testing.T) {
	got := LineGraph([]float64{1, math.NaN(), 2}, LineConfig{Width: 10, Height: 2})
	want := "2┤  •\n" +
		"1┤•  "
	assert.Equal(t, want, got)
}

func TestLineGraphEmpty(t *testing.T) {
	assert.Equal(t, "", LineGraph(nil, LineConfig{}))
	assert.Equal(t, "cpu", LineGraph(nil, LineConfig{Title: "cpu"}))
}
