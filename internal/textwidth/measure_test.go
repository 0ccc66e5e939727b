package textwidth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestMeasure(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "empty", in: "", want: 0},
		{name: "ascii", in: "hello", want: 5},
		{name: "tab", in: "a\tb", want: 3},
		{name: "newline", in: "a\nb", want: 2},
		{name: "crlf", in: "a\r\nb", want: 2},
		{name: "cjk", in: "日本語", want: 6},
		{name: "hangul", in: "한국", want: 4},
		{name: "mixed", in: "a中b", want: 4},
		{name: "combining acute", in: "e\u0301", want: 1},
		{name: "stacked combining", in: "a\u0300\u0301\u0302", want: 1},
		{name: "precomposed", in: "é", want: 1},
		{name: "zero width space", in: "a\u200bb", want: 2},
		{name: "bom", in: "\ufeffabc", want: 3},
		{name: "emoji", in: "\U0001F600", want: 2},
		{name: "zwj family", in: "\U0001F468\u200d\U0001F469\u200d\U0001F467", want: 2},
		{name: "zwj followed by narrow", in: "\U0001F468\u200dA", want: 3},
		{name: "trailing zwj", in: "\U0001F468\u200d", want: 2},
		{name: "two separate emoji", in: "\U0001F600\U0001F600", want: 4},
		{name: "fullwidth", in: "ＡＢ", want: 4},
		{name: "block glyphs", in: "▁▂▃▄▅▆▇█", want: 8},
		{name: "braille glyphs", in: "⡀⡄⡆⡇⣇⣧⣷⣿", want: 8},
		{name: "invalid utf8", in: "a\xffb", want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Measure(tt.in))
		})
	}
}

func TestMeasureStyled(t *testing.T) {
	assert.Equal(t, 1, MeasureStyled("\x1b[38;2;255;0;0m█\x1b[0m"))
	assert.Equal(t, 4, MeasureStyled("\x1b[1m中文\x1b[0m"))
	assert.Equal(t, 3, MeasureStyled("abc"))
}

func TestClustersSumToMeasure(t *testing.T) {
	in := "x\U0001F468\u200d\U0001F469 e\u0301中"
	clusters := Clusters(in)

	var text strings.Builder
	sum := 0
	for _, c := range clusters {
		text.WriteString(c.Text)
		sum += c.Width
	}
	assert.Equal(t, in, text.String())
	assert.Equal(t, Measure(in), sum)
	assert.Equal(t, "\U0001F468\u200d\U0001F469", clusters[1].Text)
	assert.Equal(t, 2, clusters[1].Width)
}

func TestRuneWidth(t *testing.T) {
	assert.Equal(t, 1, RuneWidth('\t'))
	assert.Equal(t, 0, RuneWidth('\n'))
	assert.Equal(t, 0, RuneWidth('\r'))
	assert.Equal(t, 0, RuneWidth(0x0301))
	assert.Equal(t, 0, RuneWidth(0x200D))
	assert.Equal(t, 2, RuneWidth('中'))
	assert.Equal(t, 1, RuneWidth('a'))
}

func TestMeasureASCIIEqualsLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringOf(rapid.RuneFrom(nil, asciiPrintable)).Draw(t, "s")
		if got := Measure(s); got != len(s) {
			t.Fatalf("Measure(%q) = %d, want %d", s, got, len(s))
		}
	})
}

func TestMeasureNonNegativeAndStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		w := Measure(s)
		if w < 0 {
			t.Fatalf("Measure(%q) = %d", s, w)
		}
		if w2 := Measure(s); w2 != w {
			t.Fatalf("Measure(%q) unstable: %d then %d", s, w, w2)
		}
	})
}
