package textwidth

import "strings"

// Ellipsis marks truncated text. It is one column wide.
const Ellipsis = "…"

// Truncate shortens s so that it occupies at most maxWidth columns, keeping
// the longest prefix that fits and appending Ellipsis when anything was cut.
// Text that already fits is returned unchanged.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if Measure(s) <= maxWidth {
		return s
	}

	clusters := Clusters(s)
	kept, acc := 0, 0
	for _, c := range clusters {
		if acc+c.Width > maxWidth {
			break
		}
		acc += c.Width
		kept++
	}

	// No room for the ellipsis beside the prefix: give back whole clusters.
	for kept > 0 && acc+1 > maxWidth {
		kept--
		acc -= clusters[kept].Width
	}

	var b strings.Builder
	for _, c := range clusters[:kept] {
		b.WriteString(c.Text)
	}
	b.WriteString(Ellipsis)
	return b.String()
}

// PadRight truncates s to width columns and fills the remainder with spaces
// on the right, so the result is exactly width columns wide.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if gap := width - Measure(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// PadLeft is PadRight with the padding on the left.
func PadLeft(s string, width int) string {
	s = Truncate(s, width)
	if gap := width - Measure(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
