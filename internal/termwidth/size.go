package termwidth

import "golang.org/x/term"

// TermSize returns a SizeFunc reading the column count of the terminal on fd.
// When fd is not a terminal (output piped to a pager, say) it asks the
// controlling terminal instead.
func TermSize(fd uintptr) SizeFunc {
	return func() (int, bool) {
		w, _, err := term.GetSize(int(fd))
		if err == nil && w > 0 {
			return w, true
		}
		return controllingTTYCols()
	}
}
