//go:build !unix

package termwidth

func controllingTTYCols() (int, bool) {
	return 0, false
}
