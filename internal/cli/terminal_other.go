//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd
// +build !linux,!darwin,!freebsd,!netbsd,!openbsd

package cli

import "os"

// IsTerminal reports whether f is attached to a terminal. Platforms
// without termios support answer false, which degrades --color=auto
// to plain output.
func IsTerminal(f *os.File) bool {
	return false
}
