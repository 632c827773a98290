//go:build !unix

package cli

import "os"

// TerminalWidth returns DefaultTerminalWidth on platforms without a
// window-size ioctl.
func TerminalWidth(*os.File) int {
	return DefaultTerminalWidth
}
