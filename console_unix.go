//go:build unix

package konsole

import (
	"os"

	"golang.org/x/sys/unix"
)

// controllingTerminalWidth asks the terminal attached to stderr, which often
// stays a tty when stdout is piped.
func controllingTerminalWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stderr.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0
	}
	return int(ws.Col)
}
