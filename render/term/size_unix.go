//go:build unix

package term

import (
	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"
)

// terminalSize returns the terminal dimensions of fd.
func terminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return xterm.GetSize(fd)
	}
	return int(ws.Col), int(ws.Row), nil
}
