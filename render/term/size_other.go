//go:build !unix

package term

import (
	xterm "golang.org/x/term"
)

func terminalSize(fd int) (int, int, error) {
	return xterm.GetSize(fd)
}
