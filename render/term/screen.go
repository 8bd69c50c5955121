package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kungfusheep/skin"
	"github.com/muesli/termenv"
	xterm "golang.org/x/term"
)

// Screen prints a Buffer to a terminal. Runs of cells sharing colours are
// styled together through a lipgloss renderer bound to the output, so the
// colour profile follows what the terminal supports.
type Screen struct {
	out      io.Writer
	fd       int
	tty      bool
	renderer *lipgloss.Renderer
}

// NewScreen creates a screen writing to out. Size and terminal detection
// use out's file descriptor when it has one.
func NewScreen(out io.Writer) *Screen {
	s := &Screen{out: out, fd: -1, renderer: lipgloss.NewRenderer(out)}
	if f, ok := out.(interface{ Fd() uintptr }); ok {
		s.fd = int(f.Fd())
		s.tty = xterm.IsTerminal(s.fd)
	}
	return s
}

// IsTerminal reports whether the output is a terminal.
func (s *Screen) IsTerminal() bool { return s.tty }

// SetColorProfile overrides the detected colour profile.
func (s *Screen) SetColorProfile(p termenv.Profile) {
	s.renderer.SetColorProfile(p)
}

// Size returns the terminal dimensions, or 80x24 when they are unknown.
func (s *Screen) Size() (width, height int) {
	if s.fd < 0 {
		return 80, 24
	}
	w, h, err := terminalSize(s.fd)
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

func hex(c skin.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func (s *Screen) style(fg, bg skin.Color) lipgloss.Style {
	st := s.renderer.NewStyle()
	if fg.A != 0 {
		st = st.Foreground(hex(fg))
	}
	if bg.A != 0 {
		st = st.Background(hex(bg))
	}
	return st
}

// Render returns the buffer as styled text, one line per row.
func (s *Screen) Render(b *Buffer) string {
	lines := make([]string, b.height)
	var run strings.Builder
	for y := 0; y < b.height; y++ {
		var line strings.Builder
		var fg, bg skin.Color
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(s.style(fg, bg).Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < b.width; x++ {
			c := b.cells[b.index(x, y)]
			if c.Rune == continuation {
				continue
			}
			if c.Rune == ' ' || c.Rune == 0 {
				// the foreground of a blank cell is invisible
				c.FG = fg
			}
			if x == 0 || c.FG != fg || c.BG != bg {
				flush()
				fg, bg = c.FG, c.BG
			}
			if c.Rune == 0 {
				c.Rune = ' '
			}
			run.WriteRune(c.Rune)
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

// Flush writes the buffer, homing the cursor first on a terminal.
func (s *Screen) Flush(b *Buffer) error {
	out := s.Render(b)
	if s.tty {
		out = "\x1b[H" + out
	}
	_, err := io.WriteString(s.out, out)
	return err
}
