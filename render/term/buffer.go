package term

import (
	"strings"

	"github.com/kungfusheep/skin"
	"github.com/mattn/go-runewidth"
)

// continuation marks the cell covered by the right half of a wide rune.
const continuation rune = -1

// Cell is one character position of the raster.
type Cell struct {
	Rune rune
	FG   skin.Color
	BG   skin.Color
}

// EmptyCell returns a blank cell with the terminal's default colours.
func EmptyCell() Cell {
	return Cell{Rune: ' '}
}

// Buffer is a 2D grid of cells the backend rasterizes into.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a blank buffer with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Width returns the buffer width.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height.
func (b *Buffer) Height() int { return b.height }

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) { return b.width, b.height }

// InBounds returns true if the given coordinates are within the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) index(x, y int) int {
	return y*b.width + x
}

// Get returns the cell at the given coordinates.
// Returns an empty cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return EmptyCell()
	}
	return b.cells[b.index(x, y)]
}

// Set sets the cell at the given coordinates.
// Does nothing if out of bounds.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)] = c
}

// Clear resets every cell.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = EmptyCell()
	}
}

// WriteString writes s from x,y in the given colour, keeping each cell's
// background, and stops after maxWidth columns. It returns the columns used.
func (b *Buffer) WriteString(x, y int, s string, fg skin.Color, maxWidth int) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > maxWidth || !b.InBounds(x+w-1, y) {
			break
		}
		if x >= 0 {
			c := b.cells[b.index(x, y)]
			c.Rune, c.FG = r, fg
			b.cells[b.index(x, y)] = c
			if w == 2 {
				next := b.cells[b.index(x+1, y)]
				next.Rune = continuation
				b.cells[b.index(x+1, y)] = next
			}
		}
		x += w
		used += w
	}
	return used
}

// GetLine returns the content of a single line with trailing spaces removed.
func (b *Buffer) GetLine(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < b.width; x++ {
		switch r := b.cells[b.index(x, y)].Rune; r {
		case continuation:
		case 0:
			sb.WriteByte(' ')
		default:
			sb.WriteRune(r)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// String returns the buffer contents with trailing spaces and trailing empty
// lines removed.
func (b *Buffer) String() string {
	lines := make([]string, b.height)
	for y := range lines {
		lines[y] = b.GetLine(y)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Resize resizes the buffer to new dimensions.
// Existing content is preserved where it fits.
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == b.width && height == b.height && b.cells != nil {
		return
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = EmptyCell()
	}
	for y := 0; y < min(height, b.height); y++ {
		for x := 0; x < min(width, b.width); x++ {
			cells[y*width+x] = b.cells[y*b.width+x]
		}
	}
	b.cells = cells
	b.width = width
	b.height = height
}
