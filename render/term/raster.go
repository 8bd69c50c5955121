package term

import (
	"math"

	"github.com/kungfusheep/skin"
)

// blend composites src over dst with the given coverage alpha. A transparent
// destination is the terminal's own background, so the source keeps its
// reduced alpha instead of mixing with black.
func blend(dst, src skin.Color, alpha float64) skin.Color {
	a := float64(src.A) / 255 * alpha
	if a <= 0 {
		return dst
	}
	if a >= 1 {
		return skin.RGB(src.R, src.G, src.B)
	}
	if dst.A == 0 {
		return skin.RGBA(src.R, src.G, src.B, uint8(math.Round(a*255)))
	}
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(s)*a + float64(d)*(1-a)))
	}
	return skin.RGBA(mix(dst.R, src.R), mix(dst.G, src.G), mix(dst.B, src.B), max(dst.A, uint8(math.Round(a*255))))
}

// coverage records which cells one draw call touched so that cells on a
// shared edge are painted once.
type coverage struct {
	marks []uint32
	gen   uint32
}

func (c *coverage) reset(n int) {
	if len(c.marks) != n {
		c.marks = make([]uint32, n)
		c.gen = 0
	}
	c.gen++
	if c.gen == 0 {
		clear(c.marks)
		c.gen = 1
	}
}

// claim reports whether cell i is touched for the first time in this call.
func (c *coverage) claim(i int) bool {
	if c.marks[i] == c.gen {
		return false
	}
	c.marks[i] = c.gen
	return true
}

type point struct{ x, y float64 }

func edge(a, b, p point) float64 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

// fillTriangle paints every cell whose centre lies inside the triangle.
func (r *rasterizer) fillTriangle(a, b, c point, color skin.Color) {
	area := edge(a, b, c)
	if area == 0 {
		return
	}
	x0 := max(int(math.Floor(min(a.x, b.x, c.x))), 0)
	y0 := max(int(math.Floor(min(a.y, b.y, c.y))), 0)
	x1 := min(int(math.Ceil(max(a.x, b.x, c.x))), r.buf.width)
	y1 := min(int(math.Ceil(max(a.y, b.y, c.y))), r.buf.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := point{float64(x) + 0.5, float64(y) + 0.5}
			w0, w1, w2 := edge(b, c, p), edge(c, a, p), edge(a, b, p)
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			r.paint(x, y, color)
		}
	}
}

// drawLine paints the cells a line passes through.
func (r *rasterizer) drawLine(a, b point, color skin.Color) {
	steps := int(math.Ceil(max(math.Abs(b.x-a.x), math.Abs(b.y-a.y))))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := int(math.Floor(a.x + (b.x-a.x)*t))
		y := int(math.Floor(a.y + (b.y-a.y)*t))
		if r.buf.InBounds(x, y) {
			r.paint(x, y, color)
		}
	}
}

type rasterizer struct {
	buf     *Buffer
	cov     coverage
	opacity float64
}

func (r *rasterizer) paint(x, y int, color skin.Color) {
	i := r.buf.index(x, y)
	if !r.cov.claim(i) {
		return
	}
	cell := r.buf.cells[i]
	cell.BG = blend(cell.BG, color, r.opacity)
	if float64(color.A)/255*r.opacity >= 1 {
		cell.Rune = ' '
	}
	r.buf.cells[i] = cell
}
