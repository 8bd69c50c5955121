package skin

import (
	"math"
)

// Size is a width/height pair in layout units.
// Either component may be +Inf when a parent offers unbounded space.
type Size struct {
	Width, Height float64
}

// Deflate removes a thickness from both axes, never going below zero.
func (s Size) Deflate(t Thickness) Size {
	return Size{
		Width:  math.Max(0, s.Width-t.Left-t.Right),
		Height: math.Max(0, s.Height-t.Top-t.Bottom),
	}
}

// Inflate adds a thickness to both axes.
func (s Size) Inflate(t Thickness) Size {
	return Size{Width: s.Width + t.Left + t.Right, Height: s.Height + t.Top + t.Bottom}
}

// Point is a position in layout units.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. Positions are absolute window coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the centre point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Contains reports whether the point lies inside the rectangle (right/bottom exclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Deflate shrinks the rectangle by a thickness, clamping the size at zero.
func (r Rect) Deflate(t Thickness) Rect {
	return Rect{
		X:      r.X + t.Left,
		Y:      r.Y + t.Top,
		Width:  math.Max(0, r.Width-t.Left-t.Right),
		Height: math.Max(0, r.Height-t.Top-t.Bottom),
	}
}

// Thickness describes the four edges of a margin, padding or border.
type Thickness struct {
	Left, Top, Right, Bottom float64
}

// Uniform returns a thickness with all four edges set to v.
func Uniform(v float64) Thickness {
	return Thickness{Left: v, Top: v, Right: v, Bottom: v}
}

// Orientation is the stacking axis of a panel.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Alignment positions an element inside the slot its parent gives it.
// For vertical alignment Left means Top and Right means Bottom.
type Alignment int

const (
	AlignStretch Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Aliases for vertical alignment.
const (
	AlignTop    = AlignLeft
	AlignBottom = AlignRight
)

// offset returns how far to shift an element of the given slack inside its slot.
func (a Alignment) offset(slack float64) float64 {
	if slack <= 0 {
		return 0
	}
	switch a {
	case AlignCenter:
		return slack / 2
	case AlignRight:
		return slack
	}
	return 0
}

// Color is a straight (non-premultiplied) RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// RGBA builds a colour.
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// RGB builds an opaque colour.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

// IsTransparent reports whether nothing would be drawn with this colour.
func (c Color) IsTransparent() bool { return c.A == 0 }

// Matrix is a 2D affine transform:
//
//	| M11 M12 0 |
//	| M21 M22 0 |
//	| OffsetX OffsetY 1 |
//
// Points are row vectors, so a.Multiply(b) applies a first, then b.
type Matrix struct {
	M11, M12, M21, M22 float64
	OffsetX, OffsetY   float64
}

// Identity returns the identity transform.
func Identity() Matrix { return Matrix{M11: 1, M22: 1} }

// Translate returns a translation.
func Translate(x, y float64) Matrix { return Matrix{M11: 1, M22: 1, OffsetX: x, OffsetY: y} }

// Scale returns a scale about the origin.
func Scale(sx, sy float64) Matrix { return Matrix{M11: sx, M22: sy} }

// Rotate returns a clockwise rotation about the origin, in degrees.
func Rotate(degrees float64) Matrix {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Matrix{M11: cos, M12: sin, M21: -sin, M22: cos}
}

// IsIdentity reports whether m leaves every point unchanged.
func (m Matrix) IsIdentity() bool { return m == Identity() }

// Multiply returns the transform that applies m and then n.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		M11:     m.M11*n.M11 + m.M12*n.M21,
		M12:     m.M11*n.M12 + m.M12*n.M22,
		M21:     m.M21*n.M11 + m.M22*n.M21,
		M22:     m.M21*n.M12 + m.M22*n.M22,
		OffsetX: m.OffsetX*n.M11 + m.OffsetY*n.M21 + n.OffsetX,
		OffsetY: m.OffsetX*n.M12 + m.OffsetY*n.M22 + n.OffsetY,
	}
}

// Transform maps a point.
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: p.X*m.M11 + p.Y*m.M21 + m.OffsetX,
		Y: p.X*m.M12 + p.Y*m.M22 + m.OffsetY,
	}
}

// TransformBounds returns the axis-aligned bounding box of a transformed rectangle.
func (m Matrix) TransformBounds(r Rect) Rect {
	corners := [4]Point{
		m.Transform(Point{r.X, r.Y}),
		m.Transform(Point{r.Right(), r.Y}),
		m.Transform(Point{r.X, r.Bottom()}),
		m.Transform(Point{r.Right(), r.Bottom()}),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// About returns m applied around the given origin instead of (0,0).
func (m Matrix) About(origin Point) Matrix {
	return Translate(-origin.X, -origin.Y).Multiply(m).Multiply(Translate(origin.X, origin.Y))
}

func isInf(v float64) bool { return math.IsInf(v, 1) }

// finite replaces an unbounded value with a fallback.
func finite(v, fallback float64) float64 {
	if isInf(v) || math.IsNaN(v) {
		return fallback
	}
	return v
}
