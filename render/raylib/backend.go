// Package raylib renders a skin window with raylib. One layout unit is
// Scale pixels.
package raylib

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/kungfusheep/skin"
	"github.com/kungfusheep/skin/logutil"
)

var logger = logutil.GetLogger("[raylib] ")

// mesh is the backend copy of a vertex buffer, in layout units.
type mesh struct {
	points []rl.Vector2
	colors []color.RGBA
}

// Backend implements skin.Backend, skin.TextRenderer and skin.TextureRenderer.
// It must only be used between rl.BeginDrawing and rl.EndDrawing.
type Backend struct {
	Scale float64

	bound   *mesh
	world   skin.Matrix
	opacity float64
}

// NewBackend creates a backend drawing one unit as scale pixels.
func NewBackend(scale float64) *Backend {
	if scale <= 0 {
		scale = 1
	}
	return &Backend{Scale: scale}
}

func (b *Backend) toScreen(world skin.Matrix) skin.Matrix {
	return world.Multiply(skin.Scale(b.Scale, b.Scale))
}

func rgba(c skin.Color, opacity float64) color.RGBA {
	a := math.Round(float64(c.A) * math.Max(0, math.Min(opacity, 1)))
	return rl.NewColor(c.R, c.G, c.B, uint8(a))
}

// Allocate implements skin.Backend. Vertices stay in layout units; the
// world transform is applied when drawing.
func (b *Backend) Allocate(vb *skin.VertexBuffer) {
	m := &mesh{
		points: make([]rl.Vector2, len(vb.Vertices)),
		colors: make([]color.RGBA, len(vb.Vertices)),
	}
	for i, v := range vb.Vertices {
		m.points[i] = rl.NewVector2(v.X, v.Y)
		m.colors[i] = rgba(v.Color, 1)
	}
	vb.SetHandle(m, nil)
}

// BeginRender implements skin.Backend.
func (b *Backend) BeginRender(vb *skin.VertexBuffer, _ skin.PrimitiveType, world skin.Matrix, opacity float64) bool {
	m, ok := vb.Handle().(*mesh)
	if !ok {
		return false
	}
	b.bound, b.world, b.opacity = m, b.toScreen(world), opacity
	return true
}

func (b *Backend) vertex(i int) rl.Vector2 {
	p := b.bound.points[i]
	q := b.world.Transform(skin.Point{X: float64(p.X), Y: float64(p.Y)})
	return rl.NewVector2(float32(q.X), float32(q.Y))
}

func (b *Backend) tint(i int) color.RGBA {
	c := b.bound.colors[i]
	return rl.Fade(c, float32(float64(c.A)/255*b.opacity))
}

// triangle draws with raylib's counter-clockwise winding whatever the
// winding of the source vertices.
func triangle(p1, p2, p3 rl.Vector2, c color.RGBA) {
	cross := (p2.X-p1.X)*(p3.Y-p1.Y) - (p2.Y-p1.Y)*(p3.X-p1.X)
	if cross > 0 {
		p2, p3 = p3, p2
	}
	rl.DrawTriangle(p1, p2, p3, c)
}

// DrawPrimitives implements skin.Backend.
func (b *Backend) DrawPrimitives(primitive skin.PrimitiveType, start, count int) {
	if b.bound == nil {
		return
	}
	n := len(b.bound.points)
	for i := start; i < start+count; i++ {
		switch primitive {
		case skin.TriangleList:
			if 3*i+2 >= n {
				return
			}
			triangle(b.vertex(3*i), b.vertex(3*i+1), b.vertex(3*i+2), b.tint(3*i))
		case skin.TriangleFan:
			if i+2 >= n {
				return
			}
			triangle(b.vertex(0), b.vertex(i+1), b.vertex(i+2), b.tint(i+1))
		case skin.LineList:
			if 2*i+1 >= n {
				return
			}
			rl.DrawLineV(b.vertex(2*i), b.vertex(2*i+1), b.tint(2*i))
		}
	}
}

// EndRender implements skin.Backend.
func (b *Backend) EndRender() { b.bound = nil }

// DrawText implements skin.TextRenderer.
func (b *Backend) DrawText(font skin.Asset, text string, size float64, bounds skin.Rect, c skin.Color, world skin.Matrix, opacity float64) {
	f, ok := font.(*Font)
	if !ok || !f.IsAllocated() {
		return
	}
	m := b.toScreen(world)
	pos := m.Transform(skin.Point{X: bounds.X, Y: bounds.Y})
	px := float32(size * b.Scale * math.Abs(world.M22))
	rl.DrawTextEx(f.font, text, rl.NewVector2(float32(pos.X), float32(pos.Y)), px, f.spacing(px), rgba(c, opacity))
}

// DrawTexture implements skin.TextureRenderer.
func (b *Backend) DrawTexture(texture skin.Asset, bounds skin.Rect, world skin.Matrix, opacity float64) {
	t, ok := texture.(*Texture)
	if !ok || !t.IsAllocated() {
		return
	}
	r := b.toScreen(world).TransformBounds(bounds)
	src := rl.NewRectangle(0, 0, float32(t.tex.Width), float32(t.tex.Height))
	dst := rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height))
	if dst.Width <= 0 || dst.Height <= 0 || src.Width <= 0 || src.Height <= 0 {
		return
	}
	rl.DrawTexturePro(t.tex, src, dst, rl.NewVector2(0, 0), 0, rgba(skin.RGB(255, 255, 255), opacity))
}
