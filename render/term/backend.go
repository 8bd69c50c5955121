// Package term renders a skin window into a grid of terminal cells.
//
// One layout unit is one cell. Vertex buffers are rasterized by cell centre
// into cell backgrounds, text is written into cell runes, and the finished
// Buffer is printed by a Screen.
package term

import (
	"math"
	"slices"

	"github.com/kungfusheep/skin"
	"github.com/kungfusheep/skin/logutil"
)

var logger = logutil.GetLogger("[term] ")

// device is the backend-side copy of a vertex buffer.
type device struct {
	verts []skin.Vertex
}

// Backend implements skin.Backend, skin.TextRenderer and skin.TextureRenderer
// over a cell Buffer.
type Backend struct {
	buf    *Buffer
	raster rasterizer
	bound  *device
	world  skin.Matrix
	live   int
}

// NewBackend creates a backend drawing into buf.
func NewBackend(buf *Buffer) *Backend {
	return &Backend{buf: buf, raster: rasterizer{buf: buf}}
}

// Buffer returns the raster target.
func (b *Backend) Buffer() *Buffer { return b.buf }

// Live returns the number of vertex buffers holding a device copy.
func (b *Backend) Live() int { return b.live }

// Draw runs one frame of win into the buffer, resized to the window.
func (b *Backend) Draw(win *skin.Window, assets skin.AssetCache) {
	size := win.Size()
	b.buf.Resize(int(size.Width), int(size.Height))
	b.buf.Clear()
	win.Frame(skin.NewRenderContext(b, assets))
}

// Allocate implements skin.Backend. Terminal buffers are ready at once.
func (b *Backend) Allocate(vb *skin.VertexBuffer) {
	d := &device{verts: slices.Clone(vb.Vertices)}
	b.live++
	vb.SetHandle(d, func() { b.live-- })
}

// BeginRender implements skin.Backend.
func (b *Backend) BeginRender(vb *skin.VertexBuffer, _ skin.PrimitiveType, world skin.Matrix, opacity float64) bool {
	d, ok := vb.Handle().(*device)
	if !ok {
		return false
	}
	b.bound, b.world = d, world
	b.raster.opacity = opacity
	b.raster.cov.reset(len(b.buf.cells))
	return true
}

func (b *Backend) point(v skin.Vertex) point {
	p := b.world.Transform(skin.Point{X: float64(v.X), Y: float64(v.Y)})
	return point{p.X, p.Y}
}

// DrawPrimitives implements skin.Backend. Each triangle is flat-shaded with
// the colour of its first vertex.
func (b *Backend) DrawPrimitives(primitive skin.PrimitiveType, start, count int) {
	if b.bound == nil {
		return
	}
	v := b.bound.verts
	for i := start; i < start+count; i++ {
		switch primitive {
		case skin.TriangleList:
			if 3*i+2 >= len(v) {
				return
			}
			b.raster.fillTriangle(b.point(v[3*i]), b.point(v[3*i+1]), b.point(v[3*i+2]), v[3*i].Color)
		case skin.TriangleFan:
			if i+2 >= len(v) {
				return
			}
			b.raster.fillTriangle(b.point(v[0]), b.point(v[i+1]), b.point(v[i+2]), v[i+1].Color)
		case skin.LineList:
			if 2*i+1 >= len(v) {
				return
			}
			b.raster.drawLine(b.point(v[2*i]), b.point(v[2*i+1]), v[2*i].Color)
		}
	}
}

// EndRender implements skin.Backend.
func (b *Backend) EndRender() { b.bound = nil }

// DrawText implements skin.TextRenderer. Text starts at the top-left cell of
// bounds and is clipped to its width.
func (b *Backend) DrawText(font skin.Asset, text string, size float64, bounds skin.Rect, color skin.Color, world skin.Matrix, opacity float64) {
	if color.A == 0 || opacity <= 0 {
		return
	}
	r := world.TransformBounds(bounds)
	x, y := int(math.Round(r.X)), int(math.Round(r.Y))
	if !b.buf.InBounds(max(x, 0), y) {
		return
	}
	fg := blend(b.buf.Get(max(x, 0), y).BG, color, opacity)
	fg.A = 255
	b.buf.WriteString(x, y, text, fg, int(math.Round(r.Width)))
}

// DrawTexture implements skin.TextureRenderer by sampling the image at each
// covered cell's centre.
func (b *Backend) DrawTexture(texture skin.Asset, bounds skin.Rect, world skin.Matrix, opacity float64) {
	img, ok := texture.(*Image)
	if !ok || !img.IsAllocated() {
		return
	}
	r := world.TransformBounds(bounds)
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	b.raster.opacity = opacity
	b.raster.cov.reset(len(b.buf.cells))
	x0, y0 := max(int(math.Floor(r.X)), 0), max(int(math.Floor(r.Y)), 0)
	x1, y1 := min(int(math.Ceil(r.Right())), b.buf.width), min(int(math.Ceil(r.Bottom())), b.buf.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			u := (float64(x) + 0.5 - r.X) / r.Width
			v := (float64(y) + 0.5 - r.Y) / r.Height
			if u < 0 || u >= 1 || v < 0 || v >= 1 {
				continue
			}
			b.raster.paint(x, y, img.sample(u, v))
		}
	}
}
