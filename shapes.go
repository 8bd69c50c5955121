package skin

import (
	"math"
)

// geometry caches one tessellated vertex buffer. The buffer is rebuilt when
// it was freed or the rectangle it was built for changed.
type geometry struct {
	vb     *VertexBuffer
	bounds Rect
}

// FreeGeometry discards the cached vertex buffer and its device resource.
func (g *geometry) FreeGeometry() {
	if g.vb != nil {
		g.vb.Free()
		g.vb = nil
	}
}

// HasGeometry reports whether a tessellated buffer is cached.
func (g *geometry) HasGeometry() bool { return g.vb != nil }

func (g *geometry) ensure(r Rect, build func(Rect) []Vertex) *VertexBuffer {
	if g.vb != nil && g.bounds == r {
		return g.vb
	}
	g.FreeGeometry()
	g.vb = &VertexBuffer{Vertices: build(r)}
	g.bounds = r
	return g.vb
}

// renderFill draws r filled with c; transparent colours draw nothing.
func (g *geometry) renderFill(rc *RenderContext, r Rect, c Color) {
	if c.IsTransparent() || r.Width <= 0 || r.Height <= 0 {
		return
	}
	vb := g.ensure(r, func(r Rect) []Vertex { return rectVertices(r, c) })
	drawBuffer(rc, vb, TriangleList)
}

func rectVertices(r Rect, c Color) []Vertex {
	x0, y0 := float32(r.X), float32(r.Y)
	x1, y1 := float32(r.Right()), float32(r.Bottom())
	return []Vertex{
		{X: x0, Y: y0, Color: c, U: 0, V: 0},
		{X: x1, Y: y0, Color: c, U: 1, V: 0},
		{X: x0, Y: y1, Color: c, U: 0, V: 1},
		{X: x1, Y: y0, Color: c, U: 1, V: 0},
		{X: x1, Y: y1, Color: c, U: 1, V: 1},
		{X: x0, Y: y1, Color: c, U: 0, V: 1},
	}
}

// ellipseSegments is the number of rim points of a tessellated ellipse.
const ellipseSegments = 32

func ellipseVertices(r Rect, c Color) []Vertex {
	center := r.Center()
	rx, ry := r.Width/2, r.Height/2
	vs := make([]Vertex, 0, ellipseSegments+2)
	vs = append(vs, Vertex{X: float32(center.X), Y: float32(center.Y), Color: c, U: 0.5, V: 0.5})
	for i := 0; i <= ellipseSegments; i++ {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		sin, cos := math.Sincos(a)
		vs = append(vs, Vertex{
			X:     float32(center.X + rx*cos),
			Y:     float32(center.Y + ry*sin),
			Color: c,
			U:     float32(0.5 + cos/2),
			V:     float32(0.5 + sin/2),
		})
	}
	return vs
}

// Shape is the base of filled primitives.
type Shape struct {
	FrameworkElement
	geometry

	Fill Property[Color]
}

func (s *Shape) initShape(self Element) {
	s.initFramework(self)
	s.Fill.init("Fill", Color{})
	Register(&s.FrameworkElement, &s.Fill)
	s.Fill.Attach(func(Color) { s.FreeGeometry() })
	for _, p := range []*Property[float64]{&s.Width, &s.Height} {
		p.Attach(func(float64) { s.FreeGeometry() })
	}
	s.Margin.Attach(func(Thickness) { s.FreeGeometry() })
}

// Deallocate implements Element.
func (s *Shape) Deallocate() { s.FreeGeometry() }

// Rectangle is a filled axis-aligned rectangle.
type Rectangle struct {
	Shape
}

// NewRectangle creates a rectangle filled with c.
func NewRectangle(c Color) *Rectangle {
	r := &Rectangle{}
	r.initShape(r)
	r.Fill.SetValue(c)
	return r
}

// Size fixes the rectangle's size.
func (r *Rectangle) Size(w, h float64) *Rectangle {
	r.Width.SetValue(w)
	r.Height.SetValue(h)
	return r
}

// RenderOverride implements Element.
func (r *Rectangle) RenderOverride(rc *RenderContext) {
	r.renderFill(rc, r.ActualBounds(), r.Fill.GetValue())
}

// Clone implements Element.
func (r *Rectangle) Clone() Element {
	c := NewRectangle(Color{})
	r.cloneInto(&c.FrameworkElement)
	return c
}

// Ellipse is a filled ellipse inscribed in its bounds.
type Ellipse struct {
	Shape
}

// NewEllipse creates an ellipse filled with c.
func NewEllipse(c Color) *Ellipse {
	e := &Ellipse{}
	e.initShape(e)
	e.Fill.SetValue(c)
	return e
}

// RenderOverride implements Element.
func (e *Ellipse) RenderOverride(rc *RenderContext) {
	fill := e.Fill.GetValue()
	b := e.ActualBounds()
	if fill.IsTransparent() || b.Width <= 0 || b.Height <= 0 {
		return
	}
	vb := e.ensure(b, func(r Rect) []Vertex { return ellipseVertices(r, fill) })
	drawBuffer(rc, vb, TriangleFan)
}

// Clone implements Element.
func (e *Ellipse) Clone() Element {
	c := NewEllipse(Color{})
	e.cloneInto(&c.FrameworkElement)
	return c
}

// Image shows a texture asset. Until the asset cache reports it loaded the
// image sizes to its fixed Width/Height (or nothing) and keeps invalidating
// itself each frame so layout picks up the native size once it arrives.
type Image struct {
	FrameworkElement

	Source Property[string]

	asset   Asset
	pending bool
}

// NewImage creates an image for the asset id.
func NewImage(source string) *Image {
	img := &Image{}
	img.initFramework(img)
	img.Source.init("Source", source)
	Register(&img.FrameworkElement, &img.Source)
	img.Source.Attach(func(string) {
		img.asset = nil
		img.Invalidate()
	})
	return img
}

// IsLoaded reports whether the texture is ready.
func (img *Image) IsLoaded() bool { return img.asset != nil && img.asset.IsAllocated() }

func (img *Image) load(rc *RenderContext) Asset {
	if img.asset == nil && img.Source.GetValue() != "" && rc.Assets() != nil {
		img.asset = rc.Assets().Load(img.Source.GetValue(), true)
	}
	return img.asset
}

// MeasureOverride implements Element.
func (img *Image) MeasureOverride(rc *RenderContext, available Size) Size {
	a := img.load(rc)
	if a == nil || !a.IsAllocated() {
		img.pending = a != nil
		return Size{}
	}
	img.pending = false
	return a.NativeSize()
}

// RenderOverride implements Element.
func (img *Image) RenderOverride(rc *RenderContext) {
	a := img.load(rc)
	if a == nil {
		return
	}
	if !a.IsAllocated() {
		img.pending = true
		img.Invalidate()
		return
	}
	if img.pending {
		img.pending = false
		img.Invalidate()
		return
	}
	if tr, ok := rc.Backend().(TextureRenderer); ok {
		tr.DrawTexture(a, img.ActualBounds(), rc.Transform(), rc.Opacity())
	}
}

// Clone implements Element.
func (img *Image) Clone() Element {
	c := NewImage("")
	img.cloneInto(&c.FrameworkElement)
	return c
}
