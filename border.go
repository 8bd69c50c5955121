package skin

// Border draws a background and an edge around a single child, inset by
// BorderThickness and Padding.
type Border struct {
	FrameworkElement

	Child           Property[Element]
	Background      Property[Color]
	BorderBrush     Property[Color]
	BorderThickness Property[Thickness]
	Padding         Property[Thickness]

	slot contentSlot
	fill geometry
	edge geometry
}

// NewBorder creates a border around child, which may be nil.
func NewBorder(child Element) *Border {
	b := &Border{}
	b.initFramework(b)
	b.slot.owner = &b.FrameworkElement
	b.Child.init("Child", nil)
	b.Background.init("Background", Color{})
	b.BorderBrush.init("BorderBrush", Color{})
	b.BorderThickness.init("BorderThickness", Thickness{})
	b.Padding.init("Padding", Thickness{})
	Register(&b.FrameworkElement, &b.Background)
	Register(&b.FrameworkElement, &b.BorderBrush)
	Register(&b.FrameworkElement, &b.BorderThickness)
	Register(&b.FrameworkElement, &b.Padding)
	Register(&b.FrameworkElement, &b.Child)

	b.Child.Attach(func(el Element) { b.slot.set(el, nil) })
	b.Background.Attach(func(Color) { b.fill.FreeGeometry() })
	b.BorderBrush.Attach(func(Color) { b.edge.FreeGeometry() })
	b.BorderThickness.Attach(func(Thickness) {
		b.edge.FreeGeometry()
		b.Invalidate()
	})
	b.Padding.Attach(func(Thickness) { b.Invalidate() })
	if child != nil {
		b.Child.SetValue(child)
	}
	return b
}

// Fill sets the background colour.
func (b *Border) Fill(c Color) *Border {
	b.Background.SetValue(c)
	return b
}

// Edge sets the border colour and thickness.
func (b *Border) Edge(c Color, thickness float64) *Border {
	b.BorderBrush.SetValue(c)
	b.BorderThickness.SetValue(Uniform(thickness))
	return b
}

// Pad sets uniform padding.
func (b *Border) Pad(p float64) *Border {
	b.Padding.SetValue(Uniform(p))
	return b
}

// VisualChildren implements Element.
func (b *Border) VisualChildren() []Element { return b.slot.children() }

// MeasureOverride implements Element.
func (b *Border) MeasureOverride(rc *RenderContext, available Size) Size {
	bt, pad := b.BorderThickness.GetValue(), b.Padding.GetValue()
	inner := available.Deflate(bt).Deflate(pad)
	return measureChildren(rc, b.slot.children(), inner).Inflate(pad).Inflate(bt)
}

// ArrangeOverride implements Element.
func (b *Border) ArrangeOverride(rc *RenderContext, final Rect) {
	arrangeChildren(rc, b.slot.children(), final.Deflate(b.BorderThickness.GetValue()).Deflate(b.Padding.GetValue()))
}

// RenderOverride draws the background, then the four edges.
func (b *Border) RenderOverride(rc *RenderContext) {
	r := b.ActualBounds()
	b.fill.renderFill(rc, r.Deflate(b.BorderThickness.GetValue()), b.Background.GetValue())

	brush, bt := b.BorderBrush.GetValue(), b.BorderThickness.GetValue()
	if brush.IsTransparent() || bt == (Thickness{}) || r.Width <= 0 || r.Height <= 0 {
		return
	}
	vb := b.edge.ensure(r, func(r Rect) []Vertex {
		var vs []Vertex
		for _, e := range []Rect{
			{X: r.X, Y: r.Y, Width: r.Width, Height: bt.Top},
			{X: r.X, Y: r.Bottom() - bt.Bottom, Width: r.Width, Height: bt.Bottom},
			{X: r.X, Y: r.Y + bt.Top, Width: bt.Left, Height: r.Height - bt.Top - bt.Bottom},
			{X: r.Right() - bt.Right, Y: r.Y + bt.Top, Width: bt.Right, Height: r.Height - bt.Top - bt.Bottom},
		} {
			if e.Width > 0 && e.Height > 0 {
				vs = append(vs, rectVertices(e, brush)...)
			}
		}
		return vs
	})
	drawBuffer(rc, vb, TriangleList)
}

// PredictFocus delegates to the child.
func (b *Border) PredictFocus(current Element, dir Direction, strict bool) Element {
	return searchFocus(b.slot.children(), current, dir, strict)
}

// Deallocate implements Element.
func (b *Border) Deallocate() {
	b.fill.FreeGeometry()
	b.edge.FreeGeometry()
}

// Clone implements Element.
func (b *Border) Clone() Element {
	c := NewBorder(nil)
	b.cloneInto(&c.FrameworkElement)
	return c
}
