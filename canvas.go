package skin

import (
	"math"
)

func init() {
	registerAttached("Canvas.Left", 0.0)
	registerAttached("Canvas.Top", 0.0)
}

// Canvas places each child at its Canvas.Left/Canvas.Top offset, at the
// child's desired size. Children are measured with unbounded space.
type Canvas struct {
	Panel
}

// NewCanvas creates an empty canvas.
func NewCanvas() *Canvas {
	c := &Canvas{}
	c.initPanel(c)
	return c
}

// Add appends children.
func (c *Canvas) Add(children ...Element) *Canvas {
	c.children.Add(children...)
	return c
}

// SetPosition sets the Canvas.Left and Canvas.Top values of el.
func SetPosition(el Element, left, top float64) {
	fe := el.Framework()
	attached(fe, "Canvas.Left", 0.0).SetValue(left)
	attached(fe, "Canvas.Top", 0.0).SetValue(top)
}

// Position returns the Canvas.Left and Canvas.Top values of el.
func Position(el Element) (left, top float64) {
	return attachedValue(el, "Canvas.Left", 0.0), attachedValue(el, "Canvas.Top", 0.0)
}

// MeasureOverride implements Element. The canvas wants the extent of its
// children's far edges.
func (c *Canvas) MeasureOverride(rc *RenderContext, available Size) Size {
	inf := Size{Width: math.Inf(1), Height: math.Inf(1)}
	var size Size
	for _, ch := range c.children.Items() {
		Measure(rc, ch, inf)
		left, top := Position(ch)
		d := ch.Framework().DesiredSize()
		size.Width = math.Max(size.Width, left+d.Width)
		size.Height = math.Max(size.Height, top+d.Height)
	}
	return size
}

// ArrangeOverride implements Element.
func (c *Canvas) ArrangeOverride(rc *RenderContext, final Rect) {
	for _, ch := range c.children.Items() {
		left, top := Position(ch)
		d := ch.Framework().DesiredSize()
		Arrange(rc, ch, Rect{X: final.X + left, Y: final.Y + top, Width: d.Width, Height: d.Height})
	}
}

// Clone implements Element.
func (c *Canvas) Clone() Element {
	n := NewCanvas()
	c.clonePanel(&n.Panel)
	return n
}
