package skin

import (
	"math"
)

// WrapPanel places children left to right and starts a new line when the
// next child would cross the panel's width. Vertical orientation wraps top
// to bottom into columns instead.
type WrapPanel struct {
	Panel

	Orientation Property[Orientation]
}

// NewWrapPanel creates an empty wrap panel.
func NewWrapPanel(o Orientation) *WrapPanel {
	w := &WrapPanel{}
	w.initPanel(w)
	w.Orientation.init("Orientation", o)
	Register(&w.FrameworkElement, &w.Orientation)
	w.Orientation.Attach(func(Orientation) { w.Invalidate() })
	return w
}

// Add appends children.
func (w *WrapPanel) Add(children ...Element) *WrapPanel {
	w.children.Add(children...)
	return w
}

// uv maps a size onto the (main, cross) axes of the orientation.
func uv(o Orientation, s Size) (u, v float64) {
	if o == Horizontal {
		return s.Width, s.Height
	}
	return s.Height, s.Width
}

// wrapLines splits the children into lines no longer than limit.
func (w *WrapPanel) wrapLines(limit float64) [][]Element {
	o := w.Orientation.GetValue()
	var lines [][]Element
	var line []Element
	used := 0.0
	for _, c := range w.children.Items() {
		if !c.Framework().IsVisible.GetValue() {
			continue
		}
		u, _ := uv(o, c.Framework().DesiredSize())
		if len(line) > 0 && used+u > limit {
			lines = append(lines, line)
			line, used = nil, 0
		}
		line = append(line, c)
		used += u
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

func lineExtent(o Orientation, line []Element) (u, v float64) {
	for _, c := range line {
		cu, cv := uv(o, c.Framework().DesiredSize())
		u += cu
		v = math.Max(v, cv)
	}
	return u, v
}

// MeasureOverride implements Element.
func (w *WrapPanel) MeasureOverride(rc *RenderContext, available Size) Size {
	o := w.Orientation.GetValue()
	for _, c := range w.children.Items() {
		Measure(rc, c, available)
	}
	limit, _ := uv(o, available)
	var total, cross float64
	for _, line := range w.wrapLines(limit) {
		u, v := lineExtent(o, line)
		total = math.Max(total, u)
		cross += v
	}
	if o == Horizontal {
		return Size{Width: total, Height: cross}
	}
	return Size{Width: cross, Height: total}
}

// ArrangeOverride implements Element.
func (w *WrapPanel) ArrangeOverride(rc *RenderContext, final Rect) {
	o := w.Orientation.GetValue()
	limit, _ := uv(o, final.Size())
	cross := 0.0
	for _, line := range w.wrapLines(limit) {
		_, v := lineExtent(o, line)
		pos := 0.0
		for _, c := range line {
			u, _ := uv(o, c.Framework().DesiredSize())
			if o == Horizontal {
				Arrange(rc, c, Rect{X: final.X + pos, Y: final.Y + cross, Width: u, Height: v})
			} else {
				Arrange(rc, c, Rect{X: final.X + cross, Y: final.Y + pos, Width: v, Height: u})
			}
			pos += u
		}
		cross += v
	}
}

// Clone implements Element.
func (w *WrapPanel) Clone() Element {
	n := NewWrapPanel(w.Orientation.GetValue())
	w.clonePanel(&n.Panel)
	return n
}
