package skin

import (
	"math"
)

// Measure computes el's DesiredSize for the space its parent offers.
//
// Fixed Width/Height (> 0) replace the content size on their axis; 0 means
// size to content. Margins are removed from available before MeasureOverride
// and added back to the result. A valid element offered the same space is
// not measured again.
func Measure(rc *RenderContext, el Element, available Size) {
	fe := el.Framework()
	if !fe.IsVisible.GetValue() {
		fe.desired = Size{}
		return
	}
	if fe.measureValid && fe.lastAvailable == available {
		return
	}
	fe.lastAvailable = available

	margin := fe.Margin.GetValue()
	inner := available.Deflate(margin)
	width, height := fe.Width.GetValue(), fe.Height.GetValue()
	if width > 0 {
		inner.Width = width
	}
	if height > 0 {
		inner.Height = height
	}

	content := measureContent(rc, el, inner)

	size := content
	if width > 0 {
		size.Width = width
	}
	if height > 0 {
		size.Height = height
	}
	size.Width = math.Max(size.Width, fe.MinWidth.GetValue())
	size.Height = math.Max(size.Height, fe.MinHeight.GetValue())

	if d := size.Inflate(margin); d != fe.desired {
		fe.desired = d
		fe.arrangeValid = false
	}
	fe.measureValid = true
}

func measureContent(rc *RenderContext, el Element, inner Size) Size {
	if t := el.Framework().LayoutTransform.GetValue(); t != nil {
		defer rc.PushTransform(*t).Pop()
	}
	return el.MeasureOverride(rc, inner)
}

// Arrange assigns el its final rectangle inside the slot final, which is in
// absolute window coordinates and includes el's margins.
//
// Stretch fills the slot on its axis unless a fixed size is set; the other
// alignments keep the desired size and shift by none, half or all of the
// slack. The first arrange and every change of the resulting rectangle mark
// the element's style triggers for re-evaluation before the next render.
func Arrange(rc *RenderContext, el Element, final Rect) {
	fe := el.Framework()
	if !fe.IsVisible.GetValue() {
		return
	}
	if !fe.measureValid {
		Measure(rc, el, final.Size())
	}
	if fe.arrangeValid && fe.arranged && fe.finalRect == final {
		return
	}

	margin := fe.Margin.GetValue()
	slot := final.Deflate(margin)
	desired := fe.desired.Deflate(margin)

	x, width := alignAxis(fe.HorizontalAlignment.GetValue(), slot.X, slot.Width, desired.Width, fe.Width.GetValue(), fe.MinWidth.GetValue())
	y, height := alignAxis(fe.VerticalAlignment.GetValue(), slot.Y, slot.Height, desired.Height, fe.Height.GetValue(), fe.MinHeight.GetValue())
	rect := Rect{X: x, Y: y, Width: width, Height: height}

	if !fe.arranged || rect != fe.actual {
		fe.triggersPending = true
	}
	fe.actual = rect
	fe.finalRect = final
	fe.arranged = true

	arrangeContent(rc, el, rect)
	fe.arrangeValid = true
}

func arrangeContent(rc *RenderContext, el Element, rect Rect) {
	if t := el.Framework().LayoutTransform.GetValue(); t != nil {
		defer rc.PushTransform(*t).Pop()
	}
	el.ArrangeOverride(rc, rect)
}

// alignAxis places a length inside a slot on one axis.
func alignAxis(a Alignment, start, slot, desired, fixed, min float64) (pos, length float64) {
	switch {
	case fixed > 0:
		length = fixed
	case a == AlignStretch:
		length = slot
	default:
		length = math.Min(desired, slot)
	}
	length = math.Max(length, min)
	if a == AlignStretch && fixed > 0 {
		a = AlignCenter
	}
	return start + a.offset(slot-length), length
}

// Render draws el and its subtree. Each visible node pushes its layout
// transform and opacity and releases them when it returns, so the context
// depth is the same before and after the call.
func Render(rc *RenderContext, el Element) {
	fe := el.Framework()
	if !fe.IsVisible.GetValue() {
		return
	}
	defer rc.Push(fe.renderTransform(), fe.Opacity.GetValue()).Pop()
	fe.totalOpacity = rc.Opacity()

	if fe.triggersPending {
		fe.triggersPending = false
		fe.evaluateTriggers()
	}

	el.RenderOverride(rc)
	for _, c := range el.VisualChildren() {
		Render(rc, c)
	}
}

// measureChildren measures every child with the same space and returns the
// largest desired size. It is the default for single-slot containers.
func measureChildren(rc *RenderContext, children []Element, available Size) Size {
	var size Size
	for _, c := range children {
		Measure(rc, c, available)
		d := c.Framework().DesiredSize()
		size.Width = math.Max(size.Width, d.Width)
		size.Height = math.Max(size.Height, d.Height)
	}
	return size
}

// arrangeChildren gives every child the whole rectangle.
func arrangeChildren(rc *RenderContext, children []Element, final Rect) {
	for _, c := range children {
		Arrange(rc, c, final)
	}
}
