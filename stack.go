package skin

import (
	"math"
)

// StackPanel lays its children out in a single line along Orientation.
// Children get unbounded space along the stacking axis and the panel's
// extent across it.
type StackPanel struct {
	Panel

	Orientation Property[Orientation]
	Spacing     Property[float64]
}

// NewStackPanel creates an empty stack.
func NewStackPanel(o Orientation) *StackPanel {
	s := &StackPanel{}
	s.initPanel(s)
	s.Orientation.init("Orientation", o)
	s.Spacing.init("Spacing", 0)
	Register(&s.FrameworkElement, &s.Orientation)
	Register(&s.FrameworkElement, &s.Spacing)
	s.Orientation.Attach(func(Orientation) { s.Invalidate() })
	s.Spacing.Attach(func(float64) { s.Invalidate() })
	return s
}

// VStack creates a vertical stack holding children.
func VStack(children ...Element) *StackPanel {
	return NewStackPanel(Vertical).Add(children...)
}

// HStack creates a horizontal stack holding children.
func HStack(children ...Element) *StackPanel {
	return NewStackPanel(Horizontal).Add(children...)
}

// Add appends children.
func (s *StackPanel) Add(children ...Element) *StackPanel {
	s.children.Add(children...)
	return s
}

// Gap sets the spacing between children.
func (s *StackPanel) Gap(g float64) *StackPanel {
	s.Spacing.SetValue(g)
	return s
}

// MeasureOverride implements Element.
func (s *StackPanel) MeasureOverride(rc *RenderContext, available Size) Size {
	horizontal := s.Orientation.GetValue() == Horizontal
	gap := s.Spacing.GetValue()
	childAvail := Size{Width: available.Width, Height: math.Inf(1)}
	if horizontal {
		childAvail = Size{Width: math.Inf(1), Height: available.Height}
	}

	var size Size
	n := 0
	for _, c := range s.children.Items() {
		Measure(rc, c, childAvail)
		if !c.Framework().IsVisible.GetValue() {
			continue
		}
		d := c.Framework().DesiredSize()
		if n > 0 {
			d.Width += gap
			d.Height += gap
		}
		if horizontal {
			size.Width += d.Width
			size.Height = math.Max(size.Height, c.Framework().DesiredSize().Height)
		} else {
			size.Height += d.Height
			size.Width = math.Max(size.Width, c.Framework().DesiredSize().Width)
		}
		n++
	}
	return size
}

// ArrangeOverride implements Element.
func (s *StackPanel) ArrangeOverride(rc *RenderContext, final Rect) {
	horizontal := s.Orientation.GetValue() == Horizontal
	gap := s.Spacing.GetValue()
	pos := final.X
	if !horizontal {
		pos = final.Y
	}
	n := 0
	for _, c := range s.children.Items() {
		if !c.Framework().IsVisible.GetValue() {
			continue
		}
		if n > 0 {
			pos += gap
		}
		d := c.Framework().DesiredSize()
		if horizontal {
			Arrange(rc, c, Rect{X: pos, Y: final.Y, Width: d.Width, Height: final.Height})
			pos += d.Width
		} else {
			Arrange(rc, c, Rect{X: final.X, Y: pos, Width: final.Width, Height: d.Height})
			pos += d.Height
		}
		n++
	}
}

// Clone implements Element.
func (s *StackPanel) Clone() Element {
	c := NewStackPanel(s.Orientation.GetValue())
	s.clonePanel(&c.Panel)
	return c
}
