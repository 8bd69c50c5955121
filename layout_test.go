package skin

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArrangeMarginsFillSlot(t *testing.T) {
	tests := []struct {
		name   string
		margin Thickness
		rect   Rect
	}{
		{"no margin", Thickness{}, Rect{X: 0, Y: 0, Width: 40, Height: 10}},
		{"uniform", Uniform(2), Rect{X: 5, Y: 5, Width: 40, Height: 10}},
		{"uneven", Thickness{Left: 1, Top: 2, Right: 3, Bottom: 4}, Rect{X: 0, Y: 0, Width: 30, Height: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := NewFrameworkElement()
			el.Margin.SetValue(tt.margin)
			rc := NewRenderContext(nil, nil)
			Measure(rc, el, tt.rect.Size())
			Arrange(rc, el, tt.rect)

			m := tt.margin
			if got := el.ActualWidth() + m.Left + m.Right; got != tt.rect.Width {
				t.Errorf("expected width with margins %v, got %v", tt.rect.Width, got)
			}
			if got := el.ActualHeight() + m.Top + m.Bottom; got != tt.rect.Height {
				t.Errorf("expected height with margins %v, got %v", tt.rect.Height, got)
			}
			if pos := el.ActualPosition(); pos.X != tt.rect.X+m.Left || pos.Y != tt.rect.Y+m.Top {
				t.Errorf("expected position (%v,%v), got %v", tt.rect.X+m.Left, tt.rect.Y+m.Top, pos)
			}
		})
	}
}

func TestFixedSizeOverridesSlot(t *testing.T) {
	r := box(10, 4)
	rc := NewRenderContext(nil, nil)
	Measure(rc, r, Size{Width: 100, Height: 100})
	if d := r.DesiredSize(); d != (Size{Width: 10, Height: 4}) {
		t.Errorf("expected desired 10x4, got %v", d)
	}
	Arrange(rc, r, Rect{Width: 100, Height: 100})
	if r.ActualWidth() != 10 || r.ActualHeight() != 4 {
		t.Errorf("expected 10x4, got %vx%v", r.ActualWidth(), r.ActualHeight())
	}
	// a fixed size under stretch is centred in the slot
	if pos := r.ActualPosition(); pos.X != 45 || pos.Y != 48 {
		t.Errorf("expected centred at (45,48), got %v", pos)
	}
}

func TestZeroSizeMeansContent(t *testing.T) {
	l := NewLabel("abcd")
	l.FontSize.SetValue(1)
	rc := NewRenderContext(nil, newFakeAssets())
	Measure(rc, l, Size{Width: 100, Height: 100})
	if d := l.DesiredSize(); d != (Size{Width: 4, Height: 1}) {
		t.Errorf("expected content size 4x1, got %v", d)
	}
}

func TestAlignment(t *testing.T) {
	tests := []struct {
		align Alignment
		x     float64
		width float64
	}{
		{AlignLeft, 0, 4},
		{AlignCenter, 8, 4},
		{AlignRight, 16, 4},
		{AlignStretch, 0, 20},
	}
	for _, tt := range tests {
		l := NewLabel("abcd")
		l.HorizontalAlignment.SetValue(tt.align)
		rc := NewRenderContext(nil, newFakeAssets())
		Measure(rc, l, Size{Width: 20, Height: 1})
		Arrange(rc, l, Rect{Width: 20, Height: 1})
		if l.ActualPosition().X != tt.x || l.ActualWidth() != tt.width {
			t.Errorf("align %v: expected x=%v w=%v, got x=%v w=%v", tt.align, tt.x, tt.width, l.ActualPosition().X, l.ActualWidth())
		}
	}
}

// geometryOf snapshots the arranged rectangle of every node in tree order.
func geometryOf(root Element) []Rect {
	var out []Rect
	var walk func(Element)
	walk = func(el Element) {
		out = append(out, el.Framework().ActualBounds())
		for _, c := range el.VisualChildren() {
			walk(c)
		}
	}
	walk(root)
	return out
}

func TestArrangeIdempotent(t *testing.T) {
	root := VStack(
		HStack(box(3, 1), box(4, 2)).Gap(1),
		NewBorder(NewLabel("hello")).Pad(1),
		box(5, 5),
	).Gap(1)
	root.Margin.SetValue(Uniform(1))

	rc := NewRenderContext(nil, newFakeAssets())
	rect := Rect{Width: 40, Height: 20}
	Measure(rc, root, rect.Size())
	Arrange(rc, root, rect)
	first := geometryOf(root)

	Arrange(rc, root, rect)
	if diff := cmp.Diff(first, geometryOf(root)); diff != "" {
		t.Errorf("second arrange changed geometry (-first +second):\n%s", diff)
	}

	// forcing a full re-arrange with the same rect gives the same result too
	root.Invalidate()
	Measure(rc, root, rect.Size())
	Arrange(rc, root, rect)
	if diff := cmp.Diff(first, geometryOf(root)); diff != "" {
		t.Errorf("re-arrange after invalidate changed geometry (-first +second):\n%s", diff)
	}
}

func TestInvalidatePropagatesUp(t *testing.T) {
	leaf := box(2, 2)
	sibling := box(3, 3)
	inner := HStack(leaf)
	root := VStack(inner, sibling)
	win := layoutWindow(root, 20, 20)
	_ = win

	if !leaf.IsArrangeValid() || !root.IsMeasureValid() {
		t.Fatal("expected a valid tree after layout")
	}
	leaf.Width.SetValue(6)

	for _, el := range []Element{leaf, inner, root} {
		if el.Framework().IsMeasureValid() || el.Framework().IsArrangeValid() {
			t.Errorf("expected %s to be invalid", describe(el))
		}
	}
	if !sibling.IsMeasureValid() || !sibling.IsArrangeValid() {
		t.Error("expected sibling to stay valid")
	}
}

func TestInvalidationRelayoutsOnlyDependents(t *testing.T) {
	leaf := box(2, 2)
	below := box(3, 3)
	other := box(4, 4)
	root := HStack(VStack(leaf, below), other)
	win := layoutWindow(root, 40, 40)

	otherBefore := other.ActualBounds()
	belowBefore := below.ActualBounds()

	leaf.Height.SetValue(5)
	win.UpdateLayout()

	if leaf.ActualHeight() != 5 {
		t.Errorf("expected leaf height 5, got %v", leaf.ActualHeight())
	}
	if below.ActualPosition().Y != belowBefore.Y+3 {
		t.Errorf("expected stacked sibling to move down by 3, got %v -> %v", belowBefore.Y, below.ActualPosition().Y)
	}
	if other.ActualBounds() != otherBefore {
		t.Errorf("expected unrelated subtree unchanged, got %v -> %v", otherBefore, other.ActualBounds())
	}
}

func TestTotalOpacity(t *testing.T) {
	c := box(1, 1)
	b := VStack(c)
	a := VStack(b)
	a.Opacity.SetValue(0.5)
	b.Opacity.SetValue(0.5)
	c.Opacity.SetValue(0.4)

	win := layoutWindow(a, 10, 10)
	win.Frame(NewRenderContext(&recordingBackend{}, nil))

	if got := c.TotalOpacity(); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("expected total opacity 0.1, got %v", got)
	}
	if got := c.ComputeTotalOpacity(); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("expected computed total opacity 0.1, got %v", got)
	}
}

func TestRenderBalancesContext(t *testing.T) {
	rot := Rotate(90)
	inner := box(2, 2)
	inner.LayoutTransform.SetValue(&rot)
	root := VStack(
		HStack(box(1, 1), inner),
		NewBorder(NewLabel("x")).Fill(RGB(1, 2, 3)),
		NewEllipse(RGB(9, 9, 9)),
	)
	hidden := box(1, 1)
	hidden.IsVisible.SetValue(false)
	root.Add(hidden)

	win := layoutWindow(root, 30, 30)
	backend := &recordingBackend{}
	rc := NewRenderContext(backend, newFakeAssets())
	before := rc.Depth()
	win.Frame(rc)

	if rc.Depth() != before {
		t.Errorf("expected depth %d after render, got %d", before, rc.Depth())
	}
	if rc.Pushes() != rc.Pops() {
		t.Errorf("expected pushes == pops, got %d pushes and %d pops", rc.Pushes(), rc.Pops())
	}
	if rc.Pushes() == 0 {
		t.Error("expected render to push")
	}
	if backend.depth != 0 {
		t.Errorf("expected balanced backend begin/end, got %d", backend.depth)
	}
	if rc.Transform() != Identity() || rc.Opacity() != 1 {
		t.Errorf("expected identity state after render, got %v / %v", rc.Transform(), rc.Opacity())
	}
}

func TestRenderSkipsUnallocated(t *testing.T) {
	r := box(4, 4)
	win := layoutWindow(r, 10, 10)
	backend := &recordingBackend{refuse: true}
	win.Frame(NewRenderContext(backend, nil))
	if len(backend.draws) != 0 {
		t.Errorf("expected no draws while unallocated, got %d", len(backend.draws))
	}

	backend.refuse = false
	win.Frame(NewRenderContext(backend, nil))
	if len(backend.draws) != 1 || backend.draws[0].count != 2 {
		t.Errorf("expected one draw of 2 triangles, got %+v", backend.draws)
	}
}

func TestGeometryFreedOnChange(t *testing.T) {
	r := box(4, 4)
	win := layoutWindow(r, 10, 10)
	win.Frame(NewRenderContext(&recordingBackend{}, nil))
	if !r.HasGeometry() {
		t.Fatal("expected geometry after render")
	}
	r.Fill.SetValue(RGB(1, 1, 1))
	if r.HasGeometry() {
		t.Error("expected fill change to free geometry")
	}
	win.Frame(NewRenderContext(&recordingBackend{}, nil))
	r.Width.SetValue(6)
	if r.HasGeometry() {
		t.Error("expected size change to free geometry")
	}
}

func TestCollapsedHasNoSize(t *testing.T) {
	a, b := box(2, 2), box(2, 2)
	b.IsVisible.SetValue(false)
	s := VStack(a, b).Gap(1)
	rc := NewRenderContext(nil, nil)
	Measure(rc, s, Size{Width: 10, Height: 10})
	if d := s.DesiredSize(); d != (Size{Width: 2, Height: 2}) {
		t.Errorf("expected collapsed child ignored, got %v", d)
	}
}

func TestMissingContentDegrades(t *testing.T) {
	cc := NewContentControl()
	cc.Template.SetValue(NewControlTemplate("ContentControl", nil))
	ic := NewItemsControl()
	root := VStack(cc, ic)
	win := layoutWindow(root, 10, 10)
	win.Frame(NewRenderContext(&recordingBackend{}, nil))
	if cc.DesiredSize() != (Size{}) || ic.DesiredSize() != (Size{}) {
		t.Errorf("expected empty controls to size to nothing, got %v and %v", cc.DesiredSize(), ic.DesiredSize())
	}
}
