package skin

import (
	"testing"
)

func TestBorderInsetsChild(t *testing.T) {
	child := NewFrameworkElement()
	b := NewBorder(child).Edge(RGB(255, 0, 0), 1).Pad(2)
	b.Width.SetValue(20)
	b.Height.SetValue(10)
	b.HorizontalAlignment.SetValue(AlignLeft)
	b.VerticalAlignment.SetValue(AlignTop)
	layoutWindow(b, 40, 40)

	want := Rect{X: 3, Y: 3, Width: 14, Height: 4}
	if got := child.ActualBounds(); got != want {
		t.Errorf("expected child at %v, got %v", want, got)
	}
}

func TestBorderSizesToContent(t *testing.T) {
	b := NewBorder(box(4, 2)).Edge(RGB(0, 0, 0), 1).Pad(1)
	rc := NewRenderContext(nil, nil)
	Measure(rc, b, Size{Width: 100, Height: 100})
	if d := b.DesiredSize(); d != (Size{Width: 8, Height: 6}) {
		t.Errorf("expected 8x6, got %v", d)
	}
}

func TestBorderRendersEdges(t *testing.T) {
	b := NewBorder(nil).Fill(RGB(10, 10, 10)).Edge(RGB(200, 0, 0), 1)
	win := layoutWindow(b, 10, 5)
	backend := &recordingBackend{}
	win.Frame(NewRenderContext(backend, nil))

	// background, then all four edges in one buffer
	if len(backend.draws) != 2 {
		t.Fatalf("expected 2 draws, got %d", len(backend.draws))
	}
	if backend.draws[1].count != 8 {
		t.Errorf("expected 8 edge triangles, got %d", backend.draws[1].count)
	}

	b.Edge(RGB(0, 0, 0), 0)
	backend.draws = nil
	b.Invalidate()
	win.Frame(NewRenderContext(backend, nil))
	if len(backend.draws) != 1 {
		t.Errorf("expected only the background without an edge, got %d draws", len(backend.draws))
	}
}

func TestBorderChildReplaced(t *testing.T) {
	first := NewLabel("a")
	b := NewBorder(first)
	win := layoutWindow(b, 10, 5)

	second := NewLabel("b")
	b.Child.SetValue(second)
	if first.Framework().Window() != nil {
		t.Error("expected the old child released")
	}
	if second.Framework().Window() != win || second.Framework().VisualParent() != Element(b) {
		t.Error("expected the new child under the border")
	}
	if len(b.VisualChildren()) != 1 {
		t.Errorf("expected one visual child, got %d", len(b.VisualChildren()))
	}
}
