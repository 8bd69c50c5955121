package skin

import (
	"unicode/utf8"
)

// recordingBackend allocates buffers on request (or never, when refuse is
// set) and records every draw call.
type recordingBackend struct {
	refuse bool

	allocs int
	draws  []drawCall
	texts  []string
	depth  int
}

type drawCall struct {
	primitive PrimitiveType
	count     int
	opacity   float64
}

func (b *recordingBackend) Allocate(vb *VertexBuffer) {
	if b.refuse {
		return
	}
	b.allocs++
	vb.SetHandle(b.allocs, nil)
}

func (b *recordingBackend) BeginRender(vb *VertexBuffer, p PrimitiveType, world Matrix, opacity float64) bool {
	if !vb.Allocated() {
		return false
	}
	b.depth++
	b.draws = append(b.draws, drawCall{primitive: p, opacity: opacity})
	return true
}

func (b *recordingBackend) DrawPrimitives(p PrimitiveType, start, count int) {
	b.draws[len(b.draws)-1].count = count
}

func (b *recordingBackend) EndRender() { b.depth-- }

func (b *recordingBackend) DrawText(font Asset, text string, size float64, bounds Rect, c Color, world Matrix, opacity float64) {
	b.texts = append(b.texts, text)
}

// fakeAsset is a monospace font or an image of a fixed size.
type fakeAsset struct {
	ready bool
	size  Size
}

func (a *fakeAsset) IsAllocated() bool { return a.ready }
func (a *fakeAsset) NativeSize() Size  { return a.size }

func (a *fakeAsset) MeasureText(text string, size float64) Size {
	return Size{Width: float64(utf8.RuneCountInString(text)) * size, Height: size}
}

type fakeAssets struct {
	assets map[string]*fakeAsset
	loads  int
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{assets: make(map[string]*fakeAsset)}
}

func (c *fakeAssets) Load(id string, isImage bool) Asset {
	c.loads++
	a, ok := c.assets[id]
	if !ok {
		a = &fakeAsset{ready: !isImage}
		c.assets[id] = a
	}
	return a
}

// box is a fixed-size rectangle for layout tests.
func box(w, h float64) *Rectangle {
	return NewRectangle(RGB(200, 200, 200)).Size(w, h)
}

// layoutWindow lays out root in a window of the given size.
func layoutWindow(root Element, w, h float64) *Window {
	win := NewWindow(w, h)
	win.SetRoot(root)
	win.UpdateLayout()
	return win
}

// focusBox is a focusable fixed-size element.
func focusBox(name string, w, h float64) *Rectangle {
	r := box(w, h)
	r.Name.SetValue(name)
	r.Focusable.SetValue(true)
	return r
}
