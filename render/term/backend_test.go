package term

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/kungfusheep/skin"
)

func topLeft(el skin.Element) skin.Element {
	fe := el.Framework()
	fe.HorizontalAlignment.SetValue(skin.AlignLeft)
	fe.VerticalAlignment.SetValue(skin.AlignTop)
	return el
}

func newWindow(root skin.Element, w, h float64) *skin.Window {
	win := skin.NewWindow(w, h)
	win.SetRoot(root)
	return win
}

func TestBackendFillsRectangle(t *testing.T) {
	red := skin.RGB(255, 0, 0)
	win := newWindow(topLeft(skin.NewRectangle(red).Size(3, 2)), 6, 4)
	be := NewBackend(NewBuffer(0, 0))
	be.Draw(win, nil)

	if w, h := be.Buffer().Size(); w != 6 || h != 4 {
		t.Fatalf("expected a 6x4 buffer, got %dx%d", w, h)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			want := skin.Color{}
			if x < 3 && y < 2 {
				want = red
			}
			if got := be.Buffer().Get(x, y).BG; got != want {
				t.Errorf("cell (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
	if be.Live() != 1 {
		t.Errorf("expected 1 live buffer, got %d", be.Live())
	}

	win.SetRoot(nil)
	if be.Live() != 0 {
		t.Errorf("expected the buffer released with its element, got %d live", be.Live())
	}
}

func TestBackendTransform(t *testing.T) {
	r := skin.NewRectangle(skin.RGB(0, 255, 0)).Size(1, 1)
	m := skin.Translate(2, 1)
	r.LayoutTransform.SetValue(&m)
	win := newWindow(topLeft(r), 4, 3)
	be := NewBackend(NewBuffer(0, 0))
	be.Draw(win, nil)

	if got := be.Buffer().Get(2, 1).BG; got != skin.RGB(0, 255, 0) {
		t.Errorf("expected the translated cell filled, got %v", got)
	}
	if got := be.Buffer().Get(0, 0).BG; got != (skin.Color{}) {
		t.Errorf("expected the origin untouched, got %v", got)
	}
}

func TestBackendText(t *testing.T) {
	l := skin.NewLabel("hi")
	win := newWindow(l, 5, 1)
	be := NewBackend(NewBuffer(0, 0))
	be.Draw(win, NewAssets(fstest.MapFS{}))

	if got := be.Buffer().String(); got != "hi" {
		t.Errorf("expected %q, got %q", "hi", got)
	}
	if got := be.Buffer().Get(1, 0).FG; got != skin.RGB(255, 255, 255) {
		t.Errorf("expected white text, got %v", got)
	}
	if d := l.DesiredSize(); d != (skin.Size{Width: 2, Height: 1}) {
		t.Errorf("expected the label measured in cells, got %v", d)
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		name     string
		dst, src skin.Color
		alpha    float64
		want     skin.Color
	}{
		{"opaque", skin.RGB(1, 2, 3), skin.RGB(9, 9, 9), 1, skin.RGB(9, 9, 9)},
		{"half over black", skin.RGB(0, 0, 0), skin.RGB(255, 255, 255), 0.5, skin.RGB(128, 128, 128)},
		{"half over terminal", skin.Color{}, skin.RGB(255, 0, 0), 0.5, skin.RGBA(255, 0, 0, 128)},
		{"invisible", skin.RGB(1, 2, 3), skin.RGB(9, 9, 9), 0, skin.RGB(1, 2, 3)},
		{"transparent source", skin.RGB(1, 2, 3), skin.Color{}, 1, skin.RGB(1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blend(tt.dst, tt.src, tt.alpha); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOpacityBlendsOnce(t *testing.T) {
	// the two triangles of a rectangle share a diagonal; no cell may be
	// blended twice
	r := skin.NewRectangle(skin.RGB(255, 255, 255)).Size(4, 4)
	r.Opacity.SetValue(0.5)
	win := newWindow(topLeft(r), 4, 4)
	buf := NewBuffer(4, 4)
	be := NewBackend(buf)
	be.Draw(win, nil)

	want := skin.RGBA(255, 255, 255, 128)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := buf.Get(x, y).BG; got != want {
				t.Errorf("cell (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

// twoTone is a picture of 2x2 cells, red on the left and blue on the right.
func twoTone(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 16; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= 8 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestAssetsImage(t *testing.T) {
	assets := NewAssets(fstest.MapFS{"pic.png": {Data: twoTone(t)}})
	a := assets.Load("pic.png", true)
	if assets.Load("pic.png", true) != a {
		t.Error("expected the cached asset on a second load")
	}
	assets.Wait()

	if !a.IsAllocated() {
		t.Fatalf("expected the image loaded, got %v", a.(*Image).Err())
	}
	if got := a.NativeSize(); got != (skin.Size{Width: 2, Height: 2}) {
		t.Errorf("expected 2x2 cells, got %v", got)
	}

	win := newWindow(topLeft(skin.NewImage("pic.png")), 4, 4)
	be := NewBackend(NewBuffer(0, 0))
	be.Draw(win, assets)

	tests := []struct {
		x, y int
		want skin.Color
	}{
		{0, 0, skin.RGB(255, 0, 0)},
		{0, 1, skin.RGB(255, 0, 0)},
		{1, 1, skin.RGB(0, 0, 255)},
		{2, 0, skin.Color{}},
	}
	for _, tt := range tests {
		if got := be.Buffer().Get(tt.x, tt.y).BG; got != tt.want {
			t.Errorf("cell (%d,%d): expected %v, got %v", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestAssetsMissingImage(t *testing.T) {
	assets := NewAssets(fstest.MapFS{})
	a := assets.Load("nope.png", true).(*Image)
	assets.Wait()
	if a.IsAllocated() {
		t.Error("expected a missing image never to be ready")
	}
	if a.Err() == nil {
		t.Error("expected a load error")
	}
	if a.NativeSize() != (skin.Size{}) {
		t.Errorf("expected no size, got %v", a.NativeSize())
	}
}

func TestAssetsFont(t *testing.T) {
	f := NewAssets(nil).Load(skin.DefaultFont, false)
	if !f.IsAllocated() {
		t.Fatal("expected the terminal font ready")
	}
	m, ok := f.(skin.TextMeasurer)
	if !ok {
		t.Fatal("expected the font to measure text")
	}
	if got := m.MeasureText("a界", 3); got != (skin.Size{Width: 3, Height: 1}) {
		t.Errorf("expected 3x1, got %v", got)
	}
}
