package skin

import (
	"unicode/utf8"
)

// DefaultFont is the font asset id labels use when Font is empty.
const DefaultFont = "default"

// approxGlyphWidth is the advance of one rune, relative to the font size,
// used while no font measurer is available.
const approxGlyphWidth = 0.6

// Label draws a single line of text with a font asset.
type Label struct {
	FrameworkElement

	Text       Property[string]
	Font       Property[string]
	FontSize   Property[float64]
	Foreground Property[Color]

	font    Asset
	pending bool
}

// NewLabel creates a label showing text.
func NewLabel(text string) *Label {
	l := &Label{}
	l.initFramework(l)
	l.Text.init("Text", text)
	l.Font.init("Font", "")
	l.FontSize.init("FontSize", 1)
	l.Foreground.init("Foreground", RGB(255, 255, 255))
	Register(&l.FrameworkElement, &l.Text)
	Register(&l.FrameworkElement, &l.Font)
	Register(&l.FrameworkElement, &l.FontSize)
	Register(&l.FrameworkElement, &l.Foreground)
	l.Text.Attach(func(string) { l.Invalidate() })
	l.FontSize.Attach(func(float64) { l.Invalidate() })
	l.Font.Attach(func(string) {
		l.font = nil
		l.Invalidate()
	})
	return l
}

// Size sets the font size.
func (l *Label) Size(size float64) *Label {
	l.FontSize.SetValue(size)
	return l
}

// Color sets the text colour.
func (l *Label) Color(c Color) *Label {
	l.Foreground.SetValue(c)
	return l
}

func (l *Label) load(rc *RenderContext) Asset {
	if l.font == nil && rc.Assets() != nil {
		id := l.Font.GetValue()
		if id == "" {
			id = DefaultFont
		}
		l.font = rc.Assets().Load(id, false)
	}
	return l.font
}

// MeasureOverride measures the text with the font's measurer, or estimates
// it while the font is loading.
func (l *Label) MeasureOverride(rc *RenderContext, available Size) Size {
	text, size := l.Text.GetValue(), l.FontSize.GetValue()
	if f := l.load(rc); f != nil && f.IsAllocated() {
		l.pending = false
		if m, ok := f.(TextMeasurer); ok {
			return m.MeasureText(text, size)
		}
	} else {
		l.pending = f != nil
	}
	return Size{Width: float64(utf8.RuneCountInString(text)) * size * approxGlyphWidth, Height: size}
}

// RenderOverride implements Element. A font that is still loading draws
// nothing and asks for another layout pass.
func (l *Label) RenderOverride(rc *RenderContext) {
	f := l.load(rc)
	if f == nil {
		return
	}
	if !f.IsAllocated() {
		l.pending = true
		l.Invalidate()
		return
	}
	if l.pending {
		l.pending = false
		l.Invalidate()
	}
	if tr, ok := rc.Backend().(TextRenderer); ok {
		tr.DrawText(f, l.Text.GetValue(), l.FontSize.GetValue(), l.ActualBounds(), l.Foreground.GetValue(), rc.Transform(), rc.Opacity())
	}
}

// Clone implements Element.
func (l *Label) Clone() Element {
	c := NewLabel("")
	l.cloneInto(&c.FrameworkElement)
	return c
}
