package skin

import (
	"math"
	"sync"
	"sync/atomic"
)

// HeaderedItemsControl is an ItemsControl with a header above its items and
// an expand/collapse state. Collapsed, the items panel is hidden.
//
// Header may be set from any goroutine, like ItemsSource; the new header is
// materialized on the render goroutine before the next layout.
type HeaderedItemsControl struct {
	ItemsControl

	IsExpanded     Property[bool]
	HeaderTemplate Property[*DataTemplate]
	// Indent shifts the items panel right of the header.
	Indent Property[float64]

	headerMu    sync.Mutex
	header      any
	headerDirty atomic.Bool
	headerSlot  contentSlot
}

func (h *HeaderedItemsControl) initHeadered(self Element) {
	h.initItemsControl(self)
	h.headerSlot.owner = &h.FrameworkElement
	h.IsExpanded.init("IsExpanded", true)
	h.HeaderTemplate.init("HeaderTemplate", nil)
	h.Indent.init("Indent", 2)
	Register(&h.FrameworkElement, &h.IsExpanded)
	Register(&h.FrameworkElement, &h.HeaderTemplate)
	Register(&h.FrameworkElement, &h.Indent)
	h.IsExpanded.Attach(func(bool) { h.updateExpanded() })
	h.HeaderTemplate.Attach(func(*DataTemplate) { h.headerDirty.Store(true) })
	h.Indent.Attach(func(float64) { h.Invalidate() })
}

// NewHeaderedItemsControl creates an expanded control with ContentControl containers.
func NewHeaderedItemsControl() *HeaderedItemsControl {
	h := &HeaderedItemsControl{}
	h.initHeadered(h)
	return h
}

// SetHeader replaces the header. It is safe to call from any goroutine.
func (h *HeaderedItemsControl) SetHeader(v any) {
	h.headerMu.Lock()
	h.header = v
	h.headerMu.Unlock()
	h.headerDirty.Store(true)
}

// Header returns the header value. It is safe to call from any goroutine.
func (h *HeaderedItemsControl) Header() any {
	h.headerMu.Lock()
	defer h.headerMu.Unlock()
	return h.header
}

// SetContent sets the header and materializes it at once. Item containers
// receive their template clone through it.
func (h *HeaderedItemsControl) SetContent(v any) {
	h.SetHeader(v)
	h.applyHeader()
}

// HeaderElement returns the element presenting the header.
func (h *HeaderedItemsControl) HeaderElement() Element { return h.headerSlot.child }

func (h *HeaderedItemsControl) applyHeader() {
	if !h.headerDirty.Swap(false) {
		return
	}
	h.headerSlot.set(h.Header(), h.HeaderTemplate.GetValue())
}

func (h *HeaderedItemsControl) syncFrame() {
	h.applyHeader()
	h.ItemsControl.syncFrame()
}

// Prepare realizes the items and applies the expand state to the new panel.
func (h *HeaderedItemsControl) Prepare() bool {
	if !h.ItemsControl.Prepare() {
		return false
	}
	h.updateExpanded()
	return true
}

// HasItems reports whether any item is realized.
func (h *HeaderedItemsControl) HasItems() bool { return len(h.containers) > 0 }

func (h *HeaderedItemsControl) updateExpanded() {
	if h.host != nil {
		h.host.Framework().IsVisible.SetValue(h.IsExpanded.GetValue())
	}
	h.Invalidate()
}

// VisualChildren implements Element: the header, then the items panel.
func (h *HeaderedItemsControl) VisualChildren() []Element {
	out := h.headerSlot.children()
	if h.host != nil {
		out = append(out, h.host)
	}
	return out
}

// MeasureOverride stacks the header above the indented items panel.
func (h *HeaderedItemsControl) MeasureOverride(rc *RenderContext, available Size) Size {
	h.applyHeader()
	var size Size
	if hd := h.headerSlot.child; hd != nil {
		Measure(rc, hd, Size{Width: available.Width, Height: math.Inf(1)})
		size = hd.Framework().DesiredSize()
	}
	if h.host != nil {
		indent := h.Indent.GetValue()
		Measure(rc, h.host, Size{Width: math.Max(0, available.Width-indent), Height: math.Inf(1)})
		d := h.host.Framework().DesiredSize()
		if h.host.Framework().IsVisible.GetValue() {
			size.Width = math.Max(size.Width, d.Width+indent)
			size.Height += d.Height
		}
	}
	return size
}

// ArrangeOverride implements Element.
func (h *HeaderedItemsControl) ArrangeOverride(rc *RenderContext, final Rect) {
	top := 0.0
	if hd := h.headerSlot.child; hd != nil {
		top = hd.Framework().DesiredSize().Height
		Arrange(rc, hd, Rect{X: final.X, Y: final.Y, Width: final.Width, Height: top})
	}
	if h.host != nil {
		indent := h.Indent.GetValue()
		Arrange(rc, h.host, Rect{
			X:      final.X + indent,
			Y:      final.Y + top,
			Width:  math.Max(0, final.Width-indent),
			Height: h.host.Framework().DesiredSize().Height,
		})
	}
	h.flushPendingFocus()
}

// FocusBounds navigates by the header row, so moving down from an expanded
// node reaches its first child.
func (h *HeaderedItemsControl) FocusBounds() Rect {
	r := h.ActualBounds()
	if hd := h.headerSlot.child; hd != nil {
		r.Height = hd.Framework().ActualHeight()
	}
	return r
}

// Lookup adds "Header" to the element members.
func (h *HeaderedItemsControl) Lookup(member string) (any, bool) {
	if member == "Header" {
		v := h.Header()
		return v, v != nil
	}
	return h.ItemsControl.Lookup(member)
}

func (h *HeaderedItemsControl) cloneHeadered(dst *HeaderedItemsControl) {
	h.cloneItems(&dst.ItemsControl)
	dst.SetHeader(cloneValue(h.Header()))
}

// Clone implements Element.
func (h *HeaderedItemsControl) Clone() Element {
	c := NewHeaderedItemsControl()
	h.cloneHeadered(c)
	return c
}

// TreeViewItem is a focusable, expandable tree node. Right expands a
// collapsed node, Left collapses an expanded one or moves focus to the
// parent node.
type TreeViewItem struct {
	HeaderedItemsControl
}

// NewTreeViewItem creates a collapsed tree node.
func NewTreeViewItem() *TreeViewItem {
	t := &TreeViewItem{}
	t.initHeadered(t)
	t.Focusable.SetValue(true)
	t.IsExpanded.SetValue(false)
	t.NewContainer = func() Element { return NewTreeViewItem() }
	return t
}

// Prepare realizes the node's children and, for hierarchical templates,
// their children in turn.
func (t *TreeViewItem) Prepare() bool {
	if !t.HeaderedItemsControl.Prepare() {
		return false
	}
	prepareTreeLevel(&t.ItemsControl)
	return true
}

// OnKeyPressed implements KeyHandler.
func (t *TreeViewItem) OnKeyPressed(key *Key) {
	switch *key {
	case KeyRight:
		if !t.IsExpanded.GetValue() && t.HasItems() {
			t.IsExpanded.SetValue(true)
			*key = KeyNone
		}
	case KeyLeft:
		if t.IsExpanded.GetValue() && t.HasItems() {
			if t.win != nil && t.win.focused != t.self && IsAncestorOf(t.self, t.win.focused) {
				t.win.SetFocus(t.self)
			}
			t.IsExpanded.SetValue(false)
			*key = KeyNone
			return
		}
		if t.win != nil && t.win.focused == t.self {
			if parent, ok := FindAncestor[*TreeViewItem](t.self); ok && t.win.SetFocus(parent) {
				*key = KeyNone
			}
		}
	}
}

// Clone implements Element.
func (t *TreeViewItem) Clone() Element {
	c := NewTreeViewItem()
	t.cloneHeadered(&c.HeaderedItemsControl)
	return c
}

// TreeView shows hierarchical data. With a hierarchical ItemTemplate every
// level is realized into nested TreeViewItems.
type TreeView struct {
	ItemsControl
}

// NewTreeView creates a tree with a vertical stack panel.
func NewTreeView() *TreeView {
	tv := &TreeView{}
	tv.initItemsControl(tv)
	tv.NewContainer = func() Element { return NewTreeViewItem() }
	tv.ItemsPanel.SetValue(NewItemsPanelTemplate(NewStackPanel(Vertical)))
	tv.ItemContainerStyle.SetValue(NewStyle("TreeViewItem"))
	return tv
}

// Prepare realizes the top level and every level below it.
func (tv *TreeView) Prepare() bool {
	if !tv.ItemsControl.Prepare() {
		return false
	}
	prepareTreeLevel(&tv.ItemsControl)
	return true
}

// Clone implements Element.
func (tv *TreeView) Clone() Element {
	c := NewTreeView()
	tv.cloneItems(&c.ItemsControl)
	return c
}

// prepareTreeLevel hands each realized TreeViewItem its child items,
// selected by the hierarchical template, and realizes them.
func prepareTreeLevel(ic *ItemsControl) {
	tpl := ic.ItemTemplate.GetValue()
	if !tpl.IsHierarchical() {
		return
	}
	for _, c := range ic.containers {
		node, ok := c.(*TreeViewItem)
		if !ok {
			continue
		}
		children := tpl.Children(node.Context.GetValue())
		if children == nil {
			continue
		}
		node.ItemsPanel.SetValue(ic.ItemsPanel.GetValue())
		node.ItemContainerStyle.SetValue(ic.ItemContainerStyle.GetValue())
		node.ItemTemplate.SetValue(tpl.childTemplate())
		node.SetItemsSource(children)
		node.Prepare()
	}
}
