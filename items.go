package skin

import (
	"sync"
	"sync/atomic"
)

// ItemsControl realizes one container per item of its ItemsSource, in
// source order, inside a panel loaded from ItemsPanel. Each container is
// styled with ItemContainerStyle and presents a clone of ItemTemplate whose
// Context is the item.
//
// ItemsSource is the only member other goroutines may set. A changed source
// is realized again by Prepare at the start of the next frame; without a
// window, call Prepare directly.
type ItemsControl struct {
	FrameworkElement

	ItemsPanel         Property[*ItemsPanelTemplate]
	ItemTemplate       Property[*DataTemplate]
	ItemContainerStyle Property[*Style]

	// NewContainer creates an empty item container.
	NewContainer func() Element
	// PrepareContainer, when set, runs for each container after its content
	// is in place and before it is added to the panel.
	PrepareContainer func(container Element, item any)

	mu     sync.Mutex
	source ItemsSource
	unsub  func()
	dirty  atomic.Bool

	host         ItemsHost
	hostTemplate *ItemsPanelTemplate
	containers   []Element
	pendingFocus int
}

// NewItemsControl creates an items control with ContentControl containers.
// It realizes nothing until all of ItemsSource, ItemsPanel, ItemTemplate and
// ItemContainerStyle are set.
func NewItemsControl() *ItemsControl {
	ic := &ItemsControl{}
	ic.initItemsControl(ic)
	return ic
}

func (ic *ItemsControl) initItemsControl(self Element) {
	ic.initFramework(self)
	ic.pendingFocus = -1
	ic.NewContainer = func() Element { return NewContentControl() }
	ic.ItemsPanel.init("ItemsPanel", nil)
	ic.ItemTemplate.init("ItemTemplate", nil)
	ic.ItemContainerStyle.init("ItemContainerStyle", nil)
	Register(&ic.FrameworkElement, &ic.ItemsPanel)
	Register(&ic.FrameworkElement, &ic.ItemTemplate)
	Register(&ic.FrameworkElement, &ic.ItemContainerStyle)
	ic.ItemsPanel.Attach(func(*ItemsPanelTemplate) { ic.dirty.Store(true) })
	ic.ItemTemplate.Attach(func(*DataTemplate) { ic.dirty.Store(true) })
	ic.ItemContainerStyle.Attach(func(*Style) { ic.dirty.Store(true) })
}

// SetItemsSource replaces the items. It is safe to call from any goroutine.
func (ic *ItemsControl) SetItemsSource(src ItemsSource) {
	ic.mu.Lock()
	if ic.unsub != nil {
		ic.unsub()
		ic.unsub = nil
	}
	ic.source = src
	if n, ok := src.(changeNotifier); ok {
		ic.unsub = n.Subscribe(func(Change) { ic.dirty.Store(true) })
	}
	ic.mu.Unlock()
	ic.dirty.Store(true)
}

// ItemsSource returns the current items. It is safe to call from any goroutine.
func (ic *ItemsControl) ItemsSource() ItemsSource {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.source
}

// Panel returns the realized items panel, or nil.
func (ic *ItemsControl) Panel() ItemsHost { return ic.host }

// Containers returns the realized containers in source order.
func (ic *ItemsControl) Containers() []Element { return ic.containers }

// ContainerIndex returns the index of the container holding el, or -1.
func (ic *ItemsControl) ContainerIndex(el Element) int {
	if el == nil {
		return -1
	}
	for i, c := range ic.containers {
		if IsAncestorOf(c, el) {
			return i
		}
	}
	return -1
}

// syncFrame re-realizes the items when the source or a template changed.
func (ic *ItemsControl) syncFrame() {
	if !ic.dirty.Load() {
		return
	}
	if p, ok := ic.self.(interface{ Prepare() bool }); ok {
		p.Prepare()
	}
}

// Prepare rebuilds the realized containers from the current items.
//
// It reports false, leaving the realized state untouched, when the source,
// panel template, item template or container style is missing. When focus
// was inside a container it is restored after a layout pass to the container
// at the same index, or to the first one if the list became shorter.
func (ic *ItemsControl) Prepare() bool {
	// Cleared before reading the source; a concurrent SetItemsSource sets it again.
	wasDirty := ic.dirty.Swap(false)
	src := ic.ItemsSource()
	panel := ic.ItemsPanel.GetValue()
	tpl := ic.ItemTemplate.GetValue()
	style := ic.ItemContainerStyle.GetValue()
	var host ItemsHost
	if src != nil && panel != nil && tpl != nil && style != nil {
		host = ic.ensureHost(panel)
	}
	if host == nil {
		if wasDirty {
			ic.dirty.Store(true)
		}
		return false
	}

	focusIndex := -1
	if ic.win != nil {
		focusIndex = ic.ContainerIndex(ic.win.focused)
	}

	host.Children().Clear()
	ic.containers = nil

	items := src.Snapshot()
	for _, item := range items {
		container := ic.NewContainer()
		if err := style.Set(container); err != nil {
			logger.Printf("item container style: %v", err)
		}
		content := tpl.LoadContent(ic.win)
		if content != nil {
			content.Framework().Context.SetValue(item)
		}
		container.Framework().Context.SetValue(item)
		placeContent(container, content)
		if ic.PrepareContainer != nil {
			ic.PrepareContainer(container, item)
		}
		host.Children().Add(container)
		ic.containers = append(ic.containers, container)
	}
	ic.Invalidate()

	if focusIndex >= 0 && len(ic.containers) > 0 {
		if focusIndex >= len(ic.containers) {
			focusIndex = 0
		}
		ic.restoreFocus(focusIndex)
	}
	return true
}

// placeContent puts a template clone into the first ContentPresenter of the
// container, or into the container's own content.
func placeContent(container, content Element) {
	if content == nil {
		return
	}
	if cp, ok := container.(*ContentPresenter); ok {
		cp.SetContent(content)
		return
	}
	if cp, ok := FindDescendant[*ContentPresenter](container); ok {
		cp.SetContent(content)
		return
	}
	if h, ok := container.(interface{ SetContent(any) }); ok {
		h.SetContent(content)
		return
	}
	logger.Printf("container %s has no place for content", describe(container))
}

func (ic *ItemsControl) ensureHost(panel *ItemsPanelTemplate) ItemsHost {
	if ic.host != nil && ic.hostTemplate == panel {
		return ic.host
	}
	host := panel.LoadPanel(ic.win)
	if host == nil {
		return nil
	}
	if old := ic.host; old != nil {
		ic.host = nil
		ic.containers = nil
		ic.detachChild(old, true)
	}
	ic.attachChild(host)
	ic.host, ic.hostTemplate = host, panel
	return host
}

// restoreFocus focuses the container at index after a layout pass. Inside
// a layout pass the move waits for the end of the next arrange.
func (ic *ItemsControl) restoreFocus(index int) {
	if ic.win == nil {
		return
	}
	if ic.win.inLayout {
		ic.pendingFocus = index
		return
	}
	ic.win.UpdateLayout()
	ic.focusContainer(index)
}

func (ic *ItemsControl) focusContainer(index int) {
	if index < 0 || index >= len(ic.containers) || ic.win == nil {
		return
	}
	c := ic.containers[index]
	if ic.win.SetFocus(c) {
		return
	}
	if el := firstFocusable(c); el != nil {
		ic.win.SetFocus(el)
	}
}

// FocusItem focuses the container at index.
func (ic *ItemsControl) FocusItem(index int) bool {
	ic.focusContainer(index)
	return ic.win != nil && ic.ContainerIndex(ic.win.focused) == index
}

// VisualChildren implements Element.
func (ic *ItemsControl) VisualChildren() []Element {
	if ic.host == nil {
		return nil
	}
	return []Element{ic.host}
}

// MeasureOverride implements Element. Without a panel the control has no
// content size.
func (ic *ItemsControl) MeasureOverride(rc *RenderContext, available Size) Size {
	return measureChildren(rc, ic.VisualChildren(), available)
}

// ArrangeOverride implements Element.
func (ic *ItemsControl) ArrangeOverride(rc *RenderContext, final Rect) {
	arrangeChildren(rc, ic.VisualChildren(), final)
	ic.flushPendingFocus()
}

func (ic *ItemsControl) flushPendingFocus() {
	if i := ic.pendingFocus; i >= 0 {
		ic.pendingFocus = -1
		ic.focusContainer(i)
	}
}

// PredictFocus searches the realized containers.
func (ic *ItemsControl) PredictFocus(current Element, dir Direction, strict bool) Element {
	return searchFocus(ic.containers, current, dir, strict)
}

// Lookup adds "Items" and "Containers" to the element members.
func (ic *ItemsControl) Lookup(member string) (any, bool) {
	switch member {
	case "Items", "ItemsSource":
		if src := ic.ItemsSource(); src != nil {
			return src, true
		}
		return nil, false
	case "Containers":
		out := make([]any, len(ic.containers))
		for i, c := range ic.containers {
			out[i] = c
		}
		return out, true
	}
	return ic.FrameworkElement.Lookup(member)
}

// Deallocate drops the source subscription.
func (ic *ItemsControl) Deallocate() {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if ic.unsub != nil {
		ic.unsub()
		ic.unsub = nil
	}
}

// cloneItems copies the item settings into dst; the clone realizes its own
// containers.
func (ic *ItemsControl) cloneItems(dst *ItemsControl) {
	ic.cloneInto(&dst.FrameworkElement)
	dst.NewContainer = ic.NewContainer
	dst.PrepareContainer = ic.PrepareContainer
	if src := ic.ItemsSource(); src != nil {
		dst.SetItemsSource(src)
	}
}

// Clone implements Element.
func (ic *ItemsControl) Clone() Element {
	c := NewItemsControl()
	ic.cloneItems(c)
	return c
}
