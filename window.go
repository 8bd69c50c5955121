package skin

import (
	"sync"
)

// Window owns a visual tree. It is the arena every live element is registered
// in: a slot per node holding the element and its parent index, so parent
// walks are a slice lookup and the parent never holds a pointer the child owns.
//
// A Window is also the focus scope (at most one element has HasFocus), the
// name registration table for FindElement, and the frame driver.
//
// Everything except Post must be called on the render goroutine.
type Window struct {
	nodes []node
	free  []NodeID

	root    Element
	size    Size
	focused Element
	names   *VisualTreeHelper

	// elements that pick up cross-goroutine changes at frame start
	syncers map[frameSyncer]struct{}

	inLayout bool

	mu     sync.Mutex
	posted []func()

	// FocusChanged is called after focus moves; either side may be nil.
	FocusChanged func(old, new Element)
}

type node struct {
	el     Element
	parent NodeID
}

// frameSyncer is implemented by elements with properties that other
// goroutines may set; syncFrame applies pending changes on the render goroutine.
type frameSyncer interface {
	syncFrame()
}

// NewWindow creates an empty window of the given size.
func NewWindow(width, height float64) *Window {
	w := newArena()
	w.size = Size{Width: width, Height: height}
	return w
}

// newArena creates a rootless arena that holds a detached subtree.
func newArena() *Window {
	w := &Window{syncers: make(map[frameSyncer]struct{})}
	w.names = NewVisualTreeHelper(nil)
	return w
}

// SetRoot replaces the root element. The previous root is released and
// deallocated, and the name cache starts over.
func (w *Window) SetRoot(el Element) {
	if w.root == el {
		return
	}
	if el != nil && el.Framework().VisualParent() != nil {
		panic(ErrAlreadyParented)
	}
	if w.root != nil {
		w.release(w.root, true)
	}
	w.root = el
	if el != nil {
		w.register(el, noNode)
		el.Framework().Invalidate()
	}
	w.names.SetRoot(el)
}

// Root returns the root element.
func (w *Window) Root() Element { return w.root }

// SetSize changes the layout size and invalidates the root.
func (w *Window) SetSize(width, height float64) {
	w.size = Size{Width: width, Height: height}
	if w.root != nil {
		w.root.Framework().Invalidate()
	}
}

// Size returns the layout size.
func (w *Window) Size() Size { return w.size }

// Len returns the number of live nodes in the arena.
func (w *Window) Len() int { return len(w.nodes) - len(w.free) }

// Post queues fn to run on the render goroutine at the start of the next
// frame. It is safe to call from any goroutine.
func (w *Window) Post(fn func()) {
	w.mu.Lock()
	w.posted = append(w.posted, fn)
	w.mu.Unlock()
}

// Frame runs one frame: pending cross-goroutine work, then Measure and
// Arrange for anything invalid, then Render.
func (w *Window) Frame(rc *RenderContext) {
	w.runPosted()
	for s := range w.syncers {
		s.syncFrame()
	}
	if w.root == nil {
		return
	}
	w.layout(rc)
	Render(rc, w.root)
}

// UpdateLayout runs Measure and Arrange without rendering. It is a no-op
// when called from inside a layout pass.
func (w *Window) UpdateLayout() {
	if w.root == nil || w.inLayout {
		return
	}
	w.layout(NewRenderContext(nil, nil))
}

func (w *Window) layout(rc *RenderContext) {
	w.inLayout = true
	defer func() { w.inLayout = false }()
	Measure(rc, w.root, w.size)
	Arrange(rc, w.root, Rect{Width: w.size.Width, Height: w.size.Height})
}

func (w *Window) runPosted() {
	w.mu.Lock()
	posted := w.posted
	w.posted = nil
	w.mu.Unlock()
	for _, fn := range posted {
		fn()
	}
}

// register adds el and its subtree to the arena under parent. An element
// that lives in another arena is moved; one already here is re-parented.
func (w *Window) register(el Element, parent NodeID) {
	fe := el.Framework()
	if fe.win != nil && fe.win != w {
		fe.win.release(el, false)
	}
	if fe.win == w {
		for p := parent; p != noNode; p = w.nodes[p].parent {
			if p == fe.id {
				panic(ErrCycle)
			}
		}
		w.nodes[fe.id].parent = parent
		w.names.reset()
		return
	}

	var id NodeID
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
		w.nodes[id] = node{el: el, parent: parent}
	} else {
		id = NodeID(len(w.nodes))
		w.nodes = append(w.nodes, node{el: el, parent: parent})
	}
	fe.win, fe.id = w, id
	if s, ok := el.(frameSyncer); ok {
		w.syncers[s] = struct{}{}
	}
	for _, c := range el.VisualChildren() {
		w.register(c, id)
	}
	w.names.reset()
}

// release frees the slots of el's subtree. Focus inside the subtree is dropped.
func (w *Window) release(el Element, dealloc bool) {
	fe := el.Framework()
	if fe.win != w {
		return
	}
	for _, c := range el.VisualChildren() {
		w.release(c, dealloc)
	}
	if w.focused == el {
		w.setFocused(nil)
	}
	w.nodes[fe.id] = node{parent: noNode}
	w.free = append(w.free, fe.id)
	fe.win, fe.id = nil, noNode
	if s, ok := el.(frameSyncer); ok {
		delete(w.syncers, s)
	}
	if w.root == el {
		w.root = nil
		w.names.SetRoot(nil)
	}
	w.names.reset()
	if dealloc {
		el.Deallocate()
	}
}

// FocusedElement returns the element holding focus, or nil.
func (w *Window) FocusedElement() Element { return w.focused }

// SetFocus moves focus to el. It fails for elements outside this window,
// invisible ones and ones that are not Focusable. nil clears focus.
func (w *Window) SetFocus(el Element) bool {
	if el == nil {
		w.setFocused(nil)
		return true
	}
	if !w.canFocus(el) {
		return false
	}
	w.setFocused(el)
	return true
}

func (w *Window) canFocus(el Element) bool {
	fe := el.Framework()
	if fe.win != w || !fe.Focusable.GetValue() {
		return false
	}
	for n := el; n != nil; n = n.Framework().VisualParent() {
		if !n.Framework().IsVisible.GetValue() {
			return false
		}
	}
	return true
}

func (w *Window) setFocused(el Element) {
	old := w.focused
	if old == el {
		return
	}
	w.focused = el
	if old != nil {
		old.Framework().HasFocus.SetValue(false)
	}
	if el != nil {
		el.Framework().HasFocus.SetValue(true)
		logger.Printf("focus -> %s", describe(el))
	}
	if w.FocusChanged != nil {
		w.FocusChanged(old, el)
	}
}

// dropFocusWithin clears focus if it lies inside el.
func (w *Window) dropFocusWithin(el Element) {
	if w.focused != nil && IsAncestorOf(el, w.focused) {
		w.setFocused(nil)
	}
}

// FocusFirst focuses the first focusable element in tree order.
func (w *Window) FocusFirst() bool {
	if w.root == nil {
		return false
	}
	if el := firstFocusable(w.root); el != nil {
		return w.SetFocus(el)
	}
	return false
}

// HitTest returns the deepest visible element containing the point. Later
// siblings are on top.
func (w *Window) HitTest(x, y float64) Element {
	if w.root == nil {
		return nil
	}
	return hitTest(w.root, x, y)
}

func hitTest(el Element, x, y float64) Element {
	fe := el.Framework()
	if !fe.IsVisible.GetValue() {
		return nil
	}
	children := el.VisualChildren()
	for i := len(children) - 1; i >= 0; i-- {
		if hit := hitTest(children[i], x, y); hit != nil {
			return hit
		}
	}
	if fe.IsInArea(x, y) {
		return el
	}
	return nil
}

// OnMouseMove moves focus to the focusable element under the pointer.
func (w *Window) OnMouseMove(x, y float64) {
	for el := w.HitTest(x, y); el != nil; el = el.Framework().VisualParent() {
		if el.Framework().Focusable.GetValue() {
			w.SetFocus(el)
			return
		}
	}
}

// FindElement resolves a dotted name path; see VisualTreeHelper.
func (w *Window) FindElement(path string) (any, bool) {
	return w.names.FindElement(path)
}

// FindProperty resolves a dotted path whose last segment names a property.
func (w *Window) FindProperty(path string) (PropertyRef, bool) {
	return w.names.FindProperty(path)
}
