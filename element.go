package skin

import (
	"fmt"
)

// Element is a node of the visual tree.
//
// Concrete elements embed FrameworkElement and override the layout hooks.
// The package-level Measure, Arrange and Render functions run the shared
// contract (margins, fixed sizes, transforms, dirty flags) and call the hooks.
type Element interface {
	// Framework returns the embedded base state.
	Framework() *FrameworkElement

	// MeasureOverride returns the content size needed inside available,
	// which already excludes margins and honours a fixed Width/Height.
	MeasureOverride(rc *RenderContext, available Size) Size
	// ArrangeOverride positions children inside the element's final rectangle.
	ArrangeOverride(rc *RenderContext, final Rect)
	// RenderOverride draws the element's own content before its children.
	RenderOverride(rc *RenderContext)

	// VisualChildren returns every owned child in layout and render order.
	VisualChildren() []Element

	// Clone returns a deep, independently mutable copy.
	Clone() Element
	// Deallocate releases device resources held by this node only.
	Deallocate()
}

// Sizeable is implemented by every element that takes part in layout.
type Sizeable interface {
	DesiredSize() Size
	ActualBounds() Rect
}

// Templated is implemented by controls whose visuals come from a ControlTemplate.
type Templated interface {
	Element
	TemplateRoot() Element
}

// ItemsHost is implemented by panels that can host realized items.
type ItemsHost interface {
	Element
	Children() *ElementCollection
}

// KeyHandler is implemented by elements that react to key presses.
// Consuming a key sets it to KeyNone.
type KeyHandler interface {
	OnKeyPressed(key *Key)
}

// NodeID is a slot index in a window arena.
type NodeID int32

const noNode NodeID = -1

// Visual holds tree membership and opacity. The parent is a non-owning
// index into the window arena; the parent owns the child, never the reverse.
type Visual struct {
	win *Window
	id  NodeID

	Opacity Property[float64]
}

// VisualParent returns the parent element, or nil for a root or detached node.
func (v *Visual) VisualParent() Element {
	if v.win == nil || v.id == noNode {
		return nil
	}
	p := v.win.nodes[v.id].parent
	if p == noNode {
		return nil
	}
	return v.win.nodes[p].el
}

// Window returns the arena the node is registered with, or nil.
func (v *Visual) Window() *Window { return v.win }

// UIElement adds identity, visibility, focus, data context and hit-testing.
type UIElement struct {
	Visual

	Name      Property[string]
	IsVisible Property[bool]
	Focusable Property[bool]
	// HasFocus is written by the window's focus scope. Setting it directly
	// asks the window to move focus here.
	HasFocus Property[bool]
	// Context is the data item the element presents.
	Context Property[any]

	totalOpacity float64
}

// TotalOpacity returns the opacity accumulated over the ancestor chain during
// the last render pass.
func (u *UIElement) TotalOpacity() float64 { return u.totalOpacity }

// ComputeTotalOpacity walks the parent chain and multiplies every opacity.
func (u *UIElement) ComputeTotalOpacity() float64 {
	total := u.Opacity.GetValue()
	for p := u.VisualParent(); p != nil; p = p.Framework().VisualParent() {
		total *= p.Framework().Opacity.GetValue()
	}
	return total
}

// FrameworkElement adds sizing properties, the desired-size cache and the
// measure/arrange state.
type FrameworkElement struct {
	UIElement

	self Element

	// Width and Height fix the size when > 0; 0 sizes to content or slot.
	Width, Height       Property[float64]
	MinWidth, MinHeight Property[float64]
	Margin              Property[Thickness]
	HorizontalAlignment Property[Alignment]
	VerticalAlignment   Property[Alignment]
	// LayoutTransform, when set, is pushed around the child pass and rendering.
	LayoutTransform Property[*Matrix]
	Style           Property[*Style]

	Resources *ResourceDictionary

	props    map[string]PropertyRef
	order    []string
	attached map[string]PropertyRef

	desired       Size
	lastAvailable Size
	finalRect     Rect
	actual        Rect
	measureValid  bool
	arrangeValid  bool
	arranged      bool

	triggers        []*triggerInstance
	triggersPending bool
}

// NewFrameworkElement creates a plain element with no content of its own.
func NewFrameworkElement() *FrameworkElement {
	fe := &FrameworkElement{}
	fe.initFramework(fe)
	return fe
}

// initFramework declares the base properties and wires invalidation.
// Every constructor calls it with the outer element.
func (fe *FrameworkElement) initFramework(self Element) {
	fe.self = self
	fe.id = noNode
	fe.totalOpacity = 1
	fe.props = make(map[string]PropertyRef)
	fe.Resources = NewResourceDictionary()

	fe.Opacity.init("Opacity", 1)
	fe.Name.init("Name", "")
	fe.IsVisible.init("IsVisible", true)
	fe.Focusable.init("Focusable", false)
	fe.HasFocus.init("HasFocus", false)
	fe.HasFocus.transient = true
	fe.Context.init("Context", nil)
	fe.Width.init("Width", 0)
	fe.Height.init("Height", 0)
	fe.MinWidth.init("MinWidth", 0)
	fe.MinHeight.init("MinHeight", 0)
	fe.Margin.init("Margin", Thickness{})
	fe.HorizontalAlignment.init("HorizontalAlignment", AlignStretch)
	fe.VerticalAlignment.init("VerticalAlignment", AlignStretch)
	fe.LayoutTransform.init("LayoutTransform", nil)
	fe.Style.init("Style", nil)

	// Style first: clones apply it before copying local values.
	Register(fe, &fe.Style)
	Register(fe, &fe.Opacity)
	Register(fe, &fe.Name)
	Register(fe, &fe.IsVisible)
	Register(fe, &fe.Focusable)
	Register(fe, &fe.HasFocus)
	Register(fe, &fe.Context)
	Register(fe, &fe.Width)
	Register(fe, &fe.Height)
	Register(fe, &fe.MinWidth)
	Register(fe, &fe.MinHeight)
	Register(fe, &fe.Margin)
	Register(fe, &fe.HorizontalAlignment)
	Register(fe, &fe.VerticalAlignment)
	Register(fe, &fe.LayoutTransform)

	invalidate := func() { fe.Invalidate() }
	for _, p := range []*Property[float64]{&fe.Width, &fe.Height, &fe.MinWidth, &fe.MinHeight} {
		p.Attach(func(float64) { invalidate() })
	}
	fe.Margin.Attach(func(Thickness) { invalidate() })
	fe.HorizontalAlignment.Attach(func(Alignment) { invalidate() })
	fe.VerticalAlignment.Attach(func(Alignment) { invalidate() })
	fe.LayoutTransform.Attach(func(*Matrix) { invalidate() })
	fe.IsVisible.Attach(func(visible bool) {
		invalidate()
		if !visible && fe.win != nil {
			fe.win.dropFocusWithin(fe.self)
		}
	})
	fe.Name.Attach(func(string) {
		if fe.win != nil {
			fe.win.names.reset()
		}
	})
	fe.HasFocus.Attach(func(focused bool) {
		if fe.win == nil {
			return
		}
		switch {
		case focused && fe.win.focused != fe.self:
			if !fe.win.SetFocus(fe.self) {
				fe.HasFocus.value = false
			}
		case !focused && fe.win.focused == fe.self:
			fe.win.SetFocus(nil)
		}
	})
	fe.Style.Attach(func(s *Style) {
		if s != nil {
			if err := s.Set(fe.self); err != nil {
				logger.Printf("style on %s: %v", describe(fe.self), err)
			}
		}
	})
}

// Register declares a property on an element so styles, triggers, clones and
// the name resolver can reach it by name.
func Register[T any](fe *FrameworkElement, p *Property[T]) {
	if _, dup := fe.props[p.name]; !dup {
		fe.order = append(fe.order, p.name)
	}
	fe.props[p.name] = p
}

// Property returns a declared or attached property by name.
func (fe *FrameworkElement) Property(name string) (PropertyRef, bool) {
	if p, ok := fe.props[name]; ok {
		return p, true
	}
	if p, ok := fe.attached[name]; ok {
		return p, true
	}
	if factory, ok := attachedFactories[name]; ok {
		return factory(fe), true
	}
	return nil, false
}

// SetProperty stores a value by property name.
func (fe *FrameworkElement) SetProperty(name string, v any) error {
	p, ok := fe.Property(name)
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrNoProperty, name, describe(fe.self))
	}
	return p.Set(v)
}

// Framework implements Element.
func (fe *FrameworkElement) Framework() *FrameworkElement { return fe }

// Self returns the outer element that embeds this base.
func (fe *FrameworkElement) Self() Element { return fe.self }

// MeasureOverride implements Element; a bare element has no content size.
func (fe *FrameworkElement) MeasureOverride(*RenderContext, Size) Size { return Size{} }

// ArrangeOverride implements Element.
func (fe *FrameworkElement) ArrangeOverride(*RenderContext, Rect) {}

// RenderOverride implements Element.
func (fe *FrameworkElement) RenderOverride(*RenderContext) {}

// VisualChildren implements Element.
func (fe *FrameworkElement) VisualChildren() []Element { return nil }

// Deallocate implements Element.
func (fe *FrameworkElement) Deallocate() {}

// Clone implements Element.
func (fe *FrameworkElement) Clone() Element {
	c := NewFrameworkElement()
	fe.cloneInto(c)
	return c
}

// cloneInto copies every registered and attached property value, cloning
// element-valued ones, and deep-copies the resources. Listener wiring is not
// copied: dst already has its own from its constructor.
func (fe *FrameworkElement) cloneInto(dst *FrameworkElement) {
	for _, name := range fe.order {
		src := fe.props[name]
		if src.isTransient() {
			continue
		}
		if p, ok := dst.props[name]; ok {
			if err := p.Set(cloneValue(src.Get())); err != nil {
				logger.Printf("clone %s.%s: %v", describe(fe.self), name, err)
			}
		}
	}
	for name, p := range fe.attached {
		if dst.attached == nil {
			dst.attached = make(map[string]PropertyRef)
		}
		dst.attached[name] = p.cloneFor(dst)
	}
	dst.Resources = fe.Resources.clone()
}

// cloneValue deep-copies element values and passes anything else through.
func cloneValue(v any) any {
	switch t := v.(type) {
	case Element:
		if t != nil {
			return t.Clone()
		}
	case *Matrix:
		if t != nil {
			m := *t
			return &m
		}
	}
	return v
}

// Invalidate marks the element's measure and arrange stale and walks up the
// parent chain doing the same. The walk stops at the first ancestor that is
// already stale, since ancestors of a stale node are always stale.
func (fe *FrameworkElement) Invalidate() {
	fe.measureValid = false
	fe.arrangeValid = false
	for p := fe.VisualParent(); p != nil; p = p.Framework().VisualParent() {
		pf := p.Framework()
		if !pf.measureValid && !pf.arrangeValid {
			break
		}
		pf.measureValid = false
		pf.arrangeValid = false
	}
}

// IsMeasureValid reports whether the cached desired size is current.
func (fe *FrameworkElement) IsMeasureValid() bool { return fe.measureValid }

// IsArrangeValid reports whether the actual rectangle is current.
func (fe *FrameworkElement) IsArrangeValid() bool { return fe.arrangeValid }

// DesiredSize returns the size computed by the last Measure, margins included.
func (fe *FrameworkElement) DesiredSize() Size { return fe.desired }

// ActualBounds returns the rectangle assigned by the last Arrange, margins excluded.
func (fe *FrameworkElement) ActualBounds() Rect { return fe.actual }

// ActualPosition returns the top-left corner of ActualBounds.
func (fe *FrameworkElement) ActualPosition() Point { return Point{X: fe.actual.X, Y: fe.actual.Y} }

// ActualWidth returns the arranged width.
func (fe *FrameworkElement) ActualWidth() float64 { return fe.actual.Width }

// ActualHeight returns the arranged height.
func (fe *FrameworkElement) ActualHeight() float64 { return fe.actual.Height }

// IsInArea reports whether a window point falls inside the element.
func (fe *FrameworkElement) IsInArea(x, y float64) bool { return fe.actual.Contains(x, y) }

// DataContext returns the nearest Context set on the element or an ancestor.
func (fe *FrameworkElement) DataContext() any {
	if c := fe.Context.GetValue(); c != nil {
		return c
	}
	for p := fe.VisualParent(); p != nil; p = p.Framework().VisualParent() {
		if c := p.Framework().Context.GetValue(); c != nil {
			return c
		}
	}
	return nil
}

// renderTransform is the layout transform applied around the element's origin.
func (fe *FrameworkElement) renderTransform() Matrix {
	if t := fe.LayoutTransform.GetValue(); t != nil {
		return t.About(fe.ActualPosition())
	}
	return Identity()
}

// attachChild makes el a child of this element in its arena, creating a
// private arena when the element is not part of a window yet.
func (fe *FrameworkElement) attachChild(el Element) {
	if el == nil {
		return
	}
	if p := el.Framework().VisualParent(); p != nil {
		panic(fmt.Errorf("%w: %s under %s", ErrAlreadyParented, describe(el), describe(p)))
	}
	w := fe.win
	if w == nil {
		w = newArena()
		w.register(fe.self, noNode)
	}
	w.register(el, fe.id)
	fe.Invalidate()
}

// detachChild removes el from the arena; dealloc releases its device resources.
func (fe *FrameworkElement) detachChild(el Element, dealloc bool) {
	if el == nil {
		return
	}
	if w := el.Framework().win; w != nil {
		w.release(el, dealloc)
	} else if dealloc {
		deallocateTree(el)
	}
	fe.Invalidate()
}

func deallocateTree(el Element) {
	for _, c := range el.VisualChildren() {
		deallocateTree(c)
	}
	el.Deallocate()
}

// Lookup implements NamedLookup: declared properties by name, then the
// well-known members, then named descendants.
func (fe *FrameworkElement) Lookup(member string) (any, bool) {
	switch member {
	case "Parent":
		if p := fe.VisualParent(); p != nil {
			return p, true
		}
		return nil, false
	case "Resources":
		return fe.Resources, true
	case "DataContext":
		return fe.DataContext(), true
	}
	if p, ok := fe.Property(member); ok {
		return p.Get(), true
	}
	if el := FindName(fe.self, member); el != nil {
		return el, true
	}
	return nil, false
}

// FindName returns the first descendant (excluding root) with the given Name.
func FindName(root Element, name string) Element {
	if root == nil || name == "" {
		return nil
	}
	for _, c := range root.VisualChildren() {
		if c.Framework().Name.GetValue() == name {
			return c
		}
		if found := FindName(c, name); found != nil {
			return found
		}
	}
	return nil
}

// FindDescendant returns the first element of type T below root, pre-order.
func FindDescendant[T Element](root Element) (T, bool) {
	var zero T
	if root == nil {
		return zero, false
	}
	for _, c := range root.VisualChildren() {
		if t, ok := c.(T); ok {
			return t, true
		}
		if t, ok := FindDescendant[T](c); ok {
			return t, true
		}
	}
	return zero, false
}

// FindAncestor returns the nearest ancestor of type T.
func FindAncestor[T Element](el Element) (T, bool) {
	var zero T
	if el == nil {
		return zero, false
	}
	for p := el.Framework().VisualParent(); p != nil; p = p.Framework().VisualParent() {
		if t, ok := p.(T); ok {
			return t, true
		}
	}
	return zero, false
}

// IsAncestorOf reports whether el is ancestor-or-self of other.
func IsAncestorOf(el, other Element) bool {
	for n := other; n != nil; n = n.Framework().VisualParent() {
		if n == el {
			return true
		}
	}
	return false
}
