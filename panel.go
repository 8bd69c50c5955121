package skin

// Panel is the base of layout containers: an owning child collection, an
// optional background and geometric focus search over the children.
// Concrete panels embed it and supply the layout policy.
type Panel struct {
	FrameworkElement

	Background Property[Color]

	children *ElementCollection
	geometry
}

func (p *Panel) initPanel(self Element) {
	p.initFramework(self)
	p.children = newElementCollection(&p.FrameworkElement)
	p.Background.init("Background", Color{})
	Register(&p.FrameworkElement, &p.Background)
	p.Background.Attach(func(Color) { p.FreeGeometry() })
}

// Children implements ItemsHost.
func (p *Panel) Children() *ElementCollection { return p.children }

// VisualChildren implements Element.
func (p *Panel) VisualChildren() []Element { return p.children.Items() }

// PredictFocus implements FocusPredictor over the panel's children.
func (p *Panel) PredictFocus(current Element, dir Direction, strict bool) Element {
	return searchFocus(p.children.Items(), current, dir, strict)
}

// RenderOverride fills the background.
func (p *Panel) RenderOverride(rc *RenderContext) {
	p.renderFill(rc, p.ActualBounds(), p.Background.GetValue())
}

// Deallocate frees the background geometry.
func (p *Panel) Deallocate() { p.FreeGeometry() }

// Lookup adds "Children" to the element members.
func (p *Panel) Lookup(member string) (any, bool) {
	if member == "Children" {
		return p.children, true
	}
	return p.FrameworkElement.Lookup(member)
}

// clonePanel copies properties and deep-clones the children into dst.
func (p *Panel) clonePanel(dst *Panel) {
	p.cloneInto(&dst.FrameworkElement)
	for _, c := range p.children.Items() {
		dst.children.Add(c.Clone())
	}
}
