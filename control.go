package skin

import (
	"fmt"
)

// Control is an element whose visuals may come from a ControlTemplate.
// Loading a template replaces the control's visual children with a fresh
// clone of the template's prototype.
type Control struct {
	FrameworkElement

	Template Property[*ControlTemplate]

	templateRoot Element
}

// templateApplier is implemented by controls that wire parts of a freshly
// loaded template, like ContentControl finding its ContentPresenter.
type templateApplier interface {
	onApplyTemplate(root Element)
}

func (c *Control) initControl(self Element) {
	c.initFramework(self)
	c.Template.init("Template", nil)
	Register(&c.FrameworkElement, &c.Template)
	c.Template.Attach(c.applyTemplate)
}

func (c *Control) applyTemplate(t *ControlTemplate) {
	if old := c.templateRoot; old != nil {
		c.templateRoot = nil
		c.detachChild(old, true)
	}
	var root Element
	if t != nil {
		root = t.LoadContent(c.win)
	}
	if root != nil {
		c.attachChild(root)
		c.templateRoot = root
	}
	if ta, ok := c.self.(templateApplier); ok {
		ta.onApplyTemplate(root)
	}
	c.Invalidate()
}

// TemplateRoot implements Templated.
func (c *Control) TemplateRoot() Element { return c.templateRoot }

// VisualChildren implements Element.
func (c *Control) VisualChildren() []Element {
	if c.templateRoot != nil {
		return []Element{c.templateRoot}
	}
	return nil
}

// MeasureOverride sizes to the visual children; without any the control
// has no content size.
func (c *Control) MeasureOverride(rc *RenderContext, available Size) Size {
	return measureChildren(rc, c.self.VisualChildren(), available)
}

// ArrangeOverride implements Element.
func (c *Control) ArrangeOverride(rc *RenderContext, final Rect) {
	arrangeChildren(rc, c.self.VisualChildren(), final)
}

// PredictFocus delegates to the control's logical child.
func (c *Control) PredictFocus(current Element, dir Direction, strict bool) Element {
	return searchFocus(c.self.VisualChildren(), current, dir, strict)
}

// contentSlot turns a Content value into the single child of its owner.
type contentSlot struct {
	owner *FrameworkElement
	child Element
}

func (s *contentSlot) children() []Element {
	if s.child == nil {
		return nil
	}
	return []Element{s.child}
}

// set replaces the child with the materialized content. The previous child
// is detached and its device resources released.
func (s *contentSlot) set(content any, tpl *DataTemplate) {
	if el, ok := content.(Element); ok && el != nil && el == s.child {
		return
	}
	if old := s.child; old != nil {
		s.child = nil
		s.owner.detachChild(old, true)
	}
	next := materialize(content, tpl, s.owner.win)
	if next == nil {
		s.owner.Invalidate()
		return
	}
	s.owner.attachChild(next)
	s.child = next
}

// materialize returns the element that presents content: the content itself
// when it is an element, a template clone bound to it when a template is
// given, otherwise a Label showing it as text.
func materialize(content any, tpl *DataTemplate, w *Window) Element {
	switch v := content.(type) {
	case nil:
		return nil
	case Element:
		return v
	}
	if tpl != nil {
		if el := tpl.LoadContent(w); el != nil {
			el.Framework().Context.SetValue(content)
			return el
		}
		logger.Printf("content template for %T has no prototype", content)
	}
	if s, ok := content.(string); ok {
		return NewLabel(s)
	}
	if s, ok := content.(fmt.Stringer); ok {
		return NewLabel(s.String())
	}
	return NewLabel(fmt.Sprint(content))
}

// ContentControl presents a single piece of content: an element, a string
// or a data item shown through ContentTemplate. With a Template the content
// goes to the first ContentPresenter of the template.
type ContentControl struct {
	Control

	Content         Property[any]
	ContentTemplate Property[*DataTemplate]

	slot      contentSlot
	presenter *ContentPresenter
}

// NewContentControl creates an empty content control.
func NewContentControl() *ContentControl {
	c := &ContentControl{}
	c.initContentControl(c)
	return c
}

func (c *ContentControl) initContentControl(self Element) {
	c.initControl(self)
	c.slot.owner = &c.FrameworkElement
	c.Content.init("Content", nil)
	c.ContentTemplate.init("ContentTemplate", nil)
	Register(&c.FrameworkElement, &c.Content)
	Register(&c.FrameworkElement, &c.ContentTemplate)
	c.Content.Attach(func(any) { c.updateContent() })
	c.ContentTemplate.Attach(func(*DataTemplate) { c.updateContent() })
}

// SetContent stores v as the content.
func (c *ContentControl) SetContent(v any) { c.Content.SetValue(v) }

// ContentElement returns the element currently presenting the content.
func (c *ContentControl) ContentElement() Element {
	if c.presenter != nil {
		return c.presenter.slot.child
	}
	return c.slot.child
}

func (c *ContentControl) onApplyTemplate(root Element) {
	c.presenter = nil
	if root != nil {
		if cp, ok := root.(*ContentPresenter); ok {
			c.presenter = cp
		} else if cp, ok := FindDescendant[*ContentPresenter](root); ok {
			c.presenter = cp
		}
	}
	c.updateContent()
}

func (c *ContentControl) updateContent() {
	content, tpl := c.Content.GetValue(), c.ContentTemplate.GetValue()
	if c.templateRoot != nil {
		c.slot.set(nil, nil)
		if c.presenter != nil {
			if c.presenter.ContentTemplate.GetValue() != tpl {
				c.presenter.ContentTemplate.SetValue(tpl)
			}
			c.presenter.Content.SetValue(content)
		}
		return
	}
	c.slot.set(content, tpl)
}

// VisualChildren implements Element.
func (c *ContentControl) VisualChildren() []Element {
	if c.templateRoot != nil {
		return []Element{c.templateRoot}
	}
	return c.slot.children()
}

// Lookup adds "ContentElement" to the element members.
func (c *ContentControl) Lookup(member string) (any, bool) {
	if member == "ContentElement" {
		if el := c.ContentElement(); el != nil {
			return el, true
		}
		return nil, false
	}
	return c.FrameworkElement.Lookup(member)
}

// Clone implements Element.
func (c *ContentControl) Clone() Element {
	n := NewContentControl()
	c.cloneInto(&n.FrameworkElement)
	return n
}

// ContentPresenter marks where a templated control's content goes, and
// presents content on its own inside data templates.
type ContentPresenter struct {
	FrameworkElement

	Content         Property[any]
	ContentTemplate Property[*DataTemplate]

	slot contentSlot
}

// NewContentPresenter creates an empty presenter.
func NewContentPresenter() *ContentPresenter {
	p := &ContentPresenter{}
	p.initFramework(p)
	p.slot.owner = &p.FrameworkElement
	p.Content.init("Content", nil)
	p.ContentTemplate.init("ContentTemplate", nil)
	Register(&p.FrameworkElement, &p.Content)
	Register(&p.FrameworkElement, &p.ContentTemplate)
	update := func() { p.slot.set(p.Content.GetValue(), p.ContentTemplate.GetValue()) }
	p.Content.Attach(func(any) { update() })
	p.ContentTemplate.Attach(func(*DataTemplate) { update() })
	return p
}

// SetContent stores v as the content.
func (p *ContentPresenter) SetContent(v any) { p.Content.SetValue(v) }

// ContentElement returns the element presenting the content.
func (p *ContentPresenter) ContentElement() Element { return p.slot.child }

// VisualChildren implements Element.
func (p *ContentPresenter) VisualChildren() []Element { return p.slot.children() }

// MeasureOverride implements Element.
func (p *ContentPresenter) MeasureOverride(rc *RenderContext, available Size) Size {
	return measureChildren(rc, p.slot.children(), available)
}

// ArrangeOverride implements Element.
func (p *ContentPresenter) ArrangeOverride(rc *RenderContext, final Rect) {
	arrangeChildren(rc, p.slot.children(), final)
}

// PredictFocus delegates to the content.
func (p *ContentPresenter) PredictFocus(current Element, dir Direction, strict bool) Element {
	return searchFocus(p.slot.children(), current, dir, strict)
}

// Clone implements Element.
func (p *ContentPresenter) Clone() Element {
	n := NewContentPresenter()
	p.cloneInto(&n.FrameworkElement)
	return n
}
