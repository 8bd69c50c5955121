package skin

// FrameworkTemplate holds one prototype subtree. The prototype is never
// rendered; LoadContent produces an independent copy per use site.
type FrameworkTemplate struct {
	prototype Element
}

// Prototype returns the held subtree.
func (t *FrameworkTemplate) Prototype() Element {
	if t == nil {
		return nil
	}
	return t.prototype
}

// LoadContent deep-clones the prototype and registers the clone with w. The
// clone is returned without a parent; attaching it is up to the caller.
// A nil template or prototype yields nil.
func (t *FrameworkTemplate) LoadContent(w *Window) Element {
	if t == nil || t.prototype == nil {
		return nil
	}
	c := t.prototype.Clone()
	if w != nil {
		w.register(c, noNode)
	}
	return c
}

// DataTemplate renders a data item. The clone's Context is set to the item
// by whoever loads it.
type DataTemplate struct {
	FrameworkTemplate

	// DataType optionally names the item type the template is meant for.
	DataType string

	// Children, when set, makes the template hierarchical: it selects the
	// child items of a tree node, shown with ItemTemplate (or this template
	// when ItemTemplate is nil).
	Children     func(item any) ItemsSource
	ItemTemplate *DataTemplate
}

// NewDataTemplate wraps a prototype.
func NewDataTemplate(prototype Element) *DataTemplate {
	return &DataTemplate{FrameworkTemplate: FrameworkTemplate{prototype: prototype}}
}

// NewHierarchicalDataTemplate wraps a prototype whose items have children.
func NewHierarchicalDataTemplate(prototype Element, children func(item any) ItemsSource) *DataTemplate {
	t := NewDataTemplate(prototype)
	t.Children = children
	return t
}

// IsHierarchical reports whether the template selects child items.
func (t *DataTemplate) IsHierarchical() bool { return t != nil && t.Children != nil }

// childTemplate returns the template used for the next level of a hierarchy.
func (t *DataTemplate) childTemplate() *DataTemplate {
	if t.ItemTemplate != nil {
		return t.ItemTemplate
	}
	return t
}

// ControlTemplate supplies the visuals of a Control. A ContentPresenter
// inside the prototype marks where the control's Content goes.
type ControlTemplate struct {
	FrameworkTemplate
	TargetType string
}

// NewControlTemplate wraps a prototype for the named control type.
func NewControlTemplate(targetType string, prototype Element) *ControlTemplate {
	return &ControlTemplate{FrameworkTemplate: FrameworkTemplate{prototype: prototype}, TargetType: targetType}
}

// ItemsPanelTemplate supplies the panel that hosts an ItemsControl's containers.
type ItemsPanelTemplate struct {
	FrameworkTemplate
}

// NewItemsPanelTemplate wraps a panel prototype. The prototype should have no
// children of its own.
func NewItemsPanelTemplate(prototype ItemsHost) *ItemsPanelTemplate {
	return &ItemsPanelTemplate{FrameworkTemplate{prototype: prototype}}
}

// LoadPanel clones the panel. It returns nil when the prototype cannot host items.
func (t *ItemsPanelTemplate) LoadPanel(w *Window) ItemsHost {
	el := t.LoadContent(w)
	if el == nil {
		return nil
	}
	host, ok := el.(ItemsHost)
	if !ok {
		logger.Printf("items panel %s cannot host items", describe(el))
		if w != nil {
			w.release(el, true)
		}
		return nil
	}
	return host
}
