package skin

import (
	"errors"
	"fmt"
	"strings"
)

// Setter assigns one property value by name.
type Setter struct {
	Property string
	Value    any
}

// Trigger applies its setters while Property equals Value and restores the
// previous values when the condition turns false.
type Trigger struct {
	Property string
	Value    any
	Setters  []Setter
}

// Style is an ordered list of property assignments applied to a target.
// A style never owns its target and may be shared by many elements.
//
//	s := NewStyle("Button").
//		With("Margin", 1).
//		When("HasFocus", true, Setter{"Opacity", 1.0})
type Style struct {
	// TargetType restricts the style to elements of that type name
	// ("Button", "ListViewItem"); empty applies to anything.
	TargetType string
	BasedOn    *Style
	Setters    []Setter
	Triggers   []*Trigger
}

// NewStyle creates an empty style for the named element type.
func NewStyle(targetType string) *Style {
	return &Style{TargetType: targetType}
}

// With appends a setter.
func (s *Style) With(property string, value any) *Style {
	s.Setters = append(s.Setters, Setter{Property: property, Value: value})
	return s
}

// When appends a property trigger.
func (s *Style) When(property string, value any, setters ...Setter) *Style {
	s.Triggers = append(s.Triggers, &Trigger{Property: property, Value: value, Setters: setters})
	return s
}

// Inherit sets the base style whose setters are applied first.
func (s *Style) Inherit(base *Style) *Style {
	s.BasedOn = base
	return s
}

// AppliesTo reports whether the style may be applied to el.
func (s *Style) AppliesTo(el Element) bool {
	return s.TargetType == "" || s.TargetType == typeName(el)
}

// Set applies base setters, then own setters, in order, and installs the
// triggers of the whole chain on the target. Unknown properties and
// conversion failures are logged and skipped; all of them are returned joined.
func (s *Style) Set(target Element) error {
	if target == nil {
		return nil
	}
	if !s.AppliesTo(target) {
		return fmt.Errorf("%w: style for %s applied to %s", ErrPropertyType, s.TargetType, describe(target))
	}
	fe := target.Framework()
	var errs []error
	var triggers []*Trigger
	for _, st := range s.chain() {
		for _, set := range st.Setters {
			if err := applySetter(fe, set); err != nil {
				logger.Printf("style: %v", err)
				errs = append(errs, err)
			}
		}
		triggers = append(triggers, st.Triggers...)
	}
	fe.installTriggers(triggers)
	return errors.Join(errs...)
}

// chain returns the style and its bases, outermost base first.
func (s *Style) chain() []*Style {
	var out []*Style
	seen := make(map[*Style]bool)
	for st := s; st != nil && !seen[st]; st = st.BasedOn {
		seen[st] = true
		out = append(out, st)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func applySetter(fe *FrameworkElement, set Setter) error {
	p, ok := fe.Property(set.Property)
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrNoProperty, set.Property, describe(fe.self))
	}
	return p.Set(cloneValue(set.Value))
}

// typeName is the unqualified type name of an element: "*skin.Button" -> "Button".
func typeName(el Element) string {
	n := fmt.Sprintf("%T", el)
	if i := strings.LastIndexByte(n, '.'); i >= 0 {
		n = n[i+1:]
	}
	return strings.TrimPrefix(n, "*")
}

// triggerInstance is a Trigger bound to one element.
type triggerInstance struct {
	trigger  *Trigger
	owner    *FrameworkElement
	prop     PropertyRef
	listener ListenerID
	active   bool
	saved    []any
}

// installTriggers replaces the element's triggers. Conditions are evaluated
// after the element's first arrange, then on every change of the watched
// property.
func (fe *FrameworkElement) installTriggers(triggers []*Trigger) {
	for _, t := range fe.triggers {
		t.detach()
	}
	fe.triggers = fe.triggers[:0]
	for _, tr := range triggers {
		p, ok := fe.Property(tr.Property)
		if !ok {
			logger.Printf("trigger: %v: %s on %s", ErrNoProperty, tr.Property, describe(fe.self))
			continue
		}
		inst := &triggerInstance{trigger: tr, owner: fe, prop: p}
		inst.listener = p.Observe(func(any) {
			if fe.arranged {
				inst.evaluate()
			}
		})
		fe.triggers = append(fe.triggers, inst)
	}
	if fe.arranged {
		fe.triggersPending = true
	}
}

func (fe *FrameworkElement) evaluateTriggers() {
	for _, t := range fe.triggers {
		t.evaluate()
	}
}

func (t *triggerInstance) evaluate() {
	match := valuesEqual(t.prop.Get(), t.trigger.Value)
	switch {
	case match && !t.active:
		t.active = true
		t.saved = t.saved[:0]
		for _, set := range t.trigger.Setters {
			var prev any
			if p, ok := t.owner.Property(set.Property); ok {
				prev = p.Get()
			}
			t.saved = append(t.saved, prev)
			if err := applySetter(t.owner, set); err != nil {
				logger.Printf("trigger: %v", err)
			}
		}
	case !match && t.active:
		t.active = false
		for i, set := range t.trigger.Setters {
			if p, ok := t.owner.Property(set.Property); ok && i < len(t.saved) {
				if err := p.Set(t.saved[i]); err != nil {
					logger.Printf("trigger restore: %v", err)
				}
			}
		}
	}
}

func (t *triggerInstance) detach() {
	t.prop.Detach(t.listener)
}
