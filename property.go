package skin

import (
	"fmt"
)

// ListenerID identifies an attached listener. The zero value is never issued.
type ListenerID int

// Property is an observable single-value cell owned by one element.
//
// SetValue always stores and notifies, even when the value did not change:
// controls rely on the forced notification to drop cached geometry.
type Property[T any] struct {
	name      string
	value     T
	listeners []func(T)

	// transient properties carry runtime state (focus) and are not cloned
	transient bool
}

// NewProperty creates a detached property holding v.
func NewProperty[T any](name string, v T) *Property[T] {
	return &Property[T]{name: name, value: v}
}

// Name returns the name the property was declared with.
func (p *Property[T]) Name() string { return p.name }

// GetValue returns the current value.
func (p *Property[T]) GetValue() T { return p.value }

// SetValue stores v and synchronously calls every listener in attach order.
// Listeners attached while notifying are not called for this change.
func (p *Property[T]) SetValue(v T) {
	p.value = v
	n := len(p.listeners)
	for i := 0; i < n; i++ {
		if fn := p.listeners[i]; fn != nil {
			fn(v)
		}
	}
}

// Attach adds a change listener.
func (p *Property[T]) Attach(fn func(T)) ListenerID {
	p.listeners = append(p.listeners, fn)
	return ListenerID(len(p.listeners))
}

// Detach removes a listener. Slots are zeroed rather than removed so that
// detaching from inside a notification does not disturb the iteration.
func (p *Property[T]) Detach(id ListenerID) {
	i := int(id) - 1
	if i < 0 || i >= len(p.listeners) {
		return
	}
	p.listeners[i] = nil
}

// init sets the declared name and default without notifying.
func (p *Property[T]) init(name string, v T) {
	p.name = name
	p.value = v
}

// PropertyRef is the type-erased view of a Property used by styles,
// triggers and the name resolver.
type PropertyRef interface {
	Name() string
	Get() any
	Set(v any) error
	Observe(fn func(any)) ListenerID
	Detach(id ListenerID)

	isTransient() bool
	cloneFor(owner *FrameworkElement) PropertyRef
}

// Get returns the value as any.
func (p *Property[T]) Get() any { return p.value }

// Set stores a dynamically typed value. Numeric kinds are converted to the
// property's numeric type; nil stores the zero value.
func (p *Property[T]) Set(v any) error {
	if t, ok := v.(T); ok {
		p.SetValue(t)
		return nil
	}
	if v == nil {
		var zero T
		p.SetValue(zero)
		return nil
	}
	if t, ok := convertValue[T](v); ok {
		p.SetValue(t)
		return nil
	}
	var zero T
	return fmt.Errorf("%w: %s wants %T, got %T", ErrPropertyType, p.name, zero, v)
}

// Observe attaches a type-erased listener.
func (p *Property[T]) Observe(fn func(any)) ListenerID {
	return p.Attach(func(v T) { fn(v) })
}

func (p *Property[T]) isTransient() bool { return p.transient }

// cloneFor creates an attached-property copy for another element. The copy
// invalidates its new owner on change, like the original did.
func (p *Property[T]) cloneFor(owner *FrameworkElement) PropertyRef {
	c := NewProperty(p.name, p.value)
	c.Attach(func(T) { owner.Invalidate() })
	return c
}

// convertValue handles the numeric conversions a loosely typed source
// (YAML, style literals) produces.
func convertValue[T any](v any) (T, bool) {
	var zero T
	var out any
	switch any(zero).(type) {
	case float64:
		f, ok := toFloat(v)
		if !ok {
			return zero, false
		}
		out = f
	case float32:
		f, ok := toFloat(v)
		if !ok {
			return zero, false
		}
		out = float32(f)
	case int:
		f, ok := toFloat(v)
		if !ok || f != float64(int(f)) {
			return zero, false
		}
		out = int(f)
	case Thickness:
		f, ok := toFloat(v)
		if !ok {
			return zero, false
		}
		out = Uniform(f)
	default:
		return zero, false
	}
	t, ok := out.(T)
	return t, ok
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	}
	return 0, false
}

// valuesEqual compares two dynamically typed values without panicking on
// uncomparable types. Numbers compare by value across kinds.
func valuesEqual(a, b any) (eq bool) {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// attachedFactories create attached properties ("Canvas.Left", "Grid.Row")
// on first use, so styles and clones can set them by name.
var attachedFactories = map[string]func(fe *FrameworkElement) PropertyRef{}

// registerAttached declares an attached property with a default value.
func registerAttached[T any](name string, def T) {
	attachedFactories[name] = func(fe *FrameworkElement) PropertyRef {
		return attached(fe, name, def)
	}
}

// attached returns the element's attached property, creating it on first
// use. Changes invalidate the element so the owning panel lays out again.
func attached[T any](fe *FrameworkElement, name string, def T) *Property[T] {
	if p, ok := fe.attached[name].(*Property[T]); ok {
		return p
	}
	if fe.attached == nil {
		fe.attached = make(map[string]PropertyRef)
	}
	p := NewProperty(name, def)
	p.Attach(func(T) { fe.Invalidate() })
	fe.attached[name] = p
	return p
}

// attachedValue reads an attached property without creating it.
func attachedValue[T any](el Element, name string, def T) T {
	if p, ok := el.Framework().attached[name].(*Property[T]); ok {
		return p.GetValue()
	}
	return def
}
