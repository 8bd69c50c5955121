package skin

import (
	"fmt"
	"strconv"
)

// ElementCollection is the ordered, owning child list of a panel. Every
// member's visual parent is the owner; removing a member releases its subtree
// and its device resources.
type ElementCollection struct {
	owner *FrameworkElement
	items []Element
}

func newElementCollection(owner *FrameworkElement) *ElementCollection {
	return &ElementCollection{owner: owner}
}

// Len returns the number of children.
func (c *ElementCollection) Len() int { return len(c.items) }

// At returns the child at i, or nil when out of range.
func (c *ElementCollection) At(i int) Element {
	if i < 0 || i >= len(c.items) {
		return nil
	}
	return c.items[i]
}

// Items returns the children. The slice must not be modified.
func (c *ElementCollection) Items() []Element { return c.items }

// IndexOf returns the position of el, or -1.
func (c *ElementCollection) IndexOf(el Element) int {
	for i, it := range c.items {
		if it == el {
			return i
		}
	}
	return -1
}

// Add appends children. It panics if one already has a parent.
func (c *ElementCollection) Add(els ...Element) *ElementCollection {
	for _, el := range els {
		if el == nil {
			continue
		}
		c.owner.attachChild(el)
		c.items = append(c.items, el)
	}
	return c
}

// Remove detaches el and deallocates it. It reports whether el was a member.
func (c *ElementCollection) Remove(el Element) bool {
	i := c.IndexOf(el)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.owner.detachChild(el, true)
	return true
}

// Set replaces the child at i. The old child is detached and deallocated.
func (c *ElementCollection) Set(i int, el Element) error {
	if i < 0 || i >= len(c.items) {
		return fmt.Errorf("skin: child index %d out of range [0,%d)", i, len(c.items))
	}
	old := c.items[i]
	if old == el {
		return nil
	}
	if el != nil {
		c.owner.attachChild(el)
	}
	c.owner.detachChild(old, true)
	if el == nil {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return nil
	}
	c.items[i] = el
	return nil
}

// Clear detaches and deallocates every child.
func (c *ElementCollection) Clear() {
	items := c.items
	c.items = nil
	for _, el := range items {
		c.owner.detachChild(el, true)
	}
	c.owner.Invalidate()
}

// Index implements Indexer for name paths like "Items[2]".
func (c *ElementCollection) Index(i int) (any, bool) {
	if el := c.At(i); el != nil {
		return el, true
	}
	return nil, false
}

// Lookup implements NamedLookup: a child by Name or by position.
func (c *ElementCollection) Lookup(member string) (any, bool) {
	if member == "Count" {
		return len(c.items), true
	}
	if i, err := strconv.Atoi(member); err == nil {
		return c.Index(i)
	}
	for _, el := range c.items {
		if el.Framework().Name.GetValue() == member {
			return el, true
		}
	}
	return nil, false
}

// ResourceDictionary holds named resources (styles, templates, values).
// It is append-only: entries are added or the whole dictionary is replaced.
type ResourceDictionary struct {
	keys   []string
	values map[string]any
	parent *ResourceDictionary
}

// NewResourceDictionary creates an empty dictionary.
func NewResourceDictionary() *ResourceDictionary {
	return &ResourceDictionary{values: make(map[string]any)}
}

// Add stores a resource. Adding an existing key replaces its value.
func (d *ResourceDictionary) Add(key string, v any) *ResourceDictionary {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
	return d
}

// Merge sets a dictionary consulted for keys this one does not hold.
func (d *ResourceDictionary) Merge(parent *ResourceDictionary) *ResourceDictionary {
	d.parent = parent
	return d
}

// Get returns the resource stored under key, consulting merged dictionaries.
func (d *ResourceDictionary) Get(key string) (any, bool) {
	for r := d; r != nil; r = r.parent {
		if v, ok := r.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Len returns the number of own entries.
func (d *ResourceDictionary) Len() int { return len(d.keys) }

// Keys returns the own keys in insertion order.
func (d *ResourceDictionary) Keys() []string { return d.keys }

// Lookup implements NamedLookup.
func (d *ResourceDictionary) Lookup(member string) (any, bool) { return d.Get(member) }

// Remove is not supported.
func (d *ResourceDictionary) Remove(string) error {
	return fmt.Errorf("%w: ResourceDictionary.Remove", ErrUnsupported)
}

// Insert is not supported.
func (d *ResourceDictionary) Insert(int, string, any) error {
	return fmt.Errorf("%w: ResourceDictionary.Insert", ErrUnsupported)
}

// clone deep-copies the dictionary; element and template values are cloned.
// Merged dictionaries are shared, since they belong to an outer scope.
func (d *ResourceDictionary) clone() *ResourceDictionary {
	c := NewResourceDictionary()
	if d == nil {
		return c
	}
	for _, k := range d.keys {
		c.Add(k, cloneValue(d.values[k]))
	}
	c.parent = d.parent
	return c
}

// FindResource walks from el up the visual tree and returns the first
// resource stored under key.
func FindResource(el Element, key string) (any, bool) {
	for n := el; n != nil; n = n.Framework().VisualParent() {
		if v, ok := n.Framework().Resources.Get(key); ok {
			return v, true
		}
	}
	return nil, false
}
