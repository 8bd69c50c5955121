package skin

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned by append-only collections for any mutation
	// other than Add or whole-content replacement.
	ErrUnsupported = errors.New("skin: unsupported operation")

	// ErrPropertyType is returned when a value cannot be stored in a property.
	ErrPropertyType = errors.New("skin: property type mismatch")

	// ErrNoProperty is returned when a style or binding names a property the
	// target does not declare.
	ErrNoProperty = errors.New("skin: no such property")

	// ErrCycle is the panic value for parenting an element under its own descendant.
	ErrCycle = errors.New("skin: element would become its own ancestor")

	// ErrAlreadyParented is the panic value for adding an element that already has a parent.
	ErrAlreadyParented = errors.New("skin: element already has a visual parent")
)

// describe names an element for diagnostics.
func describe(el Element) string {
	if el == nil {
		return "<nil>"
	}
	if name := el.Framework().Name.GetValue(); name != "" {
		return fmt.Sprintf("%T(%s)", el, name)
	}
	return fmt.Sprintf("%T", el)
}
