package skin

import (
	"fmt"
	"sync"
)

// ItemsSource is the data behind an ItemsControl. Snapshot returns the
// current items in order; the control realizes one container per item.
type ItemsSource interface {
	Snapshot() []any
}

// Items is a fixed ItemsSource.
type Items []any

// Snapshot implements ItemsSource.
func (it Items) Snapshot() []any { return it }

// Index implements Indexer.
func (it Items) Index(i int) (any, bool) {
	if i < 0 || i >= len(it) {
		return nil, false
	}
	return it[i], true
}

// SliceSource adapts a typed slice.
func SliceSource[T any](s []T) Items {
	items := make(Items, len(s))
	for i, v := range s {
		items[i] = v
	}
	return items
}

// Change describes a modification to an observable list.
type Change struct {
	Type  ChangeType
	Index int
}

type ChangeType int

const (
	ChangeAdd ChangeType = iota
	ChangeClear
	ChangeSet // full replacement
)

// changeNotifier is implemented by sources that announce changes. The
// callback may run on any goroutine.
type changeNotifier interface {
	Subscribe(fn func(Change)) func()
}

// ObservableList is an ItemsSource that notifies on change. It may be
// updated from any goroutine; an ItemsControl showing it re-realizes its
// items at the start of the next frame.
//
// The list only appends or replaces its whole content. Insert, RemoveAt and
// SetAt return ErrUnsupported.
type ObservableList[T any] struct {
	mu        sync.Mutex
	items     []T
	listeners []func(Change)
}

// NewObservableList creates a list holding items.
func NewObservableList[T any](items ...T) *ObservableList[T] {
	return &ObservableList[T]{items: items}
}

// Items returns a copy of the items.
func (o *ObservableList[T]) Items() []T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]T(nil), o.items...)
}

// Len returns the number of items.
func (o *ObservableList[T]) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.items)
}

// At returns the item at index i, or the zero value if out of bounds.
func (o *ObservableList[T]) At(i int) T {
	o.mu.Lock()
	defer o.mu.Unlock()
	if i < 0 || i >= len(o.items) {
		var zero T
		return zero
	}
	return o.items[i]
}

// Snapshot implements ItemsSource.
func (o *ObservableList[T]) Snapshot() []any {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]any, len(o.items))
	for i, v := range o.items {
		out[i] = v
	}
	return out
}

// Index implements Indexer.
func (o *ObservableList[T]) Index(i int) (any, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if i < 0 || i >= len(o.items) {
		return nil, false
	}
	return o.items[i], true
}

// Set replaces all items.
func (o *ObservableList[T]) Set(items []T) *ObservableList[T] {
	o.mu.Lock()
	o.items = append([]T(nil), items...)
	o.mu.Unlock()
	o.notify(Change{Type: ChangeSet})
	return o
}

// Add appends an item.
func (o *ObservableList[T]) Add(item T) *ObservableList[T] {
	o.mu.Lock()
	idx := len(o.items)
	o.items = append(o.items, item)
	o.mu.Unlock()
	o.notify(Change{Type: ChangeAdd, Index: idx})
	return o
}

// Clear removes all items.
func (o *ObservableList[T]) Clear() *ObservableList[T] {
	o.mu.Lock()
	o.items = nil
	o.mu.Unlock()
	o.notify(Change{Type: ChangeClear})
	return o
}

// Insert is not supported.
func (o *ObservableList[T]) Insert(i int, item T) error {
	return fmt.Errorf("%w: ObservableList.Insert", ErrUnsupported)
}

// RemoveAt is not supported.
func (o *ObservableList[T]) RemoveAt(i int) error {
	return fmt.Errorf("%w: ObservableList.RemoveAt", ErrUnsupported)
}

// SetAt is not supported.
func (o *ObservableList[T]) SetAt(i int, item T) error {
	return fmt.Errorf("%w: ObservableList.SetAt", ErrUnsupported)
}

// Subscribe adds a change listener and returns an unsubscribe function.
func (o *ObservableList[T]) Subscribe(fn func(Change)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners = append(o.listeners, fn)
	idx := len(o.listeners) - 1
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		// zero out, don't reorder
		o.listeners[idx] = nil
	}
}

func (o *ObservableList[T]) notify(c Change) {
	o.mu.Lock()
	listeners := make([]func(Change), len(o.listeners))
	copy(listeners, o.listeners)
	o.mu.Unlock()
	for _, fn := range listeners {
		if fn != nil {
			fn(c)
		}
	}
}
