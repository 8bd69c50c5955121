package skin

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// panicValue runs fn and returns what it panicked with.
func panicValue(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}

func TestElementCollectionParenting(t *testing.T) {
	t.Run("already parented", func(t *testing.T) {
		child := box(1, 1)
		VStack(child)
		v := panicValue(func() { VStack(child) })
		err, ok := v.(error)
		if !ok || !errors.Is(err, ErrAlreadyParented) {
			t.Errorf("expected ErrAlreadyParented panic, got %v", v)
		}
	})

	t.Run("cycle", func(t *testing.T) {
		outer, inner := VStack(), VStack()
		outer.Add(inner)
		v := panicValue(func() { inner.Add(outer) })
		if v != ErrCycle {
			t.Errorf("expected ErrCycle panic, got %v", v)
		}
	})

	t.Run("self", func(t *testing.T) {
		s := VStack()
		if v := panicValue(func() { s.Add(s) }); v != ErrCycle {
			t.Errorf("expected ErrCycle panic, got %v", v)
		}
	})

	t.Run("detached tree shares an arena", func(t *testing.T) {
		leaf := box(1, 1)
		mid := VStack(leaf)
		top := VStack(mid)
		if leaf.Framework().Window() != top.Framework().Window() || top.Framework().Window() == nil {
			t.Error("expected the whole detached tree in one arena")
		}
		win := layoutWindow(top, 5, 5)
		if leaf.Framework().Window() != win {
			t.Error("expected the subtree moved into the window")
		}
		if win.Len() != 3 {
			t.Errorf("expected 3 nodes, got %d", win.Len())
		}
	})
}

func TestElementCollectionEdits(t *testing.T) {
	a, b, c := box(1, 1), box(1, 1), box(1, 1)
	s := VStack(a, b)
	win := layoutWindow(s, 10, 10)

	if err := s.Children().Set(5, c); err == nil {
		t.Error("expected an error for an out of range Set")
	}
	if c.Framework().Window() != nil {
		t.Error("expected a failed Set to leave the element alone")
	}

	if err := s.Children().Set(1, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Framework().Window() != nil || b.Framework().VisualParent() != nil {
		t.Error("expected the replaced child detached")
	}
	if c.Framework().Window() != win {
		t.Error("expected the new child in the window")
	}
	if s.IsMeasureValid() {
		t.Error("expected the owner invalidated")
	}

	if !s.Children().Remove(a) {
		t.Error("expected Remove to report a member")
	}
	if s.Children().Remove(a) {
		t.Error("expected a second Remove to miss")
	}
	if s.Children().Len() != 1 || s.Children().At(0) != Element(c) {
		t.Errorf("expected only c left, got %d children", s.Children().Len())
	}

	s.Children().Clear()
	if s.Children().Len() != 0 || win.Len() != 1 {
		t.Errorf("expected only the panel left, got %d children and %d nodes", s.Children().Len(), win.Len())
	}
}

func TestElementCollectionLookup(t *testing.T) {
	ok := box(1, 1)
	ok.Name.SetValue("ok")
	c := VStack(box(1, 1), ok).Children()

	tests := []struct {
		member string
		want   any
		found  bool
	}{
		{"Count", 2, true},
		{"1", Element(ok), true},
		{"ok", Element(ok), true},
		{"7", nil, false},
		{"missing", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.member, func(t *testing.T) {
			got, found := c.Lookup(tt.member)
			if found != tt.found || got != tt.want {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.want, tt.found, got, found)
			}
		})
	}
}

func TestResourceDictionary(t *testing.T) {
	d := NewResourceDictionary().Add("a", 1).Add("b", 2)
	d.Add("a", 3)

	if diff := cmp.Diff([]string{"a", "b"}, d.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if v, _ := d.Get("a"); v != 3 {
		t.Errorf("expected replaced value 3, got %v", v)
	}

	base := NewResourceDictionary().Add("c", "base").Add("b", "shadowed")
	d.Merge(base)
	if v, ok := d.Get("c"); !ok || v != "base" {
		t.Errorf("expected merged value, got %v", v)
	}
	if v, _ := d.Get("b"); v != 2 {
		t.Errorf("expected own value to shadow merged, got %v", v)
	}
	if d.Len() != 2 {
		t.Errorf("expected 2 own entries, got %d", d.Len())
	}

	if err := d.Remove("a"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported from Remove, got %v", err)
	}
	if err := d.Insert(0, "z", 0); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported from Insert, got %v", err)
	}
}

func TestFindResource(t *testing.T) {
	leaf := box(1, 1)
	inner := VStack(leaf)
	root := VStack(inner)
	root.Resources.Add("accent", RGB(1, 2, 3)).Add("pad", 1.0)
	inner.Resources.Add("pad", 2.0)

	if v, ok := FindResource(leaf, "accent"); !ok || v != RGB(1, 2, 3) {
		t.Errorf("expected accent from the root, got %v", v)
	}
	if v, _ := FindResource(leaf, "pad"); v != 2.0 {
		t.Errorf("expected the nearest pad, got %v", v)
	}
	if _, ok := FindResource(leaf, "missing"); ok {
		t.Error("expected a miss")
	}
}
