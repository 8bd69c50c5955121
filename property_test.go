package skin

import (
	"errors"
	"testing"
)

func TestPropertyAlwaysNotifies(t *testing.T) {
	p := NewProperty("Width", 10.0)
	calls := 0
	p.Attach(func(float64) { calls++ })

	p.SetValue(10)
	p.SetValue(10)
	if calls != 2 {
		t.Errorf("expected 2 notifications for unchanged value, got %d", calls)
	}
}

func TestPropertyListenerOrder(t *testing.T) {
	p := NewProperty("Name", "")
	var order []int
	p.Attach(func(string) { order = append(order, 1) })
	p.Attach(func(string) { order = append(order, 2) })
	p.Attach(func(string) { order = append(order, 3) })
	p.SetValue("x")

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected attach order [1 2 3], got %v", order)
	}
}

func TestPropertyDetach(t *testing.T) {
	t.Run("detached listener is not called", func(t *testing.T) {
		p := NewProperty("Opacity", 1.0)
		calls := 0
		id := p.Attach(func(float64) { calls++ })
		p.Detach(id)
		p.SetValue(0.5)
		if calls != 0 {
			t.Errorf("expected 0 calls, got %d", calls)
		}
	})

	t.Run("detach during notification", func(t *testing.T) {
		p := NewProperty("Opacity", 1.0)
		var second ListenerID
		secondCalls := 0
		p.Attach(func(float64) { p.Detach(second) })
		second = p.Attach(func(float64) { secondCalls++ })
		p.SetValue(0.5)
		p.SetValue(0.25)
		if secondCalls != 0 {
			t.Errorf("expected detached listener to be skipped, got %d calls", secondCalls)
		}
	})

	t.Run("attach during notification waits for next change", func(t *testing.T) {
		p := NewProperty("Opacity", 1.0)
		late := 0
		attached := false
		p.Attach(func(float64) {
			if !attached {
				attached = true
				p.Attach(func(float64) { late++ })
			}
		})
		p.SetValue(0.5)
		if late != 0 {
			t.Errorf("expected late listener not called yet, got %d", late)
		}
		p.SetValue(0.25)
		if late != 1 {
			t.Errorf("expected late listener called once, got %d", late)
		}
	})
}

func TestPropertySetDynamic(t *testing.T) {
	p := NewProperty("Width", 0.0)
	if err := p.Set(12); err != nil {
		t.Fatalf("expected int to convert, got %v", err)
	}
	if p.GetValue() != 12 {
		t.Errorf("expected 12, got %v", p.GetValue())
	}

	m := NewProperty("Margin", Thickness{})
	if err := m.Set(2); err != nil {
		t.Fatalf("expected number to convert to thickness, got %v", err)
	}
	if m.GetValue() != Uniform(2) {
		t.Errorf("expected uniform 2, got %v", m.GetValue())
	}

	s := NewProperty("Name", "a")
	err := s.Set(3.5)
	if !errors.Is(err, ErrPropertyType) {
		t.Errorf("expected ErrPropertyType, got %v", err)
	}
	if s.GetValue() != "a" {
		t.Errorf("expected value unchanged after failed set, got %q", s.GetValue())
	}
}

func TestSetPropertyByName(t *testing.T) {
	l := NewLabel("hi")
	if err := l.SetProperty("FontSize", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.FontSize.GetValue() != 3 {
		t.Errorf("expected font size 3, got %v", l.FontSize.GetValue())
	}
	if err := l.SetProperty("Nope", 1); !errors.Is(err, ErrNoProperty) {
		t.Errorf("expected ErrNoProperty, got %v", err)
	}
}
