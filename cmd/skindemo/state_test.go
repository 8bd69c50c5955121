package main

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := OpenStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.LastFocus("sections"); !errors.Is(err, ErrNoState) {
		t.Errorf("expected ErrNoState, got %v", err)
	}
	if err := s.SaveFocus("sections", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SaveFocus("sections", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err = OpenStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()
	if got, err := s.LastFocus("sections"); err != nil || got != 2 {
		t.Errorf("expected 2 after reopening, got %d (%v)", got, err)
	}
}
