package main

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kungfusheep/skin"
	"github.com/kungfusheep/skin/render/term"
)

type harness struct {
	menu    *Menu
	backend *term.Backend
	assets  *term.Assets
}

func newHarness(t *testing.T, store *Store) *harness {
	t.Helper()
	menu := NewMenu(defaultConfig(), ThemeDark, store, 80, 23)
	menu.Restore()
	h := &harness{menu: menu, backend: term.NewBackend(term.NewBuffer(0, 0)), assets: term.NewAssets(fstest.MapFS{})}
	h.frame()
	return h
}

func (h *harness) frame() { h.backend.Draw(h.menu.Window, h.assets) }

func (h *harness) press(k skin.Key) skin.Key {
	h.menu.Window.OnKeyPressed(&k)
	h.frame()
	return k
}

func (h *harness) focusedTile() int { return h.menu.Tiles.ContainerIndex(h.menu.Window.FocusedElement()) }

func (h *harness) focusedSection() int {
	return h.menu.Sections.ContainerIndex(h.menu.Window.FocusedElement())
}

func TestMenuStartsOnFirstSection(t *testing.T) {
	h := newHarness(t, nil)
	if got := h.focusedSection(); got != 0 {
		t.Fatalf("expected the first section focused, got %d", got)
	}
	if got := h.menu.Sections.SelectedIndex.GetValue(); got != 0 {
		t.Errorf("expected the first section selected, got %d", got)
	}
	if got := len(h.menu.Tiles.Containers()); got != 5 {
		t.Errorf("expected 5 tiles, got %d", got)
	}
	if !strings.Contains(h.backend.Buffer().String(), "Metropolis") {
		t.Errorf("expected the first tile drawn, got:\n%s", h.backend.Buffer())
	}
}

func TestMenuNavigation(t *testing.T) {
	h := newHarness(t, nil)

	t.Run("down selects the next section", func(t *testing.T) {
		h.press(skin.KeyDown)
		if got := h.focusedSection(); got != 1 {
			t.Fatalf("expected section 1 focused, got %d", got)
		}
		if got := len(h.menu.Tiles.Containers()); got != 2 {
			t.Errorf("expected the series tiles, got %d", got)
		}
	})

	t.Run("right enters the tiles", func(t *testing.T) {
		h.press(skin.KeyRight)
		i := h.focusedTile()
		if i < 0 {
			t.Fatalf("expected a tile focused, got %v", h.menu.Window.FocusedElement())
		}
		want := defaultConfig().Sections[1].Items[i].Title
		if got := h.menu.title.Text.GetValue(); got != want {
			t.Errorf("expected details for %q, got %q", want, got)
		}
		if !h.menu.Play.IsVisible.GetValue() {
			t.Error("expected the play button shown")
		}
	})

	t.Run("enter plays", func(t *testing.T) {
		var played Media
		h.menu.OnPlay = func(m Media) { played = m }
		if k := h.press(skin.KeyEnter); k != skin.KeyNone {
			t.Errorf("expected enter consumed, got %v", k)
		}
		if played.Title == "" || h.menu.Status != "Playing "+played.Title {
			t.Errorf("expected a play status, got %q", h.menu.Status)
		}
	})

	t.Run("back returns to the sections", func(t *testing.T) {
		if !h.menu.Back() {
			t.Fatal("expected back to move focus")
		}
		if got := h.focusedSection(); got != 1 {
			t.Errorf("expected the selected section focused, got %d", got)
		}
		if h.menu.Back() {
			t.Error("expected back from the sections to report false")
		}
	})
}

func TestMenuEmptySection(t *testing.T) {
	h := newHarness(t, nil)
	last := len(defaultConfig().Sections) - 1
	h.menu.Sections.FocusItem(last)
	h.frame()
	if got := len(h.menu.Tiles.Containers()); got != 0 {
		t.Errorf("expected no tiles, got %d", got)
	}
	if got := h.menu.detail.Text.GetValue(); got != "Nothing here yet." {
		t.Errorf("expected the empty note, got %q", got)
	}
	if h.menu.Play.IsVisible.GetValue() {
		t.Error("expected the play button hidden")
	}
}

func TestMenuRestoresFocus(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if err := store.SaveFocus("sections", 2); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveFocus("tiles/Music", 1); err != nil {
		t.Fatal(err)
	}

	h := newHarness(t, store)
	if got := h.menu.Sections.SelectedIndex.GetValue(); got != 2 {
		t.Errorf("expected the saved section selected, got %d", got)
	}
	if got := h.focusedTile(); got != 1 {
		t.Fatalf("expected the saved tile focused, got %d", got)
	}
	if got := h.menu.title.Text.GetValue(); got != "Nocturnes" {
		t.Errorf("expected %q, got %q", "Nocturnes", got)
	}

	h.press(skin.KeyLeft)
	if got, err := store.LastFocus("sections"); err != nil || got != 2 {
		t.Errorf("expected the section saved, got %d (%v)", got, err)
	}
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want skin.Key
		ok   bool
	}{
		{"arrow", tea.KeyMsg{Type: tea.KeyUp}, skin.KeyUp, true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, skin.KeyEnter, true},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, skin.KeyBack, true},
		{"page", tea.KeyMsg{Type: tea.KeyPgDown}, skin.KeyPageDown, true},
		{"vim", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, skin.KeyDown, true},
		{"other rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, skin.KeyNone, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, skin.KeyNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyFor(tt.msg)
			if got != tt.want || ok != tt.ok {
				t.Errorf("expected %v %v, got %v %v", tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestModel(t *testing.T) {
	menu := NewMenu(defaultConfig(), ThemeDark, nil, 1, 1)
	menu.Restore()
	var m tea.Model = newModel(menu, term.NewAssets(fstest.MapFS{}), term.NewScreen(&strings.Builder{}), ThemeDark)

	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if got := menu.Window.Size(); got != (skin.Size{Width: 80, Height: 23}) {
		t.Errorf("expected a row kept for the status bar, got %v", got)
	}
	m.View()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := menu.Sections.SelectedIndex.GetValue(); got != 1 {
		t.Errorf("expected the key routed to the window, got section %d", got)
	}

	view := m.View()
	if !strings.Contains(view, "q quit") {
		t.Errorf("expected the key help in the status bar, got:\n%s", view)
	}
	if !strings.Contains(view, "Fantomas") {
		t.Errorf("expected the series tiles drawn, got:\n%s", view)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected q to quit")
	}
}
