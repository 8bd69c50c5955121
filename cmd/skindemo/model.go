package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kungfusheep/skin"
	"github.com/kungfusheep/skin/render/term"
)

// frameInterval paces redraws while nothing else happens, so that assets
// finishing in the background show up.
const frameInterval = time.Second / 10

type frameMsg struct{}

var teaKeys = map[tea.KeyType]skin.Key{
	tea.KeyUp:        skin.KeyUp,
	tea.KeyDown:      skin.KeyDown,
	tea.KeyLeft:      skin.KeyLeft,
	tea.KeyRight:     skin.KeyRight,
	tea.KeyEnter:     skin.KeyEnter,
	tea.KeySpace:     skin.KeySpace,
	tea.KeyBackspace: skin.KeyBack,
	tea.KeyEsc:       skin.KeyBack,
	tea.KeyHome:      skin.KeyHome,
	tea.KeyEnd:       skin.KeyEnd,
	tea.KeyPgUp:      skin.KeyPageUp,
	tea.KeyPgDown:    skin.KeyPageDown,
}

var runeKeys = map[string]skin.Key{
	"h": skin.KeyLeft,
	"j": skin.KeyDown,
	"k": skin.KeyUp,
	"l": skin.KeyRight,
	" ": skin.KeySpace,
}

// keyFor maps a terminal key press to an engine key.
func keyFor(msg tea.KeyMsg) (skin.Key, bool) {
	if msg.Type == tea.KeyRunes {
		k, ok := runeKeys[msg.String()]
		return k, ok
	}
	k, ok := teaKeys[msg.Type]
	return k, ok
}

// model drives a Menu from bubbletea: messages become engine input, View
// runs one engine frame into the cell buffer.
type model struct {
	menu    *Menu
	backend *term.Backend
	assets  *term.Assets
	screen  *term.Screen
	status  lipgloss.Style
	width   int
}

func newModel(menu *Menu, assets *term.Assets, screen *term.Screen, theme Theme) model {
	return model{
		menu:    menu,
		backend: term.NewBackend(term.NewBuffer(0, 0)),
		assets:  assets,
		screen:  screen,
		status:  theme.StatusStyle(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		k, ok := keyFor(msg)
		if !ok {
			return m, nil
		}
		m.menu.Window.OnKeyPressed(&k)
		if k == skin.KeyBack && !m.menu.Back() {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		x, y := float64(msg.X)+0.5, float64(msg.Y)+0.5
		m.menu.Window.OnMouseMove(x, y)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			k := skin.KeyEnter
			m.menu.Window.OnKeyPressed(&k)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.menu.Window.SetSize(float64(msg.Width), float64(max(msg.Height-1, 0)))
	case frameMsg:
		return m, tick()
	}
	return m, nil
}

func (m model) View() string {
	m.backend.Draw(m.menu.Window, m.assets)
	frame := m.screen.Render(m.backend.Buffer())
	return lipgloss.JoinVertical(lipgloss.Left, frame, m.status.Width(m.width).Render(m.statusLine()))
}

func (m model) statusLine() string {
	if m.menu.Status != "" {
		return m.menu.Status
	}
	return "arrows/hjkl move · enter play · esc back · q quit"
}
