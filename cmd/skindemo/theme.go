package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/kungfusheep/skin"
)

// Theme is the palette the menu is built from.
type Theme struct {
	Background skin.Color // window fill
	Surface    skin.Color // tiles and the side menu
	Text       skin.Color
	Muted      skin.Color // years, hints
	Accent     skin.Color // focus edge, header
}

// ThemeDark is light text on a dark purple-grey.
var ThemeDark = Theme{
	Background: skin.RGB(0x1e, 0x1e, 0x2e),
	Surface:    skin.RGB(0x31, 0x32, 0x44),
	Text:       skin.RGB(0xe0, 0xe0, 0xe0),
	Muted:      skin.RGB(0x80, 0x80, 0x80),
	Accent:     skin.RGB(0x00, 0xbf, 0xff),
}

// ThemeLight is dark text on beige.
var ThemeLight = Theme{
	Background: skin.RGB(0xf5, 0xf5, 0xdc),
	Surface:    skin.RGB(0xe4, 0xe1, 0xc8),
	Text:       skin.RGB(0x20, 0x20, 0x20),
	Muted:      skin.RGB(0x70, 0x70, 0x70),
	Accent:     skin.RGB(0x1f, 0x5f, 0xbf),
}

var themes = map[string]Theme{
	"":      ThemeDark,
	"dark":  ThemeDark,
	"light": ThemeLight,
}

// Resolve returns the named base theme with the configured overrides.
func (c ThemeConfig) Resolve() (Theme, error) {
	t, ok := themes[c.Name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", c.Name)
	}
	var errs []error
	for _, o := range []struct {
		hex string
		dst *skin.Color
	}{
		{c.Background, &t.Background},
		{c.Surface, &t.Surface},
		{c.Text, &t.Text},
		{c.Muted, &t.Muted},
		{c.Accent, &t.Accent},
	} {
		if o.hex == "" {
			continue
		}
		col, err := ParseHex(o.hex)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*o.dst = col
	}
	return t, errors.Join(errs...)
}

// Resources returns the styles of the menu. Unfocused items are dimmed;
// the item holding focus is drawn at full strength.
func (t Theme) Resources() *skin.ResourceDictionary {
	item := skin.NewStyle("ListViewItem").
		With("Opacity", 0.55).
		When("HasFocus", true, skin.Setter{Property: "Opacity", Value: 1.0})
	section := skin.NewStyle("ListViewItem").
		Inherit(item).
		With("Margin", skin.Thickness{Bottom: 1})
	tile := skin.NewStyle("ListViewItem").
		Inherit(item).
		With("Margin", skin.Thickness{Right: 2, Bottom: 1})
	button := skin.NewStyle("Button").
		With("Opacity", 0.55).
		When("HasFocus", true, skin.Setter{Property: "Opacity", Value: 1.0})
	return skin.NewResourceDictionary().
		Add("ButtonStyle", button).
		Add("SectionStyle", section).
		Add("TileStyle", tile).
		Add("Accent", t.Accent)
}

func lipglossColor(c skin.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// StatusStyle is the lipgloss style of the status bar under the frame.
func (t Theme) StatusStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipglossColor(t.Background)).
		Background(lipglossColor(t.Accent)).
		Padding(0, 1)
}
