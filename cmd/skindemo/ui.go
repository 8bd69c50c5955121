package main

import (
	"fmt"
	"strconv"

	"github.com/kungfusheep/skin"
)

// Menu is the home-theater screen: sections on the left, the tiles of the
// selected section on the right and the focused tile's details below.
type Menu struct {
	Window   *skin.Window
	Sections *skin.ListView
	Tiles    *skin.ListView
	Play     *skin.Button

	title  *skin.Label
	detail *skin.Label
	poster *skin.Image

	cfg   *Config
	theme Theme
	store *Store

	// Status is the last thing the menu has to say, shown by the host.
	Status string
	// OnPlay is called when a tile is chosen.
	OnPlay func(Media)
}

// NewMenu builds the menu into a new window of width x height units.
// store may be nil.
func NewMenu(cfg *Config, theme Theme, store *Store, width, height float64) *Menu {
	m := &Menu{cfg: cfg, theme: theme, store: store}
	m.Window = skin.NewWindow(width, height)

	root := skin.NewGrid(
		[]skin.GridLength{skin.Pixels(2), skin.Star(1), skin.Pixels(3)},
		[]skin.GridLength{skin.Pixels(18), skin.Star(1)},
	)
	root.Background.SetValue(theme.Background)
	root.Resources = theme.Resources()

	header := skin.NewLabel(cfg.Title).Color(theme.Accent)
	header.Margin.SetValue(skin.Thickness{Left: 1})
	root.Children().Add(header)
	skin.SetCell(header, 0, 0, 1, 2)

	m.Sections = m.newSections()
	m.Tiles = m.newTiles()
	root.Place(m.Sections, 1, 0)
	root.Place(m.Tiles, 1, 1)

	details := m.newDetails()
	root.Children().Add(details)
	skin.SetCell(details, 2, 0, 1, 2)

	if s, ok := findStyle(m.Sections, "SectionStyle"); ok {
		m.Sections.ItemContainerStyle.SetValue(s)
	}
	if s, ok := findStyle(m.Tiles, "TileStyle"); ok {
		m.Tiles.ItemContainerStyle.SetValue(s)
	}
	if s, ok := findStyle(m.Play, "ButtonStyle"); ok {
		m.Play.Style.SetValue(s)
	}

	m.Window.FocusChanged = m.focusChanged
	m.Window.SetRoot(root)
	return m
}

func findStyle(el skin.Element, key string) (*skin.Style, bool) {
	v, ok := skin.FindResource(el, key)
	if !ok {
		logger.Printf("no resource %q", key)
		return nil, false
	}
	s, ok := v.(*skin.Style)
	return s, ok
}

func (m *Menu) newSections() *skin.ListView {
	title := skin.NewLabel("").Color(m.theme.Text)
	title.Name.SetValue("title")
	tpl := skin.NewBorder(title).Fill(m.theme.Surface)
	tpl.Padding.SetValue(skin.Thickness{Left: 1, Right: 1})

	lv := skin.NewListView()
	lv.Name.SetValue("sections")
	lv.Margin.SetValue(skin.Thickness{Left: 1, Right: 1})
	lv.ItemTemplate.SetValue(skin.NewDataTemplate(tpl))
	lv.PrepareContainer = func(container skin.Element, item any) {
		if l, ok := skin.FindName(container, "title").(*skin.Label); ok {
			l.Text.SetValue(item.(Section).Title)
		}
	}
	lv.SetItemsSource(skin.SliceSource(m.cfg.Sections))
	lv.SelectionChanged = m.sectionChanged
	return lv
}

func (m *Menu) newTiles() *skin.ListView {
	title := skin.NewLabel("").Color(m.theme.Text)
	title.Name.SetValue("title")
	year := skin.NewLabel("").Color(m.theme.Muted)
	year.Name.SetValue("year")
	tpl := skin.NewBorder(skin.VStack(title, year)).Fill(m.theme.Surface)
	tpl.Padding.SetValue(skin.Thickness{Left: 1, Right: 1})
	tpl.Width.SetValue(18)

	lv := skin.NewListView()
	lv.Name.SetValue("tiles")
	lv.ItemsPanel.SetValue(skin.NewItemsPanelTemplate(skin.NewWrapPanel(skin.Horizontal)))
	lv.ItemTemplate.SetValue(skin.NewDataTemplate(tpl))
	lv.PrepareContainer = func(container skin.Element, item any) {
		media := item.(Media)
		if l, ok := skin.FindName(container, "title").(*skin.Label); ok {
			l.Text.SetValue(media.Title)
		}
		if l, ok := skin.FindName(container, "year").(*skin.Label); ok && media.Year != 0 {
			l.Text.SetValue(strconv.Itoa(media.Year))
		}
	}
	lv.SelectionChanged = func(_ int, item any) {
		if media, ok := item.(Media); ok {
			m.play(media)
		}
	}
	return lv
}

func (m *Menu) newDetails() skin.Element {
	m.poster = skin.NewImage("")
	m.poster.Width.SetValue(4)
	m.poster.Height.SetValue(2)
	m.title = skin.NewLabel("").Color(m.theme.Text)
	m.detail = skin.NewLabel("").Color(m.theme.Muted)

	m.Play = skin.NewButton(skin.NewBorder(skin.NewLabel("Play").Color(m.theme.Text)).Fill(m.theme.Surface).Pad(0))
	m.Play.Name.SetValue("play")
	m.Play.IsVisible.SetValue(false)
	m.Play.Command = func(param any) {
		if media, ok := param.(Media); ok {
			m.play(media)
		}
	}

	row := skin.HStack(m.poster, skin.VStack(m.title, m.detail), m.Play).Gap(2)
	row.Margin.SetValue(skin.Thickness{Left: 1, Top: 1})
	return row
}

func (m *Menu) sectionChanged(index int, item any) {
	section, ok := item.(Section)
	if !ok {
		return
	}
	m.Tiles.SetItemsSource(skin.SliceSource(section.Items))
	m.Tiles.SelectedIndex.SetValue(-1)
	m.showMedia(nil)
	if len(section.Items) == 0 {
		m.title.Text.SetValue(section.Title)
		m.detail.Text.SetValue("Nothing here yet.")
	}
	m.save("sections", index)
}

func (m *Menu) showMedia(media *Media) {
	if media == nil {
		m.title.Text.SetValue("")
		m.detail.Text.SetValue("")
		m.poster.Source.SetValue("")
		m.Play.IsVisible.SetValue(false)
		return
	}
	m.title.Text.SetValue(media.Title)
	m.detail.Text.SetValue(media.Detail)
	m.poster.Source.SetValue(media.Poster)
	m.Play.Context.SetValue(*media)
	m.Play.IsVisible.SetValue(true)
}

func (m *Menu) focusChanged(_, el skin.Element) {
	if i := m.Sections.ContainerIndex(el); i >= 0 {
		if i != m.Sections.SelectedIndex.GetValue() {
			m.Sections.Select(i)
		}
		return
	}
	if i := m.Tiles.ContainerIndex(el); i >= 0 {
		if media, ok := m.Tiles.Containers()[i].Framework().Context.GetValue().(Media); ok {
			m.showMedia(&media)
		}
		m.save(m.tileKey(), i)
	}
}

func (m *Menu) play(media Media) {
	m.Status = fmt.Sprintf("Playing %s", media.Title)
	logger.Print(m.Status)
	if m.OnPlay != nil {
		m.OnPlay(media)
	}
}

func (m *Menu) tileKey() string {
	if s, ok := m.Sections.SelectedItem().(Section); ok {
		return "tiles/" + s.Title
	}
	return "tiles"
}

func (m *Menu) save(list string, index int) {
	if m.store == nil {
		return
	}
	if err := m.store.SaveFocus(list, index); err != nil {
		logger.Printf("save %s: %v", list, err)
	}
}

func (m *Menu) last(list string, n int) int {
	if m.store == nil {
		return 0
	}
	i, err := m.store.LastFocus(list)
	if err != nil || i < 0 || i >= n {
		return 0
	}
	return i
}

// Restore realizes the lists and puts focus back where the last run left
// it: the saved section, and the saved tile of that section if any.
func (m *Menu) Restore() {
	if !m.Sections.Prepare() || len(m.cfg.Sections) == 0 {
		return
	}
	si := m.last("sections", len(m.cfg.Sections))
	m.Sections.FocusItem(si)
	if m.Sections.SelectedIndex.GetValue() != si {
		m.Sections.Select(si)
	}

	items := m.cfg.Sections[si].Items
	if len(items) == 0 || m.store == nil {
		return
	}
	if _, err := m.store.LastFocus(m.tileKey()); err != nil {
		return
	}
	if m.Tiles.Prepare() {
		m.Tiles.FocusItem(m.last(m.tileKey(), len(items)))
	}
}

// Back moves focus from the tiles or the play button to the side menu. It
// reports false when focus already is in the side menu.
func (m *Menu) Back() bool {
	focused := m.Window.FocusedElement()
	if focused == nil || m.Sections.ContainerIndex(focused) >= 0 {
		return false
	}
	return m.Sections.FocusItem(max(m.Sections.SelectedIndex.GetValue(), 0))
}
