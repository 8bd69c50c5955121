package skin

// ListViewItem is the focusable container of one ListView item.
type ListViewItem struct {
	ContentControl

	IsSelected Property[bool]
}

// NewListViewItem creates an empty item container.
func NewListViewItem() *ListViewItem {
	it := &ListViewItem{}
	it.initContentControl(it)
	it.Focusable.SetValue(true)
	it.IsSelected.init("IsSelected", false)
	Register(&it.FrameworkElement, &it.IsSelected)
	return it
}

// Clone implements Element.
func (it *ListViewItem) Clone() Element {
	c := NewListViewItem()
	it.cloneInto(&c.FrameworkElement)
	return c
}

// ListView is an ItemsControl with focusable ListViewItem containers, a
// vertical stack panel and single selection. Enter selects the item holding
// focus.
type ListView struct {
	ItemsControl

	SelectedIndex Property[int]

	// SelectionChanged is called after SelectedIndex changes; item is nil
	// when the selection is cleared.
	SelectionChanged func(index int, item any)
}

// NewListView creates a list view. Only ItemsSource and ItemTemplate are
// needed before it realizes items.
func NewListView() *ListView {
	lv := &ListView{}
	lv.initItemsControl(lv)
	lv.NewContainer = func() Element { return NewListViewItem() }
	lv.ItemsPanel.SetValue(NewItemsPanelTemplate(NewStackPanel(Vertical)))
	lv.ItemContainerStyle.SetValue(NewStyle("ListViewItem"))
	lv.SelectedIndex.init("SelectedIndex", -1)
	Register(&lv.FrameworkElement, &lv.SelectedIndex)
	lv.SelectedIndex.Attach(func(i int) {
		lv.markSelection()
		if lv.SelectionChanged != nil {
			lv.SelectionChanged(i, lv.SelectedItem())
		}
	})
	return lv
}

// Prepare realizes the items and keeps the selection when its index still
// exists.
func (lv *ListView) Prepare() bool {
	if !lv.ItemsControl.Prepare() {
		return false
	}
	if lv.SelectedIndex.GetValue() >= len(lv.containers) {
		lv.SelectedIndex.SetValue(-1)
	} else {
		lv.markSelection()
	}
	return true
}

func (lv *ListView) markSelection() {
	sel := lv.SelectedIndex.GetValue()
	for i, c := range lv.containers {
		if it, ok := c.(*ListViewItem); ok {
			if want := i == sel; it.IsSelected.GetValue() != want {
				it.IsSelected.SetValue(want)
			}
		}
	}
}

// SelectedItem returns the data item of the selected container, or nil.
func (lv *ListView) SelectedItem() any {
	i := lv.SelectedIndex.GetValue()
	if i < 0 || i >= len(lv.containers) {
		return nil
	}
	return lv.containers[i].Framework().Context.GetValue()
}

// Select selects the item at index; -1 clears the selection.
func (lv *ListView) Select(index int) {
	if index < -1 || index >= len(lv.containers) {
		return
	}
	lv.SelectedIndex.SetValue(index)
}

// OnKeyPressed implements KeyHandler.
func (lv *ListView) OnKeyPressed(key *Key) {
	if *key != KeyEnter || lv.win == nil {
		return
	}
	if i := lv.ContainerIndex(lv.win.focused); i >= 0 {
		lv.Select(i)
		*key = KeyNone
	}
}

// Clone implements Element.
func (lv *ListView) Clone() Element {
	c := NewListView()
	lv.cloneItems(&c.ItemsControl)
	c.SelectionChanged = lv.SelectionChanged
	return c
}
