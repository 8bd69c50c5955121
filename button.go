package skin

// Button is a focusable content control that raises Click and runs Command
// when Enter or Space is pressed while it has focus.
type Button struct {
	ContentControl

	Click func()
	// Command runs with the button's data context.
	Command func(param any)
}

// NewButton creates a button with the given content.
func NewButton(content any) *Button {
	b := &Button{}
	b.initContentControl(b)
	b.Focusable.SetValue(true)
	if content != nil {
		b.Content.SetValue(content)
	}
	return b
}

// OnClick sets the click handler.
func (b *Button) OnClick(fn func()) *Button {
	b.Click = fn
	return b
}

// Press raises Click and runs Command.
func (b *Button) Press() {
	if b.Click != nil {
		b.Click()
	}
	if b.Command != nil {
		b.Command(b.DataContext())
	}
}

// OnKeyPressed implements KeyHandler.
func (b *Button) OnKeyPressed(key *Key) {
	if *key == KeyEnter || *key == KeySpace {
		b.Press()
		*key = KeyNone
	}
}

// Clone implements Element.
func (b *Button) Clone() Element {
	c := NewButton(nil)
	b.cloneInto(&c.FrameworkElement)
	c.Click, c.Command = b.Click, b.Command
	return c
}

// CheckBox is a button that toggles IsChecked when pressed.
type CheckBox struct {
	Button

	IsChecked Property[bool]
}

// NewCheckBox creates a check box with the given content.
func NewCheckBox(content any) *CheckBox {
	c := &CheckBox{}
	c.initContentControl(c)
	c.Focusable.SetValue(true)
	c.IsChecked.init("IsChecked", false)
	Register(&c.FrameworkElement, &c.IsChecked)
	if content != nil {
		c.Content.SetValue(content)
	}
	return c
}

// Toggle flips IsChecked, then raises Click and runs Command.
func (c *CheckBox) Toggle() {
	c.IsChecked.SetValue(!c.IsChecked.GetValue())
	c.Press()
}

// OnKeyPressed implements KeyHandler.
func (c *CheckBox) OnKeyPressed(key *Key) {
	if *key == KeyEnter || *key == KeySpace {
		c.Toggle()
		*key = KeyNone
	}
}

// Clone implements Element.
func (c *CheckBox) Clone() Element {
	n := NewCheckBox(nil)
	c.cloneInto(&n.FrameworkElement)
	n.Click, n.Command = c.Click, c.Command
	return n
}
