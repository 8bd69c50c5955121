package skin

import (
	"math"
)

// Key is an input key after translation from the platform's key events.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeySpace
	KeyBack
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

var keyNames = [...]string{
	KeyNone:     "None",
	KeyUp:       "Up",
	KeyDown:     "Down",
	KeyLeft:     "Left",
	KeyRight:    "Right",
	KeyEnter:    "Enter",
	KeySpace:    "Space",
	KeyBack:     "Back",
	KeyHome:     "Home",
	KeyEnd:      "End",
	KeyPageUp:   "PageUp",
	KeyPageDown: "PageDown",
}

func (k Key) String() string {
	if k >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "Key(?)"
}

// Direction is a focus navigation direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	}
	return "Direction(?)"
}

// Direction returns the navigation direction of an arrow key.
func (k Key) Direction() (Direction, bool) {
	switch k {
	case KeyUp:
		return DirUp, true
	case KeyDown:
		return DirDown, true
	case KeyLeft:
		return DirLeft, true
	case KeyRight:
		return DirRight, true
	}
	return 0, false
}

// FocusPredictor is implemented by navigation hosts. PredictFocus returns the
// element that should receive focus when moving from current in dir, or nil.
//
// Composite controls delegate to their single logical child; panels and
// items controls search their realized children.
type FocusPredictor interface {
	PredictFocus(current Element, dir Direction, strict bool) Element
}

// focusBounder lets an element navigate by a rectangle other than its
// ActualBounds, like a tree item that navigates by its header only.
type focusBounder interface {
	FocusBounds() Rect
}

func focusBounds(el Element) Rect {
	if fb, ok := el.(focusBounder); ok {
		return fb.FocusBounds()
	}
	return el.Framework().ActualBounds()
}

// PredictFocus asks host for the next focus target. Hosts that do not
// implement FocusPredictor are searched like a panel.
func PredictFocus(host, current Element, dir Direction, strict bool) Element {
	if host == nil {
		return nil
	}
	if fp, ok := host.(FocusPredictor); ok {
		return fp.PredictFocus(current, dir, strict)
	}
	return searchFocus(host.VisualChildren(), current, dir, strict)
}

// PredictFocusUp is PredictFocus(host, current, DirUp, strict).
func PredictFocusUp(host, current Element, strict bool) Element {
	return PredictFocus(host, current, DirUp, strict)
}

// PredictFocusDown is PredictFocus(host, current, DirDown, strict).
func PredictFocusDown(host, current Element, strict bool) Element {
	return PredictFocus(host, current, DirDown, strict)
}

// PredictFocusLeft is PredictFocus(host, current, DirLeft, strict).
func PredictFocusLeft(host, current Element, strict bool) Element {
	return PredictFocus(host, current, DirLeft, strict)
}

// PredictFocusRight is PredictFocus(host, current, DirRight, strict).
func PredictFocusRight(host, current Element, strict bool) Element {
	return PredictFocus(host, current, DirRight, strict)
}

// searchFocus ranks the focusable, visible elements under roots.
//
// A candidate must lie wholly beyond current's edge in dir; strict also
// requires it to overlap current on the perpendicular axis. Candidates rank
// by edge distance, then by distance between centres on the perpendicular
// axis, then by tree order. With no current element the first candidate in
// tree order wins.
func searchFocus(roots []Element, current Element, dir Direction, strict bool) Element {
	candidates := collectFocusable(roots, current, nil)
	if len(candidates) == 0 {
		return nil
	}
	if current == nil {
		return candidates[0]
	}
	from := focusBounds(current)

	var best Element
	bestEdge, bestCross := math.Inf(1), math.Inf(1)
	for _, c := range candidates {
		if !c.Framework().arranged {
			continue
		}
		to := focusBounds(c)
		edge, cross, ok := focusScore(from, to, dir, strict)
		if !ok {
			continue
		}
		if edge < bestEdge || (edge == bestEdge && cross < bestCross) {
			best, bestEdge, bestCross = c, edge, cross
		}
	}
	return best
}

const focusEpsilon = 1e-6

// focusScore measures how far to lies from from in dir.
func focusScore(from, to Rect, dir Direction, strict bool) (edge, cross float64, ok bool) {
	fc, tc := from.Center(), to.Center()
	var overlap bool
	switch dir {
	case DirRight:
		edge = to.X - from.Right()
		cross = math.Abs(tc.Y - fc.Y)
		overlap = to.Y < from.Bottom() && to.Bottom() > from.Y
	case DirLeft:
		edge = from.X - to.Right()
		cross = math.Abs(tc.Y - fc.Y)
		overlap = to.Y < from.Bottom() && to.Bottom() > from.Y
	case DirDown:
		edge = to.Y - from.Bottom()
		cross = math.Abs(tc.X - fc.X)
		overlap = to.X < from.Right() && to.Right() > from.X
	case DirUp:
		edge = from.Y - to.Bottom()
		cross = math.Abs(tc.X - fc.X)
		overlap = to.X < from.Right() && to.Right() > from.X
	}
	if edge < -focusEpsilon {
		return 0, 0, false
	}
	if strict && !overlap {
		return 0, 0, false
	}
	return math.Max(edge, 0), cross, true
}

// collectFocusable gathers focusable, visible elements in tree order,
// skipping current. Focusable elements nested in a focusable element are
// candidates too.
func collectFocusable(roots []Element, current Element, out []Element) []Element {
	for _, el := range roots {
		fe := el.Framework()
		if !fe.IsVisible.GetValue() {
			continue
		}
		if el != current && fe.Focusable.GetValue() {
			out = append(out, el)
		}
		out = collectFocusable(el.VisualChildren(), current, out)
	}
	return out
}

func firstFocusable(root Element) Element {
	if c := collectFocusable([]Element{root}, nil, nil); len(c) > 0 {
		return c[0]
	}
	return nil
}

// OnKeyPressed routes a key through the focused branch.
//
// Starting at the focused element and walking up, each element that
// implements KeyHandler gets the key, and each navigation host predicts a
// strict move for arrow keys. If nothing consumed the key, the window makes a
// non-strict prediction over the whole tree. A consumed key is set to KeyNone.
func (w *Window) OnKeyPressed(key *Key) {
	if key == nil || *key == KeyNone || w.root == nil {
		return
	}
	dir, isArrow := key.Direction()
	focused := w.focused
	if focused == nil {
		if isArrow && w.FocusFirst() {
			*key = KeyNone
		}
		return
	}

	for el := focused; el != nil; el = el.Framework().VisualParent() {
		if h, ok := el.(KeyHandler); ok {
			h.OnKeyPressed(key)
			if *key == KeyNone {
				return
			}
		}
		if !isArrow {
			continue
		}
		if fp, ok := el.(FocusPredictor); ok {
			if next := fp.PredictFocus(focused, dir, true); next != nil && next != focused && w.SetFocus(next) {
				*key = KeyNone
				return
			}
		}
	}

	if isArrow {
		if next := searchFocus([]Element{w.root}, focused, dir, false); next != nil && w.SetFocus(next) {
			*key = KeyNone
		}
	}
}
