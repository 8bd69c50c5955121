package skin

import (
	"fmt"
	"strconv"
	"strings"
)

// NamedLookup is implemented by anything a name path can step through.
type NamedLookup interface {
	Lookup(member string) (any, bool)
}

// Indexer is implemented by anything a name path can index with [i].
type Indexer interface {
	Index(i int) (any, bool)
}

// VisualTreeHelper resolves dotted name paths such as "menu.Items[2].Context"
// against a tree. The first segment is an element Name, found through a
// table built once per tree; later segments step through NamedLookup,
// Indexer, map[string]any and []any values. Results are cached by full path
// until the tree changes.
type VisualTreeHelper struct {
	root  Element
	table map[string]Element
	cache map[string]any
}

// NewVisualTreeHelper creates a resolver for root.
func NewVisualTreeHelper(root Element) *VisualTreeHelper {
	return &VisualTreeHelper{root: root}
}

// SetRoot replaces the tree and drops every cached result.
func (h *VisualTreeHelper) SetRoot(root Element) {
	h.root = root
	h.reset()
}

func (h *VisualTreeHelper) reset() {
	h.table = nil
	h.cache = nil
}

func (h *VisualTreeHelper) build() {
	h.table = make(map[string]Element)
	var walk func(el Element)
	walk = func(el Element) {
		if name := el.Framework().Name.GetValue(); name != "" {
			if _, dup := h.table[name]; !dup {
				h.table[name] = el
			}
		}
		for _, c := range el.VisualChildren() {
			walk(c)
		}
	}
	if h.root != nil {
		walk(h.root)
	}
}

// FindElement resolves path. Misses are logged and return (nil, false).
func (h *VisualTreeHelper) FindElement(path string) (any, bool) {
	if v, ok := h.cache[path]; ok {
		return v, true
	}
	v, err := h.resolve(path)
	if err != nil {
		logger.Printf("find %q: %v", path, err)
		return nil, false
	}
	if h.cache == nil {
		h.cache = make(map[string]any)
	}
	h.cache[path] = v
	return v, true
}

// FindProperty resolves every segment but the last to an element and returns
// the property the last segment names.
func (h *VisualTreeHelper) FindProperty(path string) (PropertyRef, bool) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		logger.Printf("find property %q: no owner segment", path)
		return nil, false
	}
	v, ok := h.FindElement(path[:i])
	if !ok {
		return nil, false
	}
	el, ok := v.(Element)
	if !ok {
		logger.Printf("find property %q: %T is not an element", path, v)
		return nil, false
	}
	p, ok := el.Framework().Property(path[i+1:])
	if !ok {
		logger.Printf("find property %q: %v", path, ErrNoProperty)
	}
	return p, ok
}

type pathSegment struct {
	name    string
	indexes []int
}

func parsePath(path string) ([]pathSegment, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}
	var segs []pathSegment
	for _, part := range strings.Split(path, ".") {
		seg := pathSegment{}
		name, rest, _ := strings.Cut(part, "[")
		seg.name = name
		if rest != "" {
			rest = "[" + rest
		}
		for rest != "" {
			if rest[0] != '[' {
				return nil, fmt.Errorf("bad segment %q", part)
			}
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, fmt.Errorf("unclosed index in %q", part)
			}
			i, err := strconv.Atoi(rest[1:end])
			if err != nil {
				return nil, fmt.Errorf("bad index in %q: %w", part, err)
			}
			seg.indexes = append(seg.indexes, i)
			rest = rest[end+1:]
		}
		if seg.name == "" && (len(segs) == 0 || len(seg.indexes) == 0) {
			return nil, fmt.Errorf("empty segment in %q", path)
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

func (h *VisualTreeHelper) resolve(path string) (any, error) {
	segs, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	if h.table == nil {
		h.build()
	}
	first, ok := h.table[segs[0].name]
	if !ok {
		return nil, fmt.Errorf("no element named %q", segs[0].name)
	}
	var v any = first
	for i, seg := range segs {
		if i > 0 && seg.name != "" {
			if v, err = lookupMember(v, seg.name); err != nil {
				return nil, err
			}
		}
		for _, idx := range seg.indexes {
			if v, err = lookupIndex(v, idx); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

func lookupMember(v any, member string) (any, error) {
	switch t := v.(type) {
	case NamedLookup:
		if r, ok := t.Lookup(member); ok {
			return r, nil
		}
	case map[string]any:
		if r, ok := t[member]; ok {
			return r, nil
		}
	case nil:
		return nil, fmt.Errorf("member %q of nil", member)
	}
	return nil, fmt.Errorf("%T has no member %q", v, member)
}

func lookupIndex(v any, i int) (any, error) {
	switch t := v.(type) {
	case Indexer:
		if r, ok := t.Index(i); ok {
			return r, nil
		}
	case ItemsSource:
		if items := t.Snapshot(); i >= 0 && i < len(items) {
			return items[i], nil
		}
	case []any:
		if i >= 0 && i < len(t) {
			return t[i], nil
		}
	case []Element:
		if i >= 0 && i < len(t) {
			return t[i], nil
		}
	default:
		return nil, fmt.Errorf("%T is not indexable", v)
	}
	return nil, fmt.Errorf("index %d out of range", i)
}
