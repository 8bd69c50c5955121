package skin

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func namedTree() (*Window, *StackPanel, *ListView) {
	panel := VStack(box(1, 1), box(2, 2), box(3, 3))
	panel.Name.SetValue("panel")

	menu := NewListView()
	menu.Name.SetValue("menu")
	menu.ItemTemplate.SetValue(NewDataTemplate(NewLabel("")))
	menu.SetItemsSource(Items{"new", "open", "quit"})
	menu.Prepare()

	root := VStack(panel, menu)
	root.Name.SetValue("root")
	root.Resources.Add("grid", []any{[]any{1, 2}, []any{3, 4}})
	root.Resources.Add("palette", map[string]any{"accent": "teal"})

	win := layoutWindow(root, 40, 40)
	return win, panel, menu
}

func TestFindElementPaths(t *testing.T) {
	win, panel, _ := namedTree()

	tests := []struct {
		path string
		want any
	}{
		{"panel", panel},
		{"panel.Children[2]", panel.Children().At(2)},
		{"panel.Children.Count", 3},
		{"panel.Children[1].Width", 2.0},
		{"menu.Items[1]", "open"},
		{"menu.Containers[2].Context", "quit"},
		{"root.Resources.grid[1][0]", 3},
		{"root.Resources.palette.accent", "teal"},
		{"root.panel", panel},
		{"menu.Parent", win.Root()},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := win.FindElement(tt.path)
			if !ok {
				t.Fatalf("expected %q to resolve", tt.path)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFindElementMisses(t *testing.T) {
	win, _, _ := namedTree()
	for _, path := range []string{
		"",
		"nobody",
		"panel.Children[9]",
		"panel.Nope",
		"panel.Children[x]",
		"panel.Children[1",
		"root.Resources.grid[0][5]",
		"menu..Items",
	} {
		if v, ok := win.FindElement(path); ok {
			t.Errorf("expected %q to miss, got %v", path, v)
		}
	}
}

func TestFindElementCache(t *testing.T) {
	win, panel, _ := namedTree()
	if _, ok := win.FindElement("panel"); !ok {
		t.Fatal("expected panel to resolve")
	}

	panel.Name.SetValue("side")
	if _, ok := win.FindElement("panel"); ok {
		t.Error("expected rename to drop the cached path")
	}
	if got, ok := win.FindElement("side"); !ok || got != panel {
		t.Errorf("expected new name to resolve, got %v", got)
	}

	extra := box(1, 1)
	extra.Name.SetValue("extra")
	win.Root().(*StackPanel).Add(extra)
	if got, ok := win.FindElement("extra"); !ok || got != extra {
		t.Errorf("expected added element to resolve, got %v", got)
	}

	panel.Children().Clear()
	if _, ok := win.FindElement("side.Children[0]"); ok {
		t.Error("expected cleared children to miss")
	}
}

func TestFindElementFirstNameWins(t *testing.T) {
	first, second := box(1, 1), box(2, 2)
	first.Name.SetValue("dup")
	second.Name.SetValue("dup")
	win := layoutWindow(VStack(VStack(first), second), 10, 10)
	if got, _ := win.FindElement("dup"); got != first {
		t.Errorf("expected the first element in tree order, got %v", got)
	}
}

func TestFindProperty(t *testing.T) {
	win, panel, _ := namedTree()

	p, ok := win.FindProperty("panel.Spacing")
	if !ok {
		t.Fatal("expected panel.Spacing to resolve")
	}
	if err := p.Set(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if panel.Spacing.GetValue() != 2 {
		t.Errorf("expected spacing 2, got %v", panel.Spacing.GetValue())
	}

	for _, path := range []string{"panel", "panel.Nope", "menu.Items[0].Width", "ghost.Width"} {
		if _, ok := win.FindProperty(path); ok {
			t.Errorf("expected %q to miss", path)
		}
	}
}

func TestParsePath(t *testing.T) {
	segs, err := parsePath("a.b[2][3].c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []pathSegment{{name: "a"}, {name: "b", indexes: []int{2, 3}}, {name: "c"}}
	if diff := cmp.Diff(want, segs, cmp.AllowUnexported(pathSegment{})); diff != "" {
		t.Errorf("segments (-want +got):\n%s", diff)
	}
}
