// Command skindemo is a home-theater style menu built on skin. It runs in
// the terminal through bubbletea, or in a window through raylib when built
// with -tags raylib.
//
// Configuration is read from a YAML file (see Config); a missing file runs
// the built-in catalogue. When stdout is not a terminal a single frame is
// printed instead.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kungfusheep/skin/logutil"
	"github.com/kungfusheep/skin/render/term"
	"github.com/mattn/go-isatty"
)

var logger = logutil.GetLogger("[skindemo] ")

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "skindemo:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "skindemo.yaml", "configuration file")
	backend := flag.String("backend", "", "term or raylib, overriding the configuration")
	once := flag.Bool("once", false, "print one frame and exit")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if err := logutil.SetOutputFile(cfg.LogFile); err != nil {
		return err
	}
	defer logutil.SetOutput(io.Discard)
	theme, err := cfg.Theme.Resolve()
	if err != nil {
		return err
	}

	var store *Store
	if cfg.StateDB != "" {
		store, err = OpenStore(cfg.StateDB)
		if err != nil {
			return fmt.Errorf("state %s: %w", cfg.StateDB, err)
		}
		defer store.Close()
	}

	dir := cfg.Assets
	if dir == "" {
		dir = "."
	}
	fsys := os.DirFS(dir)

	switch cfg.Backend {
	case "term":
		return runTerm(cfg, theme, store, fsys, *once)
	case "raylib":
		return runRaylib(cfg, theme, store, fsys)
	}
	return fmt.Errorf("unknown backend %q", cfg.Backend)
}

func runTerm(cfg *Config, theme Theme, store *Store, fsys fs.FS, once bool) error {
	screen := term.NewScreen(os.Stdout)
	w, h := screen.Size()
	h = max(h-1, 1)
	menu := NewMenu(cfg, theme, store, float64(w), float64(h))
	menu.Restore()
	assets := term.NewAssets(fsys)

	if once || !isatty.IsTerminal(os.Stdout.Fd()) {
		be := term.NewBackend(term.NewBuffer(w, h))
		be.Draw(menu.Window, assets)
		assets.Wait()
		be.Draw(menu.Window, assets)
		return screen.Flush(be.Buffer())
	}

	p := tea.NewProgram(newModel(menu, assets, screen, theme), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
