//go:build raylib

package main

import (
	"errors"
	"io/fs"

	"github.com/kungfusheep/skin"
	"github.com/kungfusheep/skin/render/raylib"
)

func runRaylib(cfg *Config, theme Theme, store *Store, fsys fs.FS) error {
	if cfg.Scale <= 0 {
		return errors.New("raylib backend needs a positive scale")
	}
	menu := NewMenu(cfg, theme, store, float64(cfg.Width)/cfg.Scale, float64(cfg.Height)/cfg.Scale)
	menu.Restore()
	return raylib.Run(menu.Window, raylib.Config{
		Width:      int32(cfg.Width),
		Height:     int32(cfg.Height),
		Title:      cfg.Title,
		Scale:      cfg.Scale,
		Background: theme.Background,
		Assets:     fsys,
	}, func(k skin.Key) {
		if k == skin.KeyBack {
			menu.Back()
		}
	})
}
