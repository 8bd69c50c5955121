package raylib

import (
	"fmt"
	"io/fs"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/kungfusheep/skin"
)

// Config describes the host window.
type Config struct {
	Width, Height int32
	Title         string
	// Scale is the number of pixels per layout unit.
	Scale      float64
	FPS        int32
	Background skin.Color
	Assets     fs.FS
}

var keys = map[int32]skin.Key{
	rl.KeyUp:        skin.KeyUp,
	rl.KeyDown:      skin.KeyDown,
	rl.KeyLeft:      skin.KeyLeft,
	rl.KeyRight:     skin.KeyRight,
	rl.KeyEnter:     skin.KeyEnter,
	rl.KeySpace:     skin.KeySpace,
	rl.KeyBackspace: skin.KeyBack,
	rl.KeyEscape:    skin.KeyBack,
	rl.KeyHome:      skin.KeyHome,
	rl.KeyEnd:       skin.KeyEnd,
	rl.KeyPageUp:    skin.KeyPageUp,
	rl.KeyPageDown:  skin.KeyPageDown,
}

// Run opens a raylib window and drives win until the window is closed.
// Unhandled keys are passed to onKey when it is not nil. Run must be called
// from the main goroutine.
func Run(win *skin.Window, cfg Config, onKey func(skin.Key)) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(cfg.Width, cfg.Height, cfg.Title)
	if !rl.IsWindowReady() {
		return fmt.Errorf("raylib: window %dx%d could not be created", cfg.Width, cfg.Height)
	}
	defer rl.CloseWindow()
	rl.SetTargetFPS(cfg.FPS)
	logger.Printf("window %dx%d at %.1f px/unit", cfg.Width, cfg.Height, cfg.Scale)

	assets := NewAssets(cfg.Assets, cfg.Scale)
	defer assets.Unload()
	backend := NewBackend(cfg.Scale)
	bg := rgba(cfg.Background, 1)
	win.SetSize(float64(cfg.Width)/cfg.Scale, float64(cfg.Height)/cfg.Scale)

	var mouse rl.Vector2
	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			win.SetSize(float64(rl.GetScreenWidth())/cfg.Scale, float64(rl.GetScreenHeight())/cfg.Scale)
		}
		for code := rl.GetKeyPressed(); code != 0; code = rl.GetKeyPressed() {
			k, ok := keys[code]
			if !ok {
				continue
			}
			win.OnKeyPressed(&k)
			if k != skin.KeyNone && onKey != nil {
				onKey(k)
			}
		}
		if p := rl.GetMousePosition(); p != mouse {
			mouse = p
			win.OnMouseMove(float64(p.X)/cfg.Scale, float64(p.Y)/cfg.Scale)
		}

		assets.Upload()
		rl.BeginDrawing()
		rl.ClearBackground(bg)
		win.Frame(skin.NewRenderContext(backend, assets))
		rl.EndDrawing()
	}
	return nil
}
