package term

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/kungfusheep/skin"
	"github.com/mattn/go-runewidth"
)

// Font is the terminal's own monospace face. It is always ready.
type Font struct {
	id string
}

// IsAllocated implements skin.Asset.
func (f *Font) IsAllocated() bool { return true }

// NativeSize implements skin.Asset.
func (f *Font) NativeSize() skin.Size { return skin.Size{} }

// MeasureText implements skin.TextMeasurer. Terminal glyphs are one row
// tall whatever the requested size.
func (f *Font) MeasureText(text string, _ float64) skin.Size {
	return skin.Size{Width: float64(runewidth.StringWidth(text)), Height: 1}
}

// Image is a decoded picture, shown by sampling one colour per cell.
type Image struct {
	id    string
	ready atomic.Bool
	err   error
	img   image.Image
	size  skin.Size
}

// IsAllocated implements skin.Asset.
func (img *Image) IsAllocated() bool { return img.ready.Load() }

// NativeSize implements skin.Asset: the picture's size in cells.
func (img *Image) NativeSize() skin.Size {
	if !img.ready.Load() {
		return skin.Size{}
	}
	return img.size
}

// Err returns the load error once loading has finished unsuccessfully.
func (img *Image) Err() error { return img.err }

func (img *Image) sample(u, v float64) skin.Color {
	b := img.img.Bounds()
	x := b.Min.X + int(u*float64(b.Dx()))
	y := b.Min.Y + int(v*float64(b.Dy()))
	r, g, bl, a := img.img.At(x, y).RGBA()
	if a == 0 {
		return skin.Color{}
	}
	// un-premultiply
	return skin.RGBA(uint8(r*0xff/a), uint8(g*0xff/a), uint8(bl*0xff/a), uint8(a>>8))
}

type assetKey struct {
	id    string
	image bool
}

// Assets implements skin.AssetCache. Images are read from a file system and
// decoded on a background goroutine; fonts resolve to the terminal face.
type Assets struct {
	fsys         fs.FS
	cellW, cellH int

	mu    sync.Mutex
	cache map[assetKey]skin.Asset
	wg    sync.WaitGroup
}

// NewAssets creates a cache reading images from fsys. A cell is taken to
// cover 8x16 image pixels.
func NewAssets(fsys fs.FS) *Assets {
	return &Assets{fsys: fsys, cellW: 8, cellH: 16, cache: make(map[assetKey]skin.Asset)}
}

// CellSize sets how many image pixels one cell covers.
func (a *Assets) CellSize(w, h int) *Assets {
	a.cellW, a.cellH = max(w, 1), max(h, 1)
	return a
}

// Load implements skin.AssetCache. It never blocks.
func (a *Assets) Load(id string, isImage bool) skin.Asset {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := assetKey{id, isImage}
	if asset, ok := a.cache[key]; ok {
		return asset
	}
	if !isImage {
		f := &Font{id: id}
		a.cache[key] = f
		return f
	}
	img := &Image{id: id}
	a.cache[key] = img
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.decode(img)
	}()
	return img
}

// Wait blocks until every image requested so far has finished loading.
func (a *Assets) Wait() { a.wg.Wait() }

func (a *Assets) decode(img *Image) {
	data, err := fs.ReadFile(a.fsys, img.id)
	if err == nil {
		img.img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		img.err = err
		logger.Printf("image %q: %v", img.id, err)
		return
	}
	b := img.img.Bounds()
	img.size = skin.Size{
		Width:  float64((b.Dx() + a.cellW - 1) / a.cellW),
		Height: float64((b.Dy() + a.cellH - 1) / a.cellH),
	}
	img.ready.Store(true)
}
