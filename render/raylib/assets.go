package raylib

import (
	"io/fs"
	"path"
	"strings"
	"sync"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/kungfusheep/skin"
)

// fontBaseSize is the pixel size glyphs are rasterized at.
const fontBaseSize = 32

// Font is a raylib font. The id skin.DefaultFont maps to raylib's built-in
// font; other ids name TTF/OTF files.
type Font struct {
	id    string
	data  []byte
	ready atomic.Bool
	font  rl.Font
	scale float64
}

// IsAllocated implements skin.Asset.
func (f *Font) IsAllocated() bool { return f.ready.Load() }

// NativeSize implements skin.Asset.
func (f *Font) NativeSize() skin.Size { return skin.Size{} }

func (f *Font) spacing(px float32) float32 { return px / 10 }

// MeasureText implements skin.TextMeasurer in layout units.
func (f *Font) MeasureText(text string, size float64) skin.Size {
	px := float32(size * f.scale)
	v := rl.MeasureTextEx(f.font, text, px, f.spacing(px))
	return skin.Size{Width: float64(v.X) / f.scale, Height: float64(v.Y) / f.scale}
}

// Texture is a GPU texture decoded from an image file.
type Texture struct {
	id    string
	data  []byte
	ready atomic.Bool
	tex   rl.Texture2D
	size  skin.Size
}

// IsAllocated implements skin.Asset.
func (t *Texture) IsAllocated() bool { return t.ready.Load() }

// NativeSize implements skin.Asset, in layout units.
func (t *Texture) NativeSize() skin.Size {
	if !t.ready.Load() {
		return skin.Size{}
	}
	return t.size
}

type assetKey struct {
	id    string
	image bool
}

// Assets implements skin.AssetCache. Files are read on background
// goroutines; the GPU upload happens in Upload, which must run on the
// thread that owns the raylib window.
type Assets struct {
	fsys  fs.FS
	scale float64

	mu       sync.Mutex
	cache    map[assetKey]skin.Asset
	uploads  []skin.Asset
	fonts    []*Font
	textures []*Texture
}

// NewAssets creates a cache reading from fsys. scale is the backend's
// pixels per layout unit.
func NewAssets(fsys fs.FS, scale float64) *Assets {
	if scale <= 0 {
		scale = 1
	}
	return &Assets{fsys: fsys, scale: scale, cache: make(map[assetKey]skin.Asset)}
}

// Load implements skin.AssetCache. It never blocks.
func (a *Assets) Load(id string, isImage bool) skin.Asset {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := assetKey{id, isImage}
	if asset, ok := a.cache[key]; ok {
		return asset
	}
	if isImage {
		t := &Texture{id: id}
		a.cache[key] = t
		go a.read(id, func(data []byte) { t.data = data }, t)
		return t
	}
	f := &Font{id: id, scale: a.scale}
	a.cache[key] = f
	if id == skin.DefaultFont {
		a.uploads = append(a.uploads, f)
		return f
	}
	go a.read(id, func(data []byte) { f.data = data }, f)
	return f
}

func (a *Assets) read(id string, store func([]byte), asset skin.Asset) {
	data, err := fs.ReadFile(a.fsys, id)
	if err != nil {
		logger.Printf("asset %q: %v", id, err)
		return
	}
	a.mu.Lock()
	store(data)
	a.uploads = append(a.uploads, asset)
	a.mu.Unlock()
}

// Upload moves read assets to the GPU. Call it once per frame before
// rendering.
func (a *Assets) Upload() {
	a.mu.Lock()
	pending := a.uploads
	a.uploads = nil
	a.mu.Unlock()

	for _, asset := range pending {
		switch asset := asset.(type) {
		case *Font:
			a.uploadFont(asset)
		case *Texture:
			a.uploadTexture(asset)
		}
	}
}

func (a *Assets) uploadFont(f *Font) {
	if f.id == skin.DefaultFont {
		f.font = rl.GetFontDefault()
		f.ready.Store(true)
		return
	}
	f.font = rl.LoadFontFromMemory(fileType(f.id), f.data, fontBaseSize, nil)
	f.data = nil
	if !rl.IsFontValid(f.font) {
		logger.Printf("font %q: not a usable font", f.id)
		return
	}
	a.fonts = append(a.fonts, f)
	f.ready.Store(true)
}

func (a *Assets) uploadTexture(t *Texture) {
	img := rl.LoadImageFromMemory(fileType(t.id), t.data, int32(len(t.data)))
	t.data = nil
	if img == nil || img.Data == nil || img.Width == 0 || img.Height == 0 {
		logger.Printf("image %q: decode failed", t.id)
		if img != nil {
			rl.UnloadImage(img)
		}
		return
	}
	t.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if !rl.IsTextureValid(t.tex) {
		logger.Printf("image %q: texture upload failed", t.id)
		return
	}
	t.size = skin.Size{Width: float64(t.tex.Width) / a.scale, Height: float64(t.tex.Height) / a.scale}
	a.textures = append(a.textures, t)
	t.ready.Store(true)
}

// Unload frees every GPU resource. The cache must not be used afterwards.
func (a *Assets) Unload() {
	for _, t := range a.textures {
		rl.UnloadTexture(t.tex)
		t.ready.Store(false)
	}
	for _, f := range a.fonts {
		rl.UnloadFont(f.font)
		f.ready.Store(false)
	}
	logger.Printf("unloaded %d textures and %d fonts", len(a.textures), len(a.fonts))
	a.textures, a.fonts = nil, nil
}

// fileType returns the extension raylib expects, like ".png".
func fileType(id string) string {
	return strings.ToLower(path.Ext(id))
}
