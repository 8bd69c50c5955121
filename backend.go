package skin

// PrimitiveType selects how a vertex buffer is assembled.
type PrimitiveType int

const (
	TriangleList PrimitiveType = iota
	TriangleFan
	LineList
)

// Count returns how many primitives n vertices form.
func (p PrimitiveType) Count(n int) int {
	switch p {
	case TriangleList:
		return n / 3
	case TriangleFan:
		if n < 3 {
			return 0
		}
		return n - 2
	case LineList:
		return n / 2
	}
	return 0
}

// Vertex is one tessellated point in absolute window coordinates.
type Vertex struct {
	X, Y  float32
	Color Color
	U, V  float32
}

// VertexBuffer is geometry owned by one element. The backend attaches its
// device resource with SetHandle; until then the buffer is unallocated and
// BeginRender refuses it.
type VertexBuffer struct {
	Vertices []Vertex

	handle  any
	release func()
}

// Allocated reports whether a device resource is attached.
func (vb *VertexBuffer) Allocated() bool { return vb != nil && vb.handle != nil }

// Handle returns the backend's device resource.
func (vb *VertexBuffer) Handle() any { return vb.handle }

// SetHandle attaches a device resource and the function that releases it.
func (vb *VertexBuffer) SetHandle(h any, release func()) {
	vb.Free()
	vb.handle = h
	vb.release = release
}

// Free releases the device resource. The vertices are kept.
func (vb *VertexBuffer) Free() {
	if vb == nil {
		return
	}
	if vb.release != nil {
		vb.release()
	}
	vb.handle = nil
	vb.release = nil
}

// Backend is the GPU-side render contract. Elements call it inside their own
// balanced transform scope.
type Backend interface {
	// Allocate requests a device resource for vb. It may complete later.
	Allocate(vb *VertexBuffer)
	// BeginRender binds vb for drawing and reports false if it is not allocated yet.
	BeginRender(vb *VertexBuffer, primitive PrimitiveType, world Matrix, opacity float64) bool
	DrawPrimitives(primitive PrimitiveType, start, count int)
	EndRender()
}

// TextRenderer is implemented by backends that can draw text with a font asset.
type TextRenderer interface {
	DrawText(font Asset, text string, size float64, bounds Rect, color Color, world Matrix, opacity float64)
}

// TextureRenderer is implemented by backends that can draw image assets.
type TextureRenderer interface {
	DrawTexture(texture Asset, bounds Rect, world Matrix, opacity float64)
}

// Asset is a possibly not-yet-loaded texture or font.
type Asset interface {
	IsAllocated() bool
	// NativeSize is the image's pixel size; zero for fonts or while loading.
	NativeSize() Size
}

// TextMeasurer is implemented by font assets.
type TextMeasurer interface {
	MeasureText(text string, size float64) Size
}

// AssetCache loads assets asynchronously; Load never blocks.
type AssetCache interface {
	Load(id string, isImage bool) Asset
}

// drawBuffer renders a vertex buffer through the context's backend, skipping
// silently while the device resource is not available.
func drawBuffer(rc *RenderContext, vb *VertexBuffer, primitive PrimitiveType) {
	b := rc.Backend()
	if b == nil || vb == nil || len(vb.Vertices) == 0 {
		return
	}
	if !vb.Allocated() {
		b.Allocate(vb)
	}
	if !b.BeginRender(vb, primitive, rc.Transform(), rc.Opacity()) {
		return
	}
	defer b.EndRender()
	b.DrawPrimitives(primitive, 0, primitive.Count(len(vb.Vertices)))
}
