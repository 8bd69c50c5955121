package skin

// RenderContext carries the active transform and opacity through one
// Measure, Arrange or Render traversal. It is a value threaded through the
// calls, never shared between traversals.
//
// Every push returns a Scope; release it with defer so the stack stays
// balanced on every return path:
//
//	defer rc.Push(m, opacity).Pop()
type RenderContext struct {
	backend Backend
	assets  AssetCache
	stack   []renderFrame

	pushes, pops int
}

type renderFrame struct {
	world   Matrix
	opacity float64
}

// NewRenderContext creates a context with an identity transform and full opacity.
// Both collaborators may be nil (layout-only traversal).
func NewRenderContext(backend Backend, assets AssetCache) *RenderContext {
	return &RenderContext{
		backend: backend,
		assets:  assets,
		stack:   []renderFrame{{world: Identity(), opacity: 1}},
	}
}

// Backend returns the render backend, or nil.
func (rc *RenderContext) Backend() Backend { return rc.backend }

// Assets returns the asset cache, or nil.
func (rc *RenderContext) Assets() AssetCache { return rc.assets }

// Transform returns the accumulated world transform.
func (rc *RenderContext) Transform() Matrix { return rc.top().world }

// Opacity returns the accumulated opacity.
func (rc *RenderContext) Opacity() float64 { return rc.top().opacity }

// Depth returns the number of active pushes.
func (rc *RenderContext) Depth() int { return len(rc.stack) - 1 }

// Pushes returns how many pushes happened over the context's lifetime.
func (rc *RenderContext) Pushes() int { return rc.pushes }

// Pops returns how many scopes were released over the context's lifetime.
func (rc *RenderContext) Pops() int { return rc.pops }

func (rc *RenderContext) top() renderFrame { return rc.stack[len(rc.stack)-1] }

// Push applies a local transform and opacity on top of the current state.
func (rc *RenderContext) Push(local Matrix, opacity float64) Scope {
	t := rc.top()
	return rc.push(renderFrame{world: local.Multiply(t.world), opacity: t.opacity * opacity})
}

// PushTransform applies a local transform, keeping the opacity.
func (rc *RenderContext) PushTransform(local Matrix) Scope {
	t := rc.top()
	return rc.push(renderFrame{world: local.Multiply(t.world), opacity: t.opacity})
}

// PushOpacity multiplies the opacity, keeping the transform.
func (rc *RenderContext) PushOpacity(opacity float64) Scope {
	t := rc.top()
	return rc.push(renderFrame{world: t.world, opacity: t.opacity * opacity})
}

func (rc *RenderContext) push(f renderFrame) Scope {
	depth := len(rc.stack)
	rc.stack = append(rc.stack, f)
	rc.pushes++
	return Scope{rc: rc, depth: depth}
}

// Scope releases one push. Pop restores the stack to the depth it had before
// the push, so calling it twice is harmless.
type Scope struct {
	rc    *RenderContext
	depth int
}

// Pop releases the scope.
func (s Scope) Pop() {
	if s.rc == nil || len(s.rc.stack) <= s.depth {
		return
	}
	s.rc.stack = s.rc.stack[:s.depth]
	s.rc.pops++
}
