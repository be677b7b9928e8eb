package linktap

import (
	"linktap/pkg/styled"
)

// Hit is a successful point lookup: the decoded table index, the character
// range it maps to, and the marked value carried there (a URL for
// styled.KeyLink).
type Hit struct {
	Index int
	Range styled.Range
	Value any
}

type cacheEntry struct {
	raster *Raster
	table  Table
}

// Engine answers "which marked range is at this point" by rendering the
// host view's content with index colors and decoding pixels against the
// result. Rendered rasters are cached per attribute key until the view
// reports a content or bounds change.
//
// An Engine is single-goroutine: the render-and-restore sequence swaps the
// view's displayed content and is not safe to interleave with anything.
// All calls, including the view's change notifications, must come from the
// one goroutine that owns the view.
type Engine struct {
	view  HostView
	cache map[styled.Key]cacheEntry

	// internalRender suppresses invalidation while the engine itself is
	// swapping the view's content (render pass or scoped color update).
	internalRender bool
	// holds defers invalidation while a touch sequence or a raster sweep
	// needs the cached geometry to stay put.
	holds          int
	pending        bool

	renders int
}

// NewEngine attaches an engine to its host view and registers for change
// notifications. A nil view is a programmer error.
func NewEngine(view HostView) *Engine {
	if view == nil {
		panic("linktap: nil host view")
	}
	e := &Engine{view: view, cache: make(map[styled.Key]cacheEntry)}
	view.AddObserver(e)
	return e
}

// Close unregisters the engine from its view. The engine must not be used
// afterwards.
func (e *Engine) Close() {
	e.view.RemoveObserver(e)
}

// View returns the attached host view.
func (e *Engine) View() HostView { return e.view }

func (e *Engine) ContentChanged() { e.invalidate() }

func (e *Engine) BoundsChanged() { e.invalidate() }

func (e *Engine) invalidate() {
	if e.internalRender {
		return
	}
	if e.holds > 0 {
		e.pending = true
		return
	}
	clear(e.cache)
}

func (e *Engine) hold() { e.holds++ }

func (e *Engine) release() {
	if e.holds <= 0 {
		panic("linktap: release without hold")
	}
	e.holds--
	if e.holds == 0 && e.pending {
		e.pending = false
		clear(e.cache)
	}
}

// WithoutInvalidating runs fn while change notifications are ignored
// outright, for engine-owned view mutations (highlight colors) that must
// not count as content changes.
func (e *Engine) WithoutInvalidating(fn func()) {
	prev := e.internalRender
	e.internalRender = true
	defer func() { e.internalRender = prev }()
	fn()
}

// SetCoalesceRanges would switch range enumeration to longest effective
// ranges, merging adjacent equal-valued spans. The toggle is declared but
// deliberately unimplemented; only the default is accepted.
func (e *Engine) SetCoalesceRanges(v bool) {
	if v {
		panic("linktap: longest-effective-range enumeration is not implemented")
	}
}

// RangeAt decodes the point in view-local coordinates against the cached
// raster for key, rendering it first if needed. The miss result covers
// unmarked points, points outside the view, and render failure alike.
func (e *Engine) RangeAt(key styled.Key, x, y float64) (Hit, bool) {
	ent, ok := e.entry(key)
	if !ok {
		return Hit{}, false
	}
	idx, ok := ent.raster.IndexAt(x, y, len(ent.table))
	if !ok {
		return Hit{}, false
	}
	r := ent.table[idx]
	hit := Hit{Index: idx, Range: r}
	if v, ok := e.view.Content().Value(key, r.Start); ok {
		hit.Value = v
	}
	return hit, true
}

func (e *Engine) entry(key styled.Key) (cacheEntry, bool) {
	if ent, ok := e.cache[key]; ok {
		return ent, true
	}
	ent, ok := e.renderEncoded(key)
	if !ok {
		return cacheEntry{}, false
	}
	e.cache[key] = ent
	return ent, true
}

// renderEncoded swaps the encoded content in, drives the view's draw
// pipeline into an offscreen raster, and restores the original content.
// The whole swap runs under the re-entrancy guard so the view's own
// change notifications for it are ignored.
func (e *Engine) renderEncoded(key styled.Key) (cacheEntry, bool) {
	original := e.view.Content()
	encoded, table := EncodeIndexColors(original, key)

	prev := e.internalRender
	e.internalRender = true
	e.view.SetContent(encoded)
	ra := e.view.RenderContent()
	e.view.SetContent(original)
	e.internalRender = prev

	if ra == nil {
		return cacheEntry{}, false
	}
	e.renders++
	return cacheEntry{raster: ra, table: table}, true
}
