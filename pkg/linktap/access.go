package linktap

import (
	"image"

	"linktap/pkg/styled"
)

// Element exposes one marked range to an assistive-technology host. It
// holds only the key and table index, never the range or rectangle: both
// are re-resolved against the engine per call, so an element that outlives
// an invalidation degrades to empty answers instead of reading stale
// geometry. The engine outlives every element it hands out.
type Element struct {
	engine *Engine
	key    styled.Key
	index  int
}

// Elements renders (or reuses) the raster for key and returns one element
// per lookup-table entry, in table order.
func (e *Engine) Elements(key styled.Key) []Element {
	ent, ok := e.entry(key)
	if !ok {
		return nil
	}
	els := make([]Element, len(ent.table))
	for i := range els {
		els[i] = Element{engine: e, key: key, index: i}
	}
	return els
}

// Index is the element's lookup-table index.
func (el Element) Index() int { return el.index }

// Range resolves the element's character range against the current table.
func (el Element) Range() (styled.Range, bool) {
	ent, ok := el.engine.entry(el.key)
	if !ok || el.index >= len(ent.table) {
		return styled.Range{}, false
	}
	return ent.table[el.index], true
}

// Value resolves the element's marked value (the URL for link elements).
func (el Element) Value() (any, bool) {
	r, ok := el.Range()
	if !ok {
		return nil, false
	}
	return el.engine.view.Content().Value(el.key, r.Start)
}

// Rect computes the element's pixel rectangle lazily via the exhaustive
// seed sweep and the directional bounds scan. Assistive hosts supply no
// touch point, so this is the no-seed path.
func (el Element) Rect() (image.Rectangle, bool) {
	return el.engine.RectFor(el.key, el.index)
}
