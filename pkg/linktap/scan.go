package linktap

import (
	"image"

	"linktap/pkg/styled"
)

// BoundsAround grows an axis-aligned rectangle for index outward from a
// seed point already known to decode to it, by four independent linear
// scans (left, right, up, down). Each scan stops at the first pixel whose
// decoded index differs from the target or at the buffer edge.
//
// The result is a true bounding box only when the range's rendered
// footprint is rectangular from the seed outward, which holds for
// single-line single-style runs. Wrapped ranges can come back under- or
// over-sized; callers that need exact multi-line extents have no support
// here.
func (e *Engine) BoundsAround(key styled.Key, index int, seedX, seedY float64) (image.Rectangle, bool) {
	e.hold()
	defer e.release()

	if hit, ok := e.RangeAt(key, seedX, seedY); !ok || hit.Index != index {
		return image.Rectangle{}, false
	}
	left := e.scanExtent(key, index, seedX, seedY, -1, 0)
	right := e.scanExtent(key, index, seedX, seedY, 1, 0)
	up := e.scanExtent(key, index, seedX, seedY, 0, -1)
	down := e.scanExtent(key, index, seedX, seedY, 0, 1)

	x := int(seedX)
	y := int(seedY)
	return image.Rect(x-left, y-up, x+right+1, y+down+1), true
}

// scanExtent counts how many consecutive steps from the seed along one
// axis still decode to index. A seed on the edge with a decreasing scan
// counts zero; the out-of-bounds probe short-circuits inside RangeAt
// before any pixel is read.
func (e *Engine) scanExtent(key styled.Key, index int, x, y, dx, dy float64) int {
	n := 0
	for {
		x += dx
		y += dy
		hit, ok := e.RangeAt(key, x, y)
		if !ok || hit.Index != index {
			return n
		}
		n++
	}
}

// SeedFor sweeps the whole raster for any point decoding to index, for
// accessibility queries that arrive with no touch point. Rows advance by
// the view's line height scaled by its minimum scale factor (1px when no
// metric is available), columns by one pixel. The sweep runs under a
// single cache hold so every probe hits one stable raster.
//
// TODO: start the row sweep a row or two down when the first text line
// draws with partial alpha; y=0 can land on pixels that fail the decode
// predicate even inside a marked range.
func (e *Engine) SeedFor(key styled.Key, index int) (x, y float64, ok bool) {
	w, h := e.view.Bounds()
	stride := e.view.LineHeight() * e.view.MinScale()
	if stride < 1 {
		stride = 1
	}

	e.hold()
	defer e.release()

	for sy := 0.0; sy < float64(h); sy += stride {
		for sx := 0.0; sx < float64(w); sx++ {
			if hit, ok := e.RangeAt(key, sx, sy); ok && hit.Index == index {
				return sx, sy, true
			}
		}
	}
	return 0, 0, false
}

// RectFor finds index's rectangle with no prior point: exhaustive seed
// search, then the directional bounds scan, all against one held raster.
func (e *Engine) RectFor(key styled.Key, index int) (image.Rectangle, bool) {
	e.hold()
	defer e.release()

	x, y, ok := e.SeedFor(key, index)
	if !ok {
		return image.Rectangle{}, false
	}
	return e.BoundsAround(key, index, x, y)
}
