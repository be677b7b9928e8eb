package linktap

import (
	"image"
	"image/color"
	"math"
)

// BackgroundSentinel is the reserved channel value meaning "no marked range
// here". Index colors therefore stop at 254.
const BackgroundSentinel = 255

// Raster is an offscreen premultiplied-RGBA pixel buffer, 4 bytes per
// pixel, row-major with row 0 at the view's top edge.
type Raster struct {
	W      int
	H      int
	Stride int
	Pix    []uint8
}

// NewRaster returns a zeroed buffer, or nil when either dimension rounds
// to no pixels. A nil raster is the render-failure value: every decode
// against it misses.
func NewRaster(w, h int) *Raster {
	if w <= 0 || h <= 0 {
		return nil
	}
	return &Raster{W: w, H: h, Stride: w * 4, Pix: make([]uint8, w*h*4)}
}

func (ra *Raster) Clear(c color.RGBA) {
	for i := 0; i < len(ra.Pix); i += 4 {
		ra.Pix[i+0] = c.R
		ra.Pix[i+1] = c.G
		ra.Pix[i+2] = c.B
		ra.Pix[i+3] = c.A
	}
}

func (ra *Raster) FillRect(x, y, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > ra.W {
		w = ra.W - x
	}
	if y+h > ra.H {
		h = ra.H - y
	}
	if w <= 0 || h <= 0 {
		return
	}
	for row := 0; row < h; row++ {
		off := (y+row)*ra.Stride + x*4
		for col := 0; col < w; col++ {
			idx := off + col*4
			ra.Pix[idx+0] = c.R
			ra.Pix[idx+1] = c.G
			ra.Pix[idx+2] = c.B
			ra.Pix[idx+3] = c.A
		}
	}
}

// RGBA wraps the buffer as an image.RGBA sharing the same pixels, so glyph
// drawers can write straight into it.
func (ra *Raster) RGBA() *image.RGBA {
	return &image.RGBA{Pix: ra.Pix, Stride: ra.Stride, Rect: image.Rect(0, 0, ra.W, ra.H)}
}

// At reads one pixel. ok is false outside the buffer.
func (ra *Raster) At(x, y int) (r, g, b, a uint8, ok bool) {
	if ra == nil || x < 0 || y < 0 || x >= ra.W || y >= ra.H {
		return 0, 0, 0, 0, false
	}
	off := y*ra.Stride + x*4
	return ra.Pix[off], ra.Pix[off+1], ra.Pix[off+2], ra.Pix[off+3], true
}

// IndexAt decodes the lookup-table index encoded at a point, if any. A
// pixel encodes an index when it is pure gray, not the background
// sentinel, not fully transparent, and below tableLen (stale caches would
// otherwise read past a shrunk table).
func (ra *Raster) IndexAt(x, y float64, tableLen int) (int, bool) {
	px := int(math.Floor(x))
	py := int(math.Floor(y))
	r, g, b, a, ok := ra.At(px, py)
	if !ok {
		return 0, false
	}
	if r != g || g != b {
		return 0, false
	}
	if r == BackgroundSentinel || a == 0 {
		return 0, false
	}
	if int(r) >= tableLen {
		return 0, false
	}
	return int(r), true
}
