// Package textview is a reference linktap.HostView: a single text label
// that lays styled content out into lines and renders it to an offscreen
// raster with CPU font drawing. Lines break on '\n' only; overlong lines
// clip at the right edge.
package textview

import (
	"image/color"

	"linktap/pkg/linktap"
	"linktap/pkg/styled"
)

const (
	defaultFontSize = 14
	padX            = 4
	lineLeading     = 4
)

type View struct {
	content   styled.Text
	w, h      int
	minScale  float64
	fontSize  int
	textColor color.NRGBA
	backColor color.NRGBA

	fonts     *fontBank
	observers []linktap.ViewObserver
}

func New(w, h int) *View {
	return &View{
		w:         w,
		h:         h,
		minScale:  1,
		fontSize:  defaultFontSize,
		textColor: color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF},
		backColor: color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		fonts:     newFontBank(),
	}
}

func (v *View) Content() styled.Text { return v.content }

func (v *View) SetContent(t styled.Text) {
	v.content = t
	for _, o := range v.observers {
		o.ContentChanged()
	}
}

func (v *View) Bounds() (int, int) { return v.w, v.h }

func (v *View) SetBounds(w, h int) {
	v.w = w
	v.h = h
	for _, o := range v.observers {
		o.BoundsChanged()
	}
}

func (v *View) MinScale() float64 { return v.minScale }

func (v *View) SetMinScale(s float64) { v.minScale = s }

func (v *View) SetFontSize(pt int) { v.fontSize = pt }

func (v *View) TextColor() color.NRGBA { return v.textColor }

// LineHeight is the row advance of the layout in pixels: ascent + descent
// + leading of the view's face. The first line's box starts at y=0, so
// row sweeps at this stride land on every line's top row.
func (v *View) LineHeight() float64 {
	m := v.fonts.face(v.fontSize).Metrics()
	return float64(m.Ascent.Round() + m.Descent.Round() + lineLeading)
}

func (v *View) AddObserver(o linktap.ViewObserver) {
	v.observers = append(v.observers, o)
}

func (v *View) RemoveObserver(o linktap.ViewObserver) {
	for i, cur := range v.observers {
		if cur == o {
			v.observers = append(v.observers[:i], v.observers[i+1:]...)
			return
		}
	}
}
