package textview

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"linktap/pkg/linktap"
	"linktap/pkg/styled"
)

type lineSegment struct {
	text  string
	attrs styled.Attrs
	width int
}

type lineLayout struct {
	segments []lineSegment
	y        int
	height   int
	baseline int
}

// RenderContent rasterizes the current content at the view's exact pixel
// bounds. Returns nil when the bounds give no drawable area.
func (v *View) RenderContent() *linktap.Raster {
	ra := linktap.NewRaster(v.w, v.h)
	if ra == nil {
		return nil
	}
	ra.Clear(premul(v.backColor))

	face := v.fonts.face(v.fontSize)
	rgba := ra.RGBA()
	for _, ll := range v.layoutLines(face) {
		x := padX
		for _, seg := range ll.segments {
			if seg.attrs.Background != nil && seg.width > 0 {
				ra.FillRect(x, ll.y, seg.width, ll.height, premul(*seg.attrs.Background))
			}
			if seg.text != "" {
				fg := v.textColor
				if seg.attrs.Foreground != nil {
					fg = *seg.attrs.Foreground
				}
				d := font.Drawer{
					Dst:  rgba,
					Src:  image.NewUniform(fg),
					Face: face,
					Dot:  fixed.P(x, ll.baseline),
				}
				d.DrawString(seg.text)
			}
			x += seg.width
		}
	}
	return ra
}

// layoutLines splits the content on newlines and intersects each line with
// the attribute segments, measuring advances per piece.
func (v *View) layoutLines(face font.Face) []lineLayout {
	m := face.Metrics()
	ascent := m.Ascent.Round()
	height := ascent + m.Descent.Round() + lineLeading

	segs := v.content.Segments()
	str := v.content.String()

	var lines []lineLayout
	y := 0
	lineStart := 0
	for lineStart <= len(str) {
		lineEnd := len(str)
		hasNL := false
		if rel := strings.IndexByte(str[lineStart:], '\n'); rel >= 0 {
			lineEnd = lineStart + rel
			hasNL = true
		}

		var pieces []lineSegment
		for _, seg := range segs {
			sb := v.content.ByteOffset(seg.Range.Start)
			se := v.content.ByteOffset(seg.Range.End())
			if se <= lineStart || sb >= lineEnd {
				continue
			}
			pb := max(sb, lineStart)
			pe := min(se, lineEnd)
			if pe <= pb {
				continue
			}
			text := str[pb:pe]
			pieces = append(pieces, lineSegment{
				text:  text,
				attrs: seg.Attrs,
				width: measureString(face, text),
			})
		}
		lines = append(lines, lineLayout{
			segments: pieces,
			y:        y,
			height:   height,
			baseline: y + ascent,
		})
		y += height

		if !hasNL {
			break
		}
		lineStart = lineEnd + 1
	}
	return lines
}

func premul(c color.NRGBA) color.RGBA {
	if c.A == 0xFF {
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
	}
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 0xFF),
		G: uint8(uint32(c.G) * a / 0xFF),
		B: uint8(uint32(c.B) * a / 0xFF),
		A: c.A,
	}
}
