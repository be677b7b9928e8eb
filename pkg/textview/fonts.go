package textview

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type fontKey struct {
	size int
}

type fontBank struct {
	base  *opentype.Font
	cache map[fontKey]font.Face
}

func newFontBank() *fontBank {
	bank := &fontBank{cache: map[fontKey]font.Face{}}
	base, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return bank
	}
	bank.base = base
	return bank
}

// face returns a cached face for the given point size, falling back to the
// bitmap face when the embedded font fails to parse.
func (b *fontBank) face(size int) font.Face {
	if size <= 0 {
		size = 14
	}
	key := fontKey{size: size}
	if f, ok := b.cache[key]; ok {
		return f
	}
	if b.base == nil {
		return basicfont.Face7x13
	}
	opts := &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull}
	face, err := opentype.NewFace(b.base, opts)
	if err != nil {
		return basicfont.Face7x13
	}
	b.cache[key] = face
	return face
}

func measureString(face font.Face, s string) int {
	if face == nil || s == "" {
		return 0
	}
	adv := font.MeasureString(face, s)
	px := (int(adv) + 32) >> 6
	if px < 0 {
		px = 0
	}
	return px
}
