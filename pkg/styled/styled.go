package styled

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"unicode/utf16"
)

// Offsets and lengths throughout this package are UTF-16 code units, so
// ranges survive a round trip through hosts that count text the same way.

type Range struct {
	Start  int
	Length int
}

func (r Range) End() int { return r.Start + r.Length }

func (r Range) Contains(off int) bool {
	return off >= r.Start && off < r.End()
}

func (r Range) Intersects(o Range) bool {
	return r.Start < o.End() && o.Start < r.End()
}

type Key uint8

const (
	KeyLink Key = iota
	KeyForeground
	KeyBackground
	KeyHighlight
	// KeyMarked is the open extension point: any value attached under it
	// participates in range enumeration without the package knowing its type.
	KeyMarked
)

func (k Key) String() string {
	switch k {
	case KeyLink:
		return "link"
	case KeyForeground:
		return "foreground"
	case KeyBackground:
		return "background"
	case KeyHighlight:
		return "highlight"
	case KeyMarked:
		return "marked"
	default:
		return fmt.Sprintf("key(%d)", uint8(k))
	}
}

type Span struct {
	Key   Key
	Range Range
	Value any
}

type RangeValue struct {
	Range Range
	Value any
}

// Attrs is the effective styling over one segment. Nil color pointers and
// the empty link mean the attribute is absent there.
type Attrs struct {
	Foreground *color.NRGBA
	Background *color.NRGBA
	Highlight  *color.NRGBA
	Link       string
	Marked     any
}

type Segment struct {
	Range Range
	Attrs Attrs
}

type span struct {
	rng Range
	val any
}

// Text is an immutable styled string. All With/Without methods return a
// derived copy; the receiver is never modified.
type Text struct {
	str    string
	length int
	spans  map[Key][]span
}

var (
	ErrRangeOutOfBounds = errors.New("styled: range out of bounds")
	ErrOverlappingSpans = errors.New("styled: overlapping spans")
)

func New(s string) Text {
	return Text{str: s, length: u16Len(s)}
}

func NewWithSpans(s string, spans ...Span) (Text, error) {
	t := New(s)
	for i, sp := range spans {
		if !t.rangeInBounds(sp.Range) {
			return Text{}, fmt.Errorf("%w: span %d %+v over length %d", ErrRangeOutOfBounds, i, sp.Range, t.length)
		}
		for j := 0; j < i; j++ {
			if spans[j].Key == sp.Key && spans[j].Range.Intersects(sp.Range) {
				return Text{}, fmt.Errorf("%w: spans %d and %d under %s", ErrOverlappingSpans, j, i, sp.Key)
			}
		}
		t = t.WithValue(sp.Key, sp.Range, sp.Value)
	}
	return t, nil
}

func (t Text) String() string { return t.str }

// Len is the text length in UTF-16 code units.
func (t Text) Len() int { return t.length }

func (t Text) rangeInBounds(r Range) bool {
	return r.Start >= 0 && r.Length >= 0 && r.End() <= t.length
}

// WithValue attaches v over r, replacing whatever part of any existing span
// for key it overlaps. A malformed range is a programmer error.
func (t Text) WithValue(key Key, r Range, v any) Text {
	if !t.rangeInBounds(r) {
		panic(fmt.Sprintf("styled: range %+v out of bounds for length %d", r, t.length))
	}
	if v == nil {
		panic("styled: nil attribute value")
	}
	out := t.carve(key, r)
	if r.Length == 0 {
		return out
	}
	list := out.spans[key]
	at := sort.Search(len(list), func(i int) bool { return list[i].rng.Start >= r.Start })
	list = append(list, span{})
	copy(list[at+1:], list[at:])
	list[at] = span{rng: r, val: v}
	out.spans[key] = list
	return out
}

// WithoutValue clears key over r.
func (t Text) WithoutValue(key Key, r Range) Text {
	if !t.rangeInBounds(r) {
		panic(fmt.Sprintf("styled: range %+v out of bounds for length %d", r, t.length))
	}
	return t.carve(key, r)
}

// carve returns a copy of t with r cut out of key's span list, splitting
// spans that straddle either edge.
func (t Text) carve(key Key, r Range) Text {
	out := Text{str: t.str, length: t.length, spans: make(map[Key][]span, len(t.spans)+1)}
	for k, list := range t.spans {
		out.spans[k] = list
	}
	var kept []span
	for _, sp := range t.spans[key] {
		if !sp.rng.Intersects(r) || r.Length == 0 {
			kept = append(kept, sp)
			continue
		}
		if sp.rng.Start < r.Start {
			kept = append(kept, span{rng: Range{Start: sp.rng.Start, Length: r.Start - sp.rng.Start}, val: sp.val})
		}
		if sp.rng.End() > r.End() {
			kept = append(kept, span{rng: Range{Start: r.End(), Length: sp.rng.End() - r.End()}, val: sp.val})
		}
	}
	out.spans[key] = kept
	return out
}

// Value reports the attribute value for key at a single offset.
func (t Text) Value(key Key, off int) (any, bool) {
	for _, sp := range t.spans[key] {
		if sp.rng.Contains(off) {
			return sp.val, true
		}
		if sp.rng.Start > off {
			break
		}
	}
	return nil, false
}

// Ranges enumerates the maximal ranges carrying a value for key, in
// ascending start order. Adjacent spans with equal values stay separate;
// coalescing them is the longest-effective-range behavior this package
// does not implement.
func (t Text) Ranges(key Key) []RangeValue {
	list := t.spans[key]
	if len(list) == 0 {
		return nil
	}
	out := make([]RangeValue, len(list))
	for i, sp := range list {
		out[i] = RangeValue{Range: sp.rng, Value: sp.val}
	}
	return out
}

func (t Text) WithForeground(r Range, c color.NRGBA) Text {
	return t.WithValue(KeyForeground, r, c)
}

func (t Text) WithBackground(r Range, c color.NRGBA) Text {
	return t.WithValue(KeyBackground, r, c)
}

func (t Text) WithHighlight(r Range, c color.NRGBA) Text {
	return t.WithValue(KeyHighlight, r, c)
}

func (t Text) WithLink(r Range, url string) Text {
	return t.WithValue(KeyLink, r, url)
}

func (t Text) Foreground(off int) (color.NRGBA, bool) {
	return t.colorAt(KeyForeground, off)
}

func (t Text) Background(off int) (color.NRGBA, bool) {
	return t.colorAt(KeyBackground, off)
}

func (t Text) Highlight(off int) (color.NRGBA, bool) {
	return t.colorAt(KeyHighlight, off)
}

func (t Text) Link(off int) (string, bool) {
	v, ok := t.Value(KeyLink, off)
	if !ok {
		return "", false
	}
	url, ok := v.(string)
	return url, ok
}

func (t Text) colorAt(key Key, off int) (color.NRGBA, bool) {
	v, ok := t.Value(key, off)
	if !ok {
		return color.NRGBA{}, false
	}
	c, ok := v.(color.NRGBA)
	return c, ok
}

// Segments splits the full text at every attribute boundary and reports the
// effective attributes per piece. Pieces cover [0, Len) without gaps.
func (t Text) Segments() []Segment {
	if t.length == 0 {
		return nil
	}
	cuts := map[int]struct{}{0: {}, t.length: {}}
	for _, list := range t.spans {
		for _, sp := range list {
			cuts[sp.rng.Start] = struct{}{}
			cuts[sp.rng.End()] = struct{}{}
		}
	}
	edges := make([]int, 0, len(cuts))
	for off := range cuts {
		if off >= 0 && off <= t.length {
			edges = append(edges, off)
		}
	}
	sort.Ints(edges)

	segs := make([]Segment, 0, len(edges)-1)
	for i := 0; i+1 < len(edges); i++ {
		r := Range{Start: edges[i], Length: edges[i+1] - edges[i]}
		if r.Length == 0 {
			continue
		}
		var a Attrs
		if c, ok := t.Foreground(r.Start); ok {
			fg := c
			a.Foreground = &fg
		}
		if c, ok := t.Background(r.Start); ok {
			bg := c
			a.Background = &bg
		}
		if c, ok := t.Highlight(r.Start); ok {
			hl := c
			a.Highlight = &hl
		}
		if url, ok := t.Link(r.Start); ok {
			a.Link = url
		}
		if v, ok := t.Value(KeyMarked, r.Start); ok {
			a.Marked = v
		}
		segs = append(segs, Segment{Range: r, Attrs: a})
	}
	return segs
}

// ByteOffset converts a UTF-16 offset into a byte offset of the backing
// string. Offsets past the end clamp to len(String()); an offset landing
// inside a surrogate pair resolves to the pair's rune.
func (t Text) ByteOffset(u16 int) int {
	if u16 <= 0 {
		return 0
	}
	units := 0
	for b, r := range t.str {
		if units >= u16 {
			return b
		}
		units += utf16.RuneLen(r)
	}
	return len(t.str)
}

// U16Offset converts a byte offset into UTF-16 code units.
func (t Text) U16Offset(byteOff int) int {
	if byteOff <= 0 {
		return 0
	}
	units := 0
	for b, r := range t.str {
		if b >= byteOff {
			return units
		}
		units += utf16.RuneLen(r)
	}
	return t.length
}

// Slice returns the substring covered by r.
func (t Text) Slice(r Range) string {
	return t.str[t.ByteOffset(r.Start):t.ByteOffset(r.End())]
}

func u16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
