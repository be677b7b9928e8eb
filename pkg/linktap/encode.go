package linktap

import (
	"image/color"

	"linktap/pkg/styled"
)

// MaxRanges is how many distinct ranges one rendering pass can encode.
// Index colors are single channel bytes and 255 is the background
// sentinel, so 254 is the last usable index.
const MaxRanges = 255

// Table maps a decoded index to the character range it was painted for,
// in discovery order: ascending start offset within one enumeration pass.
type Table []styled.Range

// EncodeIndexColors derives a copy of t where every character is flattened
// to the white background sentinel and each of the first MaxRanges ranges
// under key is painted, foreground and background both, with the gray
// whose byte value is its table index. Ranges past MaxRanges stay white
// and decode as misses.
func EncodeIndexColors(t styled.Text, key styled.Key) (styled.Text, Table) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	all := styled.Range{Start: 0, Length: t.Len()}
	enc := t.WithForeground(all, white).WithBackground(all, white)

	ranges := t.Ranges(key)
	table := make(Table, 0, min(len(ranges), MaxRanges))
	for _, rv := range ranges {
		if len(table) >= MaxRanges {
			break
		}
		v := uint8(len(table))
		gray := color.NRGBA{R: v, G: v, B: v, A: 255}
		enc = enc.WithForeground(rv.Range, gray).WithBackground(rv.Range, gray)
		table = append(table, rv.Range)
	}
	return enc, table
}
