/*
Package palette implements the fixed set of colors a poster printer can
render and the nearest-color lookup used during quantization.

A poster page references colors by index into a 64 entry palette. The
default palette is a 4x4x4 RGB cube with channel levels 0, 85, 170 and
255, which covers the full 8-bit range evenly and keeps the index to
color mapping arithmetic.
*/
package palette

import (
	"errors"
	"image/color"
)

// Size is the number of colors a poster palette holds.
const Size = 64

const levels = 4

// ErrBadPalette is returned when a persisted palette does not have
// exactly Size entries or an entry is out of the 24-bit RGB range.
var ErrBadPalette = errors.New("palette: invalid palette")

// Palette is an ordered, immutable set of renderable colors. The zero
// value is empty and unusable; construct one with Default or FromInts.
type Palette []color.RGBA

// Default returns the built-in 64 color palette.
func Default() Palette {
	p := make(Palette, 0, Size)
	for r := 0; r < levels; r++ {
		for g := 0; g < levels; g++ {
			for b := 0; b < levels; b++ {
				p = append(p, color.RGBA{
					R: uint8(r * 255 / (levels - 1)),
					G: uint8(g * 255 / (levels - 1)),
					B: uint8(b * 255 / (levels - 1)),
					A: 0xff,
				})
			}
		}
	}
	return p
}

// Copied from color.sqDiff
func sqDiff(x, y uint32) uint32 {
	d := x - y
	return (d * d) >> 2
}

// Nearest returns the index of the palette entry closest to c by squared
// Euclidean distance in RGB space. The lookup is total and deterministic;
// ties resolve to the lowest index. Alpha is ignored.
func (p Palette) Nearest(c color.Color) int {
	cr, cg, cb, _ := c.RGBA()

	best := 0
	bestSum := uint32(1<<32 - 1)
	for i, e := range p {
		er, eg, eb, _ := e.RGBA()
		sum := sqDiff(cr, er) + sqDiff(cg, eg) + sqDiff(cb, eb)
		if sum < bestSum {
			best, bestSum = i, sum
		}
	}
	return best
}

// Color returns the palette entry at index i, or opaque black when i is
// out of range.
func (p Palette) Color(i int) color.RGBA {
	if i < 0 || i >= len(p) {
		return color.RGBA{A: 0xff}
	}
	return p[i]
}

// Colors returns the palette as a color slice for use with the standard
// image types and the dithering library.
func (p Palette) Colors() []color.Color {
	cs := make([]color.Color, len(p))
	for i, c := range p {
		cs[i] = c
	}
	return cs
}

// Ints packs the palette into 0xRRGGBB integers, the form stored in
// poster files.
func (p Palette) Ints() []int {
	out := make([]int, len(p))
	for i, c := range p {
		out[i] = int(c.R)<<16 | int(c.G)<<8 | int(c.B)
	}
	return out
}

// FromInts unpacks a persisted 0xRRGGBB palette.
func FromInts(ints []int) (Palette, error) {
	if len(ints) != Size {
		return nil, ErrBadPalette
	}
	p := make(Palette, len(ints))
	for i, v := range ints {
		if v < 0 || v > 0xffffff {
			return nil, ErrBadPalette
		}
		p[i] = color.RGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 0xff,
		}
	}
	return p, nil
}
