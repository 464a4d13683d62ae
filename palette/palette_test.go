package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSize(t *testing.T) {
	assert.Len(t, Default(), Size)
}

func TestNearestExactMatch(t *testing.T) {
	p := Default()
	for i, c := range p {
		assert.Equal(t, i, p.Nearest(c))
	}
}

func TestNearestDeterministic(t *testing.T) {
	p := Default()
	c := color.RGBA{R: 13, G: 201, B: 94, A: 0xff}

	first := p.Nearest(c)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, p.Nearest(c))
	}
}

func TestNearestTotal(t *testing.T) {
	p := Default()
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				i := p.Nearest(color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff})
				assert.True(t, i >= 0 && i < len(p))
			}
		}
	}
}

func TestNearestTieLowestIndex(t *testing.T) {
	p := Palette{
		color.RGBA{R: 0x80, A: 0xff},
		color.RGBA{R: 0x80, A: 0xff},
	}
	assert.Equal(t, 0, p.Nearest(color.RGBA{R: 0x80, A: 0xff}))
}

func TestNearestAcceptsAnyColorModel(t *testing.T) {
	p := Default()
	rgba := p.Nearest(color.RGBA{R: 170, G: 85, B: 0, A: 0xff})
	rgba64 := p.Nearest(color.RGBA64{R: 170 << 8, G: 85 << 8, B: 0, A: 0xffff})
	assert.Equal(t, rgba, rgba64)
}

func TestColorOutOfRange(t *testing.T) {
	p := Default()
	assert.Equal(t, color.RGBA{A: 0xff}, p.Color(-1))
	assert.Equal(t, color.RGBA{A: 0xff}, p.Color(len(p)))
}

func TestIntsRoundTrip(t *testing.T) {
	p := Default()

	q, err := FromInts(p.Ints())
	require.NoError(t, err)
	assert.Equal(t, p, q)
}

func TestFromIntsRejectsBadInput(t *testing.T) {
	_, err := FromInts(make([]int, Size-1))
	assert.Equal(t, ErrBadPalette, err)

	bad := make([]int, Size)
	bad[3] = 0x1000000
	_, err = FromInts(bad)
	assert.Equal(t, ErrBadPalette, err)

	bad[3] = -1
	_, err = FromInts(bad)
	assert.Equal(t, ErrBadPalette, err)
}
