package poster

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Erb3-forked/img2poster/grid"
	"github.com/Erb3-forked/img2poster/palette"
)

func testPage(t *testing.T, label string, index int) Page {
	t.Helper()

	pixels := make([]int, grid.TileSize*grid.TileSize)
	for i := range pixels {
		pixels[i] = (i + index) % palette.Size
	}

	return Page{
		Label:   label,
		Tooltip: `{"print_id":"000042"}`,
		Palette: palette.Default().Ints(),
		Pixels:  pixels,
		Width:   grid.TileSize,
		Height:  grid.TileSize,
	}
}

func testArray(t *testing.T, width, height int) *Array {
	t.Helper()

	pages := make([]Page, 0, width*height)
	for i := 0; i < width*height; i++ {
		pages = append(pages, testPage(t, "page", i))
	}

	return &Array{
		Pages:  pages,
		Width:  width,
		Height: height,
		Title:  "test poster",
	}
}

func TestRoundTrip(t *testing.T) {
	for _, a := range []*Array{
		{Pages: []Page{}, Width: 1, Height: 1, Title: "empty"},
		testArray(t, 1, 1),
		testArray(t, 2, 3),
	} {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, a))

		got, err := Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
}

func TestSingleRoundTrip(t *testing.T) {
	a := testArray(t, 1, 1)
	a.Title = "untitled"

	var buf bytes.Buffer
	require.NoError(t, EncodeSingle(&buf, a))

	got, err := DecodeSingle(&buf)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestEncodeSingleRejectsMultiPage(t *testing.T) {
	var buf bytes.Buffer

	err := EncodeSingle(&buf, testArray(t, 2, 1))
	assert.True(t, errors.Is(err, ErrUnsupportedMultiPage))
	assert.Zero(t, buf.Len())
}

func TestEncodeSingleRejectsEmpty(t *testing.T) {
	var buf bytes.Buffer

	err := EncodeSingle(&buf, &Array{Width: 1, Height: 1})
	assert.Error(t, err)
}

func TestDecodeMalformed(t *testing.T) {
	short := testArray(t, 1, 1)
	short.Pages[0].Pixels = short.Pages[0].Pixels[:100]

	badIndex := testArray(t, 1, 1)
	badIndex.Pages[0].Pixels[0] = palette.Size

	badPalette := testArray(t, 1, 1)
	badPalette.Pages[0].Palette = badPalette.Pages[0].Palette[:10]

	wrongCount := testArray(t, 2, 2)
	wrongCount.Pages = wrongCount.Pages[:3]

	badExtent := testArray(t, 1, 1)
	badExtent.Width = 0

	for name, a := range map[string]*Array{
		"short pixel grid":   short,
		"index out of range": badIndex,
		"truncated palette":  badPalette,
		"wrong page count":   wrongCount,
		"bad extent":         badExtent,
	} {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, a))

		_, err := Decode(&buf)
		assert.True(t, errors.Is(err, ErrMalformedData), name)
	}

	_, err := Decode(strings.NewReader("{not json"))
	assert.True(t, errors.Is(err, ErrMalformedData))

	_, err = DecodeSingle(strings.NewReader("[]"))
	assert.True(t, errors.Is(err, ErrMalformedData))
}

func TestImage(t *testing.T) {
	a := testArray(t, 2, 3)

	m, err := a.Image()
	require.NoError(t, err)

	assert.Equal(t, 2*grid.TileSize, m.Bounds().Dx())
	assert.Equal(t, 3*grid.TileSize, m.Bounds().Dy())

	// Every reconstructed pixel is the page's palette entry for its
	// stored index.
	pal := palette.Default()
	extent := grid.Extent{Width: 2, Height: 3}
	for i, c := range extent.Coordinates() {
		r := c.PixelRegion()
		page := a.Pages[i]
		for _, probe := range []struct{ x, y int }{{0, 0}, {127, 0}, {63, 64}, {127, 127}} {
			want := pal.Color(page.Pixels[probe.y*grid.TileSize+probe.x])
			got := color.RGBAModel.Convert(m.At(r.Min.X+probe.x, r.Min.Y+probe.y))
			assert.Equal(t, want, got)
		}
	}
}

func TestImageRequiresCompleteArray(t *testing.T) {
	a := testArray(t, 2, 2)
	a.Pages = a.Pages[:0]

	_, err := a.Image()
	assert.True(t, errors.Is(err, ErrMalformedData))
}
