package poster

import (
	"fmt"
	"image"

	"github.com/Erb3-forked/img2poster/grid"
	"github.com/Erb3-forked/img2poster/palette"
)

// Image reconstructs the full pixel image of a. Each page's palette
// index grid is painted through its own stored palette into the pixel
// region of its tile, so reconstruction works regardless of which
// quantization mode produced the array.
func (a *Array) Image() (image.Image, error) {
	if err := validArray(a); err != nil {
		return nil, err
	}
	if len(a.Pages) != a.Width*a.Height {
		return nil, fmt.Errorf("%w: %d pages for a %dx%d grid", ErrMalformedData, len(a.Pages), a.Width, a.Height)
	}

	extent := grid.Extent{Width: a.Width, Height: a.Height}
	m := image.NewRGBA(image.Rect(0, 0, a.Width*grid.TileSize, a.Height*grid.TileSize))

	for i, c := range extent.Coordinates() {
		page := &a.Pages[i]

		pal, err := palette.FromInts(page.Palette)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrMalformedData, i, err)
		}

		r := c.PixelRegion()
		for y := 0; y < grid.TileSize; y++ {
			for x := 0; x < grid.TileSize; x++ {
				m.SetRGBA(r.Min.X+x, r.Min.Y+y, pal.Color(page.Pixels[y*grid.TileSize+x]))
			}
		}
	}

	return m, nil
}
