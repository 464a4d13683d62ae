package img2poster

import (
	"image"
	"image/draw"

	"github.com/makeworld-the-better-one/dither/v2"

	"github.com/Erb3-forked/img2poster/grid"
	"github.com/Erb3-forked/img2poster/palette"
)

func toRGBA(m image.Image) *image.RGBA {
	if rgba, ok := m.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := m.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), m, b.Min, draw.Src)
	return rgba
}

func newDitherer(pal palette.Palette) *dither.Ditherer {
	d := dither.NewDitherer(pal.Colors())
	d.Matrix = dither.FloydSteinberg
	return d
}

// quantizeTile maps every pixel of the tile region to a palette index.
// plane is the pre-dithered whole-image index plane, or nil when each
// tile quantizes on its own.
func (c *Converter) quantizeTile(src *image.RGBA, plane *image.Paletted, region image.Rectangle) []int {
	pixels := make([]int, grid.TileSize*grid.TileSize)

	switch {
	case plane != nil:
		for y := 0; y < grid.TileSize; y++ {
			for x := 0; x < grid.TileSize; x++ {
				pixels[y*grid.TileSize+x] = int(plane.ColorIndexAt(region.Min.X+x, region.Min.Y+y))
			}
		}
	case c.cfg.Dither:
		// Per-poster dithering: error diffusion sees only this tile.
		// The ditherer indexes its diffusion rows by absolute x, so it
		// must be fed a zero-origin copy, not a subimage.
		tile := image.NewRGBA(image.Rect(0, 0, grid.TileSize, grid.TileSize))
		draw.Draw(tile, tile.Bounds(), src, region.Min, draw.Src)
		tp := newDitherer(c.cfg.Palette).DitherPaletted(tile)
		for y := 0; y < grid.TileSize; y++ {
			for x := 0; x < grid.TileSize; x++ {
				pixels[y*grid.TileSize+x] = int(tp.ColorIndexAt(x, y))
			}
		}
	default:
		for y := 0; y < grid.TileSize; y++ {
			for x := 0; x < grid.TileSize; x++ {
				pixels[y*grid.TileSize+x] = c.cfg.Palette.Nearest(src.RGBAAt(region.Min.X+x, region.Min.Y+y))
			}
		}
	}

	return pixels
}
