/*
Package grid partitions a pixel image into the fixed 128 by 128 tile
grid used by poster printers.

Image dimensions must be exact multiples of TileSize; the grid never
truncates. Tiles are enumerated in row-major order, which also fixes
the page order of a poster array.
*/
package grid

import (
	"errors"
	"fmt"
	"image"
)

// TileSize is the edge length of a tile in pixels. It is a hard
// invariant of the poster medium, not a tunable.
const TileSize = 128

// ErrInvalidDimensions is returned when an image's width or height is
// not a positive multiple of TileSize.
var ErrInvalidDimensions = errors.New("grid: dimensions must be positive multiples of 128")

// Coordinate identifies a tile's position within the grid.
type Coordinate struct {
	Column int
	Row    int
}

// Extent is the size of the grid measured in tiles, not pixels.
type Extent struct {
	Width  int
	Height int
}

// ExtentOf computes the grid extent for a pixel image of the given size.
func ExtentOf(imageWidth, imageHeight int) (Extent, error) {
	if imageWidth <= 0 || imageHeight <= 0 || imageWidth%TileSize != 0 || imageHeight%TileSize != 0 {
		return Extent{}, fmt.Errorf("%w (got %dx%d)", ErrInvalidDimensions, imageWidth, imageHeight)
	}
	return Extent{
		Width:  imageWidth / TileSize,
		Height: imageHeight / TileSize,
	}, nil
}

// Tiles returns the total number of tiles in the grid.
func (e Extent) Tiles() int {
	return e.Width * e.Height
}

// Index returns the linear page index of c: all tiles of row 0 left to
// right, then row 1, and so on.
func (e Extent) Index(c Coordinate) int {
	return c.Row*e.Width + c.Column
}

// Coordinates enumerates every tile of the grid in row-major order.
func (e Extent) Coordinates() []Coordinate {
	cs := make([]Coordinate, 0, e.Tiles())
	for row := 0; row < e.Height; row++ {
		for column := 0; column < e.Width; column++ {
			cs = append(cs, Coordinate{Column: column, Row: row})
		}
	}
	return cs
}

// PixelRegion returns the rectangle of pixels covered by the tile at c.
func (c Coordinate) PixelRegion() image.Rectangle {
	return image.Rect(
		c.Column*TileSize,
		c.Row*TileSize,
		(c.Column+1)*TileSize,
		(c.Row+1)*TileSize,
	)
}
