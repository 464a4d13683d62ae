/*
Package poster implements the poster array model and its two persisted
encodings.

A Page is one fully quantized 128 by 128 tile: a row-major grid of
palette indices plus the palette, a label and a tooltip. An Array is the
ordered sequence of pages making up a multi-tile poster, together with
the grid extent in tiles and a title.

Two JSON layouts exist. The "2dja" layout encodes a whole Array. The
"2dj" layout encodes exactly one page with no grid or title metadata and
is only valid for 1x1 arrays.
*/
package poster

import "errors"

var (
	// ErrUnsupportedMultiPage is returned when a multi-page array is
	// written in the single-page 2dj layout.
	ErrUnsupportedMultiPage = errors.New("poster: 2dj does not support multi page arrays")

	// ErrMalformedData is returned when persisted data is structurally
	// invalid.
	ErrMalformedData = errors.New("poster: malformed poster data")
)

// Page is one tile's quantized result. Pages are produced once by the
// converter and never mutated afterwards.
type Page struct {
	Label   string `json:"label"`
	Tooltip string `json:"tooltip"`
	Palette []int  `json:"palette"`
	Pixels  []int  `json:"pixels"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// Array is a complete poster. Pages are stored in row-major tile order;
// Width and Height are measured in tiles. The page at linear index
// row*Width+column covers the tile at (column, row).
type Array struct {
	Pages  []Page `json:"pages"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}
