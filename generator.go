package img2poster

import (
	"encoding/json"
	"fmt"

	"github.com/Erb3-forked/img2poster/grid"
)

// infoURL is the static informational string embedded in generated
// tooltips.
const infoURL = "https://github.com/Erb3-forked/img2poster"

// A Generator produces the label or tooltip text for one page, given
// the page's tile coordinate and the grid's total extent. The converter
// calls it exactly once per tile; when converting with more than one
// worker, calls may happen concurrently, so implementations must be
// safe for concurrent use.
type Generator interface {
	Generate(tile grid.Coordinate, size grid.Extent) string
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(tile grid.Coordinate, size grid.Extent) string

func (f GeneratorFunc) Generate(tile grid.Coordinate, size grid.Extent) string {
	return f(tile, size)
}

// Static returns a Generator that yields s for every page.
func Static(s string) Generator {
	return GeneratorFunc(func(grid.Coordinate, grid.Extent) string {
		return s
	})
}

// CoordinateLabel returns the default label Generator. Labels read
// "name: (column,row)/(WxH)" with one-based coordinates.
func CoordinateLabel(name string) Generator {
	return GeneratorFunc(func(tile grid.Coordinate, size grid.Extent) string {
		return fmt.Sprintf("%s: (%d,%d)/(%dx%d)", name, tile.Column+1, tile.Row+1, size.Width, size.Height)
	})
}

// Tooltip is the structured payload the default tooltip Generator
// serializes onto every page. The converter itself treats tooltips as
// opaque strings.
type Tooltip struct {
	PrintID     string `json:"print_id"`
	PrintName   string `json:"print_name"`
	TotalWidth  int    `json:"total_width"`
	TotalHeight int    `json:"total_height"`
	PosX        int    `json:"pos_x"`
	PosY        int    `json:"pos_y"`
	Info        string `json:"info"`
}

// JSONTooltip returns the default tooltip Generator: a JSON encoding of
// the Tooltip payload identifying the print run and the page's place in
// the grid.
func JSONTooltip(printID, name string) Generator {
	return GeneratorFunc(func(tile grid.Coordinate, size grid.Extent) string {
		b, err := json.Marshal(Tooltip{
			PrintID:     printID,
			PrintName:   name,
			TotalWidth:  size.Width,
			TotalHeight: size.Height,
			PosX:        tile.Column,
			PosY:        tile.Row,
			Info:        infoURL,
		})
		if err != nil {
			// Tooltip has no unmarshalable fields.
			panic(err)
		}
		return string(b)
	})
}
