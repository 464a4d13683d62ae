package img2poster

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Erb3-forked/img2poster/grid"
)

func TestStatic(t *testing.T) {
	g := Static("fixed")
	assert.Equal(t, "fixed", g.Generate(grid.Coordinate{}, grid.Extent{Width: 1, Height: 1}))
	assert.Equal(t, "fixed", g.Generate(grid.Coordinate{Column: 4, Row: 2}, grid.Extent{Width: 5, Height: 3}))
}

func TestCoordinateLabel(t *testing.T) {
	g := CoordinateLabel("art")

	got := g.Generate(grid.Coordinate{Column: 0, Row: 2}, grid.Extent{Width: 2, Height: 3})
	assert.Equal(t, "art: (1,3)/(2x3)", got)
}

func TestJSONTooltip(t *testing.T) {
	g := JSONTooltip("000042", "art")

	raw := g.Generate(grid.Coordinate{Column: 1, Row: 2}, grid.Extent{Width: 2, Height: 3})

	var tip Tooltip
	require.NoError(t, json.Unmarshal([]byte(raw), &tip))

	assert.Equal(t, Tooltip{
		PrintID:     "000042",
		PrintName:   "art",
		TotalWidth:  2,
		TotalHeight: 3,
		PosX:        1,
		PosY:        2,
		Info:        infoURL,
	}, tip)
}
