package img2poster

import (
	"fmt"
	"image"

	"github.com/KononK/resize"

	"github.com/Erb3-forked/img2poster/grid"
)

// DefaultFilter is the resampling filter used when none is named.
const DefaultFilter = "bicubic"

var filters = map[string]resize.InterpolationFunction{
	"nearest":            resize.NearestNeighbor,
	"bilinear":           resize.Bilinear,
	"bicubic":            resize.Bicubic,
	"mitchell-netravali": resize.MitchellNetravali,
	"lanczos2":           resize.Lanczos2,
	"lanczos3":           resize.Lanczos3,
}

// ParseFilter maps a filter name to its resampling function.
func ParseFilter(name string) (resize.InterpolationFunction, error) {
	f, ok := filters[name]
	if !ok {
		return 0, fmt.Errorf("img2poster: unknown resize filter %q", name)
	}
	return f, nil
}

// Resize scales m to exactly width by height pixels, ignoring aspect
// ratio, using the given resampling filter.
func Resize(m image.Image, width, height int, filter resize.InterpolationFunction) image.Image {
	return resize.Resize(uint(width), uint(height), m, filter)
}

func snapToTile(n int) int {
	if r := n % grid.TileSize; r >= grid.TileSize/2 {
		n += grid.TileSize - r
	} else {
		n -= r
	}
	if n == 0 {
		n = grid.TileSize
	}
	return n
}

// Autoscale multiplies the dimensions by scale and rounds each to the
// nearest multiple of the tile size, never below one tile. Aspect ratio
// is not preserved across the rounding.
func Autoscale(width, height int, scale float64) (int, int) {
	return snapToTile(int(float64(width) * scale)), snapToTile(int(float64(height) * scale))
}
