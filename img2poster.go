/*
Package img2poster converts raster images into tiled, palette-quantized
poster arrays and back again.

An image whose dimensions are exact multiples of the 128 pixel tile size
is split into a grid of tiles. Every pixel of every tile is mapped to
the nearest color of a fixed palette, producing one poster page per
tile. Pages are assembled in row-major tile order into a poster array
which can be persisted as JSON or reconstructed back into a pixel image.
*/
package img2poster

import (
	"io"
	"log"

	"github.com/Erb3-forked/img2poster/palette"
)

// Config controls a conversion.
type Config struct {
	// Title is the free-text title stored on the poster array.
	Title string

	// Palette is the set of renderable colors. Defaults to
	// palette.Default.
	Palette palette.Palette

	// PerPoster quantizes every tile in isolation. Tiles may show
	// visible seams where their quantization decisions diverge. The
	// default is a single pass over the whole image which cannot
	// introduce discontinuities at tile boundaries.
	PerPoster bool

	// Dither applies deterministic Floyd-Steinberg dithering before
	// indices are assigned. Without it every pixel maps to its plain
	// nearest palette color.
	Dither bool

	// Workers is the number of tiles quantized concurrently. Values
	// below 1 run sequentially.
	Workers int
}

// Converter converts images into poster arrays.
type Converter struct {
	cfg    Config
	logger *log.Logger
}

// New returns a Converter for the given configuration.
func New(cfg Config, logger *log.Logger) *Converter {
	if cfg.Palette == nil {
		cfg.Palette = palette.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Title == "" {
		cfg.Title = "untitled"
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Converter{
		cfg:    cfg,
		logger: logger,
	}
}
