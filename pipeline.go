package img2poster

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/Erb3-forked/img2poster/grid"
	"github.com/Erb3-forked/img2poster/poster"
)

// ErrQuantizationFailure is returned when a tile fails to quantize. The
// failure is fatal to the whole conversion; no partial array is ever
// returned.
var ErrQuantizationFailure = errors.New("img2poster: tile quantization failed")

func (c *Converter) tileSource(ctx context.Context, extent grid.Extent) (<-chan grid.Coordinate, <-chan error) {
	out := make(chan grid.Coordinate)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, tile := range extent.Coordinates() {
			select {
			case out <- tile:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

// tileWorker consumes tile coordinates and writes each finished page
// into its own slot of pages. Slots are addressed by the tile's linear
// index so completion order never leaks into page order.
func (c *Converter) tileWorker(src *image.RGBA, plane *image.Paletted, extent grid.Extent, label, tooltip Generator, pages []poster.Page, in <-chan grid.Coordinate) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for tile := range in {
			page, err := c.convertTile(src, plane, extent, tile, label, tooltip)
			if err != nil {
				errc <- err
				return
			}
			pages[extent.Index(tile)] = page
		}
	}()
	return errc
}

func (c *Converter) convertTile(src *image.RGBA, plane *image.Paletted, extent grid.Extent, tile grid.Coordinate, label, tooltip Generator) (page poster.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: tile (%d,%d): %v", ErrQuantizationFailure, tile.Column, tile.Row, r)
		}
	}()

	pixels := c.quantizeTile(src, plane, tile.PixelRegion())

	return poster.Page{
		Label:   label.Generate(tile, extent),
		Tooltip: tooltip.Generate(tile, extent),
		Palette: c.cfg.Palette.Ints(),
		Pixels:  pixels,
		Width:   grid.TileSize,
		Height:  grid.TileSize,
	}, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Convert quantizes m into a poster array. The label and tooltip
// generators are each invoked exactly once per tile with the tile's
// coordinate and the grid's extent. The image's width and height must
// be positive multiples of grid.TileSize.
func (c *Converter) Convert(m image.Image, label, tooltip Generator) (*poster.Array, error) {
	b := m.Bounds()
	extent, err := grid.ExtentOf(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	src := toRGBA(m)

	// A whole-image dither pass correlates quantization decisions
	// across tile boundaries, so it has to run before slicing.
	var plane *image.Paletted
	if c.cfg.Dither && !c.cfg.PerPoster {
		plane = newDitherer(c.cfg.Palette).DitherPaletted(src)
	}

	c.logger.Printf("converting %dx%d image to %dx%d poster grid with %d worker(s)\n", b.Dx(), b.Dy(), extent.Width, extent.Height, c.cfg.Workers)

	pages := make([]poster.Page, extent.Tiles())

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	tiles, errc := c.tileSource(ctx, extent)
	errcList = append(errcList, errc)

	for i := 0; i < c.cfg.Workers; i++ {
		errcList = append(errcList, c.tileWorker(src, plane, extent, label, tooltip, pages, tiles))
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	return &poster.Array{
		Pages:  pages,
		Width:  extent.Width,
		Height: extent.Height,
		Title:  c.cfg.Title,
	}, nil
}
