package poster

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Erb3-forked/img2poster/grid"
	"github.com/Erb3-forked/img2poster/palette"
)

func validPage(p *Page) error {
	if p.Width != grid.TileSize || p.Height != grid.TileSize {
		return fmt.Errorf("%w: page is %dx%d, want %dx%d", ErrMalformedData, p.Width, p.Height, grid.TileSize, grid.TileSize)
	}
	if len(p.Pixels) != grid.TileSize*grid.TileSize {
		return fmt.Errorf("%w: page has %d pixels, want %d", ErrMalformedData, len(p.Pixels), grid.TileSize*grid.TileSize)
	}
	if len(p.Palette) != palette.Size {
		return fmt.Errorf("%w: page has %d palette entries, want %d", ErrMalformedData, len(p.Palette), palette.Size)
	}
	for _, i := range p.Pixels {
		if i < 0 || i >= len(p.Palette) {
			return fmt.Errorf("%w: pixel index %d out of range", ErrMalformedData, i)
		}
	}
	return nil
}

func validArray(a *Array) error {
	if a.Width < 1 || a.Height < 1 {
		return fmt.Errorf("%w: grid extent %dx%d", ErrMalformedData, a.Width, a.Height)
	}

	// An empty page list is a poster still being assembled; anything
	// else must match the grid extent exactly.
	if len(a.Pages) != 0 && len(a.Pages) != a.Width*a.Height {
		return fmt.Errorf("%w: %d pages for a %dx%d grid", ErrMalformedData, len(a.Pages), a.Width, a.Height)
	}

	for i := range a.Pages {
		if err := validPage(&a.Pages[i]); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a 2dja layout poster array from r.
func Decode(r io.Reader) (*Array, error) {
	a := new(Array)
	if err := json.NewDecoder(r).Decode(a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	if err := validArray(a); err != nil {
		return nil, err
	}
	return a, nil
}

// DecodeSingle reads a 2dj layout page from r and wraps it in a 1x1
// array with an untitled title.
func DecodeSingle(r io.Reader) (*Array, error) {
	var p Page
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	if err := validPage(&p); err != nil {
		return nil, err
	}
	return &Array{
		Pages:  []Page{p},
		Width:  1,
		Height: 1,
		Title:  "untitled",
	}, nil
}
