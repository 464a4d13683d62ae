package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/image/bmp"

	"github.com/Erb3-forked/img2poster"
	"github.com/Erb3-forked/img2poster/grid"
	"github.com/Erb3-forked/img2poster/poster"
)

const (
	defaultLabel     = "Erb3-forked/img2poster"
	maxLabelLen      = 23
	maxForcedLabel   = 48
	maxForcedTooltip = 256
)

type format int

const (
	formatImage format = iota
	formatPoster
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func extension(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "", fmt.Errorf("%q has no extension", path)
	}
	return ext, nil
}

func formatFor(ext string) (format, error) {
	switch ext {
	case "png", "jpg", "jpeg", "bmp":
		return formatImage, nil
	case "2dj", "2dja":
		return formatPoster, nil
	default:
		return 0, fmt.Errorf("unsupported format: %s", ext)
	}
}

func checkParent(path, what string) error {
	parent := filepath.Dir(path)
	info, err := os.Stat(parent)
	if err != nil {
		return fmt.Errorf("%s file parent directory doesn't exist", what)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s file parent is not a directory", what)
	}
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return m, nil
}

func saveImage(path, ext string, m image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext {
	case "png":
		return png.Encode(f, m)
	case "jpg", "jpeg":
		return jpeg.Encode(f, m, nil)
	case "bmp":
		return bmp.Encode(f, m)
	default:
		return fmt.Errorf("unsupported image format: %s", ext)
	}
}

func loadPoster(path, ext string) (*poster.Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if ext == "2dj" {
		return poster.DecodeSingle(f)
	}
	return poster.Decode(f)
}

func savePoster(path, ext string, a *poster.Array) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if ext == "2dj" {
		return poster.EncodeSingle(f, a)
	}
	return poster.Encode(f, a)
}

func convert(c *cli.Context, logger *log.Logger) (*poster.Array, error) {
	m, err := decodeImage(c.String("input"))
	if err != nil {
		return nil, err
	}

	width := m.Bounds().Dx()
	height := m.Bounds().Dy()

	var resizeNeeded bool
	resizeX, resizeY := width, height

	if c.IsSet("scale-x") {
		resizeX = c.Int("scale-x")
		resizeNeeded = true
	}
	if c.IsSet("scale-y") {
		resizeY = c.Int("scale-y")
		resizeNeeded = true
	}
	if c.IsSet("autoscale") {
		x, y := img2poster.Autoscale(width, height, c.Float64("autoscale"))
		if x != width || y != height {
			resizeX, resizeY = x, y
			resizeNeeded = true
		}
	}

	if resizeNeeded {
		if resizeX < 1 || resizeY < 1 {
			return nil, fmt.Errorf("can't resize to x:%d y:%d", resizeX, resizeY)
		}
		if resizeX%grid.TileSize != 0 || resizeY%grid.TileSize != 0 {
			return nil, fmt.Errorf("image resolutions have to be multiples of %d (attempted to resize to x:%d y:%d)", grid.TileSize, resizeX, resizeY)
		}

		filter, err := img2poster.ParseFilter(c.String("resize-algorithm"))
		if err != nil {
			return nil, err
		}

		logger.Printf("resizing image to x:%d y:%d (from x:%d y:%d)\n", resizeX, resizeY, width, height)
		m = img2poster.Resize(m, resizeX, resizeY, filter)
		width, height = resizeX, resizeY
	}

	if width%grid.TileSize != 0 || height%grid.TileSize != 0 {
		return nil, fmt.Errorf("image resolutions have to be multiples of %d (currently x:%d y:%d)", grid.TileSize, width, height)
	}

	label := defaultLabel
	var labelGen img2poster.Generator

	switch {
	case c.IsSet("forcelabel"):
		label = c.String("forcelabel")
		if len(label) > maxForcedLabel {
			return nil, fmt.Errorf("forced label can't be longer than %d characters, currently %d", maxForcedLabel, len(label))
		}
		labelGen = img2poster.Static(label)
	case c.IsSet("label"):
		label = c.String("label")
		if len(label) > maxLabelLen {
			return nil, fmt.Errorf("label can't be longer than %d characters, currently %d", maxLabelLen, len(label))
		}
		labelGen = img2poster.CoordinateLabel(label)
	default:
		labelGen = img2poster.CoordinateLabel(label)
	}

	printID := fmt.Sprintf("%06d", rand.New(rand.NewSource(time.Now().UnixNano())).Intn(1000000))

	var tooltipGen img2poster.Generator
	if c.IsSet("forcetooltip") {
		tooltip := c.String("forcetooltip")
		if len(tooltip) > maxForcedTooltip {
			return nil, fmt.Errorf("forced tooltip can't be longer than %d characters, currently %d", maxForcedTooltip, len(tooltip))
		}
		tooltipGen = img2poster.Static(tooltip)
	} else {
		tooltipGen = img2poster.JSONTooltip(printID, label)
	}

	conv := img2poster.New(img2poster.Config{
		Title:     label,
		PerPoster: c.Bool("per-poster-quantization"),
		Dither:    c.Bool("dither"),
		Workers:   c.Int("jobs"),
	}, logger)

	return conv.Convert(m, labelGen, tooltipGen)
}

func run(c *cli.Context) error {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	input := c.String("input")
	output := c.String("output")

	info, err := os.Stat(input)
	if err != nil {
		return cli.NewExitError("input file doesn't exist", 1)
	}
	if info.IsDir() {
		return cli.NewExitError("input can't be a directory", 1)
	}

	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return cli.NewExitError("output can't be a directory", 1)
	}
	if err := checkParent(output, "output"); err != nil {
		return cli.NewExitError(err, 1)
	}

	inputExt, err := extension(input)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	outputExt, err := extension(output)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	inputFormat, err := formatFor(inputExt)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("unsupported input format: %s", inputExt), 1)
	}
	outputFormat, err := formatFor(outputExt)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("unsupported output format: %s", outputExt), 1)
	}

	preview := c.String("preview")
	if preview != "" {
		if err := checkParent(preview, "preview"); err != nil {
			return cli.NewExitError(err, 1)
		}
		previewExt, err := extension(preview)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if f, err := formatFor(previewExt); err != nil || f != formatImage {
			return cli.NewExitError(fmt.Sprintf("unsupported preview format: %s", previewExt), 1)
		}
	}

	if inputFormat == formatPoster {
		for _, flag := range []string{"per-poster-quantization", "label", "forcelabel", "forcetooltip", "scale-x", "scale-y", "autoscale", "dither"} {
			if c.IsSet(flag) {
				return cli.NewExitError(fmt.Sprintf("%s arg only allowed with input format: image", flag), 1)
			}
		}
	}
	if c.IsSet("autoscale") && (c.IsSet("scale-x") || c.IsSet("scale-y")) {
		return cli.NewExitError("scale-x and scale-y args not allowed with autoscale", 1)
	}

	var array *poster.Array
	if inputFormat == formatImage {
		array, err = convert(c, logger)
	} else {
		array, err = loadPoster(input, inputExt)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if outputFormat == formatPoster {
		if err := savePoster(output, outputExt, array); err != nil {
			return cli.NewExitError(err, 1)
		}

		if preview != "" {
			logger.Println("generating preview")
			m, err := array.Image()
			if err != nil {
				return cli.NewExitError(err, 1)
			}
			previewExt, _ := extension(preview)
			if err := saveImage(preview, previewExt, m); err != nil {
				return cli.NewExitError(err, 1)
			}
		}

		return nil
	}

	m, err := array.Image()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := saveImage(output, outputExt, m); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "img2poster"
	app.Usage = "Convert images to tiled poster arrays and back"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "input file (png, jpg, jpeg, bmp, 2dj, 2dja)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "output file (png, jpg, jpeg, bmp, 2dj, 2dja)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "preview",
			Aliases: []string{"p"},
			Usage:   "also write a reconstructed preview image",
		},
		&cli.IntFlag{
			Name:    "scale-x",
			Aliases: []string{"x"},
			Usage:   "resize the input to this width before converting",
		},
		&cli.IntFlag{
			Name:    "scale-y",
			Aliases: []string{"y"},
			Usage:   "resize the input to this height before converting",
		},
		&cli.StringFlag{
			Name:    "resize-algorithm",
			Aliases: []string{"r"},
			Value:   img2poster.DefaultFilter,
			Usage:   "resampling filter: nearest, bilinear, bicubic, mitchell-netravali, lanczos2, lanczos3",
		},
		&cli.Float64Flag{
			Name:    "autoscale",
			Aliases: []string{"a"},
			Usage:   "scale the input by this factor and round to the tile grid",
		},
		&cli.StringFlag{
			Name:    "label",
			Aliases: []string{"l"},
			Usage:   "label prefix, suffixed with each page's grid position",
		},
		&cli.StringFlag{
			Name:    "forcelabel",
			Aliases: []string{"L"},
			Usage:   "verbatim label for every page",
		},
		&cli.StringFlag{
			Name:    "forcetooltip",
			Aliases: []string{"T"},
			Usage:   "verbatim tooltip for every page",
		},
		&cli.BoolFlag{
			Name:    "per-poster-quantization",
			Aliases: []string{"Q"},
			Usage:   "quantize every page in isolation instead of in one whole-image pass",
		},
		&cli.BoolFlag{
			Name:    "dither",
			Aliases: []string{"d"},
			Usage:   "apply Floyd-Steinberg dithering",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   1,
			Usage:   "number of parallel quantization workers",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
