package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/trace/film"
	"seehuhn.de/go/trace/internal/testpattern"
	"seehuhn.de/go/trace/rfilter"
)

func main() {
	filmType := flag.String("film", "rgb",
		"film type ("+strings.Join(film.Known(), ", ")+")")
	width := flag.Int("width", 512, "image width in pixels")
	height := flag.Int("height", 512, "image height in pixels")
	spp := flag.Int("spp", 16, "samples per pixel")
	filterName := flag.String("filter", "gaussian",
		"reconstruction filter (box, tent, gaussian, mitchell)")
	tiffFile := flag.String("tiff", "", "also write a TIFF file to this path")
	xmpFile := flag.String("xmp", "", "write an XMP metadata sidecar to this path")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Printf("Usage: %s [options] output.png\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	outputFile := flag.Arg(0)

	filter, err := filterByName(*filterName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	f, err := film.New(*filmType, film.Options{
		Width:  *width,
		Height: *height,
		Filter: filter,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating film: %v\n", err)
		os.Exit(1)
	}

	render(f, *spp)

	img, err := f.Develop(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error developing film: %v\n", err)
		os.Exit(1)
	}

	if err := writeFile(outputFile, img.WritePNG); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outputFile, err)
		os.Exit(1)
	}
	if *tiffFile != "" {
		if err := writeFile(*tiffFile, img.WriteTIFF); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *tiffFile, err)
			os.Exit(1)
		}
	}
	if *xmpFile != "" {
		if err := writeFile(*xmpFile, img.WriteMetadata); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *xmpFile, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Rendered %dx%d %s film (%s) to %s\n",
		*width, *height, *filmType, f.Flags(), outputFile)
}

func filterByName(name string) (rfilter.Filter, error) {
	switch name {
	case "box":
		return rfilter.Box{}, nil
	case "tent":
		return rfilter.Tent{}, nil
	case "gaussian":
		return rfilter.Gaussian{}, nil
	case "mitchell":
		return rfilter.NewMitchell(), nil
	default:
		return nil, fmt.Errorf("unknown filter %q", name)
	}
}

// render splats the test pattern into the film, one tile of rows per
// worker goroutine.
func render(f film.Film, spp int) {
	const tileRows = 32

	bounds := f.Bounds()
	fw := float64(bounds.Dx())
	fh := float64(bounds.Dy())

	spectral, _ := f.(*film.SpectralFilm)

	showProgress := term.IsTerminal(int(os.Stderr.Fd()))
	numTiles := (bounds.Dy() + tileRows - 1) / tileRows
	var progressMu sync.Mutex
	tilesDone := 0

	var wg sync.WaitGroup
	for y := bounds.Min.Y; y < bounds.Max.Y; y += tileRows {
		tile := image.Rect(bounds.Min.X, y, bounds.Max.X, min(y+tileRows, bounds.Max.Y))
		wg.Add(1)
		go func() {
			defer wg.Done()

			block := f.NewBlock(tile)
			testpattern.Positions(tile, spp, func(pos vec.Vec2) {
				u := (pos.X - float64(bounds.Min.X)) / fw
				v := (pos.Y - float64(bounds.Min.Y)) / fh

				var s film.Sample
				r, g, b, alpha := testpattern.At(u, v)
				if spectral != nil {
					lo, hi := spectral.WavelengthRange()
					s.Color = testpattern.SpectrumAt(u, v, spectral.Bins(), lo, hi)
				} else {
					s.Color = []float64{r, g, b}
				}
				s.Alpha = alpha
				block.Add(pos, s)
			})
			if err := f.Merge(block); err != nil {
				fmt.Fprintf(os.Stderr, "Error merging block: %v\n", err)
				os.Exit(1)
			}

			if showProgress {
				progressMu.Lock()
				tilesDone++
				fmt.Fprintf(os.Stderr, "\rrendering: %d/%d tiles", tilesDone, numTiles)
				if tilesDone == numTiles {
					fmt.Fprintln(os.Stderr)
				}
				progressMu.Unlock()
			}
		}()
	}
	wg.Wait()
}

func writeFile(path string, write func(w io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
