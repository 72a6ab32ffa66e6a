// seehuhn.de/go/trace - a physically based renderer
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package film implements the sensor abstraction of the renderer: the
// surface that sample contributions are accumulated into, and the
// capability flags that tell pixel-writing components how to accumulate
// them.
//
// Each film carries an immutable [Flags] value describing its storage:
// whether it has an alpha channel, whether it stores spectral bins
// instead of tristimulus colour, and whether it has special channels
// which bypass filter weighting.  Rendering workers obtain [Block]
// accumulators for disjoint tiles, splat samples into them through a
// reconstruction filter, and merge the finished blocks back into the
// film.  Developing a film normalises the accumulated data and converts
// it to an image.
package film

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"
	"sync"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/trace/rfilter"
)

// Film represents a rendering output surface.
//
// The flag set, bounds, channel layout and reconstruction filter of a
// film are fixed at construction time.  Merging blocks is safe for
// concurrent use; all other methods only read immutable state.
type Film interface {
	// Flags describes the film's static capabilities.
	Flags() Flags

	// Bounds returns the pixel bounds of the film's crop region,
	// in full-resolution pixel coordinates.
	Bounds() image.Rectangle

	// Channels returns the film's per-pixel channel layout.
	Channels() []Channel

	// Filter returns the reconstruction filter samples are splatted
	// with.
	Filter() rfilter.Filter

	// NewBlock returns an empty accumulation block for the given tile.
	// Each rendering worker must use its own block.
	NewBlock(bounds image.Rectangle) *Block

	// Merge folds a finished block back into the film.
	// Merge is safe for concurrent use.
	Merge(b *Block) error

	// Develop normalises the accumulated sample data and converts it
	// to a displayable image.  A nil opts selects the defaults.
	Develop(opts *DevelopOptions) (*Image, error)
}

// accum holds the accumulation state shared by the concrete film types.
type accum struct {
	flags    Flags
	bounds   image.Rectangle
	channels []Channel
	nColor   int
	alphaIdx int // index of the alpha channel, or -1
	specOff  int // index of the first special channel
	filter   *rfilter.Table

	mu     sync.Mutex
	pix    []float64 // len(channels) values per pixel, row-major
	weight []float64 // accumulated filter weight per pixel
}

func newAccum(flags Flags, bounds image.Rectangle, channels []Channel, filter rfilter.Filter) *accum {
	nColor := 0
	for nColor < len(channels) && channels[nColor].Mode == AccumWeighted && channels[nColor].Name != "A" {
		nColor++
	}
	alphaIdx := -1
	specOff := len(channels)
	for i, ch := range channels {
		switch {
		case ch.Name == "A" && ch.Mode == AccumWeighted:
			alphaIdx = i
		case ch.Mode == AccumRaw:
			if i < specOff {
				specOff = i
			}
		}
	}

	n := bounds.Dx() * bounds.Dy()
	return &accum{
		flags:    flags,
		bounds:   bounds,
		channels: channels,
		nColor:   nColor,
		alphaIdx: alphaIdx,
		specOff:  specOff,
		filter:   rfilter.NewTable(filter),
		pix:      make([]float64, n*len(channels)),
		weight:   make([]float64, n),
	}
}

func (a *accum) Flags() Flags {
	return a.flags
}

func (a *accum) Bounds() image.Rectangle {
	return a.bounds
}

func (a *accum) Channels() []Channel {
	return slices.Clone(a.channels)
}

func (a *accum) Filter() rfilter.Filter {
	return a.filter
}

// NewBlock returns an empty accumulation block for the given tile.
// The tile is clipped to the film bounds.
func (a *accum) NewBlock(bounds image.Rectangle) *Block {
	return newBlock(bounds.Intersect(a.bounds), a.channels, a.nColor, a.alphaIdx, a.specOff, a.filter)
}

// Merge adds the contents of a finished block to the film.
// The block must have been created by this film's NewBlock method.
func (a *accum) Merge(b *Block) error {
	if len(b.channels) != len(a.channels) {
		return errors.New("film: block channel layout does not match film")
	}

	overlap := b.data.Intersect(a.bounds)
	if overlap.Empty() {
		return nil
	}

	nc := len(a.channels)
	a.mu.Lock()
	defer a.mu.Unlock()
	for y := overlap.Min.Y; y < overlap.Max.Y; y++ {
		srcRow := (y - b.data.Min.Y) * b.data.Dx()
		dstRow := (y - a.bounds.Min.Y) * a.bounds.Dx()
		for x := overlap.Min.X; x < overlap.Max.X; x++ {
			src := srcRow + (x - b.data.Min.X)
			dst := dstRow + (x - a.bounds.Min.X)
			for c := 0; c < nc; c++ {
				a.pix[dst*nc+c] += b.pix[src*nc+c]
			}
			a.weight[dst] += b.weight[src]
		}
	}
	return nil
}

// Reset discards all accumulated samples, so that the film can be
// reused for another rendering pass.
func (a *accum) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.pix)
	clear(a.weight)
}

// value returns the normalised channel values for the pixel at (x, y):
// weighted channels are divided by the accumulated filter weight, raw
// channels are returned as stored.  The result is only valid until the
// next call.
func (a *accum) value(x, y int, buf []float64) []float64 {
	nc := len(a.channels)
	idx := (y-a.bounds.Min.Y)*a.bounds.Dx() + (x - a.bounds.Min.X)
	buf = append(buf[:0], a.pix[idx*nc:(idx+1)*nc]...)
	if w := a.weight[idx]; w != 0 {
		for c, ch := range a.channels {
			if ch.Mode == AccumWeighted {
				buf[c] /= w
			}
		}
	}
	return buf
}

// cropBounds converts a normalised crop window to pixel bounds.
// A nil crop selects the full film area.
func cropBounds(width, height int, crop *rect.Rect) (image.Rectangle, error) {
	if width < 1 || height < 1 {
		return image.Rectangle{}, fmt.Errorf("film: invalid size %dx%d", width, height)
	}
	if crop == nil {
		return image.Rect(0, 0, width, height), nil
	}
	if crop.LLx < 0 || crop.LLy < 0 || crop.URx > 1 || crop.URy > 1 ||
		crop.LLx >= crop.URx || crop.LLy >= crop.URy {
		return image.Rectangle{}, fmt.Errorf("film: invalid crop window %v", *crop)
	}
	b := image.Rect(
		int(math.Floor(crop.LLx*float64(width))),
		int(math.Floor(crop.LLy*float64(height))),
		int(math.Ceil(crop.URx*float64(width))),
		int(math.Ceil(crop.URy*float64(height))),
	)
	if b.Empty() {
		return image.Rectangle{}, fmt.Errorf("film: empty crop window %v", *crop)
	}
	return b, nil
}
