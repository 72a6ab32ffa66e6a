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

package film

import (
	"fmt"
	"image"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/trace/rfilter"
)

// Sample is one sample contribution to a film.
//
// Which parts of a sample are used depends on the film's capability
// flags: Color is always used, Alpha only if the film has [FlagAlpha],
// and Special only if the film has [FlagSpecial].
type Sample struct {
	// Color holds the colour contribution: three tristimulus values,
	// or one value per wavelength bin for spectral films.  The length
	// must match the film's colour channel count.
	Color []float64

	// Alpha is the coverage contribution.
	Alpha float64

	// Special holds the raw channel contributions, one value per
	// special channel declared at film construction time.  The length
	// must match the film's special channel count.
	Special []float64
}

// Block accumulates samples for one tile of a film.
//
// Blocks are created with the film's NewBlock method and are not safe
// for concurrent use; each rendering worker must use its own block and
// merge it into the film when the tile is finished.  The block's pixel
// storage extends beyond the tile by the reconstruction filter's
// support, so that samples near the tile boundary are fully recorded;
// overlapping borders of adjacent blocks add up correctly when merged.
type Block struct {
	bounds image.Rectangle // the tile
	data   image.Rectangle // tile extended by the filter border

	channels []Channel
	nColor   int
	alphaIdx int
	specOff  int
	filter   *rfilter.Table

	pix    []float64
	weight []float64
	wx, wy []float64 // per-axis filter weights, reused between calls
}

func newBlock(bounds image.Rectangle, channels []Channel, nColor, alphaIdx, specOff int, filter *rfilter.Table) *Block {
	border := int(math.Ceil(filter.Radius() - 0.5))
	data := bounds.Inset(-border)
	n := data.Dx() * data.Dy()
	return &Block{
		bounds:   bounds,
		data:     data,
		channels: channels,
		nColor:   nColor,
		alphaIdx: alphaIdx,
		specOff:  specOff,
		filter:   filter,
		pix:      make([]float64, n*len(channels)),
		weight:   make([]float64, n),
	}
}

// Bounds returns the tile covered by the block, without the filter
// border.
func (b *Block) Bounds() image.Rectangle {
	return b.bounds
}

// Add splats one sample at the continuous image position pos.
//
// The weighted channels of every pixel whose centre lies within the
// reconstruction filter's support receive the sample's colour (and
// alpha, if present), multiplied by the filter weight.  The raw
// channels of the single pixel containing pos receive the sample's
// Special values unweighted.
//
// Add panics if the sample's Color or Special slices do not match the
// film's channel layout.
func (b *Block) Add(pos vec.Vec2, s Sample) {
	if len(s.Color) != b.nColor {
		panic(fmt.Sprintf("film: sample has %d colour values, film stores %d",
			len(s.Color), b.nColor))
	}
	nSpecial := len(b.channels) - b.specOff
	if len(s.Special) != nSpecial {
		panic(fmt.Sprintf("film: sample has %d special values, film stores %d",
			len(s.Special), nSpecial))
	}

	b.splatWeighted(pos, s)
	if nSpecial > 0 {
		b.addRaw(pos, s.Special)
	}
}

// splatWeighted distributes the filter-weighted part of a sample over
// the pixels within the filter support.
func (b *Block) splatWeighted(pos vec.Vec2, s Sample) {
	r := b.filter.Radius()

	// pixel (x,y) has its centre at (x+0.5, y+0.5)
	x0 := int(math.Ceil(pos.X - r - 0.5))
	x1 := int(math.Floor(pos.X + r - 0.5))
	y0 := int(math.Ceil(pos.Y - r - 0.5))
	y1 := int(math.Floor(pos.Y + r - 0.5))
	x0 = max(x0, b.data.Min.X)
	x1 = min(x1, b.data.Max.X-1)
	y0 = max(y0, b.data.Min.Y)
	y1 = min(y1, b.data.Max.Y-1)
	if x0 > x1 || y0 > y1 {
		return
	}

	b.wx = b.wx[:0]
	for x := x0; x <= x1; x++ {
		b.wx = append(b.wx, b.filter.Eval(float64(x)+0.5-pos.X))
	}
	b.wy = b.wy[:0]
	for y := y0; y <= y1; y++ {
		b.wy = append(b.wy, b.filter.Eval(float64(y)+0.5-pos.Y))
	}

	nc := len(b.channels)
	stride := b.data.Dx()
	for y := y0; y <= y1; y++ {
		fy := b.wy[y-y0]
		if fy == 0 {
			continue
		}
		row := (y - b.data.Min.Y) * stride
		for x := x0; x <= x1; x++ {
			w := fy * b.wx[x-x0]
			if w == 0 {
				continue
			}
			idx := row + (x - b.data.Min.X)
			off := idx * nc
			for c, v := range s.Color {
				b.pix[off+c] += w * v
			}
			if b.alphaIdx >= 0 {
				b.pix[off+b.alphaIdx] += w * s.Alpha
			}
			b.weight[idx] += w
		}
	}
}

// addRaw adds the special channel values to the pixel containing pos.
func (b *Block) addRaw(pos vec.Vec2, special []float64) {
	x := int(math.Floor(pos.X))
	y := int(math.Floor(pos.Y))
	if x < b.data.Min.X || x >= b.data.Max.X || y < b.data.Min.Y || y >= b.data.Max.Y {
		return
	}
	idx := (y-b.data.Min.Y)*b.data.Dx() + (x - b.data.Min.X)
	off := idx * len(b.channels)
	for i, v := range special {
		b.pix[off+b.specOff+i] += v
	}
}

// Reset clears the block for reuse with another tile of the same film.
func (b *Block) Reset(bounds image.Rectangle) {
	border := int(math.Ceil(b.filter.Radius() - 0.5))
	data := bounds.Inset(-border)
	n := data.Dx() * data.Dy() * len(b.channels)
	if n > cap(b.pix) {
		b.pix = make([]float64, n)
		b.weight = make([]float64, data.Dx()*data.Dy())
	} else {
		b.pix = b.pix[:n]
		clear(b.pix)
		b.weight = b.weight[:data.Dx()*data.Dy()]
		clear(b.weight)
	}
	b.bounds = bounds
	b.data = data
}
