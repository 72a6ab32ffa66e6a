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

// Package testpattern generates deterministic sample streams for
// exercising film accumulation, in tests and demo tools.
package testpattern

import (
	"image"
	"math"

	"seehuhn.de/go/geom/vec"
)

// Positions calls fn with perPixel jittered sample positions for every
// pixel in bounds, in row-major order.  The jitter is a pure function
// of the pixel coordinates and sample index, so repeated calls produce
// identical streams.
func Positions(bounds image.Rectangle, perPixel int, fn func(pos vec.Vec2)) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			for i := 0; i < perPixel; i++ {
				jx, jy := jitter(x, y, i)
				fn(vec.Vec2{
					X: float64(x) + jx,
					Y: float64(y) + jy,
				})
			}
		}
	}
}

// jitter returns two values in [0,1) derived from the pixel coordinates
// and sample index by mixing them through a 64-bit hash.
func jitter(x, y, i int) (float64, float64) {
	h := uint64(x)*0x9e3779b97f4a7c15 + uint64(y)*0xbf58476d1ce4e5b9 + uint64(i)*0x94d049bb133111eb
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return float64(h>>40) / (1 << 24), float64(h&0xffffff) / (1 << 24)
}

// At returns the pattern colour at the normalised image position
// (u, v), with u, v in [0,1): a two-axis gradient with a bright disc in
// the centre.  Alpha is 1 inside the disc, 0.25 outside.
func At(u, v float64) (r, g, b, alpha float64) {
	r = u
	g = v
	b = 0.25

	du := u - 0.5
	dv := v - 0.5
	if du*du+dv*dv < 0.3*0.3 {
		r = 1 - 0.5*r
		g = 1 - 0.5*g
		b = 0.9
		return r, g, b, 1
	}
	return r, g, b, 0.25
}

// SpectrumAt returns per-bin mean spectral radiance at the normalised
// position (u, v): a Gaussian emission line whose centre wavelength
// sweeps across the [lambdaMin, lambdaMax] range with u, and whose
// intensity varies with v.
func SpectrumAt(u, v float64, bins int, lambdaMin, lambdaMax float64) []float64 {
	centre := lambdaMin + u*(lambdaMax-lambdaMin)
	width := (lambdaMax - lambdaMin) / 16
	scale := 0.25 + 0.75*v

	out := make([]float64, bins)
	binWidth := (lambdaMax - lambdaMin) / float64(bins)
	for i := range out {
		lambda := lambdaMin + (float64(i)+0.5)*binWidth
		d := (lambda - centre) / width
		out[i] = scale * math.Exp(-0.5*d*d)
	}
	return out
}
