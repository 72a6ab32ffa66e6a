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

// Package rfilter provides reconstruction filters for distributing image
// samples over nearby pixels.
//
// A reconstruction filter turns point samples into pixel values: each
// sample contributes to all pixels within the filter's support, weighted
// by the filter value at the pixel centre.  Film implementations apply
// filters separably, evaluating the one-dimensional profile once per axis.
package rfilter

import "math"

// Filter is a separable reconstruction filter with finite support.
//
// Filters are symmetric about zero.  Implementations must return zero
// from Eval for all |x| >= Radius().
type Filter interface {
	// Radius returns the support radius in pixels.
	Radius() float64

	// Eval returns the filter value at signed distance x from the
	// filter centre.
	Eval(x float64) float64
}

// Box is the box filter: equal weight for every pixel whose centre lies
// within half a pixel of the sample position.  Fast, but prone to
// aliasing.
type Box struct{}

// Radius implements the [Filter] interface.
func (Box) Radius() float64 { return 0.5 }

// Eval implements the [Filter] interface.
func (Box) Eval(x float64) float64 {
	if x <= -0.5 || x >= 0.5 {
		return 0
	}
	return 1
}

// Tent is the triangle filter with a support radius of one pixel.
type Tent struct{}

// Radius implements the [Filter] interface.
func (Tent) Radius() float64 { return 1 }

// Eval implements the [Filter] interface.
func (Tent) Eval(x float64) float64 {
	if x < 0 {
		x = -x
	}
	if x >= 1 {
		return 0
	}
	return 1 - x
}

// Gaussian is a truncated Gaussian filter.  The profile is shifted so
// that it falls to exactly zero at the truncation radius, avoiding a
// discontinuity at the edge of the support.
type Gaussian struct {
	// Stddev is the standard deviation in pixels.
	// The zero value selects a standard deviation of 0.5.
	Stddev float64
}

func (g Gaussian) stddev() float64 {
	if g.Stddev <= 0 {
		return 0.5
	}
	return g.Stddev
}

// Radius implements the [Filter] interface.
// The support is truncated at four standard deviations.
func (g Gaussian) Radius() float64 {
	return 4 * g.stddev()
}

// Eval implements the [Filter] interface.
func (g Gaussian) Eval(x float64) float64 {
	sigma := g.stddev()
	r := 4 * sigma
	if x <= -r || x >= r {
		return 0
	}
	alpha := -1 / (2 * sigma * sigma)
	return math.Exp(alpha*x*x) - math.Exp(alpha*r*r)
}

// Mitchell is the Mitchell-Netravali filter, a piecewise cubic with a
// support radius of two pixels.  The B and C parameters trade blur
// against ringing; Mitchell and Netravali recommend B = C = 1/3, which
// is what [NewMitchell] returns.
type Mitchell struct {
	B, C float64
}

// NewMitchell returns a Mitchell filter with the recommended parameters
// B = C = 1/3.
func NewMitchell() Mitchell {
	return Mitchell{B: 1.0 / 3, C: 1.0 / 3}
}

// Radius implements the [Filter] interface.
func (Mitchell) Radius() float64 { return 2 }

// Eval implements the [Filter] interface.
func (m Mitchell) Eval(x float64) float64 {
	if x < 0 {
		x = -x
	}
	if x >= 2 {
		return 0
	}
	b, c := m.B, m.C
	x2 := x * x
	x3 := x2 * x
	if x < 1 {
		return ((12-9*b-6*c)*x3 + (-18+12*b+6*c)*x2 + (6 - 2*b)) / 6
	}
	return ((-b-6*c)*x3 + (6*b+30*c)*x2 + (-12*b-48*c)*x + (8*b + 24*c)) / 6
}
