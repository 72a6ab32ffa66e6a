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

package rfilter

import "math"

// tableResolution is the number of table entries per unit of filter
// radius.  Splatting reads the table once per covered pixel, so the
// resolution only needs to be fine enough that linear interpolation
// between entries is visually indistinguishable from exact evaluation.
const tableResolution = 32

// Table caches a filter's profile at discrete positions, so that
// splatting loops can look up weights without re-evaluating the filter
// for every pixel.  Lookups interpolate linearly between table entries.
//
// Table implements [Filter] and can be used wherever a filter is
// expected.  A Table is immutable after construction and safe for
// concurrent use.
type Table struct {
	filter Filter
	radius float64
	scale  float64 // table index per unit distance
	values []float64
}

// NewTable precomputes a lookup table for the given filter.
func NewTable(f Filter) *Table {
	r := f.Radius()
	n := int(math.Ceil(r*tableResolution)) + 1
	values := make([]float64, n+1)
	for i := 0; i < n; i++ {
		values[i] = f.Eval(float64(i) / tableResolution)
	}
	// values[n] stays zero so that interpolation past the last
	// entry falls to zero.
	return &Table{
		filter: f,
		radius: r,
		scale:  tableResolution,
		values: values,
	}
}

// Radius implements the [Filter] interface.
func (t *Table) Radius() float64 {
	return t.radius
}

// Eval implements the [Filter] interface, returning the interpolated
// table value at signed distance x.
func (t *Table) Eval(x float64) float64 {
	if x < 0 {
		x = -x
	}
	if x >= t.radius {
		return 0
	}
	pos := x * t.scale
	i := int(pos)
	if i+1 >= len(t.values) {
		return t.values[len(t.values)-1]
	}
	frac := pos - float64(i)
	return t.values[i]*(1-frac) + t.values[i+1]*frac
}

// Filter returns the filter the table was built from.
func (t *Table) Filter() Filter {
	return t.filter
}
