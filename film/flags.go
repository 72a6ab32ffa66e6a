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
	"strings"
)

// Flags is a bit mask describing the capabilities of a film: which kinds
// of per-pixel data the film stores, and how sample contributions must be
// accumulated into it.  A film's flag set is determined by its
// configuration when the film is constructed and never changes afterwards.
//
// Flag sets combine using the ordinary bitwise operators: a|b is the
// union of two sets, a&b the intersection, and a&^b removes the flags in
// b from a.  Use [Flags.Has] to test for capabilities.
//
// Every bit pattern is a valid Flags value.  Consumers must ignore bits
// they do not recognise, so that new flags can be added without breaking
// existing code.
type Flags uint32

// Possible values for Flags.
const (
	// FlagAlpha indicates that the film stores a per-pixel alpha
	// (coverage) channel in addition to colour.
	FlagAlpha Flags = 1 << iota

	// FlagSpectral indicates that the film stores radiance in
	// per-wavelength bins instead of a fixed tristimulus value.
	FlagSpectral

	// FlagSpecial indicates that the film stores auxiliary channels
	// which bypass filter-weighted averaging and are accumulated as
	// raw, unweighted sums.
	FlagSpecial

	firstUnused

	// AllFlags is the union of all currently defined flags.
	AllFlags = firstUnused - 1
)

// FlagNone is the empty flag set: plain colour storage with no alpha
// channel, no spectral bins and no special channels.  It is the identity
// element for the union operation.
const FlagNone Flags = 0

// Has reports whether every flag set in query is also set in f.
//
// Has is a pure bitwise test with no side effects.  The empty
// requirement is trivially satisfied: f.Has(FlagNone) is true for
// every f.
func (f Flags) Has(query Flags) bool {
	return f&query == query
}

// Names returns a string representation of the set bits.
// Bits beyond the defined flags are shown in hexadecimal.
func (f Flags) Names() string {
	if f == 0 {
		return "None"
	}

	var parts []string
	for i := 0; i < len(names); i++ {
		if f&(1<<i) != 0 {
			parts = append(parts, names[i])
		}
	}
	if rest := f &^ AllFlags; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}

	return strings.Join(parts, "|")
}

// String implements the [fmt.Stringer] interface.
func (f Flags) String() string {
	return f.Names()
}

var names = []string{
	"Alpha",
	"Spectral",
	"Special",
}
