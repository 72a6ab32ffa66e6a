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
	"errors"
	"fmt"
)

// AccumMode selects how sample contributions are folded into a channel.
type AccumMode int

const (
	// AccumWeighted multiplies each contribution by the reconstruction
	// filter weight and normalises by the total accumulated weight when
	// the film is developed.
	AccumWeighted AccumMode = iota

	// AccumRaw adds contributions as plain, unweighted sums.  The
	// stored value is never normalised.
	AccumRaw
)

func (m AccumMode) String() string {
	switch m {
	case AccumWeighted:
		return "weighted"
	case AccumRaw:
		return "raw"
	default:
		return fmt.Sprintf("AccumMode(%d)", int(m))
	}
}

// Channel describes one per-pixel storage channel of a film.
type Channel struct {
	// Name identifies the channel.  Colour channels are named "R",
	// "G", "B", spectral bins "S00", "S01", ..., and the alpha
	// channel "A".  Special channels carry the names given at film
	// construction time.
	Name string

	// Mode is the accumulation mode for this channel.
	Mode AccumMode
}

// Layout returns the per-pixel channel list implied by a flag set.
//
// The colour channels come first: three tristimulus channels, or
// numBins wavelength bins if [FlagSpectral] is set.  [FlagAlpha] adds an
// alpha channel, and [FlagSpecial] adds one raw channel per name in
// special.  The three flags are independent; any combination is allowed.
//
// Layout reports an error if the flag set and the remaining arguments
// contradict each other: a spectral layout needs at least one bin, and
// special channel names must be given exactly if FlagSpecial is set.
func Layout(flags Flags, numBins int, special []string) ([]Channel, error) {
	var layout []Channel

	if flags.Has(FlagSpectral) {
		if numBins < 1 {
			return nil, fmt.Errorf("film: spectral layout with %d bins", numBins)
		}
		for i := 0; i < numBins; i++ {
			layout = append(layout, Channel{
				Name: fmt.Sprintf("S%02d", i),
				Mode: AccumWeighted,
			})
		}
	} else {
		layout = append(layout,
			Channel{Name: "R", Mode: AccumWeighted},
			Channel{Name: "G", Mode: AccumWeighted},
			Channel{Name: "B", Mode: AccumWeighted})
	}

	if flags.Has(FlagAlpha) {
		layout = append(layout, Channel{Name: "A", Mode: AccumWeighted})
	}

	if flags.Has(FlagSpecial) != (len(special) > 0) {
		return nil, errSpecialMismatch
	}
	// "R", "G", "B" and "A" stay reserved even when the layout does
	// not use them, so that a channel name always identifies the same
	// kind of data across film configurations.
	seen := map[string]bool{"R": true, "G": true, "B": true, "A": true}
	for _, ch := range layout {
		seen[ch.Name] = true
	}
	for _, name := range special {
		if name == "" || seen[name] {
			return nil, fmt.Errorf("film: invalid special channel name %q", name)
		}
		seen[name] = true
		layout = append(layout, Channel{Name: name, Mode: AccumRaw})
	}

	return layout, nil
}

var errSpecialMismatch = errors.New("film: special channel names and flags disagree")
