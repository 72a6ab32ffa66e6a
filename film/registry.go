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
	"sort"
	"sync"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/trace/rfilter"
)

// Options are the construction parameters shared by all registered film
// types.  Type-specific settings keep their defaults; use the concrete
// constructors for full control.
type Options struct {
	// Width and Height give the full film resolution in pixels.
	Width, Height int

	// Filter is the reconstruction filter.  Nil selects a Gaussian
	// with the default standard deviation.
	Filter rfilter.Filter
}

// Constructor creates a film from the generic construction parameters.
type Constructor func(opt Options) (Film, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{
		"rgb": func(opt Options) (Film, error) {
			return NewRGB(&RGBOptions{
				Width: opt.Width, Height: opt.Height, Filter: opt.Filter,
			})
		},
		"rgba": func(opt Options) (Film, error) {
			return NewRGB(&RGBOptions{
				Width: opt.Width, Height: opt.Height, Filter: opt.Filter,
				Alpha: true,
			})
		},
		"spectral": func(opt Options) (Film, error) {
			return NewSpectral(&SpectralOptions{
				Width: opt.Width, Height: opt.Height, Filter: opt.Filter,
			})
		},
	}
)

// Register makes a film type available under the given name, for use
// with [New].  Register panics if the name is already taken.
func Register(name string, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("film: type %q already registered", name))
	}
	registry[name] = c
}

// New creates a film of the named type.
func New(name string, opt Options) (Film, error) {
	registryMu.RLock()
	c, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("film: unknown film type %q", name)
	}
	return c(opt)
}

// Known returns the names of all registered film types, sorted.
func Known() []string {
	registryMu.RLock()
	names := maps.Keys(registry)
	registryMu.RUnlock()
	sort.Strings(names)
	return names
}
