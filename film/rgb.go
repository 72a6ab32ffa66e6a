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
	"image"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/trace/rfilter"
)

// RGBOptions configures a tristimulus film.
type RGBOptions struct {
	// Width and Height give the full film resolution in pixels.
	Width, Height int

	// Crop restricts rendering to a window of the film, given in
	// normalised [0,1]x[0,1] coordinates.  Nil selects the full film.
	Crop *rect.Rect

	// Filter is the reconstruction filter.  Nil selects a Gaussian
	// with the default standard deviation.
	Filter rfilter.Filter

	// Alpha requests a per-pixel alpha channel.  This sets
	// [FlagAlpha] on the film.
	Alpha bool

	// Special lists the names of additional raw output channels,
	// accumulated as unweighted sums.  A non-empty list sets
	// [FlagSpecial] on the film.
	Special []string
}

// RGBFilm stores linear RGB radiance values, with optional alpha and
// raw channels.
type RGBFilm struct {
	*accum
}

var _ Film = (*RGBFilm)(nil)

// NewRGB creates a tristimulus film.
func NewRGB(opt *RGBOptions) (*RGBFilm, error) {
	if opt == nil {
		opt = &RGBOptions{}
	}

	bounds, err := cropBounds(opt.Width, opt.Height, opt.Crop)
	if err != nil {
		return nil, err
	}

	flags := FlagNone
	if opt.Alpha {
		flags |= FlagAlpha
	}
	if len(opt.Special) > 0 {
		flags |= FlagSpecial
	}

	channels, err := Layout(flags, 0, opt.Special)
	if err != nil {
		return nil, err
	}

	filter := opt.Filter
	if filter == nil {
		filter = rfilter.Gaussian{}
	}

	return &RGBFilm{
		accum: newAccum(flags, bounds, channels, filter),
	}, nil
}

// Develop converts the accumulated samples to an sRGB image.
//
// Weighted channels are normalised by the accumulated filter weight,
// the linear RGB values are encoded with the sRGB transfer function,
// and pixels which received no samples come out black (and fully
// transparent, if the film has an alpha channel).
func (f *RGBFilm) Develop(opts *DevelopOptions) (*Image, error) {
	profile, err := opts.profile()
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA64(f.bounds)
	var buf []float64
	for y := f.bounds.Min.Y; y < f.bounds.Max.Y; y++ {
		for x := f.bounds.Min.X; x < f.bounds.Max.X; x++ {
			buf = f.value(x, y, buf)
			alpha := 1.0
			if f.alphaIdx >= 0 {
				alpha = clamp01(buf[f.alphaIdx])
			}
			setSRGB(img, x, y, buf[0], buf[1], buf[2], alpha)
		}
	}

	return &Image{
		Image:   img,
		Profile: profile,
		Meta:    renderMetadata(f),
	}, nil
}

// RawChannel returns a copy of the accumulated values of the named
// special channel, in row-major order over the film bounds.  The
// second return value reports whether the channel exists.
func (f *RGBFilm) RawChannel(name string) ([]float64, bool) {
	return f.rawChannel(name)
}

func (a *accum) rawChannel(name string) ([]float64, bool) {
	idx := -1
	for i := a.specOff; i < len(a.channels); i++ {
		if a.channels[i].Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	nc := len(a.channels)
	n := a.bounds.Dx() * a.bounds.Dy()
	out := make([]float64, n)
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range out {
		out[i] = a.pix[i*nc+idx]
	}
	return out, true
}
