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

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/trace/rfilter"
)

// SpectralOptions configures a film which stores radiance in
// per-wavelength bins.
type SpectralOptions struct {
	// Width and Height give the full film resolution in pixels.
	Width, Height int

	// Crop restricts rendering to a window of the film, given in
	// normalised [0,1]x[0,1] coordinates.  Nil selects the full film.
	Crop *rect.Rect

	// Filter is the reconstruction filter.  Nil selects a Gaussian
	// with the default standard deviation.
	Filter rfilter.Filter

	// Bins is the number of wavelength bins.
	// The zero value selects 16 bins.
	Bins int

	// WavelengthMin and WavelengthMax give the wavelength range
	// covered by the bins, in nanometres.  The zero values select
	// the visible range 380nm to 780nm.
	WavelengthMin, WavelengthMax float64

	// Alpha requests a per-pixel alpha channel.  This sets
	// [FlagAlpha] on the film.
	Alpha bool

	// Special lists the names of additional raw output channels.
	// A non-empty list sets [FlagSpecial] on the film.
	Special []string
}

// SpectralFilm stores per-wavelength-bin radiance.  Each bin holds the
// mean spectral radiance over its wavelength interval.
type SpectralFilm struct {
	*accum

	bins                 int
	lambdaMin, lambdaMax float64
	response             [][3]float64 // per-bin XYZ responses
}

var _ Film = (*SpectralFilm)(nil)

// NewSpectral creates a spectral film.
func NewSpectral(opt *SpectralOptions) (*SpectralFilm, error) {
	if opt == nil {
		opt = &SpectralOptions{}
	}

	bounds, err := cropBounds(opt.Width, opt.Height, opt.Crop)
	if err != nil {
		return nil, err
	}

	bins := opt.Bins
	if bins == 0 {
		bins = 16
	}
	if bins < 1 {
		return nil, fmt.Errorf("film: invalid bin count %d", bins)
	}

	lambdaMin, lambdaMax := opt.WavelengthMin, opt.WavelengthMax
	if lambdaMin == 0 && lambdaMax == 0 {
		lambdaMin, lambdaMax = cieMin, cieMax
	}
	if lambdaMin >= lambdaMax || lambdaMin <= 0 {
		return nil, fmt.Errorf("film: invalid wavelength range [%g,%g]",
			lambdaMin, lambdaMax)
	}

	flags := FlagSpectral
	if opt.Alpha {
		flags |= FlagAlpha
	}
	if len(opt.Special) > 0 {
		flags |= FlagSpecial
	}

	channels, err := Layout(flags, bins, opt.Special)
	if err != nil {
		return nil, err
	}

	filter := opt.Filter
	if filter == nil {
		filter = rfilter.Gaussian{}
	}

	return &SpectralFilm{
		accum:     newAccum(flags, bounds, channels, filter),
		bins:      bins,
		lambdaMin: lambdaMin,
		lambdaMax: lambdaMax,
		response:  binResponses(bins, lambdaMin, lambdaMax),
	}, nil
}

// binResponses integrates the CIE matching functions over each
// wavelength bin, at 1nm resolution.
func binResponses(bins int, lambdaMin, lambdaMax float64) [][3]float64 {
	resp := make([][3]float64, bins)
	width := (lambdaMax - lambdaMin) / float64(bins)
	for i := range resp {
		lo := lambdaMin + float64(i)*width
		n := int(width) + 1
		dl := width / float64(n)
		var x, y, z float64
		for j := 0; j < n; j++ {
			mx, my, mz := cieMatch(lo + (float64(j)+0.5)*dl)
			x += mx * dl
			y += my * dl
			z += mz * dl
		}
		resp[i] = [3]float64{x / cieNorm, y / cieNorm, z / cieNorm}
	}
	return resp
}

// Bins returns the number of wavelength bins.
func (f *SpectralFilm) Bins() int {
	return f.bins
}

// WavelengthRange returns the wavelength range covered by the bins,
// in nanometres.
func (f *SpectralFilm) WavelengthRange() (min, max float64) {
	return f.lambdaMin, f.lambdaMax
}

// Wavelength returns the centre wavelength of bin i in nanometres.
func (f *SpectralFilm) Wavelength(i int) float64 {
	width := (f.lambdaMax - f.lambdaMin) / float64(f.bins)
	return f.lambdaMin + (float64(i)+0.5)*width
}

// Develop converts the accumulated spectral bins to an sRGB image.
//
// The normalised bin values are integrated against the CIE 1931 colour
// matching functions to obtain XYZ tristimulus values, converted to
// linear sRGB, and encoded with the sRGB transfer function.
func (f *SpectralFilm) Develop(opts *DevelopOptions) (*Image, error) {
	profile, err := opts.profile()
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA64(f.bounds)
	var buf []float64
	for y := f.bounds.Min.Y; y < f.bounds.Max.Y; y++ {
		for x := f.bounds.Min.X; x < f.bounds.Max.X; x++ {
			buf = f.value(x, y, buf)

			var cx, cy, cz float64
			for i := 0; i < f.bins; i++ {
				cx += buf[i] * f.response[i][0]
				cy += buf[i] * f.response[i][1]
				cz += buf[i] * f.response[i][2]
			}
			r, g, b := xyzToLinearRGB(cx, cy, cz)

			alpha := 1.0
			if f.alphaIdx >= 0 {
				alpha = clamp01(buf[f.alphaIdx])
			}
			setSRGB(img, x, y, r, g, b, alpha)
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
func (f *SpectralFilm) RawChannel(name string) ([]float64, bool) {
	return f.rawChannel(name)
}
