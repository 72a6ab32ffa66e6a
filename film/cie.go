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

// CIE 1931 2-degree standard observer, 380nm to 780nm in 10nm steps.

const (
	cieMin  = 380.0
	cieMax  = 780.0
	cieStep = 10.0
)

// cieMatch evaluates the colour matching functions at wavelength lambda
// (in nanometres), interpolating linearly between table entries.
// Wavelengths outside the tabulated range contribute zero.
func cieMatch(lambda float64) (x, y, z float64) {
	if lambda < cieMin || lambda >= cieMax {
		return 0, 0, 0
	}
	pos := (lambda - cieMin) / cieStep
	i := int(pos)
	frac := pos - float64(i)
	x = cieX[i]*(1-frac) + cieX[i+1]*frac
	y = cieY[i]*(1-frac) + cieY[i+1]*frac
	z = cieZ[i]*(1-frac) + cieZ[i+1]*frac
	return x, y, z
}

// cieNorm is the integral of the y-bar matching function over the
// tabulated range, computed once at startup.  Dividing tristimulus
// integrals by this constant makes an equal-energy spectrum of unit
// radiance develop to Y = 1.
var cieNorm = func() float64 {
	sum := 0.0
	for _, v := range cieY {
		sum += v
	}
	return sum * cieStep
}()

var cieX = []float64{
	0.0014, 0.0042, 0.0143, 0.0435, 0.1344, 0.2839, 0.3483, 0.3362,
	0.2908, 0.1954, 0.0956, 0.0320, 0.0049, 0.0093, 0.0633, 0.1655,
	0.2904, 0.4334, 0.5945, 0.7621, 0.9163, 1.0263, 1.0622, 1.0026,
	0.8544, 0.6424, 0.4479, 0.2835, 0.1649, 0.0874, 0.0468, 0.0227,
	0.0114, 0.0058, 0.0029, 0.0014, 0.0007, 0.0003, 0.0002, 0.0001,
	0.0000,
}

var cieY = []float64{
	0.0000, 0.0001, 0.0004, 0.0012, 0.0040, 0.0116, 0.0230, 0.0380,
	0.0600, 0.0910, 0.1390, 0.2080, 0.3230, 0.5030, 0.7100, 0.8620,
	0.9540, 0.9950, 0.9950, 0.9520, 0.8700, 0.7570, 0.6310, 0.5030,
	0.3810, 0.2650, 0.1750, 0.1070, 0.0610, 0.0320, 0.0170, 0.0082,
	0.0041, 0.0021, 0.0010, 0.0005, 0.0002, 0.0001, 0.0001, 0.0000,
	0.0000,
}

var cieZ = []float64{
	0.0065, 0.0201, 0.0679, 0.2074, 0.6456, 1.3856, 1.7471, 1.7721,
	1.6692, 1.2876, 0.8130, 0.4652, 0.2720, 0.1582, 0.0782, 0.0422,
	0.0203, 0.0087, 0.0039, 0.0021, 0.0017, 0.0011, 0.0008, 0.0003,
	0.0002, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000,
	0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000,
	0.0000,
}

// xyzToLinearRGB converts CIE XYZ (D65 white point) to linear sRGB.
func xyzToLinearRGB(x, y, z float64) (r, g, b float64) {
	r = 3.2406*x - 1.5372*y - 0.4986*z
	g = -0.9689*x + 1.8758*y + 0.0415*z
	b = 0.0557*x - 0.2040*y + 1.0570*z
	return r, g, b
}
