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
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"seehuhn.de/go/icc"
	"seehuhn.de/go/xmp"
)

// DevelopOptions control how accumulated sample data is converted to an
// image.
type DevelopOptions struct {
	// Profile is the ICC profile describing the colour space of the
	// developed image.  It must describe an RGB colour space.
	// Nil selects the sRGB v2 profile.
	Profile []byte
}

// profile validates the configured output profile and applies the
// default.  The method can be called on a nil options value.
func (o *DevelopOptions) profile() ([]byte, error) {
	if o == nil || o.Profile == nil {
		return icc.SRGBv2Profile, nil
	}
	p, err := icc.Decode(o.Profile)
	if err != nil {
		return nil, fmt.Errorf("film: invalid output profile: %w", err)
	}
	if p.ColorSpace != icc.RGBSpace {
		return nil, fmt.Errorf("film: output profile has colour space %v, need RGB",
			p.ColorSpace)
	}
	return o.Profile, nil
}

// Image is a developed film: the pixel data together with the colour
// profile the data is encoded in, and metadata describing the render.
type Image struct {
	// Image holds the pixel data.
	Image image.Image

	// Profile is the ICC profile describing the colour space of the
	// pixel data.
	Profile []byte

	// Meta holds render metadata, for embedding in output files or
	// writing as a sidecar file.
	Meta *xmp.Packet
}

// WritePNG writes the image in PNG format.
func (img *Image) WritePNG(w io.Writer) error {
	return png.Encode(w, img.Image)
}

// WriteTIFF writes the image in TIFF format, deflate-compressed.
func (img *Image) WriteTIFF(w io.Writer) error {
	return tiff.Encode(w, img.Image, &tiff.Options{
		Compression: tiff.Deflate,
		Predictor:   true,
	})
}

// WriteMetadata writes the render metadata as an XMP packet, suitable
// for use as a sidecar file.
func (img *Image) WriteMetadata(w io.Writer) error {
	return img.Meta.Write(w, nil)
}

// Preview returns a scaled-down copy of the image, at most maxSize
// pixels along the longer axis.  Images already within the limit are
// returned unchanged.
func (img *Image) Preview(maxSize int) image.Image {
	b := img.Image.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSize && h <= maxSize {
		return img.Image
	}
	if w >= h {
		h = max(h*maxSize/w, 1)
		w = maxSize
	} else {
		w = max(w*maxSize/h, 1)
		h = maxSize
	}
	dst := image.NewNRGBA64(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img.Image, b, draw.Src, nil)
	return dst
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// srgbEncode applies the sRGB transfer function to a linear value.
func srgbEncode(v float64) float64 {
	v = clamp01(v)
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// setSRGB stores a linear RGB colour with alpha at pixel (x, y),
// applying the sRGB transfer function.
func setSRGB(img *image.NRGBA64, x, y int, r, g, b, alpha float64) {
	i := img.PixOffset(x, y)
	put16(img.Pix[i:], srgbEncode(r))
	put16(img.Pix[i+2:], srgbEncode(g))
	put16(img.Pix[i+4:], srgbEncode(b))
	put16(img.Pix[i+6:], alpha)
}

func put16(dst []byte, v float64) {
	u := uint16(math.Round(clamp01(v) * 0xffff))
	dst[0] = byte(u >> 8)
	dst[1] = byte(u)
}
