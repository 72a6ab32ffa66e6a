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
	"math"
	"sync"
	"testing"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/trace/rfilter"
)

func TestRGBFlags(t *testing.T) {
	tests := []struct {
		name string
		opt  RGBOptions
		want Flags
	}{
		{"plain", RGBOptions{Width: 4, Height: 4}, FlagNone},
		{"alpha", RGBOptions{Width: 4, Height: 4, Alpha: true}, FlagAlpha},
		{"special", RGBOptions{Width: 4, Height: 4, Special: []string{"D"}}, FlagSpecial},
		{"both", RGBOptions{Width: 4, Height: 4, Alpha: true, Special: []string{"D"}},
			FlagAlpha | FlagSpecial},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := NewRGB(&test.opt)
			if err != nil {
				t.Fatal(err)
			}
			if got := f.Flags(); got != test.want {
				t.Errorf("flags = %v, want %v", got, test.want)
			}
			if f.Flags().Has(FlagSpectral) {
				t.Error("RGB film claims to be spectral")
			}

			// the flag set is part of the film's identity and
			// stays fixed over its lifetime
			before := f.Flags()
			b := f.NewBlock(f.Bounds())
			s := Sample{Color: []float64{1, 1, 1}}
			if test.want.Has(FlagSpecial) {
				s.Special = []float64{1}
			}
			b.Add(center(0, 0), s)
			f.Merge(b)
			if _, err := f.Develop(nil); err != nil {
				t.Fatal(err)
			}
			if f.Flags() != before {
				t.Error("flags changed after use")
			}
		})
	}
}

func TestRGBCrop(t *testing.T) {
	f, err := NewRGB(&RGBOptions{
		Width:  100,
		Height: 80,
		Crop:   &rect.Rect{LLx: 0.25, LLy: 0.25, URx: 0.75, URy: 0.75},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := image.Rect(25, 20, 75, 60)
	if got := f.Bounds(); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
}

func TestRGBInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  RGBOptions
	}{
		{"zero size", RGBOptions{}},
		{"negative size", RGBOptions{Width: -1, Height: 4}},
		{"crop outside", RGBOptions{Width: 4, Height: 4,
			Crop: &rect.Rect{LLx: -0.5, LLy: 0, URx: 1, URy: 1}}},
		{"crop inverted", RGBOptions{Width: 4, Height: 4,
			Crop: &rect.Rect{LLx: 0.8, LLy: 0, URx: 0.2, URy: 1}}},
		{"duplicate special", RGBOptions{Width: 4, Height: 4,
			Special: []string{"D", "D"}}},
		{"special shadows alpha", RGBOptions{Width: 4, Height: 4,
			Alpha: true, Special: []string{"A"}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := NewRGB(&test.opt); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRGBDevelop(t *testing.T) {
	f := boxRGB(t, RGBOptions{Width: 3, Height: 3, Alpha: true})

	b := f.NewBlock(f.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			b.Add(center(x, y), Sample{
				Color: []float64{0.5, 0.25, 1},
				Alpha: 0.75,
			})
		}
	}
	if err := f.Merge(b); err != nil {
		t.Fatal(err)
	}

	img, err := f.Develop(nil)
	if err != nil {
		t.Fatal(err)
	}
	nrgba, ok := img.Image.(*image.NRGBA64)
	if !ok {
		t.Fatalf("unexpected image type %T", img.Image)
	}
	if nrgba.Bounds() != image.Rect(0, 0, 3, 3) {
		t.Errorf("bounds = %v", nrgba.Bounds())
	}

	c := nrgba.NRGBA64At(1, 1)
	wantR := uint16(math.Round(srgbEncode(0.5) * 0xffff))
	wantG := uint16(math.Round(srgbEncode(0.25) * 0xffff))
	for _, check := range []struct {
		name      string
		got, want uint16
	}{
		{"R", c.R, wantR},
		{"G", c.G, wantG},
		{"B", c.B, 0xffff},
		{"A", c.A, uint16(math.Round(0.75 * 0xffff))},
	} {
		if diff := int(check.got) - int(check.want); diff < -1 || diff > 1 {
			t.Errorf("%s = %d, want %d", check.name, check.got, check.want)
		}
	}
}

func TestRGBDevelopEmpty(t *testing.T) {
	// pixels without samples develop to transparent black
	f := boxRGB(t, RGBOptions{Width: 2, Height: 2, Alpha: true})
	img, err := f.Develop(nil)
	if err != nil {
		t.Fatal(err)
	}
	c := img.Image.(*image.NRGBA64).NRGBA64At(0, 0)
	if c.R != 0 || c.G != 0 || c.B != 0 || c.A != 0 {
		t.Errorf("empty pixel = %v", c)
	}
}

func TestMergeConcurrent(t *testing.T) {
	// blocks for disjoint tiles may be merged from parallel workers
	const w, h = 64, 64
	f := boxRGB(t, RGBOptions{Width: w, Height: h})

	var wg sync.WaitGroup
	for ty := 0; ty < h; ty += 16 {
		for tx := 0; tx < w; tx += 16 {
			tile := image.Rect(tx, ty, tx+16, ty+16)
			wg.Add(1)
			go func() {
				defer wg.Done()
				b := f.NewBlock(tile)
				for y := tile.Min.Y; y < tile.Max.Y; y++ {
					for x := tile.Min.X; x < tile.Max.X; x++ {
						b.Add(center(x, y), Sample{Color: []float64{1, 0.5, 0.25}})
					}
				}
				if err := f.Merge(b); err != nil {
					t.Error(err)
				}
			}()
		}
	}
	wg.Wait()

	for _, p := range []image.Point{{0, 0}, {17, 3}, {63, 63}, {31, 32}} {
		got := f.value(p.X, p.Y, nil)
		if math.Abs(got[0]-1) > 1e-12 || math.Abs(got[1]-0.5) > 1e-12 {
			t.Errorf("pixel %v = %v", p, got)
		}
	}
}

func TestFilmReset(t *testing.T) {
	f := boxRGB(t, RGBOptions{Width: 2, Height: 2})
	b := f.NewBlock(f.Bounds())
	b.Add(center(0, 0), Sample{Color: []float64{1, 1, 1}})
	f.Merge(b)

	f.Reset()
	if got := f.value(0, 0, nil); got[0] != 0 {
		t.Errorf("pixel after reset = %v", got)
	}
}

func TestFilmFilter(t *testing.T) {
	want := rfilter.Tent{}
	f, err := NewRGB(&RGBOptions{Width: 2, Height: 2, Filter: want})
	if err != nil {
		t.Fatal(err)
	}
	got := f.Filter()
	if got.Radius() != want.Radius() {
		t.Errorf("filter radius = %g, want %g", got.Radius(), want.Radius())
	}
	if tab, ok := got.(*rfilter.Table); !ok || tab.Filter() != want {
		t.Errorf("filter = %v", got)
	}
}
