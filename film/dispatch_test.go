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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name    string
		flags   Flags
		bins    int
		special []string
		want    []Channel
	}{
		{
			name:  "plain",
			flags: FlagNone,
			want: []Channel{
				{"R", AccumWeighted},
				{"G", AccumWeighted},
				{"B", AccumWeighted},
			},
		},
		{
			name:  "alpha",
			flags: FlagAlpha,
			want: []Channel{
				{"R", AccumWeighted},
				{"G", AccumWeighted},
				{"B", AccumWeighted},
				{"A", AccumWeighted},
			},
		},
		{
			name:  "spectral",
			flags: FlagSpectral,
			bins:  4,
			want: []Channel{
				{"S00", AccumWeighted},
				{"S01", AccumWeighted},
				{"S02", AccumWeighted},
				{"S03", AccumWeighted},
			},
		},
		{
			name:    "special",
			flags:   FlagSpecial,
			special: []string{"Visibility"},
			want: []Channel{
				{"R", AccumWeighted},
				{"G", AccumWeighted},
				{"B", AccumWeighted},
				{"Visibility", AccumRaw},
			},
		},
		{
			name:    "all",
			flags:   FlagAlpha | FlagSpectral | FlagSpecial,
			bins:    2,
			special: []string{"N", "Depth"},
			want: []Channel{
				{"S00", AccumWeighted},
				{"S01", AccumWeighted},
				{"A", AccumWeighted},
				{"N", AccumRaw},
				{"Depth", AccumRaw},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Layout(test.flags, test.bins, test.special)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(got, test.want); d != "" {
				t.Errorf("unexpected layout (-got +want):\n%s", d)
			}
		})
	}
}

func TestLayoutIndependent(t *testing.T) {
	// Adding one flag never removes channels contributed by another:
	// the dispatch checks are independent, not a mutually exclusive
	// switch.
	base, err := Layout(FlagSpectral, 8, nil)
	if err != nil {
		t.Fatal(err)
	}
	ext, err := Layout(FlagSpectral|FlagAlpha|FlagSpecial, 8, []string{"Var"})
	if err != nil {
		t.Fatal(err)
	}
	if len(ext) != len(base)+2 {
		t.Fatalf("got %d channels, want %d", len(ext), len(base)+2)
	}
	for i, ch := range base {
		if ext[i] != ch {
			t.Errorf("channel %d changed from %v to %v", i, ch, ext[i])
		}
	}
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name    string
		flags   Flags
		bins    int
		special []string
	}{
		{"spectral without bins", FlagSpectral, 0, nil},
		{"special without names", FlagSpecial, 0, nil},
		{"names without special", FlagNone, 0, []string{"X"}},
		{"duplicate names", FlagSpecial, 0, []string{"X", "X"}},
		{"empty name", FlagSpecial, 0, []string{""}},
		{"alpha collision", FlagAlpha | FlagSpecial, 0, []string{"A"}},
		{"reserved without alpha", FlagSpecial, 0, []string{"A"}},
		{"colour collision", FlagSpecial, 0, []string{"G"}},
		{"bin collision", FlagSpectral | FlagSpecial, 4, []string{"S01"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Layout(test.flags, test.bins, test.special)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLayoutUnknownBits(t *testing.T) {
	// Unknown flag bits are ignored rather than rejected.
	got, err := Layout(FlagAlpha|1<<9, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	want, err := Layout(FlagAlpha, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(got, want); d != "" {
		t.Errorf("unknown bits changed the layout (-got +want):\n%s", d)
	}
}
