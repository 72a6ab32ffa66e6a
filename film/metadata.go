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

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"
)

// renderMetadata builds the XMP packet attached to developed images.
func renderMetadata(f Film) *xmp.Packet {
	packet := xmp.NewPacket()

	b := f.Bounds()
	var chNames []string
	for _, ch := range f.Channels() {
		chNames = append(chNames, ch.Name)
	}

	dc := &xmp.DublinCore{}
	dc.Creator.Append(xmp.NewProperName("seehuhn.de/go/trace"))
	dc.Title.Set(language.Und,
		fmt.Sprintf("%dx%d render, capabilities %s, channels %v",
			b.Dx(), b.Dy(), f.Flags(), chNames))

	// packet.Set only fails for unregistered models; DublinCore is
	// part of the xmp package itself.
	_ = packet.Set(dc)

	return packet
}
