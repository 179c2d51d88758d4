// seehuhn.de/go/dsbxml - convert building models to DesignBuilder XML
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

// Package dsbxml converts building models into DesignBuilder XML
// ("DsbXML") documents.
//
// A model consists of rooms, each bounded by planar faces which may carry
// apertures and doors.  [Build] groups the rooms of a model into building
// blocks, by story and then by adjacency, and writes one Zone per room.
// Every block additionally carries a shell: the member rooms joined into a
// single volume, whose surfaces reference the zone surfaces they envelop.
//
// Objects in a DsbXML document are identified by integer handles.  The
// building has handle 0 and blocks are numbered from 1.  Rooms and faces
// use their model identifiers, which are rewritten to integers during the
// conversion, and all other objects get handles from an [Allocator].
//
// A typical use looks as follows:
//
//	m, err := model.ReadFile("house.hbjson")
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc, err := dsbxml.Build(m, &dsbxml.Options{ProgramName: "my tool"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	_, err = doc.WriteTo(out)
//
// Documents are written as ISO 8859-1, since this is what DesignBuilder
// reads, while the XML declaration states UTF-8.
package dsbxml
