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

package model

import "strconv"

func itoa(i int) string {
	return strconv.Itoa(i)
}

// ResetIDsToIntegers replaces the identifiers of all rooms, faces,
// apertures, doors and shades by consecutive integers, starting at start.
// Rooms are numbered first, each followed by its faces, and every face by
// its apertures and doors.  Shades come last.  Boundary conditions are
// updated to the new identifiers, and objects without a display name keep
// their old identifier as display name.
//
// The last integer assigned is returned.  If the model is empty, the
// result is start-1.
func (m *Model) ResetIDsToIntegers(start int) int {
	next := start
	issue := func(id, name *string) {
		if *name == "" {
			*name = *id
		}
		*id = itoa(next)
		next++
	}

	roomMap := map[string]string{}
	faceMap := map[string]string{}
	for _, r := range m.Rooms {
		old := r.Identifier
		issue(&r.Identifier, &r.DisplayName)
		roomMap[old] = r.Identifier
		for _, f := range r.Faces {
			old := f.Identifier
			issue(&f.Identifier, &f.DisplayName)
			faceMap[old] = f.Identifier
			for _, a := range f.Apertures {
				issue(&a.Identifier, &a.DisplayName)
			}
			for _, d := range f.Doors {
				issue(&d.Identifier, &d.DisplayName)
			}
		}
	}
	for _, s := range m.Shades {
		issue(&s.Identifier, &s.DisplayName)
	}

	for _, r := range m.Rooms {
		for _, f := range r.Faces {
			bc := &f.Boundary
			if bc.Kind != Surface {
				continue
			}
			if id, ok := faceMap[bc.AdjacentFace]; ok {
				bc.AdjacentFace = id
			}
			if id, ok := roomMap[bc.AdjacentRoom]; ok {
				bc.AdjacentRoom = id
			}
		}
	}

	return next - 1
}
