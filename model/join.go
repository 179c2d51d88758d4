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

import (
	"errors"
	"fmt"
)

// ErrEmptyGroup is returned when an operation needs at least one room but
// got none.
var ErrEmptyGroup = errors.New("empty room group")

// JoinRooms fuses adjacent rooms into a single closed volume.
//
// Faces of different rooms which cover the same area with opposite
// orientation are interior partitions; both faces of every such pair are
// removed and all remaining faces form the boundary of the new room.  The
// faces of the result are copies, in the order of the input rooms, and keep
// their identifiers, types and sub-faces.  A single room is duplicated.
// In both cases, remaining Surface boundary conditions become Adiabatic,
// since the fused volume is an outer shell and never a partner of another
// room's face.
func JoinRooms(rooms []*Room, tol float64) (*Room, error) {
	if len(rooms) == 0 {
		return nil, ErrEmptyGroup
	}
	if len(rooms) == 1 {
		res := rooms[0].Duplicate()
		for _, f := range res.Faces {
			sealShellFace(f)
		}
		return res, nil
	}

	type entry struct {
		room int
		face *Face
	}
	var all []entry
	for i, r := range rooms {
		for _, f := range r.Faces {
			all = append(all, entry{i, f})
		}
	}

	removed := make([]bool, len(all))
	for i := range all {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(all); j++ {
			if removed[j] || all[i].room == all[j].room {
				continue
			}
			if all[i].face.Geometry.IsCoincident(all[j].face.Geometry, tol, true) {
				removed[i] = true
				removed[j] = true
				break
			}
		}
	}

	res := &Room{
		Identifier:  rooms[0].Identifier,
		DisplayName: rooms[0].Name(),
		Story:       rooms[0].Story,
	}
	for i, e := range all {
		if removed[i] {
			continue
		}
		f := e.face.Duplicate()
		sealShellFace(f)
		res.Faces = append(res.Faces, f)
	}
	if len(res.Faces) < 4 {
		return nil, fmt.Errorf("joining %d rooms: %w", len(rooms), ErrDegenerateRoom)
	}
	return res, nil
}

func sealShellFace(f *Face) {
	if f.Boundary.Kind == Surface {
		f.Boundary = BoundaryCondition{Kind: Adiabatic}
	}
}
