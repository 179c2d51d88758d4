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

// GroupByAdjacency splits rooms into groups which are connected through
// faces with a Surface boundary condition.  Groups are ordered by their
// first member in rooms, and each group lists its members in input order.
// References to rooms outside the list are ignored.
func GroupByAdjacency(rooms []*Room) [][]*Room {
	index := make(map[string]int, len(rooms))
	for i, r := range rooms {
		index[r.Identifier] = i
	}

	parent := make([]int, len(rooms))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	for i, r := range rooms {
		for _, f := range r.Faces {
			if f.Boundary.Kind != Surface {
				continue
			}
			j, ok := index[f.Boundary.AdjacentRoom]
			if !ok {
				continue
			}
			a, b := find(i), find(j)
			if a == b {
				continue
			}
			if a < b {
				parent[b] = a
			} else {
				parent[a] = b
			}
		}
	}

	var groups [][]*Room
	pos := map[int]int{}
	for i, r := range rooms {
		root := find(i)
		k, ok := pos[root]
		if !ok {
			k = len(groups)
			pos[root] = k
			groups = append(groups, nil)
		}
		groups[k] = append(groups[k], r)
	}
	return groups
}

// SolveAdjacency finds pairs of faces in different rooms which cover the
// same area with opposite orientation, and sets their boundary conditions
// to reference each other.  Faces which already have a Surface boundary
// condition are left alone.  The number of matched pairs is returned.
func SolveAdjacency(rooms []*Room, tol float64) int {
	count := 0
	for i, r1 := range rooms {
		for _, f1 := range r1.Faces {
			if f1.Boundary.Kind == Surface {
				continue
			}
		search:
			for _, r2 := range rooms[i+1:] {
				for _, f2 := range r2.Faces {
					if f2.Boundary.Kind == Surface {
						continue
					}
					if !f1.Geometry.IsCoincident(f2.Geometry, tol, true) {
						continue
					}
					f1.Boundary = BoundaryCondition{
						Kind:         Surface,
						AdjacentFace: f2.Identifier,
						AdjacentRoom: r2.Identifier,
					}
					f2.Boundary = BoundaryCondition{
						Kind:         Surface,
						AdjacentFace: f1.Identifier,
						AdjacentRoom: r1.Identifier,
					}
					count++
					break search
				}
			}
		}
	}
	return count
}
