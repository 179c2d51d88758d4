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
	"fmt"
	"math"

	"seehuhn.de/go/dsbxml/geometry"
)

// Room is a closed polyhedral volume bounded by planar faces.
// Face normals point out of the room.
type Room struct {
	Identifier  string
	DisplayName string
	Story       string
	Faces       []*Face
}

// Name returns the display name of the room, or the identifier if no
// display name is set.
func (r *Room) Name() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.Identifier
}

// NewBox creates a rectangular room with the given width (x), depth (y)
// and height (z), with its lower corner at origin.
//
// The faces are, in order: floor, south wall (y=0), east wall, north wall,
// west wall and roof.  The floor has a ground boundary condition, all other
// faces are outdoors.
func NewBox(identifier string, width, depth, height float64, origin geometry.Vec3) *Room {
	p := func(x, y, z float64) geometry.Vec3 {
		return origin.Add(geometry.Vec3{X: x, Y: y, Z: z})
	}
	w, d, h := width, depth, height
	rings := [][]geometry.Vec3{
		{p(0, 0, 0), p(0, d, 0), p(w, d, 0), p(w, 0, 0)},
		{p(0, 0, 0), p(w, 0, 0), p(w, 0, h), p(0, 0, h)},
		{p(w, 0, 0), p(w, d, 0), p(w, d, h), p(w, 0, h)},
		{p(w, d, 0), p(0, d, 0), p(0, d, h), p(w, d, h)},
		{p(0, d, 0), p(0, 0, 0), p(0, 0, h), p(0, d, h)},
		{p(0, 0, h), p(w, 0, h), p(w, d, h), p(0, d, h)},
	}
	names := []string{"Bottom", "Front", "Right", "Back", "Left", "Top"}
	types := []FaceType{Floor, Wall, Wall, Wall, Wall, RoofCeiling}

	room := &Room{Identifier: identifier, DisplayName: identifier}
	for i, ring := range rings {
		f := &Face{
			Identifier:  fmt.Sprintf("%s..Face%d", identifier, i+1),
			DisplayName: names[i],
			Type:        types[i],
			Geometry:    geometry.Face3D{Boundary: ring},
		}
		if f.Type == Floor {
			f.Boundary.Kind = Ground
		}
		room.Faces = append(room.Faces, f)
	}
	return room
}

// Duplicate returns a deep copy of the room.
func (r *Room) Duplicate() *Room {
	res := &Room{
		Identifier:  r.Identifier,
		DisplayName: r.DisplayName,
		Story:       r.Story,
	}
	for _, f := range r.Faces {
		res.Faces = append(res.Faces, f.Duplicate())
	}
	return res
}

// Duplicate returns a deep copy of the face, including its apertures and
// doors.
func (f *Face) Duplicate() *Face {
	res := &Face{
		Identifier:  f.Identifier,
		DisplayName: f.DisplayName,
		Type:        f.Type,
		Geometry:    f.Geometry.Duplicate(),
		Boundary:    f.Boundary,
	}
	for _, a := range f.Apertures {
		res.Apertures = append(res.Apertures, &Aperture{
			Identifier:  a.Identifier,
			DisplayName: a.DisplayName,
			Geometry:    a.Geometry.Duplicate(),
			Operable:    a.Operable,
		})
	}
	for _, d := range f.Doors {
		res.Doors = append(res.Doors, &Door{
			Identifier:  d.Identifier,
			DisplayName: d.DisplayName,
			Geometry:    d.Geometry.Duplicate(),
			IsGlass:     d.IsGlass,
		})
	}
	return res
}

// RemoveSubFaces removes all apertures and doors from the face.
func (f *Face) RemoveSubFaces() {
	f.Apertures = nil
	f.Doors = nil
}

// AperturesByRatio replaces the apertures of the face by a single
// aperture, which is the face boundary scaled about its center so that
// the aperture covers the given fraction of the face area.
func (f *Face) AperturesByRatio(ratio, tol float64) error {
	if ratio <= 0 || ratio >= 1 {
		return fmt.Errorf("face %s: aperture ratio %g out of range", f.Identifier, ratio)
	}
	if len(f.Geometry.Holes) > 0 {
		return fmt.Errorf("face %s: cannot place apertures on a face with holes", f.Identifier)
	}
	if f.Geometry.Area() <= tol*tol {
		return fmt.Errorf("face %s: face too small for apertures", f.Identifier)
	}
	g := f.Geometry.Scale(math.Sqrt(ratio), f.Geometry.Center())
	f.Apertures = []*Aperture{{
		Identifier:  f.Identifier + "_Glz0",
		DisplayName: f.Name() + "_Glz0",
		Geometry:    geometry.Face3D{Boundary: g.Boundary},
	}}
	return nil
}

// Min returns the lower corner of the bounding box of the room.
func (r *Room) Min() geometry.Vec3 {
	return r.corner(math.Min)
}

// Max returns the upper corner of the bounding box of the room.
func (r *Room) Max() geometry.Vec3 {
	return r.corner(math.Max)
}

func (r *Room) corner(pick func(a, b float64) float64) geometry.Vec3 {
	var res geometry.Vec3
	first := true
	for _, f := range r.Faces {
		for _, p := range f.Geometry.Boundary {
			if first {
				res = p
				first = false
				continue
			}
			res.X = pick(res.X, p.X)
			res.Y = pick(res.Y, p.Y)
			res.Z = pick(res.Z, p.Z)
		}
	}
	return res
}

// Height returns the vertical extent of the room.
func (r *Room) Height() float64 {
	return r.Max().Z - r.Min().Z
}

// Volume returns the enclosed volume of the room.
func (r *Room) Volume() float64 {
	var v float64
	for _, f := range r.Faces {
		if len(f.Geometry.Boundary) == 0 {
			continue
		}
		v += f.Geometry.Boundary[0].Dot(f.Geometry.AreaVector())
	}
	return math.Abs(v) / 6
}

// Polyface returns the vertices of the room together with the vertex
// indices of every face.
//
// The vertex list is the concatenation of the face vertex lists, so the
// indices of every face form a contiguous range.  For each face, the first
// index group is the boundary, followed by one group per hole.
func (r *Room) Polyface() ([]geometry.Vec3, [][][]int) {
	var verts []geometry.Vec3
	groups := make([][][]int, len(r.Faces))
	for i, f := range r.Faces {
		rings := append([][]geometry.Vec3{f.Geometry.Boundary}, f.Geometry.Holes...)
		for _, ring := range rings {
			idx := make([]int, len(ring))
			for k := range ring {
				idx[k] = len(verts) + k
			}
			verts = append(verts, ring...)
			groups[i] = append(groups[i], idx)
		}
	}
	return verts, groups
}

// IsExtrusion reports whether the room is a vertical extrusion of a single
// floor plan: all faces are vertical or horizontal, downward facing faces
// lie at the bottom of the room and upward facing faces at the top.
func (r *Room) IsExtrusion(tol, angTol float64) bool {
	lo, hi := r.Min().Z, r.Max().Z
	var hasFloor, hasRoof bool
	for _, f := range r.Faces {
		g := f.Geometry
		switch {
		case g.IsVertical(angTol):
			// walls are allowed anywhere
		case g.IsHorizontal(angTol):
			z := g.Center().Z
			if g.Normal().Z < 0 {
				if math.Abs(z-lo) > tol {
					return false
				}
				hasFloor = true
			} else {
				if math.Abs(z-hi) > tol {
					return false
				}
				hasRoof = true
			}
		default:
			return false
		}
	}
	return hasFloor && hasRoof
}

// FloorFaces returns the faces of the room which face downwards.
func (r *Room) FloorFaces(angTol float64) []*Face {
	var res []*Face
	for _, f := range r.Faces {
		if f.Geometry.IsHorizontal(angTol) && f.Geometry.Normal().Z < 0 {
			res = append(res, f)
		}
	}
	return res
}
