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

	"seehuhn.de/go/dsbxml/geometry"
)

// ErrDegenerateRoom is returned when a room no longer encloses a volume
// after its degenerate faces have been removed.
var ErrDegenerateRoom = errors.New("degenerate room")

// RemoveDegenerateGeometry removes duplicate and collinear vertices from
// all faces, apertures, doors and shades of the model.  Sub-faces and
// shades which collapse are dropped.  Faces which collapse are removed
// from their room; if a room is left with fewer than four faces, an error
// wrapping ErrDegenerateRoom is returned and the model is left partially
// cleaned.
func (m *Model) RemoveDegenerateGeometry(tol float64) error {
	for _, r := range m.Rooms {
		if err := r.removeDegenerateGeometry(tol); err != nil {
			return err
		}
	}

	shades := m.Shades[:0]
	for _, s := range m.Shades {
		g, err := s.Geometry.RemoveColinearVertices(tol)
		if err != nil {
			continue
		}
		s.Geometry = g
		shades = append(shades, s)
	}
	m.Shades = shades
	return nil
}

func (r *Room) removeDegenerateGeometry(tol float64) error {
	faces := r.Faces[:0]
	for _, f := range r.Faces {
		g, err := f.Geometry.RemoveColinearVertices(tol)
		if errors.Is(err, geometry.ErrDegenerate) {
			continue
		} else if err != nil {
			return err
		}
		f.Geometry = g

		apertures := f.Apertures[:0]
		for _, a := range f.Apertures {
			if g, err := a.Geometry.RemoveColinearVertices(tol); err == nil {
				a.Geometry = g
				apertures = append(apertures, a)
			}
		}
		f.Apertures = apertures

		doors := f.Doors[:0]
		for _, d := range f.Doors {
			if g, err := d.Geometry.RemoveColinearVertices(tol); err == nil {
				d.Geometry = g
				doors = append(doors, d)
			}
		}
		f.Doors = doors

		faces = append(faces, f)
	}
	r.Faces = faces
	if len(r.Faces) < 4 {
		return fmt.Errorf("room %s: %w", r.Identifier, ErrDegenerateRoom)
	}
	return nil
}
