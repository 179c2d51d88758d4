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

// Units is the linear unit system of a model.
type Units string

// These are the supported unit systems.
const (
	Meters      Units = "Meters"
	Millimeters Units = "Millimeters"
	Centimeters Units = "Centimeters"
	Feet        Units = "Feet"
	Inches      Units = "Inches"
)

// ErrUnknownUnits is returned when a model uses an unsupported unit system.
var ErrUnknownUnits = errors.New("unknown unit system")

// ToMeters returns the length of one unit, in meters.
// The empty unit system is treated as meters.
func (u Units) ToMeters() (float64, error) {
	switch u {
	case Meters, "":
		return 1, nil
	case Millimeters:
		return 0.001, nil
	case Centimeters:
		return 0.01, nil
	case Feet:
		return 0.3048, nil
	case Inches:
		return 0.0254, nil
	}
	return 0, fmt.Errorf("%q: %w", string(u), ErrUnknownUnits)
}

// ConvertToUnits scales all geometry of the model, and its tolerance,
// to the given unit system.
func (m *Model) ConvertToUnits(target Units) error {
	if m.Units == target || m.Units == "" && target == Meters {
		m.Units = target
		return nil
	}
	from, err := m.Units.ToMeters()
	if err != nil {
		return err
	}
	to, err := target.ToMeters()
	if err != nil {
		return err
	}
	m.scale(from / to)
	m.Units = target
	return nil
}

func (m *Model) scale(factor float64) {
	var origin geometry.Vec3
	for _, r := range m.Rooms {
		for _, f := range r.Faces {
			f.Geometry = f.Geometry.Scale(factor, origin)
			for _, a := range f.Apertures {
				a.Geometry = a.Geometry.Scale(factor, origin)
			}
			for _, d := range f.Doors {
				d.Geometry = d.Geometry.Scale(factor, origin)
			}
		}
	}
	for _, s := range m.Shades {
		s.Geometry = s.Geometry.Scale(factor, origin)
	}
	for _, sm := range m.ShadeMeshes {
		for i, p := range sm.Vertices {
			sm.Vertices[i] = p.Mul(factor)
		}
	}
	m.Tolerance *= factor
}
