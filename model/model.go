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

// Package model describes building geometry models: rooms enclosed by
// planar faces, the apertures and doors set into these faces, and context
// shading.
//
// The package also provides the model-level operations needed before a
// model can be exported: unit conversion, removal of degenerate geometry,
// story assignment, identifier rewriting, grouping of rooms by story and
// adjacency, joining adjacent rooms into one volume, and computing the
// horizontal perimeter of a group of rooms.
package model

import (
	"errors"

	"seehuhn.de/go/dsbxml/geometry"
)

// FaceType classifies the faces of a room.
type FaceType int

// These are the supported face types.
const (
	Wall FaceType = iota
	Floor
	RoofCeiling
	AirBoundary
)

func (t FaceType) String() string {
	switch t {
	case Wall:
		return "Wall"
	case Floor:
		return "Floor"
	case RoofCeiling:
		return "RoofCeiling"
	case AirBoundary:
		return "AirBoundary"
	default:
		return "FaceType(?)"
	}
}

// ParseFaceType converts the textual name of a face type.
func ParseFaceType(s string) (FaceType, error) {
	switch s {
	case "Wall":
		return Wall, nil
	case "Floor":
		return Floor, nil
	case "RoofCeiling", "Roof", "Ceiling":
		return RoofCeiling, nil
	case "AirBoundary":
		return AirBoundary, nil
	}
	return 0, errors.New("unknown face type " + s)
}

// BoundaryKind describes what lies on the other side of a face.
type BoundaryKind int

// These are the supported boundary conditions.
const (
	Outdoors BoundaryKind = iota
	Ground
	Adiabatic
	Surface
)

func (k BoundaryKind) String() string {
	switch k {
	case Outdoors:
		return "Outdoors"
	case Ground:
		return "Ground"
	case Adiabatic:
		return "Adiabatic"
	case Surface:
		return "Surface"
	default:
		return "BoundaryKind(?)"
	}
}

// BoundaryCondition describes the boundary condition of a face.
// For Kind == Surface, AdjacentFace and AdjacentRoom give the identifiers
// of the face on the other side of the partition and of its room.
type BoundaryCondition struct {
	Kind         BoundaryKind
	AdjacentFace string
	AdjacentRoom string
}

// Aperture is a window set into a face.
type Aperture struct {
	Identifier  string
	DisplayName string
	Geometry    geometry.Face3D
	Operable    bool
}

// Door is a door set into a face.
type Door struct {
	Identifier  string
	DisplayName string
	Geometry    geometry.Face3D
	IsGlass     bool
}

// Face is one planar face of a room.
type Face struct {
	Identifier  string
	DisplayName string
	Type        FaceType
	Geometry    geometry.Face3D
	Boundary    BoundaryCondition
	Apertures   []*Aperture
	Doors       []*Door
}

// Name returns the display name of the face, or the identifier if no
// display name is set.
func (f *Face) Name() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	return f.Identifier
}

// Shade is a context shading surface.
type Shade struct {
	Identifier  string
	DisplayName string
	Geometry    geometry.Face3D
}

// ShadeMesh is a context shading object given as a polygon mesh.
type ShadeMesh struct {
	Identifier  string
	DisplayName string
	Vertices    []geometry.Vec3
	Faces       [][]int
}

// Model is a building model.
type Model struct {
	Identifier  string
	DisplayName string
	Units       Units
	Tolerance   float64

	Rooms       []*Room
	Shades      []*Shade
	ShadeMeshes []*ShadeMesh
}

// Stories returns the story names used by the rooms of the model,
// in order of first appearance.
func (m *Model) Stories() []string {
	var res []string
	seen := map[string]bool{}
	for _, r := range m.Rooms {
		if r.Story == "" || seen[r.Story] {
			continue
		}
		seen[r.Story] = true
		res = append(res, r.Story)
	}
	return res
}

// Name returns the display name of the model, or the identifier if no
// display name is set.
func (m *Model) Name() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Identifier
}

// Duplicate returns a deep copy of the model.
func (m *Model) Duplicate() *Model {
	res := &Model{
		Identifier:  m.Identifier,
		DisplayName: m.DisplayName,
		Units:       m.Units,
		Tolerance:   m.Tolerance,
	}
	for _, r := range m.Rooms {
		res.Rooms = append(res.Rooms, r.Duplicate())
	}
	for _, s := range m.Shades {
		res.Shades = append(res.Shades, &Shade{
			Identifier:  s.Identifier,
			DisplayName: s.DisplayName,
			Geometry:    s.Geometry.Duplicate(),
		})
	}
	for _, sm := range m.ShadeMeshes {
		c := &ShadeMesh{
			Identifier:  sm.Identifier,
			DisplayName: sm.DisplayName,
			Vertices:    append([]geometry.Vec3(nil), sm.Vertices...),
		}
		for _, f := range sm.Faces {
			c.Faces = append(c.Faces, append([]int(nil), f...))
		}
		res.ShadeMeshes = append(res.ShadeMeshes, c)
	}
	return res
}

// ShadeMeshesToShades converts every face of every shade mesh into a
// separate Shade.  Afterwards the model has no shade meshes.
func (m *Model) ShadeMeshesToShades() {
	for _, sm := range m.ShadeMeshes {
		for i, idx := range sm.Faces {
			pts := make([]geometry.Vec3, 0, len(idx))
			for _, k := range idx {
				if k >= 0 && k < len(sm.Vertices) {
					pts = append(pts, sm.Vertices[k])
				}
			}
			if len(pts) < 3 {
				continue
			}
			name := sm.DisplayName
			if name == "" {
				name = sm.Identifier
			}
			m.Shades = append(m.Shades, &Shade{
				Identifier:  sm.Identifier + "_" + itoa(i),
				DisplayName: name + "_" + itoa(i),
				Geometry:    geometry.Face3D{Boundary: pts},
			})
		}
	}
	m.ShadeMeshes = nil
}
