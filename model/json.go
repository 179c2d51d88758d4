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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"seehuhn.de/go/dsbxml/geometry"
)

// The types in this file mirror the JSON schema of HBJSON model files.
// Only the fields needed for geometry export are decoded.

type jsonModel struct {
	Identifier  string          `json:"identifier"`
	DisplayName string          `json:"display_name"`
	Units       string          `json:"units"`
	Tolerance   *float64        `json:"tolerance"`
	Rooms       []jsonRoom      `json:"rooms"`
	Shades      []jsonShade     `json:"orphaned_shades"`
	ShadeMeshes []jsonShadeMesh `json:"shade_meshes"`
}

type jsonRoom struct {
	Identifier  string     `json:"identifier"`
	DisplayName string     `json:"display_name"`
	Story       string     `json:"story"`
	Faces       []jsonFace `json:"faces"`
}

type jsonFace struct {
	Identifier  string        `json:"identifier"`
	DisplayName string        `json:"display_name"`
	FaceType    string        `json:"face_type"`
	Geometry    *jsonFace3D   `json:"geometry"`
	Boundary    jsonBoundary  `json:"boundary_condition"`
	Apertures   []jsonSubFace `json:"apertures"`
	Doors       []jsonSubFace `json:"doors"`
}

type jsonSubFace struct {
	Identifier  string      `json:"identifier"`
	DisplayName string      `json:"display_name"`
	Geometry    *jsonFace3D `json:"geometry"`
	IsOperable  bool        `json:"is_operable"`
	IsGlass     bool        `json:"is_glass"`
}

type jsonBoundary struct {
	Type    string   `json:"type"`
	Objects []string `json:"boundary_condition_objects"`
}

type jsonFace3D struct {
	Boundary [][]float64   `json:"boundary"`
	Holes    [][][]float64 `json:"holes"`
}

type jsonShade struct {
	Identifier  string      `json:"identifier"`
	DisplayName string      `json:"display_name"`
	Geometry    *jsonFace3D `json:"geometry"`
}

type jsonShadeMesh struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"display_name"`
	Geometry    *struct {
		Vertices [][]float64 `json:"vertices"`
		Faces    [][]int     `json:"faces"`
	} `json:"geometry"`
}

// DecodeError is returned when a model file is structurally invalid.
type DecodeError struct {
	Object string // identifier of the offending object
	Err    error
}

func (err *DecodeError) Error() string {
	return "model object " + err.Object + ": " + err.Err.Error()
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

var errMissingGeometry = errors.New("missing geometry")

// ReadFile reads a model from an HBJSON file.
func ReadFile(path string) (*Model, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Decode(fd)
}

// Decode reads a model in HBJSON format.  Missing units default to
// meters and a missing tolerance to 0.01.
func Decode(r io.Reader) (*Model, error) {
	var in jsonModel
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, err
	}

	m := &Model{
		Identifier:  in.Identifier,
		DisplayName: in.DisplayName,
		Units:       Units(in.Units),
		Tolerance:   0.01,
	}
	if m.Units == "" {
		m.Units = Meters
	}
	if _, err := m.Units.ToMeters(); err != nil {
		return nil, err
	}
	if in.Tolerance != nil && *in.Tolerance > 0 {
		m.Tolerance = *in.Tolerance
	}

	for _, jr := range in.Rooms {
		r := &Room{
			Identifier:  jr.Identifier,
			DisplayName: jr.DisplayName,
			Story:       jr.Story,
		}
		for _, jf := range jr.Faces {
			f, err := decodeFace(&jf)
			if err != nil {
				return nil, err
			}
			r.Faces = append(r.Faces, f)
		}
		m.Rooms = append(m.Rooms, r)
	}

	for _, js := range in.Shades {
		g, err := js.Geometry.decode(js.Identifier)
		if err != nil {
			return nil, err
		}
		m.Shades = append(m.Shades, &Shade{
			Identifier:  js.Identifier,
			DisplayName: js.DisplayName,
			Geometry:    g,
		})
	}

	for _, jm := range in.ShadeMeshes {
		if jm.Geometry == nil {
			return nil, &DecodeError{Object: jm.Identifier, Err: errMissingGeometry}
		}
		sm := &ShadeMesh{
			Identifier:  jm.Identifier,
			DisplayName: jm.DisplayName,
			Faces:       jm.Geometry.Faces,
		}
		for _, p := range jm.Geometry.Vertices {
			v, err := decodePoint(jm.Identifier, p)
			if err != nil {
				return nil, err
			}
			sm.Vertices = append(sm.Vertices, v)
		}
		m.ShadeMeshes = append(m.ShadeMeshes, sm)
	}

	return m, nil
}

func decodeFace(jf *jsonFace) (*Face, error) {
	tp, err := ParseFaceType(jf.FaceType)
	if err != nil {
		return nil, &DecodeError{Object: jf.Identifier, Err: err}
	}
	g, err := jf.Geometry.decode(jf.Identifier)
	if err != nil {
		return nil, err
	}
	f := &Face{
		Identifier:  jf.Identifier,
		DisplayName: jf.DisplayName,
		Type:        tp,
		Geometry:    g,
	}

	switch jf.Boundary.Type {
	case "", "Outdoors":
		f.Boundary.Kind = Outdoors
	case "Ground":
		f.Boundary.Kind = Ground
	case "Adiabatic":
		f.Boundary.Kind = Adiabatic
	case "Surface":
		if len(jf.Boundary.Objects) < 2 {
			return nil, &DecodeError{
				Object: jf.Identifier,
				Err:    errors.New("incomplete Surface boundary condition"),
			}
		}
		f.Boundary = BoundaryCondition{
			Kind:         Surface,
			AdjacentFace: jf.Boundary.Objects[0],
			AdjacentRoom: jf.Boundary.Objects[len(jf.Boundary.Objects)-1],
		}
	default:
		// other boundary conditions behave like outdoors for geometry
		f.Boundary.Kind = Outdoors
	}

	for _, ja := range jf.Apertures {
		g, err := ja.Geometry.decode(ja.Identifier)
		if err != nil {
			return nil, err
		}
		f.Apertures = append(f.Apertures, &Aperture{
			Identifier:  ja.Identifier,
			DisplayName: ja.DisplayName,
			Geometry:    g,
			Operable:    ja.IsOperable,
		})
	}
	for _, jd := range jf.Doors {
		g, err := jd.Geometry.decode(jd.Identifier)
		if err != nil {
			return nil, err
		}
		f.Doors = append(f.Doors, &Door{
			Identifier:  jd.Identifier,
			DisplayName: jd.DisplayName,
			Geometry:    g,
			IsGlass:     jd.IsGlass,
		})
	}
	return f, nil
}

func (g *jsonFace3D) decode(id string) (geometry.Face3D, error) {
	if g == nil || len(g.Boundary) < 3 {
		return geometry.Face3D{}, &DecodeError{Object: id, Err: errMissingGeometry}
	}
	ring := func(pts [][]float64) ([]geometry.Vec3, error) {
		res := make([]geometry.Vec3, len(pts))
		for i, p := range pts {
			v, err := decodePoint(id, p)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	}

	var res geometry.Face3D
	var err error
	res.Boundary, err = ring(g.Boundary)
	if err != nil {
		return res, err
	}
	for _, h := range g.Holes {
		hole, err := ring(h)
		if err != nil {
			return res, err
		}
		res.Holes = append(res.Holes, hole)
	}
	return res, nil
}

func decodePoint(id string, p []float64) (geometry.Vec3, error) {
	if len(p) != 3 {
		return geometry.Vec3{}, &DecodeError{
			Object: id,
			Err:    fmt.Errorf("point with %d coordinates", len(p)),
		}
	}
	return geometry.Vec3{X: p[0], Y: p[1], Z: p[2]}, nil
}

// WriteFile writes a model to an HBJSON file.
func WriteFile(path string, m *Model) error {
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	err = Encode(fd, m)
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// Encode writes a model in HBJSON format.  Only the fields read by
// [Decode] are written.
func Encode(w io.Writer, m *Model) error {
	tol := m.Tolerance
	out := &jsonModel{
		Identifier:  m.Identifier,
		DisplayName: m.DisplayName,
		Units:       string(m.Units),
		Tolerance:   &tol,
	}
	for _, r := range m.Rooms {
		jr := jsonRoom{
			Identifier:  r.Identifier,
			DisplayName: r.DisplayName,
			Story:       r.Story,
		}
		for _, f := range r.Faces {
			jr.Faces = append(jr.Faces, encodeFace(f))
		}
		out.Rooms = append(out.Rooms, jr)
	}
	for _, s := range m.Shades {
		out.Shades = append(out.Shades, jsonShade{
			Identifier:  s.Identifier,
			DisplayName: s.DisplayName,
			Geometry:    encodeFace3D(s.Geometry),
		})
	}
	for _, sm := range m.ShadeMeshes {
		jm := jsonShadeMesh{
			Identifier:  sm.Identifier,
			DisplayName: sm.DisplayName,
		}
		jm.Geometry = &struct {
			Vertices [][]float64 `json:"vertices"`
			Faces    [][]int     `json:"faces"`
		}{
			Vertices: encodeRing(sm.Vertices),
			Faces:    sm.Faces,
		}
		out.ShadeMeshes = append(out.ShadeMeshes, jm)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func encodeFace(f *Face) jsonFace {
	jf := jsonFace{
		Identifier:  f.Identifier,
		DisplayName: f.DisplayName,
		FaceType:    f.Type.String(),
		Geometry:    encodeFace3D(f.Geometry),
		Boundary:    jsonBoundary{Type: f.Boundary.Kind.String()},
	}
	if f.Boundary.Kind == Surface {
		jf.Boundary.Objects = []string{f.Boundary.AdjacentFace, f.Boundary.AdjacentRoom}
	}
	for _, a := range f.Apertures {
		jf.Apertures = append(jf.Apertures, jsonSubFace{
			Identifier:  a.Identifier,
			DisplayName: a.DisplayName,
			Geometry:    encodeFace3D(a.Geometry),
			IsOperable:  a.Operable,
		})
	}
	for _, d := range f.Doors {
		jf.Doors = append(jf.Doors, jsonSubFace{
			Identifier:  d.Identifier,
			DisplayName: d.DisplayName,
			Geometry:    encodeFace3D(d.Geometry),
			IsGlass:     d.IsGlass,
		})
	}
	return jf
}

func encodeFace3D(g geometry.Face3D) *jsonFace3D {
	res := &jsonFace3D{Boundary: encodeRing(g.Boundary)}
	for _, h := range g.Holes {
		res.Holes = append(res.Holes, encodeRing(h))
	}
	return res
}

func encodeRing(ring []geometry.Vec3) [][]float64 {
	res := make([][]float64, len(ring))
	for i, p := range ring {
		res[i] = []float64{p.X, p.Y, p.Z}
	}
	return res
}
