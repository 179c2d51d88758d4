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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/dsbxml/geometry"
)

// twoBoxes returns two 5x10x3 rooms which share the wall at x=5.
func twoBoxes() []*Room {
	a := NewBox("A", 5, 10, 3, geometry.Vec3{})
	b := NewBox("B", 5, 10, 3, geometry.Vec3{X: 5})
	return []*Room{a, b}
}

func TestBoxVolume(t *testing.T) {
	r := NewBox("Tiny_House_Zone", 5, 10, 3, geometry.Vec3{})
	if len(r.Faces) != 6 {
		t.Fatalf("got %d faces, want 6", len(r.Faces))
	}
	if v := r.Volume(); math.Abs(v-150) > 1e-9 {
		t.Errorf("volume = %g, want 150", v)
	}
	if h := r.Height(); h != 3 {
		t.Errorf("height = %g, want 3", h)
	}
	for _, f := range r.Faces {
		c := f.Geometry.Center()
		n := f.Geometry.Normal()
		mid := geometry.Vec3{X: 2.5, Y: 5, Z: 1.5}
		if c.Sub(mid).Dot(n) <= 0 {
			t.Errorf("face %s points inwards", f.Identifier)
		}
	}
	if !r.IsExtrusion(0.01, 1) {
		t.Error("box is not recognised as an extrusion")
	}
}

func TestIsExtrusionPitched(t *testing.T) {
	r := NewBox("R", 4, 4, 3, geometry.Vec3{})
	roof := r.Faces[5]
	roof.Geometry.Boundary[2].Z = 4
	roof.Geometry.Boundary[3].Z = 4
	if r.IsExtrusion(0.01, 1) {
		t.Error("room with a pitched roof reported as extrusion")
	}
}

func TestPolyface(t *testing.T) {
	r := NewBox("R", 1, 1, 1, geometry.Vec3{})
	r.Faces[1].Geometry.Holes = [][]geometry.Vec3{{
		{X: 0.2, Z: 0.2}, {X: 0.4, Z: 0.2}, {X: 0.4, Z: 0.4}, {X: 0.2, Z: 0.4},
	}}
	verts, groups := r.Polyface()
	if len(verts) != 28 {
		t.Errorf("got %d vertices, want 28", len(verts))
	}
	want := [][]int{{4, 5, 6, 7}, {8, 9, 10, 11}}
	if d := cmp.Diff(groups[1], want); d != "" {
		t.Errorf("wrong index groups (-got +want):\n%s", d)
	}
	if d := cmp.Diff(groups[2], [][]int{{12, 13, 14, 15}}); d != "" {
		t.Errorf("indices after hole (-got +want):\n%s", d)
	}
}

func TestConvertToUnits(t *testing.T) {
	r := NewBox("R", 5000, 10000, 3000, geometry.Vec3{})
	m := &Model{Identifier: "M", Units: Millimeters, Tolerance: 10, Rooms: []*Room{r}}
	if err := m.ConvertToUnits(Meters); err != nil {
		t.Fatal(err)
	}
	if m.Units != Meters {
		t.Errorf("units = %s", m.Units)
	}
	if math.Abs(m.Tolerance-0.01) > 1e-12 {
		t.Errorf("tolerance = %g, want 0.01", m.Tolerance)
	}
	if v := r.Volume(); math.Abs(v-150) > 1e-6 {
		t.Errorf("volume = %g, want 150", v)
	}

	m.Units = "Furlongs"
	if err := m.ConvertToUnits(Meters); !errors.Is(err, ErrUnknownUnits) {
		t.Errorf("got %v, want ErrUnknownUnits", err)
	}
}

func TestRemoveDegenerateGeometry(t *testing.T) {
	r := NewBox("R", 5, 10, 3, geometry.Vec3{})
	f := r.Faces[1]
	f.Geometry.Boundary = append(f.Geometry.Boundary[:1:1],
		geometry.Vec3{X: 2.5}, f.Geometry.Boundary[1],
		f.Geometry.Boundary[2], f.Geometry.Boundary[3])
	m := &Model{Rooms: []*Room{r}}
	if err := m.RemoveDegenerateGeometry(0.01); err != nil {
		t.Fatal(err)
	}
	if n := len(r.Faces[1].Geometry.Boundary); n != 4 {
		t.Errorf("collinear vertex kept: %d vertices", n)
	}

	// a room scaled down to millimetres collapses entirely
	tiny := NewBox("T", 0.005, 0.005, 0.005, geometry.Vec3{})
	m = &Model{Rooms: []*Room{tiny}}
	err := m.RemoveDegenerateGeometry(0.01)
	if !errors.Is(err, ErrDegenerateRoom) {
		t.Errorf("got %v, want ErrDegenerateRoom", err)
	}
}

func TestAssignStories(t *testing.T) {
	m := &Model{Rooms: []*Room{
		NewBox("up", 5, 5, 3, geometry.Vec3{Z: 3}),
		NewBox("ground1", 5, 5, 3, geometry.Vec3{}),
		NewBox("ground2", 5, 5, 3, geometry.Vec3{X: 5, Z: 0.5}),
	}}
	names := m.AssignStoriesByFloorHeight(2)
	if d := cmp.Diff(names, []string{"Floor1", "Floor2"}); d != "" {
		t.Errorf("wrong story names (-got +want):\n%s", d)
	}
	var got []string
	for _, r := range m.Rooms {
		got = append(got, r.Story)
	}
	if d := cmp.Diff(got, []string{"Floor2", "Floor1", "Floor1"}); d != "" {
		t.Errorf("wrong stories (-got +want):\n%s", d)
	}
	if d := cmp.Diff(m.Stories(), []string{"Floor2", "Floor1"}); d != "" {
		t.Errorf("wrong model stories (-got +want):\n%s", d)
	}

	groups, story, none := GroupByStory(m.Rooms)
	if len(groups) != 2 || len(groups[1]) != 2 || len(none) != 0 {
		t.Errorf("unexpected grouping %v %v %v", groups, story, none)
	}
}

func TestAdjacency(t *testing.T) {
	rooms := twoBoxes()
	rooms = append(rooms, NewBox("C", 5, 10, 3, geometry.Vec3{X: 20}))

	if groups := GroupByAdjacency(rooms); len(groups) != 3 {
		t.Errorf("before solving: %d groups, want 3", len(groups))
	}
	if n := SolveAdjacency(rooms, 0.01); n != 1 {
		t.Errorf("SolveAdjacency found %d pairs, want 1", n)
	}

	east := rooms[0].Faces[2]
	want := BoundaryCondition{Kind: Surface, AdjacentFace: "B..Face5", AdjacentRoom: "B"}
	if d := cmp.Diff(east.Boundary, want); d != "" {
		t.Errorf("wrong boundary condition (-got +want):\n%s", d)
	}

	groups := GroupByAdjacency(rooms)
	if len(groups) != 2 || len(groups[0]) != 2 || groups[1][0].Identifier != "C" {
		t.Errorf("unexpected groups %v", groups)
	}
}

func TestJoinRooms(t *testing.T) {
	rooms := twoBoxes()
	SolveAdjacency(rooms, 0.01)

	joined, err := JoinRooms(rooms, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if len(joined.Faces) != 10 {
		t.Errorf("got %d faces, want 10", len(joined.Faces))
	}
	if v := joined.Volume(); math.Abs(v-300) > 1e-9 {
		t.Errorf("volume = %g, want 300", v)
	}
	for _, f := range joined.Faces {
		if f.Boundary.Kind == Surface {
			t.Errorf("face %s still references a neighbour", f.Identifier)
		}
	}

	// the input must not be modified
	if rooms[0].Faces[2].Boundary.Kind != Surface {
		t.Error("JoinRooms modified its input")
	}

	if _, err := JoinRooms(nil, 0.01); !errors.Is(err, ErrEmptyGroup) {
		t.Errorf("got %v, want ErrEmptyGroup", err)
	}
}

func TestJoinSingleRoom(t *testing.T) {
	lower := NewBox("Lower", 5, 5, 3, geometry.Vec3{})
	upper := NewBox("Upper", 5, 5, 3, geometry.Vec3{Z: 3})
	if n := SolveAdjacency([]*Room{lower, upper}, 0.01); n != 1 {
		t.Fatalf("found %d adjacencies, want 1", n)
	}

	joined, err := JoinRooms([]*Room{lower}, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if len(joined.Faces) != 6 {
		t.Fatalf("got %d faces, want 6", len(joined.Faces))
	}
	var roofs int
	for i, f := range joined.Faces {
		if f.Geometry.Normal().Z < 0.99 {
			continue
		}
		roofs++
		if d := cmp.Diff(f.Boundary, BoundaryCondition{Kind: Adiabatic}); d != "" {
			t.Errorf("roof boundary (-got +want):\n%s", d)
		}
		if lower.Faces[i].Boundary.Kind != Surface {
			t.Error("JoinRooms modified its input")
		}
	}
	if roofs != 1 {
		t.Errorf("found %d roofs, want 1", roofs)
	}
}

func TestResetIDs(t *testing.T) {
	rooms := twoBoxes()
	SolveAdjacency(rooms, 0.01)
	if err := rooms[0].Faces[1].AperturesByRatio(0.4, 0.01); err != nil {
		t.Fatal(err)
	}
	m := &Model{Rooms: rooms, Shades: []*Shade{{Identifier: "S"}}}

	last := m.ResetIDsToIntegers(3)
	// 2 rooms, 12 faces, 1 aperture, 1 shade
	if last != 3+16-1 {
		t.Errorf("last id = %d, want %d", last, 3+16-1)
	}
	a := rooms[0]
	if a.Identifier != "3" || a.DisplayName != "A" {
		t.Errorf("room A: id %q, name %q", a.Identifier, a.DisplayName)
	}
	if id := a.Faces[1].Apertures[0].Identifier; id != "6" {
		t.Errorf("aperture id = %q, want 6", id)
	}

	east := a.Faces[2]
	west := rooms[1].Faces[4]
	want := BoundaryCondition{Kind: Surface, AdjacentFace: west.Identifier, AdjacentRoom: rooms[1].Identifier}
	if d := cmp.Diff(east.Boundary, want); d != "" {
		t.Errorf("boundary condition not remapped (-got +want):\n%s", d)
	}
}

func TestAperturesByRatio(t *testing.T) {
	r := NewBox("R", 5, 10, 3, geometry.Vec3{})
	south := r.Faces[1]
	if err := south.AperturesByRatio(0.4, 0.01); err != nil {
		t.Fatal(err)
	}
	if len(south.Apertures) != 1 {
		t.Fatalf("got %d apertures", len(south.Apertures))
	}
	ap := south.Apertures[0].Geometry
	got := []float64{ap.Area(), ap.Normal().Y}
	want := []float64{0.4 * 15, -1}
	if d := cmp.Diff(got, want, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("area/normal (-got +want):\n%s", d)
	}

	if err := south.AperturesByRatio(1.5, 0.01); err == nil {
		t.Error("ratio 1.5 accepted")
	}
}

func TestShadeMeshesToShades(t *testing.T) {
	m := &Model{ShadeMeshes: []*ShadeMesh{{
		Identifier: "Awning_1",
		Vertices: []geometry.Vec3{
			{X: 0, Y: 0, Z: 4}, {X: 0, Y: 2, Z: 4}, {X: 2, Y: 2, Z: 4},
			{X: 2, Y: 0, Z: 4}, {X: 4, Y: 0, Z: 4},
		},
		Faces: [][]int{{0, 1, 2, 3}, {2, 3, 4}},
	}}}
	m.ShadeMeshesToShades()
	if len(m.ShadeMeshes) != 0 || len(m.Shades) != 2 {
		t.Fatalf("got %d meshes, %d shades", len(m.ShadeMeshes), len(m.Shades))
	}
	if id := m.Shades[1].Identifier; id != "Awning_1_1" {
		t.Errorf("shade id = %q", id)
	}
}
