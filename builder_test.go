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

package dsbxml

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"seehuhn.de/go/dsbxml/geometry"
	"seehuhn.de/go/dsbxml/model"
)

func testOptions() (*Options, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	opt := &Options{
		Date:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Logger: logger,
	}
	return opt, hook
}

func tinyHouse() *model.Model {
	room := model.NewBox("Tiny_House_Zone", 5, 10, 3, geometry.Vec3{})
	return &model.Model{
		Identifier: "Tiny_House",
		Units:      model.Meters,
		Tolerance:  0.01,
		Rooms:      []*model.Room{room},
	}
}

func adjacentPair() *model.Model {
	a := model.NewBox("A", 5, 10, 3, geometry.Vec3{})
	b := model.NewBox("B", 5, 10, 3, geometry.Vec3{X: 5})
	model.SolveAdjacency([]*model.Room{a, b}, 0.01)
	return &model.Model{
		Identifier: "Pair",
		Units:      model.Meters,
		Rooms:      []*model.Room{a, b},
	}
}

func blocksOf(doc *Document) []*etree.Element {
	return doc.Root.FindElement("Site/Buildings/Building/BuildingBlocks").ChildElements()
}

func zoneSurfaces(zone *etree.Element) []*etree.Element {
	return zone.FindElement("Body/Surfaces").ChildElements()
}

func idsOf(t *testing.T, e *etree.Element) ObjectIDs {
	t.Helper()
	ids, err := parseObjectIDs(e.SelectElement("ObjectIDs"))
	if err != nil {
		t.Fatal(err)
	}
	return ids
}

func attr(e *etree.Element, name string) string {
	return e.SelectAttrValue(name, "")
}

func title(e *etree.Element) string {
	a := e.FindElement("Attributes/Attribute")
	if a == nil {
		return ""
	}
	return a.Text()
}

func TestSingleRoom(t *testing.T) {
	opt, _ := testOptions()
	doc, err := Build(tinyHouse(), opt)
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Verify(); err != nil {
		t.Error(err)
	}

	blocks := blocksOf(doc)
	if len(blocks) != 1 || doc.Blocks != 1 || doc.Zones != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	block := blocks[0]
	// no stories in the model, so one was assigned
	if got := title(block); got != "Floor1" {
		t.Errorf("block title = %q, want Floor1", got)
	}
	if got := attr(block, "type"); got != "Plan extrusion" {
		t.Errorf("block type = %q", got)
	}

	zones := block.SelectElement("Zones").ChildElements()
	if len(zones) != 1 {
		t.Fatalf("got %d zones, want 1", len(zones))
	}
	zone := zones[0]
	if got := attr(zone.SelectElement("Body"), "volume"); got != "150.0" {
		t.Errorf("volume = %s, want 150.0", got)
	}
	if got := title(zone); got != "Tiny_House_Zone" {
		t.Errorf("zone title = %q", got)
	}

	var types []string
	for _, s := range zoneSurfaces(zone) {
		types = append(types, attr(s, "type"))
	}
	want := []string{"Floor", "Wall", "Wall", "Wall", "Wall", "Flat roof"}
	if d := cmp.Diff(types, want); d != "" {
		t.Errorf("surface types (-got +want):\n%s", d)
	}
}

func TestHandles(t *testing.T) {
	opt, _ := testOptions()
	doc, err := Build(tinyHouse(), opt)
	if err != nil {
		t.Fatal(err)
	}

	// block 1, room 2, faces 3-8, fused volume 9, inner body 10-15,
	// shell surfaces 16-21, perimeter 22, site 23
	site := doc.Root.SelectElement("Site")
	if got := attr(site, "handle"); got != "23" {
		t.Errorf("site handle = %s, want 23", got)
	}
	block := blocksOf(doc)[0]
	zone := block.SelectElement("Zones").ChildElements()[0]
	got := []Handle{
		idsOf(t, block).Handle,
		idsOf(t, zone).Handle,
		idsOf(t, zoneSurfaces(zone)[0]).Handle,
		idsOf(t, block.SelectElement("ProfileBody")).Handle,
		idsOf(t, zone.FindElement("InnerSurfaceBody/Surfaces").ChildElements()[0]).Handle,
		idsOf(t, block.FindElement("ProfileBody/Body/Surfaces").ChildElements()[0]).Handle,
		idsOf(t, block.FindElement("Perimeter/Polygon")).Handle,
	}
	want := []Handle{1, 2, 3, 9, 10, 16, 22}
	if d := cmp.Diff(got, want); d != "" {
		t.Errorf("handles (-got +want):\n%s", d)
	}
}

func TestWindow(t *testing.T) {
	m := tinyHouse()
	south := m.Rooms[0].Faces[1]
	if err := south.AperturesByRatio(0.4, 0.01); err != nil {
		t.Fatal(err)
	}

	opt, _ := testOptions()
	doc, err := Build(m, opt)
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Verify(); err != nil {
		t.Error(err)
	}

	zone := blocksOf(doc)[0].SelectElement("Zones").ChildElements()[0]
	surface := zoneSurfaces(zone)[1]
	if got := attr(surface, "type"); got != "Wall" {
		t.Errorf("surface type = %q, want Wall", got)
	}
	if got := attr(surface, "phi"); got != "180.0" {
		t.Errorf("south wall azimuth = %s, want 180.0", got)
	}
	openings := surface.SelectElement("Openings").ChildElements()
	if len(openings) != 1 {
		t.Fatalf("got %d openings, want 1", len(openings))
	}
	if got := attr(openings[0], "type"); got != "Window" {
		t.Errorf("opening type = %q, want Window", got)
	}

	ids := idsOf(t, openings[0].SelectElement("Polygon"))
	zoneIDs := idsOf(t, zone)
	want := ObjectIDs{
		Handle:   NoHandle,
		Building: BuildingHandle,
		Block:    1,
		Zone:     zoneIDs.Handle,
		Surface:  1,
		Opening:  -1,
	}
	if d := cmp.Diff(ids, want); d != "" {
		t.Errorf("opening ids (-got +want):\n%s", d)
	}

	// the shell carries no openings
	for _, s := range blocksOf(doc)[0].FindElement("ProfileBody/Body/Surfaces").ChildElements() {
		if n := len(s.SelectElement("Openings").ChildElements()); n != 0 {
			t.Errorf("shell surface has %d openings", n)
		}
		if attr(s, "defaultOpenings") != "True" || attr(s, "thickness") != "0.2" {
			t.Errorf("shell surface attributes %v", s.Attr)
		}
	}
}

func TestAdjacentRooms(t *testing.T) {
	opt, _ := testOptions()
	doc, err := Build(adjacentPair(), opt)
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Verify(); err != nil {
		t.Error(err)
	}

	blocks := blocksOf(doc)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	block := blocks[0]
	zones := block.SelectElement("Zones").ChildElements()
	shell := block.FindElement("ProfileBody/Body/Surfaces").ChildElements()
	if total := len(zoneSurfaces(zones[0])) + len(zoneSurfaces(zones[1])); len(shell) >= total {
		t.Errorf("shell has %d surfaces, zones have %d", len(shell), total)
	}

	// room A is 2, its faces 3-8; room B is 9, its faces 10-15
	east := zoneSurfaces(zones[0])[2]
	adj := east.FindElement("Adjacencies/Adjacency")
	if got := attr(adj, "type"); got != "Surface" {
		t.Errorf("adjacency type = %q", got)
	}
	got := idsOf(t, adj)
	want := ObjectIDs{Handle: 14, Building: 0, Block: 1, Zone: 9, Surface: 4, Opening: -1}
	if d := cmp.Diff(got, want); d != "" {
		t.Errorf("adjacency ids (-got +want):\n%s", d)
	}
	if adj.FindElement("AdjacencyPolygonList/Polygon") == nil {
		t.Error("missing adjacency polygon")
	}

	// exterior faces have a null adjacency
	south := zoneSurfaces(zones[0])[1].FindElement("Adjacencies/Adjacency")
	if got := idsOf(t, south).Handle; got != NoHandle {
		t.Errorf("exterior adjacency handle = %d", got)
	}
	if n := len(south.SelectElement("AdjacencyPolygonList").ChildElements()); n != 0 {
		t.Errorf("exterior adjacency has %d polygons", n)
	}
}

func TestShellLinks(t *testing.T) {
	opt, _ := testOptions()
	doc, err := Build(tinyHouse(), opt)
	if err != nil {
		t.Fatal(err)
	}
	block := blocksOf(doc)[0]
	shell := block.FindElement("ProfileBody/Body/Surfaces").ChildElements()
	if len(shell) != 6 {
		t.Fatalf("got %d shell surfaces, want 6", len(shell))
	}
	for i, s := range shell {
		ids := idsOf(t, s)
		if ids.Zone != NoHandle || ids.Surface != -1 || ids.Block != 1 {
			t.Errorf("shell surface %d not sealed: %+v", i, ids)
		}
		target := idsOf(t, s.FindElement("Adjacencies/Adjacency"))
		want := ObjectIDs{Handle: Handle(3 + i), Building: 0, Block: 1, Zone: 2, Surface: i, Opening: -1}
		if d := cmp.Diff(target, want); d != "" {
			t.Errorf("shell surface %d link (-got +want):\n%s", i, d)
		}
	}
}

func TestAutoStories(t *testing.T) {
	m := &model.Model{Identifier: "Stack", Rooms: []*model.Room{
		model.NewBox("Lower", 5, 5, 3, geometry.Vec3{}),
		model.NewBox("Upper", 5, 5, 3, geometry.Vec3{Z: 3}),
	}}
	opt, _ := testOptions()
	doc, err := Build(m, opt)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, b := range blocksOf(doc) {
		names = append(names, title(b))
	}
	if d := cmp.Diff(names, []string{"Floor1", "Floor2"}); d != "" {
		t.Errorf("block names (-got +want):\n%s", d)
	}
	if len(m.Rooms[0].Story) != 0 {
		t.Error("Build modified the input model")
	}
}

func TestStackedBlocks(t *testing.T) {
	lower := model.NewBox("Lower", 5, 5, 3, geometry.Vec3{})
	upper := model.NewBox("Upper", 5, 5, 3, geometry.Vec3{Z: 3})
	model.SolveAdjacency([]*model.Room{lower, upper}, 0.01)
	m := &model.Model{Identifier: "Stack", Rooms: []*model.Room{lower, upper}}

	opt, _ := testOptions()
	doc, err := Build(m, opt)
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Verify(); err != nil {
		t.Error(err)
	}

	var block *etree.Element
	for _, b := range blocksOf(doc) {
		if title(b) == "Floor1" {
			block = b
		}
	}
	if block == nil {
		t.Fatal("lower block not found")
	}

	// the zone roof still references the room above
	zone := block.SelectElement("Zones").ChildElements()[0]
	zoneRoof := zoneSurfaces(zone)[5].FindElement("Adjacencies/Adjacency")
	if got := attr(zoneRoof, "type"); got != "Surface" {
		t.Errorf("zone roof adjacency = %q, want Surface", got)
	}

	// the shell roof does not
	shell := block.FindElement("ProfileBody/Body/Surfaces").ChildElements()
	roof := shell[len(shell)-1]
	if got := attr(roof, "type"); got != "Flat roof" {
		t.Fatalf("last shell surface is a %q", got)
	}
	adj := roof.FindElement("Adjacencies/Adjacency")
	if got := attr(adj, "type"); got != "Adiabatic" {
		t.Errorf("shell roof adjacency = %q, want Adiabatic", got)
	}
	if n := len(adj.SelectElement("AdjacencyPolygonList").ChildElements()); n != 0 {
		t.Errorf("shell roof adjacency has %d polygons", n)
	}
}

func TestPartition(t *testing.T) {
	pair := adjacentPair().Rooms
	for _, r := range pair {
		r.Story = "Ground"
	}
	far := model.NewBox("Far", 5, 5, 3, geometry.Vec3{X: 50})
	far.Story = "Ground"
	loose := model.NewBox("Loose", 5, 5, 3, geometry.Vec3{Z: 10})
	rooms := []*model.Room{pair[0], loose, far, pair[1]}

	logger, hook := test.NewNullLogger()
	blocks := partition(rooms, logger)

	type summary struct {
		Name   string
		Handle Handle
		Rooms  []string
	}
	var got []summary
	count := map[*model.Room]int{}
	for _, b := range blocks {
		s := summary{Name: b.name, Handle: b.handle}
		for _, r := range b.rooms {
			s.Rooms = append(s.Rooms, r.Identifier)
			count[r]++
		}
		got = append(got, s)
	}
	want := []summary{
		{"Ground 1", 1, []string{"A", "B"}},
		{"Ground 2", 2, []string{"Far"}},
		{"Unassigned", 3, []string{"Loose"}},
	}
	if d := cmp.Diff(got, want); d != "" {
		t.Errorf("blocks (-got +want):\n%s", d)
	}
	for _, r := range rooms {
		if count[r] != 1 {
			t.Errorf("room %s appears in %d blocks", r.Identifier, count[r])
		}
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.WarnLevel {
		t.Error("rooms without story were not reported")
	}
}

func TestIdempotent(t *testing.T) {
	opt, _ := testOptions()
	alloc := NewAllocator()
	opt.Allocator = alloc
	opt.ProgramName = "Ladybug Tools"

	m := adjacentPair()
	first, err := Build(m, opt)
	if err != nil {
		t.Fatal(err)
	}
	if alloc.Next() != 1 {
		t.Errorf("allocator not reset, next handle %d", alloc.Next())
	}
	alloc.Alloc()
	second, err := Build(m, opt)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(first.String(), second.String()); d != "" {
		t.Errorf("documents differ (-first +second):\n%s", d)
	}
}

func TestUnitsError(t *testing.T) {
	m := tinyHouse()
	m.Units = model.Millimeters // the geometry is really in meters

	opt, _ := testOptions()
	_, err := Build(m, opt)
	var unitsErr *UnitsError
	if !errors.As(err, &unitsErr) {
		t.Fatalf("got %v, want UnitsError", err)
	}
	if unitsErr.Units != model.Millimeters {
		t.Errorf("reported units %s", unitsErr.Units)
	}
	if !errors.Is(err, model.ErrDegenerateRoom) {
		t.Error("UnitsError does not wrap the cause")
	}
	if !strings.Contains(err.Error(), "Your Model units system is: Millimeters.") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestPerimeterFailure(t *testing.T) {
	m := tinyHouse()
	r := m.Rooms[0]
	r.Faces = r.Faces[1:] // no floor

	opt, hook := testOptions()
	doc, err := Build(m, opt)
	if err != nil {
		t.Fatal(err)
	}
	block := blocksOf(doc)[0]
	if n := len(block.SelectElement("Perimeter").ChildElements()); n != 0 {
		t.Errorf("perimeter has %d children", n)
	}
	found := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["block"] == "Floor1" {
			found = true
		}
	}
	if !found {
		t.Error("perimeter failure not logged")
	}
	if err := doc.Verify(); err != nil {
		t.Error(err)
	}
}

func TestApproximateMode(t *testing.T) {
	opt, _ := testOptions()
	opt.InnerSurfaceMode = Approximate
	doc, err := Build(tinyHouse(), opt)
	if err != nil {
		t.Fatal(err)
	}
	zone := blocksOf(doc)[0].SelectElement("Zones").ChildElements()[0]
	if zone.SelectElement("InnerSurfaceBody") != nil {
		t.Error("InnerSurfaceBody written in approximate mode")
	}
	if got := attr(zone, "innerSurfaceMode"); got != "Approximate" {
		t.Errorf("innerSurfaceMode = %q", got)
	}
	if got := attr(doc.Root.SelectElement("Site"), "handle"); got != "17" {
		t.Errorf("site handle = %s, want 17", got)
	}
}

func TestSealSurfaces(t *testing.T) {
	m := tinyHouse()
	if err := m.Rooms[0].Faces[1].AperturesByRatio(0.4, 0.01); err != nil {
		t.Fatal(err)
	}
	opt, _ := testOptions()
	opt.SealSurfaces = true
	doc, err := Build(m, opt)
	if err != nil {
		t.Fatal(err)
	}
	zone := blocksOf(doc)[0].SelectElement("Zones").ChildElements()[0]
	surface := zoneSurfaces(zone)[1]
	ids := idsOf(t, surface)
	if ids.Zone != NoHandle || ids.Surface != -1 {
		t.Errorf("surface not sealed: %+v", ids)
	}
	opening := idsOf(t, surface.FindElement("Openings/Opening/Polygon"))
	if opening.Zone != idsOf(t, zone).Handle || opening.Surface != 1 {
		t.Errorf("opening lost its parent context: %+v", opening)
	}
}

func TestRender(t *testing.T) {
	m := tinyHouse()
	m.DisplayName = "Tiny House"
	m.Rooms[0].DisplayName = "Zoné €"

	opt, _ := testOptions()
	opt.ProgramName = "Ladybug Tools"
	doc, err := Build(m, opt)
	if err != nil {
		t.Fatal(err)
	}

	text := doc.String()
	head := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<!--File generated by Ladybug Tools-->
<dsbXML name="~Tiny_House" date="2025-03-14" version="2025.1.0.085" objects="all">
  <Site handle="23" count="1">
`
	if !strings.HasPrefix(text, head) {
		t.Errorf("unexpected start of document:\n%s", text[:min(len(text), 300)])
	}
	if !strings.Contains(text, "<Point3D>5.0; 10.0; 3.0</Point3D>") {
		t.Error("vertex formatting")
	}

	data, err := doc.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("Zon\xe9 \x1a")) {
		t.Error("title not encoded as ISO 8859-1")
	}
	if !bytes.HasPrefix(data, []byte("<?xml "+xmlDeclaration+"?>\n")) {
		t.Error("declaration changed")
	}

	buf := &bytes.Buffer{}
	n, err := doc.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(data)) || !bytes.Equal(buf.Bytes(), data) {
		t.Error("WriteTo and Encode disagree")
	}
}

func TestProgramNameComment(t *testing.T) {
	cases := []struct {
		name, want string
	}{
		{"Ladybug Tools", "<!--File generated by Ladybug Tools-->"},
		{"Tool-", "<!--File generated by Tool-->"},
		{"a--b", "<!--File generated by a- -b-->"},
		{"a---", "<!--File generated by a-->"},
		{"first\nsecond\r\n", "<!--File generated by first second-->"},
		{"--", ""},
	}
	for _, c := range cases {
		opt, _ := testOptions()
		opt.ProgramName = c.name
		doc, err := Build(tinyHouse(), opt)
		if err != nil {
			t.Fatal(err)
		}
		text, err := doc.Render()
		if err != nil {
			t.Fatal(err)
		}
		if c.want != "" && !strings.Contains(text, "\n"+c.want+"\n") {
			t.Errorf("%q: comment not found in\n%s", c.name, text[:min(len(text), 200)])
		}
		if c.want == "" && strings.Contains(text, "<!--") {
			t.Errorf("%q: unexpected comment", c.name)
		}

		parsed := etree.NewDocument()
		if err := parsed.ReadFromString(text); err != nil {
			t.Errorf("%q: output does not parse: %v", c.name, err)
		} else if parsed.Root() == nil || parsed.Root().Tag != "dsbXML" {
			t.Errorf("%q: root element lost", c.name)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	doc := &Document{}
	if _, err := doc.Render(); !errors.Is(err, errNoRoot) {
		t.Errorf("got %v, want errNoRoot", err)
	}
	if _, err := doc.Encode(); !errors.Is(err, errNoRoot) {
		t.Errorf("Encode: got %v, want errNoRoot", err)
	}
	if s := doc.String(); s != "" {
		t.Errorf("String() = %q, want empty", s)
	}
}
