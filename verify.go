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
	"fmt"

	"github.com/beevik/etree"
)

// Verify checks the identity records of a document.  Every handle other
// than -1 must occur only once, and the block, zone and surface references
// of every record must match the position of the record in the tree.
// Adjacency records must reference an existing zone surface.
//
// Records inside Adjacency elements reference other objects and are
// exempt from the uniqueness check.
func (d *Document) Verify() error {
	if d.Root == nil {
		return errNoRoot
	}
	seen := map[Handle]bool{}
	var adjacent []ObjectIDs
	zoneSurfaces := map[Handle]*etree.Element{}

	var firstErr error
	fail := func(e *etree.Element, attr string, err error) {
		if firstErr == nil {
			firstErr = &MalformedError{Tag: e.Tag, Attr: attr, Err: err}
		}
	}

	var visit func(el *etree.Element, underAdjacency bool)
	visit = func(el *etree.Element, underAdjacency bool) {
		if firstErr != nil {
			return
		}
		switch el.Tag {
		case "Zone":
			if zid, err := parseObjectIDs(el.SelectElement("ObjectIDs")); err == nil {
				zoneSurfaces[zid.Handle] = el.FindElement("Body/Surfaces")
			}
		case "Adjacency":
			underAdjacency = true
		case "ObjectIDs":
			checkRecord(el, underAdjacency, seen, &adjacent, fail)
			return
		}
		for _, c := range el.ChildElements() {
			visit(c, underAdjacency)
		}
	}
	visit(d.Root, false)
	if firstErr != nil {
		return firstErr
	}

	for _, ids := range adjacent {
		surfaces := zoneSurfaces[ids.Zone]
		var list []*etree.Element
		if surfaces != nil {
			list = surfaces.ChildElements()
		}
		if ids.Surface < 0 || ids.Surface >= len(list) {
			return &MalformedError{
				Tag:  "Adjacency",
				Attr: "zoneHandle",
				Err:  fmt.Errorf("%w to zone %d surface %d", errDanglingRef, ids.Zone, ids.Surface),
			}
		}
		target, err := parseObjectIDs(list[ids.Surface].SelectElement("ObjectIDs"))
		if err != nil || target.Handle != ids.Handle {
			return &MalformedError{
				Tag:  "Adjacency",
				Attr: "handle",
				Err:  fmt.Errorf("%w to surface %d", errDanglingRef, ids.Handle),
			}
		}
	}
	return nil
}

// checkRecord validates a single ObjectIDs element against its position in
// the tree.  Records inside adjacencies are collected for a later pass.
func checkRecord(el *etree.Element, underAdjacency bool, seen map[Handle]bool,
	adjacent *[]ObjectIDs, fail func(*etree.Element, string, error)) {
	ids, err := parseObjectIDs(el)
	if err != nil {
		fail(el, "", err)
		return
	}
	if underAdjacency {
		if ids.Handle != NoHandle {
			*adjacent = append(*adjacent, ids)
		}
		return
	}

	if ids.Handle != NoHandle {
		if seen[ids.Handle] {
			fail(el, "handle", fmt.Errorf("%w %d", errDuplicateHandle, ids.Handle))
			return
		}
		seen[ids.Handle] = true
	}
	if ids.Block != NoHandle && ancestorHandle(el, "BuildingBlock") != ids.Block {
		fail(el, "buildingBlockHandle", fmt.Errorf("%w to block %d", errDanglingRef, ids.Block))
	}
	if ids.Zone != NoHandle && ancestorHandle(el, "Zone") != ids.Zone {
		fail(el, "zoneHandle", fmt.Errorf("%w to zone %d", errDanglingRef, ids.Zone))
	}
	if ids.Surface >= 0 && surfacePosition(el) != ids.Surface {
		fail(el, "surfaceIndex", fmt.Errorf("%w to surface %d", errDanglingRef, ids.Surface))
	}
}

// ancestorHandle returns the handle of the innermost ancestor of el with
// the given tag, or NoHandle.
func ancestorHandle(el *etree.Element, tag string) Handle {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.Tag != tag {
			continue
		}
		if res, err := parseObjectIDs(p.SelectElement("ObjectIDs")); err == nil {
			return res.Handle
		}
		return NoHandle
	}
	return NoHandle
}

// surfacePosition returns the position of the innermost Surface ancestor
// of el within its container, or -1.
func surfacePosition(el *etree.Element) int {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.Tag == "Surface" {
			return childIndex(p)
		}
	}
	return -1
}
