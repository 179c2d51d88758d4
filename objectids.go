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
	"strconv"

	"github.com/beevik/etree"
)

// ObjectIDs is the identity record attached to every addressable element
// of a document.  Handle identifies the element itself, the remaining
// fields reference its ancestors.  Absent references are NoHandle, or -1
// for the two index fields.
type ObjectIDs struct {
	Handle   Handle
	Building Handle
	Block    Handle
	Zone     Handle
	Surface  int // position of the surface in its Surfaces container
	Opening  int
}

// newObjectIDs returns an identity record with the given handle and all
// references absent.
func newObjectIDs(h Handle) ObjectIDs {
	return ObjectIDs{
		Handle:   h,
		Building: NoHandle,
		Block:    NoHandle,
		Zone:     NoHandle,
		Surface:  -1,
		Opening:  -1,
	}
}

// inBlock returns an identity record for an object inside the given block.
func inBlock(h, block Handle) ObjectIDs {
	ids := newObjectIDs(h)
	ids.Building = BuildingHandle
	ids.Block = block
	return ids
}

func (ids ObjectIDs) element() *etree.Element {
	return newElement("ObjectIDs",
		Attr{"handle", ids.Handle.String()},
		Attr{"buildingHandle", ids.Building.String()},
		Attr{"buildingBlockHandle", ids.Block.String()},
		Attr{"zoneHandle", ids.Zone.String()},
		Attr{"surfaceIndex", strconv.Itoa(ids.Surface)},
		Attr{"openingIndex", strconv.Itoa(ids.Opening)})
}

// parseObjectIDs reads an identity record back from its element.
func parseObjectIDs(e *etree.Element) (ObjectIDs, error) {
	if e == nil {
		return ObjectIDs{}, &MalformedError{Tag: "ObjectIDs"}
	}
	var vals [6]int
	for i, name := range [...]string{
		"handle", "buildingHandle", "buildingBlockHandle",
		"zoneHandle", "surfaceIndex", "openingIndex",
	} {
		a := e.SelectAttr(name)
		if a == nil {
			return ObjectIDs{}, &MalformedError{Tag: e.Tag, Attr: name}
		}
		v, err := strconv.Atoi(a.Value)
		if err != nil {
			return ObjectIDs{}, &MalformedError{Tag: e.Tag, Attr: name, Err: err}
		}
		vals[i] = v
	}
	return ObjectIDs{
		Handle:   Handle(vals[0]),
		Building: Handle(vals[1]),
		Block:    Handle(vals[2]),
		Zone:     Handle(vals[3]),
		Surface:  vals[4],
		Opening:  vals[5],
	}, nil
}
