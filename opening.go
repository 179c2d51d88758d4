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
	"github.com/beevik/etree"

	"seehuhn.de/go/dsbxml/geometry"
	"seehuhn.de/go/dsbxml/model"
)

// openingKind is the DesignBuilder type of an opening.
type openingKind int

const (
	window openingKind = iota
	door
)

func (k openingKind) String() string {
	if k == door {
		return "Door"
	}
	return "Window"
}

// opening is the part of an aperture or door needed for export.
type opening struct {
	kind  openingKind
	title string
	geom  geometry.Face3D
}

// faceOpenings lists the apertures and then the doors of a face.
// Glass doors are transmissive and export as windows.
func faceOpenings(f *model.Face) []opening {
	var res []opening
	for _, a := range f.Apertures {
		res = append(res, opening{window, a.DisplayName, a.Geometry})
	}
	for _, d := range f.Doors {
		kind := door
		if d.IsGlass {
			kind = window
		}
		res = append(res, opening{kind, d.DisplayName, d.Geometry})
	}
	return res
}

// writeOpening returns the Opening element for an opening of the surface
// with identity parent.  Openings are not addressable on their own, so
// their handle and opening index are always -1.
func writeOpening(o opening, parent ObjectIDs) *etree.Element {
	ids := ObjectIDs{
		Handle:   NoHandle,
		Building: BuildingHandle,
		Block:    parent.Block,
		Zone:     parent.Zone,
		Surface:  parent.Surface,
		Opening:  -1,
	}
	res := newElement("Opening", Attr{"type", o.kind.String()})
	res.AddChild(writePolygon(o.geom.Boundary, o.geom.Holes, &ids))
	res.AddChild(titleAttributes(o.title))
	addElement(res, "SegmentList")
	return res
}
