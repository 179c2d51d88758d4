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
)

func writeVertices(ring []geometry.Vec3) *etree.Element {
	res := newElement("Vertices")
	for _, p := range ring {
		addText(res, "Point3D", formatPoint(p))
	}
	return res
}

// writePolygon returns a Polygon element for the given boundary and holes.
// The hole rings are emitted with the opposite orientation to the boundary.
// The PolygonHoles container is present even if there are no holes.
// If ids is not nil, the polygon carries an ObjectIDs record.
func writePolygon(boundary []geometry.Vec3, holes [][]geometry.Vec3, ids *ObjectIDs) *etree.Element {
	poly := newElement("Polygon", Attr{"auxiliaryType", "-1"})
	if ids != nil {
		poly.AddChild(ids.element())
	}
	poly.AddChild(writeVertices(boundary))

	container := addElement(poly, "PolygonHoles")
	f := geometry.Face3D{Boundary: boundary, Holes: holes}
	for _, ring := range f.OpposedHoles() {
		addElement(container, "PolygonHole").AddChild(writeVertices(ring))
	}
	return poly
}
