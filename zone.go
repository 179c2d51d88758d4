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

// InnerSurfaceMode selects how DesignBuilder derives the inner surfaces of
// a zone.
type InnerSurfaceMode int

const (
	// Deflation writes a copy of the zone body as InnerSurfaceBody.
	Deflation InnerSurfaceMode = iota

	// Approximate omits the inner surface body.
	Approximate
)

func (m InnerSurfaceMode) String() string {
	if m == Approximate {
		return "Approximate"
	}
	return "Deflation"
}

// ParseInnerSurfaceMode converts the name of an inner surface mode.
// The comparison ignores case.
func ParseInnerSurfaceMode(s string) (InnerSurfaceMode, error) {
	switch s {
	case "Deflation", "deflation":
		return Deflation, nil
	case "Approximate", "approximate":
		return Approximate, nil
	}
	return 0, &OptionError{Option: "inner surface mode", Value: s}
}

// writeBody returns a Body-like element for a polyhedron.
func writeBody(tag string, volume, height float64, verts []geometry.Vec3, surfaces []*surfaceFragment) *etree.Element {
	body := newElement(tag,
		Attr{"volume", formatFloat(volume)},
		Attr{"extrusionHeight", formatFloat(height)})
	body.AddChild(writeVertices(verts))
	container := addElement(body, "Surfaces")
	for _, s := range surfaces {
		container.AddChild(s.element())
	}
	addElement(body, "VoidPerimeterList")
	addElement(body, "Attributes")
	return body
}

// writeZone returns the Zone element for a room of the given block.
func (c *converter) writeZone(r *model.Room, block Handle) (*etree.Element, error) {
	zone, err := handleOf(r.Identifier)
	if err != nil {
		return nil, err
	}

	verts, groups := r.Polyface()
	var surfaces []*surfaceFragment
	for i, f := range r.Faces {
		ref := c.reg[f.Identifier]
		surfaces = append(surfaces, c.writeSurface(f, surfaceContext{
			handle:  ref.handle,
			block:   block,
			zone:    zone,
			index:   ref.index,
			indices: groups[i],
		})...)
	}

	isExtrusion := r.IsExtrusion(c.opt.Tolerance, c.opt.AngleTolerance)
	res := newElement("Zone",
		Attr{"parentZoneHandle", zone.String()},
		Attr{"inheritedZoneHandle", zone.String()},
		Attr{"planExtrusion", formatBool(isExtrusion)},
		Attr{"innerSurfaceMode", c.opt.InnerSurfaceMode.String()})
	ids := inBlock(zone, block)
	res.AddChild(ids.element())

	body := writeBody("Body", r.Volume(), r.Height(), verts, surfaces)
	res.AddChild(body)
	if c.opt.InnerSurfaceMode == Deflation {
		inner := cloneWithNewIdentity(body, c.alloc)
		inner.Tag = "InnerSurfaceBody"
		res.AddChild(inner)
	}
	res.AddChild(titleAttributes(r.Name()))
	return res, nil
}

// cloneWithNewIdentity returns a deep copy of e in which every ObjectIDs
// record gets a new handle from alloc.  Records with handle -1 and the
// records inside Adjacency elements, which reference other objects, are
// copied unchanged.
func cloneWithNewIdentity(e *etree.Element, alloc *Allocator) *etree.Element {
	res := e.Copy()
	var renew func(el *etree.Element)
	renew = func(el *etree.Element) {
		for _, c := range el.ChildElements() {
			switch c.Tag {
			case "Adjacency":
				continue
			case "ObjectIDs":
				if c.SelectAttrValue("handle", "") != NoHandle.String() {
					c.CreateAttr("handle", alloc.Alloc().String())
				}
			}
			renew(c)
		}
	}
	renew(res)
	return res
}
