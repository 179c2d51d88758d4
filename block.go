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
	"github.com/sirupsen/logrus"

	"seehuhn.de/go/dsbxml/model"
)

// Fixed block properties.
const (
	defaultRoofSlope = 30.0
	defaultWallSlope = 80.0
	shellThickness   = 0.2
)

// writeBlock returns the BuildingBlock element for a group of adjacent
// rooms on one story.
//
// Besides the zones of the member rooms, the block holds a shell: the
// member rooms joined into one volume, without openings.  Every shell
// surface which envelops a zone surface references that surface through
// its adjacency record.
func (c *converter) writeBlock(b *blockPlan) (*etree.Element, error) {
	if len(b.rooms) == 0 {
		return nil, ErrEmptyBlock
	}
	log := c.log.WithFields(logrus.Fields{"block": b.name, "handle": b.handle})

	fused, err := model.JoinRooms(b.rooms, c.opt.Tolerance)
	if err != nil {
		return nil, fmt.Errorf("block %q: %w", b.name, err)
	}
	fusedHandle := c.alloc.Alloc()

	blockType := "General"
	if fused.IsExtrusion(c.opt.Tolerance, c.opt.AngleTolerance) {
		blockType = "Plan extrusion"
	}
	res := newElement("BuildingBlock",
		Attr{"type", blockType},
		Attr{"height", formatFloat(fused.Height())},
		Attr{"roofSlope", formatFloat(defaultRoofSlope)},
		Attr{"wallSlope", formatFloat(defaultWallSlope)},
		Attr{"overhang", "0.0"})
	ids := newObjectIDs(b.handle)
	ids.Building = BuildingHandle
	res.AddChild(ids.element())
	for _, tag := range []string{
		"ComponentBlocks", "CFDFans", "AssemblyInstances",
		"ProfileOutlines", "VoidBodies", "InternalPartitions",
	} {
		addElement(res, tag)
	}

	zones := addElement(res, "Zones")
	for _, r := range b.rooms {
		z, err := c.writeZone(r, b.handle)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", b.name, err)
		}
		zones.AddChild(z)
	}

	// the block shell
	verts, groups := fused.Polyface()
	var shell []*surfaceFragment
	index := 0
	for i, f := range fused.Faces {
		target, matched := c.shellTarget(f, b.rooms)

		bare := f.Duplicate()
		bare.RemoveSubFaces()
		frags := c.writeSurface(bare, surfaceContext{
			handle:  c.alloc.Alloc(),
			block:   b.handle,
			zone:    fusedHandle,
			index:   index,
			indices: groups[i],
		})
		frags[0].defaultOpenings = true
		frags[0].thickness = shellThickness
		for _, s := range frags {
			s.seal()
		}
		if matched {
			frags[0].linkShell(target)
		}
		shell = append(shell, frags...)
		index += len(frags)
	}
	profile := addElement(res, "ProfileBody",
		Attr{"elementSlope", "0.0"},
		Attr{"roofAngle", "0.0"})
	profile.AddChild(inBlock(fusedHandle, b.handle).element())
	profile.AddChild(writeBody("Body", fused.Volume(), fused.Height(), verts, shell))

	perimeter := addElement(res, "Perimeter")
	ring, err := model.GroupedHorizontalBoundary(b.rooms, c.opt.Tolerance, c.opt.AngleTolerance)
	if err != nil {
		log.WithError(err).Warn("block perimeter not written")
	} else {
		ids := inBlock(c.alloc.Alloc(), b.handle)
		perimeter.AddChild(writePolygon(ring, nil, &ids))
	}

	addElement(res, "BaseProfileBody")
	title := b.name
	if title == "" {
		title = fmt.Sprintf("Block %d", b.handle)
	}
	res.AddChild(titleAttributes(title))
	return res, nil
}

// shellTarget finds the zone surface which a face of the block shell
// envelops.  The second return value is false for shell faces which
// do not correspond to any member face.
func (c *converter) shellTarget(f *model.Face, rooms []*model.Room) (ObjectIDs, bool) {
	for _, r := range rooms {
		for _, mf := range r.Faces {
			if !isShellMatch(mf.Geometry, f.Geometry, c.opt.Tolerance) {
				continue
			}
			if ref, ok := c.reg[mf.Identifier]; ok {
				return ref.objectIDs(), true
			}
		}
	}
	return ObjectIDs{}, false
}
