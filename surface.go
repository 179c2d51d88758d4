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
	"math"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"seehuhn.de/go/dsbxml/geometry"
	"seehuhn.de/go/dsbxml/model"
)

// SurfaceType is the DesignBuilder classification of a surface.
type SurfaceType int

// These are the surface types written by this package.
const (
	WallSurface SurfaceType = iota
	FloorSurface
	FlatRoof
	PitchedRoof
	HoleSurface
)

func (t SurfaceType) String() string {
	switch t {
	case WallSurface:
		return "Wall"
	case FloorSurface:
		return "Floor"
	case FlatRoof:
		return "Flat roof"
	case PitchedRoof:
		return "Pitched roof"
	case HoleSurface:
		return "Hole"
	default:
		return "SurfaceType(?)"
	}
}

// ClassifySurface returns the surface type for a face of the given type
// and tilt.  Roofs and ceilings are pitched if their tilt exceeds angTol
// degrees.  Air boundaries are exported as walls.
func ClassifySurface(t model.FaceType, tilt, angTol float64) SurfaceType {
	switch t {
	case model.RoofCeiling:
		if tilt > angTol {
			return PitchedRoof
		}
		return FlatRoof
	case model.Floor:
		return FloorSurface
	default:
		return WallSurface
	}
}

// adjacency describes the other side of a surface.  For exterior
// surfaces all references are absent and there is no polygon.
type adjacency struct {
	kind    model.BoundaryKind
	ids     ObjectIDs
	polygon *etree.Element
}

// surfaceFragment holds everything needed to write a Surface element.
// Fragments are finalized with seal and linkShell before being turned into
// elements.
type surfaceFragment struct {
	kind            SurfaceType
	ids             ObjectIDs
	area            float64
	alpha, phi      float64
	defaultOpenings bool
	thickness       float64
	vertexIndices   []int
	holeIndices     []int
	openings        []*etree.Element
	adjacency       adjacency
	title           string
}

// seal clears the references from the surface to its own zone and
// position.
func (s *surfaceFragment) seal() {
	s.ids.Zone = NoHandle
	s.ids.Surface = -1
}

// linkShell points the adjacency record of a block shell surface at the
// zone surface it envelops.
func (s *surfaceFragment) linkShell(target ObjectIDs) {
	s.adjacency.ids = target
}

func (s *surfaceFragment) element() *etree.Element {
	e := newElement("Surface",
		Attr{"type", s.kind.String()},
		Attr{"area", formatFloat(s.area)},
		Attr{"alpha", formatFloat(s.alpha)},
		Attr{"phi", formatFloat(s.phi)},
		Attr{"defaultOpenings", formatBool(s.defaultOpenings)},
		Attr{"adjacentPartitionHandle", NoHandle.String()},
		Attr{"thickness", formatFloat(s.thickness)},
	)
	e.AddChild(s.ids.element())
	addText(e, "VertexIndices", formatIndices(s.vertexIndices))
	addText(e, "HoleIndices", formatIndices(s.holeIndices))
	appendAll(addElement(e, "Openings"), s.openings...)

	adj := addElement(addElement(e, "Adjacencies"), "Adjacency",
		Attr{"type", s.adjacency.kind.String()},
		Attr{"adjacencyDistance", "0.0"})
	adj.AddChild(s.adjacency.ids.element())
	list := addElement(adj, "AdjacencyPolygonList")
	if s.adjacency.polygon != nil {
		list.AddChild(s.adjacency.polygon)
	}

	e.AddChild(titleAttributes(s.title))
	return e
}

// surfaceContext describes where a face is written.
type surfaceContext struct {
	handle Handle // handle of the face
	block  Handle
	zone   Handle
	index  int // position of the face in its Surfaces container

	// indices holds the vertex index groups of the face in the parent
	// volume: the boundary, then one group per hole.  If indices is nil,
	// the face is written standalone and indexes its own vertices.
	indices [][]int
}

// writeSurface converts a face into surface fragments: the surface for the
// face itself, followed by one sibling surface of type Hole for every hole.
// The hole siblings get new handles from the allocator.
func (c *converter) writeSurface(f *model.Face, ctx surfaceContext) []*surfaceFragment {
	g := f.Geometry
	indices := ctx.indices
	if indices == nil {
		indices = standaloneIndices(g)
	}

	ids := inBlock(ctx.handle, ctx.block)
	ids.Zone = ctx.zone
	ids.Surface = ctx.index

	main := &surfaceFragment{
		kind:          ClassifySurface(f.Type, g.Tilt(), c.opt.AngleTolerance),
		ids:           ids,
		area:          g.Area(),
		alpha:         g.Altitude(),
		phi:           g.Azimuth(),
		vertexIndices: indices[0],
		adjacency:     c.adjacencyOf(f),
		title:         f.Name(),
	}
	res := []*surfaceFragment{main}

	for k, hole := range g.Holes {
		holeIDs := ids
		holeIDs.Handle = c.alloc.Alloc()
		holeIDs.Surface = ctx.index + 1 + k
		main.holeIndices = append(main.holeIndices, holeIDs.Surface)
		res = append(res, &surfaceFragment{
			kind:          HoleSurface,
			ids:           holeIDs,
			area:          geometry.Face3D{Boundary: hole}.Area(),
			alpha:         main.alpha,
			phi:           main.phi,
			vertexIndices: indices[1+k],
			adjacency:     adjacency{kind: f.Boundary.Kind, ids: newObjectIDs(NoHandle)},
			title:         f.Name(),
		})
	}

	for _, o := range faceOpenings(f) {
		main.openings = append(main.openings, writeOpening(o, main.ids))
	}
	if c.opt.SealSurfaces {
		for _, s := range res {
			s.seal()
		}
	}
	return res
}

// adjacencyOf returns the adjacency record for a face.  For internal
// partitions, it references the face on the other side and carries the
// face polygon as seen from there.
func (c *converter) adjacencyOf(f *model.Face) adjacency {
	res := adjacency{kind: f.Boundary.Kind, ids: newObjectIDs(NoHandle)}
	if f.Boundary.Kind != model.Surface {
		return res
	}

	ref, ok := c.reg[f.Boundary.AdjacentFace]
	if !ok {
		c.log.WithFields(logrus.Fields{
			"face":     f.Identifier,
			"adjacent": f.Boundary.AdjacentFace,
		}).Warn("adjacent face not found")
		return res
	}
	res.ids = ref.objectIDs()
	flipped := f.Geometry.Flip()
	res.polygon = writePolygon(flipped.Boundary, flipped.Holes, nil)
	return res
}

// standaloneIndices numbers the vertices of a face which has no parent
// volume: first the boundary, then the holes.
func standaloneIndices(g geometry.Face3D) [][]int {
	rings := append([][]geometry.Vec3{g.Boundary}, g.Holes...)
	var res [][]int
	next := 0
	for _, ring := range rings {
		idx := make([]int, len(ring))
		for i := range idx {
			idx[i] = next
			next++
		}
		res = append(res, idx)
	}
	return res
}

// isShellMatch reports whether a zone face and a shell face describe the
// same part of the block envelope.
func isShellMatch(member, shell geometry.Face3D, tol float64) bool {
	if !member.Center().IsClose(shell.Center(), tol) {
		return false
	}
	return member.Normal().Dot(shell.Normal()) > math.Cos(math.Pi/4)
}
