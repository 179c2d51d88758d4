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
	"cmp"
	"errors"
	"math"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/dsbxml/geometry"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ErrNoPerimeter is returned by GroupedHorizontalBoundary when the floor
// plans of a room group do not form a single outline.
var ErrNoPerimeter = errors.New("no horizontal perimeter")

// GroupedHorizontalBoundary returns the outline of the union of the floor
// plans of the given rooms, as a counter-clockwise ring at the elevation
// of the lowest floor.
//
// The outline is found by splitting all floor edges at the vertices of
// neighbouring floors, cancelling edges which are shared by two floors,
// and chaining the remaining edges into loops.  If the rooms have no
// floors, or if the largest loop does not cover the extent of all
// floors, ErrNoPerimeter is returned.
func GroupedHorizontalBoundary(rooms []*Room, tol, angTol float64) ([]geometry.Vec3, error) {
	if len(rooms) == 0 {
		return nil, ErrEmptyGroup
	}

	g := &outlineGraph{tol: tol}
	z := math.Inf(1)
	var extent rect.Rect
	first := true
	for _, r := range rooms {
		for _, f := range r.FloorFaces(angTol) {
			ring := make([]vec.Vec2, len(f.Geometry.Boundary))
			for i, p := range f.Geometry.Boundary {
				ring[i] = vec.Vec2{X: p.X, Y: p.Y}
				z = math.Min(z, p.Z)
			}
			if signedArea(ring) < 0 {
				slices.Reverse(ring)
			}
			bbox := ringExtent(ring)
			if first {
				extent = bbox
				first = false
			} else {
				extent = rect.Rect{
					LLx: math.Min(extent.LLx, bbox.LLx),
					LLy: math.Min(extent.LLy, bbox.LLy),
					URx: math.Max(extent.URx, bbox.URx),
					URy: math.Max(extent.URy, bbox.URy),
				}
			}
			g.addRing(ring)
		}
	}
	if len(g.edges) == 0 {
		return nil, ErrNoPerimeter
	}

	g.splitEdges()
	g.cancelShared()
	loops := g.loops()

	var best []vec.Vec2
	bestArea := 0.0
	for _, loop := range loops {
		if a := signedArea(loop); a > bestArea {
			best, bestArea = loop, a
		}
	}
	best = dropCollinear(best, tol)
	if len(best) < 3 {
		return nil, ErrNoPerimeter
	}

	bbox := ringExtent(best)
	if math.Abs(bbox.LLx-extent.LLx) > tol || math.Abs(bbox.LLy-extent.LLy) > tol ||
		math.Abs(bbox.URx-extent.URx) > tol || math.Abs(bbox.URy-extent.URy) > tol {
		return nil, ErrNoPerimeter
	}

	res := make([]geometry.Vec3, len(best))
	for i, p := range best {
		res[i] = geometry.Vec3{X: p.X, Y: p.Y, Z: z}
	}
	return res, nil
}

// Footprint returns the extent of the floor plans of the given rooms.
// The result is the zero rectangle if the rooms have no floors.
func Footprint(rooms []*Room, angTol float64) rect.Rect {
	var res rect.Rect
	for _, r := range rooms {
		for _, f := range r.FloorFaces(angTol) {
			ring := make([]vec.Vec2, len(f.Geometry.Boundary))
			for i, p := range f.Geometry.Boundary {
				ring[i] = vec.Vec2{X: p.X, Y: p.Y}
			}
			bbox := ringExtent(ring)
			if res.IsZero() {
				res = bbox
				continue
			}
			res.LLx = math.Min(res.LLx, bbox.LLx)
			res.LLy = math.Min(res.LLy, bbox.LLy)
			res.URx = math.Max(res.URx, bbox.URx)
			res.URy = math.Max(res.URy, bbox.URy)
		}
	}
	return res
}

// outlineGraph is a directed graph of floor plan edges.  Vertices closer
// than tol are identified.
type outlineGraph struct {
	tol   float64
	verts []vec.Vec2
	edges [][2]int
}

func (g *outlineGraph) vertex(p vec.Vec2) int {
	for i, q := range g.verts {
		if p.Sub(q).Length() <= g.tol {
			return i
		}
	}
	g.verts = append(g.verts, p)
	return len(g.verts) - 1
}

func (g *outlineGraph) addRing(ring []vec.Vec2) {
	idx := make([]int, len(ring))
	for i, p := range ring {
		idx[i] = g.vertex(p)
	}
	for i, a := range idx {
		b := idx[(i+1)%len(idx)]
		if a != b {
			g.edges = append(g.edges, [2]int{a, b})
		}
	}
}

// splitEdges splits every edge at the vertices which lie on its interior.
func (g *outlineGraph) splitEdges() {
	var res [][2]int
	for _, e := range g.edges {
		a, b := g.verts[e[0]], g.verts[e[1]]
		d := b.Sub(a)
		l := d.Length()
		u := d.Mul(1 / l)

		type cut struct {
			t float64
			v int
		}
		var cuts []cut
		for v, p := range g.verts {
			if v == e[0] || v == e[1] {
				continue
			}
			w := p.Sub(a)
			t := w.X*u.X + w.Y*u.Y
			if t <= g.tol || t >= l-g.tol {
				continue
			}
			if math.Abs(w.X*u.Y-w.Y*u.X) > g.tol {
				continue
			}
			cuts = append(cuts, cut{t, v})
		}
		slices.SortStableFunc(cuts, func(a, b cut) int {
			return cmp.Compare(a.t, b.t)
		})

		from := e[0]
		for _, c := range cuts {
			res = append(res, [2]int{from, c.v})
			from = c.v
		}
		res = append(res, [2]int{from, e[1]})
	}
	g.edges = res
}

// cancelShared removes pairs of edges which run between the same
// vertices in opposite directions.
func (g *outlineGraph) cancelShared() {
	removed := make([]bool, len(g.edges))
	for i, e := range g.edges {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(g.edges); j++ {
			f := g.edges[j]
			if !removed[j] && e[0] == f[1] && e[1] == f[0] {
				removed[i] = true
				removed[j] = true
				break
			}
		}
	}
	var res [][2]int
	for i, e := range g.edges {
		if !removed[i] {
			res = append(res, e)
		}
	}
	g.edges = res
}

// loops chains the edges into closed loops.  Every vertex has as many
// incoming as outgoing edges, so chaining always returns to its start.
func (g *outlineGraph) loops() [][]vec.Vec2 {
	used := make([]bool, len(g.edges))
	var res [][]vec.Vec2
	for i := range g.edges {
		if used[i] {
			continue
		}
		used[i] = true
		start := g.edges[i][0]
		loop := []vec.Vec2{g.verts[start]}
		cur := g.edges[i][1]
		for cur != start {
			loop = append(loop, g.verts[cur])
			next := -1
			for j, e := range g.edges {
				if !used[j] && e[0] == cur {
					next = j
					break
				}
			}
			if next < 0 {
				loop = nil
				break
			}
			used[next] = true
			cur = g.edges[next][1]
		}
		if loop != nil {
			res = append(res, loop)
		}
	}
	return res
}

func signedArea(ring []vec.Vec2) float64 {
	var a float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

func ringExtent(ring []vec.Vec2) rect.Rect {
	res := rect.Rect{LLx: ring[0].X, LLy: ring[0].Y, URx: ring[0].X, URy: ring[0].Y}
	for _, p := range ring[1:] {
		res.LLx = math.Min(res.LLx, p.X)
		res.LLy = math.Min(res.LLy, p.Y)
		res.URx = math.Max(res.URx, p.X)
		res.URy = math.Max(res.URy, p.Y)
	}
	return res
}

// dropCollinear removes the vertices of a ring which lie within tol of the
// line through their neighbours.
func dropCollinear(ring []vec.Vec2, tol float64) []vec.Vec2 {
	changed := true
	for changed && len(ring) >= 3 {
		changed = false
		for i := range ring {
			a := ring[(i+len(ring)-1)%len(ring)]
			b := ring[i]
			c := ring[(i+1)%len(ring)]
			base := c.Sub(a)
			l := base.Length()
			w := b.Sub(a)
			if l == 0 || math.Abs(w.X*base.Y-w.Y*base.X)/l <= tol {
				ring = append(ring[:i:i], ring[i+1:]...)
				changed = true
				break
			}
		}
	}
	return ring
}
