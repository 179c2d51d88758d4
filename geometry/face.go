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

package geometry

import (
	"errors"
	"math"

	"golang.org/x/exp/slices"
)

// ErrDegenerate is returned when a polygon collapses to fewer than three
// vertices.
var ErrDegenerate = errors.New("degenerate polygon")

// Face3D is a planar polygon with optional holes.
//
// The outer boundary is wound counter-clockwise when seen from the side
// the normal points to.  Holes may be given in either orientation;
// [Face3D.OpposedHoles] returns them wound opposite to the boundary.
type Face3D struct {
	Boundary []Vec3
	Holes    [][]Vec3
}

// newell returns the Newell vector of a closed ring.  Its direction is the
// ring normal and its length is twice the enclosed area.
func newell(ring []Vec3) Vec3 {
	var n Vec3
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n
}

// Normal returns the unit normal of the face.
func (f Face3D) Normal() Vec3 {
	return newell(f.Boundary).Normalize()
}

// Area returns the area of the face, excluding the holes.
func (f Face3D) Area() float64 {
	area := newell(f.Boundary).Length() / 2
	for _, h := range f.Holes {
		area -= newell(h).Length() / 2
	}
	return area
}

// AreaVector returns the normal scaled by twice the face area.
// Holes are subtracted irrespective of their winding.
func (f Face3D) AreaVector() Vec3 {
	n := newell(f.Boundary)
	unit := n.Normalize()
	for _, h := range f.Holes {
		n = n.Sub(unit.Mul(newell(h).Length()))
	}
	return n
}

// Center returns the mean of the boundary vertices.
func (f Face3D) Center() Vec3 {
	return Centroid(f.Boundary)
}

// Tilt returns the angle between the face normal and the positive z-axis,
// in degrees.  Upward facing faces have tilt 0, walls have tilt 90.
func (f Face3D) Tilt() float64 {
	nz := math.Max(-1, math.Min(1, f.Normal().Z))
	return degrees(math.Acos(nz))
}

// Altitude returns the angle between the face normal and the horizontal
// plane, in degrees.  The result is in the range [-90, 90].
func (f Face3D) Altitude() float64 {
	return 90 - f.Tilt()
}

// Azimuth returns the compass direction of the face normal in degrees,
// measured clockwise from the positive y-axis (north).  Horizontal faces
// have azimuth 0.
func (f Face3D) Azimuth() float64 {
	n := f.Normal()
	if math.Abs(n.X) < 1e-9 && math.Abs(n.Y) < 1e-9 {
		return 0
	}
	az := degrees(math.Atan2(n.X, n.Y))
	if az < 0 {
		az += 360
	}
	if az >= 360 {
		az -= 360
	}
	return az
}

// degrees converts an angle from radians to degrees.  The result is
// rounded to 1e-9 degrees, so that axis-aligned faces give exact values.
func degrees(rad float64) float64 {
	return math.Round(rad*180/math.Pi*1e9) / 1e9
}

// IsHorizontal reports whether the face normal is within angTol degrees
// of the vertical axis.
func (f Face3D) IsHorizontal(angTol float64) bool {
	tilt := f.Tilt()
	return tilt <= angTol || tilt >= 180-angTol
}

// IsVertical reports whether the face normal is within angTol degrees of
// the horizontal plane.
func (f Face3D) IsVertical(angTol float64) bool {
	return math.Abs(f.Tilt()-90) <= angTol
}

// Duplicate returns a deep copy of the face.
func (f Face3D) Duplicate() Face3D {
	res := Face3D{Boundary: slices.Clone(f.Boundary)}
	for _, h := range f.Holes {
		res.Holes = append(res.Holes, slices.Clone(h))
	}
	return res
}

// Flip returns a copy of the face with reversed orientation.
func (f Face3D) Flip() Face3D {
	res := f.Duplicate()
	slices.Reverse(res.Boundary)
	for _, h := range res.Holes {
		slices.Reverse(h)
	}
	return res
}

// OpposedHoles returns copies of the hole rings, each wound opposite to
// the boundary.  A hole is reversed if its own normal agrees with the
// plane of the boundary.
func (f Face3D) OpposedHoles() [][]Vec3 {
	n := newell(f.Boundary)
	res := make([][]Vec3, len(f.Holes))
	for i, h := range f.Holes {
		ring := slices.Clone(h)
		if newell(ring).Dot(n) > 0 {
			slices.Reverse(ring)
		}
		res[i] = ring
	}
	return res
}

// Vertices returns the boundary vertices followed by the vertices of all
// holes.
func (f Face3D) Vertices() []Vec3 {
	res := slices.Clone(f.Boundary)
	for _, h := range f.Holes {
		res = append(res, h...)
	}
	return res
}

// Scale returns a copy of the face with all coordinates multiplied by
// factor, about the given origin.
func (f Face3D) Scale(factor float64, origin Vec3) Face3D {
	scale := func(ring []Vec3) []Vec3 {
		res := make([]Vec3, len(ring))
		for i, p := range ring {
			res[i] = origin.Add(p.Sub(origin).Mul(factor))
		}
		return res
	}
	res := Face3D{Boundary: scale(f.Boundary)}
	for _, h := range f.Holes {
		res.Holes = append(res.Holes, scale(h))
	}
	return res
}

// Min returns the lower corner of the bounding box of the face.
func (f Face3D) Min() Vec3 {
	return boundingCorner(f.Boundary, math.Min)
}

// Max returns the upper corner of the bounding box of the face.
func (f Face3D) Max() Vec3 {
	return boundingCorner(f.Boundary, math.Max)
}

func boundingCorner(pts []Vec3, pick func(a, b float64) float64) Vec3 {
	if len(pts) == 0 {
		return Vec3{}
	}
	res := pts[0]
	for _, p := range pts[1:] {
		res.X = pick(res.X, p.X)
		res.Y = pick(res.Y, p.Y)
		res.Z = pick(res.Z, p.Z)
	}
	return res
}

// IsCoincident reports whether other covers the same plane region as f,
// within tol: the centers agree, the areas agree and the normals are
// parallel (opposed if wantOpposed is set).
func (f Face3D) IsCoincident(other Face3D, tol float64, wantOpposed bool) bool {
	if !f.Center().IsClose(other.Center(), tol) {
		return false
	}
	if math.Abs(f.Area()-other.Area()) > tol*math.Max(1, perimeter(f.Boundary)) {
		return false
	}
	d := f.Normal().Dot(other.Normal())
	if wantOpposed {
		return d < -0.999
	}
	return d > 0.999
}

func perimeter(ring []Vec3) float64 {
	var l float64
	for i, p := range ring {
		l += ring[(i+1)%len(ring)].Sub(p).Length()
	}
	return l
}

// RemoveColinearVertices returns a copy of the face with duplicate and
// collinear vertices removed.  Holes which become degenerate are dropped.
// If the boundary becomes degenerate, ErrDegenerate is returned.
func (f Face3D) RemoveColinearVertices(tol float64) (Face3D, error) {
	boundary := cleanRing(f.Boundary, tol)
	if len(boundary) < 3 {
		return Face3D{}, ErrDegenerate
	}
	res := Face3D{Boundary: boundary}
	for _, h := range f.Holes {
		ring := cleanRing(h, tol)
		if len(ring) >= 3 {
			res.Holes = append(res.Holes, ring)
		}
	}
	if res.Area() <= tol*tol {
		return Face3D{}, ErrDegenerate
	}
	return res, nil
}

// cleanRing removes repeated vertices and vertices which lie within tol of
// the line through their neighbours.
func cleanRing(ring []Vec3, tol float64) []Vec3 {
	pts := make([]Vec3, 0, len(ring))
	for _, p := range ring {
		if len(pts) > 0 && pts[len(pts)-1].IsClose(p, tol) {
			continue
		}
		pts = append(pts, p)
	}
	for len(pts) > 1 && pts[0].IsClose(pts[len(pts)-1], tol) {
		pts = pts[:len(pts)-1]
	}

	changed := true
	for changed && len(pts) >= 3 {
		changed = false
		for i := 0; i < len(pts); i++ {
			a := pts[(i+len(pts)-1)%len(pts)]
			b := pts[i]
			c := pts[(i+1)%len(pts)]
			base := c.Sub(a)
			l := base.Length()
			if l == 0 {
				pts = slices.Delete(pts, i, i+1)
				changed = true
				break
			}
			dist := b.Sub(a).Cross(base).Length() / l
			if dist <= tol {
				pts = slices.Delete(pts, i, i+1)
				changed = true
				break
			}
		}
	}
	return pts
}
