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

// Package geometry implements the three-dimensional primitives used to
// describe rooms: vectors and planar polygons with holes.
//
// Points and direction vectors share the [Vec3] type.  Polygons are
// represented by [Face3D], which stores an outer boundary ring and an
// optional list of hole rings.
package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 represents a point or a vector in three-dimensional space.
// The arithmetic is delegated to [r3.Vec].
type Vec3 r3.Vec

// Add returns the sum of two vectors.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3(r3.Add(r3.Vec(a), r3.Vec(b)))
}

// Sub returns the difference of two vectors.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3(r3.Sub(r3.Vec(a), r3.Vec(b)))
}

// Mul returns the vector scaled by f.
func (a Vec3) Mul(f float64) Vec3 {
	return Vec3(r3.Scale(f, r3.Vec(a)))
}

// Dot returns the scalar product of two vectors.
func (a Vec3) Dot(b Vec3) float64 {
	return r3.Dot(r3.Vec(a), r3.Vec(b))
}

// Cross returns the vector product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3(r3.Cross(r3.Vec(a), r3.Vec(b)))
}

// Length returns the Euclidean length of the vector.
func (a Vec3) Length() float64 {
	return r3.Norm(r3.Vec(a))
}

// Normalize returns a unit vector pointing in the same direction as a.
// The zero vector is returned unchanged.
func (a Vec3) Normalize() Vec3 {
	if a == (Vec3{}) {
		return a
	}
	return Vec3(r3.Unit(r3.Vec(a)))
}

// IsClose reports whether the distance between a and b is at most tol.
func (a Vec3) IsClose(b Vec3, tol float64) bool {
	return a.Sub(b).Length() <= tol
}

func (a Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", a.X, a.Y, a.Z)
}

// Centroid returns the arithmetic mean of the given points.
func Centroid(pts []Vec3) Vec3 {
	var sum Vec3
	if len(pts) == 0 {
		return sum
	}
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(pts)))
}
