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
	"time"

	"github.com/sirupsen/logrus"
)

// Options allows to customize the conversion of a model.
type Options struct {
	// Tolerance is the absolute tolerance, in meters, used to compare
	// geometry.
	Tolerance float64

	// AngleTolerance is the angular tolerance, in degrees.
	AngleTolerance float64

	// InnerSurfaceMode selects whether zones carry an inner surface body.
	InnerSurfaceMode InnerSurfaceMode

	// SealSurfaces clears the zone and surface index of zone surfaces once
	// their openings are written.
	SealSurfaces bool

	// ProgramName, if set, is mentioned in a comment at the start of the
	// document.
	ProgramName string

	// Date is the document date.  The zero value means today.
	Date time.Time

	// Logger receives reports about problems which do not stop the
	// conversion.  If this is nil, the logrus standard logger is used.
	Logger logrus.FieldLogger

	// Allocator issues the handles of the document.  It is reset before
	// and after the conversion.  If this is nil, a new allocator is used.
	Allocator *Allocator
}

var defaultOptions = &Options{
	Tolerance:      0.01,
	AngleTolerance: 1,
}

// mergeOptions returns a copy of opt with all zero-valued fields replaced
// by their defaults.  opt can be nil, in which case the defaults are
// returned.
func mergeOptions(opt *Options) *Options {
	res := &Options{}
	if opt != nil {
		*res = *opt
	}
	if res.Tolerance <= 0 {
		res.Tolerance = defaultOptions.Tolerance
	}
	if res.AngleTolerance <= 0 {
		res.AngleTolerance = defaultOptions.AngleTolerance
	}
	if res.Date.IsZero() {
		res.Date = time.Now()
	}
	if res.Logger == nil {
		res.Logger = logrus.StandardLogger()
	}
	if res.Allocator == nil {
		res.Allocator = NewAllocator()
	}
	return res
}
