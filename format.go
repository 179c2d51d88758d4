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
	"strconv"
	"strings"

	"seehuhn.de/go/dsbxml/geometry"
)

// formatFloat formats x with the shortest representation which reads back
// as the same value.  The result always uses positional notation and
// contains a decimal point, as DesignBuilder expects.
func formatFloat(x float64) string {
	if x == 0 {
		// avoid "-0.0"
		return "0.0"
	}
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func formatPoint(p geometry.Vec3) string {
	return formatFloat(p.X) + "; " + formatFloat(p.Y) + "; " + formatFloat(p.Z)
}

func formatIndices(idx []int) string {
	parts := make([]string, len(idx))
	for i, k := range idx {
		parts[i] = strconv.Itoa(k)
	}
	return strings.Join(parts, "; ")
}
