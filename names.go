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
	"strings"
	"unicode"

	"github.com/xdg-go/stringprep"
	"golang.org/x/text/unicode/norm"
)

const maxNameLength = 100

// cleanName turns a model name into a string which only contains ASCII
// letters, digits, dots, underscores and hyphens.  Other characters are
// replaced by underscores and the result is truncated to 100 characters.
func cleanName(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	n := 0
	for _, r := range s {
		if n >= maxNameLength {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		n++
	}
	if b.Len() == 0 {
		return "unnamed"
	}
	return b.String()
}

// titleProfile maps unusual spaces to ASCII spaces and removes invisible
// characters.  It does not apply compatibility normalization, so that
// characters like "²" or ligatures survive, and it prohibits nothing.
var titleProfile = stringprep.Profile{
	Mappings: []stringprep.Mapping{
		stringprep.TableB1,
		spaceMapping(stringprep.TableC1_2),
	},
}

func spaceMapping(spaces stringprep.Set) stringprep.Mapping {
	m := stringprep.Mapping{}
	for _, rr := range spaces {
		for r := rr[0]; r <= rr[1]; r++ {
			m[r] = []rune{' '}
		}
	}
	return m
}

// cleanTitle prepares a display name for use as a Title attribute.
// The result is NFC-normalized and free of control characters.
func cleanTitle(s string) string {
	if t, err := titleProfile.Prepare(s); err == nil {
		s = t
	}
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
