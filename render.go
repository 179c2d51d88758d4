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
	"io"
	"strings"
	"unicode"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const xmlDeclaration = `version="1.0" encoding="UTF-8" standalone="yes"`

// Render returns the text of the document, as UTF-8.
func (d *Document) Render() (string, error) {
	if d.Root == nil {
		return "", errNoRoot
	}

	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	doc.CreateProcInst("xml", xmlDeclaration)
	if name := commentText(d.ProgramName); name != "" {
		doc.CreateComment("File generated by " + name)
	}
	// Indentation modifies the tree, so the document gets its own copy.
	doc.SetRoot(d.Root.Copy())
	doc.IndentWithSettings(&etree.IndentSettings{
		Spaces:                     2,
		SuppressTrailingWhitespace: true,
	})
	return doc.WriteToString()
}

// String returns the text of the document, or the empty string if the
// document cannot be rendered.  Use [Document.Render] to see the error.
func (d *Document) String() string {
	s, err := d.Render()
	if err != nil {
		return ""
	}
	return s
}

// commentText turns s into text which can be placed inside an XML
// comment.  Control characters become spaces, "--" is broken up and
// trailing hyphens are removed.
func commentText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	return strings.TrimRight(s, "- ")
}

// Encode returns the text of the document, encoded as ISO 8859-1.
// Characters which cannot be represented are replaced.
//
// DesignBuilder reads files in this encoding, even though the XML
// declaration states UTF-8.
func (d *Document) Encode() ([]byte, error) {
	text, err := d.Render()
	if err != nil {
		return nil, err
	}
	enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	s, err := enc.String(text)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// WriteTo writes the document in the encoding used by [Document.Encode].
// This implements the [io.WriterTo] interface.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := d.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}
