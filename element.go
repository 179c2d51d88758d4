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

import "github.com/beevik/etree"

// Attr is an XML attribute.
type Attr struct {
	Name, Value string
}

// newElement allocates a new element without children.  Attributes keep
// the given order when the tree is rendered.
func newElement(tag string, attrs ...Attr) *etree.Element {
	e := etree.NewElement(tag)
	for _, a := range attrs {
		e.CreateAttr(a.Name, a.Value)
	}
	return e
}

// addElement appends a new child element to parent and returns it.
func addElement(parent *etree.Element, tag string, attrs ...Attr) *etree.Element {
	child := newElement(tag, attrs...)
	parent.AddChild(child)
	return child
}

// addText appends a new child element holding the given text.
func addText(parent *etree.Element, tag, text string) *etree.Element {
	child := addElement(parent, tag)
	child.SetText(text)
	return child
}

// appendAll appends existing elements as children.
func appendAll(parent *etree.Element, children ...*etree.Element) {
	for _, c := range children {
		parent.AddChild(c)
	}
}

// childIndex returns the position of e among the child elements of its
// parent, or -1 if e has no parent.
func childIndex(e *etree.Element) int {
	p := e.Parent()
	if p == nil {
		return -1
	}
	for k, c := range p.ChildElements() {
		if c == e {
			return k
		}
	}
	return -1
}

// titleAttributes returns an Attributes container holding a single Title,
// as used by several element types.
func titleAttributes(title string) *etree.Element {
	attrs := newElement("Attributes")
	addText(attrs, "Attribute", cleanTitle(title)).CreateAttr("key", "Title")
	return attrs
}
