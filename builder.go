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
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"seehuhn.de/go/dsbxml/model"
)

// DesignBuilderVersion is the DsbXML format version written by this
// package.
const DesignBuilderVersion = "2025.1.0.085"

const (
	geometryDataLevel   = 3
	degenerateTolerance = 0.01
	storySeparation     = 2.0
)

// Document is a DsbXML document.
type Document struct {
	Root *etree.Element

	// ProgramName, if set, is mentioned in a comment before the root
	// element.
	ProgramName string

	Name   string // model name, as used in the root element
	Date   time.Time
	Blocks int
	Zones  int
}

// converter holds the state of one conversion.
type converter struct {
	opt   *Options
	alloc *Allocator
	log   logrus.FieldLogger
	reg   registry
}

// Build converts a model into a DsbXML document.
//
// The model is not modified.  Before conversion, a copy of the model is
// converted to meters and cleaned of degenerate geometry.  If the model
// has no stories, stories are assigned by floor height.  All identifiers
// of the copy are replaced by integers, which become the handles of the
// corresponding document objects.
func Build(m *model.Model, opt *Options) (*Document, error) {
	opt = mergeOptions(opt)
	c := &converter{
		opt:   opt,
		alloc: opt.Allocator,
		log:   opt.Logger,
	}
	c.alloc.Reset(1)
	defer c.alloc.Reset(1)

	m = m.Duplicate()
	if err := c.normalize(m); err != nil {
		return nil, err
	}

	blocks := partition(m.Rooms, c.log)
	last := m.ResetIDsToIntegers(len(blocks) + 1)
	reg, err := newRegistry(blocks)
	if err != nil {
		return nil, err
	}
	c.reg = reg
	c.alloc.Reset(Handle(last + 1))

	name := "~" + cleanName(m.Name())
	root := newElement("dsbXML",
		Attr{"name", name},
		Attr{"date", opt.Date.Format("2006-01-02")},
		Attr{"version", DesignBuilderVersion},
		Attr{"objects", "all"})

	site := addElement(root, "Site", Attr{"handle", ""}, Attr{"count", "1"})
	addElement(site, "Attributes")
	addElement(site, "Tables")
	addElement(site, "AssemblyLibrary")
	buildings := addElement(site, "Buildings", Attr{"numberOfBuildings", "1"})
	building := addElement(buildings, "Building",
		Attr{"currentComponentBlockHandle", "-1"},
		Attr{"currentAssemblyInstanceHandle", "-1"},
		Attr{"currentPlaneHandle", "-1"})
	building.AddChild(newObjectIDs(BuildingHandle).element())

	container := addElement(building, "BuildingBlocks")
	zones := 0
	for _, b := range blocks {
		el, err := c.writeBlock(b)
		if err != nil {
			return nil, err
		}
		container.AddChild(el)
		zones += len(b.rooms)
		c.log.WithFields(logrus.Fields{
			"block":  b.name,
			"handle": b.handle,
			"rooms":  len(b.rooms),
		}).Debug("block written")
	}

	for _, tag := range []string{
		"ComponentBlocks", "AssemblyInstances", "ProfileOutlines",
		"ConstructionLines", "Planes", "HVACNetwork",
	} {
		addElement(building, tag)
	}
	addElement(building, "BookmarkBuildings", Attr{"numberOfBuildings", "0"})
	level := addText(addElement(building, "Attributes"), "Attribute", fmt.Sprint(geometryDataLevel))
	level.CreateAttr("key", "GeometryDataLevel")

	site.CreateAttr("handle", c.alloc.Alloc().String())

	doc := &Document{
		Root:        root,
		ProgramName: opt.ProgramName,
		Name:        name,
		Date:        opt.Date,
		Blocks:      len(blocks),
		Zones:       zones,
	}
	return doc, nil
}

// normalize prepares a model for export.
func (c *converter) normalize(m *model.Model) error {
	original := m.Units
	if err := m.ConvertToUnits(model.Meters); err != nil {
		return err
	}
	if err := m.RemoveDegenerateGeometry(degenerateTolerance); err != nil {
		return &UnitsError{Units: original, Err: err}
	}
	m.ShadeMeshesToShades()
	if len(m.Stories()) == 0 && len(m.Rooms) > 0 {
		names := m.AssignStoriesByFloorHeight(storySeparation)
		c.log.WithField("stories", len(names)).Info("stories assigned by floor height")
	}
	return nil
}
