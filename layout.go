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
	"strconv"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/dsbxml/model"
)

// unassignedStory is the story name used for rooms which have no story
// when other rooms of the model do.
const unassignedStory = "Unassigned"

// blockPlan describes one building block before it is written.
type blockPlan struct {
	name   string
	handle Handle
	rooms  []*model.Room
}

// partition groups the rooms into blocks: first by story, then by
// adjacency within every story.  Stories which split into several groups
// get numbered block names.  Every room ends up in exactly one block.
// Block handles are 1, 2, ... in partition order.
func partition(rooms []*model.Room, log logrus.FieldLogger) []*blockPlan {
	groups, names, noStory := model.GroupByStory(rooms)
	if len(noStory) > 0 {
		log.WithFields(logrus.Fields{
			"rooms": len(noStory),
			"story": unassignedStory,
		}).Warn("rooms without a story")
		groups = append(groups, noStory)
		names = append(names, unassignedStory)
	}

	var res []*blockPlan
	for i, group := range groups {
		adj := model.GroupByAdjacency(group)
		if len(adj) == 1 {
			res = append(res, &blockPlan{name: names[i], rooms: group})
			continue
		}
		for k, members := range adj {
			res = append(res, &blockPlan{
				name:  fmt.Sprintf("%s %d", names[i], k+1),
				rooms: members,
			})
		}
	}
	for i, b := range res {
		b.handle = Handle(i + 1)
	}
	return res
}

// faceRef locates a zone surface in the document.
type faceRef struct {
	handle Handle
	block  Handle
	zone   Handle
	index  int
}

func (ref faceRef) objectIDs() ObjectIDs {
	ids := inBlock(ref.handle, ref.block)
	ids.Zone = ref.zone
	ids.Surface = ref.index
	return ids
}

// registry maps face identifiers to the location of their surfaces.
// It is filled before any block is written, so that adjacency records can
// reference surfaces in blocks written later.
type registry map[string]faceRef

// newRegistry computes the location of every zone surface.  Each face
// takes one position in the Surfaces container of its zone, followed by
// one position per hole.
func newRegistry(blocks []*blockPlan) (registry, error) {
	reg := registry{}
	for _, b := range blocks {
		for _, r := range b.rooms {
			zone, err := handleOf(r.Identifier)
			if err != nil {
				return nil, err
			}
			index := 0
			for _, f := range r.Faces {
				h, err := handleOf(f.Identifier)
				if err != nil {
					return nil, err
				}
				reg[f.Identifier] = faceRef{
					handle: h,
					block:  b.handle,
					zone:   zone,
					index:  index,
				}
				index += 1 + len(f.Geometry.Holes)
			}
		}
	}
	return reg, nil
}

// handleOf converts an integer identifier into a handle.
func handleOf(id string) (Handle, error) {
	h, err := strconv.Atoi(id)
	if err != nil || h <= 0 {
		return 0, fmt.Errorf("identifier %q is not a positive integer", id)
	}
	return Handle(h), nil
}
