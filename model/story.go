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
	"fmt"
	"sort"
)

// AssignStoriesByFloorHeight sets the story of every room, based on the
// elevation of its lowest point.  Rooms whose floors lie less than minDiff
// above the lowest floor of the current story share that story.  Stories
// are named "Floor1", "Floor2", ... from the bottom up.
//
// The story names are returned in order.
func (m *Model) AssignStoriesByFloorHeight(minDiff float64) []string {
	if len(m.Rooms) == 0 {
		return nil
	}

	heights := make([]float64, len(m.Rooms))
	order := make([]int, len(m.Rooms))
	for i, r := range m.Rooms {
		heights[i] = r.Min().Z
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return heights[order[i]] < heights[order[j]]
	})

	var names []string
	base := heights[order[0]]
	for k, i := range order {
		if k == 0 || heights[i]-base >= minDiff {
			base = heights[i]
			names = append(names, fmt.Sprintf("Floor%d", len(names)+1))
		}
		m.Rooms[i].Story = names[len(names)-1]
	}
	return names
}

// GroupByStory groups rooms by their story.  Groups are returned in order
// of the first appearance of each story in rooms, together with the story
// names.  Rooms without a story are returned separately.
func GroupByStory(rooms []*Room) (groups [][]*Room, names []string, noStory []*Room) {
	pos := map[string]int{}
	for _, r := range rooms {
		if r.Story == "" {
			noStory = append(noStory, r)
			continue
		}
		k, ok := pos[r.Story]
		if !ok {
			k = len(groups)
			pos[r.Story] = k
			groups = append(groups, nil)
			names = append(names, r.Story)
		}
		groups[k] = append(groups[k], r)
	}
	return groups, names, noStory
}
