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

import "strconv"

// Handle is the integer identity of an object in a DsbXML document.
type Handle int

const (
	// NoHandle marks an absent reference.
	NoHandle Handle = -1

	// BuildingHandle is the handle of the single building in a document.
	BuildingHandle Handle = 0
)

func (h Handle) String() string {
	return strconv.Itoa(int(h))
}

// Allocator issues handles in increasing order.
//
// An Allocator belongs to one conversion at a time.  Concurrent
// conversions must use separate allocators.
type Allocator struct {
	next Handle
}

// NewAllocator returns an allocator which issues handles starting at 1.
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// Alloc returns a new handle.
func (a *Allocator) Alloc() Handle {
	h := a.next
	a.next++
	return h
}

// Next returns the handle which the next call to Alloc will return.
func (a *Allocator) Next() Handle {
	return a.next
}

// Reset makes the allocator issue handles starting at seed.
func (a *Allocator) Reset(seed Handle) {
	a.next = seed
}
