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
	"errors"
	"strconv"

	"seehuhn.de/go/dsbxml/model"
)

var (
	// ErrEmptyBlock is returned when a building block has no rooms.
	ErrEmptyBlock = errors.New("building block without rooms")

	errDuplicateHandle = errors.New("duplicate handle")
	errDanglingRef     = errors.New("dangling reference")
	errNoRoot          = errors.New("document has no root element")
)

// UnitsError indicates that the geometry of a model could not be cleaned
// at DesignBuilder's tolerance.  The most common cause is a model which
// declares the wrong unit system.
type UnitsError struct {
	Units model.Units // the unit system declared by the model
	Err   error
}

func (err *UnitsError) Error() string {
	return "failed to remove degenerate rooms: " + err.Err.Error() +
		"\nYour Model units system is: " + string(err.Units) + ". Is this correct?"
}

func (err *UnitsError) Unwrap() error {
	return err.Err
}

// MalformedError indicates that a document tree violates the structure
// DesignBuilder expects.
type MalformedError struct {
	Tag  string
	Attr string
	Err  error
}

func (err *MalformedError) Error() string {
	msg := "malformed " + err.Tag + " element"
	if err.Attr != "" {
		msg += " (attribute " + strconv.Quote(err.Attr) + ")"
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *MalformedError) Unwrap() error {
	return err.Err
}

// OptionError indicates an invalid conversion option.
type OptionError struct {
	Option string
	Value  string
}

func (err *OptionError) Error() string {
	return "invalid " + err.Option + " " + strconv.Quote(err.Value)
}
