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

// Package metadata writes XMP sidecar files which describe a DsbXML
// conversion.
//
// A sidecar records the model name, the program which produced the
// document, the DsbXML format version and a few statistics about the
// document.  Each document gets a stable document ID, derived from the
// model identifier, and a fresh instance ID for every conversion.
package metadata

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"
)

// DsbXML is the XMP namespace for DsbXML conversion properties.
type DsbXML struct {
	_ xmp.Namespace `xmp:"http://seehuhn.de/ns/dsbxml/1.0/"`
	_ xmp.Prefix    `xmp:"dsbxml"`

	DocumentID    xmp.Text
	InstanceID    xmp.Text
	FormatVersion xmp.Text
	CreateDate    xmp.Date
	CreatorTool   xmp.AgentName
	Blocks        xmp.Text
	Zones         xmp.Text
}

// Info describes one conversion.
type Info struct {
	// ModelID is the identifier of the source model.  It determines the
	// document ID.
	ModelID string

	// Title is the human readable name of the model.
	Title string

	// Language is the language of Title.  The zero value means
	// "undetermined".
	Language language.Tag

	// Program is the name of the program which produced the document.
	Program string

	FormatVersion string
	Date          time.Time
	Blocks        int
	Zones         int
}

// DocumentID returns the document ID for a model identifier.
// The same model always gets the same ID.
func DocumentID(modelID string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("dsbxml:"+modelID))
}

// Sidecar builds the XMP packet describing a conversion.
func Sidecar(info *Info) (*xmp.Packet, error) {
	dc := &xmp.DublinCore{}
	dc.Title.Set(info.Language, info.Title)
	if info.Program != "" {
		dc.Creator.Append(xmp.NewProperName(info.Program))
	}

	props := &DsbXML{
		DocumentID:    xmp.NewText("uuid:" + DocumentID(info.ModelID).String()),
		InstanceID:    xmp.NewText("uuid:" + uuid.New().String()),
		FormatVersion: xmp.NewText(info.FormatVersion),
		Blocks:        xmp.NewText(strconv.Itoa(info.Blocks)),
		Zones:         xmp.NewText(strconv.Itoa(info.Zones)),
	}
	if !info.Date.IsZero() {
		props.CreateDate = xmp.NewDate(info.Date)
	}
	if info.Program != "" {
		props.CreatorTool = xmp.NewAgentName(info.Program)
	}

	packet := xmp.NewPacket()
	err := packet.Set(dc, props)
	if err != nil {
		return nil, err
	}
	return packet, nil
}

// Write writes the sidecar for a conversion to w.
func Write(w io.Writer, info *Info) error {
	packet, err := Sidecar(info)
	if err != nil {
		return err
	}
	return packet.Write(w, &xmp.PacketOptions{Pretty: true})
}

// WriteFile writes the sidecar for a conversion to the named file.
func WriteFile(fname string, info *Info) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = Write(fd, info)
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// Read reads the DsbXML properties from an XMP packet.
func Read(r io.Reader) (*DsbXML, error) {
	packet, err := xmp.Read(r)
	if err != nil {
		return nil, err
	}
	props := &DsbXML{}
	packet.Get(props)
	return props, nil
}

// ParseID extracts the UUID from a document or instance ID.
func ParseID(id xmp.Text) (uuid.UUID, error) {
	s, ok := strings.CutPrefix(id.V, "uuid:")
	if !ok {
		return uuid.Nil, fmt.Errorf("malformed XMP ID %q", id.V)
	}
	return uuid.Parse(s)
}
