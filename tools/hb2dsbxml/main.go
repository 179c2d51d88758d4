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

// Hb2dsbxml converts building models in HBJSON format into DesignBuilder
// XML files.
//
// Usage:
//
//	hb2dsbxml translate model-to-dsbxml [flags] MODEL
package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"seehuhn.de/go/dsbxml"
	"seehuhn.de/go/dsbxml/metadata"
	"seehuhn.de/go/dsbxml/model"
	"seehuhn.de/go/dsbxml/tools/internal/buildinfo"
	"seehuhn.de/go/dsbxml/tools/internal/profile"
)

const toolName = "hb2dsbxml"

// config holds the command line settings of a conversion.
type config struct {
	output         string
	programName    string
	base64         bool
	innerSurface   string
	sealSurfaces   bool
	solveAdjacency bool
	xmpFile        string
	tolerance      float64
	angleTolerance float64
	verbose        bool
	quiet          bool
	cpuprofile     string
	memprofile     string
}

func main() {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:     toolName,
		Short:   "convert building models to DesignBuilder XML",
		Version: buildinfo.Version(),
	}
	translate := &cobra.Command{
		Use:   "translate",
		Short: "translate models into other formats",
		Args:  cobra.ExactArgs(0),
	}
	translate.AddCommand(newModelToDsbXMLCommand(stdout, stderr))
	root.AddCommand(translate)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root
}

func newModelToDsbXMLCommand(stdout, stderr io.Writer) *cobra.Command {
	cfg := &config{}
	cmd := &cobra.Command{
		Use:   "model-to-dsbxml MODEL",
		Short: "convert an HBJSON model into a DsbXML file",
		Long: "Convert an HBJSON model into a DesignBuilder XML file.  " +
			"The rooms of the model are grouped into building blocks by " +
			"story and adjacency.  Without an output file, the document " +
			"is written to standard output.",
		Args: func(cmd *cobra.Command, args []string) error {
			return usageError(cmd, cobra.ExactArgs(1)(cmd, args))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(stderr, cfg)
			err := run(cfg, args[0], stdout, stderr, log)
			if err != nil {
				log.Error(err)
			}
			return err
		},
	}

	cmd.SetFlagErrorFunc(usageError)

	flags := cmd.Flags()
	flags.StringVarP(&cfg.output, "output-file", "o", "", "write the document to `file` instead of standard output")
	flags.StringVarP(&cfg.programName, "program-name", "p", "", "program `name` recorded in the document header")
	flags.BoolVar(&cfg.base64, "base64", false, "base64-encode the document written to standard output")
	flags.StringVar(&cfg.innerSurface, "inner-surface", "deflation", "inner surface `mode`: deflation or approximate")
	flags.BoolVar(&cfg.sealSurfaces, "seal-surfaces", false, "clear zone references of surfaces after writing openings")
	flags.BoolVar(&cfg.solveAdjacency, "solve-adjacency", false, "pair coincident faces of neighbouring rooms before converting")
	flags.StringVar(&cfg.xmpFile, "xmp", "", "write an XMP sidecar describing the conversion to `file`")
	flags.Float64Var(&cfg.tolerance, "tolerance", 0, "geometric tolerance in meters (default 0.01)")
	flags.Float64Var(&cfg.angleTolerance, "angle-tolerance", 0, "angular tolerance in degrees (default 1)")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "show debug messages")
	flags.BoolVarP(&cfg.quiet, "quiet", "q", false, "only show errors")
	flags.StringVar(&cfg.cpuprofile, "cpuprofile", "", "write cpu profile to `file`")
	flags.StringVar(&cfg.memprofile, "memprofile", "", "write memory profile to `file`")
	return cmd
}

// usageError reports command line errors, which occur before the logger
// is configured.
func usageError(cmd *cobra.Command, err error) error {
	if err != nil {
		cmd.PrintErrln("Error:", err)
		cmd.PrintErrln(cmd.UsageString())
	}
	return err
}

func newLogger(w io.Writer, cfg *config) *logrus.Logger {
	log := logrus.New()
	log.Out = w
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	switch {
	case cfg.quiet:
		log.SetLevel(logrus.ErrorLevel)
	case cfg.verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

func run(cfg *config, fname string, stdout, stderr io.Writer, log logrus.FieldLogger) error {
	stop, err := profile.Start(cfg.cpuprofile, cfg.memprofile, log)
	if err != nil {
		return err
	}
	defer stop()

	mode, err := dsbxml.ParseInnerSurfaceMode(cfg.innerSurface)
	if err != nil {
		return err
	}

	m, err := model.ReadFile(fname)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"model": m.Name(),
		"rooms": len(m.Rooms),
		"units": m.Units,
	}).Debug("model loaded")

	if cfg.solveAdjacency {
		n := model.SolveAdjacency(m.Rooms, m.Tolerance)
		log.WithField("pairs", n).Info("adjacency solved")
	}

	opt := &dsbxml.Options{
		Tolerance:        cfg.tolerance,
		AngleTolerance:   cfg.angleTolerance,
		InnerSurfaceMode: mode,
		SealSurfaces:     cfg.sealSurfaces,
		ProgramName:      cfg.programName,
		Logger:           log,
	}
	doc, err := dsbxml.Build(m, opt)
	if err != nil {
		return err
	}
	data, err := doc.Encode()
	if err != nil {
		return err
	}

	if cfg.output == "" || cfg.output == "-" {
		if cfg.base64 {
			data = []byte(base64.StdEncoding.EncodeToString(data))
		}
		_, err = stdout.Write(data)
	} else {
		if cfg.base64 {
			log.Warn("--base64 only applies to standard output")
		}
		err = os.WriteFile(cfg.output, data, 0o644)
	}
	if err != nil {
		return err
	}

	if cfg.xmpFile != "" {
		program := cfg.programName
		if program == "" {
			program = buildinfo.ProgramName(toolName)
		}
		err = metadata.WriteFile(cfg.xmpFile, &metadata.Info{
			ModelID:       m.Identifier,
			Title:         m.Name(),
			Program:       program,
			FormatVersion: dsbxml.DesignBuilderVersion,
			Date:          doc.Date,
			Blocks:        doc.Blocks,
			Zones:         doc.Zones,
		})
		if err != nil {
			return err
		}
	}

	if !cfg.quiet && isTerminal(stderr) {
		fmt.Fprintf(stderr, "%s: %d blocks, %d zones\n", m.Name(), doc.Blocks, doc.Zones)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
