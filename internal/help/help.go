// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"pdfmeta/internal/metadata"
)

// FieldInfo describes one editable metadata field
type FieldInfo struct {
	Field       metadata.Field
	Description string
}

// FieldDescriptions documents the recognized metadata keys
var FieldDescriptions = []FieldInfo{
	{metadata.Title, "Document title"},
	{metadata.Author, "Name of the person who created the document"},
	{metadata.Subject, "Subject of the document"},
	{metadata.Creator, "Application that created the original document"},
	{metadata.Producer, "Application that converted the document to PDF"},
	{metadata.Keywords, "Keywords associated with the document"},
}

// System renders help text
type System struct {
	out    io.Writer
	colors map[string]*color.Color
}

// NewSystem creates a help system writing to out
func NewSystem(out io.Writer, noColor bool) *System {
	if noColor {
		color.NoColor = true
	}

	return &System{
		out: out,
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"item":    color.New(color.FgCyan),
			"example": color.New(color.FgMagenta),
		},
	}
}

// Usage returns the one-line synopsis
func Usage(program string) string {
	return fmt.Sprintf("usage: %s [-h] [--output OUTPUT | -o OUTPUT] [--config CONFIG | -c CONFIG] input_pdf", program)
}

// ShowGeneralHelp displays usage, options, the metadata file format and examples
func (h *System) ShowGeneralHelp(program string) {
	h.colors["title"].Fprintln(h.out, "pdfmeta - Add metadata to PDF files using a JSON configuration")
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, Usage(program))
	fmt.Fprintln(h.out)

	h.colors["header"].Fprintln(h.out, "POSITIONAL ARGUMENTS:")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  input_pdf\t\tInput PDF file path")
	w.Flush()
	fmt.Fprintln(h.out)

	h.colors["header"].Fprintln(h.out, "OPTIONS:")
	w = tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  -h, --help\t\tShow this help message and exit")
	fmt.Fprintln(w, "  -o, --output\t<path>\tOutput PDF file path (default: <input>_updated.pdf)")
	fmt.Fprintln(w, "  -c, --config\t<path>\tMetadata configuration JSON file (default: metadata.json)")
	fmt.Fprintln(w, "  -v, --verbose\t\tPrint each field set and the final metadata of the output")
	fmt.Fprintln(w, "  -q, --quiet\t\tSuppress warnings")
	fmt.Fprintln(w, "  --strict\t\tTreat unknown metadata keys as errors")
	fmt.Fprintln(w, "  --no-dates\t\tDo not stamp CreationDate and ModDate")
	fmt.Fprintln(w, "  --settings\t<path>\tTool settings file (YAML)")
	fmt.Fprintln(w, "  --debug\t\tTrace each processing step on stderr")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	w.Flush()
	fmt.Fprintln(h.out)

	h.ShowFieldsHelp()

	h.colors["header"].Fprintln(h.out, "EXAMPLES:")
	h.colors["example"].Fprintf(h.out, "  %s document.pdf\n", program)
	h.colors["example"].Fprintf(h.out, "  %s document.pdf --output updated_document.pdf\n", program)
	h.colors["example"].Fprintf(h.out, "  %s document.pdf --config custom_metadata.json\n", program)
	fmt.Fprintln(h.out)

	h.colors["header"].Fprintln(h.out, "SETTINGS:")
	fmt.Fprintln(h.out, "  Project settings: .pdfmeta.yaml (in current directory)")
	fmt.Fprintln(h.out, "  User settings: <user config dir>/pdfmeta/config.yaml")
	fmt.Fprintln(h.out, "  Environment: PDFMETA_CONFIG_DIR - Override settings directory")
}

// ShowFieldsHelp lists the keys accepted in the metadata file
func (h *System) ShowFieldsHelp() {
	h.colors["header"].Fprintln(h.out, "METADATA FIELDS:")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	for _, info := range FieldDescriptions {
		fmt.Fprintf(w, "  %s\t%s\n", h.colors["item"].Sprint(info.Field), info.Description)
	}
	w.Flush()
	fmt.Fprintln(h.out, "  Other keys are ignored. Values must be strings, numbers or booleans.")
	fmt.Fprintln(h.out)
}
