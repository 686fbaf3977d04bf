// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"pdfmeta/internal/formatters"
	"pdfmeta/internal/inspect"
	"pdfmeta/internal/metadata"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"file":  color.New(color.FgWhite, color.Bold),
			"key":   color.New(color.FgCyan),
			"muted": color.New(color.FgYellow),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output"
}

func (f *Formatter) Format(reports []*inspect.Info, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.colors["file"].Sprint(r.Filename))
		fmt.Fprintf(&b, " (PDF %s, %d page(s), %d bytes)\n", r.Version, r.PageCount, r.FileSize)

		lines := f.lines(r, options.Verbose)
		if len(lines) == 0 {
			b.WriteString("  " + f.colors["muted"].Sprint("no document information") + "\n")
			continue
		}
		for _, kv := range lines {
			fmt.Fprintf(&b, "  %s: %s\n", f.colors["key"].Sprint(kv[0]), kv[1])
		}
	}
	return b.String(), nil
}

// lines returns key/value pairs: the recognized fields, then the dates, then
// every other property when verbose is set
func (f *Formatter) lines(r *inspect.Info, verbose bool) [][2]string {
	var out [][2]string
	for _, field := range metadata.Fields {
		if v := r.Fields[field]; v != "" {
			out = append(out, [2]string{string(field), v})
		}
	}
	if !r.CreationDate.IsZero() {
		out = append(out, [2]string{"CreationDate", r.CreationDate.Format("2006-01-02 15:04:05 -07:00")})
	}
	if !r.ModDate.IsZero() {
		out = append(out, [2]string{"ModDate", r.ModDate.Format("2006-01-02 15:04:05 -07:00")})
	}
	if verbose {
		for _, line := range r.Lines() {
			key, value, _ := strings.Cut(line, ": ")
			if metadata.IsKnown(key) || key == "CreationDate" || key == "ModDate" {
				continue
			}
			out = append(out, [2]string{key, value})
		}
	}
	return out
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
