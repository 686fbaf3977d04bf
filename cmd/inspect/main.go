// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"pdfmeta/internal/formatters"
	_ "pdfmeta/internal/formatters/csv"
	_ "pdfmeta/internal/formatters/json"
	_ "pdfmeta/internal/formatters/text"
	_ "pdfmeta/internal/formatters/yaml"
	"pdfmeta/internal/inspect"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pdfmeta-inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		format  = fs.String("format", "text", "Output format: "+strings.Join(formatters.List(), ", "))
		verbose = fs.Bool("verbose", false, "Include every information dictionary entry")
		noColor = fs.Bool("no-color", false, "Disable colored output")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: pdfmeta-inspect [--format text|json|yaml|csv] [--verbose] file.pdf...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	if _, ok := formatters.Get(*format); !ok {
		fmt.Fprintf(stderr, "Error: unknown format '%s'. Available formats: %s\n", *format, strings.Join(formatters.List(), ", "))
		return 2
	}

	color.NoColor = *noColor || !isTerminal(stdout)

	var reports []*inspect.Info
	failed := false
	for _, path := range fs.Args() {
		info, err := inspect.ReadFile(path)
		if err != nil {
			color.New(color.FgRed).Fprintf(stderr, "Error: %s: %v\n", path, err)
			failed = true
			continue
		}
		reports = append(reports, info)
	}

	if len(reports) > 0 {
		out, err := formatters.Export(*format, reports, formatters.FormatterOptions{
			Verbose: *verbose,
			NoColor: color.NoColor,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprint(stdout, out)
	}

	if failed {
		return 1
	}
	return 0
}

// isTerminal checks if w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
