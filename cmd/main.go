// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"golang.org/x/term"

	"pdfmeta/internal/apperr"
	"pdfmeta/internal/config"
	"pdfmeta/internal/editor"
	"pdfmeta/internal/help"
	"pdfmeta/internal/version"
)

const programName = "pdfmeta"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// configFlags holds command line flag values
type configFlags struct {
	output       string
	metadataFile string
	settingsFile string
	verbose      bool
	quiet        bool
	debug        bool
	noColor      bool
	strict       bool
	noDates      bool
	showHelp     bool
	showVersion  bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	metadataFile        string
	outputSuffix        string
	verbose             bool
	quiet               bool
	debug               bool
	noColor             bool
	strict              bool
	stampDates          bool
	preservePermissions bool
}

func newFlagSet(flags *configFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&flags.output, "output", "", "Output PDF file path")
	fs.StringVar(&flags.output, "o", "", "Output PDF file path (alias for --output)")
	fs.StringVar(&flags.metadataFile, "config", "", "Metadata configuration JSON file")
	fs.StringVar(&flags.metadataFile, "c", "", "Metadata configuration JSON file (alias for --config)")
	fs.StringVar(&flags.settingsFile, "settings", "", "Tool settings file (YAML)")
	fs.BoolVar(&flags.verbose, "verbose", false, "Print each field set and the final metadata")
	fs.BoolVar(&flags.verbose, "v", false, "Alias for --verbose")
	fs.BoolVar(&flags.quiet, "quiet", false, "Suppress warnings")
	fs.BoolVar(&flags.quiet, "q", false, "Alias for --quiet")
	fs.BoolVar(&flags.debug, "debug", false, "Trace each processing step")
	fs.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&flags.strict, "strict", false, "Treat unknown metadata keys as errors")
	fs.BoolVar(&flags.noDates, "no-dates", false, "Do not stamp CreationDate and ModDate")
	fs.BoolVar(&flags.showHelp, "help", false, "Show help information")
	fs.BoolVar(&flags.showHelp, "h", false, "Show help information")
	fs.BoolVar(&flags.showVersion, "version", false, "Show version information")
	return fs
}

// parseArgs parses flags that may appear before or after the positional arguments
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		// flag stops at "--"; everything after it is positional
		if len(args) > len(rest) && args[len(args)-len(rest)-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// isFlagSet reports whether any of the given flag names was set on the command line
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// resolveConfiguration resolves final configuration values from the settings file and command line flags
func resolveConfiguration(cfg *config.Config, fs *flag.FlagSet, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{
		metadataFile:        cfg.Defaults.MetadataFile,
		outputSuffix:        cfg.Defaults.OutputSuffix,
		verbose:             cfg.Defaults.Verbose,
		quiet:               cfg.Defaults.Quiet,
		debug:               cfg.Defaults.Debug,
		noColor:             cfg.Defaults.NoColor,
		strict:              cfg.Defaults.Strict,
		stampDates:          cfg.Defaults.StampDates,
		preservePermissions: cfg.Output.PreservePermissions,
	}

	if isFlagSet(fs, "config", "c") {
		final.metadataFile = flags.metadataFile
	}
	if isFlagSet(fs, "verbose", "v") {
		final.verbose = flags.verbose
	}
	if isFlagSet(fs, "quiet", "q") {
		final.quiet = flags.quiet
	}
	if isFlagSet(fs, "debug") {
		final.debug = flags.debug
	}
	if isFlagSet(fs, "no-color") {
		final.noColor = flags.noColor
	}
	if isFlagSet(fs, "strict") {
		final.strict = flags.strict
	}
	if isFlagSet(fs, "no-dates") {
		final.stampDates = !flags.noDates
	}

	return final
}

// printer writes the user-facing lines
type printer struct {
	stdout, stderr io.Writer
	quiet          bool
}

func (p *printer) success(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(p.stdout, format+"\n", args...)
}

func (p *printer) info(format string, args ...interface{}) {
	fmt.Fprintf(p.stdout, format+"\n", args...)
}

func (p *printer) warn(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	color.New(color.FgYellow).Fprintf(p.stderr, "Warning: "+format+"\n", args...)
}

func (p *printer) fail(err error) {
	color.New(color.FgRed).Fprintf(p.stderr, "Error: %v\n", err)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := &configFlags{}
	fs := newFlagSet(flags)

	positional, err := parseArgs(fs, args)
	if err != nil {
		fmt.Fprintln(stderr, help.Usage(programName))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return apperr.ExitCode(apperr.New(apperr.KindUsage, "", err.Error(), nil))
	}

	cfg, cfgErr := config.LoadConfigOrDefault(flags.settingsFile)
	final := resolveConfiguration(cfg, fs, flags)

	color.NoColor = final.noColor || !isTerminal(stdout)
	out := &printer{stdout: stdout, stderr: stderr, quiet: final.quiet}

	if flags.showHelp {
		help.NewSystem(stdout, color.NoColor).ShowGeneralHelp(programName)
		return 0
	}
	if flags.showVersion {
		fmt.Fprintln(stdout, version.Info())
		return 0
	}

	if cfgErr != nil {
		out.warn("Error loading settings file: %v; using defaults", cfgErr)
	}

	if len(positional) != 1 {
		msg := "the following arguments are required: input_pdf"
		if len(positional) > 1 {
			msg = fmt.Sprintf("unrecognized arguments: %v", positional[1:])
		}
		fmt.Fprintln(stderr, help.Usage(programName))
		err := apperr.New(apperr.KindUsage, "", msg, nil)
		out.fail(err)
		return apperr.ExitCode(err)
	}

	var debugOut io.Writer
	if final.debug {
		debugOut = stderr
	}
	ed := editor.New(debugOut)

	res, err := ed.Run(ctx, editor.Options{
		InputPath:           positional[0],
		OutputPath:          flags.output,
		MetadataPath:        final.metadataFile,
		OutputSuffix:        final.outputSuffix,
		Strict:              final.strict,
		StampDates:          final.stampDates,
		PreservePermissions: final.preservePermissions,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			err = fmt.Errorf("interrupted, no output written")
		}
		out.fail(err)
		return apperr.ExitCode(err)
	}

	report(out, res, final.verbose)
	return 0
}

func report(out *printer, res *editor.Result, verbose bool) {
	for _, key := range res.Ignored {
		out.warn("Unknown metadata field '%s' ignored", key)
	}
	if len(res.Applied) == 0 {
		out.warn("No recognized metadata fields in '%s'", res.MetadataPath)
	}

	if verbose {
		for _, f := range res.Applied.Sorted() {
			out.info("Setting %s: %s", f, res.Applied[f])
		}
		out.info("Final PDF metadata:")
		for _, line := range res.Final.Lines() {
			out.info("  %s", line)
		}
	}

	out.success("Success! Updated PDF saved as '%s'", filepath.Clean(res.OutputPath))
}

// isTerminal checks if w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
