// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package editor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"pdfmeta/internal/apperr"
	"pdfmeta/internal/document"
	"pdfmeta/internal/inspect"
	"pdfmeta/internal/metadata"
	"pdfmeta/internal/observability"
	"pdfmeta/internal/output"
)

var (
	_ observability.Observable = (*Editor)(nil)
	_ observability.Observable = (*document.Transformer)(nil)
	_ observability.Observable = (*output.Writer)(nil)
)

// Options holds the resolved settings of one run
type Options struct {
	InputPath    string
	OutputPath   string // empty derives <input-stem><OutputSuffix>.pdf
	MetadataPath string
	OutputSuffix string

	Strict              bool
	StampDates          bool
	PreservePermissions bool
}

// Result describes a completed run
type Result struct {
	InputPath    string
	OutputPath   string
	MetadataPath string
	Applied      metadata.Mapping
	Ignored      []string
	PageCount    int

	// Final is the information dictionary of the written file as read back
	Final *inspect.Info
}

// Editor runs the load, transform and write pipeline
type Editor struct {
	observer *observability.StandardObserver
	debug    *observability.DebugObserver
	now      func() time.Time
}

// New creates an Editor. A non-nil debugOut enables the step trace.
func New(debugOut io.Writer) *Editor {
	e := &Editor{
		observer: observability.NewStandardObserver(observability.ObservabilityOff, nil),
		now:      time.Now,
	}
	if debugOut != nil {
		e.debug = observability.NewDebugObserver(debugOut)
		e.observer = e.debug.StandardObserver
	}
	return e
}

// SetClock replaces the time source used for date stamping
func (e *Editor) SetClock(now func() time.Time) {
	e.now = now
}

// GetComponentName returns the component name for observability
func (e *Editor) GetComponentName() string {
	return "editor"
}

// Run applies the metadata file to the input PDF and writes the output.
// The output is only created once the metadata and the input have both been
// read successfully and the serialized document reads back with every applied
// field intact.
func (e *Editor) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.InputPath == "" {
		return nil, apperr.New(apperr.KindUsage, "", "input PDF path is required", nil)
	}
	if opts.MetadataPath == "" {
		opts.MetadataPath = metadata.DefaultFile
	}

	res := &Result{
		InputPath:    opts.InputPath,
		OutputPath:   output.ResolvePath(opts.InputPath, opts.OutputPath, opts.OutputSuffix),
		MetadataPath: opts.MetadataPath,
	}

	done := e.step("load_metadata", opts.MetadataPath)
	loaded, err := metadata.Load(opts.MetadataPath, metadata.Options{Strict: opts.Strict})
	if err != nil {
		done(false, err.Error())
		return nil, err
	}
	res.Applied = loaded.Mapping.Clone()
	res.Ignored = loaded.Ignored
	for _, f := range loaded.Mapping.Sorted() {
		e.detail(fmt.Sprintf("%s = %q", f, loaded.Mapping[f]))
	}
	done(true, fmt.Sprintf("%d field(s), %d ignored", len(loaded.Mapping), len(loaded.Ignored)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done = e.step("transform", opts.InputPath)
	transformer := document.NewTransformer(e.observer)
	transformer.StampDates = opts.StampDates
	transformer.Now = e.now
	doc, err := transformer.Transform(opts.InputPath, loaded.Mapping)
	if err != nil {
		done(false, err.Error())
		return nil, err
	}
	res.PageCount = doc.PageCount()
	if e.debug != nil {
		e.debug.LogMetric(e.GetComponentName(), "pages", res.PageCount)
	}
	done(true, "")

	done = e.step("write", res.OutputPath)
	writer := output.NewWriter(e.observer)
	writer.SetPreservePermissions(opts.PreservePermissions)
	err = writer.WriteAtomic(res.OutputPath, func(w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := doc.Write(&buf); err != nil {
			return err
		}
		final, err := e.verify(res, buf.Bytes())
		if err != nil {
			return err
		}
		res.Final = final
		_, err = w.Write(buf.Bytes())
		return err
	})
	if err != nil {
		done(false, err.Error())
		return nil, err
	}
	done(true, "")

	return res, nil
}

// verify reads data back with an independent parser and checks every applied field
func (e *Editor) verify(res *Result, data []byte) (*inspect.Info, error) {
	done := e.step("verify", res.OutputPath)

	info, err := inspect.Read(bytes.NewReader(data), int64(len(data)), filepath.Base(res.OutputPath))
	if err != nil {
		done(false, err.Error())
		return nil, apperr.New(apperr.KindWrite, res.OutputPath, "written document cannot be read back", err)
	}

	var mismatched []string
	for _, f := range res.Applied.Sorted() {
		if info.Fields[f] != res.Applied[f] {
			mismatched = append(mismatched, string(f))
		}
	}
	if len(mismatched) > 0 {
		msg := "written metadata does not match the configuration for " + strings.Join(mismatched, ", ")
		done(false, msg)
		return nil, apperr.New(apperr.KindWrite, res.OutputPath, msg, nil)
	}

	done(true, fmt.Sprintf("%d field(s) verified", len(res.Applied)))
	return info, nil
}

func (e *Editor) step(name, path string) func(bool, string) {
	if e.debug == nil {
		return func(bool, string) {}
	}
	return e.debug.StartStep(e.GetComponentName(), name, path)
}

func (e *Editor) detail(msg string) {
	if e.debug != nil {
		e.debug.LogDetail(e.GetComponentName(), msg)
	}
}
