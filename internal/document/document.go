// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"pdfmeta/internal/apperr"
	"pdfmeta/internal/metadata"
	"pdfmeta/internal/observability"
)

// Date entries maintained alongside the editable fields
const (
	keyCreationDate = "CreationDate"
	keyModDate      = "ModDate"
)

// Transformer opens PDF documents and merges metadata into them
type Transformer struct {
	// observer handles observability and metrics
	observer *observability.StandardObserver

	// pdfConfig contains PDF-specific configuration
	pdfConfig *model.Configuration

	// StampDates adds CreationDate when missing and refreshes ModDate
	StampDates bool

	// Now supplies the timestamp used for date stamping
	Now func() time.Time
}

// NewTransformer creates a Transformer with relaxed PDF validation
func NewTransformer(observer *observability.StandardObserver) *Transformer {
	if observer == nil {
		observer = observability.NewStandardObserver(observability.ObservabilityOff, nil)
	}

	pdfConfig := model.NewDefaultConfiguration()
	pdfConfig.ValidationMode = model.ValidationRelaxed

	return &Transformer{
		observer:   observer,
		pdfConfig:  pdfConfig,
		StampDates: true,
		Now:        time.Now,
	}
}

// GetComponentName returns the component name for observability
func (t *Transformer) GetComponentName() string {
	return "document_transformer"
}

// Transform opens the PDF at path and merges m into its information dictionary.
// Nothing is written to disk.
func (t *Transformer) Transform(path string, m metadata.Mapping) (*Document, error) {
	doc, err := t.Open(path)
	if err != nil {
		return nil, err
	}
	if err := doc.Apply(m, t.stamp()); err != nil {
		return nil, err
	}
	return doc, nil
}

func (t *Transformer) stamp() time.Time {
	if !t.StampDates {
		return time.Time{}
	}
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

// Open reads and validates the PDF at path
func (t *Transformer) Open(path string) (*Document, error) {
	finish := t.observer.StartTiming(t.GetComponentName(), "open", path)

	doc, err := t.open(path)
	if err != nil {
		finish(false, map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	finish(true, map[string]interface{}{"pages": doc.PageCount()})
	return doc, nil
}

func (t *Transformer) open(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperr.New(apperr.KindDocumentOpen, path, "cannot access input file", err)
	}
	if info.IsDir() {
		return nil, apperr.New(apperr.KindDocumentOpen, path, "input path is a directory", nil)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, apperr.New(apperr.KindDocumentOpen, path, "input file must be a PDF file", nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.New(apperr.KindDocumentOpen, path, "cannot open input file", err)
	}

	return t.read(data, path)
}

// Read parses a PDF from r; name is only used in error messages
func (t *Transformer) Read(r io.Reader, name string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperr.New(apperr.KindDocumentOpen, name, "cannot read input", err)
	}
	return t.read(data, name)
}

func (t *Transformer) read(data []byte, name string) (*Document, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), t.pdfConfig)
	if err != nil {
		return nil, apperr.New(apperr.KindDocumentOpen, name, "not a readable PDF", err)
	}
	if ctx.Encrypt != nil {
		return nil, apperr.New(apperr.KindDocumentOpen, name, "encrypted documents are not supported", nil)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, apperr.New(apperr.KindDocumentOpen, name, "invalid PDF structure", err)
	}

	return &Document{path: name, ctx: ctx, orig: data}, nil
}

// Document is an opened PDF whose information dictionary can be edited in memory
type Document struct {
	path string
	ctx  *model.Context

	// orig holds the input bytes; Write appends an update section to them
	orig []byte
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Apply merges m into the information dictionary.
// Keys absent from m are left as they are. A zero stamp disables date stamping.
func (d *Document) Apply(m metadata.Mapping, stamp time.Time) error {
	info, err := d.infoDict(true)
	if err != nil {
		return apperr.New(apperr.KindDocumentOpen, d.path, "cannot access document information dictionary", err)
	}

	for _, field := range m.Sorted() {
		obj, err := encodeText(m[field])
		if err != nil {
			return apperr.New(apperr.KindDocumentOpen, d.path, fmt.Sprintf("cannot encode %s", field), err)
		}
		info.Update(string(field), obj)
	}

	if !stamp.IsZero() {
		now := types.StringLiteral(types.DateString(stamp))
		if _, found := info.Find(keyCreationDate); !found {
			info.Update(keyCreationDate, now)
		}
		info.Update(keyModDate, now)
	}

	return nil
}

// Fields returns the recognized fields currently set in the information dictionary
func (d *Document) Fields() (metadata.Mapping, error) {
	out := make(metadata.Mapping)

	info, err := d.infoDict(false)
	if err != nil || info == nil {
		return out, err
	}

	for _, field := range metadata.Fields {
		obj, found := info.Find(string(field))
		if !found || obj == nil {
			continue
		}
		obj, err = d.ctx.Dereference(obj)
		if err != nil {
			return nil, err
		}
		if s, ok := decodeText(obj); ok {
			out[field] = s
		}
	}
	return out, nil
}

// Write serializes the document to w as the unchanged input followed by an
// incremental update that carries only the information dictionary.
// Producer and the date entries are written exactly as they stand in the dictionary.
func (d *Document) Write(w io.Writer) error {
	if d.ctx.Info == nil {
		return errors.New("document has no information dictionary")
	}

	if _, err := w.Write(d.orig); err != nil {
		return err
	}
	offset := int64(len(d.orig))
	if !bytes.HasSuffix(d.orig, []byte("\n")) && !bytes.HasSuffix(d.orig, []byte("\r")) {
		n, err := io.WriteString(w, "\n")
		if err != nil {
			return err
		}
		offset += int64(n)
	}

	// the update section must use the same cross-reference form as the input
	// or readers following /Prev cannot chain them
	d.ctx.WriteXRefStream = d.ctx.Read.UsingXRefStreams
	d.ctx.Write.Increment = true
	d.ctx.Write.Offset = offset
	d.ctx.Write.Table = map[int]int64{}
	d.ctx.Write.IncrementWithObjNr(d.ctx.Info.ObjectNumber.Value())

	return api.WriteIncrement(d.ctx, w)
}

// infoDict returns the document information dictionary, creating an empty one when create is set
func (d *Document) infoDict(create bool) (types.Dict, error) {
	if d.ctx.Info != nil {
		info, err := d.ctx.DereferenceDict(*d.ctx.Info)
		if err != nil {
			return nil, err
		}
		if info != nil {
			return info, nil
		}
	}
	if !create {
		return nil, nil
	}

	info := types.NewDict()
	ref, err := d.ctx.IndRefForNewObject(info)
	if err != nil {
		return nil, err
	}
	d.ctx.Info = ref
	return info, nil
}
