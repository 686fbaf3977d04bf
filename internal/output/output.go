// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pdfmeta/internal/apperr"
	"pdfmeta/internal/observability"
)

// DefaultSuffix is appended to the input stem when no output path is given
const DefaultSuffix = "_updated"

// DefaultMode is the permission of newly created output files
const DefaultMode os.FileMode = 0644

// ResolvePath returns explicit when set, otherwise <dir>/<stem><suffix>.pdf next to input
func ResolvePath(input, explicit, suffix string) string {
	if explicit != "" {
		return explicit
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+suffix+".pdf")
}

// Writer replaces files atomically through a temporary file in the same directory
type Writer struct {
	// observer handles observability and metrics
	observer *observability.StandardObserver

	// preservePermissions keeps the mode of a file being replaced
	preservePermissions bool
}

// NewWriter creates a Writer
func NewWriter(observer *observability.StandardObserver) *Writer {
	return &Writer{
		observer:            observer,
		preservePermissions: true,
	}
}

// GetComponentName returns the component name for observability
func (w *Writer) GetComponentName() string {
	return "output_writer"
}

// SetPreservePermissions controls whether a replaced file keeps its mode
func (w *Writer) SetPreservePermissions(preserve bool) {
	w.preservePermissions = preserve
}

// WriteAtomic streams fn's output into a temporary file and renames it onto path.
// An existing file at path is replaced; on any failure it is left untouched and
// the temporary file is removed.
func (w *Writer) WriteAtomic(path string, fn func(io.Writer) error) (err error) {
	finishTiming := w.observer.StartTiming(w.GetComponentName(), "write_atomic", path)
	defer func() {
		if err != nil {
			finishTiming(false, map[string]interface{}{"error": err.Error()})
			return
		}
		finishTiming(true, nil)
	}()

	if path == "" {
		return apperr.New(apperr.KindWrite, path, "output path cannot be empty", nil)
	}

	mode := DefaultMode
	if info, statErr := os.Stat(path); statErr == nil {
		if info.IsDir() {
			return apperr.New(apperr.KindWrite, path, "output path is a directory", nil)
		}
		if w.preservePermissions {
			mode = info.Mode().Perm()
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return apperr.New(apperr.KindWrite, path, "cannot create temporary file", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := fn(tmp); err != nil {
		if apperr.KindOf(err) == apperr.KindWrite {
			return err
		}
		return apperr.New(apperr.KindWrite, path, "cannot serialize document", err)
	}
	if err := tmp.Sync(); err != nil {
		return apperr.New(apperr.KindWrite, path, "cannot flush output", err)
	}
	if err := tmp.Close(); err != nil {
		return apperr.New(apperr.KindWrite, path, "cannot close output", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return apperr.New(apperr.KindWrite, path, fmt.Sprintf("cannot set mode %v", mode), err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return apperr.New(apperr.KindWrite, path, "cannot move output into place", err)
	}
	committed = true

	return nil
}
