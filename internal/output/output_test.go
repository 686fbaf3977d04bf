// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfmeta/internal/apperr"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		explicit string
		suffix   string
		want     string
	}{
		{"default", "report.pdf", "", "", "report_updated.pdf"},
		{"same directory", filepath.Join("docs", "q3", "report.pdf"), "", "", filepath.Join("docs", "q3", "report_updated.pdf")},
		{"uppercase extension", "SCAN.PDF", "", "", "SCAN_updated.pdf"},
		{"dots in stem", "v1.2.final.pdf", "", "", "v1.2.final_updated.pdf"},
		{"custom suffix", "report.pdf", "", "_meta", "report_meta.pdf"},
		{"explicit wins", "report.pdf", filepath.Join("out", "x.pdf"), "", filepath.Join("out", "x.pdf")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.input, tt.explicit, tt.suffix))
		})
	}
}

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestWriteAtomic_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")

	require.NoError(t, NewWriter(nil).WriteAtomic(path, writeString("%PDF-1.4")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.Equal(t, []string{"out.pdf"}, listDir(t, dir))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMode, info.Mode().Perm())
}

func TestWriteAtomic_OverwritesAndKeepsMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

	require.NoError(t, NewWriter(nil).WriteAtomic(path, writeString("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWriteAtomic_FailureLeavesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

	boom := errors.New("serializer failed")
	err := NewWriter(nil).WriteAtomic(path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return boom
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.WriteError))
	assert.True(t, errors.Is(err, boom))

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "previous", string(data))
	assert.Equal(t, []string{"out.pdf"}, listDir(t, dir), "temporary file must be removed")
}

func TestWriteAtomic_WriteErrorPassesThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")

	rejected := apperr.New(apperr.KindWrite, path, "written metadata does not match the configuration for Title", nil)
	err := NewWriter(nil).WriteAtomic(path, func(w io.Writer) error {
		return rejected
	})

	assert.Same(t, rejected, err)
	assert.Empty(t, listDir(t, dir))
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "out.pdf")

	err := NewWriter(nil).WriteAtomic(path, writeString("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.WriteError))
	assert.Contains(t, err.Error(), "does not exist")
}

func TestWriteAtomic_DirectoryTarget(t *testing.T) {
	dir := t.TempDir()
	err := NewWriter(nil).WriteAtomic(dir, writeString("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.WriteError))
}
