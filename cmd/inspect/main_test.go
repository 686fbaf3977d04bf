// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"pdfmeta/internal/testutil"
)

func runInspect(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Text(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WritePDF(t, dir, "a.pdf", map[string]string{
		"Title":        "Annual",
		"CreationDate": "D:20240102030405Z",
		"Company":      "ACME",
	})

	code, stdout, stderr := runInspect(path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "a.pdf (PDF 1.4, 1 page(s)")
	assert.Contains(t, stdout, "  Title: Annual\n")
	assert.Contains(t, stdout, "  CreationDate: 2024-01-02 03:04:05 +00:00\n")
	assert.NotContains(t, stdout, "Company")

	code, stdout, _ = runInspect("--verbose", path)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "  Company: ACME\n")
}

func TestRun_EmptyInfo(t *testing.T) {
	path := testutil.WritePDF(t, t.TempDir(), "bare.pdf", nil)

	code, stdout, _ := runInspect(path)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "no document information")
}

func TestRun_JSON(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "a.pdf", map[string]string{"Title": "A"})
	b := testutil.WritePDF(t, dir, "b.pdf", map[string]string{"Author": "B"})

	code, stdout, stderr := runInspect("--format", "json", a, b)
	require.Equal(t, 0, code, stderr)

	var got struct {
		Documents []struct {
			Filename  string            `json:"filename"`
			PageCount int               `json:"page_count"`
			Fields    map[string]string `json:"fields"`
		} `json:"documents"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got.Documents, 2)
	assert.Equal(t, "a.pdf", got.Documents[0].Filename)
	assert.Equal(t, map[string]string{"Title": "A"}, got.Documents[0].Fields)
	assert.Equal(t, map[string]string{"Author": "B"}, got.Documents[1].Fields)
	assert.Equal(t, 1, got.Documents[1].PageCount)
}

func TestRun_YAML(t *testing.T) {
	path := testutil.WritePDF(t, t.TempDir(), "a.pdf", map[string]string{"Keywords": "x, y"})

	code, stdout, _ := runInspect("--format", "yaml", path)
	require.Equal(t, 0, code)

	var got map[string][]map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	require.Len(t, got["documents"], 1)
	assert.Equal(t, map[string]interface{}{"Keywords": "x, y"}, got["documents"][0]["fields"])
}

func TestRun_CSV(t *testing.T) {
	path := testutil.WritePDF(t, t.TempDir(), "a.pdf", map[string]string{"Title": "Hello, world"})

	code, stdout, _ := runInspect("--format", "csv", path)
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Filename,PDF Version,Pages,Title,"))
	assert.True(t, strings.HasPrefix(lines[1], `a.pdf,1.4,1,"Hello, world",`))
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WritePDF(t, dir, "good.pdf", map[string]string{"Title": "ok"})

	code, _, _ := runInspect()
	assert.Equal(t, 2, code)

	code, _, stderr := runInspect("--format", "xml", good)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown format")

	code, stdout, stderr := runInspect(good, filepath.Join(dir, "missing.pdf"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Title: ok")
	assert.Contains(t, stderr, "missing.pdf")
}
