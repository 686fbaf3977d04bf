// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package inspect reads the document information dictionary of a PDF file
// with an independent reader, for reporting and verifying written output.
package inspect

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"pdfmeta/internal/metadata"
)

// Info represents PDF document metadata as found on disk
type Info struct {
	Filename     string
	FileSize     int64
	Version      string
	PageCount    int
	Fields       metadata.Mapping
	CreationDate time.Time
	ModDate      time.Time
	// Properties holds every other string entry of the information dictionary
	Properties map[string]string
}

var headerPattern = regexp.MustCompile(`%PDF-(\d+\.\d+)`)

// ReadFile reads the information dictionary of the PDF at path
func ReadFile(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("file error: %w", err)
	}

	return Read(f, st.Size(), filepath.Base(path))
}

// Read reads the information dictionary of the size bytes of PDF in r.
// name is reported as the Filename.
func Read(r io.ReaderAt, size int64, name string) (info *Info, err error) {
	// the reader panics on some malformed objects
	defer func() {
		if rec := recover(); rec != nil {
			info, err = nil, fmt.Errorf("malformed PDF %s: %v", name, rec)
		}
	}()

	pr, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}

	info = &Info{
		Filename:   name,
		FileSize:   size,
		Version:    readVersion(r),
		PageCount:  pr.NumPage(),
		Fields:     make(metadata.Mapping),
		Properties: make(map[string]string),
	}
	collect(pr.Trailer().Key("Info"), info)
	return info, nil
}

func collect(dict pdf.Value, info *Info) {
	if dict.Kind() != pdf.Dict {
		return
	}
	for _, key := range dict.Keys() {
		v := dict.Key(key)
		var text string
		switch v.Kind() {
		case pdf.String:
			text = v.Text()
		case pdf.Name:
			text = v.Name()
		default:
			continue
		}

		switch {
		case metadata.IsKnown(key):
			info.Fields[metadata.Field(key)] = text
		case key == "CreationDate":
			info.CreationDate, _ = ParseDate(text)
			info.Properties[key] = text
		case key == "ModDate":
			info.ModDate, _ = ParseDate(text)
			info.Properties[key] = text
		default:
			info.Properties[key] = text
		}
	}
}

func readVersion(r io.ReaderAt) string {
	head := make([]byte, 1024)
	n, _ := r.ReadAt(head, 0)
	if m := headerPattern.FindSubmatch(head[:n]); len(m) >= 2 {
		return string(m[1])
	}
	return "Unknown"
}

// Lines renders the recognized fields followed by the other properties,
// one "Key: value" line each, skipping empty values.
func (i *Info) Lines() []string {
	var out []string
	for _, f := range metadata.Fields {
		if v := i.Fields[f]; v != "" {
			out = append(out, fmt.Sprintf("%s: %s", f, v))
		}
	}
	keys := make([]string, 0, len(i.Properties))
	for k := range i.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := i.Properties[k]; v != "" {
			out = append(out, fmt.Sprintf("%s: %s", k, v))
		}
	}
	return out
}

// ParseDate parses a PDF date string of the form D:YYYYMMDDHHmmSSOHH'mm'
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimPrefix(dateStr, "D:")

	if len(dateStr) < 4 {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	year := extractInt(dateStr, 0, 4, 0)
	month := extractInt(dateStr, 4, 2, 1)
	day := extractInt(dateStr, 6, 2, 1)
	hour := extractInt(dateStr, 8, 2, 0)
	minute := extractInt(dateStr, 10, 2, 0)
	second := extractInt(dateStr, 12, 2, 0)

	loc := time.UTC
	if len(dateStr) >= 17 && (dateStr[14] == '+' || dateStr[14] == '-') {
		offset := extractInt(dateStr, 15, 2, 0)*3600 + extractInt(dateStr, 18, 2, 0)*60
		if dateStr[14] == '-' {
			offset = -offset
		}
		loc = time.FixedZone("", offset)
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), nil
}

// extractInt extracts an integer from a string with bounds checking
func extractInt(s string, start, length, defaultVal int) int {
	if start+length <= len(s) {
		val, err := strconv.Atoi(s[start : start+length])
		if err == nil {
			return val
		}
	}
	return defaultVal
}
