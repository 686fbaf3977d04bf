// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"time"

	"pdfmeta/internal/inspect"
	"pdfmeta/internal/metadata"
)

// Response represents the top-level structure for JSON/YAML output
type Response struct {
	Documents []Document `json:"documents" yaml:"documents"`
}

// Document represents one file's metadata in JSON/YAML format
type Document struct {
	Filename     string            `json:"filename" yaml:"filename"`
	FileSize     int64             `json:"file_size" yaml:"file_size"`
	Version      string            `json:"pdf_version" yaml:"pdf_version"`
	PageCount    int               `json:"page_count" yaml:"page_count"`
	Fields       map[string]string `json:"fields" yaml:"fields"`
	CreationDate string            `json:"creation_date,omitempty" yaml:"creation_date,omitempty"`
	ModDate      string            `json:"mod_date,omitempty" yaml:"mod_date,omitempty"`
	Properties   map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// ConvertReports converts inspection results to the JSON/YAML structure.
// Properties are only included when verbose is set.
func ConvertReports(reports []*inspect.Info, verbose bool) Response {
	docs := make([]Document, 0, len(reports))
	for _, r := range reports {
		doc := Document{
			Filename:     r.Filename,
			FileSize:     r.FileSize,
			Version:      r.Version,
			PageCount:    r.PageCount,
			Fields:       make(map[string]string, len(r.Fields)),
			CreationDate: FormatDate(r.CreationDate),
			ModDate:      FormatDate(r.ModDate),
		}
		for _, f := range metadata.Fields {
			if v, ok := r.Fields[f]; ok {
				doc.Fields[string(f)] = v
			}
		}
		if verbose && len(r.Properties) > 0 {
			doc.Properties = r.Properties
		}
		docs = append(docs, doc)
	}
	return Response{Documents: docs}
}

// FormatDate renders t as RFC 3339, or "" for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
