// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfmeta/internal/formatters"
	_ "pdfmeta/internal/formatters/csv"
	_ "pdfmeta/internal/formatters/json"
	"pdfmeta/internal/formatters/shared"
	_ "pdfmeta/internal/formatters/text"
	_ "pdfmeta/internal/formatters/yaml"
	"pdfmeta/internal/inspect"
	"pdfmeta/internal/metadata"
)

func sampleReport() *inspect.Info {
	return &inspect.Info{
		Filename:     "report.pdf",
		FileSize:     2048,
		Version:      "1.7",
		PageCount:    3,
		Fields:       metadata.Mapping{metadata.Title: "Quarterly", metadata.Author: "Ops"},
		CreationDate: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Properties:   map[string]string{"Department": "Finance"},
	}
}

func TestRegistry_List(t *testing.T) {
	assert.Equal(t, []string{"csv", "json", "text", "yaml"}, formatters.List())

	r := formatters.NewRegistry()
	_, ok := r.Get("json")
	assert.False(t, ok)
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := formatters.Export("xml", nil, formatters.FormatterOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv, json, text, yaml")
}

func TestExport_Text(t *testing.T) {
	out, err := formatters.Export("text", []*inspect.Info{sampleReport()}, formatters.FormatterOptions{NoColor: true})
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"report.pdf (PDF 1.7, 3 page(s), 2048 bytes)",
		"  Title: Quarterly",
		"  Author: Ops",
		"  CreationDate: 2024-01-02 03:04:05 +00:00",
		"",
	}, "\n"), out)

	out, err = formatters.Export("text", []*inspect.Info{sampleReport()}, formatters.FormatterOptions{NoColor: true, Verbose: true})
	require.NoError(t, err)
	assert.Contains(t, out, "  Department: Finance\n")
}

func TestExport_JSONOmitsPropertiesUnlessVerbose(t *testing.T) {
	reports := []*inspect.Info{sampleReport()}

	out, err := formatters.Export("json", reports, formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.Contains(t, out, `"creation_date": "2024-01-02T03:04:05Z"`)
	assert.NotContains(t, out, "Department")
	assert.NotContains(t, out, "mod_date")

	out, err = formatters.Export("json", reports, formatters.FormatterOptions{Verbose: true})
	require.NoError(t, err)
	assert.Contains(t, out, `"Department": "Finance"`)
}

func TestConvertReports(t *testing.T) {
	resp := shared.ConvertReports([]*inspect.Info{sampleReport()}, false)
	require.Len(t, resp.Documents, 1)

	doc := resp.Documents[0]
	assert.Equal(t, map[string]string{"Title": "Quarterly", "Author": "Ops"}, doc.Fields)
	assert.Empty(t, doc.ModDate)
	assert.Nil(t, doc.Properties)
}
