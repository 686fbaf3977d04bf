// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"pdfmeta/internal/formatters"
	"pdfmeta/internal/formatters/shared"
	"pdfmeta/internal/inspect"
	"pdfmeta/internal/metadata"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import, one row per file"
}

func (f *Formatter) Format(reports []*inspect.Info, options formatters.FormatterOptions) (string, error) {
	headers := []string{"Filename", "PDF Version", "Pages"}
	for _, field := range metadata.Fields {
		headers = append(headers, string(field))
	}
	headers = append(headers, "CreationDate", "ModDate")

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("error formatting CSV: %w", err)
	}

	for _, r := range reports {
		row := []string{r.Filename, r.Version, strconv.Itoa(r.PageCount)}
		for _, field := range metadata.Fields {
			row = append(row, r.Fields[field])
		}
		row = append(row, shared.FormatDate(r.CreationDate), shared.FormatDate(r.ModDate))
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("error formatting CSV: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error formatting CSV: %w", err)
	}
	return b.String(), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
