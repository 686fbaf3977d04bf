// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	for _, want := range []string{"pdfmeta", Version, GitCommit, Platform} {
		if !strings.Contains(info, want) {
			t.Errorf("expected %q in %q", want, info)
		}
	}
}
