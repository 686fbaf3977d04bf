// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestStandardObserver_DebugEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	obs := NewStandardObserver(ObservabilityDebug, &buf)

	obs.StartTiming("loader", "load", "metadata.json")(false, map[string]interface{}{"error": "boom"})

	var rec OperationRecord
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if rec.Component != "loader" || rec.Operation != "load" {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.Success {
		t.Error("expected success=false")
	}
	if rec.Error != "boom" {
		t.Errorf("expected error to be lifted from metadata, got %q", rec.Error)
	}
	if !strings.HasPrefix(rec.RunID, "run-") {
		t.Errorf("unexpected run id %q", rec.RunID)
	}
}

func TestStandardObserver_MetricsLevelIsSilent(t *testing.T) {
	var buf bytes.Buffer
	obs := NewStandardObserver(ObservabilityMetrics, &buf)
	obs.StartTiming("loader", "load", "")(true, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestStandardObserver_NilSafe(t *testing.T) {
	var obs *StandardObserver
	obs.StartTiming("x", "y", "")(true, nil)
	if obs.Level() != ObservabilityOff {
		t.Error("nil observer should report ObservabilityOff")
	}
	if NewStandardObserver(ObservabilityDebug, nil).Level() != ObservabilityOff {
		t.Error("observer without writer should be off")
	}
}

func TestDebugObserver_Steps(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebugObserver(&buf)

	done := d.StartStep("editor", "apply", "in.pdf")
	d.LogDetail("editor", "Title set")
	d.LogMetric("editor", "pages", 3)
	done(true, "")

	out := buf.String()
	for _, want := range []string{"→ editor: apply (in.pdf)", "  editor: Title set", "pages = 3", "editor: apply completed"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if d.StandardObserver.DebugObserver != d {
		t.Error("expected back reference to debug observer")
	}
}
