package diagnostic

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDiagnosticsAccumulation(t *testing.T) {
	var d Diagnostics

	if d.HasErrors() || !d.IsValid() {
		t.Fatal("fresh diagnostics should be valid")
	}

	if d.Error() != nil {
		t.Fatal("valid diagnostics should produce no error")
	}

	d.AddWarning("attribute_dropped", "dropped", "r1", "NAME.E41/X")
	d.AddInfo("note", "fyi", "", "")

	if d.HasErrors() {
		t.Fatal("warnings must not count as errors")
	}

	d.AddError("unmapped_node_type", "no mapping", "r1", "MYSTERY.E99")

	if !d.HasErrors() || d.IsValid() {
		t.Fatal("expected errors after AddError")
	}

	err := d.Error()
	if err == nil || !strings.Contains(err.Error(), "unmapped_node_type") {
		t.Errorf("Error() = %v", err)
	}
}

func TestMerge(t *testing.T) {
	var a, b Diagnostics

	a.AddError("e1", "first", "", "")
	b.AddError("e2", "second", "", "")
	b.AddWarning("w1", "warn", "", "")

	a.Merge(b)

	if len(a.Errors) != 2 || len(a.Warnings) != 1 {
		t.Errorf("merge produced %d errors, %d warnings", len(a.Errors), len(a.Warnings))
	}
}

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{
			name: "full context",
			d:    Diagnostic{Code: "attribute_dropped", Message: "dropped", Instance: "r1", Attribute: "NAME.E41/X"},
			want: "[r1] NAME.E41/X: [attribute_dropped] dropped",
		},
		{
			name: "message only",
			d:    Diagnostic{Message: "plain"},
			want: "plain",
		},
		{
			name: "code without context",
			d:    Diagnostic{Code: "c", Message: "m"},
			want: "[c] m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeverityJSON(t *testing.T) {
	data, err := json.Marshal(Diagnostic{Severity: SeverityWarning, Code: "w"})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), `"severity":"warning"`) {
		t.Errorf("severity not serialized as name: %s", data)
	}
}

func TestSeverityString(t *testing.T) {
	if SeverityError.String() != "error" {
		t.Error("SeverityError name")
	}

	if Severity(99).String() != "unknown" {
		t.Error("unrecognized severity should fall back to unknown")
	}
}
