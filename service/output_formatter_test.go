package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ludo-technologies/jsflow/domain"
	"gopkg.in/yaml.v3"
)

func TestOutputFormatterJSON(t *testing.T) {
	formatter := NewOutputFormatter()
	out, err := formatter.Format(sampleResponse(), domain.OutputFormatJSON)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded domain.FlowResponse
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Files) != 1 || decoded.Files[0].FilePath != "src/app.js" {
		t.Errorf("decoded response lost data: %+v", decoded)
	}
	if decoded.Summary.TotalGraphs != 2 {
		t.Errorf("summary not serialized, got %+v", decoded.Summary)
	}
}

func TestOutputFormatterYAML(t *testing.T) {
	formatter := NewOutputFormatter()
	out, err := formatter.Format(sampleResponse(), domain.OutputFormatYAML)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded domain.FlowResponse
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded.Files) != 1 || len(decoded.Files[0].Functions) != 1 {
		t.Errorf("decoded response lost data: %+v", decoded)
	}
}

func TestOutputFormatterText(t *testing.T) {
	formatter := NewOutputFormatter()
	out, err := formatter.Format(sampleResponse(), domain.OutputFormatText)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	for _, want := range []string{
		"src/app.js",
		"<main>",
		"helper",
		"0 -> 3  [x]  (Conditional)",
		"Files: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestOutputFormatterDOT(t *testing.T) {
	formatter := NewOutputFormatter()
	out, err := formatter.Format(sampleResponse(), domain.OutputFormatDOT)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(out, "digraph") {
		t.Error("DOT output should contain digraphs")
	}
}

func TestOutputFormatterUnknownFormat(t *testing.T) {
	formatter := NewOutputFormatter()
	if _, err := formatter.Format(sampleResponse(), "csv"); err == nil {
		t.Error("unknown format should be rejected")
	}
}
