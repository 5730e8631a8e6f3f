package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ludo-technologies/jsflow/domain"
)

func TestFlowUseCaseExecute(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app.js": "function f() { if (x) { return 1; } return 2; }",
	})

	var out bytes.Buffer
	useCase := NewDefaultFlowUseCase(false)
	response, err := useCase.Execute(&domain.FlowRequest{
		Paths:        []string{dir},
		Recursive:    true,
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &out,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if response.Summary.TotalFiles != 1 {
		t.Errorf("expected 1 analyzed file, got %d", response.Summary.TotalFiles)
	}
	if !strings.Contains(out.String(), "app.js") {
		t.Error("output should name the analyzed file")
	}
	if !strings.Contains(out.String(), "f") {
		t.Error("output should list the function graph")
	}
}

func TestFlowUseCaseDOTOutput(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"app.js": "while (x) { g(); }"})

	var out bytes.Buffer
	useCase := NewDefaultFlowUseCase(false)
	_, err := useCase.Execute(&domain.FlowRequest{
		Paths:        []string{dir},
		Recursive:    true,
		OutputFormat: domain.OutputFormatDOT,
		OutputWriter: &out,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out.String(), "digraph") {
		t.Error("DOT output expected")
	}
}

func TestFlowUseCaseNoPaths(t *testing.T) {
	useCase := NewDefaultFlowUseCase(false)
	if _, err := useCase.Execute(&domain.FlowRequest{}); err == nil {
		t.Error("missing paths should error")
	}
}

func TestFlowUseCaseNoJSFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"notes.txt": "hello"})

	useCase := NewDefaultFlowUseCase(false)
	if _, err := useCase.Execute(&domain.FlowRequest{Paths: []string{dir}, Recursive: true}); err == nil {
		t.Error("a directory without JavaScript files should error")
	}
}
