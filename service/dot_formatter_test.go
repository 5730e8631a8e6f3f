package service

import (
	"strings"
	"testing"

	"github.com/ludo-technologies/jsflow/domain"
)

func sampleResponse() *domain.FlowResponse {
	return &domain.FlowResponse{
		Files: []*domain.FileFlowResult{
			{
				FilePath: "src/app.js",
				Main: &domain.FlowGraphInfo{
					Entry:       0,
					SuccessExit: 1,
					ErrorExit:   2,
					Nodes: []domain.FlowNodeInfo{
						{ID: 0, Kind: "Entry"},
						{ID: 3, Kind: "Normal"},
						{ID: 1, Kind: "SuccessExit"},
					},
					Edges: []domain.FlowEdgeInfo{
						{From: 0, To: 3, Kind: "Conditional", Label: "x"},
						{From: 3, To: 1, Kind: "AbruptCompletion", Label: "return x"},
					},
				},
				Functions: []domain.FlowFunctionInfo{
					{
						ID:   0,
						Name: "helper",
						Graph: &domain.FlowGraphInfo{
							Entry:       4,
							SuccessExit: 5,
							ErrorExit:   6,
							Nodes: []domain.FlowNodeInfo{
								{ID: 4, Kind: "Entry"},
								{ID: 5, Kind: "SuccessExit"},
							},
							Edges: []domain.FlowEdgeInfo{
								{From: 4, To: 5, Kind: "Epsilon"},
							},
						},
					},
				},
			},
		},
		Summary: domain.FlowSummary{TotalFiles: 1, TotalGraphs: 2, TotalFunctions: 1, TotalNodes: 5, TotalEdges: 3},
	}
}

func TestDOTFormatterOutput(t *testing.T) {
	formatter := NewDOTFormatter(nil)
	out, err := formatter.FormatResponse(sampleResponse())
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}

	for _, want := range []string{
		"digraph app_js_main {",
		"digraph app_js_helper {",
		"rankdir=TB;",
		"n0 [label=\"0\", shape=circle, fillcolor=\"#90EE90\"];",
		"n0 -> n3 [style=solid, label=\"x\"];",
		"n3 -> n1 [style=dashed, label=\"return x\"];",
		"n4 -> n5 [style=solid];",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
}

func TestDOTFormatterEscapesLabels(t *testing.T) {
	response := sampleResponse()
	response.Files[0].Main.Edges[0].Label = `s = "quoted"`

	out, err := NewDOTFormatter(nil).FormatResponse(response)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(out, `label="s = \"quoted\""`) {
		t.Errorf("quotes should be escaped:\n%s", out)
	}
}

func TestDOTFormatterRejectsBadRankDir(t *testing.T) {
	formatter := NewDOTFormatter(&DOTFormatterConfig{RankDir: "XX"})
	if _, err := formatter.FormatResponse(sampleResponse()); err == nil {
		t.Error("invalid rank direction should be rejected")
	}
}

func TestDOTFormatterNilResponse(t *testing.T) {
	if _, err := NewDOTFormatter(nil).FormatResponse(nil); err == nil {
		t.Error("nil response should be rejected")
	}
}

func TestEscapeDOTID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"app.js_main", "app_js_main"},
		{"src/app", "src__app"},
		{"0weird", "_0weird"},
	}
	for _, tt := range tests {
		if got := escapeDOTID(tt.in); got != tt.want {
			t.Errorf("escapeDOTID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
