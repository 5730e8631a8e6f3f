package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/jsflow/domain"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl implements domain.OutputFormatter
type OutputFormatterImpl struct {
	dot *DOTFormatter
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{dot: NewDOTFormatter(nil)}
}

// Format renders the response as a string
func (f *OutputFormatterImpl) Format(response *domain.FlowResponse, format domain.OutputFormat) (string, error) {
	var sb strings.Builder
	if err := f.Write(response, format, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write renders the response into the writer
func (f *OutputFormatterImpl) Write(response *domain.FlowResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil {
		return fmt.Errorf("nil response")
	}

	switch format {
	case domain.OutputFormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	case domain.OutputFormatYAML:
		encoder := yaml.NewEncoder(writer)
		defer encoder.Close()
		return encoder.Encode(response)
	case domain.OutputFormatDOT:
		return f.dot.WriteResponse(response, writer)
	case domain.OutputFormatText, "":
		return f.writeText(response, writer)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// writeText renders a human-readable summary with one section per graph.
func (f *OutputFormatterImpl) writeText(response *domain.FlowResponse, writer io.Writer) error {
	for _, file := range response.Files {
		fmt.Fprintf(writer, "%s\n", file.FilePath)
		writeTextGraph(writer, "<main>", file.Main)
		for _, fn := range file.Functions {
			name := fn.Name
			if name == "" {
				name = fmt.Sprintf("<anonymous #%d>", fn.ID)
			}
			writeTextGraph(writer, name, fn.Graph)
		}
		fmt.Fprintln(writer)
	}

	s := response.Summary
	fmt.Fprintf(writer, "Files: %d  Graphs: %d  Functions: %d  Nodes: %d  Edges: %d\n",
		s.TotalFiles, s.TotalGraphs, s.TotalFunctions, s.TotalNodes, s.TotalEdges)

	for _, warning := range response.Warnings {
		fmt.Fprintf(writer, "warning: %s\n", warning)
	}
	return nil
}

func writeTextGraph(writer io.Writer, name string, graph *domain.FlowGraphInfo) {
	fmt.Fprintf(writer, "  %s (entry %d, %d nodes, %d edges)\n",
		name, graph.Entry, len(graph.Nodes), len(graph.Edges))
	for _, edge := range graph.Edges {
		line := fmt.Sprintf("    %d -> %d", edge.From, edge.To)
		if edge.Label != "" {
			line += fmt.Sprintf("  [%s]", edge.Label)
		}
		if edge.Kind != "Epsilon" {
			line += fmt.Sprintf("  (%s)", edge.Kind)
		}
		fmt.Fprintln(writer, line)
	}
}
