package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/jsflow/domain"
	"github.com/ludo-technologies/jsflow/internal/version"
)

// DOTFormatterConfig configures the DOT formatter behavior
type DOTFormatterConfig struct {
	// RankDir is the layout direction: TB, LR, BT, RL
	RankDir string

	// ShowLegend includes a legend subgraph
	ShowLegend bool
}

// DefaultDOTFormatterConfig returns a DOTFormatterConfig with sensible defaults
func DefaultDOTFormatterConfig() *DOTFormatterConfig {
	return &DOTFormatterConfig{
		RankDir:    "TB",
		ShowLegend: false,
	}
}

// DOTFormatter renders flow graphs as DOT for Graphviz
type DOTFormatter struct {
	config *DOTFormatterConfig
}

// NewDOTFormatter creates a new DOT formatter with the given configuration
func NewDOTFormatter(config *DOTFormatterConfig) *DOTFormatter {
	if config == nil {
		config = DefaultDOTFormatterConfig()
	}
	return &DOTFormatter{config: config}
}

// nodeStyles defines the shape and fill per node kind.
// This is effectively a constant map and should not be modified at runtime.
var nodeStyles = map[string]struct {
	shape string
	fill  string
}{
	"Entry":       {shape: "circle", fill: "#90EE90"},
	"SuccessExit": {shape: "doublecircle", fill: "#87CEEB"},
	"ErrorExit":   {shape: "doublecircle", fill: "#FF6B6B"},
	"Normal":      {shape: "circle", fill: "#FFFFFF"},
}

// edgeStyles defines the line style per edge kind.
var edgeStyles = map[string]string{
	"Epsilon":          "solid",
	"Conditional":      "solid",
	"AbruptCompletion": "dashed",
}

// validRankDirs contains the valid Graphviz rank directions
var validRankDirs = map[string]bool{
	"TB": true,
	"LR": true,
	"BT": true,
	"RL": true,
}

// FormatResponse renders every graph of the response as DOT and returns the
// string.
func (f *DOTFormatter) FormatResponse(response *domain.FlowResponse) (string, error) {
	var sb strings.Builder
	if err := f.WriteResponse(response, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteResponse writes every graph of the response as DOT.
func (f *DOTFormatter) WriteResponse(response *domain.FlowResponse, writer io.Writer) error {
	if response == nil {
		return fmt.Errorf("nil response")
	}
	if !validRankDirs[f.config.RankDir] {
		return fmt.Errorf("invalid rank direction %q: must be one of TB, LR, BT, RL", f.config.RankDir)
	}

	fmt.Fprintf(writer, "/* jsflow control flow graphs - version %s */\n", version.GetVersion())
	for _, file := range response.Files {
		fmt.Fprintf(writer, "// %s\n", file.FilePath)
		if err := f.writeGraph(writer, graphName(file.FilePath, "main"), file.Main); err != nil {
			return err
		}
		for _, fn := range file.Functions {
			name := fn.Name
			if name == "" {
				name = fmt.Sprintf("fn_%d", fn.ID)
			}
			if err := f.writeGraph(writer, graphName(file.FilePath, name), fn.Graph); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeGraph writes one flow graph as a digraph.
func (f *DOTFormatter) writeGraph(writer io.Writer, name string, graph *domain.FlowGraphInfo) error {
	if graph == nil {
		return fmt.Errorf("nil graph %q", name)
	}

	fmt.Fprintf(writer, "digraph %s {\n", name)
	fmt.Fprintf(writer, "    rankdir=%s;\n", f.config.RankDir)
	fmt.Fprintln(writer, "    node [fontname=\"Helvetica\", style=filled];")
	fmt.Fprintln(writer, "    edge [fontname=\"Helvetica\", fontsize=10];")
	fmt.Fprintln(writer)

	for _, node := range graph.Nodes {
		style := nodeStyles[node.Kind]
		if style.shape == "" {
			style = nodeStyles["Normal"]
		}
		fmt.Fprintf(writer, "    n%d [label=\"%d\", shape=%s, fillcolor=\"%s\"];\n",
			node.ID, node.ID, style.shape, style.fill)
	}
	fmt.Fprintln(writer)

	for _, edge := range graph.Edges {
		style := edgeStyles[edge.Kind]
		if style == "" {
			style = "solid"
		}
		fmt.Fprintf(writer, "    n%d -> n%d [style=%s", edge.From, edge.To, style)
		if edge.Label != "" {
			fmt.Fprintf(writer, ", label=\"%s\"", escapeDOTLabel(edge.Label))
		}
		fmt.Fprintln(writer, "];")
	}

	if f.config.ShowLegend {
		f.writeLegend(writer)
	}

	fmt.Fprintln(writer, "}")
	return nil
}

// writeLegend writes the legend subgraph
func (f *DOTFormatter) writeLegend(writer io.Writer) {
	fmt.Fprintln(writer, "    subgraph cluster_legend {")
	fmt.Fprintln(writer, "        label=\"Legend\";")
	fmt.Fprintln(writer, "        style=filled;")
	fmt.Fprintln(writer, "        fillcolor=\"#F5F5F5\";")
	fmt.Fprintln(writer, "        fontsize=10;")
	fmt.Fprintln(writer, "        legend_eps_a [label=\"\", style=invis, width=0, height=0];")
	fmt.Fprintln(writer, "        legend_eps_b [label=\"\", style=invis, width=0, height=0];")
	fmt.Fprintln(writer, "        legend_eps_a -> legend_eps_b [style=solid, label=\"epsilon\"];")
	fmt.Fprintln(writer, "        legend_abr_a [label=\"\", style=invis, width=0, height=0];")
	fmt.Fprintln(writer, "        legend_abr_b [label=\"\", style=invis, width=0, height=0];")
	fmt.Fprintln(writer, "        legend_abr_a -> legend_abr_b [style=dashed, label=\"abrupt\"];")
	fmt.Fprintln(writer, "    }")
}

// graphName derives a DOT-safe digraph identifier.
func graphName(filePath, suffix string) string {
	base := filePath
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	return escapeDOTID(base + "_" + suffix)
}

// escapeDOTID escapes a string for use as a DOT identifier
func escapeDOTID(id string) string {
	replacer := strings.NewReplacer(
		"/", "__",
		".", "_",
		"-", "_",
		"@", "_at_",
		" ", "_",
		":", "_",
		"<", "_",
		">", "_",
	)
	escaped := replacer.Replace(id)
	if len(escaped) > 0 && !isValidDOTIDStart(escaped[0]) {
		escaped = "_" + escaped
	}
	return escaped
}

// escapeDOTLabel escapes a string for use as a DOT label
func escapeDOTLabel(label string) string {
	// Backslash must be first to avoid double-escaping.
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", "\\n",
		"\r", "",
		"\t", "\\t",
	)
	return replacer.Replace(label)
}

// isValidDOTIDStart checks if a character can start a DOT identifier
func isValidDOTIDStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
