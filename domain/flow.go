package domain

import "io"

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatDOT  OutputFormat = "dot"
)

// FlowRequest describes one flow-graph build run over a set of input files.
type FlowRequest struct {
	// Paths are the input files or directories to analyze
	Paths []string

	// Recursive indicates whether to walk directories recursively
	Recursive bool

	// IncludePatterns/ExcludePatterns filter collected files
	IncludePatterns []string
	ExcludePatterns []string

	// RespectGitignore skips files matched by .gitignore
	RespectGitignore bool

	// RewriteConstantConditionalEdges enables the constant-guard rewrite pass
	RewriteConstantConditionalEdges bool

	// RemoveTransitNodes enables transit-node splicing
	RemoveTransitNodes bool

	// MaxDepth bounds statement nesting (0 = engine default)
	MaxDepth int

	// OutputFormat selects the serialization
	OutputFormat OutputFormat

	// OutputWriter receives the formatted result
	OutputWriter io.Writer
}

// FlowNodeInfo is the serializable form of one flow node.
type FlowNodeInfo struct {
	ID   int    `json:"id" yaml:"id"`
	Kind string `json:"kind" yaml:"kind"`
}

// FlowEdgeInfo is the serializable form of one flow edge.
type FlowEdgeInfo struct {
	From  int    `json:"from" yaml:"from"`
	To    int    `json:"to" yaml:"to"`
	Kind  string `json:"kind" yaml:"kind"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// FlowGraphInfo is the serializable form of one control flow graph.
type FlowGraphInfo struct {
	Entry       int            `json:"entry" yaml:"entry"`
	SuccessExit int            `json:"success_exit" yaml:"success_exit"`
	ErrorExit   int            `json:"error_exit" yaml:"error_exit"`
	Nodes       []FlowNodeInfo `json:"nodes" yaml:"nodes"`
	Edges       []FlowEdgeInfo `json:"edges" yaml:"edges"`
}

// FlowFunctionInfo pairs a function with its graph.
type FlowFunctionInfo struct {
	ID    int            `json:"id" yaml:"id"`
	Name  string         `json:"name" yaml:"name"`
	Graph *FlowGraphInfo `json:"graph" yaml:"graph"`
}

// FileFlowResult holds the flow program built for a single file.
type FileFlowResult struct {
	// FilePath is the path to the analyzed file
	FilePath string `json:"file_path" yaml:"file_path"`

	// Main is the top-level flow graph
	Main *FlowGraphInfo `json:"main" yaml:"main"`

	// Functions are the per-function graphs, in the order their bodies finish
	// translating (a nested function comes before the function containing it)
	Functions []FlowFunctionInfo `json:"functions" yaml:"functions"`
}

// FlowSummary provides aggregate statistics
type FlowSummary struct {
	TotalFiles     int `json:"total_files" yaml:"total_files"`
	TotalGraphs    int `json:"total_graphs" yaml:"total_graphs"`
	TotalNodes     int `json:"total_nodes" yaml:"total_nodes"`
	TotalEdges     int `json:"total_edges" yaml:"total_edges"`
	TotalFunctions int `json:"total_functions" yaml:"total_functions"`
}

// FlowResponse is the complete result of a flow run.
type FlowResponse struct {
	Files       []*FileFlowResult `json:"files" yaml:"files"`
	Summary     FlowSummary       `json:"summary" yaml:"summary"`
	Warnings    []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	GeneratedAt string            `json:"generated_at" yaml:"generated_at"`
	Version     string            `json:"version" yaml:"version"`
}

// FlowService builds flow graphs for a request.
type FlowService interface {
	Analyze(req *FlowRequest, files []string) (*FlowResponse, error)
}

// OutputFormatter renders a flow response.
type OutputFormatter interface {
	// Format renders the response as a string
	Format(response *FlowResponse, format OutputFormat) (string, error)

	// Write renders the response into the writer
	Write(response *FlowResponse, format OutputFormat, writer io.Writer) error
}

// ProgressManager reports long-running task progress to the user.
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks a single task's progress.
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}
