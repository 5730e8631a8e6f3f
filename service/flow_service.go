package service

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/ludo-technologies/jsflow/domain"
	"github.com/ludo-technologies/jsflow/internal/ast"
	"github.com/ludo-technologies/jsflow/internal/flow"
	"github.com/ludo-technologies/jsflow/internal/version"
)

// FlowServiceImpl implements domain.FlowService: it parses each input file,
// builds its flow program, and converts the graphs into their serializable
// form.
type FlowServiceImpl struct {
	executor *ParallelExecutor
	progress domain.ProgressManager
}

// NewFlowService creates a flow service. progress may be nil.
func NewFlowService(progress domain.ProgressManager) *FlowServiceImpl {
	if progress == nil {
		progress = &NoOpProgressManager{}
	}
	return &FlowServiceImpl{
		executor: NewParallelExecutor(),
		progress: progress,
	}
}

// Analyze builds flow programs for every file and aggregates the response.
// Files that fail to parse or build are reported as warnings; the run only
// fails when nothing could be analyzed.
func (s *FlowServiceImpl) Analyze(req *domain.FlowRequest, files []string) (*domain.FlowResponse, error) {
	if len(files) == 0 {
		return nil, domain.NewFileError("no input files to analyze", nil)
	}

	options := flow.Options{
		Passes: flow.PassOptions{
			RewriteConstantConditionalEdges: req.RewriteConstantConditionalEdges,
			RemoveTransitNodes:              req.RemoveTransitNodes,
		},
		MaxDepth: req.MaxDepth,
	}

	task := s.progress.StartTask("Building flow graphs", len(files))
	defer task.Complete()

	var mu sync.Mutex
	results := make([]*domain.FileFlowResult, 0, len(files))
	var warnings []string

	tasks := make([]Task, 0, len(files))
	for _, file := range files {
		tasks = append(tasks, Task{
			Name: file,
			Run: func(file string) func() error {
				return func() error {
					result, err := analyzeFile(file, options)
					mu.Lock()
					defer mu.Unlock()
					task.Increment(1)
					if err != nil {
						warnings = append(warnings, fmt.Sprintf("%s: %v", file, err))
						return nil
					}
					results = append(results, result)
					return nil
				}
			}(file),
		})
	}

	if err := s.executor.Run(tasks); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, domain.NewParseError("all input files failed to analyze", nil)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].FilePath < results[j].FilePath
	})

	response := &domain.FlowResponse{
		Files:       results,
		Warnings:    warnings,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}
	response.Summary = summarize(results)
	return response, nil
}

// analyzeFile parses one file and builds its flow program. Each call owns a
// private parser: tree-sitter parsers are not safe for concurrent use.
func analyzeFile(file string, options flow.Options) (*domain.FileFlowResult, error) {
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, domain.NewFileError("failed to read file", err)
	}

	parser := ast.NewParser()
	defer parser.Close()

	root, err := parser.ParseFile(file, source)
	if err != nil {
		return nil, domain.NewParseError("failed to parse file", err)
	}

	program, err := flow.ParseProgram(root, options)
	if err != nil {
		return nil, wrapBuildError(err)
	}

	result := &domain.FileFlowResult{
		FilePath: file,
		Main:     convertGraph(program.FlowGraph),
	}
	for _, fn := range program.Functions {
		result.Functions = append(result.Functions, domain.FlowFunctionInfo{
			ID:    fn.ID,
			Name:  fn.Name,
			Graph: convertGraph(fn.FlowGraph),
		})
	}
	return result, nil
}

// wrapBuildError maps engine error kinds onto domain error codes.
func wrapBuildError(err error) error {
	switch {
	case flow.IsKind(err, flow.ErrInvalidInput):
		return domain.NewInvalidInputError("invalid program", err)
	case flow.IsKind(err, flow.ErrUnsupportedConstruct):
		return domain.NewUnsupportedError("unsupported construct", err)
	case flow.IsKind(err, flow.ErrInputTooDeep):
		return &domain.FlowError{Code: domain.ErrCodeTooDeep, Message: "input too deeply nested", Err: err}
	case flow.IsKind(err, flow.ErrIllegalJumpTarget):
		return &domain.FlowError{Code: domain.ErrCodeIllegalJump, Message: "illegal jump target", Err: err}
	default:
		return err
	}
}

// convertGraph flattens a control flow graph into its serializable form.
func convertGraph(g *flow.ControlFlowGraph) *domain.FlowGraphInfo {
	info := &domain.FlowGraphInfo{
		Entry:       g.Entry.ID,
		SuccessExit: g.SuccessExit.ID,
		ErrorExit:   g.ErrorExit.ID,
		Nodes:       make([]domain.FlowNodeInfo, 0, len(g.Nodes)),
		Edges:       make([]domain.FlowEdgeInfo, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		info.Nodes = append(info.Nodes, domain.FlowNodeInfo{ID: n.ID, Kind: n.Kind.String()})
	}
	for _, e := range g.Edges {
		info.Edges = append(info.Edges, domain.FlowEdgeInfo{
			From:  e.Source.ID,
			To:    e.Target.ID,
			Kind:  e.Kind.String(),
			Label: e.Label,
		})
	}
	return info
}

func summarize(results []*domain.FileFlowResult) domain.FlowSummary {
	summary := domain.FlowSummary{TotalFiles: len(results)}
	count := func(g *domain.FlowGraphInfo) {
		summary.TotalGraphs++
		summary.TotalNodes += len(g.Nodes)
		summary.TotalEdges += len(g.Edges)
	}
	for _, r := range results {
		count(r.Main)
		for _, fn := range r.Functions {
			summary.TotalFunctions++
			count(fn.Graph)
		}
	}
	return summary
}
