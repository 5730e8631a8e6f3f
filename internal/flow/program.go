package flow

import (
	"github.com/ludo-technologies/jsflow/internal/ast"
)

// DefaultMaxDepth bounds statement nesting when Options.MaxDepth is unset.
const DefaultMaxDepth = 1000

// PassOptions selects the opt-in optimization passes. Unreachable-node
// removal and final collection always run.
type PassOptions struct {
	RewriteConstantConditionalEdges bool
	RemoveTransitNodes              bool
}

// Options configures a program build.
type Options struct {
	Passes   PassOptions
	MaxDepth int
}

// FlowFunction is the flow graph of one user function.
type FlowFunction struct {
	ID        int
	Name      string
	FlowGraph *ControlFlowGraph
}

// FlowProgram is the result of a build: the top-level graph plus one graph
// per function, in the order their bodies finish translating (a nested
// function comes before the function that contains it).
type FlowProgram struct {
	FlowGraph *ControlFlowGraph
	Functions []*FlowFunction
}

// ParseProgram builds a FlowProgram from a Program AST. The AST is
// normalized in place first (named function expressions become
// declarations). On failure no partial program is returned.
func ParseProgram(program *ast.Node, options Options) (*FlowProgram, error) {
	if program == nil {
		return nil, buildErrorf(ErrInvalidInput, nil, "input AST is nil")
	}
	if program.Type != ast.TypeProgram {
		return nil, buildErrorf(ErrInvalidInput, program,
			"top-level node is %q, expected %q", string(program.Type), string(ast.TypeProgram))
	}

	ast.NormalizeFunctionExpressions(program)

	ctx := newParseContext(options)
	completion, err := ctx.parseStatements(program.Body, ctx.graph.Entry)
	if err != nil {
		return nil, err
	}
	if completion.IsNormal() {
		ctx.graph.AppendEpsilonEdge(completion.Node, ctx.graph.SuccessExit)
	}

	result := &FlowProgram{
		FlowGraph: ctx.graph,
		Functions: *ctx.functions,
	}

	RunPasses(result.FlowGraph, options.Passes)
	for _, fn := range result.Functions {
		RunPasses(fn.FlowGraph, options.Passes)
	}
	return result, nil
}
