package flow

import (
	"fmt"

	"github.com/ludo-technologies/jsflow/internal/ast"
)

// enclosingKind distinguishes try frames, which break and continue must
// tunnel through, from every other jump-target frame.
type enclosingKind int

const (
	otherStatement enclosingKind = iota
	tryStatement
)

// finalizerCopy is one freshly parsed copy of a finally block.
type finalizerCopy struct {
	bodyEntry  *FlowNode
	completion Completion
}

// enclosingStatement is one frame of the enclosing-statement stack: a
// construct that can be the target of a non-local exit, or a try statement
// whose handler and finalizer abrupt exits must respect.
type enclosingStatement struct {
	kind           enclosingKind
	label          string
	breakTarget    *FlowNode
	continueTarget *FlowNode

	// try-statement state
	handler        *ast.Node
	handlerEntry   *FlowNode
	parseFinalizer func() (finalizerCopy, error)
	inTryBlock     bool
	inFinalizer    bool
}

// parseContext carries the per-build state the translators thread through:
// the graph under construction, the enclosing-statement stack, and the
// generators shared by every graph of the build.
type parseContext struct {
	functions *[]*FlowFunction
	graph     *ControlFlowGraph
	enclosing []*enclosingStatement

	nodeIDs     *idAllocator
	functionIDs *idAllocator
	tempVars    *idAllocator

	options  Options
	maxDepth int
	depth    int
}

// newParseContext creates the root context for one program build. All
// generators start fresh, so ids and temp names are deterministic per build.
func newParseContext(options Options) *parseContext {
	maxDepth := options.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	functions := []*FlowFunction{}
	ctx := &parseContext{
		functions:   &functions,
		nodeIDs:     &idAllocator{},
		functionIDs: &idAllocator{},
		tempVars:    &idAllocator{},
		options:     options,
		maxDepth:    maxDepth,
	}
	ctx.graph = NewControlFlowGraph(ctx.nodeIDs)
	return ctx
}

// sub creates the context for a nested function body: same generators and
// function accumulator, but a fresh graph and an empty enclosing-statement
// stack, since jump targets do not cross function boundaries.
func (c *parseContext) sub() *parseContext {
	sub := &parseContext{
		functions:   c.functions,
		nodeIDs:     c.nodeIDs,
		functionIDs: c.functionIDs,
		tempVars:    c.tempVars,
		options:     c.options,
		maxDepth:    c.maxDepth,
		depth:       c.depth,
	}
	sub.graph = NewControlFlowGraph(sub.nodeIDs)
	return sub
}

// createNode allocates a node in the current graph.
func (c *parseContext) createNode() *FlowNode {
	return c.graph.NewNode(KindNormal)
}

// createTempVarName yields a unique synthetic local name like $$temp1 or
// $$iter2. The hint only affects readability of labels.
func (c *parseContext) createTempVarName(hint string) string {
	if hint == "" {
		hint = "temp"
	}
	return fmt.Sprintf("$$%s%d", hint, c.tempVars.allocate()+1)
}

// createFunctionID yields the next function id.
func (c *parseContext) createFunctionID() int {
	return c.functionIDs.allocate()
}

// push adds a frame to the enclosing-statement stack.
func (c *parseContext) push(frame *enclosingStatement) {
	c.enclosing = append(c.enclosing, frame)
}

// pop removes the topmost frame.
func (c *parseContext) pop() {
	c.enclosing = c.enclosing[:len(c.enclosing)-1]
}

// enterStatement bumps the recursion depth, guarding against pathological
// nesting.
func (c *parseContext) enterStatement(stmt *ast.Node) error {
	c.depth++
	if c.depth > c.maxDepth {
		return buildErrorf(ErrInputTooDeep, stmt, "statement nesting exceeds %d levels", c.maxDepth)
	}
	return nil
}

func (c *parseContext) leaveStatement() {
	c.depth--
}
