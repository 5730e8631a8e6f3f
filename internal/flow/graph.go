package flow

import (
	"github.com/ludo-technologies/jsflow/internal/ast"
)

// NodeKind classifies a flow node.
type NodeKind int

const (
	// KindNormal is an ordinary point between two operations.
	KindNormal NodeKind = iota

	// KindEntry is the unique entry node of a graph.
	KindEntry

	// KindSuccessExit is the unique normal-termination sink of a graph.
	KindSuccessExit

	// KindErrorExit is the unique uncaught-exception sink of a graph.
	KindErrorExit
)

// String returns the node kind name used in serialized output.
func (k NodeKind) String() string {
	switch k {
	case KindEntry:
		return "Entry"
	case KindSuccessExit:
		return "SuccessExit"
	case KindErrorExit:
		return "ErrorExit"
	default:
		return "Normal"
	}
}

// EdgeKind classifies a flow edge.
type EdgeKind int

const (
	// EdgeEpsilon is an unconditional transfer with no guard.
	EdgeEpsilon EdgeKind = iota

	// EdgeConditional is taken only when its guard expression is truthy.
	// Conditional edges come in complementary pairs out of the same node.
	EdgeConditional

	// EdgeAbruptCompletion is a break/continue/return/throw transition.
	EdgeAbruptCompletion
)

// String returns the edge kind name used in serialized output.
func (k EdgeKind) String() string {
	switch k {
	case EdgeConditional:
		return "Conditional"
	case EdgeAbruptCompletion:
		return "AbruptCompletion"
	default:
		return "Epsilon"
	}
}

// FlowNode is a vertex of a control flow graph. Edge lists are ordered by
// insertion and bidirectional for fast traversal in either direction.
type FlowNode struct {
	ID       int
	Kind     NodeKind
	Outgoing []*FlowEdge
	Incoming []*FlowEdge
}

// FlowEdge is a directed edge between two flow nodes. Label is display-only;
// AST, when set, is the surface expression that justifies the edge (the
// guard of a conditional, the argument of a return or throw).
type FlowEdge struct {
	Source *FlowNode
	Target *FlowNode
	Kind   EdgeKind
	Label  string
	AST    *ast.Node
}

// ControlFlowGraph is one flow graph: the top-level program's or a single
// function body's. Nodes and Edges are filled in by the final collection
// pass; until then the graph is defined by reachability from Entry.
type ControlFlowGraph struct {
	Entry       *FlowNode
	SuccessExit *FlowNode
	ErrorExit   *FlowNode
	Nodes       []*FlowNode
	Edges       []*FlowEdge

	ids *idAllocator
}

// idAllocator hands out monotonically increasing ids. It is shared between
// a program graph and every function graph of the same build, so node ids
// are unique across the whole FlowProgram.
type idAllocator struct {
	next int
}

func (a *idAllocator) allocate() int {
	id := a.next
	a.next++
	return id
}

// NewControlFlowGraph creates an empty graph with its entry and exit nodes,
// drawing ids from the given allocator.
func NewControlFlowGraph(ids *idAllocator) *ControlFlowGraph {
	g := &ControlFlowGraph{ids: ids}
	g.Entry = g.NewNode(KindEntry)
	g.SuccessExit = g.NewNode(KindSuccessExit)
	g.ErrorExit = g.NewNode(KindErrorExit)
	return g
}

// NewNode allocates a fresh node in the graph.
func (g *ControlFlowGraph) NewNode(kind NodeKind) *FlowNode {
	return &FlowNode{ID: g.ids.allocate(), Kind: kind}
}

// Connect installs an edge from source to target. A duplicate of an
// existing edge (same target, kind and guard out of the same source) is
// collapsed onto the existing edge.
func (g *ControlFlowGraph) Connect(source, target *FlowNode, kind EdgeKind, label string, ref *ast.Node) *FlowEdge {
	for _, e := range source.Outgoing {
		if e.Target == target && e.Kind == kind && e.AST == ref {
			return e
		}
	}
	edge := &FlowEdge{Source: source, Target: target, Kind: kind, Label: label, AST: ref}
	source.Outgoing = append(source.Outgoing, edge)
	target.Incoming = append(target.Incoming, edge)
	return edge
}

// Append creates a new Normal node reached from source by an edge of the
// given kind, and returns it for chaining.
func (g *ControlFlowGraph) Append(source *FlowNode, label string, kind EdgeKind, ref *ast.Node) *FlowNode {
	target := g.NewNode(KindNormal)
	g.Connect(source, target, kind, label, ref)
	return target
}

// AppendEpsilonEdge installs an unlabeled epsilon edge between two existing
// nodes.
func (g *ControlFlowGraph) AppendEpsilonEdge(source, target *FlowNode) {
	g.Connect(source, target, EdgeEpsilon, "", nil)
}

// AppendConditionally creates a new node reached from source by a
// conditional edge guarded by the given expression.
func (g *ControlFlowGraph) AppendConditionally(source *FlowNode, label string, guard *ast.Node) *FlowNode {
	return g.Append(source, label, EdgeConditional, guard)
}

// removeEdge detaches an edge from both endpoints.
func removeEdge(edge *FlowEdge) {
	edge.Source.Outgoing = deleteEdge(edge.Source.Outgoing, edge)
	edge.Target.Incoming = deleteEdge(edge.Target.Incoming, edge)
}

func deleteEdge(edges []*FlowEdge, edge *FlowEdge) []*FlowEdge {
	for i, e := range edges {
		if e == edge {
			return append(edges[:i:i], edges[i+1:]...)
		}
	}
	return edges
}
