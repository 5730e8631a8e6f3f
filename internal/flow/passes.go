package flow

import (
	"strconv"
	"strings"

	"github.com/ludo-technologies/jsflow/internal/ast"
)

// RunPasses applies the optimization pipeline to one graph, honoring the
// opt-in flags. The pipeline is idempotent: a second run over an already
// optimized graph changes nothing.
func RunPasses(g *ControlFlowGraph, passes PassOptions) {
	if passes.RewriteConstantConditionalEdges {
		rewriteConstantConditionalEdges(g)
	}
	removeUnreachableNodes(g)
	if passes.RemoveTransitNodes {
		removeTransitNodes(g)
	}
	collectNodesAndEdges(g)
}

// reachableNodes walks the graph breadth-first from entry. Discovery order
// is deterministic: nodes are visited in edge insertion order, which in
// turn follows construction order.
func reachableNodes(g *ControlFlowGraph) []*FlowNode {
	visited := map[*FlowNode]bool{g.Entry: true}
	queue := []*FlowNode{g.Entry}
	var order []*FlowNode

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)
		for _, edge := range node.Outgoing {
			if !visited[edge.Target] {
				visited[edge.Target] = true
				queue = append(queue, edge.Target)
			}
		}
	}
	return order
}

// rewriteConstantConditionalEdges drops conditional edges whose guard is a
// constant that can never be truthy, and downgrades their constantly-taken
// siblings to epsilon edges.
func rewriteConstantConditionalEdges(g *ControlFlowGraph) {
	for _, node := range reachableNodes(g) {
		var conditionals []*FlowEdge
		for _, edge := range node.Outgoing {
			if edge.Kind == EdgeConditional {
				conditionals = append(conditionals, edge)
			}
		}
		if len(conditionals) != 2 {
			continue
		}

		first, firstConstant := constantTruthiness(conditionals[0].AST)
		second, secondConstant := constantTruthiness(conditionals[1].AST)
		if !firstConstant || !secondConstant || first == second {
			continue
		}

		taken, dropped := conditionals[0], conditionals[1]
		if second {
			taken, dropped = conditionals[1], conditionals[0]
		}
		removeEdge(dropped)
		taken.Kind = EdgeEpsilon
		taken.AST = nil
	}
}

// constantTruthiness statically evaluates a guard built from literals and
// logical negations of literals. The second result reports whether the
// guard is such a constant at all.
func constantTruthiness(guard *ast.Node) (value bool, constant bool) {
	if guard == nil {
		return false, false
	}
	switch guard.Type {
	case ast.TypeLiteral:
		return literalTruthiness(guard.Raw)
	case ast.TypeUnaryExpression:
		if guard.Operator != "!" {
			return false, false
		}
		inner, ok := constantTruthiness(guard.Argument)
		return !inner, ok
	case ast.TypeIdentifier:
		if guard.Name == "undefined" {
			return false, true
		}
		return false, false
	default:
		return false, false
	}
}

func literalTruthiness(raw string) (value bool, constant bool) {
	switch raw {
	case "true":
		return true, true
	case "false", "null", "undefined":
		return false, true
	case "":
		return false, false
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n != 0, true
	}
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'' || raw[0] == '`') {
		return len(raw) > 2, true
	}
	return false, false
}

// removeUnreachableNodes deletes every node not reachable from entry, along
// with its edges. Since an unreachable node can only touch the reachable
// region through edges into it, pruning amounts to dropping those incoming
// edges.
func removeUnreachableNodes(g *ControlFlowGraph) {
	reachable := make(map[*FlowNode]bool)
	for _, node := range reachableNodes(g) {
		reachable[node] = true
	}

	for node := range reachable {
		kept := node.Incoming[:0:0]
		for _, edge := range node.Incoming {
			if reachable[edge.Source] {
				kept = append(kept, edge)
			}
		}
		node.Incoming = kept
	}
}

// removeTransitNodes splices out nodes that only forward control: exactly
// one incoming epsilon edge, exactly one outgoing epsilon edge, at most one
// of the two labeled, and not an entry or exit node. Runs to fixpoint.
func removeTransitNodes(g *ControlFlowGraph) {
	for {
		changed := false
		for _, node := range reachableNodes(g) {
			if !isTransitNode(g, node) {
				continue
			}
			in := node.Incoming[0]
			out := node.Outgoing[0]
			if in.Source == node || out.Target == node {
				continue
			}

			label := in.Label
			if label == "" {
				label = out.Label
			}
			removeEdge(in)
			removeEdge(out)
			g.Connect(in.Source, out.Target, EdgeEpsilon, label, nil)
			changed = true
		}
		if !changed {
			return
		}
	}
}

func isTransitNode(g *ControlFlowGraph, node *FlowNode) bool {
	if node == g.Entry || node == g.SuccessExit || node == g.ErrorExit {
		return false
	}
	if len(node.Incoming) != 1 || len(node.Outgoing) != 1 {
		return false
	}
	in := node.Incoming[0]
	out := node.Outgoing[0]
	if in.Kind != EdgeEpsilon || out.Kind != EdgeEpsilon {
		return false
	}
	// Splicing would have to merge two labels into one edge; keep the node.
	if in.Label != "" && out.Label != "" {
		return false
	}
	return true
}

// collectNodesAndEdges populates the graph's node and edge slices by a
// fresh traversal from entry. Order is BFS discovery order, which is stable
// because ids and edge lists follow construction order.
func collectNodesAndEdges(g *ControlFlowGraph) {
	g.Nodes = g.Nodes[:0]
	g.Edges = g.Edges[:0]

	seenEdges := make(map[*FlowEdge]bool)
	for _, node := range reachableNodes(g) {
		g.Nodes = append(g.Nodes, node)
		for _, edge := range node.Outgoing {
			if !seenEdges[edge] {
				seenEdges[edge] = true
				g.Edges = append(g.Edges, edge)
			}
		}
	}
}

// Describe renders a compact multi-line description of the graph, used by
// the text formatter and tests.
func (g *ControlFlowGraph) Describe() string {
	var sb strings.Builder
	for _, edge := range g.Edges {
		sb.WriteString(strconv.Itoa(edge.Source.ID))
		sb.WriteString(" -> ")
		sb.WriteString(strconv.Itoa(edge.Target.ID))
		sb.WriteString(" [")
		sb.WriteString(edge.Kind.String())
		if edge.Label != "" {
			sb.WriteString(" ")
			sb.WriteString(edge.Label)
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
