package flow

import (
	"errors"
	"testing"

	"github.com/ludo-technologies/jsflow/internal/ast"
)

// buildSource parses JavaScript source and builds its flow program.
func buildSource(t *testing.T, source string, options Options) *FlowProgram {
	t.Helper()
	p := ast.NewParser()
	defer p.Close()

	root, err := p.ParseString(source)
	if err != nil {
		t.Fatalf("Failed to parse %q: %v", source, err)
	}
	program, err := ParseProgram(root, options)
	if err != nil {
		t.Fatalf("ParseProgram failed for %q: %v", source, err)
	}
	return program
}

func buildGraph(t *testing.T, source string, options Options) *ControlFlowGraph {
	t.Helper()
	return buildSource(t, source, options).FlowGraph
}

// edgesByKind returns the collected edges of the given kind.
func edgesByKind(g *ControlFlowGraph, kind EdgeKind) []*FlowEdge {
	var edges []*FlowEdge
	for _, e := range g.Edges {
		if e.Kind == kind {
			edges = append(edges, e)
		}
	}
	return edges
}

// findEdge returns the first collected edge with the given label, or nil.
func findEdge(g *ControlFlowGraph, label string) *FlowEdge {
	for _, e := range g.Edges {
		if e.Label == label {
			return e
		}
	}
	return nil
}

func countEdges(g *ControlFlowGraph, label string) int {
	n := 0
	for _, e := range g.Edges {
		if e.Label == label {
			n++
		}
	}
	return n
}

func TestEmptyProgram(t *testing.T) {
	g := buildGraph(t, "", Options{Passes: PassOptions{RemoveTransitNodes: true}})

	if len(g.Nodes) != 2 {
		t.Fatalf("empty program should keep entry and success exit only, got %d nodes", len(g.Nodes))
	}
	if len(g.Edges) != 1 {
		t.Fatalf("empty program should have a single edge, got %d", len(g.Edges))
	}
	e := g.Edges[0]
	if e.Source != g.Entry || e.Target != g.SuccessExit || e.Kind != EdgeEpsilon {
		t.Errorf("expected entry -> successExit epsilon edge, got %d -> %d [%s]",
			e.Source.ID, e.Target.ID, e.Kind)
	}
}

func TestEmptyBlockProgram(t *testing.T) {
	g := buildGraph(t, "{}", Options{Passes: PassOptions{RemoveTransitNodes: true}})

	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Errorf("empty block should reduce to entry -> successExit, got %d nodes %d edges",
			len(g.Nodes), len(g.Edges))
	}
}

func TestIfElseForksAndMerges(t *testing.T) {
	g := buildGraph(t, "if (a) { b(); } else { c(); }", Options{})

	conditionals := edgesByKind(g, EdgeConditional)
	if len(conditionals) != 2 {
		t.Fatalf("expected 2 conditional edges, got %d", len(conditionals))
	}
	if conditionals[0].Source != g.Entry || conditionals[1].Source != g.Entry {
		t.Error("both conditional edges should leave the entry node")
	}

	labels := map[string]bool{}
	for _, e := range conditionals {
		labels[e.Label] = true
	}
	if !labels["a"] || !labels["!a"] {
		t.Errorf("conditional guards should be a and !a, got %v", labels)
	}

	// Both branch bodies merge into one node before the success exit.
	bEdge := findEdge(g, "b()")
	cEdge := findEdge(g, "c()")
	if bEdge == nil || cEdge == nil {
		t.Fatal("branch body edges should be present")
	}
	if len(bEdge.Target.Outgoing) != 1 || len(cEdge.Target.Outgoing) != 1 {
		t.Fatal("branch ends should each have a single outgoing edge")
	}
	if bEdge.Target.Outgoing[0].Target != cEdge.Target.Outgoing[0].Target {
		t.Error("branches should merge at a shared final node")
	}

	if len(g.SuccessExit.Incoming) != 1 {
		t.Errorf("success exit should have one incoming edge, got %d", len(g.SuccessExit.Incoming))
	}
}

func TestIfWithoutElse(t *testing.T) {
	g := buildGraph(t, "if (a) { b(); } c();", Options{})

	conditionals := edgesByKind(g, EdgeConditional)
	if len(conditionals) != 2 {
		t.Fatalf("expected 2 conditional edges, got %d", len(conditionals))
	}
	// The falsy edge's target is the final node; the then branch reaches the
	// same node after b().
	falsy := findEdge(g, "!a")
	if falsy == nil {
		t.Fatal("falsy conditional edge missing")
	}
	bEdge := findEdge(g, "b()")
	if bEdge == nil || len(bEdge.Target.Outgoing) != 1 || bEdge.Target.Outgoing[0].Target != falsy.Target {
		t.Error("then branch should rejoin at the falsy edge's target")
	}
	if findEdge(g, "c()") == nil {
		t.Error("statement after the if should be reachable")
	}
}

func TestIfBothBranchesAbrupt(t *testing.T) {
	source := `
function f() {
  if (a) { return 1; } else { return 2; }
}`
	program := buildSource(t, source, Options{})
	g := program.Functions[0].FlowGraph

	if findEdge(g, "return 1") == nil || findEdge(g, "return 2") == nil {
		t.Fatal("both return edges should be installed")
	}
	if countEdges(g, "return undefined") != 0 {
		t.Error("no implicit return should survive when both branches return")
	}
	if len(g.SuccessExit.Incoming) != 2 {
		t.Errorf("success exit should collect both returns, got %d incoming", len(g.SuccessExit.Incoming))
	}
}

func TestWhileLoopShape(t *testing.T) {
	g := buildGraph(t, "while (x) { f(); }", Options{})

	truthy := findEdge(g, "x")
	falsy := findEdge(g, "!x")
	if truthy == nil || falsy == nil {
		t.Fatal("loop conditional pair missing")
	}
	if truthy.Source != falsy.Source {
		t.Error("conditional pair should leave the same node")
	}

	// The body end loops back to the condition node.
	fEdge := findEdge(g, "f()")
	if fEdge == nil {
		t.Fatal("body edge missing")
	}
	back := fEdge.Target.Outgoing
	if len(back) != 1 || back[0].Target != truthy.Source || back[0].Kind != EdgeEpsilon {
		t.Error("body should epsilon back to the loop head")
	}
}

func TestWhileWithBreak(t *testing.T) {
	g := buildGraph(t, "while (x) { if (y) break; }",
		Options{Passes: PassOptions{RemoveTransitNodes: true}})

	abrupts := edgesByKind(g, EdgeAbruptCompletion)
	if len(abrupts) != 1 || abrupts[0].Label != "break" {
		t.Fatalf("expected exactly one break edge, got %v", abrupts)
	}

	falsy := findEdge(g, "!x")
	if falsy == nil {
		t.Fatal("loop exit conditional missing")
	}
	finalNode := falsy.Target
	if abrupts[0].Target != finalNode {
		t.Error("break should target the loop's final node")
	}
	if len(finalNode.Incoming) != 2 {
		t.Errorf("final node should have exactly two incoming edges (loop exit + break), got %d",
			len(finalNode.Incoming))
	}

	// No epsilon back-edge from the break site.
	breakSource := abrupts[0].Source
	for _, e := range breakSource.Outgoing {
		if e.Kind == EdgeEpsilon {
			t.Error("break site should not fall through")
		}
	}
}

func TestDoWhileExecutesBodyFirst(t *testing.T) {
	g := buildGraph(t, "do { f(); } while (x);", Options{})

	fEdge := findEdge(g, "f()")
	if fEdge == nil {
		t.Fatal("body edge missing")
	}
	if fEdge.Source != g.Entry {
		t.Error("do-while body should start straight from the current node")
	}

	truthy := findEdge(g, "x")
	if truthy == nil || truthy.Kind != EdgeConditional {
		t.Fatal("test conditional missing")
	}
	if truthy.Target != g.Entry {
		t.Error("truthy test edge should loop back to the body start")
	}
}

func TestForLoopShape(t *testing.T) {
	g := buildGraph(t, "for (var i = 0; i < n; i++) { f(i); }", Options{})

	initEdge := findEdge(g, "i = 0")
	if initEdge == nil {
		t.Fatal("init edge missing")
	}
	testDecision := initEdge.Target

	truthy := findEdge(g, "i < n")
	falsy := findEdge(g, "i >= n")
	if truthy == nil || falsy == nil {
		t.Fatal("for test conditional pair missing")
	}
	if truthy.Source != testDecision || falsy.Source != testDecision {
		t.Error("conditional pair should leave the test decision node")
	}

	update := findEdge(g, "i++")
	if update == nil {
		t.Fatal("update edge missing")
	}
	// The update chain closes the loop back to the test decision node.
	if len(update.Target.Outgoing) != 1 || update.Target.Outgoing[0].Target != testDecision {
		t.Error("update end should epsilon back to the test decision node")
	}
}

func TestForWithoutTestFallsThrough(t *testing.T) {
	g := buildGraph(t, "for (;;) { f(); }", Options{})

	if len(edgesByKind(g, EdgeConditional)) != 0 {
		t.Error("a for loop without a test should not synthesize conditional edges")
	}
}

func TestForInLowering(t *testing.T) {
	g := buildGraph(t, "for (k in obj) { f(k); }", Options{})

	hasMore := findEdge(g, "<has more>")
	done := findEdge(g, "<done>")
	if hasMore == nil || done == nil {
		t.Fatal("for-in conditional pair missing")
	}
	if hasMore.Kind != EdgeConditional || done.Kind != EdgeConditional {
		t.Error("iteration guards should be conditional edges")
	}
	if hasMore.Source != done.Source {
		t.Error("iteration guards should leave the condition node")
	}
	if findEdge(g, "k = <next>") == nil {
		t.Error("loop variable assignment missing")
	}
}

func TestForOfLowering(t *testing.T) {
	g := buildGraph(t, "for (v of list) { f(v); }", Options{})

	iterAssign := findEdge(g, "$$iter1 = <iterator of list>")
	if iterAssign == nil {
		t.Fatal("iterator temp assignment missing")
	}
	conditionNode := iterAssign.Target

	truthy := findEdge(g, "!$$iter1.done")
	falsy := findEdge(g, "$$iter1.done")
	if truthy == nil || falsy == nil {
		t.Fatal("for-of conditional pair missing")
	}
	if truthy.Source != conditionNode || falsy.Source != conditionNode {
		t.Error("guards should leave the condition node")
	}
	if findEdge(g, "v = $$iter1.next()") == nil {
		t.Error("next() assignment missing")
	}

	// The body end loops back to the condition node, not the iterator setup.
	fEdge := findEdge(g, "f(v)")
	if fEdge == nil || len(fEdge.Target.Outgoing) != 1 || fEdge.Target.Outgoing[0].Target != conditionNode {
		t.Error("body should epsilon back to the condition node")
	}
}

func TestSwitchFallThrough(t *testing.T) {
	g := buildGraph(t, `
switch (k) {
  case 1: a();
  case 2: b(); break;
  default: c();
}`, Options{})

	if findEdge(g, "$$switch1 = k") == nil {
		t.Fatal("discriminant temp assignment missing")
	}

	conditionals := edgesByKind(g, EdgeConditional)
	if len(conditionals) != 4 {
		t.Fatalf("expected 4 conditional edges (two eq pairs), got %d", len(conditionals))
	}

	// Fall-through: the end of case 1 epsilon-connects to the start of case 2.
	aEdge := findEdge(g, "a()")
	if aEdge == nil {
		t.Fatal("case 1 body missing")
	}
	if len(aEdge.Target.Outgoing) != 1 {
		t.Fatalf("end of case 1 should have one outgoing edge, got %d", len(aEdge.Target.Outgoing))
	}
	fallThrough := aEdge.Target.Outgoing[0]
	if fallThrough.Kind != EdgeEpsilon {
		t.Error("fall-through should be an epsilon edge")
	}
	bEdge := findEdge(g, "b()")
	if bEdge == nil || fallThrough.Target != bEdge.Source {
		t.Error("fall-through should reach the start of case 2")
	}

	// case 2 breaks to the switch final node.
	abrupts := edgesByKind(g, EdgeAbruptCompletion)
	if len(abrupts) != 1 || abrupts[0].Label != "break" {
		t.Fatalf("expected one break edge, got %v", abrupts)
	}

	// The default body is translated from the end of the eq chain and its
	// normal completion reaches the same final node as the break.
	cEdge := findEdge(g, "c()")
	if cEdge == nil {
		t.Fatal("default body missing")
	}
	if len(cEdge.Target.Outgoing) != 1 || cEdge.Target.Outgoing[0].Target != abrupts[0].Target {
		t.Error("default completion should fall to the switch final node")
	}
}

func TestSwitchDefaultBeforeCases(t *testing.T) {
	g := buildGraph(t, `
switch (k) {
  default: d();
  case 1: a(); break;
}`, Options{})

	// The default body's normal completion falls through into the first
	// case after it in source order.
	dEdge := findEdge(g, "d()")
	aEdge := findEdge(g, "a()")
	if dEdge == nil || aEdge == nil {
		t.Fatal("switch bodies missing")
	}
	if len(dEdge.Target.Outgoing) != 1 || dEdge.Target.Outgoing[0].Target != aEdge.Source {
		t.Error("default should fall through into the case that follows it")
	}
}

func TestSwitchWithoutDefault(t *testing.T) {
	g := buildGraph(t, "switch (k) { case 1: a(); break; } z();", Options{})

	if findEdge(g, "z()") == nil {
		t.Error("unmatched discriminant should fall through past the switch")
	}
}

func TestLabeledBreakCrossesLoops(t *testing.T) {
	g := buildGraph(t, "outer: while (a) { while (b) { break outer; } }", Options{})

	abrupts := edgesByKind(g, EdgeAbruptCompletion)
	if len(abrupts) != 1 {
		t.Fatalf("expected one break edge, got %d", len(abrupts))
	}
	outerFalsy := findEdge(g, "!a")
	if outerFalsy == nil {
		t.Fatal("outer loop exit missing")
	}
	if abrupts[0].Target != outerFalsy.Target {
		t.Error("labeled break should target the outer loop's final node")
	}
}

func TestLabeledContinue(t *testing.T) {
	g := buildGraph(t, "outer: for (var i = 0; i < n; i++) { while (x) { continue outer; } }", Options{})

	var continueEdge *FlowEdge
	for _, e := range edgesByKind(g, EdgeAbruptCompletion) {
		if e.Label == "continue" {
			continueEdge = e
		}
	}
	if continueEdge == nil {
		t.Fatal("continue edge missing")
	}
	// The outer loop's continue target is its update node, whose chain ends
	// back at the test decision node.
	update := findEdge(g, "i++")
	if update == nil {
		t.Fatal("update edge missing")
	}
	if continueEdge.Target != update.Source {
		t.Error("labeled continue should target the outer loop's update node")
	}
}

func TestLabeledBlockBreak(t *testing.T) {
	g := buildGraph(t, "blk: { a(); if (x) break blk; b(); } z();", Options{})

	abrupts := edgesByKind(g, EdgeAbruptCompletion)
	if len(abrupts) != 1 || abrupts[0].Label != "break" {
		t.Fatalf("expected one break edge, got %v", abrupts)
	}
	if findEdge(g, "b()") == nil || findEdge(g, "z()") == nil {
		t.Error("both the rest of the block and the trailing statement should exist")
	}
}

func TestFunctionGraphs(t *testing.T) {
	source := `
function first() { a(); }
function second() { b(); }`
	program := buildSource(t, source, Options{})

	if len(program.Functions) != 2 {
		t.Fatalf("expected 2 flow functions, got %d", len(program.Functions))
	}
	if program.Functions[0].Name != "first" || program.Functions[1].Name != "second" {
		t.Errorf("function names wrong: %q, %q", program.Functions[0].Name, program.Functions[1].Name)
	}
	if program.Functions[0].ID == program.Functions[1].ID {
		t.Error("function ids should be distinct")
	}

	// Declarations do not advance flow in the outer graph.
	if len(program.FlowGraph.Nodes) != 2 {
		t.Errorf("top-level graph should be entry -> successExit, got %d nodes", len(program.FlowGraph.Nodes))
	}

	// Each function graph carries its own implicit return.
	for _, fn := range program.Functions {
		if countEdges(fn.FlowGraph, "return undefined") != 1 {
			t.Errorf("function %s should have an implicit return edge", fn.Name)
		}
	}
}

func TestFunctionGraphsAreIndependent(t *testing.T) {
	program := buildSource(t, "function f() { a(); } b();", Options{})

	g := program.FlowGraph
	fg := program.Functions[0].FlowGraph

	nodes := map[*FlowNode]bool{}
	for _, n := range g.Nodes {
		nodes[n] = true
	}
	for _, e := range fg.Edges {
		if nodes[e.Source] || nodes[e.Target] {
			t.Fatal("function graph edges must not touch top-level nodes")
		}
	}

	// Node ids stay unique across the graphs of one build.
	seen := map[int]bool{}
	for _, n := range append(append([]*FlowNode{}, g.Nodes...), fg.Nodes...) {
		if seen[n.ID] {
			t.Fatalf("duplicate node id %d across graphs", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestNestedFunctionDeclarations(t *testing.T) {
	program := buildSource(t, "function outer() { function inner() { a(); } b(); }", Options{})

	if len(program.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(program.Functions))
	}
	names := map[string]bool{}
	for _, fn := range program.Functions {
		names[fn.Name] = true
	}
	if !names["outer"] || !names["inner"] {
		t.Errorf("expected outer and inner, got %v", names)
	}
}

func TestNamedFunctionExpressionNormalized(t *testing.T) {
	program := buildSource(t, "(function lifted() { a(); });", Options{})

	if len(program.Functions) != 1 || program.Functions[0].Name != "lifted" {
		t.Fatalf("named function expression statement should become a flow function, got %v",
			program.Functions)
	}
}

func TestReturnThroughFinally(t *testing.T) {
	source := `
function f() {
  try { return 1; } finally { log(); }
}`
	program := buildSource(t, source, Options{})
	g := program.Functions[0].FlowGraph

	// Only one exit path passes through the finally, so exactly one copy of
	// the log() subgraph exists.
	if n := countEdges(g, "log()"); n != 1 {
		t.Fatalf("expected one finalizer copy, got %d", n)
	}

	returnEdge := findEdge(g, "return 1")
	if returnEdge == nil {
		t.Fatal("return edge missing")
	}
	if returnEdge.Target != g.SuccessExit {
		t.Error("return should target the success exit")
	}
	// The return edge leaves the end of the finalizer copy.
	logEdge := findEdge(g, "log()")
	if returnEdge.Source != logEdge.Target {
		t.Error("return should pass through the finalizer before exiting")
	}
	if countEdges(g, "return undefined") != 0 {
		t.Error("no implicit return should exist; the try block always returns")
	}
}

func TestTryFinallyBothPaths(t *testing.T) {
	source := `
function f() {
  try { if (x) { return 1; } } finally { log(); }
  done();
}`
	program := buildSource(t, source, Options{})
	g := program.Functions[0].FlowGraph

	// The return path and the normal fall-through path each replay their
	// own copy of the finally block.
	if n := countEdges(g, "log()"); n != 2 {
		t.Fatalf("expected two finalizer copies, got %d", n)
	}
	if findEdge(g, "done()") == nil {
		t.Error("code after the try should be reachable on the normal path")
	}
}

func TestBreakThroughFinally(t *testing.T) {
	g := buildGraph(t, "while (x) { try { break; } finally { log(); } }", Options{})

	logEdge := findEdge(g, "log()")
	if logEdge == nil {
		t.Fatal("finalizer copy missing")
	}
	var breakEdge *FlowEdge
	for _, e := range edgesByKind(g, EdgeAbruptCompletion) {
		if e.Label == "break" {
			breakEdge = e
		}
	}
	if breakEdge == nil {
		t.Fatal("break edge missing")
	}
	if breakEdge.Source != logEdge.Target {
		t.Error("break should replay the finalizer before leaving the loop")
	}
}

func TestTryCatchJoins(t *testing.T) {
	g := buildGraph(t, "try { a(); } catch (e) { h(); } z();", Options{})

	if findEdge(g, "a()") == nil || findEdge(g, "z()") == nil {
		t.Fatal("try body and continuation should be present")
	}
	// The handler body is only reachable through a throw; with none in the
	// try block it is pruned.
	if findEdge(g, "h()") != nil {
		t.Error("handler body should be unreachable without a throw")
	}
}

func TestThrowCaughtByHandler(t *testing.T) {
	g := buildGraph(t, "try { throw boom; } catch (e) { h(); } z();", Options{})

	assign := findEdge(g, "e = boom")
	if assign == nil {
		t.Fatal("thrown value should be bound to the handler parameter")
	}
	hEdge := findEdge(g, "h()")
	if hEdge == nil {
		t.Fatal("handler body missing")
	}
	// The binding node epsilon-connects to the handler entry.
	if len(assign.Target.Outgoing) != 1 || assign.Target.Outgoing[0].Target != hEdge.Source {
		t.Error("binding node should lead into the handler body")
	}
	if findEdge(g, "z()") == nil {
		t.Error("continuation after try/catch should be reachable through the handler")
	}
	if len(g.ErrorExit.Incoming) != 0 {
		t.Error("a caught throw should not reach the error exit")
	}
}

func TestUncaughtThrowReachesErrorExit(t *testing.T) {
	g := buildGraph(t, "throw boom;", Options{})

	throwEdge := findEdge(g, "throw boom")
	if throwEdge == nil {
		t.Fatal("throw edge missing")
	}
	if throwEdge.Kind != EdgeAbruptCompletion || throwEdge.Target != g.ErrorExit {
		t.Error("uncaught throw should be an abrupt edge into the error exit")
	}
	if len(g.SuccessExit.Incoming) != 0 {
		t.Error("nothing should reach the success exit after an unconditional throw")
	}
}

func TestThrowInCatchEscapes(t *testing.T) {
	g := buildGraph(t, "try { throw a; } catch (e) { throw b; }", Options{})

	rethrow := findEdge(g, "throw b")
	if rethrow == nil {
		t.Fatal("rethrow edge missing")
	}
	if rethrow.Target != g.ErrorExit {
		t.Error("a throw inside the handler should escape to the error exit")
	}
}

func TestThrowThroughFinallyToOuterHandler(t *testing.T) {
	source := `
try {
  try { throw boom; } finally { log(); }
} catch (e) { h(); }`
	g := buildGraph(t, source, Options{})

	logEdge := findEdge(g, "log()")
	if logEdge == nil {
		t.Fatal("inner finalizer should replay on the throw path")
	}
	assign := findEdge(g, "e = boom")
	if assign == nil {
		t.Fatal("outer handler binding missing")
	}
	// The replayed finalizer sits between the throw site and the binding.
	if assign.Source != logEdge.Target {
		t.Error("throw should pass through the finalizer before the outer handler")
	}
	if len(g.ErrorExit.Incoming) != 0 {
		t.Error("the throw is caught; nothing should reach the error exit")
	}
}

func TestTryCatchFinallyMergesBothReplays(t *testing.T) {
	source := "try { a(); } catch (e) { h(); } finally { log(); } z();"
	g := buildGraph(t, source, Options{})

	// Normal path replays the finalizer; handler path is unreachable (no
	// throw) so its replayed copy is pruned.
	if n := countEdges(g, "log()"); n != 1 {
		t.Errorf("expected one reachable finalizer copy, got %d", n)
	}
	if findEdge(g, "z()") == nil {
		t.Error("continuation should be reachable")
	}
}

func TestTryCatchFinallyWithThrowKeepsBothReplays(t *testing.T) {
	source := "try { if (x) throw boom; a(); } catch (e) { h(); } finally { log(); } z();"
	g := buildGraph(t, source, Options{})

	if n := countEdges(g, "log()"); n != 2 {
		t.Errorf("expected a finalizer copy on both the try and handler paths, got %d", n)
	}
}

func TestWithStatement(t *testing.T) {
	g := buildGraph(t, "with (obj) { f(); }", Options{})

	objEdge := findEdge(g, "obj")
	if objEdge == nil {
		t.Fatal("with object node missing")
	}
	fEdge := findEdge(g, "f()")
	if fEdge == nil || fEdge.Source != objEdge.Target {
		t.Error("with body should be translated from the object node")
	}
}

func TestContinueLoopsBack(t *testing.T) {
	program := buildSource(t, "function f() { while (true) { continue; } }",
		Options{Passes: PassOptions{RewriteConstantConditionalEdges: true}})
	g := program.Functions[0].FlowGraph

	var continueEdge *FlowEdge
	for _, e := range edgesByKind(g, EdgeAbruptCompletion) {
		if e.Label == "continue" {
			continueEdge = e
		}
	}
	if continueEdge == nil {
		t.Fatal("continue edge missing")
	}
	if continueEdge.Target != g.Entry {
		t.Error("continue should point back at the loop head")
	}

	// With constant rewriting, the !true exit is gone and the implicit
	// return-undefined node is unreachable; the success exit disappears
	// from the collected node set.
	for _, n := range g.Nodes {
		if n == g.SuccessExit {
			t.Error("success exit should be pruned from an endless loop")
		}
	}
	if countEdges(g, "return undefined") != 0 {
		t.Error("implicit return should have been pruned with its node")
	}
}

func TestSequenceExpressionFansOut(t *testing.T) {
	g := buildGraph(t, "a, b, c;", Options{})

	for _, label := range []string{"a", "b", "c"} {
		if findEdge(g, label) == nil {
			t.Errorf("missing sequence operand node %q", label)
		}
	}
	// Operands chain in order.
	aEdge := findEdge(g, "a")
	bEdge := findEdge(g, "b")
	if aEdge.Target != bEdge.Source {
		t.Error("sequence operands should chain")
	}
}

func TestVariableDeclarationLabels(t *testing.T) {
	g := buildGraph(t, "var a = 1, b;", Options{})

	if findEdge(g, "a = 1") == nil {
		t.Error("initialized declarator label missing")
	}
	if findEdge(g, "b") == nil {
		t.Error("bare declarator label missing")
	}
}

func TestUnreachableCodeDropped(t *testing.T) {
	program := buildSource(t, "function f() { return 1; dead(); }", Options{})
	g := program.Functions[0].FlowGraph

	if findEdge(g, "dead()") != nil {
		t.Error("statements after return should be dropped")
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   ErrorKind
	}{
		{"break outside loop", "break;", ErrIllegalJumpTarget},
		{"continue outside loop", "continue;", ErrIllegalJumpTarget},
		{"continue in switch only", "switch (x) { case 1: continue; }", ErrIllegalJumpTarget},
		{"continue to block label", "blk: { continue blk; }", ErrIllegalJumpTarget},
		{"break to unknown label", "while (x) { break nope; }", ErrIllegalJumpTarget},
		{"class declaration", "class A {}", ErrUnsupportedConstruct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ast.NewParser()
			defer p.Close()
			root, err := p.ParseString(tt.source)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			_, err = ParseProgram(root, Options{})
			if err == nil {
				t.Fatal("expected an error")
			}
			if !IsKind(err, tt.kind) {
				t.Errorf("expected %s, got %v", tt.kind, err)
			}
		})
	}
}

func TestInvalidInput(t *testing.T) {
	if _, err := ParseProgram(nil, Options{}); !IsKind(err, ErrInvalidInput) {
		t.Errorf("nil input should be InvalidInput, got %v", err)
	}

	notProgram := &ast.Node{Type: ast.TypeBlockStatement}
	if _, err := ParseProgram(notProgram, Options{}); !IsKind(err, ErrInvalidInput) {
		t.Errorf("non-Program root should be InvalidInput, got %v", err)
	}
}

func TestInputTooDeep(t *testing.T) {
	source := ""
	for i := 0; i < 20; i++ {
		source += "if (x) { "
	}
	source += "f();"
	for i := 0; i < 20; i++ {
		source += " }"
	}

	p := ast.NewParser()
	defer p.Close()
	root, err := p.ParseString(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := ParseProgram(root, Options{MaxDepth: 5}); !IsKind(err, ErrInputTooDeep) {
		t.Errorf("expected InputTooDeep, got %v", err)
	}
}

func TestErrorsMatchWithErrorsIs(t *testing.T) {
	_, err := ParseProgram(nil, Options{})
	if !errors.Is(err, &BuildError{Kind: ErrInvalidInput}) {
		t.Error("errors.Is should match build errors by kind")
	}
}

// Structural invariants over a mixed corpus of inputs.
func TestStructuralInvariants(t *testing.T) {
	sources := []string{
		"",
		"a();",
		"if (a) { b(); } else { c(); }",
		"while (x) { if (y) break; }",
		"do { f(); } while (x);",
		"for (var i = 0; i < n; i++) { if (i == 3) continue; g(i); }",
		"for (k in obj) { f(k); }",
		"for (v of list) { f(v); }",
		"switch (k) { case 1: a(); case 2: b(); break; default: c(); }",
		"try { a(); } catch (e) { h(); } finally { log(); } z();",
		"outer: while (a) { while (b) { if (c) break outer; continue; } }",
		"function f(n) { if (n < 2) { return n; } return f(n - 1) + f(n - 2); }",
		"function g() { try { return 1; } finally { cleanup(); } }",
		"with (obj) { f(); }",
	}

	for _, source := range sources {
		for _, passes := range []PassOptions{
			{},
			{RemoveTransitNodes: true},
			{RewriteConstantConditionalEdges: true, RemoveTransitNodes: true},
		} {
			program := buildSource(t, source, Options{Passes: passes})
			graphs := []*ControlFlowGraph{program.FlowGraph}
			for _, fn := range program.Functions {
				graphs = append(graphs, fn.FlowGraph)
			}
			for _, g := range graphs {
				checkInvariants(t, source, g)
			}
		}
	}
}

func checkInvariants(t *testing.T, source string, g *ControlFlowGraph) {
	t.Helper()

	kinds := map[NodeKind]int{}
	for _, n := range g.Nodes {
		kinds[n.Kind]++
	}
	if kinds[KindEntry] != 1 {
		t.Errorf("%q: expected exactly one entry in collected nodes, got %d", source, kinds[KindEntry])
	}
	if kinds[KindSuccessExit] > 1 || kinds[KindErrorExit] > 1 {
		t.Errorf("%q: multiple exits collected", source)
	}

	// Every collected node except entry has an incoming edge; conditional
	// edges pair up; duplicate outgoing edges are collapsed.
	for _, n := range g.Nodes {
		if n != g.Entry && len(n.Incoming) == 0 {
			t.Errorf("%q: node %d has no incoming edges", source, n.ID)
		}

		var conditionals []*FlowEdge
		type edgeKey struct {
			target *FlowNode
			kind   EdgeKind
			ref    *ast.Node
		}
		seen := map[edgeKey]bool{}
		for _, e := range n.Outgoing {
			if e.Source != n {
				t.Errorf("%q: edge source backpointer wrong at node %d", source, n.ID)
			}
			key := edgeKey{e.Target, e.Kind, e.AST}
			if seen[key] {
				t.Errorf("%q: duplicate outgoing edge at node %d", source, n.ID)
			}
			seen[key] = true
			if e.Kind == EdgeConditional {
				conditionals = append(conditionals, e)
			}
		}
		if len(conditionals) != 0 && len(conditionals) != 2 {
			t.Errorf("%q: node %d has %d conditional edges, want 0 or 2", source, n.ID, len(conditionals))
		}
		if len(conditionals) == 2 {
			a := ast.Stringify(ast.NegateTruthiness(conditionals[0].AST))
			b := ast.Stringify(conditionals[1].AST)
			if a != b {
				t.Errorf("%q: conditional guards at node %d are not complements: %q vs %q",
					source, n.ID, ast.Stringify(conditionals[0].AST), b)
			}
		}
	}

	// All collected nodes are reachable from entry.
	reachable := map[*FlowNode]bool{}
	for _, n := range reachableNodes(g) {
		reachable[n] = true
	}
	for _, n := range g.Nodes {
		if !reachable[n] {
			t.Errorf("%q: collected node %d is unreachable", source, n.ID)
		}
	}
}

// Running the pass pipeline twice must be a no-op after the first run.
func TestPassesIdempotent(t *testing.T) {
	sources := []string{
		"if (a) { b(); } else { c(); }",
		"while (x) { if (y) break; }",
		"switch (k) { case 1: a(); default: c(); }",
		"try { a(); } catch (e) { h(); } finally { log(); }",
	}
	for _, source := range sources {
		passes := PassOptions{RewriteConstantConditionalEdges: true, RemoveTransitNodes: true}
		program := buildSource(t, source, Options{Passes: passes})
		g := program.FlowGraph

		before := g.Describe()
		RunPasses(g, passes)
		after := g.Describe()
		if before != after {
			t.Errorf("%q: passes are not idempotent:\nbefore:\n%s\nafter:\n%s", source, before, after)
		}
	}
}

func TestDeterministicAcrossRuns(t *testing.T) {
	source := "function f() { for (var i = 0; i < n; i++) { if (i == 3) continue; g(i); } }"
	first := buildSource(t, source, Options{}).Functions[0].FlowGraph.Describe()
	for i := 0; i < 3; i++ {
		again := buildSource(t, source, Options{}).Functions[0].FlowGraph.Describe()
		if again != first {
			t.Fatalf("build output not deterministic:\n%s\nvs\n%s", first, again)
		}
	}
}
