package flow

import (
	"fmt"

	"github.com/ludo-technologies/jsflow/internal/ast"
)

// parseStatements folds a statement list from current. The first abrupt
// completion short-circuits: everything after it is unreachable and dropped.
func (c *parseContext) parseStatements(stmts []*ast.Node, current *FlowNode) (Completion, error) {
	completion := normalCompletion(current)
	for _, stmt := range stmts {
		var err error
		completion, err = c.parseStatement(stmt, completion.Node, "")
		if err != nil {
			return completion, err
		}
		if !completion.IsNormal() {
			break
		}
	}
	return completion, nil
}

// parseStatement translates one statement starting at current and returns
// its completion. label carries a forwarded statement label into constructs
// that natively support one.
func (c *parseContext) parseStatement(stmt *ast.Node, current *FlowNode, label string) (Completion, error) {
	if stmt == nil {
		return normalCompletion(current), nil
	}
	if err := c.enterStatement(stmt); err != nil {
		return Completion{}, err
	}
	defer c.leaveStatement()

	switch stmt.Type {
	case ast.TypeEmptyStatement:
		return normalCompletion(c.graph.Append(current, "(empty)", EdgeEpsilon, nil)), nil
	case ast.TypeDebuggerStatement:
		return normalCompletion(current), nil
	case ast.TypeBlockStatement:
		return c.parseStatements(stmt.Body, current)
	case ast.TypeVariableDeclaration:
		return c.parseVariableDeclaration(stmt, current)
	case ast.TypeExpressionStatement:
		node, err := c.parseExpression(stmt.Expression, current)
		if err != nil {
			return Completion{}, err
		}
		return normalCompletion(node), nil
	case ast.TypeIfStatement:
		return c.parseIfStatement(stmt, current)
	case ast.TypeWhileStatement:
		return c.parseWhileStatement(stmt, current, label)
	case ast.TypeDoWhileStatement:
		return c.parseDoWhileStatement(stmt, current, label)
	case ast.TypeForStatement:
		return c.parseForStatement(stmt, current, label)
	case ast.TypeForInStatement, ast.TypeForOfStatement:
		return c.parseForIterationStatement(stmt, current, label)
	case ast.TypeSwitchStatement:
		return c.parseSwitchStatement(stmt, current, label)
	case ast.TypeLabeledStatement:
		return c.parseLabeledStatement(stmt, current)
	case ast.TypeBreakStatement:
		return c.parseBreakStatement(stmt, current)
	case ast.TypeContinueStatement:
		return c.parseContinueStatement(stmt, current)
	case ast.TypeReturnStatement:
		return c.parseReturnStatement(stmt, current)
	case ast.TypeThrowStatement:
		return c.parseThrowStatement(stmt, current)
	case ast.TypeTryStatement:
		return c.parseTryStatement(stmt, current)
	case ast.TypeWithStatement:
		return c.parseWithStatement(stmt, current)
	case ast.TypeFunctionDeclaration:
		return c.parseFunctionDeclaration(stmt, current)
	default:
		return Completion{}, buildErrorf(ErrUnsupportedConstruct, stmt,
			"unsupported statement %q", string(stmt.Type))
	}
}

// supportedExpressions lists the expression tags the engine accepts at
// statement level. Everything on the list lowers to a labeled node; the
// label is the stringified surface expression.
var supportedExpressions = map[ast.NodeType]bool{
	ast.TypeIdentifier:            true,
	ast.TypeLiteral:               true,
	ast.TypeUnaryExpression:       true,
	ast.TypeBinaryExpression:      true,
	ast.TypeLogicalExpression:     true,
	ast.TypeAssignmentExpression:  true,
	ast.TypeUpdateExpression:      true,
	ast.TypeMemberExpression:      true,
	ast.TypeCallExpression:        true,
	ast.TypeNewExpression:         true,
	ast.TypeConditionalExpression: true,
	ast.TypeSequenceExpression:    true,
	ast.TypeArrayExpression:       true,
	ast.TypeObjectExpression:      true,
	ast.TypeFunctionExpression:    true,
}

// parseExpression lowers an expression into the graph. A sequence
// expression fans out into a chain of nodes, one per comma operand; any
// other expression becomes a single node.
func (c *parseContext) parseExpression(expr *ast.Node, current *FlowNode) (*FlowNode, error) {
	if expr == nil {
		return current, nil
	}
	if !supportedExpressions[expr.Type] {
		return nil, buildErrorf(ErrUnsupportedConstruct, expr,
			"unsupported expression %q", string(expr.Type))
	}
	if expr.Type == ast.TypeSequenceExpression {
		for _, operand := range expr.Expressions {
			current = c.graph.Append(current, ast.Stringify(operand), EdgeEpsilon, nil)
		}
		return current, nil
	}
	return c.graph.Append(current, ast.Stringify(expr), EdgeEpsilon, nil), nil
}

func (c *parseContext) parseVariableDeclaration(stmt *ast.Node, current *FlowNode) (Completion, error) {
	for _, decl := range stmt.Declarations {
		label := decl.Name
		if decl.Init != nil {
			label = decl.Name + " = " + ast.Stringify(decl.Init)
		}
		current = c.graph.Append(current, label, EdgeEpsilon, nil)
	}
	return normalCompletion(current), nil
}

// appendConditionalPair installs the complementary truthy/falsy conditional
// edges for guard out of source, returning the two new target nodes.
func (c *parseContext) appendConditionalPair(source *FlowNode, guard *ast.Node) (truthy, falsy *FlowNode) {
	negated := ast.NegateTruthiness(guard)
	truthy = c.graph.AppendConditionally(source, ast.Stringify(guard), guard)
	falsy = c.graph.AppendConditionally(source, ast.Stringify(negated), negated)
	return truthy, falsy
}

func (c *parseContext) parseIfStatement(stmt *ast.Node, current *FlowNode) (Completion, error) {
	if stmt.Alternate == nil {
		thenNode, finalNode := c.appendConditionalPair(current, stmt.Test)
		thenCompletion, err := c.parseStatement(stmt.Consequent, thenNode, "")
		if err != nil {
			return Completion{}, err
		}
		if thenCompletion.IsNormal() {
			c.graph.AppendEpsilonEdge(thenCompletion.Node, finalNode)
		}
		return normalCompletion(finalNode), nil
	}

	thenNode, elseNode := c.appendConditionalPair(current, stmt.Test)
	finalNode := c.createNode()

	thenCompletion, err := c.parseStatement(stmt.Consequent, thenNode, "")
	if err != nil {
		return Completion{}, err
	}
	if thenCompletion.IsNormal() {
		c.graph.AppendEpsilonEdge(thenCompletion.Node, finalNode)
	}

	elseCompletion, err := c.parseStatement(stmt.Alternate, elseNode, "")
	if err != nil {
		return Completion{}, err
	}
	if elseCompletion.IsNormal() {
		c.graph.AppendEpsilonEdge(elseCompletion.Node, finalNode)
	}

	// When both branches are abrupt, finalNode stays unreached and the
	// optimization passes prune it.
	return normalCompletion(finalNode), nil
}

func (c *parseContext) parseWhileStatement(stmt *ast.Node, current *FlowNode, label string) (Completion, error) {
	loopBody, finalNode := c.appendConditionalPair(current, stmt.Test)

	c.push(&enclosingStatement{
		kind:           otherStatement,
		label:          label,
		breakTarget:    finalNode,
		continueTarget: current,
	})
	bodyCompletion, err := c.parseStatements(stmt.Body, loopBody)
	c.pop()
	if err != nil {
		return Completion{}, err
	}

	if bodyCompletion.IsNormal() {
		c.graph.AppendEpsilonEdge(bodyCompletion.Node, current)
	}
	return normalCompletion(finalNode), nil
}

func (c *parseContext) parseDoWhileStatement(stmt *ast.Node, current *FlowNode, label string) (Completion, error) {
	testNode := c.createNode()
	finalNode := c.createNode()

	c.push(&enclosingStatement{
		kind:           otherStatement,
		label:          label,
		breakTarget:    finalNode,
		continueTarget: testNode,
	})
	bodyCompletion, err := c.parseStatements(stmt.Body, current)
	c.pop()
	if err != nil {
		return Completion{}, err
	}

	negated := ast.NegateTruthiness(stmt.Test)
	c.graph.Connect(testNode, current, EdgeConditional, ast.Stringify(stmt.Test), stmt.Test)
	c.graph.Connect(testNode, finalNode, EdgeConditional, ast.Stringify(negated), negated)

	if bodyCompletion.IsNormal() {
		c.graph.AppendEpsilonEdge(bodyCompletion.Node, testNode)
	}
	return normalCompletion(finalNode), nil
}

func (c *parseContext) parseForStatement(stmt *ast.Node, current *FlowNode, label string) (Completion, error) {
	testDecisionNode := current
	if stmt.Init != nil {
		if stmt.Init.Type == ast.TypeVariableDeclaration {
			completion, err := c.parseVariableDeclaration(stmt.Init, current)
			if err != nil {
				return Completion{}, err
			}
			testDecisionNode = completion.Node
		} else {
			var err error
			testDecisionNode, err = c.parseExpression(stmt.Init, current)
			if err != nil {
				return Completion{}, err
			}
		}
	}

	beginBody := c.createNode()
	updateNode := c.createNode()
	finalNode := c.createNode()

	if stmt.Test != nil {
		negated := ast.NegateTruthiness(stmt.Test)
		c.graph.Connect(testDecisionNode, beginBody, EdgeConditional, ast.Stringify(stmt.Test), stmt.Test)
		c.graph.Connect(testDecisionNode, finalNode, EdgeConditional, ast.Stringify(negated), negated)
	} else {
		c.graph.AppendEpsilonEdge(testDecisionNode, beginBody)
	}

	c.push(&enclosingStatement{
		kind:           otherStatement,
		label:          label,
		breakTarget:    finalNode,
		continueTarget: updateNode,
	})
	bodyCompletion, err := c.parseStatements(stmt.Body, beginBody)
	c.pop()
	if err != nil {
		return Completion{}, err
	}

	if stmt.Update != nil {
		updateEnd, err := c.parseExpression(stmt.Update, updateNode)
		if err != nil {
			return Completion{}, err
		}
		c.graph.AppendEpsilonEdge(updateEnd, testDecisionNode)
	} else {
		c.graph.AppendEpsilonEdge(updateNode, testDecisionNode)
	}

	if bodyCompletion.IsNormal() {
		c.graph.AppendEpsilonEdge(bodyCompletion.Node, updateNode)
	}
	return normalCompletion(finalNode), nil
}

// parseForIterationStatement lowers for-in and for-of to an iteration
// skeleton: a condition node with a has-more / done conditional pair, a
// per-iteration assignment into the loop variable, and a back edge from the
// body end to the condition node.
func (c *parseContext) parseForIterationStatement(stmt *ast.Node, current *FlowNode, label string) (Completion, error) {
	target := iterationTargetName(stmt.Init)

	var conditionNode *FlowNode
	var truthyGuard *ast.Node
	var truthyLabel, falsyLabel, assignLabel string

	if stmt.Type == ast.TypeForOfStatement {
		iter := c.createTempVarName("iter")
		conditionNode = c.graph.Append(current,
			fmt.Sprintf("%s = <iterator of %s>", iter, ast.Stringify(stmt.Right)), EdgeEpsilon, nil)

		done := ast.NewNode(ast.TypeMemberExpression)
		done.Object = &ast.Node{Type: ast.TypeIdentifier, Name: iter}
		done.Property = &ast.Node{Type: ast.TypeIdentifier, Name: "done"}
		truthyGuard = ast.NegateTruthiness(done)
		truthyLabel = ast.Stringify(truthyGuard)
		falsyLabel = ast.Stringify(done)
		assignLabel = fmt.Sprintf("%s = %s.next()", target, iter)
	} else {
		conditionNode = c.graph.Append(current, ast.Stringify(stmt.Right), EdgeEpsilon, nil)
		truthyGuard = &ast.Node{Type: ast.TypeIdentifier, Name: "<has more>"}
		truthyLabel = "<has more>"
		falsyLabel = "<done>"
		assignLabel = target + " = <next>"
	}

	negated := ast.NegateTruthiness(truthyGuard)
	beginBody := c.graph.AppendConditionally(conditionNode, truthyLabel, truthyGuard)
	finalNode := c.graph.AppendConditionally(conditionNode, falsyLabel, negated)
	assignNode := c.graph.Append(beginBody, assignLabel, EdgeEpsilon, nil)

	c.push(&enclosingStatement{
		kind:           otherStatement,
		label:          label,
		breakTarget:    finalNode,
		continueTarget: conditionNode,
	})
	bodyCompletion, err := c.parseStatements(stmt.Body, assignNode)
	c.pop()
	if err != nil {
		return Completion{}, err
	}

	if bodyCompletion.IsNormal() {
		c.graph.AppendEpsilonEdge(bodyCompletion.Node, conditionNode)
	}
	return normalCompletion(finalNode), nil
}

// iterationTargetName renders the loop variable of a for-in/for-of head.
func iterationTargetName(init *ast.Node) string {
	switch {
	case init == nil:
		return "<value>"
	case init.Type == ast.TypeIdentifier:
		return init.Name
	case init.Type == ast.TypeVariableDeclaration && len(init.Declarations) > 0:
		return init.Declarations[0].Name
	default:
		return ast.Stringify(init)
	}
}

func (c *parseContext) parseSwitchStatement(stmt *ast.Node, current *FlowNode, label string) (Completion, error) {
	temp := c.createTempVarName("switch")
	evaluated := c.graph.Append(current, temp+" = "+ast.Stringify(stmt.Test), EdgeEpsilon, nil)
	finalNode := c.createNode()

	c.push(&enclosingStatement{
		kind:        otherStatement,
		label:       label,
		breakTarget: finalNode,
	})
	defer c.pop()

	defaultIndex := -1
	for i, caseClause := range stmt.Cases {
		if caseClause.Test == nil {
			defaultIndex = i
			break
		}
	}

	stillSearching := evaluated
	var prevCaseEnd *Completion
	var firstAfterDefault *FlowNode

	for i, caseClause := range stmt.Cases {
		if caseClause.Test == nil {
			continue
		}

		eq := ast.NewNode(ast.TypeBinaryExpression)
		eq.Operator = "==="
		eq.Left = &ast.Node{Type: ast.TypeIdentifier, Name: temp}
		eq.Right = caseClause.Test

		beginBody := c.graph.AppendConditionally(stillSearching, ast.Stringify(eq), eq)
		if defaultIndex >= 0 && i > defaultIndex && firstAfterDefault == nil {
			firstAfterDefault = beginBody
		}
		if prevCaseEnd != nil && prevCaseEnd.IsNormal() {
			c.graph.AppendEpsilonEdge(prevCaseEnd.Node, beginBody)
		}

		completion, err := c.parseStatements(caseClause.Body, beginBody)
		if err != nil {
			return Completion{}, err
		}
		prevCaseEnd = &completion

		negated := ast.NegateTruthiness(eq)
		stillSearching = c.graph.AppendConditionally(stillSearching, ast.Stringify(negated), negated)
	}

	if prevCaseEnd != nil && prevCaseEnd.IsNormal() {
		c.graph.AppendEpsilonEdge(prevCaseEnd.Node, finalNode)
	}

	if defaultIndex >= 0 {
		defaultCompletion, err := c.parseStatements(stmt.Cases[defaultIndex].Body, stillSearching)
		if err != nil {
			return Completion{}, err
		}
		if defaultCompletion.IsNormal() {
			target := finalNode
			if firstAfterDefault != nil {
				target = firstAfterDefault
			}
			c.graph.AppendEpsilonEdge(defaultCompletion.Node, target)
		}
	} else {
		// No case matched and there is no default: fall out of the switch.
		c.graph.AppendEpsilonEdge(stillSearching, finalNode)
	}

	return normalCompletion(finalNode), nil
}

func (c *parseContext) parseLabeledStatement(stmt *ast.Node, current *FlowNode) (Completion, error) {
	labelName := ""
	if stmt.Label != nil {
		labelName = stmt.Label.Name
	}
	if len(stmt.Body) == 0 {
		return normalCompletion(current), nil
	}
	body := stmt.Body[0]

	// Loops and switch own their label; forward it to the translator so
	// labeled continue resolves to the loop frame itself.
	if body != nil && (body.IsLoop() || body.Type == ast.TypeSwitchStatement) {
		return c.parseStatement(body, current, labelName)
	}

	switch body.Type {
	case ast.TypeBlockStatement, ast.TypeIfStatement, ast.TypeTryStatement, ast.TypeWithStatement:
		finalNode := c.createNode()
		c.push(&enclosingStatement{
			kind:        otherStatement,
			label:       labelName,
			breakTarget: finalNode,
		})
		completion, err := c.parseStatement(body, current, "")
		c.pop()
		if err != nil {
			return Completion{}, err
		}
		if completion.IsNormal() {
			c.graph.AppendEpsilonEdge(completion.Node, finalNode)
		}
		return normalCompletion(finalNode), nil
	default:
		// The label cannot be jumped to from inside such a body.
		return c.parseStatement(body, current, "")
	}
}

// resolveJumpTarget finds the frame a break or continue refers to.
// Unlabeled jumps skip try frames (their finalizers are replayed
// separately); labeled jumps match the nearest frame carrying the label.
func (c *parseContext) resolveJumpTarget(stmt *ast.Node, isContinue bool) (int, error) {
	labelName := ""
	if stmt.Label != nil {
		labelName = stmt.Label.Name
	}
	keyword := "break"
	if isContinue {
		keyword = "continue"
	}

	for i := len(c.enclosing) - 1; i >= 0; i-- {
		frame := c.enclosing[i]
		if labelName != "" {
			if frame.label != labelName {
				continue
			}
			if isContinue && frame.continueTarget == nil {
				return 0, buildErrorf(ErrIllegalJumpTarget, stmt,
					"continue label %q does not name an iteration statement", labelName)
			}
			return i, nil
		}
		if frame.kind == tryStatement {
			continue
		}
		if isContinue && frame.continueTarget == nil {
			continue
		}
		return i, nil
	}
	if labelName != "" {
		return 0, buildErrorf(ErrIllegalJumpTarget, stmt, "undefined label %q for %s", labelName, keyword)
	}
	return 0, buildErrorf(ErrIllegalJumpTarget, stmt, "%s outside of a valid target", keyword)
}

// replayFinalizers parses a fresh copy of each finalizer in frames, in
// order, chaining them from current. frames must already be ordered
// innermost first. An abrupt finalizer completion replaces the jump that
// triggered the replay.
func (c *parseContext) replayFinalizers(frames []*enclosingStatement, current *FlowNode) (Completion, error) {
	for _, frame := range frames {
		if frame.kind != tryStatement || frame.parseFinalizer == nil || frame.inFinalizer {
			continue
		}
		frame.inFinalizer = true
		copied, err := frame.parseFinalizer()
		frame.inFinalizer = false
		if err != nil {
			return Completion{}, err
		}
		c.graph.AppendEpsilonEdge(current, copied.bodyEntry)
		if !copied.completion.IsNormal() {
			return copied.completion, nil
		}
		current = copied.completion.Node
	}
	return normalCompletion(current), nil
}

// innerFrames returns the frames strictly inside the target frame,
// innermost first.
func (c *parseContext) innerFrames(targetIndex int) []*enclosingStatement {
	var frames []*enclosingStatement
	for i := len(c.enclosing) - 1; i > targetIndex; i-- {
		frames = append(frames, c.enclosing[i])
	}
	return frames
}

func (c *parseContext) parseBreakStatement(stmt *ast.Node, current *FlowNode) (Completion, error) {
	targetIndex, err := c.resolveJumpTarget(stmt, false)
	if err != nil {
		return Completion{}, err
	}

	completion, err := c.replayFinalizers(c.innerFrames(targetIndex), current)
	if err != nil {
		return Completion{}, err
	}
	if !completion.IsNormal() {
		return completion, nil
	}

	target := c.enclosing[targetIndex].breakTarget
	c.graph.Connect(completion.Node, target, EdgeAbruptCompletion, "break", nil)
	return Completion{Kind: CompletionBreak}, nil
}

func (c *parseContext) parseContinueStatement(stmt *ast.Node, current *FlowNode) (Completion, error) {
	targetIndex, err := c.resolveJumpTarget(stmt, true)
	if err != nil {
		return Completion{}, err
	}

	completion, err := c.replayFinalizers(c.innerFrames(targetIndex), current)
	if err != nil {
		return Completion{}, err
	}
	if !completion.IsNormal() {
		return completion, nil
	}

	target := c.enclosing[targetIndex].continueTarget
	c.graph.Connect(completion.Node, target, EdgeAbruptCompletion, "continue", nil)
	return Completion{Kind: CompletionContinue}, nil
}

// syntheticUndefined is the astRef attached to implicit `return undefined`
// edges.
func syntheticUndefined() *ast.Node {
	return &ast.Node{Type: ast.TypeIdentifier, Name: "undefined"}
}

func (c *parseContext) parseReturnStatement(stmt *ast.Node, current *FlowNode) (Completion, error) {
	// A return leaves every enclosing try; all their finalizers replay.
	completion, err := c.replayFinalizers(c.innerFrames(-1), current)
	if err != nil {
		return Completion{}, err
	}
	if !completion.IsNormal() {
		return completion, nil
	}

	ref := stmt.Argument
	label := "return undefined"
	if ref != nil {
		label = "return " + ast.Stringify(ref)
	} else {
		ref = syntheticUndefined()
	}
	c.graph.Connect(completion.Node, c.graph.SuccessExit, EdgeAbruptCompletion, label, ref)
	return Completion{Kind: CompletionReturn}, nil
}

func (c *parseContext) parseThrowStatement(stmt *ast.Node, current *FlowNode) (Completion, error) {
	argLabel := ast.Stringify(stmt.Argument)

	for i := len(c.enclosing) - 1; i >= 0; i-- {
		frame := c.enclosing[i]
		if frame.kind != tryStatement {
			continue
		}

		if frame.handler != nil && frame.inTryBlock {
			// The throw is caught: bind the thrown value to the handler
			// parameter and enter the handler body.
			param := handlerParamName(frame.handler)
			assignNode := c.graph.Append(current, param+" = "+argLabel, EdgeEpsilon, nil)
			c.graph.AppendEpsilonEdge(assignNode, frame.handlerEntry)
			return Completion{Kind: CompletionThrow}, nil
		}

		if frame.parseFinalizer != nil && !frame.inFinalizer {
			frame.inFinalizer = true
			copied, err := frame.parseFinalizer()
			frame.inFinalizer = false
			if err != nil {
				return Completion{}, err
			}
			c.graph.AppendEpsilonEdge(current, copied.bodyEntry)
			if !copied.completion.IsNormal() {
				// The finalizer's own abrupt completion replaces the throw.
				return copied.completion, nil
			}
			current = copied.completion.Node
		}
	}

	c.graph.Connect(current, c.graph.ErrorExit, EdgeAbruptCompletion, "throw "+argLabel, stmt.Argument)
	return Completion{Kind: CompletionThrow}, nil
}

func handlerParamName(handler *ast.Node) string {
	if len(handler.Params) > 0 && handler.Params[0] != nil && handler.Params[0].Name != "" {
		return handler.Params[0].Name
	}
	return "<exception>"
}

func (c *parseContext) parseTryStatement(stmt *ast.Node, current *FlowNode) (Completion, error) {
	handler := stmt.Handler
	finalizer := stmt.Finalizer

	frame := &enclosingStatement{kind: tryStatement, handler: handler}
	if handler != nil {
		frame.handlerEntry = c.createNode()
	}
	if finalizer != nil {
		// Every replay site parses its own fresh copy of the finally
		// block, so each exit path owns a disjoint subgraph.
		frame.parseFinalizer = func() (finalizerCopy, error) {
			entry := c.createNode()
			completion, err := c.parseStatements(finalizer.Body, entry)
			return finalizerCopy{bodyEntry: entry, completion: completion}, err
		}
	}

	c.push(frame)
	frame.inTryBlock = true
	tryCompletion, err := c.parseStatements(stmt.Body, current)
	frame.inTryBlock = false
	if err != nil {
		c.pop()
		return Completion{}, err
	}

	handlerCompletion := Completion{}
	if handler != nil {
		handlerCompletion, err = c.parseStatements(handler.Body, frame.handlerEntry)
		if err != nil {
			c.pop()
			return Completion{}, err
		}
	}
	c.pop()

	switch {
	case handler != nil && finalizer == nil:
		finalNode := c.createNode()
		if tryCompletion.IsNormal() {
			c.graph.AppendEpsilonEdge(tryCompletion.Node, finalNode)
		}
		if handlerCompletion.IsNormal() {
			c.graph.AppendEpsilonEdge(handlerCompletion.Node, finalNode)
		}
		return normalCompletion(finalNode), nil

	case handler == nil && finalizer != nil:
		if !tryCompletion.IsNormal() {
			// The abrupt exit inside the try block already replayed the
			// finalizer on its way out.
			return tryCompletion, nil
		}
		copied, err := frame.parseFinalizer()
		if err != nil {
			return Completion{}, err
		}
		c.graph.AppendEpsilonEdge(tryCompletion.Node, copied.bodyEntry)
		if !copied.completion.IsNormal() {
			return copied.completion, nil
		}
		finalNode := c.createNode()
		c.graph.AppendEpsilonEdge(copied.completion.Node, finalNode)
		return normalCompletion(finalNode), nil

	default: // handler != nil && finalizer != nil
		var abrupt *Completion
		var normalEnds []*FlowNode

		if tryCompletion.IsNormal() {
			copied, err := frame.parseFinalizer()
			if err != nil {
				return Completion{}, err
			}
			c.graph.AppendEpsilonEdge(tryCompletion.Node, copied.bodyEntry)
			if copied.completion.IsNormal() {
				normalEnds = append(normalEnds, copied.completion.Node)
			} else if abrupt == nil {
				abrupt = &copied.completion
			}
		}
		if handlerCompletion.IsNormal() {
			copied, err := frame.parseFinalizer()
			if err != nil {
				return Completion{}, err
			}
			c.graph.AppendEpsilonEdge(handlerCompletion.Node, copied.bodyEntry)
			if copied.completion.IsNormal() {
				normalEnds = append(normalEnds, copied.completion.Node)
			} else if abrupt == nil {
				abrupt = &copied.completion
			}
		}

		if abrupt != nil {
			return *abrupt, nil
		}
		finalNode := c.createNode()
		for _, end := range normalEnds {
			c.graph.AppendEpsilonEdge(end, finalNode)
		}
		return normalCompletion(finalNode), nil
	}
}

func (c *parseContext) parseWithStatement(stmt *ast.Node, current *FlowNode) (Completion, error) {
	objectNode := c.graph.Append(current, ast.Stringify(stmt.Object), EdgeEpsilon, nil)
	return c.parseStatements(stmt.Body, objectNode)
}

func (c *parseContext) parseFunctionDeclaration(stmt *ast.Node, current *FlowNode) (Completion, error) {
	fn := &FlowFunction{
		ID:   c.createFunctionID(),
		Name: stmt.Name,
	}

	sub := c.sub()
	bodyCompletion, err := sub.parseStatements(stmt.Body, sub.graph.Entry)
	if err != nil {
		return Completion{}, err
	}
	if bodyCompletion.IsNormal() {
		sub.graph.Connect(bodyCompletion.Node, sub.graph.SuccessExit,
			EdgeAbruptCompletion, "return undefined", syntheticUndefined())
	}
	fn.FlowGraph = sub.graph
	*c.functions = append(*c.functions, fn)

	// Declarations hoist; they do not advance flow in the outer graph.
	return normalCompletion(current), nil
}
