package ast

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// treeBuilder converts a tree-sitter CST into the internal AST.
type treeBuilder struct {
	filename string
	source   []byte
}

func newTreeBuilder(filename string, source []byte) *treeBuilder {
	return &treeBuilder{filename: filename, source: source}
}

func (b *treeBuilder) build(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}
	return b.buildNode(tsNode)
}

// buildNode dispatches on the tree-sitter node type. Unknown node types are
// carried through as leaves holding their raw source text, so that the flow
// builder can reject them (statements) or label them verbatim (expressions).
func (b *treeBuilder) buildNode(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}

	switch tsNode.Type() {
	case "program":
		return b.buildStatementList(tsNode, TypeProgram)
	case "statement_block":
		return b.buildStatementList(tsNode, TypeBlockStatement)
	case "expression_statement":
		return b.buildExpressionStatement(tsNode)
	case "empty_statement":
		return b.leaf(tsNode, TypeEmptyStatement)
	case "debugger_statement":
		return b.leaf(tsNode, TypeDebuggerStatement)
	case "variable_declaration", "lexical_declaration":
		return b.buildVariableDeclaration(tsNode)
	case "variable_declarator":
		return b.buildVariableDeclarator(tsNode)
	case "if_statement":
		return b.buildIfStatement(tsNode)
	case "while_statement":
		return b.buildWhileStatement(tsNode)
	case "do_statement":
		return b.buildDoWhileStatement(tsNode)
	case "for_statement":
		return b.buildForStatement(tsNode)
	case "for_in_statement":
		return b.buildForInStatement(tsNode)
	case "switch_statement":
		return b.buildSwitchStatement(tsNode)
	case "switch_case", "switch_default":
		return b.buildSwitchCase(tsNode)
	case "break_statement":
		return b.buildJumpStatement(tsNode, TypeBreakStatement)
	case "continue_statement":
		return b.buildJumpStatement(tsNode, TypeContinueStatement)
	case "labeled_statement":
		return b.buildLabeledStatement(tsNode)
	case "return_statement":
		return b.buildArgumentStatement(tsNode, TypeReturnStatement, "return")
	case "throw_statement":
		return b.buildArgumentStatement(tsNode, TypeThrowStatement, "throw")
	case "try_statement":
		return b.buildTryStatement(tsNode)
	case "catch_clause":
		return b.buildCatchClause(tsNode)
	case "finally_clause":
		return b.buildFinallyClause(tsNode)
	case "with_statement":
		return b.buildWithStatement(tsNode)
	case "function_declaration", "generator_function_declaration":
		return b.buildFunction(tsNode, TypeFunctionDeclaration)
	case "function_expression", "function", "generator_function":
		return b.buildFunction(tsNode, TypeFunctionExpression)
	case "identifier", "property_identifier", "statement_identifier",
		"shorthand_property_identifier":
		return b.buildIdentifier(tsNode)
	case "string", "number", "true", "false", "null", "undefined",
		"regex", "template_string":
		return b.buildLiteral(tsNode)
	case "unary_expression":
		return b.buildUnaryExpression(tsNode)
	case "update_expression":
		return b.buildUpdateExpression(tsNode)
	case "binary_expression":
		return b.buildBinaryExpression(tsNode)
	case "assignment_expression", "augmented_assignment_expression":
		return b.buildAssignmentExpression(tsNode)
	case "ternary_expression":
		return b.buildConditionalExpression(tsNode)
	case "sequence_expression":
		return b.buildSequenceExpression(tsNode)
	case "member_expression":
		return b.buildMemberExpression(tsNode)
	case "subscript_expression":
		return b.buildSubscriptExpression(tsNode)
	case "call_expression":
		return b.buildCallExpression(tsNode)
	case "new_expression":
		return b.buildNewExpression(tsNode)
	case "parenthesized_expression":
		return b.unwrapParenthesized(tsNode)
	case "array":
		return b.buildArray(tsNode)
	case "object":
		return b.buildObject(tsNode)
	case "pair":
		return b.buildPair(tsNode)
	case "spread_element":
		return b.buildSpreadElement(tsNode)
	default:
		// Unknown construct: keep the tag and raw text so the flow builder
		// can report it precisely.
		node := NewNode(NodeType(tsNode.Type()))
		node.Location = b.location(tsNode)
		node.Raw = tsNode.Content(b.source)
		return node
	}
}

func (b *treeBuilder) buildStatementList(tsNode *sitter.Node, t NodeType) *Node {
	node := b.leaf(tsNode, t)
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		if stmt := b.buildNode(child); stmt != nil {
			node.Body = append(node.Body, stmt)
		}
	}
	return node
}

func (b *treeBuilder) buildExpressionStatement(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeExpressionStatement)
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		node.Expression = b.buildNode(child)
		break
	}
	return node
}

func (b *treeBuilder) buildVariableDeclaration(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeVariableDeclaration)

	node.Kind = "var"
	if tsNode.Type() == "lexical_declaration" {
		if first := tsNode.Child(0); first != nil {
			kind := first.Content(b.source)
			if kind == "let" || kind == "const" {
				node.Kind = kind
			}
		}
	}

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child != nil && child.Type() == "variable_declarator" {
			node.Declarations = append(node.Declarations, b.buildVariableDeclarator(child))
		}
	}
	return node
}

func (b *treeBuilder) buildVariableDeclarator(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeVariableDeclarator)
	if nameNode := tsNode.ChildByFieldName("name"); nameNode != nil {
		decl := b.buildNode(nameNode)
		node.Name = nameNode.Content(b.source)
		node.Left = decl
	}
	if valueNode := tsNode.ChildByFieldName("value"); valueNode != nil {
		node.Init = b.buildNode(valueNode)
	}
	return node
}

func (b *treeBuilder) buildIfStatement(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeIfStatement)
	if condNode := tsNode.ChildByFieldName("condition"); condNode != nil {
		node.Test = b.buildNode(condNode)
	}
	if consNode := tsNode.ChildByFieldName("consequence"); consNode != nil {
		node.Consequent = b.buildNode(consNode)
	}
	if altNode := tsNode.ChildByFieldName("alternative"); altNode != nil {
		node.Alternate = b.unwrapElseClause(altNode)
	}
	return node
}

// unwrapElseClause strips the else_clause wrapper tree-sitter puts around
// the alternative branch.
func (b *treeBuilder) unwrapElseClause(tsNode *sitter.Node) *Node {
	if tsNode.Type() != "else_clause" {
		return b.buildNode(tsNode)
	}
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child != nil && !b.isTrivia(child) {
			return b.buildNode(child)
		}
	}
	return nil
}

func (b *treeBuilder) buildWhileStatement(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeWhileStatement)
	if condNode := tsNode.ChildByFieldName("condition"); condNode != nil {
		node.Test = b.buildNode(condNode)
	}
	if bodyNode := tsNode.ChildByFieldName("body"); bodyNode != nil {
		node.Body = []*Node{b.buildNode(bodyNode)}
	}
	return node
}

func (b *treeBuilder) buildDoWhileStatement(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeDoWhileStatement)
	if bodyNode := tsNode.ChildByFieldName("body"); bodyNode != nil {
		node.Body = []*Node{b.buildNode(bodyNode)}
	}
	if condNode := tsNode.ChildByFieldName("condition"); condNode != nil {
		node.Test = b.buildNode(condNode)
	}
	return node
}

func (b *treeBuilder) buildForStatement(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeForStatement)
	if initNode := tsNode.ChildByFieldName("initializer"); initNode != nil {
		node.Init = b.unwrapForClause(initNode)
	}
	if condNode := tsNode.ChildByFieldName("condition"); condNode != nil {
		node.Test = b.unwrapForClause(condNode)
	}
	if incrNode := tsNode.ChildByFieldName("increment"); incrNode != nil {
		node.Update = b.buildNode(incrNode)
	}
	if bodyNode := tsNode.ChildByFieldName("body"); bodyNode != nil {
		node.Body = []*Node{b.buildNode(bodyNode)}
	}
	return node
}

// unwrapForClause reduces the expression_statement / empty_statement
// wrappers tree-sitter uses for the header clauses of a for statement.
func (b *treeBuilder) unwrapForClause(tsNode *sitter.Node) *Node {
	switch tsNode.Type() {
	case "empty_statement":
		return nil
	case "expression_statement":
		for i := 0; i < int(tsNode.NamedChildCount()); i++ {
			child := tsNode.NamedChild(i)
			if child != nil && !b.isTrivia(child) {
				return b.buildNode(child)
			}
		}
		return nil
	default:
		return b.buildNode(tsNode)
	}
}

// buildForInStatement covers both for-in and for-of; tree-sitter represents
// them as one node type distinguished by the operator field.
func (b *treeBuilder) buildForInStatement(tsNode *sitter.Node) *Node {
	t := TypeForInStatement
	if opNode := tsNode.ChildByFieldName("operator"); opNode != nil && opNode.Content(b.source) == "of" {
		t = TypeForOfStatement
	}
	node := b.leaf(tsNode, t)
	if leftNode := tsNode.ChildByFieldName("left"); leftNode != nil {
		node.Init = b.buildNode(leftNode)
	}
	if rightNode := tsNode.ChildByFieldName("right"); rightNode != nil {
		node.Right = b.buildNode(rightNode)
	}
	if bodyNode := tsNode.ChildByFieldName("body"); bodyNode != nil {
		node.Body = []*Node{b.buildNode(bodyNode)}
	}
	return node
}

func (b *treeBuilder) buildSwitchStatement(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeSwitchStatement)
	if valueNode := tsNode.ChildByFieldName("value"); valueNode != nil {
		node.Test = b.buildNode(valueNode)
	}
	if bodyNode := tsNode.ChildByFieldName("body"); bodyNode != nil {
		for i := 0; i < int(bodyNode.NamedChildCount()); i++ {
			child := bodyNode.NamedChild(i)
			if child == nil || b.isTrivia(child) {
				continue
			}
			if child.Type() == "switch_case" || child.Type() == "switch_default" {
				node.Cases = append(node.Cases, b.buildSwitchCase(child))
			}
		}
	}
	return node
}

// buildSwitchCase builds a case clause; a default clause is a SwitchCase
// with a nil Test.
func (b *treeBuilder) buildSwitchCase(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeSwitchCase)
	valueNode := tsNode.ChildByFieldName("value")
	if valueNode != nil {
		node.Test = b.buildNode(valueNode)
	}
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		if valueNode != nil && child.Equal(valueNode) {
			continue
		}
		if stmt := b.buildNode(child); stmt != nil {
			node.Body = append(node.Body, stmt)
		}
	}
	return node
}

func (b *treeBuilder) buildJumpStatement(tsNode *sitter.Node, t NodeType) *Node {
	node := b.leaf(tsNode, t)
	if labelNode := tsNode.ChildByFieldName("label"); labelNode != nil {
		node.Label = b.buildIdentifier(labelNode)
	}
	return node
}

func (b *treeBuilder) buildLabeledStatement(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeLabeledStatement)
	if labelNode := tsNode.ChildByFieldName("label"); labelNode != nil {
		node.Label = b.buildIdentifier(labelNode)
	}
	if bodyNode := tsNode.ChildByFieldName("body"); bodyNode != nil {
		node.Body = []*Node{b.buildNode(bodyNode)}
	}
	return node
}

// buildArgumentStatement covers return and throw, whose only payload is an
// optional argument expression after the keyword.
func (b *treeBuilder) buildArgumentStatement(tsNode *sitter.Node, t NodeType, keyword string) *Node {
	node := b.leaf(tsNode, t)
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child != nil && !b.isTrivia(child) && child.Type() != keyword {
			node.Argument = b.buildNode(child)
			break
		}
	}
	return node
}

func (b *treeBuilder) buildTryStatement(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeTryStatement)
	if bodyNode := tsNode.ChildByFieldName("body"); bodyNode != nil {
		if block := b.buildNode(bodyNode); block != nil {
			node.Body = block.Body
		}
	}
	if handlerNode := tsNode.ChildByFieldName("handler"); handlerNode != nil {
		node.Handler = b.buildNode(handlerNode)
	}
	if finalizerNode := tsNode.ChildByFieldName("finalizer"); finalizerNode != nil {
		node.Finalizer = b.buildNode(finalizerNode)
	}
	return node
}

func (b *treeBuilder) buildCatchClause(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeCatchClause)
	if paramNode := tsNode.ChildByFieldName("parameter"); paramNode != nil {
		node.Params = []*Node{b.buildNode(paramNode)}
	}
	if bodyNode := tsNode.ChildByFieldName("body"); bodyNode != nil {
		if block := b.buildNode(bodyNode); block != nil {
			node.Body = block.Body
		}
	}
	return node
}

// buildFinallyClause keeps the finally body as a BlockStatement so each
// replay site can parse a fresh copy of the same statement list.
func (b *treeBuilder) buildFinallyClause(tsNode *sitter.Node) *Node {
	if bodyNode := tsNode.ChildByFieldName("body"); bodyNode != nil {
		return b.buildNode(bodyNode)
	}
	return b.leaf(tsNode, TypeBlockStatement)
}

func (b *treeBuilder) buildWithStatement(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeWithStatement)
	if objNode := tsNode.ChildByFieldName("object"); objNode != nil {
		node.Object = b.buildNode(objNode)
	}
	if bodyNode := tsNode.ChildByFieldName("body"); bodyNode != nil {
		node.Body = []*Node{b.buildNode(bodyNode)}
	}
	return node
}

func (b *treeBuilder) buildFunction(tsNode *sitter.Node, t NodeType) *Node {
	node := b.leaf(tsNode, t)
	if nameNode := tsNode.ChildByFieldName("name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}
	if paramsNode := tsNode.ChildByFieldName("parameters"); paramsNode != nil {
		for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
			child := paramsNode.NamedChild(i)
			if child != nil && !b.isTrivia(child) {
				node.Params = append(node.Params, b.buildNode(child))
			}
		}
	}
	if bodyNode := tsNode.ChildByFieldName("body"); bodyNode != nil {
		if block := b.buildNode(bodyNode); block != nil {
			node.Body = block.Body
		}
	}
	return node
}

func (b *treeBuilder) buildIdentifier(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeIdentifier)
	node.Name = tsNode.Content(b.source)
	return node
}

func (b *treeBuilder) buildLiteral(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeLiteral)
	node.Raw = tsNode.Content(b.source)
	return node
}

func (b *treeBuilder) buildUnaryExpression(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeUnaryExpression)
	node.Prefix = true
	if opNode := tsNode.ChildByFieldName("operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
	}
	if argNode := tsNode.ChildByFieldName("argument"); argNode != nil {
		node.Argument = b.buildNode(argNode)
	}
	return node
}

func (b *treeBuilder) buildUpdateExpression(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeUpdateExpression)
	if opNode := tsNode.ChildByFieldName("operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
		// Prefix when the operator token leads the expression.
		node.Prefix = opNode.StartByte() == tsNode.StartByte()
	}
	if argNode := tsNode.ChildByFieldName("argument"); argNode != nil {
		node.Argument = b.buildNode(argNode)
	}
	return node
}

func (b *treeBuilder) buildBinaryExpression(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeBinaryExpression)
	if leftNode := tsNode.ChildByFieldName("left"); leftNode != nil {
		node.Left = b.buildNode(leftNode)
	}
	if opNode := tsNode.ChildByFieldName("operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
	}
	if rightNode := tsNode.ChildByFieldName("right"); rightNode != nil {
		node.Right = b.buildNode(rightNode)
	}
	if node.Operator == "&&" || node.Operator == "||" || node.Operator == "??" {
		node.Type = TypeLogicalExpression
	}
	return node
}

func (b *treeBuilder) buildAssignmentExpression(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeAssignmentExpression)
	node.Operator = "="
	if leftNode := tsNode.ChildByFieldName("left"); leftNode != nil {
		node.Left = b.buildNode(leftNode)
	}
	if opNode := tsNode.ChildByFieldName("operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
	}
	if rightNode := tsNode.ChildByFieldName("right"); rightNode != nil {
		node.Right = b.buildNode(rightNode)
	}
	return node
}

func (b *treeBuilder) buildConditionalExpression(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeConditionalExpression)
	if condNode := tsNode.ChildByFieldName("condition"); condNode != nil {
		node.Test = b.buildNode(condNode)
	}
	if consNode := tsNode.ChildByFieldName("consequence"); consNode != nil {
		node.Consequent = b.buildNode(consNode)
	}
	if altNode := tsNode.ChildByFieldName("alternative"); altNode != nil {
		node.Alternate = b.buildNode(altNode)
	}
	return node
}

// buildSequenceExpression flattens tree-sitter's sequence_expression (whose
// operands may themselves be nested sequence_expression nodes) into a single
// operand list in source order.
func (b *treeBuilder) buildSequenceExpression(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeSequenceExpression)
	node.Expressions = b.flattenSequence(tsNode)
	return node
}

func (b *treeBuilder) flattenSequence(tsNode *sitter.Node) []*Node {
	var operands []*Node
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		if child.Type() == "sequence_expression" {
			operands = append(operands, b.flattenSequence(child)...)
		} else {
			operands = append(operands, b.buildNode(child))
		}
	}
	return operands
}

func (b *treeBuilder) buildMemberExpression(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeMemberExpression)
	if objNode := tsNode.ChildByFieldName("object"); objNode != nil {
		node.Object = b.buildNode(objNode)
	}
	if propNode := tsNode.ChildByFieldName("property"); propNode != nil {
		node.Property = b.buildNode(propNode)
	}
	return node
}

func (b *treeBuilder) buildSubscriptExpression(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeMemberExpression)
	node.Computed = true
	if objNode := tsNode.ChildByFieldName("object"); objNode != nil {
		node.Object = b.buildNode(objNode)
	}
	if idxNode := tsNode.ChildByFieldName("index"); idxNode != nil {
		node.Property = b.buildNode(idxNode)
	}
	return node
}

func (b *treeBuilder) buildCallExpression(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeCallExpression)
	if funcNode := tsNode.ChildByFieldName("function"); funcNode != nil {
		node.Callee = b.buildNode(funcNode)
	}
	if argsNode := tsNode.ChildByFieldName("arguments"); argsNode != nil {
		node.Arguments = b.buildArguments(argsNode)
	}
	return node
}

func (b *treeBuilder) buildNewExpression(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeNewExpression)
	if ctorNode := tsNode.ChildByFieldName("constructor"); ctorNode != nil {
		node.Callee = b.buildNode(ctorNode)
	}
	if argsNode := tsNode.ChildByFieldName("arguments"); argsNode != nil {
		node.Arguments = b.buildArguments(argsNode)
	}
	return node
}

func (b *treeBuilder) buildArguments(tsNode *sitter.Node) []*Node {
	var args []*Node
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child != nil && !b.isTrivia(child) {
			args = append(args, b.buildNode(child))
		}
	}
	return args
}

func (b *treeBuilder) unwrapParenthesized(tsNode *sitter.Node) *Node {
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child != nil && !b.isTrivia(child) {
			return b.buildNode(child)
		}
	}
	return nil
}

func (b *treeBuilder) buildArray(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeArrayExpression)
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child != nil && !b.isTrivia(child) {
			node.Elements = append(node.Elements, b.buildNode(child))
		}
	}
	return node
}

func (b *treeBuilder) buildObject(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeObjectExpression)
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		switch child.Type() {
		case "pair":
			node.Properties = append(node.Properties, b.buildPair(child))
		case "shorthand_property_identifier":
			prop := b.leaf(child, TypeProperty)
			prop.Shorthand = true
			prop.Key = b.buildIdentifier(child)
			prop.Value = prop.Key
			node.Properties = append(node.Properties, prop)
		default:
			node.Properties = append(node.Properties, b.buildNode(child))
		}
	}
	return node
}

func (b *treeBuilder) buildPair(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeProperty)
	if keyNode := tsNode.ChildByFieldName("key"); keyNode != nil {
		node.Key = b.buildNode(keyNode)
	}
	if valueNode := tsNode.ChildByFieldName("value"); valueNode != nil {
		node.Value = b.buildNode(valueNode)
	}
	return node
}

func (b *treeBuilder) buildSpreadElement(tsNode *sitter.Node) *Node {
	node := b.leaf(tsNode, TypeSpreadElement)
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child != nil && !b.isTrivia(child) {
			node.Argument = b.buildNode(child)
			break
		}
	}
	return node
}

// leaf creates a node of type t with location info only.
func (b *treeBuilder) leaf(tsNode *sitter.Node, t NodeType) *Node {
	node := NewNode(t)
	node.Location = b.location(tsNode)
	return node
}

func (b *treeBuilder) location(tsNode *sitter.Node) Location {
	return Location{
		File:      b.filename,
		StartLine: int(tsNode.StartPoint().Row) + 1,
		StartCol:  int(tsNode.StartPoint().Column),
		EndLine:   int(tsNode.EndPoint().Row) + 1,
		EndCol:    int(tsNode.EndPoint().Column),
	}
}

func (b *treeBuilder) isTrivia(tsNode *sitter.Node) bool {
	t := tsNode.Type()
	return t == "comment" || t == ""
}
