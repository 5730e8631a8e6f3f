package ast

import "fmt"

// NodeType identifies the syntactic form of an AST node.
type NodeType string

// Supported ECMAScript node types (ESTree-style tags).
const (
	// Program and structure
	TypeProgram NodeType = "Program"

	// Statements
	TypeBlockStatement      NodeType = "BlockStatement"
	TypeExpressionStatement NodeType = "ExpressionStatement"
	TypeEmptyStatement      NodeType = "EmptyStatement"
	TypeDebuggerStatement   NodeType = "DebuggerStatement"
	TypeVariableDeclaration NodeType = "VariableDeclaration"
	TypeVariableDeclarator  NodeType = "VariableDeclarator"
	TypeIfStatement         NodeType = "IfStatement"
	TypeWhileStatement      NodeType = "WhileStatement"
	TypeDoWhileStatement    NodeType = "DoWhileStatement"
	TypeForStatement        NodeType = "ForStatement"
	TypeForInStatement      NodeType = "ForInStatement"
	TypeForOfStatement      NodeType = "ForOfStatement"
	TypeSwitchStatement     NodeType = "SwitchStatement"
	TypeSwitchCase          NodeType = "SwitchCase"
	TypeBreakStatement      NodeType = "BreakStatement"
	TypeContinueStatement   NodeType = "ContinueStatement"
	TypeLabeledStatement    NodeType = "LabeledStatement"
	TypeReturnStatement     NodeType = "ReturnStatement"
	TypeThrowStatement      NodeType = "ThrowStatement"
	TypeTryStatement        NodeType = "TryStatement"
	TypeCatchClause         NodeType = "CatchClause"
	TypeWithStatement       NodeType = "WithStatement"

	// Functions
	TypeFunctionDeclaration NodeType = "FunctionDeclaration"
	TypeFunctionExpression  NodeType = "FunctionExpression"

	// Expressions
	TypeIdentifier            NodeType = "Identifier"
	TypeLiteral               NodeType = "Literal"
	TypeUnaryExpression       NodeType = "UnaryExpression"
	TypeBinaryExpression      NodeType = "BinaryExpression"
	TypeLogicalExpression     NodeType = "LogicalExpression"
	TypeAssignmentExpression  NodeType = "AssignmentExpression"
	TypeUpdateExpression      NodeType = "UpdateExpression"
	TypeMemberExpression      NodeType = "MemberExpression"
	TypeCallExpression        NodeType = "CallExpression"
	TypeNewExpression         NodeType = "NewExpression"
	TypeConditionalExpression NodeType = "ConditionalExpression"
	TypeSequenceExpression    NodeType = "SequenceExpression"
	TypeArrayExpression       NodeType = "ArrayExpression"
	TypeObjectExpression      NodeType = "ObjectExpression"
	TypeProperty              NodeType = "Property"
	TypeSpreadElement         NodeType = "SpreadElement"
)

// Location is the position of a node in the source file.
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Node is a single AST node. One struct covers every node type; only the
// fields relevant to a node's Type are populated.
type Node struct {
	Type     NodeType
	Location Location

	// Identifier / function name
	Name string

	// Literal source text, exactly as written
	Raw string

	// Statement lists (program, block, function body, case body, try body)
	Body []*Node

	// Function parameters (also the catch-clause binding)
	Params []*Node

	// Control flow
	Test       *Node   // condition of if/while/do-while/for; switch discriminant; case test
	Consequent *Node   // then-branch of if; consequent of ternary
	Alternate  *Node   // else-branch of if; alternate of ternary
	Init       *Node   // for initializer; for-in/for-of binding
	Update     *Node   // for update expression
	Cases      []*Node // switch cases, in source order
	Label      *Node   // labeled statement name; break/continue label

	// Exception handling
	Handler   *Node // catch clause
	Finalizer *Node // finally block (a BlockStatement)

	// Expressions
	Expression  *Node   // expression-statement payload
	Expressions []*Node // sequence (comma) operands
	Left        *Node
	Right       *Node
	Operator    string
	Prefix      bool  // unary/update operator position
	Argument    *Node // unary/update/return/throw/spread argument
	Arguments   []*Node
	Callee      *Node
	Object      *Node // member object; with-statement object
	Property    *Node
	Computed    bool // obj[prop] vs obj.prop
	Key         *Node
	Value       *Node // property value; declarator is Init
	Shorthand   bool

	// Array and object literals
	Elements   []*Node
	Properties []*Node

	// Variable declarations
	Kind         string // var, let, const
	Declarations []*Node
}

// NewNode creates a node of the given type.
func NewNode(t NodeType) *Node {
	return &Node{Type: t}
}

// IsFunction reports whether the node introduces a function body.
func (n *Node) IsFunction() bool {
	return n.Type == TypeFunctionDeclaration || n.Type == TypeFunctionExpression
}

// IsLoop reports whether the node is an iteration statement (a valid target
// for an unlabeled continue).
func (n *Node) IsLoop() bool {
	switch n.Type {
	case TypeWhileStatement, TypeDoWhileStatement,
		TypeForStatement, TypeForInStatement, TypeForOfStatement:
		return true
	}
	return false
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s) at %s", n.Type, n.Name, n.Location)
	}
	return fmt.Sprintf("%s at %s", n.Type, n.Location)
}

// Walk traverses the node and its descendants depth-first, calling visitor
// for each node. Returning false stops descent into that node's children.
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}
	if !visitor(n) {
		return
	}

	for _, child := range n.Body {
		child.Walk(visitor)
	}
	for _, param := range n.Params {
		param.Walk(visitor)
	}
	for _, c := range n.Cases {
		c.Walk(visitor)
	}
	for _, e := range n.Expressions {
		e.Walk(visitor)
	}
	for _, a := range n.Arguments {
		a.Walk(visitor)
	}
	for _, d := range n.Declarations {
		d.Walk(visitor)
	}
	for _, e := range n.Elements {
		e.Walk(visitor)
	}
	for _, p := range n.Properties {
		p.Walk(visitor)
	}

	for _, child := range []*Node{
		n.Test, n.Consequent, n.Alternate, n.Init, n.Update, n.Label,
		n.Handler, n.Finalizer, n.Expression, n.Left, n.Right,
		n.Argument, n.Callee, n.Object, n.Property, n.Key, n.Value,
	} {
		child.Walk(visitor)
	}
}
