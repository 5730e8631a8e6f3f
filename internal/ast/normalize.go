package ast

// NormalizeFunctionExpressions rewrites named function expressions that
// stand alone as expression statements into function declarations bound to
// the same name, so later passes only ever see FunctionDeclaration for
// named functions. Anonymous function expressions, and named ones embedded
// inside larger expressions, are left untouched; they are opaque leaves.
// The tree is rewritten in place.
func NormalizeFunctionExpressions(root *Node) {
	if root == nil {
		return
	}
	root.Walk(func(n *Node) bool {
		normalizeStatementList(n.Body)
		return true
	})
}

func normalizeStatementList(stmts []*Node) {
	for i, stmt := range stmts {
		if stmt == nil || stmt.Type != TypeExpressionStatement {
			continue
		}
		fn := stmt.Expression
		if fn == nil || fn.Type != TypeFunctionExpression || fn.Name == "" {
			continue
		}
		fn.Type = TypeFunctionDeclaration
		stmts[i] = fn
	}
}
